// Command wakey-ctl controls a running wakey-server.
package main

import "github.com/oshokin/wakey-wakey/cmd/wakey-ctl/cmd"

func main() {
	cmd.Execute()
}
