// Command wakey-server runs the alarm lifecycle daemon.
package main

import "github.com/oshokin/wakey-wakey/cmd/wakey-server/cmd"

func main() {
	cmd.Execute()
}
