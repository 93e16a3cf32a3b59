//nolint:revive,nolintlint // Package name "common" is intentional for shared helpers.
package common

import (
	"errors"
	"testing"

	"github.com/mitchellh/go-ps"
	"github.com/stretchr/testify/require"
)

var errTestList = errors.New("test list error")

// fakeProcess implements ps.Process.
type fakeProcess struct {
	pid        int
	executable string
}

func (p fakeProcess) Pid() int           { return p.pid }
func (p fakeProcess) PPid() int          { return 1 }
func (p fakeProcess) Executable() string { return p.executable }

func listOf(processes ...ps.Process) processLister {
	return func() ([]ps.Process, error) {
		return processes, nil
	}
}

// TestEnsureSingleInstance verifies sibling detection ignores the current process.
func TestEnsureSingleInstance(t *testing.T) {
	t.Parallel()

	err := ensureSingleInstance("wakey-server", 10, listOf(
		fakeProcess{pid: 10, executable: "wakey-server"},
		fakeProcess{pid: 11, executable: "wakey-ctl"},
	))
	require.NoError(t, err)

	err = ensureSingleInstance("wakey-server", 10, listOf(
		fakeProcess{pid: 10, executable: "wakey-server"},
		fakeProcess{pid: 12, executable: "wakey-server"},
	))
	require.ErrorIs(t, err, ErrAlreadyRunning)

	err = ensureSingleInstance("wakey-server", 10, func() ([]ps.Process, error) {
		return nil, errTestList
	})
	require.ErrorIs(t, err, errTestList)
}

// TestEnsureSingleInstance_RealProcessList runs against the host process table.
func TestEnsureSingleInstance_RealProcessList(t *testing.T) {
	t.Parallel()

	processes, err := ps.Processes()
	require.NoError(t, err)
	require.NotEmpty(t, processes)

	require.NoError(t, ensureSingleInstance("wakey-no-such-binary", 0, ps.Processes))
}
