// Package osutil holds process and filesystem constants
package osutil

type exitCode int

const (
	ExitOK    exitCode = 0
	ExitError exitCode = 1
)

const (
	DirPermission  = 0o755
	FilePermission = 0o600
)

// Code returns the exit status as an int for os.Exit.
func (c exitCode) Code() int {
	return int(c)
}
