//go:build windows

package platform

import (
	"errors"

	"golang.org/x/sys/windows"
)

// ErrNotPrivileged marks lookups that failed outside an elevated prompt.
var ErrNotPrivileged = errors.New("not running elevated (use Run as administrator)")

// isPrivileged reports whether the process token is elevated. A member of
// Administrators running under UAC's filtered token is not.
func isPrivileged() bool {
	return windows.GetCurrentProcessToken().IsElevated()
}
