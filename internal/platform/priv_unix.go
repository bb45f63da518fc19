//go:build unix

package platform

import (
	"errors"

	"golang.org/x/sys/unix"
)

// ErrNotPrivileged marks lookups that failed while not running as root.
var ErrNotPrivileged = errors.New("not running as root (try sudo)")

func isPrivileged() bool {
	return unix.Geteuid() == 0
}
