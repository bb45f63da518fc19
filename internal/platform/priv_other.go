//go:build !unix && !windows

package platform

import "errors"

var ErrNotPrivileged = errors.New("not running with elevated privileges")

func isPrivileged() bool { return false }
