//go:build unix

package diagnostics

import (
	"io/fs"
	"syscall"
)

func deviceOf(path string) (uint64, bool) {
	var stat syscall.Stat_t
	if err := syscall.Stat(path, &stat); err != nil {
		return 0, false
	}
	return uint64(stat.Dev), true
}

// crossesDevice reports whether d lives on a different file system than
// the walk root, i.e. is a mount point.
func crossesDevice(d fs.DirEntry, rootDev uint64) bool {
	info, err := d.Info()
	if err != nil {
		return false
	}
	stat, ok := info.Sys().(*syscall.Stat_t)
	if !ok {
		return false
	}
	return uint64(stat.Dev) != rootDev
}
