//go:build !unix

package diagnostics

import "io/fs"

// Without a device number every directory counts as the same file system.
func deviceOf(string) (uint64, bool) { return 0, false }

func crossesDevice(fs.DirEntry, uint64) bool { return false }
