//go:build linux

package platform

import "os/exec"

func Detect() Info {
	info := baseInfo()
	info.BlkidPath = findBlkid()
	return info
}

// findBlkid looks on PATH first; blkid lives in /sbin, which is often
// missing from a regular user's PATH.
func findBlkid() string {
	if path, err := exec.LookPath("blkid"); err == nil {
		return path
	}
	for _, path := range []string{"/sbin/blkid", "/usr/sbin/blkid"} {
		if fileExists(path) {
			return path
		}
	}
	return ""
}
