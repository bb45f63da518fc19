//go:build darwin

package platform

import "os/exec"

func Detect() Info {
	info := baseInfo()
	if path, err := exec.LookPath("diskutil"); err == nil {
		info.DiskutilPath = path
	} else if fileExists("/usr/sbin/diskutil") {
		info.DiskutilPath = "/usr/sbin/diskutil"
	}
	return info
}
