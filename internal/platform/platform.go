package platform

import (
	"os"
	"runtime"
)

// Info describes the host facts the collectors need, detected once at
// startup.
type Info struct {
	OS       string
	Hostname string

	// Privileged is true when running as root or as a member of the
	// Administrators group. Serial numbers, blkid probes and BitLocker
	// status may be unavailable otherwise.
	Privileged bool

	// Tools
	BlkidPath    string
	DiskutilPath string
}

func baseInfo() Info {
	hostname, _ := os.Hostname()
	return Info{
		OS:         runtime.GOOS,
		Hostname:   hostname,
		Privileged: isPrivileged(),
	}
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
