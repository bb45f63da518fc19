package collector

import (
	"bufio"
	"io"
	"os"
	"strings"
)

// MountInfo is one entry of the kernel mount table.
type MountInfo struct {
	Device     string
	Mountpoint string
	FSType     string
	Options    []string
}

// ignoredFilesystems are kernel, virtual and container file systems that
// never back a user-visible volume.
var ignoredFilesystems = map[string]struct{}{
	// Kernel/system virtual filesystems
	"proc":        {},
	"sysfs":       {},
	"devtmpfs":    {},
	"devpts":      {},
	"devfs":       {}, // macOS, FreeBSD
	"tmpfs":       {},
	"ramfs":       {},
	"rootfs":      {},
	"debugfs":     {},
	"tracefs":     {},
	"securityfs":  {},
	"configfs":    {},
	"fusectl":     {},
	"mqueue":      {},
	"hugetlbfs":   {},
	"binfmt_misc": {},
	"pstore":      {},
	"efivarfs":    {},

	// Control groups
	"cgroup":  {},
	"cgroup2": {},

	// Security
	"selinuxfs": {},

	// BPF/namespaces
	"bpf":  {},
	"nsfs": {},

	// RPC plumbing for network filesystems
	"nfsd":       {},
	"rpc_pipefs": {},
	"sunrpc":     {},

	// FUSE/virtual
	"fuse":            {},
	"fuse.gvfsd-fuse": {},
	"fuse.lxcfs":      {},
	"fuse.portal":     {},
	"autofs":          {},
	"nullfs":          {},

	// Container/overlay. Snap squashfs images are loop mounts and are
	// dropped by device below.
	"overlay": {},
}

func parseMounts() ([]MountInfo, error) {
	f, err := os.Open("/proc/mounts")
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return parseMountsFrom(f)
}

func parseMountsFrom(r io.Reader) ([]MountInfo, error) {
	var mounts []MountInfo
	scanner := bufio.NewScanner(r)

	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) < 3 {
			continue
		}

		m := MountInfo{
			Device:     fields[0],
			Mountpoint: decodeMountPath(fields[1]),
			FSType:     fields[2],
		}
		if len(fields) > 3 {
			m.Options = strings.Split(fields[3], ",")
		}

		if shouldIgnore(m) {
			continue
		}

		mounts = append(mounts, m)
	}

	return mounts, scanner.Err()
}

func shouldIgnore(m MountInfo) bool {
	_, isFSTypeIgnored := ignoredFilesystems[m.FSType]

	return isFSTypeIgnored || strings.HasPrefix(m.Device, "/dev/loop") ||
		strings.HasPrefix(m.Mountpoint, "/mnt/wsl/") ||
		strings.HasPrefix(m.Mountpoint, "/Docker/")
}

// decodeMountPath replaces the octal escapes the kernel uses in
// /proc/mounts for whitespace and backslashes.
func decodeMountPath(s string) string {
	s = strings.ReplaceAll(s, `\040`, " ")
	s = strings.ReplaceAll(s, `\011`, "\t")
	s = strings.ReplaceAll(s, `\012`, "\n")
	s = strings.ReplaceAll(s, `\134`, `\`)
	return s
}

// findMount returns the entry mounted at path. When a path is mounted over
// more than once the last entry is the visible one.
func findMount(mounts []MountInfo, path string) (MountInfo, bool) {
	for i := len(mounts) - 1; i >= 0; i-- {
		if mounts[i].Mountpoint == path {
			return mounts[i], true
		}
	}
	return MountInfo{}, false
}
