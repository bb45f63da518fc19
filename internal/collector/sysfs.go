package collector

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"unicode"

	"github.com/nhdewitt/drivescope/internal/drive"
)

const defaultSysRoot = "/sys"

// sysfs reads block device attributes below root, normally /sys.
type sysfs struct {
	root string
}

func (s sysfs) path(parts ...string) string {
	return filepath.Join(append([]string{s.root}, parts...)...)
}

func (s sysfs) readString(parts ...string) (string, error) {
	data, err := os.ReadFile(s.path(parts...))
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
}

func (s sysfs) readUint(parts ...string) (uint64, error) {
	v, err := s.readString(parts...)
	if err != nil {
		return 0, err
	}
	n, err := strconv.ParseUint(v, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("parsing %s: %w", s.path(parts...), err)
	}
	return n, nil
}

func (s sysfs) readBool(parts ...string) (bool, error) {
	n, err := s.readUint(parts...)
	if err != nil {
		return false, err
	}
	return n != 0, nil
}

// parentDisk returns the whole-disk name for a block device name, so that
// "sda1" yields "sda" and "nvme0n1p2" yields "nvme0n1". Names that are
// already whole disks are returned unchanged.
func (s sysfs) parentDisk(name string) string {
	if _, err := os.Stat(s.path("block", name)); err == nil {
		return name
	}

	resolved, err := filepath.EvalSymlinks(s.path("class", "block", name))
	if err == nil {
		if _, err := os.Stat(filepath.Join(resolved, "partition")); err == nil {
			return filepath.Base(filepath.Dir(resolved))
		}
		return name
	}

	return trimPartitionSuffix(name)
}

// trimPartitionSuffix strips a partition number from a device name without
// consulting sysfs.
func trimPartitionSuffix(name string) string {
	trimmed := strings.TrimRightFunc(name, unicode.IsDigit)
	if trimmed == name || trimmed == "" {
		return name
	}

	// nvme0n1p2, mmcblk0p1, loop0p1: the partition number follows a "p"
	// that itself follows a digit.
	if strings.HasSuffix(trimmed, "p") && len(trimmed) > 1 && unicode.IsDigit(rune(trimmed[len(trimmed)-2])) {
		return trimmed[:len(trimmed)-1]
	}

	// nvme0n1, mmcblk0: a trailing number that is part of the disk name.
	for _, prefix := range []string{"nvme", "mmcblk", "md", "dm-", "loop"} {
		if strings.HasPrefix(name, prefix) {
			return name
		}
	}

	return trimmed
}

// blockName turns a device node such as /dev/sda1 into its sysfs name.
func blockName(device string) (string, bool) {
	if !strings.HasPrefix(device, "/dev/") {
		return "", false
	}
	if resolved, err := filepath.EvalSymlinks(device); err == nil {
		device = resolved
	}
	name := filepath.Base(device)
	if name == "" || name == "." || name == "/" {
		return "", false
	}
	return name, true
}

// mediaKind classifies the device backing a mount from its file system
// and the queue attributes of its parent disk.
func (s sysfs) mediaKind(device, fstype string) drive.MediaKind {
	fs := drive.FileSystemFromName(fstype)
	switch {
	case fs.IsNetwork():
		return drive.MediaNetwork
	case fs.Family == drive.FamilyISO9660 || fs.Family == drive.FamilyUDF:
		return drive.MediaOptical
	}

	name, ok := blockName(device)
	if !ok {
		return drive.MediaUnknown
	}
	switch {
	case strings.HasPrefix(name, "sr"):
		return drive.MediaOptical
	case strings.HasPrefix(name, "zram"), strings.HasPrefix(name, "ram"):
		return drive.MediaRAMDisk
	}

	parent := s.parentDisk(name)
	if removable, err := s.readBool("block", parent, "removable"); err == nil && removable {
		return drive.MediaRemovable
	}

	rotational, err := s.readBool("block", parent, "queue", "rotational")
	if err != nil {
		return drive.MediaUnknown
	}
	if rotational {
		return drive.MediaHDD
	}
	return drive.MediaSSD
}
