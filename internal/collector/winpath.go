package collector

import (
	"fmt"
	"strings"
)

// devicePath turns a drive root such as `C:\` into the device namespace
// path `\\.\C:` that CreateFile accepts for volume handles.
func devicePath(root string) string {
	return `\\.\` + strings.TrimRight(root, `\/`)
}

// volumeDevicePath returns the path CreateFile accepts for a volume handle:
// `\\.\C:` for a drive-letter volume, otherwise the volume GUID path without
// its trailing separator, which also covers volumes mounted into a folder.
func volumeDevicePath(letter, guidPath *string) (string, bool) {
	if letter != nil && *letter != "" {
		return devicePath(*letter), true
	}
	if guidPath != nil && *guidPath != "" {
		return strings.TrimRight(*guidPath, `\`), true
	}
	return "", false
}

// physicalDrivePath names the Win32 device for a disk number.
func physicalDrivePath(n uint32) string {
	return fmt.Sprintf(`\\.\PhysicalDrive%d`, n)
}

// guidFromVolumePath extracts the GUID of a `\\?\Volume{GUID}\` path.
func guidFromVolumePath(p string) (string, bool) {
	start := strings.IndexByte(p, '{')
	end := strings.LastIndexByte(p, '}')
	if start < 0 || end <= start+1 {
		return "", false
	}
	return p[start+1 : end], true
}

// wqlString quotes s as a WQL string literal.
func wqlString(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `'`, `\'`)
	return "'" + s + "'"
}

// formatVolumeSerial renders a volume serial the way `vol` does: 1A2B-3C4D.
func formatVolumeSerial(serial uint32) string {
	return fmt.Sprintf("%04X-%04X", serial>>16, serial&0xFFFF)
}

// quotaStateName maps Win32_QuotaSetting.State.
func quotaStateName(state uint32) (string, bool) {
	switch state {
	case 0:
		return "disabled", true
	case 1:
		return "tracked", true
	case 2:
		return "enforced", true
	}
	return "", false
}

// bitLockerProtected maps Win32_EncryptableVolume.ProtectionStatus.
// Status 2 ("unknown") is reported for locked volumes and yields ok=false.
func bitLockerProtected(status uint32) (protected, ok bool) {
	switch status {
	case 0:
		return false, true
	case 1:
		return true, true
	}
	return false, false
}
