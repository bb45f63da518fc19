package collector

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/nhdewitt/drivescope/internal/drive"
)

var errNotRaid = errors.New("not an md array")

// sectorBytes is the unit of /sys/block/*/size regardless of the
// device's real sector size.
const sectorBytes = 512

// readRaid describes the md array name from its sysfs md directory.
// Member states are counted from the dev-* entries.
func (s sysfs) readRaid(name string) (*drive.RaidInfo, error) {
	if _, err := os.Stat(s.path("block", name, "md")); err != nil {
		return nil, errNotRaid
	}

	level, err := s.readString("block", name, "md", "level")
	if err != nil {
		return nil, err
	}

	info := &drive.RaidInfo{Level: level}

	if n, err := s.readUint("block", name, "md", "raid_disks"); err == nil {
		info.NumDevices = int(n)
	}
	if n, err := s.readUint("block", name, "md", "degraded"); err == nil {
		info.Degraded = n > 0
	}
	if state, err := s.readString("block", name, "md", "array_state"); err == nil {
		info.ArrayState = state
	}
	if sectors, err := s.readUint("block", name, "size"); err == nil {
		info.TotalCapacity = sectors * sectorBytes
	}

	members, _ := filepath.Glob(s.path("block", name, "md", "dev-*"))
	for _, m := range members {
		data, err := os.ReadFile(filepath.Join(m, "state"))
		if err != nil {
			continue
		}
		switch state := strings.TrimSpace(string(data)); {
		case strings.Contains(state, "spare"):
			info.SpareDevices++
		case strings.Contains(state, "in_sync"):
			info.ActiveDevices++
		}
	}

	return info, nil
}
