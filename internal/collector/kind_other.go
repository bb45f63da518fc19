//go:build !linux && !darwin && !windows

package collector

import (
	"context"

	"github.com/nhdewitt/drivescope/internal/drive"
	"github.com/nhdewitt/drivescope/internal/platform"
	"github.com/shirou/gopsutil/v4/disk"
)

// newMediaProbe only recognizes network shares; other hosts expose no
// portable rotational flag.
func newMediaProbe(platform.Info) mediaProbe {
	return func(_ context.Context, p disk.PartitionStat) drive.MediaKind {
		if drive.FileSystemFromName(p.Fstype).IsNetwork() {
			return drive.MediaNetwork
		}
		return drive.MediaUnknown
	}
}
