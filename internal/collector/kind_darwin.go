//go:build darwin

package collector

import (
	"context"

	"github.com/nhdewitt/drivescope/internal/drive"
	"github.com/nhdewitt/drivescope/internal/platform"
	"github.com/shirou/gopsutil/v4/disk"
)

func newMediaProbe(info platform.Info) mediaProbe {
	run := sharedDiskutil(info.DiskutilPath)
	return func(ctx context.Context, p disk.PartitionStat) drive.MediaKind {
		if drive.FileSystemFromName(p.Fstype).IsNetwork() {
			return drive.MediaNetwork
		}
		du, err := run(ctx, p.Mountpoint)
		if err != nil {
			return drive.MediaUnknown
		}
		return darwinMediaKind(du)
	}
}
