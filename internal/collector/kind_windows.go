//go:build windows

package collector

import (
	"context"

	"github.com/nhdewitt/drivescope/internal/drive"
	"github.com/nhdewitt/drivescope/internal/platform"
	"github.com/shirou/gopsutil/v4/disk"
)

func newMediaProbe(platform.Info) mediaProbe {
	return func(_ context.Context, p disk.PartitionStat) drive.MediaKind {
		root := rootPath(p.Mountpoint)

		switch getDriveType(root) {
		case driveRemote:
			return drive.MediaNetwork
		case driveCdrom:
			return drive.MediaOptical
		case driveRamdisk:
			return drive.MediaRAMDisk
		case driveRemovable:
			return drive.MediaRemovable
		case driveFixed:
			seeks, err := incursSeekPenalty(devicePath(root))
			if err != nil {
				return drive.MediaUnknown
			}
			if seeks {
				return drive.MediaHDD
			}
			return drive.MediaSSD
		}
		return drive.MediaUnknown
	}
}
