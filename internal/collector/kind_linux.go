//go:build linux

package collector

import (
	"context"

	"github.com/nhdewitt/drivescope/internal/drive"
	"github.com/nhdewitt/drivescope/internal/platform"
	"github.com/shirou/gopsutil/v4/disk"
)

func newMediaProbe(platform.Info) mediaProbe {
	sys := sysfs{root: defaultSysRoot}
	return func(_ context.Context, p disk.PartitionStat) drive.MediaKind {
		return sys.mediaKind(p.Device, p.Fstype)
	}
}
