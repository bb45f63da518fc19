package collector

import (
	"context"
	"log/slog"

	"github.com/nhdewitt/drivescope/internal/drive"
	"github.com/nhdewitt/drivescope/internal/platform"
	"github.com/shirou/gopsutil/v4/disk"
)

// mediaProbe reports the native media kind of a partition's backing device.
type mediaProbe func(ctx context.Context, p disk.PartitionStat) drive.MediaKind

// partitionLister lists volumes through gopsutil.
type partitionLister struct {
	partitions func(ctx context.Context, all bool) ([]disk.PartitionStat, error)
	usage      func(ctx context.Context, path string) (*disk.UsageStat, error)
	media      mediaProbe
	logger     *slog.Logger
}

// NewDiskLister returns the host's generic disk listing.
func NewDiskLister(info platform.Info, logger *slog.Logger) DiskLister {
	return &partitionLister{
		partitions: disk.PartitionsWithContext,
		usage:      disk.UsageWithContext,
		media:      newMediaProbe(info),
		logger:     orDefault(logger),
	}
}

func (l *partitionLister) ListDisks(ctx context.Context) ([]NativeDisk, error) {
	parts, err := l.partitions(ctx, true)
	if err != nil {
		return nil, err
	}

	disks := make([]NativeDisk, 0, len(parts))

	for _, p := range parts {
		m := MountInfo{Device: p.Device, Mountpoint: p.Mountpoint, FSType: p.Fstype}
		if shouldIgnore(m) {
			continue
		}

		mount := rootPath(p.Mountpoint)

		usage, err := l.usage(ctx, mount)
		if err != nil {
			l.logger.Debug("skipping unreadable mount",
				slog.String("mount", mount),
				slog.Any("error", err),
			)
			continue
		}

		disks = append(disks, NativeDisk{
			MountPath:      mount,
			Name:           p.Device,
			FSType:         p.Fstype,
			TotalBytes:     usage.Total,
			AvailableBytes: usage.Free,
			Media:          l.media(ctx, p),
		})
	}

	return disks, nil
}

// rootPath turns a bare drive token such as "C:" into the root "C:\".
func rootPath(mount string) string {
	if letter, ok := driveLetter(mount); ok && len(mount) == 2 {
		return letter + `\`
	}
	return mount
}
