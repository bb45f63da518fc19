package collector

import (
	"context"
	"errors"
	"fmt"

	"github.com/nhdewitt/drivescope/internal/drive"
)

// ErrEmptyDriveInfo is returned when the host reports no volumes at all.
var ErrEmptyDriveInfo = errors.New("no drive information available")

// NativeDisk is one volume as reported by the host's generic disk listing.
type NativeDisk struct {
	MountPath      string
	Name           string
	FSType         string
	TotalBytes     uint64
	AvailableBytes uint64
	Media          drive.MediaKind
}

// DiskLister lists the volumes mounted on the host.
type DiskLister interface {
	ListDisks(ctx context.Context) ([]NativeDisk, error)
}

// Enumerate builds one record skeleton per listed volume. The lister is
// called exactly once. Volumes with a RootPath already seen are dropped.
func Enumerate(ctx context.Context, lister DiskLister) ([]drive.Record, error) {
	records, _, err := enumerate(ctx, lister)
	return records, err
}

// enumerate also returns the listed file system type of each record, by
// index.
func enumerate(ctx context.Context, lister DiskLister) ([]drive.Record, []string, error) {
	disks, err := lister.ListDisks(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("listing disks: %w", err)
	}
	if len(disks) == 0 {
		return nil, nil, ErrEmptyDriveInfo
	}

	records := make([]drive.Record, 0, len(disks))
	fsTypes := make([]string, 0, len(disks))
	seen := make(map[string]struct{}, len(disks))

	for _, d := range disks {
		if _, dup := seen[d.MountPath]; dup {
			continue
		}
		seen[d.MountPath] = struct{}{}

		records = append(records, newRecord(d))
		fsTypes = append(fsTypes, d.FSType)
	}

	return records, fsTypes, nil
}

func newRecord(d NativeDisk) drive.Record {
	available := d.AvailableBytes
	if available > d.TotalBytes {
		available = d.TotalBytes
	}

	r := drive.Record{
		RootPath:       d.MountPath,
		Name:           d.Name,
		Kind:           drive.KindOf(d.Media),
		TotalBytes:     d.TotalBytes,
		AvailableBytes: available,
	}

	if letter, ok := driveLetter(d.MountPath); ok {
		r.DriveLetter = &letter
	}

	return r
}

// driveLetter returns the "X:" token when path starts with a drive letter
// component, as in `C:\` or `d:`.
func driveLetter(path string) (string, bool) {
	if len(path) < 2 || path[1] != ':' {
		return "", false
	}
	c := path[0]
	if (c < 'A' || c > 'Z') && (c < 'a' || c > 'z') {
		return "", false
	}
	if len(path) > 2 && path[2] != '\\' && path[2] != '/' {
		return "", false
	}
	return string(c&^0x20) + ":", true
}
