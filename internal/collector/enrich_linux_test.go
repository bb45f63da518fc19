//go:build linux

package collector

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/nhdewitt/drivescope/internal/drive"
	"github.com/nhdewitt/drivescope/internal/platform"
	"golang.org/x/sys/unix"
)

func newTestLinuxEnricher(t *testing.T, mounts []MountInfo) (*linuxEnricher, string) {
	t.Helper()
	root := t.TempDir()

	writeSysFile(t, root, "block/sdb/removable", "0")
	writeSysFile(t, root, "block/sdb/queue/hw_sector_size", "512")
	writeSysFile(t, root, "block/sdb/queue/logical_block_size", "4096")
	writeSysFile(t, root, "block/sdb/device/serial", "WD-WCC4E1234567")

	writeSysFile(t, root, "block/md0/size", "4096")
	writeSysFile(t, root, "block/md0/removable", "0")
	writeSysFile(t, root, "block/md0/queue/hw_sector_size", "512")
	writeSysFile(t, root, "block/md0/md/level", "raid5")
	writeSysFile(t, root, "block/md0/md/raid_disks", "3")
	writeSysFile(t, root, "block/md0/md/degraded", "0")
	writeSysFile(t, root, "block/md0/md/array_state", "active")
	writeSysFile(t, root, "block/md0/md/dev-sda1/state", "in_sync")
	writeSysFile(t, root, "block/md0/md/dev-sdc1/state", "in_sync")
	writeSysFile(t, root, "block/md0/md/dev-sdd1/state", "in_sync")

	e := &linuxEnricher{
		sys:    sysfs{root: root},
		mounts: func() ([]MountInfo, error) { return mounts, nil },
		blkid: func(_ context.Context, device string) (string, error) {
			return device + `: UUID="3E6B0C2A-1F7D-4C9A-9E21-6A7B8C9D0E1F" TYPE="ext4"`, nil
		},
		statfs: func(string) (unix.Statfs_t, error) {
			return unix.Statfs_t{Files: 1000, Ffree: 400}, nil
		},
		logger: slog.Default(),
	}
	return e, root
}

func TestLinuxEnricher_Enrich(t *testing.T) {
	e, _ := newTestLinuxEnricher(t, []MountInfo{
		{Device: "/dev/sdb1", Mountpoint: "/data", FSType: "ext4", Options: []string{"rw", "noatime"}},
	})

	r := &drive.Record{RootPath: "/data", TotalBytes: 100, AvailableBytes: 40}
	e.Enrich(context.Background(), r)

	l := r.Details.Linux
	if l == nil || r.Details.Host != drive.HostLinux {
		t.Fatalf("expected linux details, got %+v", r.Details)
	}
	if l.DeviceNode == nil || *l.DeviceNode != "/dev/sdb1" {
		t.Errorf("unexpected device node %v", l.DeviceNode)
	}
	if !reflect.DeepEqual(l.MountOptions, []string{"rw", "noatime"}) {
		t.Errorf("unexpected mount options %v", l.MountOptions)
	}
	if r.MountPoint == nil || *r.MountPoint != "/data" {
		t.Errorf("unexpected mount point %v", r.MountPoint)
	}
	if r.FileSystem == nil || r.FileSystem.Family != drive.FamilyExt4 {
		t.Errorf("expected ext4, got %v", r.FileSystem)
	}
	if r.UUID == nil || *r.UUID != "3e6b0c2a-1f7d-4c9a-9e21-6a7b8c9d0e1f" {
		t.Errorf("unexpected UUID %v", r.UUID)
	}
	if r.SectorSize == nil || *r.SectorSize != 512 {
		t.Errorf("unexpected sector size %v", r.SectorSize)
	}
	if r.BlockSize == nil || *r.BlockSize != 4096 {
		t.Errorf("unexpected block size %v", r.BlockSize)
	}
	if r.SerialNumber == nil || *r.SerialNumber != "WD-WCC4E1234567" {
		t.Errorf("unexpected serial %v", r.SerialNumber)
	}
	if r.IsRemovable == nil || *r.IsRemovable {
		t.Errorf("expected not removable, got %v", r.IsRemovable)
	}
	if l.Inodes == nil || *l.Inodes != (drive.InodeCount{Used: 600, Total: 1000}) {
		t.Errorf("unexpected inodes %v", l.Inodes)
	}
	if l.Raid != nil {
		t.Errorf("expected no RAID info, got %+v", l.Raid)
	}
}

func TestLinuxEnricher_BlkidFailureKeepsSiblings(t *testing.T) {
	e, _ := newTestLinuxEnricher(t, []MountInfo{
		{Device: "/dev/sdb1", Mountpoint: "/data", FSType: "xfs"},
	})
	e.blkid = func(context.Context, string) (string, error) {
		return "", errNoBlkid
	}

	r := &drive.Record{RootPath: "/data"}
	e.Enrich(context.Background(), r)

	if r.UUID != nil {
		t.Errorf("expected UUID absent, got %q", *r.UUID)
	}
	if r.Details.Linux.DeviceNode == nil || r.SectorSize == nil || r.SerialNumber == nil {
		t.Errorf("expected sibling fields populated, got %+v", r)
	}
}

func TestLinuxEnricher_SectorAndBlockSizeIndependent(t *testing.T) {
	tests := []struct {
		name          string
		missing       string
		expectSector  bool
		expectBlock   bool
		expectFailure string
	}{
		{"sector size missing", "hw_sector_size", false, true, "step=sector_size"},
		{"block size missing", "logical_block_size", true, false, "step=block_size"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, root := newTestLinuxEnricher(t, []MountInfo{
				{Device: "/dev/sdb1", Mountpoint: "/data", FSType: "ext4"},
			})
			if err := os.Remove(filepath.Join(root, "block", "sdb", "queue", tt.missing)); err != nil {
				t.Fatal(err)
			}
			var logs bytes.Buffer
			e.logger = newTestLogger(&logs)

			r := &drive.Record{RootPath: "/data"}
			e.Enrich(context.Background(), r)

			if tt.expectSector && (r.SectorSize == nil || *r.SectorSize != 512) {
				t.Errorf("expected sector size 512, got %v", r.SectorSize)
			}
			if !tt.expectSector && r.SectorSize != nil {
				t.Errorf("expected sector size absent, got %d", *r.SectorSize)
			}
			if tt.expectBlock && (r.BlockSize == nil || *r.BlockSize != 4096) {
				t.Errorf("expected block size 4096, got %v", r.BlockSize)
			}
			if !tt.expectBlock && r.BlockSize != nil {
				t.Errorf("expected block size absent, got %d", *r.BlockSize)
			}
			if !strings.Contains(logs.String(), tt.expectFailure) {
				t.Errorf("expected %q in logs, got %q", tt.expectFailure, logs.String())
			}
		})
	}
}

func TestLinuxEnricher_BlkidFailureNamesPrivilege(t *testing.T) {
	tests := []struct {
		privileged bool
		wantHint   bool
	}{
		{false, true},
		{true, false},
	}

	for _, tt := range tests {
		e, _ := newTestLinuxEnricher(t, []MountInfo{
			{Device: "/dev/sdb1", Mountpoint: "/data", FSType: "ext4"},
		})
		e.privileged = tt.privileged
		e.blkid = func(context.Context, string) (string, error) {
			return "", errors.New("exit status 2")
		}
		var logs bytes.Buffer
		e.logger = newTestLogger(&logs)

		e.Enrich(context.Background(), &drive.Record{RootPath: "/data"})

		out := logs.String()
		if !strings.Contains(out, "step=uuid") {
			t.Errorf("privileged=%v: expected uuid failure logged, got %s", tt.privileged, out)
		}
		if got := strings.Contains(out, platform.ErrNotPrivileged.Error()); got != tt.wantHint {
			t.Errorf("privileged=%v: expected hint %v, got %v", tt.privileged, tt.wantHint, got)
		}
	}
}

func TestLinuxEnricher_NotInMountTable(t *testing.T) {
	e, _ := newTestLinuxEnricher(t, nil)

	blkidCalled := false
	e.blkid = func(context.Context, string) (string, error) {
		blkidCalled = true
		return "", nil
	}

	r := &drive.Record{RootPath: "/mnt/gone"}
	e.Enrich(context.Background(), r)

	if blkidCalled {
		t.Error("expected blkid not to run without a device node")
	}
	if r.UUID != nil || r.SectorSize != nil || r.FileSystem != nil {
		t.Errorf("expected device fields absent, got %+v", r)
	}
	if r.Details.Linux == nil || r.Details.Linux.Inodes == nil {
		t.Error("expected inode counts from statfs regardless of the mount table")
	}
}

func TestLinuxEnricher_NetworkMount(t *testing.T) {
	e, _ := newTestLinuxEnricher(t, []MountInfo{
		{Device: "server:/export", Mountpoint: "/mnt/nfs", FSType: "nfs4"},
	})
	e.statfs = func(string) (unix.Statfs_t, error) {
		return unix.Statfs_t{}, nil
	}

	r := &drive.Record{RootPath: "/mnt/nfs"}
	e.Enrich(context.Background(), r)

	if r.FileSystem == nil || !r.FileSystem.IsNetwork() {
		t.Errorf("expected network file system, got %v", r.FileSystem)
	}
	if r.UUID != nil || r.SerialNumber != nil {
		t.Error("expected no block device lookups for a network mount")
	}
	if r.Details.Linux.Inodes != nil {
		t.Errorf("expected no inode counts when the file system reports none, got %+v", r.Details.Linux.Inodes)
	}
}

func TestLinuxEnricher_Raid(t *testing.T) {
	e, _ := newTestLinuxEnricher(t, []MountInfo{
		{Device: "/dev/md0", Mountpoint: "/srv", FSType: "ext4"},
	})

	r := &drive.Record{RootPath: "/srv", TotalBytes: 2000000, AvailableBytes: 500000}
	e.Enrich(context.Background(), r)

	raid := r.Details.Linux.Raid
	if raid == nil {
		t.Fatal("expected RAID info")
	}
	if raid.Level != "raid5" || raid.NumDevices != 3 || raid.ActiveDevices != 3 || raid.Degraded {
		t.Errorf("unexpected RAID info %+v", raid)
	}
	if raid.TotalCapacity != 4096*512 {
		t.Errorf("expected total capacity %d, got %d", 4096*512, raid.TotalCapacity)
	}
	if raid.AvailableCapacity != 500000 {
		t.Errorf("expected available capacity from the record, got %d", raid.AvailableCapacity)
	}
}

func TestLinuxEnricher_MountTableError(t *testing.T) {
	e, _ := newTestLinuxEnricher(t, nil)
	e.mounts = func() ([]MountInfo, error) {
		return nil, errors.New("no /proc")
	}

	r := &drive.Record{RootPath: "/"}
	e.Enrich(context.Background(), r)

	if r.MountPoint != nil || r.FileSystem != nil {
		t.Errorf("expected mount fields absent, got %+v", r)
	}
}
