//go:build linux

package collector

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os/exec"
	"strings"

	"github.com/nhdewitt/drivescope/internal/drive"
	"github.com/nhdewitt/drivescope/internal/platform"
	"golang.org/x/sys/unix"
)

var errNoBlkid = errors.New("blkid not found")

type blkidRunner func(ctx context.Context, device string) (string, error)

type linuxEnricher struct {
	privileged bool
	sys        sysfs
	mounts     func() ([]MountInfo, error)
	blkid      blkidRunner
	statfs     func(path string) (unix.Statfs_t, error)
	logger     *slog.Logger
}

func NewEnricher(info platform.Info, logger *slog.Logger) Enricher {
	return &linuxEnricher{
		privileged: info.Privileged,
		sys:        sysfs{root: defaultSysRoot},
		mounts:     parseMounts,
		blkid:      commandBlkid(info.BlkidPath),
		statfs:     statfs,
		logger:     orDefault(logger),
	}
}

func commandBlkid(path string) blkidRunner {
	return func(ctx context.Context, device string) (string, error) {
		if path == "" {
			return "", errNoBlkid
		}
		out, err := exec.CommandContext(ctx, path, device).Output()
		if err != nil {
			return "", fmt.Errorf("blkid %s: %w", device, err)
		}
		return string(out), nil
	}
}

func statfs(path string) (unix.Statfs_t, error) {
	var stat unix.Statfs_t
	err := unix.Statfs(path, &stat)
	return stat, err
}

func (e *linuxEnricher) Enrich(ctx context.Context, r *drive.Record) {
	runSteps(ctx, e.logger, r, withPrivilege(e.privileged, e.steps()))
}

func (e *linuxEnricher) steps() []Step {
	return []Step{
		{Name: "mount_table", Run: e.mountTable},
		{Name: "uuid", Requires: hasBlockDevice, Run: e.uuid, Elevated: true},
		{Name: "sector_size", Requires: hasBlockDevice, Run: e.sectorSize},
		{Name: "block_size", Requires: hasBlockDevice, Run: e.blockSize},
		{Name: "serial_number", Requires: hasBlockDevice, Run: e.serialNumber},
		{Name: "removable", Requires: hasBlockDevice, Run: e.removable},
		{Name: "inodes", Run: e.inodes},
		{Name: "raid", Requires: hasBlockDevice, Run: e.raid},
	}
}

func hasBlockDevice(r *drive.Record) bool {
	l := r.Details.Linux
	return l != nil && l.DeviceNode != nil && strings.HasPrefix(*l.DeviceNode, "/dev/")
}

// parentOf returns the whole-disk sysfs name backing the record's device.
func (e *linuxEnricher) parentOf(r *drive.Record) (string, error) {
	name, ok := blockName(*r.Details.Linux.DeviceNode)
	if !ok {
		return "", fmt.Errorf("no block device for %s", *r.Details.Linux.DeviceNode)
	}
	return e.sys.parentDisk(name), nil
}

func (e *linuxEnricher) mountTable(_ context.Context, r *drive.Record) error {
	mounts, err := e.mounts()
	if err != nil {
		return fmt.Errorf("reading mount table: %w", err)
	}

	m, ok := findMount(mounts, r.RootPath)
	if !ok {
		return fmt.Errorf("%s not in mount table", r.RootPath)
	}

	l := r.Linux()
	l.DeviceNode = drive.Ptr(m.Device)
	l.MountOptions = m.Options
	r.MountPoint = drive.Ptr(m.Mountpoint)
	fs := drive.FileSystemFromName(m.FSType)
	r.FileSystem = &fs

	return nil
}

func (e *linuxEnricher) uuid(ctx context.Context, r *drive.Record) error {
	out, err := e.blkid(ctx, *r.Details.Linux.DeviceNode)
	if err != nil {
		return err
	}

	tags := parseBlkid(out)
	id, ok := tags["UUID"]
	if !ok || id == "" {
		return fmt.Errorf("blkid reported no UUID for %s", *r.Details.Linux.DeviceNode)
	}
	r.UUID = drive.Ptr(normalizeUUID(id))

	return nil
}

func (e *linuxEnricher) sectorSize(_ context.Context, r *drive.Record) error {
	parent, err := e.parentOf(r)
	if err != nil {
		return err
	}

	sector, err := e.sys.readUint("block", parent, "queue", "hw_sector_size")
	if err != nil {
		return err
	}
	r.SectorSize = &sector

	return nil
}

func (e *linuxEnricher) blockSize(_ context.Context, r *drive.Record) error {
	parent, err := e.parentOf(r)
	if err != nil {
		return err
	}

	block, err := e.sys.readUint("block", parent, "queue", "logical_block_size")
	if err != nil {
		return err
	}
	r.BlockSize = &block

	return nil
}

func (e *linuxEnricher) serialNumber(_ context.Context, r *drive.Record) error {
	parent, err := e.parentOf(r)
	if err != nil {
		return err
	}

	serial, err := e.sys.readString("block", parent, "device", "serial")
	if err != nil {
		return err
	}
	if serial == "" {
		return fmt.Errorf("empty serial for %s", parent)
	}
	r.SerialNumber = &serial

	return nil
}

func (e *linuxEnricher) removable(_ context.Context, r *drive.Record) error {
	parent, err := e.parentOf(r)
	if err != nil {
		return err
	}

	removable, err := e.sys.readBool("block", parent, "removable")
	if err != nil {
		return err
	}
	r.IsRemovable = &removable

	return nil
}

func (e *linuxEnricher) inodes(_ context.Context, r *drive.Record) error {
	stat, err := e.statfs(r.RootPath)
	if err != nil {
		return fmt.Errorf("statfs %s: %w", r.RootPath, err)
	}

	// btrfs and most network file systems don't track inodes.
	if stat.Files == 0 {
		return nil
	}

	r.Linux().Inodes = &drive.InodeCount{
		Used:  stat.Files - stat.Ffree,
		Total: stat.Files,
	}

	return nil
}

func (e *linuxEnricher) raid(_ context.Context, r *drive.Record) error {
	parent, err := e.parentOf(r)
	if err != nil {
		return err
	}
	if !strings.HasPrefix(parent, "md") {
		return nil
	}

	info, err := e.sys.readRaid(parent)
	if errors.Is(err, errNotRaid) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("reading md array %s: %w", parent, err)
	}

	info.AvailableCapacity = r.AvailableBytes
	r.Linux().Raid = info

	return nil
}
