package collector

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"

	"github.com/nhdewitt/drivescope/internal/drive"
)

// diskutilInfo holds the "Key: value" lines of `diskutil info <mount>`.
type diskutilInfo map[string]string

type diskutilRunner func(ctx context.Context, mount string) (diskutilInfo, error)

// diskutilCache memoizes successful `diskutil info` results by mount, so
// the media probe and the enricher share one invocation per volume.
type diskutilCache struct {
	run diskutilRunner

	mu      sync.Mutex
	entries map[string]diskutilInfo
}

func newDiskutilCache(run diskutilRunner) *diskutilCache {
	return &diskutilCache{run: run, entries: make(map[string]diskutilInfo)}
}

func (c *diskutilCache) info(ctx context.Context, mount string) (diskutilInfo, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if info, ok := c.entries[mount]; ok {
		return info, nil
	}

	info, err := c.run(ctx, mount)
	if err != nil {
		return nil, err
	}
	c.entries[mount] = info

	return info, nil
}

func parseDiskutilInfo(r io.Reader) (diskutilInfo, error) {
	info := make(diskutilInfo)
	scanner := bufio.NewScanner(r)

	for scanner.Scan() {
		key, value, ok := strings.Cut(scanner.Text(), ":")
		if !ok {
			continue
		}
		key = strings.TrimSpace(key)
		value = strings.TrimSpace(value)
		if key == "" || value == "" {
			continue
		}
		if _, seen := info[key]; !seen {
			info[key] = value
		}
	}

	return info, scanner.Err()
}

// lookup returns the first non-empty value among keys.
func (d diskutilInfo) lookup(keys ...string) (string, bool) {
	for _, k := range keys {
		if v, ok := d[k]; ok {
			return v, true
		}
	}
	return "", false
}

// bytesValue parses sizes diskutil prints either as "4096 Bytes" or as
// "500.1 GB (500068036608 Bytes) (exactly …)".
func (d diskutilInfo) bytesValue(key string) (uint64, bool) {
	v, ok := d[key]
	if !ok {
		return 0, false
	}

	if open := strings.IndexByte(v, '('); open >= 0 {
		inner := v[open+1:]
		if fields := strings.Fields(inner); len(fields) >= 2 && strings.HasPrefix(fields[1], "Bytes") {
			n, err := strconv.ParseUint(fields[0], 10, 64)
			return n, err == nil
		}
	}

	fields := strings.Fields(v)
	if len(fields) == 0 {
		return 0, false
	}
	n, err := strconv.ParseUint(fields[0], 10, 64)
	return n, err == nil
}

// yesNo parses diskutil's "Yes"/"No" answers.
func (d diskutilInfo) yesNo(key string) (bool, bool) {
	switch strings.ToLower(d[key]) {
	case "yes":
		return true, true
	case "no":
		return false, true
	}
	return false, false
}

type diskutilLoader func(ctx context.Context) (diskutilInfo, error)

func darwinSteps(load diskutilLoader) []Step {
	return []Step{
		markerStep("mount_point", load, func(r *drive.Record, v string) {
			r.MountPoint = drive.Ptr(v)
		}, "Mount Point"),
		markerStep("file_system", load, func(r *drive.Record, v string) {
			fs := drive.FileSystemFromName(v)
			r.FileSystem = &fs
		}, "Type (Bundle)"),
		markerStep("uuid", load, func(r *drive.Record, v string) {
			r.UUID = drive.Ptr(normalizeUUID(v))
		}, "Volume UUID", "Disk / Partition UUID"),
		markerStep("serial_number", load, func(r *drive.Record, v string) {
			r.SerialNumber = drive.Ptr(v)
		}, "Disk Serial Number"),
		markerStep("device_identifier", load, func(r *drive.Record, v string) {
			r.Darwin().DeviceIdentifier = drive.Ptr(v)
		}, "Device Identifier"),
		markerStep("device_node", load, func(r *drive.Record, v string) {
			r.Darwin().DeviceNode = drive.Ptr(v)
		}, "Device Node"),
		markerStep("volume_role", load, func(r *drive.Record, v string) {
			r.Darwin().VolumeRole = drive.Ptr(v)
		}, "APFS Volume Role", "Volume Role"),
		markerStep("file_system_personality", load, func(r *drive.Record, v string) {
			r.Darwin().FileSystemPersonality = drive.Ptr(v)
		}, "File System Personality"),
		markerStep("protocol", load, func(r *drive.Record, v string) {
			r.Darwin().Protocol = drive.Ptr(v)
		}, "Protocol"),
		markerStep("removable", load, func(r *drive.Record, v string) {
			removable := strings.EqualFold(v, "Removable") || strings.EqualFold(v, "Yes")
			r.IsRemovable = &removable
		}, "Removable Media"),
		sizeStep("sector_size", load, func(r *drive.Record, n uint64) {
			r.SectorSize = &n
		}, "Device Block Size"),
		sizeStep("block_size", load, func(r *drive.Record, n uint64) {
			r.BlockSize = &n
		}, "Allocation Block Size"),
		sizeStep("container_size", load, func(r *drive.Record, n uint64) {
			r.Darwin().ContainerSize = &n
		}, "Container Total Space"),
	}
}

func markerStep(name string, load diskutilLoader, set func(*drive.Record, string), keys ...string) Step {
	return Step{
		Name: name,
		Run: func(ctx context.Context, r *drive.Record) error {
			info, err := load(ctx)
			if err != nil {
				return err
			}
			v, ok := info.lookup(keys...)
			if !ok {
				return fmt.Errorf("diskutil reported no %q", keys[0])
			}
			set(r, v)
			return nil
		},
	}
}

func sizeStep(name string, load diskutilLoader, set func(*drive.Record, uint64), key string) Step {
	return Step{
		Name: name,
		Run: func(ctx context.Context, r *drive.Record) error {
			info, err := load(ctx)
			if err != nil {
				return err
			}
			n, ok := info.bytesValue(key)
			if !ok {
				return fmt.Errorf("diskutil reported no %q", key)
			}
			set(r, n)
			return nil
		},
	}
}

func darwinMediaKind(du diskutilInfo) drive.MediaKind {
	if v, ok := du["Removable Media"]; ok && strings.EqualFold(v, "Removable") {
		return drive.MediaRemovable
	}
	if strings.Contains(du["Optical Drive Type"], "CD") || strings.Contains(du["Optical Drive Type"], "DVD") {
		return drive.MediaOptical
	}
	if ssd, ok := du.yesNo("Solid State"); ok {
		if ssd {
			return drive.MediaSSD
		}
		return drive.MediaHDD
	}
	return drive.MediaUnknown
}
