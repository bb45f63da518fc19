//go:build windows

package collector

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/nhdewitt/drivescope/internal/drive"
	"github.com/nhdewitt/drivescope/internal/platform"
	"github.com/yusufpapurcu/wmi"
)

var errNoRows = errors.New("query returned no rows")

// wmiSession is the subset of *wmi.SWbemServices the enricher uses.
type wmiSession interface {
	Query(query string, dst interface{}, connectServerArgs ...interface{}) error
	Close() error
}

func openSWbemServices() (wmiSession, error) {
	s, err := wmi.InitializeSWbemServices(wmi.DefaultClient)
	if err != nil {
		return nil, err
	}
	return s, nil
}

type windowsEnricher struct {
	privileged bool
	native     []Step
	openWMI    func() (wmiSession, error)
	logger     *slog.Logger
}

func NewEnricher(info platform.Info, logger *slog.Logger) Enricher {
	return &windowsEnricher{
		privileged: info.Privileged,
		native:     nativeSteps(),
		openWMI:    openSWbemServices,
		logger:     orDefault(logger),
	}
}

// Enrich runs the Win32 API steps, then the WMI steps over one session
// that is released before returning.
func (e *windowsEnricher) Enrich(ctx context.Context, r *drive.Record) {
	runSteps(ctx, e.logger, r, withPrivilege(e.privileged, e.native))
	if ctx.Err() != nil {
		return
	}

	s, err := e.openWMI()
	if err != nil {
		e.logger.Warn("WMI unavailable, skipping WMI steps",
			slog.String("root", r.RootPath),
			slog.Any("error", err),
		)
		return
	}
	defer s.Close()

	runSteps(ctx, e.logger, r, withPrivilege(e.privileged, wmiSteps(s)))
}

func hasDevicePath(r *drive.Record) bool {
	return r.Details.Windows != nil && r.Details.Windows.DevicePath != nil
}

func hasVolumeGUID(r *drive.Record) bool {
	return r.Details.Windows != nil && r.Details.Windows.VolumeGUIDPath != nil
}

func hasVolumeHandlePath(r *drive.Record) bool {
	return hasDriveLetter(r) || hasVolumeGUID(r)
}

func hasPhysicalDevicePath(r *drive.Record) bool {
	return r.Details.Windows != nil && r.Details.Windows.PhysicalDevicePath != nil
}

func nativeSteps() []Step {
	return []Step{
		{Name: "mount_point", Run: func(_ context.Context, r *drive.Record) error {
			r.MountPoint = drive.Ptr(r.RootPath)
			return nil
		}},
		{Name: "dos_device_name", Requires: hasDriveLetter, Run: func(_ context.Context, r *drive.Record) error {
			name, err := queryDosDevice(*r.DriveLetter)
			if err != nil {
				return err
			}
			r.Windows().DOSDeviceName = &name
			return nil
		}},
		{Name: "volume_guid_path", Run: func(_ context.Context, r *drive.Record) error {
			guidPath, err := volumeGUIDPath(r.RootPath)
			if err != nil {
				return err
			}
			r.Windows().VolumeGUIDPath = &guidPath
			if guid, ok := guidFromVolumePath(guidPath); ok {
				r.UUID = drive.Ptr(normalizeUUID(guid))
			}
			return nil
		}},
		{Name: "device_path", Requires: hasVolumeHandlePath, Run: func(_ context.Context, r *drive.Record) error {
			var guidPath *string
			if r.Details.Windows != nil {
				guidPath = r.Details.Windows.VolumeGUIDPath
			}
			p, ok := volumeDevicePath(r.DriveLetter, guidPath)
			if !ok {
				return fmt.Errorf("no device path for %s", r.RootPath)
			}
			r.Windows().DevicePath = &p
			return nil
		}},
		{Name: "volume_information", Run: func(_ context.Context, r *drive.Record) error {
			info, err := getVolumeInformation(r.RootPath)
			if err != nil {
				return err
			}
			w := r.Windows()
			if info.Label != "" {
				w.VolumeName = drive.Ptr(info.Label)
			}
			w.VolumeSerialNumber = drive.Ptr(formatVolumeSerial(info.Serial))
			w.MaxComponentLength = drive.Ptr(info.MaxComponentLength)
			w.FileSystemFlags = drive.Ptr(drive.FileSystemFlags(info.Flags))
			fs := drive.FileSystemFromName(info.FileSystem)
			r.FileSystem = &fs
			return nil
		}},
		{Name: "removable", Run: func(_ context.Context, r *drive.Record) error {
			t := getDriveType(r.RootPath)
			if t == driveUnknown || t == driveNoRootDir {
				return fmt.Errorf("no drive type for %s", r.RootPath)
			}
			r.IsRemovable = drive.Ptr(t == driveRemovable)
			return nil
		}},
		{Name: "physical_device_path", Requires: hasDevicePath, Run: func(_ context.Context, r *drive.Record) error {
			n, err := physicalDiskNumber(*r.Details.Windows.DevicePath)
			if err != nil {
				return err
			}
			r.Windows().PhysicalDevicePath = drive.Ptr(physicalDrivePath(n))
			return nil
		}},
	}
}

// queryFirst runs a WQL query for T's class and returns the first row.
func queryFirst[T any](s wmiSession, namespace, where string) (T, error) {
	var dst []T
	var zero T

	q := wmi.CreateQuery(&dst, where)
	if err := s.Query(q, &dst, nil, namespace); err != nil {
		return zero, fmt.Errorf("%s: %w", q, err)
	}
	if len(dst) == 0 {
		return zero, fmt.Errorf("%s: %w", q, errNoRows)
	}
	return dst[0], nil
}

func wmiSteps(s wmiSession) []Step {
	return []Step{
		{Name: "bitlocker", Requires: hasVolumeGUID, Elevated: true, Run: func(_ context.Context, r *drive.Record) error {
			where := "WHERE DeviceID = " + wqlString(*r.Details.Windows.VolumeGUIDPath)
			v, err := queryFirst[Win32_EncryptableVolume](s, nsEncryption, where)
			if err != nil {
				return err
			}
			if v.ProtectionStatus == nil {
				return errors.New("no protection status")
			}
			protected, ok := bitLockerProtected(*v.ProtectionStatus)
			if !ok {
				return fmt.Errorf("protection status unknown (%d)", *v.ProtectionStatus)
			}
			r.Windows().BitLockerEncrypted = &protected
			return nil
		}},
		{Name: "volume_block_size", Requires: hasVolumeGUID, Run: func(_ context.Context, r *drive.Record) error {
			where := "WHERE DeviceID = " + wqlString(*r.Details.Windows.VolumeGUIDPath)
			v, err := queryFirst[Win32_Volume](s, nsCIMV2, where)
			if err != nil {
				return err
			}
			if v.BlockSize == nil {
				return errors.New("no block size")
			}
			r.BlockSize = v.BlockSize
			return nil
		}},
		{Name: "disk_drive", Requires: hasPhysicalDevicePath, Run: func(_ context.Context, r *drive.Record) error {
			where := "WHERE DeviceID = " + wqlString(*r.Details.Windows.PhysicalDevicePath)
			d, err := queryFirst[Win32_DiskDrive](s, nsCIMV2, where)
			if err != nil {
				return err
			}
			applyDiskDrive(r, d)
			return nil
		}},
		{Name: "unc_path", Requires: hasDriveLetter, Run: func(_ context.Context, r *drive.Record) error {
			where := "WHERE DeviceID = " + wqlString(*r.DriveLetter)
			d, err := queryFirst[Win32_LogicalDisk](s, nsCIMV2, where)
			if err != nil {
				return err
			}
			if d.ProviderName != nil && *d.ProviderName != "" {
				r.Windows().UNCPath = d.ProviderName
			}
			return nil
		}},
		{Name: "quota_state", Requires: hasDriveLetter, Run: func(_ context.Context, r *drive.Record) error {
			where := "WHERE VolumePath = " + wqlString(*r.DriveLetter+`\`)
			q, err := queryFirst[Win32_QuotaSetting](s, nsCIMV2, where)
			if err != nil {
				return err
			}
			if q.State == nil {
				return errors.New("no quota state")
			}
			state, ok := quotaStateName(*q.State)
			if !ok {
				return fmt.Errorf("unexpected quota state %d", *q.State)
			}
			r.Windows().QuotaState = &state
			return nil
		}},
		{Name: "shadow_copies", Requires: hasVolumeGUID, Elevated: true, Run: func(_ context.Context, r *drive.Record) error {
			var dst []Win32_ShadowCopy
			q := wmi.CreateQuery(&dst, "WHERE VolumeName = "+wqlString(*r.Details.Windows.VolumeGUIDPath))
			if err := s.Query(q, &dst, nil, nsCIMV2); err != nil {
				return fmt.Errorf("%s: %w", q, err)
			}
			r.Windows().ShadowCopies = drive.Ptr(len(dst))
			return nil
		}},
	}
}

func applyDiskDrive(r *drive.Record, d Win32_DiskDrive) {
	w := r.Windows()
	w.Cylinders = d.TotalCylinders
	w.TracksPerCylinder = d.TracksPerCylinder
	w.SectorsPerTrack = d.SectorsPerTrack
	w.BytesPerSector = d.BytesPerSector
	w.MediaType = d.MediaType

	if d.SerialNumber != nil {
		if serial := strings.TrimSpace(*d.SerialNumber); serial != "" {
			r.SerialNumber = &serial
		}
	}
	if d.BytesPerSector != nil && r.SectorSize == nil {
		r.SectorSize = drive.Ptr(uint64(*d.BytesPerSector))
	}
}
