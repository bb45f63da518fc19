//go:build windows

package collector

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/nhdewitt/drivescope/internal/drive"
)

type fakeSession struct {
	queries []string
	closed  int
}

func (f *fakeSession) Query(query string, dst interface{}, _ ...interface{}) error {
	f.queries = append(f.queries, query)

	status := uint32(1)
	blockSize := uint64(4096)
	state := uint32(2)
	bytesPerSector := uint32(512)

	switch d := dst.(type) {
	case *[]Win32_EncryptableVolume:
		*d = append(*d, Win32_EncryptableVolume{ProtectionStatus: &status})
	case *[]Win32_Volume:
		*d = append(*d, Win32_Volume{BlockSize: &blockSize})
	case *[]Win32_QuotaSetting:
		*d = append(*d, Win32_QuotaSetting{State: &state})
	case *[]Win32_ShadowCopy:
		*d = append(*d, Win32_ShadowCopy{}, Win32_ShadowCopy{})
	case *[]Win32_DiskDrive:
		serial := "  S3Z9NB0K123456  "
		*d = append(*d, Win32_DiskDrive{SerialNumber: &serial, BytesPerSector: &bytesPerSector})
	case *[]Win32_LogicalDisk:
		*d = append(*d, Win32_LogicalDisk{})
	default:
		return errors.New("unexpected destination")
	}
	return nil
}

func (f *fakeSession) Close() error {
	f.closed++
	return nil
}

func (f *fakeSession) queried(class string) bool {
	for _, q := range f.queries {
		if strings.Contains(q, class) {
			return true
		}
	}
	return false
}

func TestWindowsEnricher_GatesOnVolumeGUID(t *testing.T) {
	s := &fakeSession{}
	e := &windowsEnricher{
		native:  nil,
		openWMI: func() (wmiSession, error) { return s, nil },
		logger:  slog.Default(),
	}

	r := &drive.Record{RootPath: `\\server\share`}
	e.Enrich(context.Background(), r)

	if s.queried("Win32_EncryptableVolume") {
		t.Error("expected BitLocker lookup not to run without a volume GUID path")
	}
	if s.queried("Win32_ShadowCopy") {
		t.Error("expected shadow copy lookup not to run without a volume GUID path")
	}
	if r.Details.Windows != nil && r.Details.Windows.BitLockerEncrypted != nil {
		t.Error("expected BitLocker status absent")
	}
	if s.closed != 1 {
		t.Errorf("expected session closed once, got %d", s.closed)
	}
}

func TestWindowsEnricher_WMISteps(t *testing.T) {
	s := &fakeSession{}
	e := &windowsEnricher{
		native: []Step{
			{Name: "volume_guid_path", Run: func(_ context.Context, r *drive.Record) error {
				r.Windows().VolumeGUIDPath = drive.Ptr(`\\?\Volume{4c1b02c1-d990-11dc-99ae-806e6f6e6963}\`)
				r.Windows().PhysicalDevicePath = drive.Ptr(`\\.\PhysicalDrive0`)
				return nil
			}},
		},
		openWMI: func() (wmiSession, error) { return s, nil },
		logger:  slog.Default(),
	}

	r := &drive.Record{RootPath: `C:\`, DriveLetter: drive.Ptr("C:")}
	e.Enrich(context.Background(), r)

	w := r.Details.Windows
	if w.BitLockerEncrypted == nil || !*w.BitLockerEncrypted {
		t.Errorf("expected BitLocker protected, got %v", w.BitLockerEncrypted)
	}
	if r.BlockSize == nil || *r.BlockSize != 4096 {
		t.Errorf("unexpected block size %v", r.BlockSize)
	}
	if w.QuotaState == nil || *w.QuotaState != "enforced" {
		t.Errorf("unexpected quota state %v", w.QuotaState)
	}
	if w.ShadowCopies == nil || *w.ShadowCopies != 2 {
		t.Errorf("unexpected shadow copy count %v", w.ShadowCopies)
	}
	if r.SerialNumber == nil || *r.SerialNumber != "S3Z9NB0K123456" {
		t.Errorf("unexpected serial %v", r.SerialNumber)
	}
	if r.SectorSize == nil || *r.SectorSize != 512 {
		t.Errorf("unexpected sector size %v", r.SectorSize)
	}
	if w.UNCPath != nil {
		t.Errorf("expected no UNC path for a local drive, got %q", *w.UNCPath)
	}
	if s.closed != 1 {
		t.Errorf("expected session closed once, got %d", s.closed)
	}
}

func TestWindowsEnricher_WMIUnavailable(t *testing.T) {
	e := &windowsEnricher{
		native: []Step{
			{Name: "mount_point", Run: func(_ context.Context, r *drive.Record) error {
				r.MountPoint = drive.Ptr(r.RootPath)
				return nil
			}},
		},
		openWMI: func() (wmiSession, error) { return nil, errors.New("COM init failed") },
		logger:  slog.Default(),
	}

	r := &drive.Record{RootPath: `D:\`}
	e.Enrich(context.Background(), r)

	if r.MountPoint == nil {
		t.Error("expected native steps to keep their results")
	}
}
