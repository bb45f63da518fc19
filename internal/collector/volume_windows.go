//go:build windows

package collector

import (
	"errors"
	"fmt"
	"strings"
	"unsafe"

	"golang.org/x/sys/windows"
)

func withTrailingSeparator(root string) string {
	if strings.HasSuffix(root, `\`) {
		return root
	}
	return root + `\`
}

func openVolume(path string) (windows.Handle, error) {
	pathPtr, err := windows.UTF16PtrFromString(path)
	if err != nil {
		return windows.InvalidHandle, err
	}

	return windows.CreateFile(
		pathPtr,
		0,
		windows.FILE_SHARE_READ|windows.FILE_SHARE_WRITE,
		nil,
		windows.OPEN_EXISTING,
		0,
		0,
	)
}

func getDriveType(root string) uint32 {
	rootPtr, err := windows.UTF16PtrFromString(withTrailingSeparator(root))
	if err != nil {
		return driveUnknown
	}
	ret, _, _ := procGetDriveType.Call(uintptr(unsafe.Pointer(rootPtr)))
	return uint32(ret)
}

// queryDosDevice resolves a drive token such as "C:" to its NT device
// name, e.g. \Device\HarddiskVolume3.
func queryDosDevice(letter string) (string, error) {
	namePtr, err := windows.UTF16PtrFromString(letter)
	if err != nil {
		return "", err
	}

	buf := make([]uint16, maxPathLen)
	n, err := windows.QueryDosDevice(namePtr, &buf[0], uint32(len(buf)))
	if err != nil {
		return "", fmt.Errorf("QueryDosDevice %s: %w", letter, err)
	}

	// The result is a list of NUL-terminated names; the first is current.
	return windows.UTF16ToString(buf[:n]), nil
}

func volumeGUIDPath(root string) (string, error) {
	rootPtr, err := windows.UTF16PtrFromString(withTrailingSeparator(root))
	if err != nil {
		return "", err
	}

	buf := make([]uint16, maxPathLen)
	if err := windows.GetVolumeNameForVolumeMountPoint(rootPtr, &buf[0], uint32(len(buf))); err != nil {
		return "", fmt.Errorf("GetVolumeNameForVolumeMountPoint %s: %w", root, err)
	}

	return windows.UTF16ToString(buf), nil
}

type volumeInformation struct {
	Label              string
	Serial             uint32
	MaxComponentLength uint32
	Flags              uint32
	FileSystem         string
}

func getVolumeInformation(root string) (volumeInformation, error) {
	rootPtr, err := windows.UTF16PtrFromString(withTrailingSeparator(root))
	if err != nil {
		return volumeInformation{}, err
	}

	var volNameBuf [maxPathLen]uint16
	var fsNameBuf [maxPathLen]uint16
	var info volumeInformation

	ret, _, callErr := procGetVolumeInformation.Call(
		uintptr(unsafe.Pointer(rootPtr)),
		uintptr(unsafe.Pointer(&volNameBuf[0])),
		uintptr(len(volNameBuf)),
		uintptr(unsafe.Pointer(&info.Serial)),
		uintptr(unsafe.Pointer(&info.MaxComponentLength)),
		uintptr(unsafe.Pointer(&info.Flags)),
		uintptr(unsafe.Pointer(&fsNameBuf[0])),
		uintptr(len(fsNameBuf)),
	)
	if ret == 0 {
		return volumeInformation{}, fmt.Errorf("GetVolumeInformation %s: %w", root, callErr)
	}

	info.Label = windows.UTF16ToString(volNameBuf[:])
	info.FileSystem = windows.UTF16ToString(fsNameBuf[:])

	return info, nil
}

// physicalDiskNumber returns the number of the first disk a volume spans.
func physicalDiskNumber(devPath string) (uint32, error) {
	handle, err := openVolume(devPath)
	if err != nil {
		return 0, fmt.Errorf("opening %s: %w", devPath, err)
	}
	defer windows.CloseHandle(handle)

	var extents volumeDiskExtents
	var bytesReturned uint32

	err = windows.DeviceIoControl(
		handle,
		ioctlVolumeGetVolumeDiskExtents,
		nil,
		0,
		(*byte)(unsafe.Pointer(&extents)),
		uint32(unsafe.Sizeof(extents)),
		&bytesReturned,
		nil,
	)
	// ERROR_MORE_DATA still fills in the first extent.
	if err != nil && !errors.Is(err, windows.ERROR_MORE_DATA) {
		return 0, fmt.Errorf("disk extents for %s: %w", devPath, err)
	}

	if extents.NumberOfDiskExtents > 0 {
		return extents.Extents[0].DiskNumber, nil
	}

	return 0, fmt.Errorf("no extents found for %s", devPath)
}

// incursSeekPenalty asks the storage stack whether the device behind a
// volume has rotational seek cost.
func incursSeekPenalty(devPath string) (bool, error) {
	handle, err := openVolume(devPath)
	if err != nil {
		return false, err
	}
	defer windows.CloseHandle(handle)

	query := storagePropertyQuery{
		PropertyId: storageDeviceSeekPenaltyProperty,
		QueryType:  storageStandardQuery,
	}
	var desc deviceSeekPenaltyDescriptor
	var bytesReturned uint32

	err = windows.DeviceIoControl(
		handle,
		ioctlStorageQueryProperty,
		(*byte)(unsafe.Pointer(&query)),
		uint32(unsafe.Sizeof(query)),
		(*byte)(unsafe.Pointer(&desc)),
		uint32(unsafe.Sizeof(desc)),
		&bytesReturned,
		nil,
	)
	if err != nil {
		return false, err
	}

	return desc.IncursSeekPenalty, nil
}
