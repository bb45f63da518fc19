//go:build windows

package collector

import (
	"golang.org/x/sys/windows"
)

const (
	// Disk: Drive Types

	driveUnknown   = 0
	driveNoRootDir = 1
	driveRemovable = 2
	driveFixed     = 3
	driveRemote    = 4
	driveCdrom     = 5
	driveRamdisk   = 6

	// Disk: IOCTL Codes

	ioctlStorageQueryProperty       = 0x2D1400
	ioctlVolumeGetVolumeDiskExtents = 0x560000

	// Disk: Property Types

	storageDeviceSeekPenaltyProperty = 7 // PropertyId
	storageStandardQuery             = 0 // QueryType

	// Buffer sizes, in UTF-16 code units

	maxPathLen = windows.MAX_PATH + 1
)

// --- Struct Definitions ---

type storagePropertyQuery struct {
	PropertyId           uint32
	QueryType            uint32
	AdditionalParameters [1]byte
}

type deviceSeekPenaltyDescriptor struct {
	Version           uint32
	Size              uint32
	IncursSeekPenalty bool
}

type diskExtent struct {
	DiskNumber     uint32
	StartingOffset int64
	ExtentLength   int64
}

type volumeDiskExtents struct {
	NumberOfDiskExtents uint32
	Extents             [1]diskExtent
}

// --- DLL & Procedure Handles

var (
	kernel32 = windows.NewLazySystemDLL("kernel32.dll")

	procGetDriveType         = kernel32.NewProc("GetDriveTypeW")
	procGetVolumeInformation = kernel32.NewProc("GetVolumeInformationW")
)
