package collector

import (
	"errors"
	"sort"
)

// ErrUnsupported is returned by QueryTopic on hosts without WMI.
var ErrUnsupported = errors.New("WMI queries are only supported on Windows")

// ErrUnknownTopic is returned by QueryTopic for a name Topics doesn't list.
var ErrUnknownTopic = errors.New("unknown WMI topic")

const (
	nsCIMV2      = `ROOT\CIMV2`
	nsStorage    = `ROOT\Microsoft\Windows\Storage`
	nsEncryption = `ROOT\CIMV2\Security\MicrosoftVolumeEncryption`
)

// Struct names match the WMI class names; the query builder derives the
// FROM clause from them. Every field is optional.

type Win32_DiskDrive struct {
	DeviceID          *string
	Index             *uint32
	Model             *string
	Manufacturer      *string
	SerialNumber      *string
	FirmwareRevision  *string
	InterfaceType     *string
	MediaType         *string
	PNPDeviceID       *string
	Status            *string
	Size              *uint64
	Partitions        *uint32
	BytesPerSector    *uint32
	SectorsPerTrack   *uint32
	TracksPerCylinder *uint32
	TotalCylinders    *uint64
	TotalHeads        *uint32
	TotalSectors      *uint64
	TotalTracks       *uint64
}

type Win32_DiskPartition struct {
	DeviceID         *string
	Name             *string
	Type             *string
	DiskIndex        *uint32
	Index            *uint32
	Size             *uint64
	StartingOffset   *uint64
	BlockSize        *uint64
	NumberOfBlocks   *uint64
	HiddenSectors    *uint32
	Bootable         *bool
	BootPartition    *bool
	PrimaryPartition *bool
}

type Win32_LogicalDisk struct {
	DeviceID           *string
	Description        *string
	DriveType          *uint32
	FileSystem         *string
	VolumeName         *string
	VolumeSerialNumber *string
	ProviderName       *string // UNC path for network drives
	FreeSpace          *uint64
	Size               *uint64
	Compressed         *bool
}

type Win32_Volume struct {
	DeviceID                     *string
	Name                         *string
	DriveLetter                  *string
	Label                        *string
	FileSystem                   *string
	DriveType                    *uint32
	Capacity                     *uint64
	FreeSpace                    *uint64
	BlockSize                    *uint64
	SerialNumber                 *uint32
	MaximumFileNameLength        *uint32
	Automount                    *bool
	BootVolume                   *bool
	SystemVolume                 *bool
	Compressed                   *bool
	DirtyBitSet                  *bool
	IndexingEnabled              *bool
	PageFilePresent              *bool
	QuotasEnabled                *bool
	SupportsDiskQuotas           *bool
	SupportsFileBasedCompression *bool
}

type Win32_DiskQuota struct {
	QuotaVolume   *string
	User          *string
	Status        *uint32
	DiskSpaceUsed *uint64
	Limit         *uint64
	WarningLimit  *uint64
}

type Win32_VolumeQuota struct {
	Element *string
	Setting *string
}

type Win32_QuotaSetting struct {
	VolumePath                  *string
	Caption                     *string
	Description                 *string
	SettingID                   *string
	State                       *uint32
	DefaultLimit                *int64
	DefaultWarningLimit         *int64
	ExceededNotification        *bool
	WarningExceededNotification *bool
}

type Win32_ShadowCopy struct {
	ID                 *string
	SetID              *string
	VolumeName         *string
	DeviceObject       *string
	InstallDate        *string
	OriginatingMachine *string
	ServiceMachine     *string
	ProviderID         *string
	Status             *string
	Count              *uint32
	State              *uint32
	ClientAccessible   *bool
	Persistent         *bool
	Differential       *bool
	ExposedLocally     *bool
	ExposedRemotely    *bool
	HardwareAssisted   *bool
	NoAutoRelease      *bool
	NoWriters          *bool
	Transportable      *bool
}

type Win32_DefragAnalysis struct {
	VolumeName                    *string
	VolumeSize                    *uint64
	ClusterSize                   *uint64
	UsedSpace                     *uint64
	FreeSpace                     *uint64
	FreeSpacePercent              *uint32
	AverageFileSize               *uint64
	AverageFragmentsPerFile       *float64
	AverageFreeSpacePerExtent     *uint64
	LargestFreeSpaceExtent        *uint64
	FilePercentFragmentation      *uint32
	FreeSpacePercentFragmentation *uint32
	TotalPercentFragmentation     *uint32
	TotalFiles                    *uint64
	TotalFolders                  *uint64
	TotalFragmentedFiles          *uint64
	FragmentedFolders             *uint64
	ExcessFolderFragments         *uint64
	TotalExcessFragments          *uint64
	TotalFreeSpaceExtents         *uint64
	TotalUnmovableFiles           *uint64
	MFTPercentInUse               *uint32
	MFTRecordCount                *uint64
	TotalMFTFragments             *uint64
	TotalMFTSize                  *uint64
	PageFileSize                  *uint64
	TotalPageFileFragments        *uint64
}

type Win32_PhysicalMedia struct {
	Tag            *string
	Name           *string
	SerialNumber   *string
	Manufacturer   *string
	Model          *string
	MediaType      *string
	Capacity       *uint64
	HotSwappable   *bool
	Removable      *bool
	Replaceable    *bool
	WriteProtectOn *bool
}

type Win32_EncryptableVolume struct {
	DeviceID                         *string
	DriveLetter                      *string
	PersistentVolumeID               *string
	ProtectionStatus                 *uint32
	ConversionStatus                 *uint32
	EncryptionMethod                 *uint32
	VolumeType                       *uint32
	IsVolumeInitializedForProtection *bool
}

type Win32_PerfFormattedData_PerfDisk_PhysicalDisk struct {
	Name                   *string
	PercentDiskTime        *uint64
	PercentDiskReadTime    *uint64
	PercentDiskWriteTime   *uint64
	PercentIdleTime        *uint64
	AvgDiskQueueLength     *uint64
	CurrentDiskQueueLength *uint32
	DiskBytesPersec        *uint64
	DiskReadBytesPersec    *uint64
	DiskWriteBytesPersec   *uint64
	DiskReadsPersec        *uint32
	DiskWritesPersec       *uint32
	DiskTransfersPersec    *uint32
	AvgDisksecPerRead      *uint32
	AvgDisksecPerWrite     *uint32
	AvgDisksecPerTransfer  *uint32
}

type MSFT_Disk struct {
	Number             *uint32
	FriendlyName       *string
	Model              *string
	Manufacturer       *string
	SerialNumber       *string
	FirmwareVersion    *string
	Path               *string
	Location           *string
	UniqueId           *string
	Guid               *string
	ObjectId           *string
	Size               *uint64
	AllocatedSize      *uint64
	LargestFreeExtent  *uint64
	LogicalSectorSize  *uint32
	PhysicalSectorSize *uint32
	NumberOfPartitions *uint32
	BusType            *uint16
	HealthStatus       *uint16
	PartitionStyle     *uint16
	ProvisioningType   *uint16
	OfflineReason      *uint16
	IsBoot             *bool
	IsSystem           *bool
	IsOffline          *bool
	IsReadOnly         *bool
	IsClustered        *bool
	IsHighlyAvailable  *bool
	IsScaleOut         *bool
	BootFromDisk       *bool
}

type MSFT_Partition struct {
	DiskNumber           *uint32
	PartitionNumber      *uint32
	DiskId               *string
	GptType              *string
	Guid                 *string
	UniqueId             *string
	ObjectId             *string
	Offset               *uint64
	Size                 *uint64
	MbrType              *uint16
	TransitionState      *uint16
	IsActive             *bool
	IsBoot               *bool
	IsHidden             *bool
	IsOffline            *bool
	IsReadOnly           *bool
	IsShadowCopy         *bool
	IsSystem             *bool
	IsDAX                *bool
	NoDefaultDriveLetter *bool
}

// wmiTopic is one class the `wmi` command can dump.
type wmiTopic struct {
	Class     string
	Namespace string
	// rows returns a pointer to an empty slice of the class's struct.
	rows func() any
}

var wmiTopics = map[string]wmiTopic{
	"disk_drive":        {"Win32_DiskDrive", nsCIMV2, func() any { return &[]Win32_DiskDrive{} }},
	"disk_partition":    {"Win32_DiskPartition", nsCIMV2, func() any { return &[]Win32_DiskPartition{} }},
	"logical_disk":      {"Win32_LogicalDisk", nsCIMV2, func() any { return &[]Win32_LogicalDisk{} }},
	"volume":            {"Win32_Volume", nsCIMV2, func() any { return &[]Win32_Volume{} }},
	"disk_quota":        {"Win32_DiskQuota", nsCIMV2, func() any { return &[]Win32_DiskQuota{} }},
	"volume_quota":      {"Win32_VolumeQuota", nsCIMV2, func() any { return &[]Win32_VolumeQuota{} }},
	"quota_setting":     {"Win32_QuotaSetting", nsCIMV2, func() any { return &[]Win32_QuotaSetting{} }},
	"shadow_copy":       {"Win32_ShadowCopy", nsCIMV2, func() any { return &[]Win32_ShadowCopy{} }},
	"defrag_analysis":   {"Win32_DefragAnalysis", nsCIMV2, func() any { return &[]Win32_DefragAnalysis{} }},
	"physical_media":    {"Win32_PhysicalMedia", nsCIMV2, func() any { return &[]Win32_PhysicalMedia{} }},
	"encryptable":       {"Win32_EncryptableVolume", nsEncryption, func() any { return &[]Win32_EncryptableVolume{} }},
	"perf_disk":         {"Win32_PerfFormattedData_PerfDisk_PhysicalDisk", nsCIMV2, func() any { return &[]Win32_PerfFormattedData_PerfDisk_PhysicalDisk{} }},
	"storage_disk":      {"MSFT_Disk", nsStorage, func() any { return &[]MSFT_Disk{} }},
	"storage_partition": {"MSFT_Partition", nsStorage, func() any { return &[]MSFT_Partition{} }},
}

// Topics lists the WMI topic names QueryTopic accepts, sorted.
func Topics() []string {
	names := make([]string, 0, len(wmiTopics))
	for name := range wmiTopics {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// TopicClass returns the WMI class queried for a topic.
func TopicClass(name string) (string, bool) {
	t, ok := wmiTopics[name]
	return t.Class, ok
}
