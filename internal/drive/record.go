package drive

import "time"

// Host tags which platform variant of Details is populated.
type Host string

const (
	HostNone    Host = ""
	HostWindows Host = "windows"
	HostLinux   Host = "linux"
	HostDarwin  Host = "darwin"
)

// Record is the unified description of one mounted volume. Identity,
// capacity and Kind are always set by enumeration; every pointer field is
// optional and stays nil until a lookup resolves it.
type Record struct {
	RootPath    string  `json:"root_path"`
	Name        string  `json:"drive_name"`
	DriveLetter *string `json:"drive_letter"`

	Kind       Kind        `json:"drive_type"`
	FileSystem *FileSystem `json:"file_system_type"`

	TotalBytes     uint64 `json:"total_space"`
	AvailableBytes uint64 `json:"available_space"`

	NumFiles uint64        `json:"num_files"`
	NumDirs  uint64        `json:"num_dirs"`
	Elapsed  time.Duration `json:"time_nanoseconds"`

	UUID         *string `json:"uuid"`
	SerialNumber *string `json:"serial_number"`
	MountPoint   *string `json:"mount_point"`
	SectorSize   *uint64 `json:"sector_size"`
	BlockSize    *uint64 `json:"block_size"`
	IsRemovable  *bool   `json:"is_removable"`

	Details Details `json:"details"`
}

// Details holds the attributes only one host can provide. Host names the
// populated variant; the others are nil.
type Details struct {
	Host    Host            `json:"host,omitempty"`
	Windows *WindowsDetails `json:"windows,omitempty"`
	Linux   *LinuxDetails   `json:"linux,omitempty"`
	Darwin  *DarwinDetails  `json:"darwin,omitempty"`
}

type WindowsDetails struct {
	DOSDeviceName      *string          `json:"dos_device_name"`      // \Device\HarddiskVolume3
	DevicePath         *string          `json:"device_path"`          // \\.\C:
	VolumeGUIDPath     *string          `json:"volume_guid_path"`     // \\?\Volume{GUID}\
	PhysicalDevicePath *string          `json:"physical_device_path"` // \\.\PhysicalDrive0
	UNCPath            *string          `json:"unc_path"`
	VolumeSerialNumber *string          `json:"volume_serial_number"`
	VolumeName         *string          `json:"volume_name"`
	MaxComponentLength *uint32          `json:"max_component_length"`
	FileSystemFlags    *FileSystemFlags `json:"file_system_flags"`
	BitLockerEncrypted *bool            `json:"is_bitlocker_encrypted"`
	Cylinders          *uint64          `json:"cylinders"`
	TracksPerCylinder  *uint32          `json:"tracks_per_cylinder"`
	SectorsPerTrack    *uint32          `json:"sectors_per_track"`
	BytesPerSector     *uint32          `json:"bytes_per_sector"`
	MediaType          *string          `json:"media_type"`
	QuotaState         *string          `json:"quota_state"`
	ShadowCopies       *int             `json:"shadow_copies"`
}

type LinuxDetails struct {
	DeviceNode   *string     `json:"device_node"`
	MountOptions []string    `json:"mount_options"`
	Inodes       *InodeCount `json:"inode_count"`
	Raid         *RaidInfo   `json:"raid_info"`
}

type DarwinDetails struct {
	DeviceIdentifier      *string `json:"device_identifier"`
	DeviceNode            *string `json:"device_node"`
	ContainerSize         *uint64 `json:"container_size"`
	VolumeRole            *string `json:"volume_role"`
	FileSystemPersonality *string `json:"file_system_personality"`
	Protocol              *string `json:"protocol"`
}

// InodeCount is the used/total inode pair of a Unix file system.
type InodeCount struct {
	Used  uint64 `json:"used"`
	Total uint64 `json:"total"`
}

// RaidInfo describes the md array a volume lives on.
type RaidInfo struct {
	Level             string `json:"raid_level"`
	NumDevices        int    `json:"num_devices"`
	ActiveDevices     int    `json:"active_devices"`
	SpareDevices      int    `json:"spare_devices"`
	Degraded          bool   `json:"degraded"`
	TotalCapacity     uint64 `json:"total_capacity"`
	AvailableCapacity uint64 `json:"available_capacity"`
	ArrayState        string `json:"array_state"`
}

// Windows returns the Windows variant, creating it on first use.
func (r *Record) Windows() *WindowsDetails {
	if r.Details.Windows == nil {
		r.Details.Host = HostWindows
		r.Details.Windows = &WindowsDetails{}
	}
	return r.Details.Windows
}

// Linux returns the Linux variant, creating it on first use.
func (r *Record) Linux() *LinuxDetails {
	if r.Details.Linux == nil {
		r.Details.Host = HostLinux
		r.Details.Linux = &LinuxDetails{}
	}
	return r.Details.Linux
}

// Darwin returns the macOS variant, creating it on first use.
func (r *Record) Darwin() *DarwinDetails {
	if r.Details.Darwin == nil {
		r.Details.Host = HostDarwin
		r.Details.Darwin = &DarwinDetails{}
	}
	return r.Details.Darwin
}

// UsedBytes returns the bytes in use on the volume.
func (r *Record) UsedBytes() uint64 {
	return r.TotalBytes - r.AvailableBytes
}

// Ptr returns a pointer to a copy of v.
func Ptr[T any](v T) *T {
	return &v
}

// MetricType tags records inside a protocol.Envelope.
func (Record) MetricType() string { return "drive" }
