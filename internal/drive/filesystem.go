package drive

import (
	"encoding/json"
	"strings"
)

// Family identifies a known file system. FamilyUnknown is used for any
// name that doesn't match one of the known families.
type Family int

const (
	FamilyUnknown Family = iota

	// Windows
	FamilyNTFS
	FamilyFAT
	FamilyFAT32
	FamilyExFAT
	FamilyUDF
	FamilyCDFS
	FamilyReFS
	FamilyHPFS

	// Linux
	FamilyExt2
	FamilyExt3
	FamilyExt4
	FamilyXFS
	FamilyBtrfs
	FamilyJFS
	FamilyReiserFS
	FamilySquashFS
	FamilyZFS

	// macOS
	FamilyHFS
	FamilyHFSPlus
	FamilyAPFS

	// BSD
	FamilyFFS

	// Network
	FamilyNFS
	FamilySMB
	FamilyCIFS
	FamilyAFP
	FamilyGlusterFS
	FamilyCeph

	// Special purpose, flash and embedded
	FamilyISO9660
	FamilyJFFS2
	FamilyYAFFS
	FamilyLogFS
	FamilyNILFS
	FamilyF2FS
	FamilyAFS

	// Clustered
	FamilyGFS2
	FamilyOCFS2
)

var familyNames = map[Family]string{
	FamilyNTFS:      "NTFS",
	FamilyFAT:       "FAT",
	FamilyFAT32:     "FAT32",
	FamilyExFAT:     "exFAT",
	FamilyUDF:       "UDF",
	FamilyCDFS:      "CDFS",
	FamilyReFS:      "ReFS",
	FamilyHPFS:      "HPFS",
	FamilyExt2:      "Ext2",
	FamilyExt3:      "Ext3",
	FamilyExt4:      "Ext4",
	FamilyXFS:       "XFS",
	FamilyBtrfs:     "Btrfs",
	FamilyJFS:       "JFS",
	FamilyReiserFS:  "ReiserFS",
	FamilySquashFS:  "SquashFS",
	FamilyZFS:       "ZFS",
	FamilyHFS:       "HFS",
	FamilyHFSPlus:   "HFS+",
	FamilyAPFS:      "APFS",
	FamilyFFS:       "FFS",
	FamilyNFS:       "NFS",
	FamilySMB:       "SMB",
	FamilyCIFS:      "CIFS",
	FamilyAFP:       "AFP",
	FamilyGlusterFS: "GlusterFS",
	FamilyCeph:      "Ceph",
	FamilyISO9660:   "ISO9660",
	FamilyJFFS2:     "JFFS2",
	FamilyYAFFS:     "YAFFS",
	FamilyLogFS:     "LogFS",
	FamilyNILFS:     "NILFS",
	FamilyF2FS:      "F2FS",
	FamilyAFS:       "AFS",
	FamilyGFS2:      "GFS2",
	FamilyOCFS2:     "OCFS2",
}

// fsAliases maps lowercased names, as reported by Windows, the Linux mount
// table and macOS statfs, to a family.
var fsAliases = map[string]Family{
	// Windows
	"ntfs":  FamilyNTFS,
	"ntfs3": FamilyNTFS, // in-kernel Linux driver
	"fat":   FamilyFAT,
	"fat12": FamilyFAT,
	"fat16": FamilyFAT,
	"msdos": FamilyFAT,
	"fat32": FamilyFAT32,
	"vfat":  FamilyFAT32,
	"exfat": FamilyExFAT,
	"udf":   FamilyUDF,
	"cdfs":  FamilyCDFS,
	"refs":  FamilyReFS,
	"hpfs":  FamilyHPFS,

	// Linux
	"ext2":     FamilyExt2,
	"ext3":     FamilyExt3,
	"ext4":     FamilyExt4,
	"xfs":      FamilyXFS,
	"btrfs":    FamilyBtrfs,
	"jfs":      FamilyJFS,
	"reiserfs": FamilyReiserFS,
	"squashfs": FamilySquashFS,
	"zfs":      FamilyZFS,

	// macOS
	"hfs":     FamilyHFS,
	"hfs+":    FamilyHFSPlus,
	"hfsplus": FamilyHFSPlus,
	"apfs":    FamilyAPFS,

	// BSD
	"ffs": FamilyFFS,
	"ufs": FamilyFFS,

	// Network
	"nfs":            FamilyNFS,
	"nfs4":           FamilyNFS,
	"smb":            FamilySMB,
	"smbfs":          FamilySMB,
	"smb3":           FamilySMB,
	"cifs":           FamilyCIFS,
	"afp":            FamilyAFP,
	"afpfs":          FamilyAFP,
	"glusterfs":      FamilyGlusterFS,
	"fuse.glusterfs": FamilyGlusterFS,
	"ceph":           FamilyCeph,
	"fuse.ceph":      FamilyCeph,

	// Special purpose
	"iso9660": FamilyISO9660,
	"cd9660":  FamilyISO9660,
	"jffs2":   FamilyJFFS2,
	"yaffs":   FamilyYAFFS,
	"yaffs2":  FamilyYAFFS,
	"logfs":   FamilyLogFS,
	"nilfs":   FamilyNILFS,
	"nilfs2":  FamilyNILFS,
	"f2fs":    FamilyF2FS,
	"afs":     FamilyAFS,

	// Clustered
	"gfs2":  FamilyGFS2,
	"ocfs2": FamilyOCFS2,
}

// String returns the canonical family name, or "Unknown".
func (f Family) String() string {
	if name, ok := familyNames[f]; ok {
		return name
	}
	return "Unknown"
}

// FileSystem is the classification of a volume's file system. For
// FamilyUnknown, Name holds the name exactly as it was reported.
type FileSystem struct {
	Family Family
	Name   string
}

// FileSystemFromName classifies a file system name. It never fails:
// unrecognized names yield FamilyUnknown with the original string preserved.
func FileSystemFromName(name string) FileSystem {
	if f, ok := fsAliases[strings.ToLower(name)]; ok {
		return FileSystem{Family: f, Name: f.String()}
	}
	return FileSystem{Family: FamilyUnknown, Name: name}
}

// IsUnknown reports whether the name didn't match a known family.
func (fs FileSystem) IsUnknown() bool {
	return fs.Family == FamilyUnknown
}

// IsNetwork reports whether the file system is a network share.
func (fs FileSystem) IsNetwork() bool {
	switch fs.Family {
	case FamilyNFS, FamilySMB, FamilyCIFS, FamilyAFP, FamilyGlusterFS, FamilyCeph, FamilyAFS:
		return true
	}
	return false
}

func (fs FileSystem) String() string {
	if fs.IsUnknown() {
		return "Unknown(" + fs.Name + ")"
	}
	return fs.Family.String()
}

func (fs FileSystem) MarshalJSON() ([]byte, error) {
	return json.Marshal(fs.String())
}
