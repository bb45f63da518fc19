package drive

import (
	"encoding/json"
	"testing"
)

func TestFileSystemFromName_Known(t *testing.T) {
	tests := []struct {
		input string
		want  Family
	}{
		{"NTFS", FamilyNTFS},
		{"ntfs", FamilyNTFS},
		{"ntfs3", FamilyNTFS},
		{"FAT", FamilyFAT},
		{"FAT32", FamilyFAT32},
		{"vfat", FamilyFAT32},
		{"exFAT", FamilyExFAT},
		{"UDF", FamilyUDF},
		{"CDFS", FamilyCDFS},
		{"ReFS", FamilyReFS},
		{"HPFS", FamilyHPFS},
		{"Ext2", FamilyExt2},
		{"ext3", FamilyExt3},
		{"ext4", FamilyExt4},
		{"xfs", FamilyXFS},
		{"btrfs", FamilyBtrfs},
		{"JFS", FamilyJFS},
		{"ReiserFS", FamilyReiserFS},
		{"squashfs", FamilySquashFS},
		{"zfs", FamilyZFS},
		{"HFS", FamilyHFS},
		{"HFS+", FamilyHFSPlus},
		{"hfsplus", FamilyHFSPlus},
		{"apfs", FamilyAPFS},
		{"FFS", FamilyFFS},
		{"ufs", FamilyFFS},
		{"nfs4", FamilyNFS},
		{"smbfs", FamilySMB},
		{"cifs", FamilyCIFS},
		{"afpfs", FamilyAFP},
		{"fuse.glusterfs", FamilyGlusterFS},
		{"ceph", FamilyCeph},
		{"iso9660", FamilyISO9660},
		{"cd9660", FamilyISO9660},
		{"JFFS2", FamilyJFFS2},
		{"yaffs2", FamilyYAFFS},
		{"LogFS", FamilyLogFS},
		{"nilfs2", FamilyNILFS},
		{"f2fs", FamilyF2FS},
		{"AFS", FamilyAFS},
		{"gfs2", FamilyGFS2},
		{"OCFS2", FamilyOCFS2},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := FileSystemFromName(tt.input)
			if got.Family != tt.want {
				t.Errorf("FileSystemFromName(%q).Family = %v, want %v", tt.input, got.Family, tt.want)
			}
			if got.IsUnknown() {
				t.Errorf("FileSystemFromName(%q) reported unknown", tt.input)
			}
			if got.Name != tt.want.String() {
				t.Errorf("Name = %q, want canonical %q", got.Name, tt.want.String())
			}
		})
	}
}

func TestFileSystemFromName_UnknownPreservesInput(t *testing.T) {
	inputs := []string{
		"",
		"zfs_member",
		"fuse.sshfs",
		"  NTFS  ",
		"Ext4 ",
		"überfs",
		"tmpfs",
		"\x00\xff",
	}

	for _, in := range inputs {
		got := FileSystemFromName(in)
		if !got.IsUnknown() {
			t.Errorf("FileSystemFromName(%q) = %v, want Unknown", in, got.Family)
			continue
		}
		if got.Name != in {
			t.Errorf("Unknown name = %q, want verbatim %q", got.Name, in)
		}
	}
}

func TestFamilyNamesCoverEveryFamily(t *testing.T) {
	for f := FamilyNTFS; f <= FamilyOCFS2; f++ {
		name, ok := familyNames[f]
		if !ok {
			t.Errorf("family %d has no name", f)
			continue
		}
		// Canonical names must round-trip through the classifier.
		if got := FileSystemFromName(name); got.Family != f {
			t.Errorf("FileSystemFromName(%q) = %v, want %v", name, got.Family, f)
		}
	}
}

func TestFileSystem_IsNetwork(t *testing.T) {
	if !FileSystemFromName("nfs").IsNetwork() {
		t.Error("nfs should be a network file system")
	}
	if !FileSystemFromName("cifs").IsNetwork() {
		t.Error("cifs should be a network file system")
	}
	if FileSystemFromName("ext4").IsNetwork() {
		t.Error("ext4 should not be a network file system")
	}
	if FileSystemFromName("weirdfs").IsNetwork() {
		t.Error("unknown file system should not be a network file system")
	}
}

func TestFileSystem_MarshalJSON(t *testing.T) {
	tests := []struct {
		fs   FileSystem
		want string
	}{
		{FileSystemFromName("ntfs"), `"NTFS"`},
		{FileSystemFromName("hfsplus"), `"HFS+"`},
		{FileSystemFromName("zfs_member"), `"Unknown(zfs_member)"`},
	}

	for _, tt := range tests {
		b, err := json.Marshal(tt.fs)
		if err != nil {
			t.Fatalf("Marshal(%v): %v", tt.fs, err)
		}
		if string(b) != tt.want {
			t.Errorf("Marshal = %s, want %s", b, tt.want)
		}
	}
}
