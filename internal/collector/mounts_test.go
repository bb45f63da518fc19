package collector

import (
	"reflect"
	"strings"
	"testing"
)

const procMountsSample = `sysfs /sys sysfs rw,nosuid,nodev,noexec,relatime 0 0
proc /proc proc rw,nosuid,nodev,noexec,relatime 0 0
/dev/nvme0n1p2 / ext4 rw,relatime,errors=remount-ro 0 0
/dev/nvme0n1p1 /boot/efi vfat rw,relatime,fmask=0077 0 0
tmpfs /run tmpfs rw,nosuid,nodev,size=1631580k,mode=755 0 0
/dev/loop3 /snap/core/1 squashfs ro,nodev,relatime 0 0
/dev/sdb1 /media/usb\040stick vfat rw,nosuid,nodev 0 0
server:/export /mnt/nfs nfs4 rw,relatime,vers=4.2 0 0
//nas/share /mnt/smb cifs rw,relatime 0 0
overlay /var/lib/docker/overlay2/x/merged overlay rw 0 0
short line
`

func TestParseMountsFrom(t *testing.T) {
	mounts, err := parseMountsFrom(strings.NewReader(procMountsSample))
	if err != nil {
		t.Fatalf("parseMountsFrom failed: %v", err)
	}

	want := []MountInfo{
		{Device: "/dev/nvme0n1p2", Mountpoint: "/", FSType: "ext4", Options: []string{"rw", "relatime", "errors=remount-ro"}},
		{Device: "/dev/nvme0n1p1", Mountpoint: "/boot/efi", FSType: "vfat", Options: []string{"rw", "relatime", "fmask=0077"}},
		{Device: "/dev/sdb1", Mountpoint: "/media/usb stick", FSType: "vfat", Options: []string{"rw", "nosuid", "nodev"}},
		{Device: "server:/export", Mountpoint: "/mnt/nfs", FSType: "nfs4", Options: []string{"rw", "relatime", "vers=4.2"}},
		{Device: "//nas/share", Mountpoint: "/mnt/smb", FSType: "cifs", Options: []string{"rw", "relatime"}},
	}

	if !reflect.DeepEqual(mounts, want) {
		t.Errorf("unexpected mounts:\n got %+v\nwant %+v", mounts, want)
	}
}

func TestParseMountsFrom_NoOptions(t *testing.T) {
	mounts, err := parseMountsFrom(strings.NewReader("/dev/sda1 /data xfs\n"))
	if err != nil {
		t.Fatalf("parseMountsFrom failed: %v", err)
	}
	if len(mounts) != 1 || mounts[0].Options != nil {
		t.Errorf("expected one mount without options, got %+v", mounts)
	}
}

func TestShouldIgnore(t *testing.T) {
	tests := []struct {
		name string
		m    MountInfo
		want bool
	}{
		{"proc", MountInfo{Device: "proc", Mountpoint: "/proc", FSType: "proc"}, true},
		{"cgroup2", MountInfo{Device: "cgroup2", Mountpoint: "/sys/fs/cgroup", FSType: "cgroup2"}, true},
		{"loop device", MountInfo{Device: "/dev/loop0", Mountpoint: "/snap/x", FSType: "ext4"}, true},
		{"wsl", MountInfo{Device: "none", Mountpoint: "/mnt/wsl/distro", FSType: "ext4"}, true},
		{"macOS devfs", MountInfo{Device: "devfs", Mountpoint: "/dev", FSType: "devfs"}, true},
		{"ext4 root", MountInfo{Device: "/dev/sda1", Mountpoint: "/", FSType: "ext4"}, false},
		{"nfs kept", MountInfo{Device: "srv:/x", Mountpoint: "/mnt/x", FSType: "nfs"}, false},
		{"smb kept", MountInfo{Device: "//srv/x", Mountpoint: "/Volumes/x", FSType: "smbfs"}, false},
		{"snap squashfs", MountInfo{Device: "/dev/loop3", Mountpoint: "/snap/core/1", FSType: "squashfs"}, true},
		{"squashfs partition kept", MountInfo{Device: "/dev/mmcblk0p2", Mountpoint: "/rom", FSType: "squashfs"}, false},
		{"iso kept", MountInfo{Device: "/dev/sr0", Mountpoint: "/media/cd", FSType: "iso9660"}, false},
		{"windows drive", MountInfo{Device: `C:`, Mountpoint: `C:`, FSType: "NTFS"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := shouldIgnore(tt.m); got != tt.want {
				t.Errorf("shouldIgnore(%+v) = %v, want %v", tt.m, got, tt.want)
			}
		})
	}
}

func TestDecodeMountPath(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"/mnt/plain", "/mnt/plain"},
		{`/mnt/with\040space`, "/mnt/with space"},
		{`/mnt/tab\011here`, "/mnt/tab\there"},
		{`/mnt/back\134slash`, `/mnt/back\slash`},
	}

	for _, tt := range tests {
		if got := decodeMountPath(tt.in); got != tt.want {
			t.Errorf("decodeMountPath(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFindMount(t *testing.T) {
	mounts := []MountInfo{
		{Device: "/dev/sda1", Mountpoint: "/"},
		{Device: "/dev/sdb1", Mountpoint: "/data"},
		{Device: "/dev/sdc1", Mountpoint: "/data"},
	}

	m, ok := findMount(mounts, "/data")
	if !ok || m.Device != "/dev/sdc1" {
		t.Errorf("expected last /data entry, got %+v (ok=%v)", m, ok)
	}

	if _, ok := findMount(mounts, "/missing"); ok {
		t.Error("expected no match for /missing")
	}
}
