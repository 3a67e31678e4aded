package devpath

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParentDisk(t *testing.T) {
	cases := map[string]string{
		"sda1":      "sda",
		"sda":       "sda",
		"sdb15":     "sdb",
		"hda2":      "hda",
		"nvme0n1p2": "nvme0n1",
		"mmcblk0p1": "mmcblk0",
		"fd0":       "fd",
	}
	for name, want := range cases {
		assert.Equal(t, want, ParentDisk(name), "ParentDisk(%q)", name)
	}
}

func TestByUUIDByLabel(t *testing.T) {
	assert.Equal(t, "/dev/disk/by-uuid/abcd-1234", ByUUID("abcd-1234"))
	assert.Equal(t, "/dev/disk/by-label/backup", ByLabel("backup"))
}

func TestIsBlockDeviceRegularFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "file")
	assert.NoError(t, os.WriteFile(path, []byte("x"), 0644))
	assert.False(t, IsBlockDevice(path))
	assert.False(t, IsBlockDevice(filepath.Join(t.TempDir(), "missing")))
}

func TestResolveRejectsNonDevicePaths(t *testing.T) {
	_, ok := Resolve("tmpfs")
	assert.False(t, ok)
	_, ok = Resolve("/etc/hostname")
	assert.False(t, ok)
}

func TestHasRemovableSegment(t *testing.T) {
	assert.True(t, hasRemovableSegment("../../../devices/pci0000:00/0000:00:14.0/usb2/2-4/2-4:1.0/host6/target6:0:0/6:0:0:0"))
	assert.True(t, hasRemovableSegment("../../devices/pci0000:00/0000:00:1e.0/fw-host0/0000c0ffee000000"))
	assert.False(t, hasRemovableSegment("../../../devices/pci0000:00/0000:00:17.0/ata1/host0/target0:0:0/0:0:0:0"))
}
