package mounts

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const mountsFixture = `sysfs /sys sysfs rw,nosuid,nodev,noexec,relatime 0 0
proc /proc proc rw,nosuid,nodev,noexec,relatime 0 0
/dev/sda1 / ext4 rw,relatime,errors=remount-ro 0 0
/dev/sdb1 /media/usb\040stick vfat rw,nosuid,nodev 0 0
broken line
`

func TestParse(t *testing.T) {
	entries, err := Parse(strings.NewReader(mountsFixture))
	require.NoError(t, err)
	require.Len(t, entries, 4)

	root := entries[2]
	assert.Equal(t, "/dev/sda1", root.Device)
	assert.Equal(t, "/", root.Mountpoint)
	assert.Equal(t, "ext4", root.FSType)
	assert.Equal(t, "rw,relatime,errors=remount-ro", root.Options)
	assert.Equal(t, 0, root.Dump)
	assert.Equal(t, 0, root.Pass)

	// Octal escapes in the mountpoint must be decoded.
	assert.Equal(t, "/media/usb stick", entries[3].Mountpoint)
}

func TestParsePreservesOrder(t *testing.T) {
	entries, err := Parse(strings.NewReader(mountsFixture))
	require.NoError(t, err)
	assert.Equal(t, "sysfs", entries[0].Device)
	assert.Equal(t, "proc", entries[1].Device)
}

func TestUnescape(t *testing.T) {
	assert.Equal(t, "/plain", unescape("/plain"))
	assert.Equal(t, "a b", unescape(`a\040b`))
	assert.Equal(t, `trailing\04`, unescape(`trailing\04`))
	assert.Equal(t, "tab\tsep", unescape(`tab\011sep`))
}
