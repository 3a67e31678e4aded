package fstab

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEntryFormat(t *testing.T) {
	e := Entry{
		Device:     "UUID=6db9c678-7e94-4e34-a556-af0b79a09d87",
		Mountpoint: "/media/sdb1",
		FSType:     "ext4",
		Options:    "noauto,users,exec,noatime",
		Dump:       0,
		Pass:       2,
	}
	assert.Equal(t,
		"UUID=6db9c678-7e94-4e34-a556-af0b79a09d87\t/media/sdb1\text4\tnoauto,users,exec,noatime\t0\t2",
		e.Format())
}

func TestTableRender(t *testing.T) {
	tab := NewTable(Header())
	tab.Append("# /dev/sda1", Entry{
		Device: "/dev/sda1", Mountpoint: "/", FSType: "ext4",
		Options: "defaults,noatime,errors=remount-ro", Dump: 1, Pass: 1,
	})
	tab.Append("# /dev/sda5", Entry{
		Device: "/dev/sda5", Mountpoint: "none", FSType: "swap", Options: "sw",
	})

	out := string(tab.Bytes())
	assert.True(t, strings.HasPrefix(out, "# /etc/fstab: static file system information\n"))
	assert.Contains(t, out, "# /dev/sda1\n/dev/sda1\t/\text4\tdefaults,noatime,errors=remount-ro\t1\t1\n\n")
	assert.Contains(t, out, "# /dev/sda5\n/dev/sda5\tnone\tswap\tsw\t0\t0\n\n")
	assert.Equal(t, 2, tab.Len())
}

func TestTableRoundTrip(t *testing.T) {
	tab := NewTable(Header())
	want := Entry{
		Device: "LABEL=backup", Mountpoint: "/media/backup", FSType: "ext3",
		Options: "auto,users,exec,noatime", Dump: 0, Pass: 2,
	}
	tab.Append("# /dev/sdb1", want)

	entries, err := Parse(bytes.NewReader(tab.Bytes()))
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, want, entries[0])
}

func TestWriteFileCreatesBackup(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fstab")

	tab := NewTable(Header())
	tab.Append("# /dev/sda1", Entry{
		Device: "/dev/sda1", Mountpoint: "/", FSType: "ext4",
		Options: "defaults,noatime", Dump: 1, Pass: 1,
	})

	// First write: no pre-existing file, so no backup.
	require.NoError(t, tab.WriteFile(path))
	_, err := os.Stat(path + ".old")
	assert.True(t, os.IsNotExist(err))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, tab.Bytes(), data)

	// Second write: previous version must end up in the .old backup.
	tab2 := NewTable(Header())
	tab2.Append("# /dev/sdb1", Entry{
		Device: "/dev/sdb1", Mountpoint: "/media/sdb1", FSType: "vfat",
		Options: "auto,users,exec", Dump: 0, Pass: 0,
	})
	require.NoError(t, tab2.WriteFile(path))

	backup, err := os.ReadFile(path + ".old")
	require.NoError(t, err)
	assert.Equal(t, tab.Bytes(), backup)

	data, err = os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, tab2.Bytes(), data)
}

func TestWriteFileTruncatesLongerPrevious(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fstab")
	long := strings.Repeat("# filler line\n", 200)
	require.NoError(t, os.WriteFile(path, []byte(long), 0644))

	tab := NewTable("# short\n")
	require.NoError(t, tab.WriteFile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, tab.Bytes(), data)
}

func TestParseSkipsCommentsAndBlanks(t *testing.T) {
	in := "# comment\n\n/dev/sda1 / ext4 defaults 0 1\nshort line\n"
	entries, err := Parse(strings.NewReader(in))
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "/dev/sda1", entries[0].Device)
	assert.Equal(t, 1, entries[0].Pass)
}
