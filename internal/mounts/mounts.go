package mounts

import (
	"bufio"
	"io"
	"os"
	"strconv"
	"strings"
)

// Entry is one line of the kernel's active-mounts list.
type Entry struct {
	Device     string
	Mountpoint string
	FSType     string
	Options    string
	Dump       int
	Pass       int
}

// Parse reads /proc/mounts format text. Device and mountpoint fields
// are octal-unescaped: the kernel encodes spaces and other separators
// as \040 style sequences.
func Parse(r io.Reader) ([]Entry, error) {
	var entries []Entry
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) < 6 {
			continue
		}
		dump, _ := strconv.Atoi(fields[4])
		pass, _ := strconv.Atoi(fields[5])
		entries = append(entries, Entry{
			Device:     unescape(fields[0]),
			Mountpoint: unescape(fields[1]),
			FSType:     fields[2],
			Options:    fields[3],
			Dump:       dump,
			Pass:       pass,
		})
	}
	return entries, scanner.Err()
}

// List reads the active mounts from /proc/mounts in kernel order.
func List() ([]Entry, error) {
	f, err := os.Open("/proc/mounts")
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Parse(f)
}

// unescape decodes \040 style octal escapes.
func unescape(s string) string {
	if !strings.Contains(s, `\`) {
		return s
	}
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] == '\\' && i+3 < len(s) {
			if v, err := strconv.ParseUint(s[i+1:i+4], 8, 8); err == nil {
				b.WriteByte(byte(v))
				i += 3
				continue
			}
		}
		b.WriteByte(s[i])
	}
	return b.String()
}
