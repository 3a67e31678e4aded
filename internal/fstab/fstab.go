package fstab

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Entry represents a single fstab entry
type Entry struct {
	Device     string
	Mountpoint string
	FSType     string
	Options    string
	Dump       int
	Pass       int
}

// Format renders the entry as a tab-separated six-column fstab line.
func (e Entry) Format() string {
	return fmt.Sprintf("%s\t%s\t%s\t%s\t%d\t%d",
		e.Device, e.Mountpoint, e.FSType, e.Options, e.Dump, e.Pass)
}

// Parse reads fstab-formatted text and returns all entries
func Parse(r io.Reader) ([]Entry, error) {
	var entries []Entry
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < 4 {
			continue
		}
		e := Entry{
			Device:     fields[0],
			Mountpoint: fields[1],
			FSType:     fields[2],
			Options:    fields[3],
		}
		if len(fields) >= 5 {
			e.Dump, _ = strconv.Atoi(fields[4])
		}
		if len(fields) >= 6 {
			e.Pass, _ = strconv.Atoi(fields[5])
		}
		entries = append(entries, e)
	}
	return entries, scanner.Err()
}
