package blkdev

import (
	"bufio"
	"io"
	"os"
	"strconv"
	"strings"
)

// Partition is one row of the kernel partition list.
type Partition struct {
	Major  int
	Minor  int
	Blocks uint64
	Name   string
}

// Device returns the block-special path for the partition.
func (p Partition) Device() string {
	return "/dev/" + p.Name
}

// Size returns the partition size in bytes (the kernel counts 1 KiB blocks).
func (p Partition) Size() uint64 {
	return p.Blocks * 1024
}

// Pseudo devices never carry a mountable filesystem of interest.
var skipPrefixes = []string{"ram", "cloop", "loop"}

func skipName(name string) bool {
	for _, prefix := range skipPrefixes {
		if strings.HasPrefix(name, prefix) {
			return true
		}
	}
	return false
}

// ParsePartitions parses the kernel partition list (/proc/partitions
// format: major, minor, #blocks, name). Entries with a block count of
// exactly 1 are extended-partition placeholders and are dropped, as are
// ram/cloop/loop pseudo devices.
func ParsePartitions(r io.Reader) ([]Partition, error) {
	var parts []Partition
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) < 4 {
			continue
		}
		major, err := strconv.Atoi(fields[0])
		if err != nil {
			// Header line.
			continue
		}
		minor, err := strconv.Atoi(fields[1])
		if err != nil {
			continue
		}
		blocks, err := strconv.ParseUint(fields[2], 10, 64)
		if err != nil {
			continue
		}
		name := fields[3]
		if blocks == 1 || skipName(name) {
			continue
		}
		parts = append(parts, Partition{
			Major:  major,
			Minor:  minor,
			Blocks: blocks,
			Name:   name,
		})
	}
	return parts, scanner.Err()
}

// List reads the kernel partition list from /proc/partitions.
func List() ([]Partition, error) {
	f, err := os.Open("/proc/partitions")
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ParsePartitions(f)
}
