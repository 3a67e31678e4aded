package blkdev

import (
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/zaolin/fstabgen/internal/devpath"
)

// Record holds the filesystem metadata probed from one block device.
// Created once per enumerated partition and read-only afterwards.
type Record struct {
	Device    string
	Usage     string // "filesystem", "other", "raid", ... or empty
	Type      string
	UUID      string
	UUIDEnc   string // encoded for display
	Label     string
	LabelEnc  string // encoded for display
	LabelSafe string // filesystem-safe, usable as a directory name
}

// DisplayUUID returns the UUID form suitable for a table row.
func (r *Record) DisplayUUID() string {
	if r.UUIDEnc != "" {
		return r.UUIDEnc
	}
	return r.UUID
}

// DisplayLabel returns the label form suitable for a table row.
func (r *Record) DisplayLabel() string {
	if r.LabelEnc != "" {
		return r.LabelEnc
	}
	return r.Label
}

// Prober identifies the filesystem on a block device. A (nil, nil)
// result means the device has no block-special file and should be
// skipped silently.
type Prober interface {
	Probe(device string) (*Record, error)
}

// blkid binary search paths
var blkidPaths = []string{
	"/sbin/blkid",
	"/usr/sbin/blkid",
	"/usr/bin/blkid",
	"/bin/blkid",
}

// FindBlkid locates the blkid binary. Its absence is a fatal
// precondition for the whole run.
func FindBlkid() (string, error) {
	for _, path := range blkidPaths {
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
	}
	return "", fmt.Errorf("blkid not found (searched %s)", strings.Join(blkidPaths, " "))
}

// BlkidProber probes devices with blkid in udev output mode, which
// emits the ID_FS_* KEY=value pairs including the encoded and
// filesystem-safe label forms.
type BlkidProber struct {
	Binary string
}

// Probe runs blkid against a single device and parses its output.
func (p *BlkidProber) Probe(device string) (*Record, error) {
	if !devpath.IsBlockDevice(device) {
		return nil, nil
	}

	out, err := exec.Command(p.Binary, "-o", "udev", "-p", device).Output()
	if err != nil && len(out) == 0 {
		if exitErr, ok := err.(*exec.ExitError); ok {
			// blkid exits non-zero for devices without a recognizable
			// filesystem. That is an empty record, not a failure.
			if exitErr.ExitCode() == 2 {
				return &Record{Device: device}, nil
			}
		}
		return nil, fmt.Errorf("blkid %s: %w", device, err)
	}

	return ParseUdevOutput(device, out), nil
}

// ParseUdevOutput parses blkid/vol_id style KEY=value text into a Record.
func ParseUdevOutput(device string, data []byte) *Record {
	rec := &Record{Device: device}
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		key, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		switch key {
		case "ID_FS_USAGE":
			rec.Usage = value
		case "ID_FS_TYPE":
			rec.Type = value
		case "ID_FS_UUID":
			rec.UUID = value
		case "ID_FS_UUID_ENC":
			rec.UUIDEnc = value
		case "ID_FS_LABEL":
			rec.Label = value
		case "ID_FS_LABEL_ENC":
			rec.LabelEnc = value
		case "ID_FS_LABEL_SAFE":
			rec.LabelSafe = value
		}
	}
	return rec
}
