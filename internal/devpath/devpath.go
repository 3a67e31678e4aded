package devpath

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"golang.org/x/sys/unix"
)

// IsBlockDevice reports whether path names an existing block-special
// file. Symlinks are followed.
func IsBlockDevice(path string) bool {
	var st unix.Stat_t
	if err := unix.Stat(path, &st); err != nil {
		return false
	}
	return st.Mode&unix.S_IFMT == unix.S_IFBLK
}

// Resolve canonicalizes a device specifier to a block-special path:
// LABEL=/UUID= forms go through findfs, /dev/disk/by-* symlinks are
// resolved to their real target, any other /dev path passes through.
// ok is false when the result does not name an existing block device.
func Resolve(spec string) (string, bool) {
	switch {
	case strings.HasPrefix(spec, "LABEL=") || strings.HasPrefix(spec, "UUID="):
		dev, err := findfs(spec)
		if err != nil {
			return "", false
		}
		spec = dev
	case strings.HasPrefix(spec, "/dev/disk/by-"):
		real, err := filepath.EvalSymlinks(spec)
		if err != nil {
			return "", false
		}
		spec = real
	case !strings.HasPrefix(spec, "/dev/"):
		return "", false
	}
	if !IsBlockDevice(spec) {
		return "", false
	}
	return spec, true
}

// ByUUID returns the canonical by-uuid symlink path for a UUID.
func ByUUID(uuid string) string {
	return "/dev/disk/by-uuid/" + uuid
}

// ByLabel returns the canonical by-label symlink path for a label.
func ByLabel(label string) string {
	return "/dev/disk/by-label/" + label
}

// findfs binary search paths
var findfsPaths = []string{
	"/sbin/findfs",
	"/usr/sbin/findfs",
	"/bin/findfs",
	"/usr/bin/findfs",
}

// FindFindfs locates the findfs binary used to resolve LABEL=/UUID=
// specifiers. Its absence is a fatal precondition.
func FindFindfs() (string, error) {
	for _, path := range findfsPaths {
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
	}
	return "", fmt.Errorf("findfs not found (searched %s)", strings.Join(findfsPaths, " "))
}

func findfs(spec string) (string, error) {
	bin, err := FindFindfs()
	if err != nil {
		return "", err
	}
	out, err := exec.Command(bin, spec).Output()
	if err != nil {
		return "", fmt.Errorf("findfs %s: %w", spec, err)
	}
	return strings.TrimSpace(string(out)), nil
}

// ParentDisk maps a partition name to its whole-disk name, e.g.
// sda1 -> sda, nvme0n1p2 -> nvme0n1, mmcblk0p1 -> mmcblk0.
func ParentDisk(name string) string {
	trimmed := strings.TrimRight(name, "0123456789")
	if trimmed == "" {
		return name
	}
	if strings.HasSuffix(trimmed, "p") &&
		(strings.HasPrefix(name, "nvme") || strings.HasPrefix(name, "mmcblk")) {
		trimmed = strings.TrimSuffix(trimmed, "p")
	}
	return trimmed
}

// Removable reports whether the device is attached via a hot-pluggable
// bus (USB or FireWire). The backing controller symlink under
// /sys/block names the bus in its target path.
func Removable(device string) bool {
	name := filepath.Base(device)
	disk := name
	if _, err := os.Stat(filepath.Join("/sys/block", name)); err != nil {
		disk = ParentDisk(name)
	}
	target, err := os.Readlink(filepath.Join("/sys/block", disk, "device"))
	if err != nil {
		return false
	}
	return hasRemovableSegment(target)
}

func hasRemovableSegment(path string) bool {
	for _, seg := range strings.Split(path, "/") {
		if strings.HasPrefix(seg, "usb") || strings.HasPrefix(seg, "fw") || seg == "ieee1394" {
			return true
		}
	}
	return false
}
