package hwinfo

import (
	"os"
	"os/exec"
	"strings"

	"github.com/zaolin/fstabgen/internal/devpath"
)

// hdparm binary search paths
var hdparmPaths = []string{
	"/sbin/hdparm",
	"/usr/sbin/hdparm",
	"/usr/bin/hdparm",
}

// Identify returns a short human-readable hardware descriptor for the
// disk backing the given device, used only in generated comments.
// Returns "" when no identification is available; never fails the run.
func Identify(device string) string {
	bin := findBinary(hdparmPaths)
	if bin == "" {
		return ""
	}
	// ATA identification lives on the whole disk, not the partition.
	disk := "/dev/" + diskName(device)
	out, err := exec.Command(bin, "-i", disk).Output()
	if err != nil {
		return ""
	}
	return ParseIdentify(out)
}

// ParseIdentify extracts the drive model from hdparm -i output, which
// carries a "Model=..., FwRev=..., SerialNo=..." line.
func ParseIdentify(data []byte) string {
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if !strings.HasPrefix(line, "Model=") {
			continue
		}
		for _, field := range strings.Split(line, ",") {
			field = strings.TrimSpace(field)
			if model, ok := strings.CutPrefix(field, "Model="); ok {
				return strings.TrimSpace(model)
			}
		}
	}
	return ""
}

func diskName(device string) string {
	name := strings.TrimPrefix(device, "/dev/")
	if _, err := os.Stat("/sys/block/" + name); err == nil {
		return name
	}
	return devpath.ParentDisk(name)
}

func findBinary(paths []string) string {
	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}
