package generator

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/zaolin/fstabgen/internal/blkdev"
	"github.com/zaolin/fstabgen/internal/console"
	"github.com/zaolin/fstabgen/internal/devpath"
	"github.com/zaolin/fstabgen/internal/fstab"
	"github.com/zaolin/fstabgen/internal/hwinfo"
	"github.com/zaolin/fstabgen/internal/mounts"
)

// Options carries the flag- and config-controlled behavior for one run.
type Options struct {
	UUIDNames          bool
	LabelNames         bool
	NoAuto             bool
	NoSwap             bool
	MakeMountpoints    bool
	MediaDir           string
	ExcludedMountRoots []string
	UTF8               bool
}

// Generator assembles the fstab table from enumerated devices and
// active mounts. All tracking state is explicit on the struct, and the
// system touchpoints are injectable so tests can substitute fixtures
// for the real utilities.
type Generator struct {
	// System touchpoints, defaulted to the real implementations by New.
	Resolve     func(spec string) (string, bool)
	BlockDevice func(path string) bool
	Removable   func(device string) bool
	Identify    func(device string) string
	Glob        func(pattern string) []string
	MkdirAll    func(path string) error

	opts    Options
	records map[string]*blkdev.Record

	seenDevices map[string]bool
	seenUUIDs   map[string]bool
	seenLabels  map[string]bool

	table *fstab.Table
}

// New returns a generator wired to the running system.
func New(opts Options) *Generator {
	if opts.MediaDir == "" {
		opts.MediaDir = "/media"
	}
	return &Generator{
		Resolve:     devpath.Resolve,
		BlockDevice: devpath.IsBlockDevice,
		Removable:   devpath.Removable,
		Identify:    hwinfo.Identify,
		Glob: func(pattern string) []string {
			matches, _ := filepath.Glob(pattern)
			return matches
		},
		MkdirAll: func(path string) error {
			return os.MkdirAll(path, 0755)
		},
		opts:        opts,
		records:     make(map[string]*blkdev.Record),
		seenDevices: make(map[string]bool),
		seenUUIDs:   make(map[string]bool),
		seenLabels:  make(map[string]bool),
		table:       fstab.NewTable(fstab.Header()),
	}
}

// Table returns the assembled output table.
func (g *Generator) Table() *fstab.Table {
	return g.table
}

// Enumerate probes every partition and records its metadata keyed by
// device path. A failed probe skips that device only.
func (g *Generator) Enumerate(parts []blkdev.Partition, prober blkdev.Prober) {
	for _, p := range parts {
		dev := p.Device()
		rec, err := prober.Probe(dev)
		if err != nil {
			console.Warn("cannot identify %s: %v\n", dev, err)
			continue
		}
		if rec == nil {
			// No block-special file present.
			continue
		}
		g.records[dev] = rec
		console.Trace("%s: usage=%q type=%q uuid=%q label=%q size=%s\n",
			dev, rec.Usage, rec.Type, rec.UUID, rec.Label, humanize.IBytes(p.Size()))
	}
}

// ListDevices writes one "device fstype" pair per recognized device,
// for interactive selection tooling.
func (g *Generator) ListDevices(w io.Writer) error {
	for _, dev := range g.sortedDevices() {
		rec := g.records[dev]
		if rec.Type == "" {
			continue
		}
		if _, err := fmt.Fprintf(w, "%s %s\n", dev, rec.Type); err != nil {
			return err
		}
	}
	return nil
}

// ReconcileMounts emits one row per already-mounted real filesystem,
// in the order the mounts were read.
func (g *Generator) ReconcileMounts(entries []mounts.Entry) {
	for _, m := range entries {
		if !g.BlockDevice(m.Device) {
			continue
		}
		if m.FSType == "swap" {
			continue
		}
		if g.excludedMountpoint(m.Mountpoint) {
			console.Trace("%s: live-system mount at %s, skipping\n", m.Device, m.Mountpoint)
			continue
		}
		dev, ok := g.Resolve(m.Device)
		if !ok {
			continue
		}
		rec := g.records[dev]
		if rec == nil || rec.Type == "" {
			continue
		}

		g.seenDevices[dev] = true

		options := "defaults,noatime"
		dump, pass := 0, 2
		if m.Mountpoint == "/" {
			if isExtFamily(m.FSType) {
				options += ",errors=remount-ro"
			}
			dump, pass = 1, 1
		} else {
			options = "auto," + options
		}

		name, _, ok := g.chooseName(rec)
		if !ok {
			continue
		}
		g.table.Append(g.comment(dev, true), fstab.Entry{
			Device:     name,
			Mountpoint: m.Mountpoint,
			FSType:     m.FSType,
			Options:    options,
			Dump:       dump,
			Pass:       pass,
		})
	}
}

// Filesystem types never emitted as residual devices.
var residualSkipTypes = map[string]bool{
	"unknown":  true,
	"iso9660":  true,
	"udf":      true,
	"squashfs": true,
}

// EmitResidual emits a row for every enumerated device not matched by
// the mount reconciliation and not on a removable bus, in sorted
// device-path order.
func (g *Generator) EmitResidual() {
	for _, dev := range g.sortedDevices() {
		if g.seenDevices[dev] {
			continue
		}
		rec := g.records[dev]
		if rec.Type == "" || residualSkipTypes[rec.Type] {
			continue
		}
		if rec.Usage != "filesystem" && rec.Usage != "other" {
			continue
		}
		if rec.Type == "swap" && g.opts.NoSwap {
			console.Trace("%s: swap entries suppressed\n", dev)
			continue
		}
		if g.Removable(dev) {
			console.Trace("%s: removable bus, skipping\n", dev)
			continue
		}

		name, mountpoint, ok := g.chooseName(rec)
		if !ok {
			continue
		}
		if mountpoint == "" {
			mountpoint = g.opts.MediaDir + "/" + filepath.Base(dev)
		}

		options := "auto"
		if g.opts.NoAuto {
			options = "noauto"
		}
		options += ",users,exec"
		dump, pass := 0, 2

		switch rec.Type {
		case "ntfs":
			options += ",ro,dmask=0022,fmask=0133"
			if g.opts.UTF8 {
				options += ",nls=utf8"
			}
			pass = 0
		case "msdos":
			options += ",quiet,umask=000"
			if g.opts.UTF8 {
				options += ",iocharset=utf8"
			}
			pass = 0
		case "vfat":
			options += ",shortname=lower,quiet,umask=000"
			if g.opts.UTF8 {
				options += ",utf8"
			}
			pass = 0
		case "swap":
			options = "sw"
			mountpoint = "none"
			pass = 0
		default:
			if isNoatimeType(rec.Type) {
				options += ",noatime"
			}
		}

		g.table.Append(g.comment(dev, false), fstab.Entry{
			Device:     name,
			Mountpoint: mountpoint,
			FSType:     rec.Type,
			Options:    options,
			Dump:       dump,
			Pass:       pass,
		})
		g.makeMountpoint(mountpoint)
	}
}

// EmitFixed appends the fixed-policy optical and floppy rows for every
// existing block-special device matching the respective patterns.
func (g *Generator) EmitFixed() {
	for _, dev := range g.globBlock("/dev/cdrom*") {
		mountpoint := g.opts.MediaDir + "/" + filepath.Base(dev)
		g.table.Append(g.comment(dev, false), fstab.Entry{
			Device:     dev,
			Mountpoint: mountpoint,
			FSType:     "udf,iso9660",
			Options:    "user,noauto",
		})
		g.makeMountpoint(mountpoint)
	}
	for _, dev := range g.globBlock("/dev/fd*") {
		mountpoint := g.opts.MediaDir + "/" + filepath.Base(dev)
		// Floppies carry no identification data worth querying.
		g.table.Append("# "+dev, fstab.Entry{
			Device:     dev,
			Mountpoint: mountpoint,
			FSType:     "auto",
			Options:    "rw,user,noauto",
		})
		g.makeMountpoint(mountpoint)
	}
}

// chooseName picks the row name for a device by naming precedence:
// UUID, then label, then the raw device path. A UUID or label already
// used by an earlier row skips the device outright (ok=false) rather
// than falling back. mountpoint is non-empty only when a
// filesystem-safe label names a /media directory.
func (g *Generator) chooseName(rec *blkdev.Record) (name, mountpoint string, ok bool) {
	if g.opts.UUIDNames && rec.UUID != "" {
		if g.seenUUIDs[rec.UUID] {
			console.Warn("%s: duplicate UUID %s, skipping\n", rec.Device, rec.UUID)
			return "", "", false
		}
		g.seenUUIDs[rec.UUID] = true
		if isTagNameType(rec.Type) {
			return "UUID=" + rec.DisplayUUID(), "", true
		}
		return devpath.ByUUID(rec.DisplayUUID()), "", true
	}

	if g.opts.LabelNames && rec.Label != "" {
		if g.seenLabels[rec.Label] {
			console.Warn("%s: duplicate LABEL %s, skipping\n", rec.Device, rec.Label)
			return "", "", false
		}
		g.seenLabels[rec.Label] = true
		if rec.LabelSafe != "" {
			mountpoint = g.opts.MediaDir + "/" + rec.LabelSafe
		}
		if isTagNameType(rec.Type) {
			return "LABEL=" + rec.DisplayLabel(), mountpoint, true
		}
		return devpath.ByLabel(rec.DisplayLabel()), mountpoint, true
	}

	return rec.Device, "", true
}

// comment builds the explanatory line preceding a row, using the ATA
// identification helper when it yields anything.
func (g *Generator) comment(dev string, mounted bool) string {
	c := "# " + dev
	if model := g.Identify(dev); model != "" {
		c += ": " + model
	}
	if mounted {
		c += " (currently mounted)"
	}
	return c
}

func (g *Generator) makeMountpoint(mountpoint string) {
	if !g.opts.MakeMountpoints || mountpoint == "none" {
		return
	}
	if err := g.MkdirAll(mountpoint); err != nil {
		console.Warn("cannot create %s: %v\n", mountpoint, err)
	}
}

func (g *Generator) excludedMountpoint(mountpoint string) bool {
	for _, root := range g.opts.ExcludedMountRoots {
		if mountpoint == root || strings.HasPrefix(mountpoint, root+"/") {
			return true
		}
	}
	return false
}

func (g *Generator) globBlock(pattern string) []string {
	var devices []string
	for _, match := range g.Glob(pattern) {
		if g.BlockDevice(match) {
			devices = append(devices, match)
		}
	}
	return devices
}

func (g *Generator) sortedDevices() []string {
	devices := make([]string, 0, len(g.records))
	for dev := range g.records {
		devices = append(devices, dev)
	}
	sort.Strings(devices)
	return devices
}

// isExtFamily matches the ext2/3/4 family, which takes
// errors=remount-ro on the root mount.
func isExtFamily(fstype string) bool {
	switch fstype {
	case "ext2", "ext3", "ext4":
		return true
	}
	return false
}

// isNoatimeType matches journaling Linux filesystems that get noatime
// appended as a residual device.
func isNoatimeType(fstype string) bool {
	switch fstype {
	case "ext2", "ext3", "ext4", "reiserfs", "reiser4", "jfs", "xfs":
		return true
	}
	return false
}

// isTagNameType matches filesystems whose drivers understand UUID=/LABEL=
// tags in fstab; everything else is named by its /dev/disk/by-* path.
func isTagNameType(fstype string) bool {
	return fstype == "swap" || isNoatimeType(fstype)
}
