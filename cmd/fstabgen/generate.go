package main

import (
	"fmt"
	"os"

	"github.com/zaolin/fstabgen/internal/blkdev"
	"github.com/zaolin/fstabgen/internal/config"
	"github.com/zaolin/fstabgen/internal/console"
	"github.com/zaolin/fstabgen/internal/devpath"
	"github.com/zaolin/fstabgen/internal/generator"
	"github.com/zaolin/fstabgen/internal/locale"
	"github.com/zaolin/fstabgen/internal/mounts"
)

// Run executes the generator
func (c *CLI) Run() error {
	console.Quiet = c.Quiet
	console.Verbose = c.Verbose

	// Load config file if specified
	cfg, err := config.Load(c.Config)
	if err != nil {
		return err
	}

	// Override config with CLI flags
	if c.Output != "" {
		cfg.Output = c.Output
	}
	if c.Mkdirs {
		cfg.MakeMountpoints = true
	}
	if c.NoSwap {
		cfg.NoSwap = true
	}
	if c.UUIDs {
		cfg.UUIDs = true
	}
	if c.Labels {
		cfg.Labels = true
	}
	if c.NoAuto {
		cfg.NoAuto = true
	}

	// Fatal preconditions: privilege and the identification helpers.
	if os.Geteuid() != 0 {
		return fmt.Errorf("fstabgen must be run as root")
	}
	blkidBin, err := blkdev.FindBlkid()
	if err != nil {
		return err
	}
	if _, err := devpath.FindFindfs(); err != nil {
		return err
	}

	console.Print("fstabgen: enumerating partitions\n")
	parts, err := blkdev.List()
	if err != nil {
		return fmt.Errorf("read partition list: %w", err)
	}

	gen := generator.New(generator.Options{
		UUIDNames:          cfg.UUIDs,
		LabelNames:         cfg.Labels,
		NoAuto:             cfg.NoAuto,
		NoSwap:             cfg.NoSwap,
		MakeMountpoints:    cfg.MakeMountpoints,
		MediaDir:           cfg.MediaDir,
		ExcludedMountRoots: cfg.ExcludedMountRoots,
		UTF8:               locale.IsUTF8(),
	})
	gen.Enumerate(parts, &blkdev.BlkidProber{Binary: blkidBin})

	if c.List {
		return gen.ListDevices(os.Stdout)
	}

	console.Print("fstabgen: reading active mounts\n")
	mounted, err := mounts.List()
	if err != nil {
		return fmt.Errorf("read active mounts: %w", err)
	}

	gen.ReconcileMounts(mounted)
	gen.EmitResidual()
	gen.EmitFixed()

	table := gen.Table()
	if c.Write {
		console.Print("fstabgen: writing %s (%d entries)\n", cfg.Output, table.Len())
		return table.WriteFile(cfg.Output)
	}

	_, err = table.WriteTo(os.Stdout)
	return err
}
