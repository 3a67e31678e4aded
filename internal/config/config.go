package config

import (
	"os"

	"github.com/BurntSushi/toml"
)

// Config holds the fstabgen configuration
type Config struct {
	Output             string   `toml:"output"`
	MediaDir           string   `toml:"media_dir"`
	ExcludedMountRoots []string `toml:"excluded_mount_roots"`
	NoAuto             bool     `toml:"noauto"`
	NoSwap             bool     `toml:"no_swap"`
	UUIDs              bool     `toml:"uuids"`
	Labels             bool     `toml:"labels"`
	MakeMountpoints    bool     `toml:"make_mountpoints"`
}

// DefaultConfig returns a config with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Output:   "/etc/fstab",
		MediaDir: "/media",
		// Mounts under these roots belong to the live-system plumbing
		// and must never end up in the generated table.
		ExcludedMountRoots: []string{
			"/live",
			"/lib/live",
			"/run/live",
			"/cdrom",
			"/UNIONFS",
			"/ramdisk",
		},
	}
}

// Load loads configuration from a TOML file
// If path is empty, returns default config
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}
