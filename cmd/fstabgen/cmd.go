package main

// CLI defines the command-line surface. Every flag is independently
// togglable; without --write the table goes to stdout.
type CLI struct {
	Write   bool   `short:"w" help:"Write the output file instead of printing to stdout."`
	Output  string `short:"o" placeholder:"FILE" help:"Output file path (default: /etc/fstab)."`
	Mkdirs  bool   `short:"m" help:"Create mountpoint directories for emitted entries."`
	NoSwap  bool   `short:"s" help:"Suppress swap entries."`
	UUIDs   bool   `short:"u" help:"Prefer UUID= naming for devices."`
	Labels  bool   `short:"L" help:"Prefer LABEL= naming for devices."`
	NoAuto  bool   `short:"n" help:"Default unmounted devices to noauto instead of auto."`
	Quiet   bool   `short:"q" help:"Suppress progress output."`
	Verbose bool   `short:"v" help:"Enable verbose diagnostic tracing."`
	List    bool   `short:"l" help:"List device and filesystem type pairs, then exit."`
	Config  string `type:"path" help:"Path to TOML config file."`
}
