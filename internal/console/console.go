package console

import (
	"fmt"
	"os"
)

// Quiet suppresses progress output. Warnings are still printed.
var Quiet bool

// Verbose enables diagnostic tracing.
var Verbose bool

// Print outputs a progress message to stderr, keeping stdout free for
// the generated table. Suppressed when Quiet is set.
func Print(format string, args ...interface{}) {
	if Quiet {
		return
	}
	fmt.Fprintf(os.Stderr, format, args...)
}

// Trace outputs a diagnostic message only when Verbose is set.
func Trace(format string, args ...interface{}) {
	if !Verbose || Quiet {
		return
	}
	fmt.Fprintf(os.Stderr, format, args...)
}

// Warn outputs a warning. Not suppressed by Quiet: warnings flag skipped
// devices and failed directory creation, which the caller should see.
func Warn(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "fstabgen: warning: "+format, args...)
}
