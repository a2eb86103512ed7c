// Package version carries build metadata injected at link time.
package version

import (
	"fmt"
	"runtime"
)

var (
	// Set at build time via -ldflags
	Version   = "dev"     // semantic version (e.g. v1.2.0)
	GitCommit = "unknown" // git commit hash
	BuildDate = "unknown" // build timestamp
)

// GetVersion returns the version string
func GetVersion() string {
	if Version != "dev" {
		return Version
	}
	return fmt.Sprintf("dev-%s", GitCommit)
}

// GetShortVersion returns a concise version string for display
func GetShortVersion() string {
	if GitCommit != "unknown" && len(GitCommit) >= 7 {
		return fmt.Sprintf("%s (%s)", GetVersion(), GitCommit[:7])
	}
	return GetVersion()
}

// GetLongVersion returns detailed version information for --version output
func GetLongVersion() string {
	output := fmt.Sprintf("envstash version %s\n", GetShortVersion())
	if BuildDate != "unknown" {
		output += fmt.Sprintf("Built: %s\n", BuildDate)
	}
	if GitCommit != "unknown" {
		output += fmt.Sprintf("Commit: %s\n", GitCommit)
	}
	output += fmt.Sprintf("Go: %s\n", runtime.Version())
	output += fmt.Sprintf("Platform: %s/%s\n", runtime.GOOS, runtime.GOARCH)
	return output
}
