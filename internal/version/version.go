// Package version holds build information for the traitgen CLI.
// The variables can be overridden at build time via -ldflags.
package version

import (
	"strings"

	"github.com/fatih/color"
)

var (
	versionMajorColor = color.New(color.FgYellow, color.Bold)
	versionMinorColor = color.New(color.FgGreen, color.Bold)
	versionPatchColor = color.New(color.FgBlue, color.Bold)

	// Version is the semantic version of the CLI.
	Version = "0.1.0-dev"

	// GitCommit is an optional git commit hash.
	GitCommit = ""

	// GitMessage is an optional git commit message.
	GitMessage = ""

	// BuildDate is an optional build date in ISO-8601.
	BuildDate = ""
)

// Info is the machine-readable form of the build information.
type Info struct {
	Version    string `json:"version"`
	GitCommit  string `json:"git_commit,omitempty"`
	GitMessage string `json:"git_message,omitempty"`
	BuildDate  string `json:"build_date,omitempty"`
}

// Current returns the build information.
func Current() Info {
	return Info{
		Version:    Version,
		GitCommit:  GitCommit,
		GitMessage: GitMessage,
		BuildDate:  BuildDate,
	}
}

// Colored renders Version with each numeric component in its own colour.
// Whether escapes are emitted follows color.NoColor.
func Colored() string {
	core, suffix, _ := strings.Cut(Version, "-")
	parts := strings.SplitN(core, ".", 3)
	if len(parts) != 3 {
		return Version
	}
	out := versionMajorColor.Sprint(parts[0]) + "." +
		versionMinorColor.Sprint(parts[1]) + "." +
		versionPatchColor.Sprint(parts[2])
	if suffix != "" {
		out += "-" + suffix
	}
	return out
}

// CacheKey identifies the generator for on-disk caches: entries written by a
// different build are never reused.
func CacheKey() string {
	if GitCommit != "" {
		return Version + "+" + GitCommit
	}
	return Version
}
