package version

import (
	"strings"

	"github.com/fatih/color"
)

// Version information for the slang CLI.
// These variables can be overridden at build time via -ldflags.
var (
	// Version is the semantic version of the CLI.
	Version = "0.1.0-dev"

	// GitCommit is an optional git commit hash.
	GitCommit = ""

	// BuildDate is an optional build date in ISO-8601.
	BuildDate = ""
)

var (
	versionMajorColor = color.New(color.FgYellow, color.Bold)
	versionMinorColor = color.New(color.FgGreen, color.Bold)
	versionPatchColor = color.New(color.FgBlue, color.Bold)
)

// Banner renders `slang version` output. With colored set, the major, minor
// and patch parts get their own colors.
func Banner(colored bool) string {
	var sb strings.Builder
	sb.WriteString("slang ")
	sb.WriteString(formatVersion(Version, colored))
	if GitCommit != "" {
		commit := GitCommit
		if len(commit) > 12 {
			commit = commit[:12]
		}
		sb.WriteString(" (" + commit + ")")
	}
	if BuildDate != "" {
		sb.WriteString(" built " + BuildDate)
	}
	return sb.String()
}

func formatVersion(v string, colored bool) string {
	core, suffix, hasSuffix := strings.Cut(v, "-")
	parts := strings.SplitN(core, ".", 3)
	if !colored || len(parts) != 3 {
		return v
	}
	out := make([]string, 3)
	for i, c := range []*color.Color{versionMajorColor, versionMinorColor, versionPatchColor} {
		c.EnableColor()
		out[i] = c.Sprint(parts[i])
	}
	res := strings.Join(out, ".")
	if hasSuffix {
		res += "-" + suffix
	}
	return res
}
