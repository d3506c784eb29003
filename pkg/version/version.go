// Package version provides build version and metadata information.
package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
)

var (
	// Version is the semantic version of the application.
	// Set during build with -ldflags "-X github.com/d-kuro/peek-mcp/pkg/version.Version=v1.0.0"
	Version = "dev"

	// GitCommit is the git commit hash.
	// Set during build with -ldflags "-X github.com/d-kuro/peek-mcp/pkg/version.GitCommit=abcdef"
	GitCommit = "unknown"

	// BuildDate is the build timestamp.
	// Set during build with -ldflags "-X github.com/d-kuro/peek-mcp/pkg/version.BuildDate=2024-01-01T00:00:00Z"
	BuildDate = "unknown"
)

// Info contains version and build information.
type Info struct {
	Version   string `json:"version"`
	GitCommit string `json:"git_commit"`
	BuildDate string `json:"build_date"`
	GoVersion string `json:"go_version"`
	Platform  string `json:"platform"`
}

// GetVersion returns the current version information. Binaries built with
// `go install` carry no ldflags, so the module version and VCS stamp are used instead.
func GetVersion() Info {
	info := Info{
		Version:   Version,
		GitCommit: GitCommit,
		BuildDate: BuildDate,
		GoVersion: runtime.Version(),
		Platform:  fmt.Sprintf("%s/%s", runtime.GOOS, runtime.GOARCH),
	}

	if bi, ok := debug.ReadBuildInfo(); ok {
		fillFromBuildInfo(&info, bi)
	}
	return info
}

func fillFromBuildInfo(info *Info, bi *debug.BuildInfo) {
	if info.Version == "dev" && bi.Main.Version != "" && bi.Main.Version != "(devel)" {
		info.Version = bi.Main.Version
	}

	for _, s := range bi.Settings {
		switch s.Key {
		case "vcs.revision":
			if info.GitCommit == "unknown" {
				info.GitCommit = s.Value
			}
		case "vcs.time":
			if info.BuildDate == "unknown" {
				info.BuildDate = s.Value
			}
		}
	}
}

// ShortCommit returns the first seven characters of the commit hash.
func (i Info) ShortCommit() string {
	if len(i.GitCommit) > 7 {
		return i.GitCommit[:7]
	}
	return i.GitCommit
}

// String returns a formatted version string.
func (i Info) String() string {
	return fmt.Sprintf("peek-mcp %s (%s) built with %s on %s",
		i.Version, i.ShortCommit(), i.GoVersion, i.Platform)
}
