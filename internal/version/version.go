// Package version reports the spnavcfg build version.
package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
	"time"
)

// Set at build time:
//
//	go build -ldflags="-X github.com/muurk/spnavcfg/internal/version.Version=v0.3.0 \
//	                   -X github.com/muurk/spnavcfg/internal/version.Commit=abc1234"
//
// Unset values are filled from the module's VCS stamp, then from "dev".
var (
	Version = ""
	Commit  = ""
)

// Info describes the running binary.
type Info struct {
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	GoVersion string `json:"go_version"`
	Platform  string `json:"platform"`
}

func init() {
	if Version == "" || Commit == "" {
		if info, ok := debug.ReadBuildInfo(); ok {
			applyBuildSettings(info.Settings)
		}
	}
	if Version == "" {
		Version = "dev"
	}
	if Commit == "" {
		Commit = "unknown"
	}
}

// applyBuildSettings fills Version and Commit from VCS build settings.
func applyBuildSettings(settings []debug.BuildSetting) {
	vcs := make(map[string]string, len(settings))
	for _, s := range settings {
		vcs[s.Key] = s.Value
	}

	if Commit == "" {
		if rev := vcs["vcs.revision"]; rev != "" {
			if len(rev) > 7 {
				rev = rev[:7]
			}
			if vcs["vcs.modified"] == "true" {
				rev += "-dirty"
			}
			Commit = rev
		}
	}

	// Build info carries no tags, so untagged builds are named by commit date
	if Version == "" {
		if t, err := time.Parse(time.RFC3339, vcs["vcs.time"]); err == nil {
			Version = "dev-" + t.UTC().Format("20060102")
		}
	}
}

// Get returns the version information of the running binary.
func Get() Info {
	return Info{
		Version:   Version,
		Commit:    Commit,
		GoVersion: runtime.Version(),
		Platform:  runtime.GOOS + "/" + runtime.GOARCH,
	}
}

// Full returns the full version string including commit
func Full() string {
	return fmt.Sprintf("%s (commit: %s)", Version, Commit)
}
