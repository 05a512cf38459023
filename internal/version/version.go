// Package version reports which build of themegroup is running.
//
// Release builds set Version, Commit and Date with ldflags, for example
//
//	-ldflags "-X github.com/jmylchreest/themegroup/internal/version.Version=1.2.0"
//
// Builds without ldflags (go install, go run) fall back to the VCS stamp the
// Go toolchain records in the binary.
package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
	"strings"
)

const unknown = "unknown"

// Set at build time.
var (
	Version = "dev"
	Commit  = unknown
	Date    = unknown
)

// Info describes a build.
type Info struct {
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	Date      string `json:"date"`
	Dirty     bool   `json:"dirty,omitempty"`
	GoVersion string `json:"go_version"`
	Platform  string `json:"platform"`
}

// Get returns the running build's information.
func Get() Info {
	info := Info{
		Version:   Version,
		Commit:    Commit,
		Date:      Date,
		GoVersion: runtime.Version(),
		Platform:  runtime.GOOS + "/" + runtime.GOARCH,
	}
	if bi, ok := debug.ReadBuildInfo(); ok {
		info = info.withBuildInfo(bi)
	}
	return info
}

// withBuildInfo fills fields ldflags left at their defaults from the module
// and VCS data embedded by the toolchain.
func (i Info) withBuildInfo(bi *debug.BuildInfo) Info {
	if i.Version == "dev" && bi.Main.Version != "" && bi.Main.Version != "(devel)" {
		i.Version = strings.TrimPrefix(bi.Main.Version, "v")
	}

	for _, s := range bi.Settings {
		switch s.Key {
		case "vcs.revision":
			if i.Commit == unknown {
				i.Commit = s.Value
			}
		case "vcs.time":
			if i.Date == unknown {
				i.Date = s.Value
			}
		case "vcs.modified":
			i.Dirty = s.Value == "true"
		}
	}
	return i
}

// ShortCommit returns the first eight characters of the commit hash.
func (i Info) ShortCommit() string {
	if len(i.Commit) > 8 {
		return i.Commit[:8]
	}
	return i.Commit
}

// String renders the build as one line, e.g.
// "themegroup 1.2.0 (01234567, 2025-01-02T03:04:05Z) go1.25.0 linux/amd64".
func (i Info) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "themegroup %s", i.Version)

	if i.Commit != unknown {
		commit := i.ShortCommit()
		if i.Dirty {
			commit += "-dirty"
		}
		if i.Date != unknown {
			fmt.Fprintf(&b, " (%s, %s)", commit, i.Date)
		} else {
			fmt.Fprintf(&b, " (%s)", commit)
		}
	}

	fmt.Fprintf(&b, " %s %s", i.GoVersion, i.Platform)
	return b.String()
}

// Short returns the bare version, as shown by --version.
func Short() string {
	return Get().Version
}
