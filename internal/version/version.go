// Package version reports what pokepalette binary is running.
//
// Release builds set Version, Commit and Date with -ldflags "-X ...". Builds
// without ldflags (go install, go run) fall back to the module version and the
// VCS stamps the Go toolchain embeds.
package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
	"sync"
)

const unset = "unknown"

// Set at link time.
var (
	Version = "dev"
	Commit  = unset
	Date    = unset
)

// Info describes the running binary.
type Info struct {
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	Date      string `json:"date"`
	Modified  bool   `json:"modified,omitempty"`
	GoVersion string `json:"go_version"`
	Platform  string `json:"platform"`
}

var buildInfo = sync.OnceValue(func() *debug.BuildInfo {
	bi, ok := debug.ReadBuildInfo()
	if !ok {
		return nil
	}
	return bi
})

// GetInfo returns the link-time values, filled from embedded build
// information where they were left unset.
func GetInfo() Info {
	info := Info{
		Version:   Version,
		Commit:    Commit,
		Date:      Date,
		GoVersion: runtime.Version(),
		Platform:  runtime.GOOS + "/" + runtime.GOARCH,
	}
	return withBuildInfo(info, buildInfo())
}

// withBuildInfo fills the fields info still has at their defaults from bi.
func withBuildInfo(info Info, bi *debug.BuildInfo) Info {
	if bi == nil {
		return info
	}
	if info.Version == "dev" && bi.Main.Version != "" && bi.Main.Version != "(devel)" {
		info.Version = bi.Main.Version
	}
	if bi.GoVersion != "" {
		info.GoVersion = bi.GoVersion
	}
	for _, s := range bi.Settings {
		switch s.Key {
		case "vcs.revision":
			if info.Commit == unset {
				info.Commit = s.Value
			}
		case "vcs.time":
			if info.Date == unset {
				info.Date = s.Value
			}
		case "vcs.modified":
			info.Modified = s.Value == "true"
		}
	}
	return info
}

// String formats info on one line.
func (i Info) String() string {
	if i.Commit == unset {
		return fmt.Sprintf("pokepalette version %s (%s, %s)", i.Version, i.GoVersion, i.Platform)
	}
	commit := i.Commit
	if len(commit) > 8 {
		commit = commit[:8]
	}
	if i.Modified {
		commit += "-dirty"
	}
	return fmt.Sprintf("pokepalette version %s (commit: %s, built: %s, %s, %s)",
		i.Version, commit, i.Date, i.GoVersion, i.Platform)
}

// String returns the running binary's version line.
func String() string {
	return GetInfo().String()
}

// Short returns the bare version.
func Short() string {
	return GetInfo().Version
}
