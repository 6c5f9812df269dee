package version

import (
	"runtime/debug"
	"testing"
)

func TestInfoString(t *testing.T) {
	tests := []struct {
		name string
		info Info
		want string
	}{
		{
			name: "no commit",
			info: Info{Version: "dev", Commit: unset, Date: unset, GoVersion: "go1.25.1", Platform: "linux/amd64"},
			want: "pokepalette version dev (go1.25.1, linux/amd64)",
		},
		{
			name: "long commit",
			info: Info{Version: "v1.2.0", Commit: "0123456789abcdef", Date: "2026-01-02T03:04:05Z", GoVersion: "go1.25.1", Platform: "linux/amd64"},
			want: "pokepalette version v1.2.0 (commit: 01234567, built: 2026-01-02T03:04:05Z, go1.25.1, linux/amd64)",
		},
		{
			name: "short dirty commit",
			info: Info{Version: "dev", Commit: "abc", Date: "2026-01-02", Modified: true, GoVersion: "go1.25.1", Platform: "darwin/arm64"},
			want: "pokepalette version dev (commit: abc-dirty, built: 2026-01-02, go1.25.1, darwin/arm64)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.info.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestWithBuildInfo(t *testing.T) {
	bi := &debug.BuildInfo{
		GoVersion: "go1.25.1",
		Main:      debug.Module{Path: "github.com/jmylchreest/pokepalette", Version: "v0.3.0"},
		Settings: []debug.BuildSetting{
			{Key: "vcs.revision", Value: "feedfacecafe"},
			{Key: "vcs.time", Value: "2026-05-06T07:08:09Z"},
			{Key: "vcs.modified", Value: "true"},
		},
	}

	t.Run("fills defaults", func(t *testing.T) {
		got := withBuildInfo(Info{Version: "dev", Commit: unset, Date: unset}, bi)
		if got.Version != "v0.3.0" || got.Commit != "feedfacecafe" || got.Date != "2026-05-06T07:08:09Z" || !got.Modified {
			t.Errorf("withBuildInfo() = %+v", got)
		}
		if got.GoVersion != "go1.25.1" {
			t.Errorf("GoVersion = %q", got.GoVersion)
		}
	})

	t.Run("keeps link-time values", func(t *testing.T) {
		got := withBuildInfo(Info{Version: "v1.0.0", Commit: "0000000", Date: "2025-12-31"}, bi)
		if got.Version != "v1.0.0" || got.Commit != "0000000" || got.Date != "2025-12-31" {
			t.Errorf("withBuildInfo() = %+v", got)
		}
	})

	t.Run("devel module version", func(t *testing.T) {
		devel := &debug.BuildInfo{Main: debug.Module{Version: "(devel)"}}
		if got := withBuildInfo(Info{Version: "dev", Commit: unset, Date: unset}, devel); got.Version != "dev" {
			t.Errorf("Version = %q, want dev", got.Version)
		}
	})

	t.Run("no build info", func(t *testing.T) {
		in := Info{Version: "dev", Commit: unset}
		if got := withBuildInfo(in, nil); got != in {
			t.Errorf("withBuildInfo(nil) = %+v", got)
		}
	})
}

func TestShortMatchesInfo(t *testing.T) {
	if Short() != GetInfo().Version {
		t.Errorf("Short() = %q, GetInfo().Version = %q", Short(), GetInfo().Version)
	}
}
