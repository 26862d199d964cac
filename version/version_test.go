package version

import (
	"runtime/debug"
	"testing"
)

func stamp(t *testing.T, version, commit, buildTime string) {
	t.Helper()
	origVersion, origCommit, origBuildTime := Version, GitCommit, BuildTime
	Version, GitCommit, BuildTime = version, commit, buildTime
	t.Cleanup(func() {
		Version, GitCommit, BuildTime = origVersion, origCommit, origBuildTime
	})
}

func TestFromBuildInfo(t *testing.T) {
	bi := &debug.BuildInfo{
		GoVersion: "go1.26.0",
		Settings: []debug.BuildSetting{
			{Key: "vcs.revision", Value: "0123456789abcdef"},
			{Key: "vcs.time", Value: "2026-01-15T10:30:00Z"},
			{Key: "vcs.modified", Value: "true"},
		},
	}

	tests := []struct {
		name      string
		version   string
		commit    string
		wantShort string
		release   bool
	}{
		{"unstamped", "dev", "", "dev-0123456-dirty", false},
		{"stamped commit wins", "1.4.0", "feedbee", "1.4.0-feedbee-dirty", false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			stamp(t, tc.version, tc.commit, "")
			info := fromBuildInfo(bi, true)
			if got := info.Short(); got != tc.wantShort {
				t.Errorf("Short() = %q, want %q", got, tc.wantShort)
			}
			if info.IsRelease() != tc.release {
				t.Errorf("IsRelease() = %v, want %v", info.IsRelease(), tc.release)
			}
			if info.BuildTime != "2026-01-15T10:30:00Z" {
				t.Errorf("expected vcs time, got %q", info.BuildTime)
			}
		})
	}
}

func TestFromBuildInfoMissing(t *testing.T) {
	stamp(t, "1.4.0", "abc1234", "2026-01-15T10:30:00Z")
	info := fromBuildInfo(nil, false)

	if !info.IsRelease() {
		t.Error("stamped clean build should be a release")
	}
	if got := info.String(); got != "1.4.0-abc1234 (built 2026-01-15T10:30:00Z)" {
		t.Errorf("unexpected String() %q", got)
	}
}

func TestGetShortVersion(t *testing.T) {
	if GetShortVersion() == "" {
		t.Error("expected a non-empty version")
	}
}
