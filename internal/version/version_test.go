package version

import (
	"runtime/debug"
	"strings"
	"testing"
)

func TestGet(t *testing.T) {
	info := Get()
	if info.Version != Version {
		t.Errorf("Version = %q, want %q", info.Version, Version)
	}
	if !strings.HasPrefix(info.GoVersion, "go") {
		t.Errorf("GoVersion = %q", info.GoVersion)
	}
	if !strings.Contains(info.Platform, "/") {
		t.Errorf("Platform = %q", info.Platform)
	}
}

func TestFillFromSettings(t *testing.T) {
	settings := []debug.BuildSetting{
		{Key: "vcs.revision", Value: "0123456789abcdef"},
		{Key: "vcs.time", Value: "2026-10-01T12:00:00Z"},
		{Key: "vcs.modified", Value: "true"},
	}

	tests := []struct {
		name       string
		info       Info
		wantCommit string
		wantDate   string
	}{
		{
			name:       "fills unknown fields",
			info:       Info{GitCommit: unknown, BuildDate: unknown},
			wantCommit: "0123456-dirty",
			wantDate:   "2026-10-01T12:00:00Z",
		},
		{
			name:       "keeps ldflags values",
			info:       Info{GitCommit: "abc1234", BuildDate: "2026-01-15 14:30"},
			wantCommit: "abc1234",
			wantDate:   "2026-01-15 14:30",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			info := tt.info
			fillFromSettings(&info, settings)
			if info.GitCommit != tt.wantCommit {
				t.Errorf("GitCommit = %q, want %q", info.GitCommit, tt.wantCommit)
			}
			if info.BuildDate != tt.wantDate {
				t.Errorf("BuildDate = %q, want %q", info.BuildDate, tt.wantDate)
			}
		})
	}
}
