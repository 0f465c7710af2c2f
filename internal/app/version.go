package app

import (
	"fmt"
	"runtime"
	"runtime/debug"
)

// Build-time variables set via ldflags. When they are left at their defaults
// the VCS stamp embedded by the go command is used instead.
var (
	Version   = "dev"
	GitCommit = "unknown"
	GitTag    = ""
	BuildTime = "unknown"
)

// VersionInfo contains version information for the application.
type VersionInfo struct {
	Version   string
	GitCommit string
	GitTag    string
	BuildTime string
	GoVersion string
	Modified  bool
}

// GetVersionInfo returns the current version information.
func GetVersionInfo() VersionInfo {
	info := VersionInfo{
		Version:   Version,
		GitCommit: GitCommit,
		GitTag:    GitTag,
		BuildTime: BuildTime,
		GoVersion: runtime.Version(),
	}

	if build, ok := debug.ReadBuildInfo(); ok {
		info = info.withBuildSettings(build.Settings)
	}
	return info
}

func (v VersionInfo) withBuildSettings(settings []debug.BuildSetting) VersionInfo {
	for _, s := range settings {
		switch s.Key {
		case "vcs.revision":
			if v.GitCommit == "unknown" && s.Value != "" {
				v.GitCommit = s.Value[:min(len(s.Value), 12)]
			}
		case "vcs.time":
			if v.BuildTime == "unknown" && s.Value != "" {
				v.BuildTime = s.Value
			}
		case "vcs.modified":
			v.Modified = s.Value == "true"
		}
	}
	return v
}

// FullString returns a detailed version string for logging.
func (v VersionInfo) FullString() string {
	version := v.Version
	if v.GitTag != "" {
		version = v.GitTag
	}
	commit := v.GitCommit
	if v.Modified {
		commit += "-dirty"
	}
	return fmt.Sprintf("wavescope %s (commit: %s, built: %s, %s)", version, commit, v.BuildTime, v.GoVersion)
}
