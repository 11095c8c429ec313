// Package version reports build information for ffprefs.
package version

import (
	"runtime"
	"runtime/debug"
)

var (
	Version   string // Set via ldflags.
	Branch    string
	BuildUser string
	BuildDate string

	Revision  = getRevision(readBuildInfo)
	GoVersion = runtime.Version()
	GoOS      = runtime.GOOS
	GoArch    = runtime.GOARCH
)

// GetVersion returns the release version, or the VCS revision for
// development builds.
func GetVersion() string {
	if Version != "" {
		return Version
	}

	return Revision
}

func readBuildInfo() ([]debug.BuildSetting, bool) {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return nil, false
	}

	return info.Settings, true
}

func getRevision(read func() ([]debug.BuildSetting, bool)) string {
	rev := "unknown"

	settings, ok := read()
	if !ok {
		return rev
	}

	modified := false

	for _, v := range settings {
		switch v.Key {
		case "vcs.revision":
			rev = v.Value[:min(len(v.Value), 7)]

		case "vcs.modified":
			modified = v.Value == "true"
		}
	}

	if modified {
		return rev + "-dirty"
	}

	return rev
}
