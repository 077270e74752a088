// Package buildinfo reports the version, commit and build date of the
// binary. Values set with -ldflags win over module build information:
//
//	go build -ldflags "-X github.com/dmitrijs2005/resumeanalyzer/internal/buildinfo.Version=v1.2.0"
package buildinfo

import "runtime/debug"

var (
	Version string
	Commit  string
	Date    string
)

// readBuildInfo is swapped in tests.
var readBuildInfo = debug.ReadBuildInfo

// GetVersion returns the release version.
// Priority: ldflags > debug.ReadBuildInfo > "(devel)"
func GetVersion() string {
	if Version != "" {
		return Version
	}
	if info, ok := readBuildInfo(); ok && info.Main.Version != "" {
		return info.Main.Version
	}
	return "(devel)"
}

// GetCommit returns the short commit hash.
// Priority: ldflags > vcs.revision > "unknown"
func GetCommit() string {
	if Commit != "" {
		return Commit
	}
	if v := setting("vcs.revision"); v != "" {
		if len(v) > 7 {
			return v[:7]
		}
		return v
	}
	return "unknown"
}

// GetDate returns the build date.
// Priority: ldflags > vcs.time > "unknown"
func GetDate() string {
	if Date != "" {
		return Date
	}
	if v := setting("vcs.time"); v != "" {
		return v
	}
	return "unknown"
}

func setting(key string) string {
	info, ok := readBuildInfo()
	if !ok {
		return ""
	}
	for _, s := range info.Settings {
		if s.Key == key {
			return s.Value
		}
	}
	return ""
}
