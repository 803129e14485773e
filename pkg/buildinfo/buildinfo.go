// Package buildinfo reports the build's version, commit and date.
//
// Release builds set the variables via ldflags:
//
//	go build -ldflags "-X github.com/matzehuels/surveycharts/pkg/buildinfo.Version=v1.0.0 \
//	    -X github.com/matzehuels/surveycharts/pkg/buildinfo.Commit=$(git rev-parse HEAD) \
//	    -X github.com/matzehuels/surveycharts/pkg/buildinfo.Date=$(date -u +%Y-%m-%dT%H:%M:%SZ)"
//
// Builds from "go install" fall back to the module version and VCS stamps
// embedded by the toolchain.
package buildinfo

import (
	"fmt"
	"runtime/debug"
	"sync"
)

var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

var fillOnce sync.Once

func fill() {
	fillOnce.Do(func() {
		info, ok := debug.ReadBuildInfo()
		if !ok {
			return
		}
		if Version == "dev" && info.Main.Version != "" && info.Main.Version != "(devel)" {
			Version = info.Main.Version
		}
		for _, s := range info.Settings {
			switch {
			case s.Key == "vcs.revision" && Commit == "none":
				Commit = s.Value
			case s.Key == "vcs.time" && Date == "unknown":
				Date = s.Value
			}
		}
	})
}

// Info returns the resolved version, commit and date.
func Info() (version, commit, date string) {
	fill()
	return Version, Commit, Date
}

// Generator identifies this build in artifact metadata, e.g. "surveycharts/v1.2.0".
func Generator() string {
	v, _, _ := Info()
	return "surveycharts/" + v
}

// Template returns the version template string for cobra.
func Template() string {
	v, c, d := Info()
	return fmt.Sprintf("{{.Name}} version %s\ncommit: %s\nbuilt: %s\n", v, c, d)
}
