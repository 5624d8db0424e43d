// Package version reports which rsbind build produced a set of bindings.
//
// Release builds stamp the variables below through the linker:
//
//	go build -ldflags "-X github.com/teranos/rsbind/version.Version=1.2.0 \
//	  -X github.com/teranos/rsbind/version.CommitHash=$(git rev-parse HEAD)"
package version

import (
	"fmt"
	"runtime"
)

const devVersion = "dev"

// shortHashLen matches git's default abbreviation.
const shortHashLen = 7

var (
	CommitHash = devVersion
	BuildTime  = "unknown"
	Version    = devVersion
)

// Info is printed by `rsbind version` and feeds the generated file headers.
type Info struct {
	CommitHash string `json:"commit_hash" yaml:"commit_hash"`
	BuildTime  string `json:"build_time" yaml:"build_time"`
	Version    string `json:"version" yaml:"version"`
	GoVersion  string `json:"go_version" yaml:"go_version"`
	Platform   string `json:"platform" yaml:"platform"`
}

func Get() Info {
	return Info{
		CommitHash: CommitHash,
		BuildTime:  BuildTime,
		Version:    Version,
		GoVersion:  runtime.Version(),
		Platform:   runtime.GOOS + "/" + runtime.GOARCH,
	}
}

// Released reports whether the binary carries a tagged version.
func (i Info) Released() bool {
	return i.Version != devVersion
}

func (i Info) String() string {
	return fmt.Sprintf("rsbind %s (commit %s, built %s)", i.Version, i.CommitHash, i.BuildTime)
}

// Short is the abbreviated commit hash.
func (i Info) Short() string {
	if len(i.CommitHash) > shortHashLen {
		return i.CommitHash[:shortHashLen]
	}
	return i.CommitHash
}

// Generator is the id recorded in generated headers: "rsbind 1.2.0" for
// releases, "rsbind dev+abc1234" otherwise. Untagged builds carry the
// commit so regenerated output can be traced back to a checkout.
func (i Info) Generator() string {
	if i.Released() {
		return "rsbind " + i.Version
	}
	return "rsbind dev+" + i.Short()
}
