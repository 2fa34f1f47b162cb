package cmd

import (
	"fmt"
	"runtime"
	"runtime/debug"
	"slices"

	"github.com/Snowflake-Labs/sfgrantreport-sub000/internal"
)

var (
	commit   string
	Version  string // set by main
	versions = make(map[string]string)
	mainDeps = []string{
		"github.com/deckarep/golang-set/v2",
		"github.com/knadh/koanf/v2",
		"gopkg.in/yaml.v3",
	}
)

func init() {
	bi, ok := debug.ReadBuildInfo()
	if !ok {
		return
	}
	for _, mod := range bi.Deps {
		if slices.Contains(mainDeps, mod.Path) {
			versions[mod.Path] = mod.Version
		}
		if len(versions) >= len(mainDeps) {
			break
		}
	}

	for i := range bi.Settings {
		if bi.Settings[i].Key == "vcs.revision" && len(bi.Settings[i].Value) >= 8 {
			commit = bi.Settings[i].Value[:8]
			break
		}
	}

}

func version() string {
	if Version == "" {
		return internal.Version
	}
	return Version
}

func showVersion() {
	fmt.Printf("sfgrantreport %s %s\n", version(), commit)

	for _, path := range mainDeps {
		fmt.Printf("%s %s\n", path, versions[path])
	}

	fmt.Printf("%s %s %s\n", runtime.Version(), runtime.GOOS, runtime.GOARCH)
}
