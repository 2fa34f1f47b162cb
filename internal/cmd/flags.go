package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/lithammer/dedent"
	"github.com/spf13/pflag"
)

func init() {
	pflag.Usage = func() {
		fmt.Fprintf(os.Stderr, "usage: %s [OPTIONS]\n\n", os.Args[0])
		pflag.PrintDefaults()
		os.Stderr.Write([]byte(dedent.Dedent(`

		sfgrantreport audits the role and grant configuration of one Snowflake
		account. Point it at a snowsql connection or at a folder of exported
		CSVs, or pass two folders to compare independent captures.
		`)))
	}
}

func setupFlags() {
	pflag.StringP("config", "c", "", "Path to YAML configuration file.")
	pflag.StringP("account", "a", "", "Account label used in output file names.")
	pflag.String("connection", "", "snowsql named connection to inspect live.")
	pflag.StringP("input-folder", "i", "", "Folder holding exported CSVs instead of a live connection.")
	pflag.StringP("output-folder", "o", ".", "Folder receiving the reports.")
	pflag.StringP("left-folder", "l", "", "Left snapshot folder for comparison.")
	pflag.StringP("right-folder", "r", "", "Right snapshot folder for comparison.")
	pflag.StringSlice("scim-roles", nil, "Extra role names to classify as SCIM provisioners.")
	pflag.StringSlice("exclude-roles", nil, "fnmatch patterns of role names to leave out of the analysis.")
	pflag.Int("max-paths", 10000, "Soft cap on ancestry path enumeration per role.")
	pflag.Int("max-depth", 64, "Soft cap on ancestry depth per role.")
	pflag.String("dot-binary", "", "Graphviz dot binary for hierarchy rasterization. Empty skips rendering.")
	pflag.String("snowsql", "", "snowsql binary path. Defaults from PATH.")

	pflag.BoolP("help", "?", false, "Show this help message and exit.")
	pflag.BoolP("version", "V", false, "Show version and exit.")
	pflag.CountP("quiet", "q", "Decrease log verbosity.")
	pflag.CountP("verbose", "v", "Increase log verbosity.")
}

// effectiveLevel shifts the env-configured level by -v/-q occurrences.
func effectiveLevel(level slog.Level) slog.Level {
	verbose := mustCount("verbose")
	quiet := mustCount("quiet")
	return level + slog.Level(4*(quiet-verbose))
}

func mustBool(name string) bool {
	value, err := pflag.CommandLine.GetBool(name)
	if err != nil {
		panic(err)
	}
	return value
}

func mustCount(name string) int {
	value, err := pflag.CommandLine.GetCount(name)
	if err != nil {
		panic(err)
	}
	return value
}
