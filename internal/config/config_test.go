package config_test

import (
	"testing"

	"github.com/Snowflake-Labs/sfgrantreport-sub000/internal/config"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"
)

func newFlags() *pflag.FlagSet {
	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("config", "", "")
	flags.String("account", "", "")
	flags.String("connection", "", "")
	flags.String("output-folder", ".", "")
	flags.Int("max-paths", 10000, "")
	return flags
}

func TestLoadDefaults(t *testing.T) {
	r := require.New(t)

	flags := newFlags()
	r.NoError(flags.Parse(nil))
	conf, err := config.Load(flags)
	r.NoError(err)
	r.Equal(".", conf.OutputFolder)
	r.Equal(10000, conf.MaxPaths)
	r.Equal(64, conf.MaxDepth)
}

func TestLoadFlagOverrides(t *testing.T) {
	r := require.New(t)

	flags := newFlags()
	r.NoError(flags.Parse([]string{"--account", "acme", "--max-paths", "50"}))
	conf, err := config.Load(flags)
	r.NoError(err)
	r.Equal("acme", conf.Account)
	r.Equal(50, conf.MaxPaths)
}

func TestLoadEnv(t *testing.T) {
	r := require.New(t)

	t.Setenv("SFGR_CONNECTION", "prod")
	flags := newFlags()
	r.NoError(flags.Parse(nil))
	conf, err := config.Load(flags)
	r.NoError(err)
	r.Equal("prod", conf.Connection)
}
