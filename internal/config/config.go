// Package config layers tool configuration: defaults, then the optional YAML
// file, then SFGR_* environment variables, then command line flags.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"path"
	"strings"

	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"
)

// Config holds the effective settings of one run.
type Config struct {
	Account      string   `koanf:"account"`
	Connection   string   `koanf:"connection"`
	InputFolder  string   `koanf:"input-folder"`
	OutputFolder string   `koanf:"output-folder"`
	LeftFolder   string   `koanf:"left-folder"`
	RightFolder  string   `koanf:"right-folder"`
	ScimRoles    []string `koanf:"scim-roles"`
	ExcludeRoles []string `koanf:"exclude-roles"`
	MaxPaths     int      `koanf:"max-paths"`
	MaxDepth     int      `koanf:"max-depth"`
	DotBinary    string   `koanf:"dot-binary"`
	SnowSQL      string   `koanf:"snowsql"`
}

func defaults() map[string]any {
	return map[string]any{
		"output-folder": ".",
		"max-paths":     10000,
		"max-depth":     64,
	}
}

// Load builds the effective configuration from all layers. flags must be
// parsed already.
func Load(flags *pflag.FlagSet) (conf Config, err error) {
	k := koanf.New(".")
	_ = k.Load(confmap.Provider(defaults(), k.Delim()), nil)

	configPath := FindConfigFile(flagString(flags, "config"))
	if configPath != "" {
		slog.Debug("Loading YAML configuration.", "path", configPath)
		err = loadYamlFile(k, configPath)
		if err != nil {
			return conf, fmt.Errorf("%s: %w", configPath, err)
		}
	}

	_ = k.Load(env.Provider("SFGR_", k.Delim(), func(key string) string {
		key = strings.TrimPrefix(key, "SFGR_")
		key = strings.ToLower(key)
		return strings.ReplaceAll(key, "_", "-")
	}), nil)

	_ = k.Load(posflag.Provider(flags, k.Delim(), k), nil)

	err = k.Unmarshal("", &conf)
	return conf, err
}

// FindConfigFile searches standard locations unless the user named a file.
func FindConfigFile(userValue string) (configpath string) {
	if userValue != "" {
		return userValue
	}

	home, _ := os.UserHomeDir()
	candidates := []string{
		"./sfgrantreport.yml",
		"./sfgrantreport.yaml",
		path.Join(home, "/.config/sfgrantreport.yml"),
		"/etc/sfgrantreport.yml",
	}

	for _, candidate := range candidates {
		_, err := os.Stat(candidate)
		if err == nil {
			slog.Debug("Found configuration file.", "path", candidate)
			return candidate
		}
	}

	return ""
}

func loadYamlFile(k *koanf.Koanf, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	values := make(map[string]any)
	err = yaml.Unmarshal(data, &values)
	if err != nil {
		return err
	}
	return k.Load(confmap.Provider(values, k.Delim()), nil)
}

func flagString(flags *pflag.FlagSet, name string) string {
	value, err := flags.GetString(name)
	if err != nil {
		return ""
	}
	return value
}
