package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Config keys and defaults for ~/.config/cratescope/config.yaml.
const (
	cfgKeyManifestPath = "manifest_path"
	cfgKeyPlain        = "plain"
	cfgKeyGraphFormat  = "graph.format"
)

// config holds tool-level settings. Only the CLI shell reads configuration;
// the core packages receive everything as explicit parameters.
type config struct {
	ManifestPath string // default workspace root when --manifest-path is not given
	Plain        bool   // default to plain (uncolored, tab-separated) output
	GraphFormat  string // default graph output format ("dot" or "svg")
}

// loadConfig reads the optional config file from the XDG config directory.
// A missing file is not an error; defaults apply.
func loadConfig() (*config, error) {
	v := viper.New()
	v.SetDefault(cfgKeyManifestPath, ".")
	v.SetDefault(cfgKeyPlain, false)
	v.SetDefault(cfgKeyGraphFormat, "dot")
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	dir, err := configDir()
	if err == nil {
		v.AddConfigPath(dir)
		if err := v.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return nil, fmt.Errorf("read config: %w", err)
			}
		}
	}

	return &config{
		ManifestPath: v.GetString(cfgKeyManifestPath),
		Plain:        v.GetBool(cfgKeyPlain),
		GraphFormat:  v.GetString(cfgKeyGraphFormat),
	}, nil
}

// configDir returns the config directory using the XDG standard
// (~/.config/cratescope/).
func configDir() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName), nil
}
