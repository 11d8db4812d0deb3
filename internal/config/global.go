package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// GlobalConfig is the optional per-user configuration stored in
// ~/.config/sermonlytics/config.yml. Every field is optional; set fields
// override the built-in defaults but lose to environment variables.
type GlobalConfig struct {
	APIURL       string `yaml:"api_url,omitempty"`
	OutputDir    string `yaml:"output_dir,omitempty"`
	AssetsDir    string `yaml:"assets_dir,omitempty"`
	BibleDataDir string `yaml:"bible_data_dir,omitempty"`
}

const (
	// GlobalConfigDir is the directory name under XDG_CONFIG_HOME.
	GlobalConfigDir = "sermonlytics"
	// GlobalConfigFile is the config file name.
	GlobalConfigFile = "config.yml"
)

// GlobalConfigPath returns the path to the global config file. Respects
// XDG_CONFIG_HOME, defaults to ~/.config/sermonlytics/config.yml.
func GlobalConfigPath() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, GlobalConfigDir, GlobalConfigFile)
}

// LoadGlobal loads the global configuration file. A missing file is not an
// error; an unreadable or malformed file is.
func LoadGlobal() (*GlobalConfig, error) {
	path := GlobalConfigPath()
	if path == "" {
		return &GlobalConfig{}, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &GlobalConfig{}, nil
		}
		return nil, fmt.Errorf("reading global config: %w", err)
	}

	var cfg GlobalConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing global config: %w", err)
	}

	return &cfg, nil
}

func (g *GlobalConfig) apply(cfg *Config) {
	if g == nil {
		return
	}
	if g.APIURL != "" {
		cfg.APIURL = g.APIURL
	}
	if g.OutputDir != "" {
		cfg.OutputDir = g.OutputDir
	}
	if g.AssetsDir != "" {
		cfg.AssetsDir = g.AssetsDir
	}
	if g.BibleDataDir != "" {
		cfg.BibleDataDir = g.BibleDataDir
	}
}
