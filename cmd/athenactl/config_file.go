package main

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// fileConfig is the optional config file at
// ~/.config/athenactl/config.yaml. Environment variables take precedence
// over it.
type fileConfig struct {
	BaseURL         string `yaml:"base_url"`
	LogLevel        string `yaml:"log_level"`
	CredentialsFile string `yaml:"credentials_file"`
}

func loadFileConfig() fileConfig {
	var cfg fileConfig

	configDir, err := os.UserConfigDir()
	if err != nil {
		return cfg
	}
	data, err := os.ReadFile(filepath.Join(configDir, "athenactl", "config.yaml"))
	if err != nil {
		return cfg
	}
	// A broken config file falls back to env/defaults rather than
	// blocking every command.
	_ = yaml.Unmarshal(data, &cfg)
	return cfg
}
