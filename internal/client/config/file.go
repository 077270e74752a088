package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// fileConfig is a DTO used exclusively for decoding the config file. JSON
// files decode through the same YAML parser. Durations are strings such as
// "4s".
type fileConfig struct {
	APIURL        string         `yaml:"api_url"`
	DataDir       string         `yaml:"data_dir"`
	LogLevel      string         `yaml:"log_level"`
	LogFile       string         `yaml:"log_file"`
	NotifyTimeout *time.Duration `yaml:"notify_timeout"`
}

// parseFile overlays Config with the non-empty values from the file at path.
func parseFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}

	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}

	setIfNotEmpty(&cfg.APIURL, fc.APIURL)
	setIfNotEmpty(&cfg.DataDir, fc.DataDir)
	setIfNotEmpty(&cfg.LogLevel, fc.LogLevel)
	setIfNotEmpty(&cfg.LogFile, fc.LogFile)
	if fc.NotifyTimeout != nil {
		cfg.NotifyTimeout = *fc.NotifyTimeout
	}
	return nil
}

func setIfNotEmpty(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
