package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/joho/godotenv"
)

const (
	EnvAPIURL        = "RESUME_API_URL"
	EnvDataDir       = "RESUME_DATA_DIR"
	EnvLogLevel      = "RESUME_LOG_LEVEL"
	EnvLogFile       = "RESUME_LOG_FILE"
	EnvNotifyTimeout = "RESUME_NOTIFY_TIMEOUT"
)

// dotenvFile is read from the working directory when present.
var dotenvFile = ".env"

var lookupEnv = os.LookupEnv

// parseEnv loads dotenv (never overriding variables already set) and then
// overlays Config with the RESUME_* variables.
func parseEnv(cfg *Config, dotenv string, lookup func(string) (string, bool)) error {
	if dotenv != "" {
		if err := godotenv.Load(dotenv); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("load %s: %w", dotenv, err)
		}
	}

	if v, ok := lookup(EnvAPIURL); ok {
		setIfNotEmpty(&cfg.APIURL, v)
	}
	if v, ok := lookup(EnvDataDir); ok {
		setIfNotEmpty(&cfg.DataDir, v)
	}
	if v, ok := lookup(EnvLogLevel); ok {
		setIfNotEmpty(&cfg.LogLevel, v)
	}
	if v, ok := lookup(EnvLogFile); ok {
		setIfNotEmpty(&cfg.LogFile, v)
	}
	if v, ok := lookup(EnvNotifyTimeout); ok && v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvNotifyTimeout, err)
		}
		cfg.NotifyTimeout = d
	}
	return nil
}
