package config

import (
	"errors"
	"fmt"
	"net/url"
	"path/filepath"
	"strings"
	"time"

	"github.com/adrg/xdg"
	"github.com/spf13/pflag"

	"github.com/dmitrijs2005/resumeanalyzer/internal/common"
)

const (
	DefaultAPIURL        = "http://localhost:5000/api"
	DefaultLogLevel      = "info"
	DefaultNotifyTimeout = 4 * time.Second
	databaseFileName     = "client.db"
)

var ErrInvalidConfig = errors.New("invalid config")

// Config holds runtime settings for the client.
type Config struct {
	APIURL        string
	DataDir       string
	LogLevel      string
	LogFile       string
	NotifyTimeout time.Duration
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.APIURL = DefaultAPIURL
	c.DataDir = filepath.Join(xdg.DataHome, common.AppName)
	c.LogLevel = DefaultLogLevel
	c.LogFile = filepath.Join(xdg.StateHome, common.AppName, "client.log")
	c.NotifyTimeout = DefaultNotifyTimeout
}

// DatabasePath is the SQLite file inside DataDir.
func (c *Config) DatabasePath() string {
	return filepath.Join(c.DataDir, databaseFileName)
}

// Validate rejects values the client cannot run with.
func (c *Config) Validate() error {
	u, err := url.Parse(c.APIURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("%w: api url %q", ErrInvalidConfig, c.APIURL)
	}
	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("%w: log level %q", ErrInvalidConfig, c.LogLevel)
	}
	if c.NotifyTimeout <= 0 {
		return fmt.Errorf("%w: notify timeout %s", ErrInvalidConfig, c.NotifyTimeout)
	}
	if c.DataDir == "" {
		return fmt.Errorf("%w: empty data dir", ErrInvalidConfig)
	}
	return nil
}

// Load constructs a Config, applies defaults, then overlays the config file,
// the environment and the flags in fs that were set. Later sources take
// precedence over earlier ones. fs must have been prepared with BindFlags.
func Load(fs *pflag.FlagSet) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()

	path, err := fs.GetString(flagConfig)
	if err != nil {
		return nil, err
	}
	if path != "" {
		if err := parseFile(cfg, path); err != nil {
			return nil, err
		}
	}
	if err := parseEnv(cfg, dotenvFile, lookupEnv); err != nil {
		return nil, err
	}
	if err := parseFlags(cfg, fs); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
