package config

import (
	"github.com/spf13/pflag"
)

const (
	flagAPI           = "api"
	flagDataDir       = "data-dir"
	flagLogLevel      = "log-level"
	flagLogFile       = "log-file"
	flagNotifyTimeout = "notify-timeout"
	flagConfig        = "config"
)

// BindFlags registers the configuration flags on fs. Defaults shown in help
// are the built-in ones; Load only applies flags the user actually set.
func BindFlags(fs *pflag.FlagSet) {
	var d Config
	d.LoadDefaults()

	fs.StringP(flagAPI, "a", d.APIURL, "API base URL")
	fs.StringP(flagDataDir, "d", d.DataDir, "directory holding the local database")
	fs.String(flagLogLevel, d.LogLevel, "log level (debug, info, warn, error)")
	fs.String(flagLogFile, d.LogFile, "log file used by the full-screen client")
	fs.DurationP(flagNotifyTimeout, "n", d.NotifyTimeout, "how long notifications stay visible")
	fs.StringP(flagConfig, "c", "", "YAML or JSON config file")
}

// parseFlags overlays Config with the flags that were explicitly set.
func parseFlags(cfg *Config, fs *pflag.FlagSet) error {
	var err error
	if fs.Changed(flagAPI) {
		if cfg.APIURL, err = fs.GetString(flagAPI); err != nil {
			return err
		}
	}
	if fs.Changed(flagDataDir) {
		if cfg.DataDir, err = fs.GetString(flagDataDir); err != nil {
			return err
		}
	}
	if fs.Changed(flagLogLevel) {
		if cfg.LogLevel, err = fs.GetString(flagLogLevel); err != nil {
			return err
		}
	}
	if fs.Changed(flagLogFile) {
		if cfg.LogFile, err = fs.GetString(flagLogFile); err != nil {
			return err
		}
	}
	if fs.Changed(flagNotifyTimeout) {
		if cfg.NotifyTimeout, err = fs.GetDuration(flagNotifyTimeout); err != nil {
			return err
		}
	}
	return nil
}
