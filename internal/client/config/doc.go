// Package config loads runtime configuration for the resume analyzer client.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults), with per-user
//     directories resolved through XDG base directories.
//  2. Optional YAML or JSON file selected with -c/--config.
//  3. Environment variables, after loading a .env file from the working
//     directory (real environment variables win over .env entries).
//  4. Command-line flags that were explicitly set.
//
// Supported flags
//
//	-a, --api string             API base URL
//	-d, --data-dir string        directory holding the local database
//	    --log-level string       debug, info, warn or error
//	    --log-file string        log file used by the full-screen client
//	-n, --notify-timeout dur     how long notifications stay visible
//	-c, --config string          YAML or JSON config file
//
// Environment
//
//	RESUME_API_URL, RESUME_DATA_DIR, RESUME_LOG_LEVEL, RESUME_LOG_FILE,
//	RESUME_NOTIFY_TIMEOUT
//
// # File schema
//
//	api_url: http://localhost:5000/api
//	data_dir: ~/.local/share/resumeanalyzer
//	log_level: info
//	log_file: ~/.local/state/resumeanalyzer/client.log
//	notify_timeout: 4s
package config
