// Package config loads runtime configuration for the melodeck CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file selected with -c or -config.
//  3. Command-line flags, which override earlier values.
//
// Supported flags
//
//	-a string   backend base URL
//	-d string   session database path
//	-t int      request timeout (seconds)
//	-l string   log level (debug, info, warn, error)
//	-i int      online check interval (seconds)
//	-strict     enforce strong passwords on registration
//	-logout401  end the session when the backend answers 401
//
// # JSON schema
//
// request_timeout and online_check_interval are timex.Duration values, so each may be a string like "10s" or
// integer nanoseconds. Keys that are absent keep their defaults:
//
//	{
//	  "server_base_url": "http://127.0.0.1:5000",
//	  "database_path": "melodeck.db",
//	  "request_timeout": "10s",
//	  "log_level": "info",
//	  "strict_passwords": false,
//	  "logout_on_unauthorized": false,
//	  "online_check_interval": "30s"
//	}
//
// Environment variables are not read.
package config
