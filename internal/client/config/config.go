package config

import (
	"os"
	"time"

	"github.com/dmitrijs2005/melodeck/internal/common"
)

// Config holds runtime settings for the melodeck CLI.
//
// Fields:
//   - ServerBaseURL: base URL of the backend API, without trailing slash.
//   - DatabasePath: SQLite file holding the persisted session.
//   - RequestTimeout: per-request timeout of the API client.
//   - LogLevel: debug, info, warn or error.
//   - StrictPasswords: enforce the strong password rule on registration.
//   - LogoutOnUnauthorized: also end the session when the backend answers 401.
//   - OnlineCheckInterval: how often the client probes backend reachability.
type Config struct {
	ServerBaseURL        string
	DatabasePath         string
	RequestTimeout       time.Duration
	LogLevel             string
	StrictPasswords      bool
	LogoutOnUnauthorized bool
	OnlineCheckInterval  time.Duration
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerBaseURL = "http://127.0.0.1:5000"
	c.DatabasePath = common.AppName + ".db"
	c.RequestTimeout = 10 * time.Second
	c.LogLevel = "info"
	c.StrictPasswords = false
	c.LogoutOnUnauthorized = false
	c.OnlineCheckInterval = 30 * time.Second
}

// LoadConfig constructs a Config from defaults, then the JSON file named by
// -c/-config (if any), then command-line flags. Later sources win.
// It panics on unreadable files or malformed values.
func LoadConfig() *Config {
	return load(os.Args[1:])
}

func load(args []string) *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg, args)
	parseFlags(cfg, args)
	return cfg
}
