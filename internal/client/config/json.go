package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/melodeck/internal/flagx"
	"github.com/dmitrijs2005/melodeck/internal/timex"
)

// JsonConfig mirrors the config file. Pointer fields tell "absent" apart
// from a zero value so missing keys keep their defaults.
type JsonConfig struct {
	ServerBaseURL        *string         `json:"server_base_url"`
	DatabasePath         *string         `json:"database_path"`
	RequestTimeout       *timex.Duration `json:"request_timeout"`
	LogLevel             *string         `json:"log_level"`
	StrictPasswords      *bool           `json:"strict_passwords"`
	LogoutOnUnauthorized *bool           `json:"logout_on_unauthorized"`
	OnlineCheckInterval  *timex.Duration `json:"online_check_interval"`
}

// parseJson overlays cfg with the JSON file named by -c or -config.
// Without either flag it does nothing. Panics on read or decode errors.
func parseJson(cfg *Config, args []string) {
	path := flagx.ConfigPath(args)
	if path == "" {
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.ServerBaseURL != nil {
		cfg.ServerBaseURL = *jc.ServerBaseURL
	}
	if jc.DatabasePath != nil {
		cfg.DatabasePath = *jc.DatabasePath
	}
	if jc.RequestTimeout != nil {
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}
	if jc.LogLevel != nil {
		cfg.LogLevel = *jc.LogLevel
	}
	if jc.StrictPasswords != nil {
		cfg.StrictPasswords = *jc.StrictPasswords
	}
	if jc.LogoutOnUnauthorized != nil {
		cfg.LogoutOnUnauthorized = *jc.LogoutOnUnauthorized
	}
	if jc.OnlineCheckInterval != nil {
		cfg.OnlineCheckInterval = jc.OnlineCheckInterval.Duration
	}
}
