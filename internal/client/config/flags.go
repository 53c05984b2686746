package config

import (
	"flag"
	"io"
	"time"

	"github.com/dmitrijs2005/melodeck/internal/flagx"
)

var cliFlags = flagx.Spec{
	Value: []string{"-a", "-d", "-t", "-l", "-i"},
	Bool:  []string{"-strict", "-logout401"},
}

// parseFlags overlays cfg with command-line flags.
//
//	-a string     backend base URL
//	-d string     session database path
//	-t int        request timeout (seconds)
//	-l string     log level
//	-i int        online check interval (seconds)
//	-strict       enforce strong passwords on registration
//	-logout401    end the session on 401 replies
//
// Flags owned by other loaders are filtered out first.
func parseFlags(cfg *Config, args []string) {
	fs := flag.NewFlagSet("main", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&cfg.ServerBaseURL, "a", cfg.ServerBaseURL, "backend base URL")
	fs.StringVar(&cfg.DatabasePath, "d", cfg.DatabasePath, "session database path")
	timeout := fs.Int("t", int(cfg.RequestTimeout.Seconds()), "request timeout (in seconds)")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level")
	interval := fs.Int("i", int(cfg.OnlineCheckInterval.Seconds()), "online check interval (in seconds)")
	fs.BoolVar(&cfg.StrictPasswords, "strict", cfg.StrictPasswords, "enforce strong passwords")
	fs.BoolVar(&cfg.LogoutOnUnauthorized, "logout401", cfg.LogoutOnUnauthorized, "log out on 401 replies")

	if err := fs.Parse(flagx.FilterArgs(args, cliFlags)); err != nil {
		panic(err)
	}

	cfg.RequestTimeout = time.Duration(*timeout) * time.Second
	cfg.OnlineCheckInterval = time.Duration(*interval) * time.Second
}
