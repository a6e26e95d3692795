// Package config loads runtime configuration (log verbosity/format, the
// default persistence path, and the optional audit DSN) from defaults,
// TRANSITCAT_* environment variables, and command-line flags, via
// spf13/viper. None of these settings affect catalogue semantics.
package config

import (
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Config is the resolved runtime configuration for one invocation.
type Config struct {
	LogLevel  string
	LogFormat string
	StatePath string
	AuditDSN  string
}

// Load resolves Config from built-in defaults, TRANSITCAT_* environment
// variables, and any matching flags already registered on flags.
func Load(flags *pflag.FlagSet) (Config, error) {
	v := viper.New()
	v.SetEnvPrefix("TRANSITCAT")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	v.SetDefault("log-level", "info")
	v.SetDefault("log-format", "json")
	v.SetDefault("state", "transitcat.db")
	v.SetDefault("audit-dsn", "")

	if flags != nil {
		if err := v.BindPFlags(flags); err != nil {
			return Config{}, err
		}
	}

	return Config{
		LogLevel:  v.GetString("log-level"),
		LogFormat: v.GetString("log-format"),
		StatePath: v.GetString("state"),
		AuditDSN:  v.GetString("audit-dsn"),
	}, nil
}
