package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/dmitrijs2005/jobtracker/internal/flagx"
	"github.com/dmitrijs2005/jobtracker/internal/timex"
)

// JsonConfig is the on-disk form of Config. Durations accept "15m" or
// integer nanoseconds. Pointer fields distinguish "absent" from false.
type JsonConfig struct {
	DatabaseDSN                 string         `json:"database_dsn"`
	BcryptCost                  int            `json:"bcrypt_cost"`
	SecretKey                   string         `json:"secret_key"`
	AccessTokenValidityDuration timex.Duration `json:"access_token_validity_duration"`
	LogLevel                    string         `json:"log_level"`
	LogPretty                   *bool          `json:"log_pretty"`
	MigrateOnStart              *bool          `json:"migrate_on_start"`
}

// parseJson overlays the file given by -c/-config onto config. Keys missing
// from the file keep their current value. No flag means nothing to load.
func parseJson(config *Config, args []string) error {
	path := flagx.ConfigPath(args)
	if path == "" {
		return nil
	}

	file, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}

	c := &JsonConfig{}
	if err := json.Unmarshal(file, c); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}

	if c.DatabaseDSN != "" {
		config.DatabaseDSN = c.DatabaseDSN
	}
	if c.BcryptCost != 0 {
		config.BcryptCost = c.BcryptCost
	}
	if c.SecretKey != "" {
		config.SecretKey = c.SecretKey
	}
	if c.AccessTokenValidityDuration.Duration != 0 {
		config.AccessTokenValidityDuration = c.AccessTokenValidityDuration.Duration
	}
	if c.LogLevel != "" {
		config.LogLevel = c.LogLevel
	}
	if c.LogPretty != nil {
		config.LogPretty = *c.LogPretty
	}
	if c.MigrateOnStart != nil {
		config.MigrateOnStart = *c.MigrateOnStart
	}
	return nil
}
