package config

import (
	"context"
	"errors"
	"fmt"
	"io/fs"

	"github.com/joho/godotenv"
	"github.com/sethvargo/go-envconfig"
)

// Test seams.
var (
	lookuper   envconfig.Lookuper = envconfig.OsLookuper()
	dotenvFile                    = ".env"
)

// parseEnv overlays JOBTRACKER_* variables onto config. The process
// environment wins over a .env file in the working directory; a missing
// file is not an error. Unset variables leave the current value alone.
func parseEnv(ctx context.Context, config *Config) error {
	l := lookuper
	if dotenvFile != "" {
		vals, err := godotenv.Read(dotenvFile)
		switch {
		case err == nil:
			l = envconfig.MultiLookuper(lookuper, envconfig.MapLookuper(vals))
		case errors.Is(err, fs.ErrNotExist):
		default:
			return fmt.Errorf("read %s: %w", dotenvFile, err)
		}
	}

	if err := envconfig.ProcessWith(ctx, &envconfig.Config{
		Target:   config,
		Lookuper: l,
	}); err != nil {
		return fmt.Errorf("env config: %w", err)
	}
	return nil
}
