package config

import (
	"flag"
	"io"
	"time"
)

// parseFlags applies command-line flags to config and returns the remaining
// positional arguments.
//
// Supported flags:
//
//	-c, -config string  JSON config file (read earlier by parseJson)
//	-d string           PostgreSQL DSN
//	-b int              bcrypt cost for new passwords
//	-s string           token signing secret
//	-t int              access token validity, minutes
//	-l string           log level
//	-pretty             human-readable log output
//	-m                  run migrations on start
func parseFlags(config *Config, args []string) ([]string, error) {
	fs := flag.NewFlagSet("jobtracker", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	var ignored string
	fs.StringVar(&ignored, "config", "", "path to config file")
	fs.StringVar(&ignored, "c", "", "path to config file (short)")

	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.IntVar(&config.BcryptCost, "b", config.BcryptCost, "bcrypt cost")
	fs.StringVar(&config.SecretKey, "s", config.SecretKey, "secret key")
	ttl := fs.Int("t", int(config.AccessTokenValidityDuration.Minutes()), "access token validity (in minutes)")
	fs.StringVar(&config.LogLevel, "l", config.LogLevel, "log level")
	fs.BoolVar(&config.LogPretty, "pretty", config.LogPretty, "human-readable logs")
	fs.BoolVar(&config.MigrateOnStart, "m", config.MigrateOnStart, "run migrations on start")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	fs.Visit(func(f *flag.Flag) {
		if f.Name == "t" {
			config.AccessTokenValidityDuration = time.Duration(*ttl) * time.Minute
		}
	})
	return fs.Args(), nil
}
