package config

import (
	"flag"
	"fmt"
	"io"
	"time"

	"github.com/dmitrijs2005/edora/internal/flagx"
)

var serverFlags = []string{"-a", "-d", "-s", "-t", "-u", "-p", "-w", "-o", "-q", "-l"}

// parseFlags populates Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   HTTP bind address (e.g., ":8000")
//	-d string   PostgreSQL DSN
//	-s string   JWT HMAC secret key
//	-t int      access token validity, minutes
//	-u string   admin username
//	-p string   admin password (hashed at startup)
//	-w string   admin password bcrypt hash
//	-o string   comma-separated CORS origins
//	-q int      store timeout, seconds
//	-l string   log level
//
// Unknown flags are filtered out first with flagx.FilterArgs so that -c and
// friends do not collide.
func parseFlags(config *Config, args []string) error {
	fs := flag.NewFlagSet("server", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&config.EndpointAddrHTTP, "a", config.EndpointAddrHTTP, "address and port to run server")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.SecretKey, "s", config.SecretKey, "secret key")
	tokenTTL := fs.Int("t", int(config.AccessTokenValidityDuration.Minutes()), "access token validity (in minutes)")
	fs.StringVar(&config.AdminUsername, "u", config.AdminUsername, "admin username")
	fs.StringVar(&config.AdminPassword, "p", config.AdminPassword, "admin password")
	fs.StringVar(&config.AdminPasswordHash, "w", config.AdminPasswordHash, "admin password bcrypt hash")
	origins := fs.String("o", "", "comma-separated allowed CORS origins")
	storeTimeout := fs.Int("q", int(config.StoreTimeout.Seconds()), "store timeout (in seconds)")
	fs.StringVar(&config.LogLevel, "l", config.LogLevel, "log level")

	if err := fs.Parse(flagx.FilterArgs(args, serverFlags)); err != nil {
		return fmt.Errorf("parsing flags: %w", err)
	}

	// Durations are only touched when given explicitly, so sub-minute values
	// from JSON or the environment survive.
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "t":
			config.AccessTokenValidityDuration = time.Duration(*tokenTTL) * time.Minute
		case "q":
			config.StoreTimeout = time.Duration(*storeTimeout) * time.Second
		case "o":
			config.AllowedOrigins = splitList(*origins)
		}
	})

	return nil
}
