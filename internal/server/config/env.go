package config

import (
	"fmt"
	"strings"
	"time"
)

// Environment variables read by parseEnv.
const (
	EnvAddr              = "EDORA_ADDR"
	EnvDatabaseDSN       = "DATABASE_URL"
	EnvSecretKey         = "SECRET_KEY"
	EnvTokenTTL          = "EDORA_TOKEN_TTL"
	EnvAdminUsername     = "EDORA_ADMIN_USERNAME"
	EnvAdminPassword     = "EDORA_ADMIN_PASSWORD"
	EnvAdminPasswordHash = "EDORA_ADMIN_PASSWORD_HASH"
	EnvAllowedOrigins    = "CORS_ALLOWED_ORIGINS"
	EnvStoreTimeout      = "EDORA_STORE_TIMEOUT"
	EnvLogLevel          = "EDORA_LOG_LEVEL"
)

// parseEnv overlays values from the environment. lookup is os.LookupEnv in
// production. Origins are comma-separated; durations use time.ParseDuration.
func parseEnv(config *Config, lookup func(string) (string, bool)) error {
	str := func(key string, dst *string) {
		if v, ok := lookup(key); ok && v != "" {
			*dst = v
		}
	}
	dur := func(key string, dst *time.Duration) error {
		v, ok := lookup(key)
		if !ok || v == "" {
			return nil
		}
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
		*dst = d
		return nil
	}

	str(EnvAddr, &config.EndpointAddrHTTP)
	str(EnvDatabaseDSN, &config.DatabaseDSN)
	str(EnvSecretKey, &config.SecretKey)
	str(EnvAdminUsername, &config.AdminUsername)
	str(EnvAdminPassword, &config.AdminPassword)
	str(EnvAdminPasswordHash, &config.AdminPasswordHash)
	str(EnvLogLevel, &config.LogLevel)

	if v, ok := lookup(EnvAllowedOrigins); ok && v != "" {
		config.AllowedOrigins = splitList(v)
	}

	if err := dur(EnvTokenTTL, &config.AccessTokenValidityDuration); err != nil {
		return err
	}
	return dur(EnvStoreTimeout, &config.StoreTimeout)
}

func splitList(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
