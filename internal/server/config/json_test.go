package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempJSON(t *testing.T, dir, name string, data map[string]any) string {
	t.Helper()
	if dir == "" {
		dir = t.TempDir()
	}
	if name == "" {
		name = "cfg.json"
	}
	path := filepath.Join(dir, name)
	b, err := json.Marshal(data)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, b, 0o600))
	return path
}

func Test_parseJson(t *testing.T) {
	dir := t.TempDir()
	full := writeTempJSON(t, dir, "full.json", map[string]any{
		"endpoint_addr_http":             "0.0.0.0:9000",
		"database_dsn":                   "postgres://db/edora",
		"secret_key":                     "my_secret_key",
		"access_token_validity_duration": "45m",
		"admin_username":                 "root",
		"admin_password":                 "pw",
		"admin_password_hash":            "$2a$10$hash",
		"allowed_origins":                []string{"https://a.example"},
		"store_timeout":                  "2s",
		"log_level":                      "debug",
	})

	t.Run("loads every field", func(t *testing.T) {
		cfg := &Config{}
		require.NoError(t, parseJson(cfg, []string{"-config", full}))

		assert.Equal(t, &Config{
			EndpointAddrHTTP:            "0.0.0.0:9000",
			DatabaseDSN:                 "postgres://db/edora",
			SecretKey:                   "my_secret_key",
			AccessTokenValidityDuration: 45 * time.Minute,
			AdminUsername:               "root",
			AdminPassword:               "pw",
			AdminPasswordHash:           "$2a$10$hash",
			AllowedOrigins:              []string{"https://a.example"},
			StoreTimeout:                2 * time.Second,
			LogLevel:                    "debug",
		}, cfg)
	})

	t.Run("partial file keeps other values", func(t *testing.T) {
		partial := writeTempJSON(t, dir, "partial.json", map[string]any{"secret_key": "k"})

		cfg := &Config{}
		cfg.LoadDefaults()
		require.NoError(t, parseJson(cfg, []string{"-c", partial}))

		assert.Equal(t, "k", cfg.SecretKey)
		assert.Equal(t, ":8000", cfg.EndpointAddrHTTP)
		assert.Equal(t, 30*time.Minute, cfg.AccessTokenValidityDuration)
	})

	t.Run("no config flag → no changes", func(t *testing.T) {
		cfg := &Config{EndpointAddrHTTP: "defaults:1234"}
		require.NoError(t, parseJson(cfg, nil))
		assert.Equal(t, &Config{EndpointAddrHTTP: "defaults:1234"}, cfg)
	})

	t.Run("invalid JSON → error", func(t *testing.T) {
		bad := filepath.Join(dir, "bad.json")
		require.NoError(t, os.WriteFile(bad, []byte(`{ this is not valid json`), 0o600))

		require.Error(t, parseJson(&Config{}, []string{"-c", bad}))
	})

	t.Run("missing file → error", func(t *testing.T) {
		require.Error(t, parseJson(&Config{}, []string{"-c", filepath.Join(dir, "nope.json")}))
	})
}
