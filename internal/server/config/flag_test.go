package config

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFlags(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		start    *Config
		expected *Config
		wantErr  bool
	}{
		{
			name: "all flags",
			args: []string{
				"-a", "127.0.0.1:9090", "-d", "db", "-s", "secret", "-t", "15",
				"-u", "root", "-p", "pw", "-w", "$2a$10$hash", "-o", "https://a,https://b",
				"-q", "3", "-l", "debug",
			},
			start: &Config{},
			expected: &Config{
				EndpointAddrHTTP:            "127.0.0.1:9090",
				DatabaseDSN:                 "db",
				SecretKey:                   "secret",
				AccessTokenValidityDuration: 15 * time.Minute,
				AdminUsername:               "root",
				AdminPassword:               "pw",
				AdminPasswordHash:           "$2a$10$hash",
				AllowedOrigins:              []string{"https://a", "https://b"},
				StoreTimeout:                3 * time.Second,
				LogLevel:                    "debug",
			},
		},
		{
			name:  "unset duration flags keep sub-minute values",
			args:  []string{"-c", "cfg.json", "-s", "x"},
			start: &Config{AccessTokenValidityDuration: 90 * time.Second, StoreTimeout: 1500 * time.Millisecond},
			expected: &Config{
				SecretKey:                   "x",
				AccessTokenValidityDuration: 90 * time.Second,
				StoreTimeout:                1500 * time.Millisecond,
			},
		},
		{
			name:    "bad int",
			args:    []string{"-t", "soon"},
			start:   &Config{},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := parseFlags(tt.start, tt.args)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Empty(t, cmp.Diff(tt.expected, tt.start))
		})
	}
}
