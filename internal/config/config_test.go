package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("CANTEEN_STATE_DIR", t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "listing", cfg.Client.Credentials)
	assert.Equal(t, "slps.one", cfg.Auth.StaffDomain)
	assert.False(t, cfg.Auth.ProtectMutations)
	assert.Equal(t, 12*time.Hour, cfg.Redis.SessionTTL)
	assert.Empty(t, cfg.Auth.StaffAccounts)
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("STAFF_ACCOUNTS", "chef@slps.one=$2a$10$abc, boss@slps.one=$2a$10$def")
	t.Setenv("AUTH_PROTECT_MUTATIONS", "true")
	t.Setenv("CANTEEN_CREDENTIALS", "always")
	t.Setenv("SESSION_TTL", "30m")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.True(t, cfg.Auth.ProtectMutations)
	assert.Equal(t, "always", cfg.Client.Credentials)
	assert.Equal(t, 30*time.Minute, cfg.Redis.SessionTTL)
	assert.Equal(t, map[string]string{
		"chef@slps.one": "$2a$10$abc",
		"boss@slps.one": "$2a$10$def",
	}, cfg.Auth.StaffAccounts)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  string
	}{
		{"bad staff accounts", "STAFF_ACCOUNTS", "no-separator"},
		{"bad credentials mode", "CANTEEN_CREDENTIALS", "sometimes"},
		{"bad log level", "LOG_LEVEL", "trace"},
		{"short session secret", "SESSION_SECRET", "short"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.val)

			_, err := Load()
			assert.Error(t, err)
		})
	}
}
