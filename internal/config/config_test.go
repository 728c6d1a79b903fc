package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	for _, key := range []string{"PORT", "JWT_SECRET", "LOG_LEVEL", "LOG_FORMAT", "CORS_ORIGINS", "TIMEZONE", "DOCTORS_FILE", "ENFORCE_CONFLICTS"} {
		t.Setenv(key, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "3000", cfg.Port)
	assert.Equal(t, ":3000", cfg.Addr())
	assert.Equal(t, DefaultJWTSecret, cfg.JWTSecret)
	assert.True(t, cfg.UsesDefaultSecret())
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, []string{"*"}, cfg.CORSOrigins)
	assert.Equal(t, "UTC", cfg.Location.String())
	assert.Empty(t, cfg.DoctorsFile)
	assert.False(t, cfg.EnforceConflicts)
}

func TestLoadOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "9090")
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("LOG_LEVEL", "DEBUG")
	t.Setenv("CORS_ORIGINS", "https://a.test, https://b.test,")
	t.Setenv("TIMEZONE", "Europe/Paris")
	t.Setenv("DOCTORS_FILE", "/etc/doctors.yaml")
	t.Setenv("ENFORCE_CONFLICTS", "true")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "9090", cfg.Port)
	assert.False(t, cfg.UsesDefaultSecret())
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, []string{"https://a.test", "https://b.test"}, cfg.CORSOrigins)
	assert.Equal(t, "Europe/Paris", cfg.Location.String())
	assert.Equal(t, "/etc/doctors.yaml", cfg.DoctorsFile)
	assert.True(t, cfg.EnforceConflicts)
}

func TestLoadInvalid(t *testing.T) {
	tests := map[string][2]string{
		"port":       {"PORT", "http"},
		"port range": {"PORT", "70000"},
		"timezone":   {"TIMEZONE", "Mars/Olympus"},
		"conflicts":  {"ENFORCE_CONFLICTS", "sometimes"},
	}
	for name, kv := range tests {
		t.Run(name, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(kv[0], kv[1])
			_, err := Load()
			assert.Error(t, err)
		})
	}
}
