package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// DefaultJWTSecret is a placeholder; any deployment must override JWT_SECRET.
const DefaultJWTSecret = "your-secret-key"

// Config holds application configuration
type Config struct {
	Port             string
	JWTSecret        string
	LogLevel         string
	LogFormat        string
	CORSOrigins      []string
	Timezone         string
	Location         *time.Location
	DoctorsFile      string
	EnforceConflicts bool
}

// Load reads configuration from the environment. Call godotenv first to pick
// up a .env file.
func Load() (*Config, error) {
	cfg := &Config{
		Port:        getEnv("PORT", "3000"),
		JWTSecret:   getEnv("JWT_SECRET", DefaultJWTSecret),
		LogLevel:    strings.ToLower(getEnv("LOG_LEVEL", "info")),
		LogFormat:   strings.ToLower(getEnv("LOG_FORMAT", "json")),
		CORSOrigins: splitList(getEnv("CORS_ORIGINS", "*")),
		Timezone:    getEnv("TIMEZONE", "UTC"),
		DoctorsFile: os.Getenv("DOCTORS_FILE"),
	}

	port, err := strconv.Atoi(cfg.Port)
	if err != nil || port < 1 || port > 65535 {
		return nil, fmt.Errorf("invalid PORT %q", cfg.Port)
	}

	cfg.Location, err = time.LoadLocation(cfg.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid TIMEZONE %q: %w", cfg.Timezone, err)
	}

	if v := os.Getenv("ENFORCE_CONFLICTS"); v != "" {
		cfg.EnforceConflicts, err = strconv.ParseBool(v)
		if err != nil {
			return nil, fmt.Errorf("invalid ENFORCE_CONFLICTS %q: %w", v, err)
		}
	}

	return cfg, nil
}

// UsesDefaultSecret reports whether tokens are signed with the public placeholder.
func (c *Config) UsesDefaultSecret() bool {
	return c.JWTSecret == DefaultJWTSecret
}

func (c *Config) Addr() string {
	return ":" + c.Port
}

func getEnv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
