// Package config resolves runtime settings from the environment. Env files
// are loaded by the entrypoints via godotenv before Load runs.
package config

import (
	"os"
	"strconv"
)

// Defaults.
const (
	DefaultPort            = 4000
	DefaultRequestLogPath  = "logs/requests.log"
	DefaultResponseLogPath = "logs/responses.log"
)

// Environment variable names.
const (
	EnvPort            = "PORT"
	EnvRequestLog      = "MOCK_REQUEST_LOG"
	EnvResponseLog     = "MOCK_RESPONSE_LOG"
	EnvCredentialsFile = "GOOGLE_APPLICATION_CREDENTIALS"
)

// Config holds the mock server settings.
type Config struct {
	Port            int
	RequestLogPath  string
	ResponseLogPath string
}

// Load reads the server configuration, falling back to defaults on absent or
// unparseable values.
func Load() Config {
	return Config{
		Port:            intOr(EnvPort, DefaultPort),
		RequestLogPath:  envOr(EnvRequestLog, DefaultRequestLogPath),
		ResponseLogPath: envOr(EnvResponseLog, DefaultResponseLogPath),
	}
}

// CredentialsPath returns the credentials file path for the check script and
// whether it was set.
func CredentialsPath() (string, bool) {
	v := os.Getenv(EnvCredentialsFile)
	return v, v != ""
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func intOr(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}
