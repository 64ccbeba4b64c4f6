package config

import (
	"os"
	"strings"

	apierrors "github.com/diogo/spielberg/internal/errors"
)

// Environment variables read by spielberg
const (
	APIKeyEnv   = "GEMINI_API_KEY"
	LogLevelEnv = "SPIELBERG_LOG_LEVEL"
)

// LookupAPIKey returns the Gemini API key from the environment.
// A missing or blank value yields a ConfigError wrapping ErrNoAPIKey.
func LookupAPIKey() (string, error) {
	key := strings.TrimSpace(os.Getenv(APIKeyEnv))
	if key == "" {
		return "", apierrors.NewConfigError(APIKeyEnv, "environment variable not set", apierrors.ErrNoAPIKey)
	}
	return key, nil
}
