package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"
)

// parseEnv overlays configuration from the environment. A .env file in the
// working directory is loaded first if present (missing files are fine).
//
// Recognized variables:
//
//	IDM_ENDPOINT_ADDR               HTTP bind address
//	IDM_DATABASE_DSN                PostgreSQL DSN
//	IDM_SIGNING_KEY_FILE            path to the signing key PEM
//	IDM_ACCESS_TOKEN_EXPIRE         duration, e.g. "15m"
//	IDM_REFRESH_TOKEN_EXPIRE        duration, e.g. "30m"
//	IDM_MAX_REFRESH_TOKEN_LIFETIME  duration, e.g. "24h"
func parseEnv(config *Config) {
	_ = godotenv.Load()

	if v := os.Getenv("IDM_ENDPOINT_ADDR"); v != "" {
		config.EndpointAddrHTTP = v
	}
	if v := os.Getenv("IDM_DATABASE_DSN"); v != "" {
		config.DatabaseDSN = v
	}
	if v := os.Getenv("IDM_SIGNING_KEY_FILE"); v != "" {
		config.SigningKeyFile = v
	}

	setDuration := func(name string, target *time.Duration) {
		if v := os.Getenv(name); v != "" {
			if d, err := time.ParseDuration(v); err == nil {
				*target = d
			}
		}
	}
	setDuration("IDM_ACCESS_TOKEN_EXPIRE", &config.AccessTokenExpire)
	setDuration("IDM_REFRESH_TOKEN_EXPIRE", &config.RefreshTokenExpire)
	setDuration("IDM_MAX_REFRESH_TOKEN_LIFETIME", &config.MaxRefreshTokenLifeTime)
}
