package config

import (
	"time"
)

type AuthConfig interface {
	GetTokenSkew() time.Duration
	GetRenewInterval() time.Duration
	GetRequestTimeout() time.Duration
}

type Auth struct{}

var _ AuthConfig = Auth{}

// GetTokenSkew is the safety margin under which a still-valid access
// token is treated as expired and refreshed before use.
func (Auth) GetTokenSkew() time.Duration {
	return parseDurationEnv("ATHENAEUM_TOKEN_SKEW", 30*time.Second)
}

// GetRenewInterval is the background renewal cadence. Four minutes sits
// just inside the server's five-minute access token lifetime.
func (Auth) GetRenewInterval() time.Duration {
	return parseDurationEnv("ATHENAEUM_RENEW_INTERVAL", 4*time.Minute)
}

// GetRequestTimeout bounds every network call so a hung refresh cannot
// leave the session state undetermined indefinitely.
func (Auth) GetRequestTimeout() time.Duration {
	return parseDurationEnv("ATHENAEUM_REQUEST_TIMEOUT", 15*time.Second)
}

func parseDurationEnv(envVar string, defaultValue time.Duration) time.Duration {
	value := GetEnv(envVar, "")
	if value == "" {
		return defaultValue
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		return defaultValue
	}
	return parsed
}
