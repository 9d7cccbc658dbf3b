package config

import (
	"os"
	"path/filepath"
)

const (
	baseURLVar         = "ATHENAEUM_BASE_URL"
	appNameVar         = "ATHENAEUM_APP_NAME"
	credentialsFileVar = "ATHENAEUM_CREDENTIALS_FILE"
	logLevelVar        = "ATHENAEUM_LOG_LEVEL"
)

type EnvConfig interface {
	GetBaseURL() string
	GetAppName() string
	GetCredentialsFile() string
	GetLogLevel() string
	GetEnv() string
}

type EnvVars struct{}

var _ EnvConfig = EnvVars{}

// GetBaseURL returns the root of the Athenaeum API
// (e.g. "https://library.example.com/").
func (EnvVars) GetBaseURL() string {
	return GetEnv(baseURLVar, "http://localhost:8000/")
}

func (EnvVars) GetAppName() string {
	return GetEnv(appNameVar, "Athenaeum")
}

// GetCredentialsFile returns the path of the persisted credential pair,
// defaulting to credentials.json under the user config directory.
func (EnvVars) GetCredentialsFile() string {
	if path := os.Getenv(credentialsFileVar); path != "" {
		return path
	}
	configDir, err := os.UserConfigDir()
	if err != nil {
		return filepath.Join(".", ".athenactl", "credentials.json")
	}
	return filepath.Join(configDir, "athenactl", "credentials.json")
}

func (EnvVars) GetLogLevel() string {
	return GetEnv(logLevelVar, "info")
}

func (EnvVars) GetEnv() string {
	env := os.Getenv("ENV")
	if env == "" {
		return "DEV"
	}
	return env
}

func GetEnv(envVar, defaultValue string) string {
	value := os.Getenv(envVar)
	if value == "" {
		return defaultValue
	}
	return value
}
