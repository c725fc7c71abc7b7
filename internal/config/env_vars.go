package config

import (
	"os"
	"strconv"
	"time"
)

const (
	appNameVar         = "APP_NAME"
	apiBaseURLVar      = "INVENTORY_API_URL"
	folderEnvVar       = "CONSOLE_DATA_FOLDER"
	httpTimeoutVar     = "HTTP_TIMEOUT_SECONDS"
	refreshIntervalVar = "DASHBOARD_REFRESH_SECONDS"
)

type EnvVars struct{}

var _ EnvConfig = EnvVars{}
var _ BackendConfig = EnvVars{}

func (EnvVars) GetAppName() string {
	return GetEnv(appNameVar, "Inventory Console")
}

func (EnvVars) GetDataFolder() string {
	return GetEnv(folderEnvVar, "./data")
}

func (EnvVars) GetEnv() string {
	env := GetEnv("ENV", "")
	if env == "" {
		return "DEV"
	}
	return env
}

// GetAPIBaseURL returns the base URL of the inventory backend
// (e.g. "http://localhost:8000"). All request paths are relative to it.
func (EnvVars) GetAPIBaseURL() string {
	return GetEnv(apiBaseURLVar, "http://localhost:8000")
}

func (EnvVars) GetHTTPTimeout() time.Duration {
	return GetEnvSeconds(httpTimeoutVar, 15*time.Second)
}

// GetRefreshInterval controls the dashboard watch-mode reload cadence.
func (EnvVars) GetRefreshInterval() time.Duration {
	return GetEnvSeconds(refreshIntervalVar, 60*time.Second)
}

func GetEnv(envVar, defaultValue string) string {
	value := os.Getenv(envVar)
	if value == "" {
		return defaultValue
	}
	return value
}

func GetEnvSeconds(envVar string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(envVar)
	if value == "" {
		return defaultValue
	}
	seconds, err := strconv.Atoi(value)
	if err != nil || seconds <= 0 {
		return defaultValue
	}
	return time.Duration(seconds) * time.Second
}
