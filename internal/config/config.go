package config

import "time"

type Config interface {
	EnvConfig
	BackendConfig
}

type EnvConfig interface {
	GetAppName() string
	GetDataFolder() string
	GetEnv() string
}

type BackendConfig interface {
	GetAPIBaseURL() string
	GetHTTPTimeout() time.Duration
	GetRefreshInterval() time.Duration
}

type mainConfig struct {
	EnvVars
}

func New() Config {
	return mainConfig{}
}
