package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

const configPathEnvVar = "CONFIG_PATH"

type Config interface {
	EnvConfig
	APIConfig
	SecurityConfig
	StoreConfig
}

type EnvConfig interface {
	GetAppName() string
	GetEnv() string
	GetLogLevel() string
	IsDev() bool
}

type APIConfig interface {
	GetAPIURL() string
	GetAPITimeout() time.Duration
	GetRefreshTimeout() time.Duration
}

type StoreConfig interface {
	GetDataFolder() string
	GetSessionFile() string
}

type mainConfig struct {
	EnvVars  `yaml:"app"`
	API      `yaml:"api"`
	Security `yaml:"security"`
	Store    `yaml:"store"`
}

var _ Config = mainConfig{}

// New loads configuration from the environment only.
func New() (Config, error) {
	var cfg mainConfig
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("[config New] failed to read env: %w", err)
	}
	return cfg, nil
}

// Load reads a YAML file, then applies env overrides. An empty path falls back
// to CONFIG_PATH and then to the environment alone.
func Load(path string) (Config, error) {
	if path == "" {
		path = os.Getenv(configPathEnvVar)
	}
	if path == "" {
		return New()
	}

	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("[config Load] config file %q: %w", path, err)
	}

	var cfg mainConfig
	if err := cleanenv.ReadConfig(path, &cfg); err != nil {
		return nil, fmt.Errorf("[config Load] failed to read config: %w", err)
	}
	return cfg, nil
}

// SessionFilePath joins the data folder and session file name.
func SessionFilePath(c StoreConfig) string {
	return filepath.Join(c.GetDataFolder(), c.GetSessionFile())
}
