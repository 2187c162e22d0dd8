package config

import (
	"strings"
	"time"
)

type API struct {
	URL            string        `yaml:"url" env:"API_URL" env-default:"http://localhost:8080/api"`
	Timeout        time.Duration `yaml:"timeout" env:"API_TIMEOUT" env-default:"30s"`
	RefreshTimeout time.Duration `yaml:"refresh_timeout" env:"REFRESH_TIMEOUT" env-default:"15s"`
}

var _ APIConfig = API{}

// GetAPIURL returns the backend base URL without a trailing slash
func (a API) GetAPIURL() string {
	return strings.TrimRight(a.URL, "/")
}

func (a API) GetAPITimeout() time.Duration {
	return a.Timeout
}

func (a API) GetRefreshTimeout() time.Duration {
	return a.RefreshTimeout
}
