package config

import "time"

type SecurityConfig interface {
	GetJWKSURL() string
	GetTokenLeeway() time.Duration
}

type Security struct {
	JWKSURL     string        `yaml:"jwks_url" env:"JWKS_URL"`
	TokenLeeway time.Duration `yaml:"token_leeway" env:"TOKEN_LEEWAY" env-default:"0s"`
}

var _ SecurityConfig = Security{}

// GetJWKSURL returns the key set used to verify access token signatures.
// Empty disables signature checks on startup.
func (s Security) GetJWKSURL() string {
	return s.JWKSURL
}

func (s Security) GetTokenLeeway() time.Duration {
	return s.TokenLeeway
}
