package config

import (
	"os"
	"strings"
)

// AppConfig is the main application configuration struct that composes
// domain-specific configuration from separate files.
//
// Configuration is loaded from environment variables using the
// github.com/caarlos0/env library. See individual domain config
// files for details on available environment variables:
//   - gateway.go: Backend gateway and admin API configuration
//   - identity.go: Identity source configuration
//   - session.go: Session orchestration configuration
//   - devgateway.go: Development gateway configuration
type AppConfig struct {
	// IsDev controls development mode behavior (dev identity fallback, etc.)
	// Set DEV=true or NODE_ENV=development for development mode.
	IsDev bool `env:"DEV" envDefault:"false"`

	// Backend gateway configuration
	Gateway GatewayConfig

	// Admin API client configuration
	Admin AdminConfig

	// Identity source configuration
	Identity IdentityConfig

	// Device fingerprint configuration
	Fingerprint FingerprintConfig

	// Session orchestration configuration
	Session SessionConfig

	// Development gateway configuration
	DevGateway DevGatewayConfig

	// Services is a comma-delimited list of enabled run modes.
	Services string `env:"SERVICES" envDefault:"session"`
}

// Sanitize applies guardrails to configuration values loaded from env.
// This should be called after loading configuration from environment variables.
func (c *AppConfig) Sanitize() {
	c.Gateway.Sanitize()
	c.Admin.Sanitize()
	c.Session.Sanitize()
	c.DevGateway.Sanitize()

	// Check NODE_ENV for dev mode
	c.detectDevMode()
}

// detectDevMode checks both DEV and NODE_ENV environment variables.
// NODE_ENV is checked as a fallback (common in frontend tooling).
func (c *AppConfig) detectDevMode() {
	if !c.IsDev {
		nodeEnv := strings.ToLower(os.Getenv("NODE_ENV"))
		c.IsDev = nodeEnv == "development" || nodeEnv == "dev"
	}
}

// GetEnabledServices returns the enabled services based on the Services field.
func (c *AppConfig) GetEnabledServices() (map[ServiceMode]bool, error) {
	return ParseServices(c.Services)
}

// IsSessionEnabled returns true if the session run mode is enabled.
func (c *AppConfig) IsSessionEnabled() bool {
	services, err := c.GetEnabledServices()
	if err != nil {
		return false
	}
	return services[ServiceModeSession]
}

// IsDevGatewayEnabled returns true if the development gateway is enabled.
func (c *AppConfig) IsDevGatewayEnabled() bool {
	services, err := c.GetEnabledServices()
	if err != nil {
		return false
	}
	return services[ServiceModeDevGateway]
}
