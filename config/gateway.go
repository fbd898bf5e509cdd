package config

import "time"

// DefaultBaseURL is the fallback backend endpoint used when API_URL is
// not set. Production deployments should always set API_URL explicitly.
const DefaultBaseURL = "https://telegram-backend-jet.vercel.app"

const minGatewayTimeout = 1 * time.Second

// GatewayConfig contains backend gateway client configuration.
type GatewayConfig struct {
	// BaseURL is the backend service endpoint.
	BaseURL string `env:"API_URL"`

	// Timeout is the per-request timeout for gateway calls.
	Timeout time.Duration `env:"API_TIMEOUT" envDefault:"10s"`
}

// Sanitize applies guardrails to gateway configuration values.
func (g *GatewayConfig) Sanitize() {
	if g.BaseURL == "" {
		g.BaseURL = DefaultBaseURL
	}
	if g.Timeout < minGatewayTimeout {
		g.Timeout = minGatewayTimeout
	}
}

// AdminConfig contains admin API client configuration.
type AdminConfig struct {
	// AdminID is the administrator identifier sent on every admin call.
	// The backend, not the client, enforces authorization from it.
	AdminID string `env:"ADMIN_ID"`

	// CacheTTL bounds how long locally cached admin resource lists are
	// served before the next read goes back to the gateway.
	CacheTTL time.Duration `env:"ADMIN_CACHE_TTL" envDefault:"30s"`
}

// Sanitize applies guardrails to admin configuration values.
func (a *AdminConfig) Sanitize() {
	if a.CacheTTL < time.Second {
		a.CacheTTL = time.Second
	}
}
