package config

import "time"

// DevGatewayConfig contains development gateway configuration.
// The dev gateway is an in-process stand-in for the remote backend,
// intended for local development and integration tests only.
type DevGatewayConfig struct {
	// Addr is the listen address for the dev gateway HTTP server.
	Addr string `env:"DEVGATEWAY_ADDR" envDefault:":8787"`

	// RedisAddr selects the Redis-backed store when set; empty selects
	// the in-memory store.
	RedisAddr string `env:"DEVGATEWAY_REDIS_ADDR"`

	// RedisDB is the Redis database index for the dev gateway store.
	RedisDB int `env:"DEVGATEWAY_REDIS_DB" envDefault:"0"`

	// ShutdownTimeout bounds graceful shutdown of the HTTP server.
	ShutdownTimeout time.Duration `env:"DEVGATEWAY_SHUTDOWN_TIMEOUT" envDefault:"5s"`
}

// Sanitize applies guardrails to dev gateway configuration values.
func (d *DevGatewayConfig) Sanitize() {
	if d.Addr == "" {
		d.Addr = ":8787"
	}
	if d.ShutdownTimeout < time.Second {
		d.ShutdownTimeout = time.Second
	}
}
