package config

import "time"

// SessionConfig contains session orchestration configuration.
type SessionConfig struct {
	// ReverifyCooldown is the minimum interval between user-initiated
	// membership re-checks. Re-verify requests inside the window are
	// no-ops. Zero disables the cooldown.
	ReverifyCooldown time.Duration `env:"REVERIFY_COOLDOWN" envDefault:"3s"`
}

// Sanitize applies guardrails to session configuration values.
func (s *SessionConfig) Sanitize() {
	if s.ReverifyCooldown < 0 {
		s.ReverifyCooldown = 0
	}
	if s.ReverifyCooldown > time.Minute {
		s.ReverifyCooldown = time.Minute
	}
}
