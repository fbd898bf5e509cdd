package devidentity

// Package devidentity provides a simple, config-driven identity source
// for local development, mirroring the localhost mock user of the web
// client. It must never be wired outside dev mode.

import (
	"context"
	"errors"

	domainauth "github.com/spinwheel/gatekeeper/internal/domain/auth"
)

// Config controls the dev identity provider behavior.
type Config struct {
	TelegramID int64
	FirstName  string
	LastName   string
	Username   string
}

// Provider implements ports.IdentitySource for local development.
type Provider struct {
	claim domainauth.IdentityClaim
}

// NewProvider constructs a dev identity provider from Config.
func NewProvider(cfg Config) (*Provider, error) {
	if cfg.TelegramID == 0 {
		return nil, errors.New("dev identity: TelegramID is required")
	}
	if cfg.FirstName == "" {
		return nil, errors.New("dev identity: FirstName is required")
	}
	return &Provider{
		claim: domainauth.IdentityClaim{
			TelegramID: cfg.TelegramID,
			FirstName:  cfg.FirstName,
			LastName:   cfg.LastName,
			Username:   cfg.Username,
		},
	}, nil
}

// Claim returns the configured development identity.
func (p *Provider) Claim(_ context.Context) (domainauth.IdentityClaim, error) {
	return p.claim, nil
}
