package session

// Package session contains simple hand-written test doubles for the
// local source and prompt ports. These are lightweight and suitable for
// unit tests without codegen.

import (
	"context"

	domainauth "github.com/spinwheel/gatekeeper/internal/domain/auth"
	"github.com/spinwheel/gatekeeper/internal/ports"
)

// Ensure compile-time conformance to ports.
var (
	_ ports.IdentitySource    = (*IdentitySource)(nil)
	_ ports.FingerprintSource = (*FingerprintSource)(nil)
	_ ports.ConfirmPrompt     = (*ConfirmPrompt)(nil)
)

// IdentitySource is a configurable identity source double.
type IdentitySource struct {
	ClaimFunc func(ctx context.Context) (domainauth.IdentityClaim, error)

	// DefaultClaim is returned when ClaimFunc is nil.
	DefaultClaim domainauth.IdentityClaim

	// Calls counts Claim invocations.
	Calls int
}

// NewIdentitySource creates an identity source double with a sensible default claim.
func NewIdentitySource() *IdentitySource {
	return &IdentitySource{
		DefaultClaim: domainauth.IdentityClaim{
			TelegramID: 123456789,
			FirstName:  "Mock",
			LastName:   "User",
			Username:   "mockuser",
		},
	}
}

func (s *IdentitySource) Claim(ctx context.Context) (domainauth.IdentityClaim, error) {
	s.Calls++
	if s.ClaimFunc != nil {
		return s.ClaimFunc(ctx)
	}
	return s.DefaultClaim, nil
}

// FingerprintSource is a configurable fingerprint source double.
type FingerprintSource struct {
	FingerprintFunc func(ctx context.Context) (string, error)

	// Value is returned when FingerprintFunc is nil.
	Value string

	// Calls counts Fingerprint invocations.
	Calls int
}

// NewFingerprintSource creates a fingerprint source double with a fixed value.
func NewFingerprintSource() *FingerprintSource {
	return &FingerprintSource{Value: "fp-mock-1"}
}

func (s *FingerprintSource) Fingerprint(ctx context.Context) (string, error) {
	s.Calls++
	if s.FingerprintFunc != nil {
		return s.FingerprintFunc(ctx)
	}
	return s.Value, nil
}

// ConfirmPrompt is a scripted confirmation prompt double.
type ConfirmPrompt struct {
	// Answer is returned for every Confirm call when ConfirmFunc is nil.
	Answer bool

	ConfirmFunc func(prompt string) (bool, error)

	// Prompts records every prompt passed to Confirm.
	Prompts []string
}

func (p *ConfirmPrompt) Confirm(prompt string) (bool, error) {
	p.Prompts = append(p.Prompts, prompt)
	if p.ConfirmFunc != nil {
		return p.ConfirmFunc(prompt)
	}
	return p.Answer, nil
}
