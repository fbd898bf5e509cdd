package ports

// Package ports defines interfaces (hexagonal ports) for the session gate.
// Implementations live in internal/adapters; orchestration in internal/service.

import (
	"context"

	domainauth "github.com/spinwheel/gatekeeper/internal/domain/auth"
	"github.com/spinwheel/gatekeeper/internal/domain/model"
)

// IdentitySource supplies the platform identity claim once per session.
// It returns an identity_unavailable error when the embedding context
// provides no claim.
type IdentitySource interface {
	Claim(ctx context.Context) (domainauth.IdentityClaim, error)
}

// FingerprintSource supplies the stable per-device identifier.
// It must return the same value for every call within a process, and
// across processes on the same install. Failure is fatal to the flow.
type FingerprintSource interface {
	Fingerprint(ctx context.Context) (string, error)
}

// VerificationGateway checks required-group membership for an identity.
// The returned missing-group order is backend-defined and preserved.
type VerificationGateway interface {
	VerifyMembership(ctx context.Context, telegramID int64) (domainauth.MembershipResult, error)
}

// LoginGateway performs the device-aware login. The backend records the
// device/identity pairing and applies its blocking policy; clients carry
// no local blocking logic.
type LoginGateway interface {
	Login(ctx context.Context, claim domainauth.IdentityClaim, fingerprint string) (domainauth.AuthDecision, error)
}

// AdminGateway performs privileged CRUD over users, channels, and
// allowed origins. Authorization is enforced by the backend from the
// administrator identifier attached to every call; implementations do
// no local role checks.
type AdminGateway interface {
	ListUsers(ctx context.Context) ([]model.User, error)
	UpdateUser(ctx context.Context, user model.User) error
	DeleteUser(ctx context.Context, id int64) error

	ListChannels(ctx context.Context) ([]model.Channel, error)
	CreateChannel(ctx context.Context, channel model.Channel) (model.Channel, error)
	DeleteChannel(ctx context.Context, id int64) error

	ListOrigins(ctx context.Context) ([]model.Origin, error)
	CreateOrigin(ctx context.Context, originURL string) (model.Origin, error)
	DeleteOrigin(ctx context.Context, id int64) error

	ResolveChannel(ctx context.Context, handle string) (model.ResolvedChannel, error)
}

// ConfirmPrompt asks the operator to confirm a destructive action.
// Implementations must not issue the action themselves.
type ConfirmPrompt interface {
	Confirm(prompt string) (bool, error)
}
