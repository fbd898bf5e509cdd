package auth

// Package auth contains domain-level types for the session gate.
// It is pure and free of framework/adapter concerns.

import (
	"strings"
	"time"
)

// Role represents an application's authorization role.
// Keep string form for easy persistence and display.
// Valid values are defined as constants below.
type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

// IdentityClaim holds the user attributes supplied by the embedding host
// at startup. It is produced once per session and never mutated.
// The claim is unverified; the backend is the enforcement point.
type IdentityClaim struct {
	TelegramID int64 // stable platform identifier, treated as opaque
	FirstName  string
	LastName   string
	Username   string
	PhotoURL   string
	AuthDate   time.Time // zero when the host supplied none
}

// DisplayName returns the human-readable name for the claim.
func (c IdentityClaim) DisplayName() string {
	return strings.TrimSpace(strings.TrimSpace(c.FirstName) + " " + strings.TrimSpace(c.LastName))
}

// AuthDecision is the backend's answer to a login attempt.
// Exactly one decision exists per attempt; a new attempt replaces it.
type AuthDecision struct {
	Blocked bool
	Reason  string // human-readable, displayed verbatim
	Role    Role   // set when not blocked
}

// RequiredGroup is an external channel the identity must belong to
// before being granted a session.
type RequiredGroup struct {
	ID          int64  `json:"channel_id"`
	DisplayName string `json:"channel_name"`
	JoinURL     string `json:"channel_url"`
}

// MembershipResult reports whether required-group membership is satisfied.
// MissingGroups preserves the order returned by the backend; callers must
// not re-sort it.
type MembershipResult struct {
	Satisfied     bool
	MissingGroups []RequiredGroup
}

// Phase is the externally observable state of the session orchestrator.
type Phase string

const (
	PhaseInitializing       Phase = "initializing"
	PhaseAwaitingIdentity   Phase = "awaiting_identity"
	PhaseCheckingMembership Phase = "checking_membership"
	PhaseMembershipPending  Phase = "membership_pending"
	PhaseAuthenticating     Phase = "authenticating"
	PhaseAuthenticated      Phase = "authenticated"
	PhaseBlocked            Phase = "blocked"
	PhaseFailed             Phase = "failed"
)

// Terminal reports whether no further automatic transition can occur
// from p. Failed is recoverable only by a full restart, so it counts
// as terminal here.
func (p Phase) Terminal() bool {
	return p == PhaseAuthenticated || p == PhaseBlocked || p == PhaseFailed
}

// Snapshot is a consistent, immutable view of the session published after
// each transition. Readers never observe a partially updated state.
type Snapshot struct {
	Phase          Phase
	Role           Role            // set when Phase is authenticated
	BlockReason    string          // set when Phase is blocked
	FailureMessage string          // set when Phase is failed
	MissingGroups  []RequiredGroup // set when Phase is membership_pending
	Claim          *IdentityClaim  // set once identity has resolved
	Fingerprint    string          // set once the device fingerprint has resolved
}
