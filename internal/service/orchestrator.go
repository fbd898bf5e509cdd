package service

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	domainauth "github.com/spinwheel/gatekeeper/internal/domain/auth"
	apperrors "github.com/spinwheel/gatekeeper/internal/errors"
	"github.com/spinwheel/gatekeeper/internal/ports"
)

// OrchestratorOptions groups dependencies for Orchestrator.
type OrchestratorOptions struct {
	Sources  SourceSet
	Gateways GatewaySet
	Config   OrchestratorConfig
}

// SourceSet bundles the local startup sources.
type SourceSet struct {
	Identity    ports.IdentitySource
	Fingerprint ports.FingerprintSource
}

// GatewaySet bundles the remote collaborators.
type GatewaySet struct {
	Verification ports.VerificationGateway
	Login        ports.LoginGateway
}

// OrchestratorConfig holds orchestration tunables and optional hooks.
type OrchestratorConfig struct {
	// ReverifyCooldown is the minimum interval between membership
	// re-checks. Zero disables the cooldown.
	ReverifyCooldown time.Duration

	// OnTransition, when set, is called with a copy of the snapshot
	// after every phase transition. Called outside the orchestrator
	// lock; implementations may read but not write session state.
	OnTransition func(domainauth.Snapshot)

	Logger *slog.Logger
}

// Orchestrator drives one authentication attempt per process from
// initializing to a terminal phase, and supports the user-triggered
// membership re-check without discarding already-resolved identity and
// fingerprint data.
//
// The orchestrator is the sole writer of the session snapshot. Gateway
// calls are strictly sequential: the login gateway is never invoked
// before the verification gateway has reported satisfied membership for
// the identity in the current attempt.
type Orchestrator struct {
	identity     ports.IdentitySource
	fingerprint  ports.FingerprintSource
	verification ports.VerificationGateway
	login        ports.LoginGateway
	cooldown     time.Duration
	onTransition func(domainauth.Snapshot)
	logger       *slog.Logger

	mu        sync.Mutex
	snap      domainauth.Snapshot
	checking  bool
	lastCheck time.Time
}

// NewOrchestrator constructs an Orchestrator. All sources and gateways
// are required.
func NewOrchestrator(opts OrchestratorOptions) *Orchestrator {
	if opts.Sources.Identity == nil {
		panic("orchestrator: identity source is required")
	}
	if opts.Sources.Fingerprint == nil {
		panic("orchestrator: fingerprint source is required")
	}
	if opts.Gateways.Verification == nil {
		panic("orchestrator: verification gateway is required")
	}
	if opts.Gateways.Login == nil {
		panic("orchestrator: login gateway is required")
	}
	logger := opts.Config.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Orchestrator{
		identity:     opts.Sources.Identity,
		fingerprint:  opts.Sources.Fingerprint,
		verification: opts.Gateways.Verification,
		login:        opts.Gateways.Login,
		cooldown:     opts.Config.ReverifyCooldown,
		onTransition: opts.Config.OnTransition,
		logger:       logger,
		snap:         domainauth.Snapshot{Phase: domainauth.PhaseInitializing},
	}
}

// Snapshot returns a consistent copy of the current session state.
func (o *Orchestrator) Snapshot() domainauth.Snapshot {
	o.mu.Lock()
	defer o.mu.Unlock()
	return copySnapshot(o.snap)
}

// Run drives the attempt from the initial phase to membership_pending or
// a terminal phase. All failures are fail-closed: they surface as the
// failed phase, never as authenticated. Run must be called at most once.
func (o *Orchestrator) Run(ctx context.Context) domainauth.Snapshot {
	claim, fp, err := o.resolveSources(ctx)
	if err != nil {
		return o.fail(err)
	}

	o.transition(func(s *domainauth.Snapshot) {
		s.Phase = domainauth.PhaseAwaitingIdentity
		s.Claim = &claim
		s.Fingerprint = fp
	})

	return o.checkMembershipAndLogin(ctx)
}

// Reverify performs the manual membership re-check. It is idempotent:
// invoking it while the phase is not membership_pending, while a check
// is already in flight, or inside the cooldown window returns the
// current snapshot unchanged.
func (o *Orchestrator) Reverify(ctx context.Context) domainauth.Snapshot {
	o.mu.Lock()
	if o.snap.Phase != domainauth.PhaseMembershipPending || o.checking {
		snap := copySnapshot(o.snap)
		o.mu.Unlock()
		return snap
	}
	if o.cooldown > 0 && time.Since(o.lastCheck) < o.cooldown {
		snap := copySnapshot(o.snap)
		o.mu.Unlock()
		return snap
	}
	o.checking = true
	o.mu.Unlock()

	defer func() {
		o.mu.Lock()
		o.checking = false
		o.mu.Unlock()
	}()

	return o.checkMembershipAndLogin(ctx)
}

// resolveSources resolves the device fingerprint and the identity claim.
// The two sources are local and independent, so they resolve in parallel
// inside this single startup step; no gateway call happens until both
// have succeeded.
func (o *Orchestrator) resolveSources(ctx context.Context) (domainauth.IdentityClaim, string, error) {
	var (
		claim domainauth.IdentityClaim
		fp    string
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		value, err := o.fingerprint.Fingerprint(gctx)
		if err != nil {
			return apperrors.Wrap(err, apperrors.ErrCodeFingerprint, "resolve device fingerprint")
		}
		fp = value
		return nil
	})
	g.Go(func() error {
		value, err := o.identity.Claim(gctx)
		if err != nil {
			return apperrors.Wrap(err, apperrors.ErrCodeIdentityUnavailable, "resolve identity claim")
		}
		claim = value
		return nil
	})

	if err := g.Wait(); err != nil {
		return domainauth.IdentityClaim{}, "", err
	}
	if claim.TelegramID == 0 {
		return domainauth.IdentityClaim{}, "", apperrors.IdentityUnavailable("identity claim has no stable identifier")
	}
	return claim, fp, nil
}

// checkMembershipAndLogin runs the membership check and, only when it is
// satisfied, the login call. This is the single code path for both the
// automatic attempt and the manual re-check, so the ordering invariant
// holds everywhere.
func (o *Orchestrator) checkMembershipAndLogin(ctx context.Context) domainauth.Snapshot {
	claim := o.claimForCheck()

	o.transition(func(s *domainauth.Snapshot) {
		s.Phase = domainauth.PhaseCheckingMembership
	})

	result, err := o.verification.VerifyMembership(ctx, claim.TelegramID)
	o.mu.Lock()
	o.lastCheck = time.Now()
	o.mu.Unlock()
	if err != nil {
		return o.fail(apperrors.Wrap(err, apperrors.ErrCodeTransport, "verify membership"))
	}

	if !result.Satisfied {
		o.logger.InfoContext(ctx, "membership unsatisfied",
			"telegram_id", claim.TelegramID,
			"missing_channels", len(result.MissingGroups))
		return o.transition(func(s *domainauth.Snapshot) {
			s.Phase = domainauth.PhaseMembershipPending
			s.MissingGroups = result.MissingGroups
		})
	}

	o.transition(func(s *domainauth.Snapshot) {
		s.Phase = domainauth.PhaseAuthenticating
		s.MissingGroups = nil
	})

	fp := o.Snapshot().Fingerprint
	decision, err := o.login.Login(ctx, claim, fp)
	if err != nil {
		return o.fail(apperrors.Wrap(err, apperrors.ErrCodeTransport, "secure login"))
	}

	if decision.Blocked {
		o.logger.WarnContext(ctx, "login blocked",
			"telegram_id", claim.TelegramID,
			"reason", decision.Reason)
		return o.transition(func(s *domainauth.Snapshot) {
			s.Phase = domainauth.PhaseBlocked
			s.BlockReason = decision.Reason
		})
	}

	role := decision.Role
	if role == "" {
		role = domainauth.RoleUser
	}
	o.logger.InfoContext(ctx, "authenticated",
		"telegram_id", claim.TelegramID,
		"role", string(role))
	return o.transition(func(s *domainauth.Snapshot) {
		s.Phase = domainauth.PhaseAuthenticated
		s.Role = role
	})
}

func (o *Orchestrator) claimForCheck() domainauth.IdentityClaim {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.snap.Claim == nil {
		return domainauth.IdentityClaim{}
	}
	return *o.snap.Claim
}

// fail moves the session to the failed phase. Fail-closed: the message
// is diagnostic only and never results in access.
func (o *Orchestrator) fail(err error) domainauth.Snapshot {
	o.logger.Error("session attempt failed", "error", err)
	return o.transition(func(s *domainauth.Snapshot) {
		s.Phase = domainauth.PhaseFailed
		s.FailureMessage = err.Error()
	})
}

// transition applies mutate to a copy of the snapshot under the lock and
// publishes it atomically, then invokes the transition hook with the new
// value. Readers only ever see fully formed snapshots.
func (o *Orchestrator) transition(mutate func(*domainauth.Snapshot)) domainauth.Snapshot {
	o.mu.Lock()
	next := copySnapshot(o.snap)
	mutate(&next)
	o.snap = next
	published := copySnapshot(next)
	o.mu.Unlock()

	if o.onTransition != nil {
		o.onTransition(published)
	}
	return published
}

func copySnapshot(s domainauth.Snapshot) domainauth.Snapshot {
	out := s
	if s.Claim != nil {
		claim := *s.Claim
		out.Claim = &claim
	}
	if s.MissingGroups != nil {
		out.MissingGroups = append([]domainauth.RequiredGroup(nil), s.MissingGroups...)
	}
	return out
}
