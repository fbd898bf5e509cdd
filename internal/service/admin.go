package service

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/jellydator/ttlcache/v3"
	"golang.org/x/net/publicsuffix"

	"github.com/spinwheel/gatekeeper/internal/domain/model"
	apperrors "github.com/spinwheel/gatekeeper/internal/errors"
	"github.com/spinwheel/gatekeeper/internal/ports"
)

const (
	cacheKeyUsers    = "users"
	cacheKeyChannels = "channels"
	cacheKeyOrigins  = "origins"
)

// AdminServiceOptions groups dependencies for AdminService.
type AdminServiceOptions struct {
	Gateway ports.AdminGateway
	Confirm ports.ConfirmPrompt
	Config  AdminServiceConfig
}

// AdminServiceConfig holds admin service tunables.
type AdminServiceConfig struct {
	// CacheTTL bounds how long cached resource lists are served before
	// the next read goes back to the gateway.
	CacheTTL time.Duration

	Logger *slog.Logger
}

// AdminService performs privileged CRUD over users, channels, and
// allowed origins through the admin gateway.
//
// The local caches are read-through projections of the gateway's
// resources: they are reconciled only after a gateway call confirms
// success and are never assumed consistent otherwise. Mutations are
// fire-and-confirm; no call is retried automatically. Deletes require
// explicit operator confirmation before the call is issued.
type AdminService struct {
	gateway  ports.AdminGateway
	confirm  ports.ConfirmPrompt
	logger   *slog.Logger
	users    *ttlcache.Cache[string, []model.User]
	channels *ttlcache.Cache[string, []model.Channel]
	origins  *ttlcache.Cache[string, []model.Origin]
}

// NewAdminService constructs an AdminService. Gateway and Confirm are required.
func NewAdminService(opts AdminServiceOptions) *AdminService {
	if opts.Gateway == nil {
		panic("admin service: gateway is required")
	}
	if opts.Confirm == nil {
		panic("admin service: confirm prompt is required")
	}
	ttl := opts.Config.CacheTTL
	if ttl <= 0 {
		ttl = 30 * time.Second
	}
	logger := opts.Config.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &AdminService{
		gateway: opts.Gateway,
		confirm: opts.Confirm,
		logger:  logger,
		users: ttlcache.New(
			ttlcache.WithTTL[string, []model.User](ttl),
			ttlcache.WithDisableTouchOnHit[string, []model.User](),
		),
		channels: ttlcache.New(
			ttlcache.WithTTL[string, []model.Channel](ttl),
			ttlcache.WithDisableTouchOnHit[string, []model.Channel](),
		),
		origins: ttlcache.New(
			ttlcache.WithTTL[string, []model.Origin](ttl),
			ttlcache.WithDisableTouchOnHit[string, []model.Origin](),
		),
	}
}

// Users returns the user list, served from the local cache when fresh.
func (s *AdminService) Users(ctx context.Context) ([]model.User, error) {
	if item := s.users.Get(cacheKeyUsers); item != nil {
		return item.Value(), nil
	}
	users, err := s.gateway.ListUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	s.users.Set(cacheKeyUsers, users, ttlcache.DefaultTTL)
	return users, nil
}

// UpdateUser submits a user update. On success the cached copy is
// reconciled to the request payload; on failure the cache is untouched.
func (s *AdminService) UpdateUser(ctx context.Context, user model.User) error {
	if user.ID == 0 {
		return apperrors.Validation("user id is required")
	}
	if err := s.gateway.UpdateUser(ctx, user); err != nil {
		return fmt.Errorf("update user %d: %w", user.ID, err)
	}
	if item := s.users.Get(cacheKeyUsers); item != nil {
		cached := item.Value()
		next := make([]model.User, len(cached))
		for i, u := range cached {
			if u.ID == user.ID {
				next[i] = user
			} else {
				next[i] = u
			}
		}
		s.users.Set(cacheKeyUsers, next, ttlcache.DefaultTTL)
	}
	return nil
}

// DeleteUser deletes a user after operator confirmation. It reports
// whether the delete was issued; a declined confirmation issues no call
// and is not an error.
func (s *AdminService) DeleteUser(ctx context.Context, id int64) (bool, error) {
	if id == 0 {
		return false, apperrors.Validation("user id is required")
	}
	ok, err := s.confirm.Confirm(fmt.Sprintf("Delete user %d?", id))
	if err != nil {
		return false, fmt.Errorf("confirm delete user: %w", err)
	}
	if !ok {
		return false, nil
	}
	if err := s.gateway.DeleteUser(ctx, id); err != nil {
		return false, fmt.Errorf("delete user %d: %w", id, err)
	}
	if item := s.users.Get(cacheKeyUsers); item != nil {
		cached := item.Value()
		next := make([]model.User, 0, len(cached))
		for _, u := range cached {
			if u.ID != id {
				next = append(next, u)
			}
		}
		s.users.Set(cacheKeyUsers, next, ttlcache.DefaultTTL)
	}
	return true, nil
}

// Channels returns the required-channel list, cached like Users.
func (s *AdminService) Channels(ctx context.Context) ([]model.Channel, error) {
	if item := s.channels.Get(cacheKeyChannels); item != nil {
		return item.Value(), nil
	}
	channels, err := s.gateway.ListChannels(ctx)
	if err != nil {
		return nil, fmt.Errorf("list channels: %w", err)
	}
	s.channels.Set(cacheKeyChannels, channels, ttlcache.DefaultTTL)
	return channels, nil
}

// AddChannel creates a required channel and appends the created record
// to the cached list on success.
func (s *AdminService) AddChannel(ctx context.Context, channel model.Channel) (model.Channel, error) {
	if strings.TrimSpace(channel.Name) == "" {
		return model.Channel{}, apperrors.Validation("channel name is required")
	}
	if strings.TrimSpace(channel.URL) == "" {
		return model.Channel{}, apperrors.Validation("channel url is required")
	}
	created, err := s.gateway.CreateChannel(ctx, channel)
	if err != nil {
		return model.Channel{}, fmt.Errorf("create channel: %w", err)
	}
	if item := s.channels.Get(cacheKeyChannels); item != nil {
		s.channels.Set(cacheKeyChannels, append(item.Value(), created), ttlcache.DefaultTTL)
	}
	return created, nil
}

// RemoveChannel deletes a channel after operator confirmation.
func (s *AdminService) RemoveChannel(ctx context.Context, id int64) (bool, error) {
	ok, err := s.confirm.Confirm(fmt.Sprintf("Delete channel %d?", id))
	if err != nil {
		return false, fmt.Errorf("confirm delete channel: %w", err)
	}
	if !ok {
		return false, nil
	}
	if err := s.gateway.DeleteChannel(ctx, id); err != nil {
		return false, fmt.Errorf("delete channel %d: %w", id, err)
	}
	if item := s.channels.Get(cacheKeyChannels); item != nil {
		cached := item.Value()
		next := make([]model.Channel, 0, len(cached))
		for _, ch := range cached {
			if ch.ID != id {
				next = append(next, ch)
			}
		}
		s.channels.Set(cacheKeyChannels, next, ttlcache.DefaultTTL)
	}
	return true, nil
}

// ResolveChannel resolves a channel handle to its platform-level id and
// display title via the gateway.
func (s *AdminService) ResolveChannel(ctx context.Context, handle string) (model.ResolvedChannel, error) {
	handle = strings.TrimSpace(handle)
	if handle == "" {
		return model.ResolvedChannel{}, apperrors.Validation("channel handle is required")
	}
	resolved, err := s.gateway.ResolveChannel(ctx, handle)
	if err != nil {
		return model.ResolvedChannel{}, fmt.Errorf("resolve channel %q: %w", handle, err)
	}
	return resolved, nil
}

// Origins returns the allowed-origin list, cached like Users.
func (s *AdminService) Origins(ctx context.Context) ([]model.Origin, error) {
	if item := s.origins.Get(cacheKeyOrigins); item != nil {
		return item.Value(), nil
	}
	origins, err := s.gateway.ListOrigins(ctx)
	if err != nil {
		return nil, fmt.Errorf("list origins: %w", err)
	}
	s.origins.Set(cacheKeyOrigins, origins, ttlcache.DefaultTTL)
	return origins, nil
}

// AddOrigin validates and creates an allowed origin.
func (s *AdminService) AddOrigin(ctx context.Context, originURL string) (model.Origin, error) {
	if err := validateOriginURL(originURL); err != nil {
		return model.Origin{}, err
	}
	created, err := s.gateway.CreateOrigin(ctx, originURL)
	if err != nil {
		return model.Origin{}, fmt.Errorf("create origin: %w", err)
	}
	if item := s.origins.Get(cacheKeyOrigins); item != nil {
		s.origins.Set(cacheKeyOrigins, append(item.Value(), created), ttlcache.DefaultTTL)
	}
	return created, nil
}

// RemoveOrigin deletes an allowed origin after operator confirmation.
func (s *AdminService) RemoveOrigin(ctx context.Context, id int64) (bool, error) {
	ok, err := s.confirm.Confirm(fmt.Sprintf("Delete origin %d?", id))
	if err != nil {
		return false, fmt.Errorf("confirm delete origin: %w", err)
	}
	if !ok {
		return false, nil
	}
	if err := s.gateway.DeleteOrigin(ctx, id); err != nil {
		return false, fmt.Errorf("delete origin %d: %w", id, err)
	}
	if item := s.origins.Get(cacheKeyOrigins); item != nil {
		cached := item.Value()
		next := make([]model.Origin, 0, len(cached))
		for _, o := range cached {
			if o.ID != id {
				next = append(next, o)
			}
		}
		s.origins.Set(cacheKeyOrigins, next, ttlcache.DefaultTTL)
	}
	return true, nil
}

// validateOriginURL rejects origin URLs that cannot identify a real
// embedding site: unparseable URLs, missing scheme/host, and dotted
// hosts that are a bare public suffix (e.g. "https://vercel.app").
func validateOriginURL(originURL string) error {
	originURL = strings.TrimSpace(originURL)
	if originURL == "" {
		return apperrors.Validation("origin url is required")
	}
	u, err := url.Parse(originURL)
	if err != nil {
		return apperrors.Wrapf(err, apperrors.ErrCodeValidation, "invalid origin url %q", originURL)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return apperrors.Validationf("origin url %q must use http or https", originURL)
	}
	host := u.Hostname()
	if host == "" {
		return apperrors.Validationf("origin url %q has no host", originURL)
	}
	if strings.Count(host, ".") == 0 {
		// Bare hostnames (localhost etc.) are allowed for local development.
		return nil
	}
	if suffix, _ := publicsuffix.PublicSuffix(host); suffix == host {
		return apperrors.Validationf("origin host %q is a bare public suffix", host)
	}
	return nil
}
