package devgateway

// Package devgateway is an in-process stand-in for the remote backend,
// serving the same wire surface the real deployment exposes. It exists
// for local development and integration tests; nothing in it is meant
// for production traffic.

import (
	"context"
	"sync"

	"github.com/spinwheel/gatekeeper/internal/domain/model"
)

// ErrNotFound is returned when a record does not exist.
type notFoundError struct{}

func (notFoundError) Error() string { return "record not found" }

var ErrNotFound error = notFoundError{}

// Store holds the dev gateway's resource records: users, required
// channels, allowed origins, and channel memberships. Implementations
// must be safe for concurrent use.
type Store interface {
	// UpsertUser creates or refreshes the user keyed by telegram id.
	// Profile fields are updated from the argument; assigned id, role,
	// and block status of an existing record are preserved.
	UpsertUser(ctx context.Context, user model.User) (model.User, error)
	ListUsers(ctx context.Context) ([]model.User, error)
	UpdateUser(ctx context.Context, user model.User) error
	DeleteUser(ctx context.Context, id int64) error

	ListChannels(ctx context.Context) ([]model.Channel, error)
	CreateChannel(ctx context.Context, channel model.Channel) (model.Channel, error)
	DeleteChannel(ctx context.Context, id int64) error

	ListOrigins(ctx context.Context) ([]model.Origin, error)
	CreateOrigin(ctx context.Context, originURL string) (model.Origin, error)
	DeleteOrigin(ctx context.Context, id int64) error

	// JoinChannel records that the telegram user is a member of the
	// channel with the given platform id.
	JoinChannel(ctx context.Context, telegramID, channelID int64) error
	IsMember(ctx context.Context, telegramID, channelID int64) (bool, error)
}

// MemoryStore is the default Store backed by process memory.
type MemoryStore struct {
	mu            sync.Mutex
	nextUserID    int64
	nextChannelID int64
	nextOriginID  int64
	users         []model.User
	channels      []model.Channel
	origins       []model.Origin
	members       map[int64]map[int64]bool
}

var _ Store = (*MemoryStore)(nil)

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{members: make(map[int64]map[int64]bool)}
}

func (s *MemoryStore) UpsertUser(_ context.Context, user model.User) (model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, existing := range s.users {
		if existing.TelegramID == user.TelegramID {
			existing.FirstName = user.FirstName
			existing.LastName = user.LastName
			existing.Username = user.Username
			existing.PhotoURL = user.PhotoURL
			existing.Name = user.Name
			s.users[i] = existing
			return existing, nil
		}
	}

	s.nextUserID++
	user.ID = s.nextUserID
	if user.Role == "" {
		user.Role = "user"
	}
	s.users = append(s.users, user)
	return user, nil
}

func (s *MemoryStore) ListUsers(_ context.Context) ([]model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]model.User(nil), s.users...), nil
}

func (s *MemoryStore) UpdateUser(_ context.Context, user model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, existing := range s.users {
		if existing.ID == user.ID {
			s.users[i] = user
			return nil
		}
	}
	return ErrNotFound
}

func (s *MemoryStore) DeleteUser(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, existing := range s.users {
		if existing.ID == id {
			s.users = append(s.users[:i], s.users[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

func (s *MemoryStore) ListChannels(_ context.Context) ([]model.Channel, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]model.Channel(nil), s.channels...), nil
}

func (s *MemoryStore) CreateChannel(_ context.Context, channel model.Channel) (model.Channel, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextChannelID++
	channel.ID = s.nextChannelID
	s.channels = append(s.channels, channel)
	return channel, nil
}

func (s *MemoryStore) DeleteChannel(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, existing := range s.channels {
		if existing.ID == id {
			s.channels = append(s.channels[:i], s.channels[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

func (s *MemoryStore) ListOrigins(_ context.Context) ([]model.Origin, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]model.Origin(nil), s.origins...), nil
}

func (s *MemoryStore) CreateOrigin(_ context.Context, originURL string) (model.Origin, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextOriginID++
	origin := model.Origin{ID: s.nextOriginID, URL: originURL}
	s.origins = append(s.origins, origin)
	return origin, nil
}

func (s *MemoryStore) DeleteOrigin(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, existing := range s.origins {
		if existing.ID == id {
			s.origins = append(s.origins[:i], s.origins[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

func (s *MemoryStore) JoinChannel(_ context.Context, telegramID, channelID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	set, ok := s.members[telegramID]
	if !ok {
		set = make(map[int64]bool)
		s.members[telegramID] = set
	}
	set[channelID] = true
	return nil
}

func (s *MemoryStore) IsMember(_ context.Context, telegramID, channelID int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.members[telegramID][channelID], nil
}
