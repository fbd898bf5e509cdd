package devgateway

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"

	"github.com/redis/go-redis/v9"
)

// BindingStore records which telegram account each device fingerprint
// belongs to. Bindings are the one piece of dev gateway state worth
// persisting across restarts: losing them silently unblocks devices.
type BindingStore interface {
	// Bind associates the device with the telegram id unless the device
	// is already bound, and returns the owning telegram id after the
	// call. A device is bound at most once; later calls with a
	// different telegram id return the original owner.
	Bind(ctx context.Context, deviceID string, telegramID int64) (int64, error)

	// Owner returns the telegram id bound to the device, or ErrNotFound.
	Owner(ctx context.Context, deviceID string) (int64, error)
}

// MemoryBindingStore is the default BindingStore backed by process memory.
type MemoryBindingStore struct {
	mu       sync.Mutex
	bindings map[string]int64
}

var _ BindingStore = (*MemoryBindingStore)(nil)

// NewMemoryBindingStore creates an empty in-memory binding store.
func NewMemoryBindingStore() *MemoryBindingStore {
	return &MemoryBindingStore{bindings: make(map[string]int64)}
}

func (s *MemoryBindingStore) Bind(_ context.Context, deviceID string, telegramID int64) (int64, error) {
	if deviceID == "" {
		return 0, errors.New("device id cannot be empty")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if owner, ok := s.bindings[deviceID]; ok {
		return owner, nil
	}
	s.bindings[deviceID] = telegramID
	return telegramID, nil
}

func (s *MemoryBindingStore) Owner(_ context.Context, deviceID string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	owner, ok := s.bindings[deviceID]
	if !ok {
		return 0, ErrNotFound
	}
	return owner, nil
}

// RedisBindingStore is a Redis-backed BindingStore for dev setups that
// survive restarts. Bindings never expire.
type RedisBindingStore struct {
	client redis.UniversalClient
	prefix string
}

var _ BindingStore = (*RedisBindingStore)(nil)

// NewRedisBindingStore creates a Redis-backed binding store.
func NewRedisBindingStore(client redis.UniversalClient) *RedisBindingStore {
	return &RedisBindingStore{client: client, prefix: "device:"}
}

// NewRedisBindingStoreWithPrefix creates a Redis binding store with a
// custom key prefix.
func NewRedisBindingStoreWithPrefix(client redis.UniversalClient, prefix string) *RedisBindingStore {
	return &RedisBindingStore{client: client, prefix: prefix}
}

func (s *RedisBindingStore) Bind(ctx context.Context, deviceID string, telegramID int64) (int64, error) {
	if deviceID == "" {
		return 0, errors.New("device id cannot be empty")
	}

	key := s.prefix + deviceID
	created, err := s.client.SetNX(ctx, key, telegramID, 0).Result()
	if err != nil {
		return 0, fmt.Errorf("redis setnx: %w", err)
	}
	if created {
		return telegramID, nil
	}
	return s.Owner(ctx, deviceID)
}

func (s *RedisBindingStore) Owner(ctx context.Context, deviceID string) (int64, error) {
	if deviceID == "" {
		return 0, ErrNotFound
	}

	data, err := s.client.Get(ctx, s.prefix+deviceID).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, ErrNotFound
		}
		return 0, fmt.Errorf("redis get: %w", err)
	}

	owner, err := strconv.ParseInt(data, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("parse binding owner: %w", err)
	}
	return owner, nil
}
