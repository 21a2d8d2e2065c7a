package session

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// Store is the key-value surface the manager needs, satisfied by pkg/redis.
type Store interface {
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Get(ctx context.Context, key string) (string, error)
	Del(ctx context.Context, keys ...string) error
	AccessSessionKey(accessID string) string
	IsNil(err error) bool
}

// AccessSessionChecker verifies that a token's session id is still live.
type AccessSessionChecker interface {
	HasSession(ctx context.Context, accessID string) (bool, error)
}

// Manager tracks live sessions by JWT id so logout actually revokes tokens.
type Manager struct {
	store Store
	ttl   time.Duration
}

// NewManager builds a session manager backed by the provided store.
func NewManager(store Store, ttl time.Duration) (*Manager, error) {
	if store == nil {
		return nil, errors.New("session store required")
	}
	if ttl <= 0 {
		return nil, errors.New("session ttl must be positive")
	}
	return &Manager{store: store, ttl: ttl}, nil
}

// Register records a freshly minted session id.
func (m *Manager) Register(ctx context.Context, accessID, userID string) error {
	if accessID == "" {
		return errors.New("access id required")
	}
	key := m.store.AccessSessionKey(accessID)
	if err := m.store.Set(ctx, key, userID, m.ttl); err != nil {
		return fmt.Errorf("register session: %w", err)
	}
	return nil
}

// HasSession reports whether the session id is still registered.
func (m *Manager) HasSession(ctx context.Context, accessID string) (bool, error) {
	if accessID == "" {
		return false, nil
	}
	_, err := m.store.Get(ctx, m.store.AccessSessionKey(accessID))
	if err != nil {
		if m.store.IsNil(err) {
			return false, nil
		}
		return false, fmt.Errorf("lookup session: %w", err)
	}
	return true, nil
}

// Revoke drops the session so the matching token stops authenticating.
func (m *Manager) Revoke(ctx context.Context, accessID string) error {
	if accessID == "" {
		return nil
	}
	if err := m.store.Del(ctx, m.store.AccessSessionKey(accessID)); err != nil {
		return fmt.Errorf("revoke session: %w", err)
	}
	return nil
}
