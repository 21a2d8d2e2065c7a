package cart

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	goredis "github.com/luckyegg/storefront-backend/pkg/redis"
)

// Persistence stores cart lines keyed by visitor token. Implementations
// return (nil, nil) when no cart exists for the token.
type Persistence interface {
	Load(ctx context.Context, token string) ([]LineItem, error)
	Save(ctx context.Context, token string, items []LineItem) error
	Drop(ctx context.Context, token string) error
}

// ErrCorrupted reports that a persisted cart payload could not be decoded.
type ErrCorrupted struct {
	cause error
}

func (e *ErrCorrupted) Error() string {
	return "cart payload corrupted: " + e.cause.Error()
}

func (e *ErrCorrupted) Unwrap() error {
	return e.cause
}

// RedisPersistence keeps carts in redis as JSON arrays with a sliding TTL.
type RedisPersistence struct {
	client *goredis.Client
	ttl    time.Duration
}

func NewRedisPersistence(client *goredis.Client, ttl time.Duration) *RedisPersistence {
	return &RedisPersistence{client: client, ttl: ttl}
}

func (p *RedisPersistence) Load(ctx context.Context, token string) ([]LineItem, error) {
	raw, err := p.client.Get(ctx, p.client.CartKey(token))
	if err != nil {
		if p.client.IsNil(err) {
			return nil, nil
		}
		return nil, err
	}

	var items []LineItem
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		return nil, &ErrCorrupted{cause: err}
	}
	return items, nil
}

func (p *RedisPersistence) Save(ctx context.Context, token string, items []LineItem) error {
	if items == nil {
		items = []LineItem{}
	}
	payload, err := json.Marshal(items)
	if err != nil {
		return err
	}
	return p.client.Set(ctx, p.client.CartKey(token), string(payload), p.ttl)
}

func (p *RedisPersistence) Drop(ctx context.Context, token string) error {
	return p.client.Del(ctx, p.client.CartKey(token))
}

// MemoryPersistence is an in-process adapter for tests and local runs.
type MemoryPersistence struct {
	mu    sync.RWMutex
	carts map[string][]byte
}

func NewMemoryPersistence() *MemoryPersistence {
	return &MemoryPersistence{carts: map[string][]byte{}}
}

func (p *MemoryPersistence) Load(_ context.Context, token string) ([]LineItem, error) {
	p.mu.RLock()
	raw, ok := p.carts[token]
	p.mu.RUnlock()
	if !ok {
		return nil, nil
	}

	var items []LineItem
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, &ErrCorrupted{cause: err}
	}
	return items, nil
}

func (p *MemoryPersistence) Save(_ context.Context, token string, items []LineItem) error {
	if items == nil {
		items = []LineItem{}
	}
	payload, err := json.Marshal(items)
	if err != nil {
		return err
	}
	p.mu.Lock()
	p.carts[token] = payload
	p.mu.Unlock()
	return nil
}

func (p *MemoryPersistence) Drop(_ context.Context, token string) error {
	p.mu.Lock()
	delete(p.carts, token)
	p.mu.Unlock()
	return nil
}

// Corrupt overwrites a stored cart with an undecodable payload. Test helper.
func (p *MemoryPersistence) Corrupt(token string) {
	p.mu.Lock()
	p.carts[token] = []byte("{not json")
	p.mu.Unlock()
}
