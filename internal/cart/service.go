package cart

import (
	"context"
	"errors"

	"github.com/google/uuid"

	apperrors "github.com/luckyegg/storefront-backend/pkg/errors"
	"github.com/luckyegg/storefront-backend/pkg/logger"
)

// Service applies cart operations for a visitor token. Each call loads the
// persisted lines, replays the operation through the store rules, and writes
// the result back. A corrupted payload is logged and treated as an empty cart.
type Service struct {
	persistence Persistence
	logg        *logger.Logger
}

func NewService(persistence Persistence, logg *logger.Logger) *Service {
	return &Service{persistence: persistence, logg: logg}
}

func (s *Service) load(ctx context.Context, token string) (*Store, error) {
	store := NewStore()

	items, err := s.persistence.Load(ctx, token)
	if err != nil {
		var corrupted *ErrCorrupted
		if errors.As(err, &corrupted) {
			s.logg.Warn(s.logg.WithCartToken(ctx, token), "discarding corrupted cart payload")
			return store, nil
		}
		return nil, apperrors.Wrap(apperrors.CodeDependency, err, "loading cart")
	}

	store.Hydrate(items)
	return store, nil
}

func (s *Service) save(ctx context.Context, token string, store *Store) error {
	if err := s.persistence.Save(ctx, token, store.Items); err != nil {
		return apperrors.Wrap(apperrors.CodeDependency, err, "saving cart")
	}
	return nil
}

// Get returns the current cart without mutating it.
func (s *Service) Get(ctx context.Context, token string) (*Store, error) {
	return s.load(ctx, token)
}

// Add puts one more unit of the card in the cart, clamped to stock.
func (s *Service) Add(ctx context.Context, token string, card CardSnapshot) (*Store, error) {
	store, err := s.load(ctx, token)
	if err != nil {
		return nil, err
	}
	store.Add(card)
	if err := s.save(ctx, token, store); err != nil {
		return nil, err
	}
	return store, nil
}

// Remove drops the card's line from the cart.
func (s *Service) Remove(ctx context.Context, token string, cardID uuid.UUID) (*Store, error) {
	store, err := s.load(ctx, token)
	if err != nil {
		return nil, err
	}
	store.Remove(cardID)
	if err := s.save(ctx, token, store); err != nil {
		return nil, err
	}
	return store, nil
}

// SetQuantity sets the card's quantity, clamped to stock; zero removes it.
func (s *Service) SetQuantity(ctx context.Context, token string, cardID uuid.UUID, quantity int) (*Store, error) {
	store, err := s.load(ctx, token)
	if err != nil {
		return nil, err
	}
	store.SetQuantity(cardID, quantity)
	if err := s.save(ctx, token, store); err != nil {
		return nil, err
	}
	return store, nil
}

// Clear empties the cart.
func (s *Service) Clear(ctx context.Context, token string) (*Store, error) {
	store, err := s.load(ctx, token)
	if err != nil {
		return nil, err
	}
	store.Clear()
	if err := s.save(ctx, token, store); err != nil {
		return nil, err
	}
	return store, nil
}

// Open marks the cart drawer visible. Visibility is per-response state; only
// line items persist.
func (s *Service) Open(ctx context.Context, token string) (*Store, error) {
	store, err := s.load(ctx, token)
	if err != nil {
		return nil, err
	}
	store.Open()
	return store, nil
}

// Close hides the cart drawer.
func (s *Service) Close(ctx context.Context, token string) (*Store, error) {
	store, err := s.load(ctx, token)
	if err != nil {
		return nil, err
	}
	store.Close()
	return store, nil
}

// Toggle flips the drawer visibility.
func (s *Service) Toggle(ctx context.Context, token string) (*Store, error) {
	store, err := s.load(ctx, token)
	if err != nil {
		return nil, err
	}
	store.Toggle()
	return store, nil
}

// Drop deletes the persisted cart outright, used after a completed checkout.
func (s *Service) Drop(ctx context.Context, token string) error {
	if err := s.persistence.Drop(ctx, token); err != nil {
		return apperrors.Wrap(apperrors.CodeDependency, err, "dropping cart")
	}
	return nil
}
