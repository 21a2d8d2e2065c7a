package cards

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/luckyegg/storefront-backend/pkg/db/models"
	"github.com/luckyegg/storefront-backend/pkg/enums"
	pkgerrors "github.com/luckyegg/storefront-backend/pkg/errors"
)

type repository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Card, error)
	FindActiveByID(ctx context.Context, id uuid.UUID) (*models.Card, error)
	ListActive(ctx context.Context) ([]models.Card, error)
	ListFeatured(ctx context.Context) ([]models.Card, error)
	ListAll(ctx context.Context) ([]models.Card, error)
	Create(ctx context.Context, card *models.Card) (*models.Card, error)
	Update(ctx context.Context, card *models.Card) (*models.Card, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// Notifier announces catalog mutations so storefront clients can re-fetch.
type Notifier interface {
	CatalogChanged(ctx context.Context, action string, cardID uuid.UUID)
}

// Service exposes catalog reads for the storefront and writes for the admin.
type Service interface {
	ListActive(ctx context.Context) ([]models.Card, error)
	ListFeatured(ctx context.Context) ([]models.Card, error)
	GetActive(ctx context.Context, id uuid.UUID) (*models.Card, error)
	ListAll(ctx context.Context) ([]models.Card, error)
	Get(ctx context.Context, id uuid.UUID) (*models.Card, error)
	Create(ctx context.Context, input CreateCardInput) (*models.Card, error)
	Update(ctx context.Context, id uuid.UUID, input UpdateCardInput) (*models.Card, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type service struct {
	repo     repository
	notifier Notifier
}

// NewService builds the catalog service. The notifier may be nil when change
// broadcasting is disabled.
func NewService(repo repository, notifier Notifier) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("card repository required")
	}
	return &service{repo: repo, notifier: notifier}, nil
}

func (s *service) ListActive(ctx context.Context) ([]models.Card, error) {
	return s.repo.ListActive(ctx)
}

func (s *service) ListFeatured(ctx context.Context) ([]models.Card, error) {
	return s.repo.ListFeatured(ctx)
}

func (s *service) GetActive(ctx context.Context, id uuid.UUID) (*models.Card, error) {
	card, err := s.repo.FindActiveByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, "card not found")
	}
	return card, nil
}

func (s *service) ListAll(ctx context.Context) ([]models.Card, error) {
	return s.repo.ListAll(ctx)
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*models.Card, error) {
	card, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, "card not found")
	}
	return card, nil
}

func (s *service) Create(ctx context.Context, input CreateCardInput) (*models.Card, error) {
	rarity, err := enums.ParseRarity(input.Rarity)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid rarity")
	}
	condition, err := enums.ParseCondition(input.Condition)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid condition")
	}
	if input.Price.IsNegative() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "price must not be negative")
	}

	card, err := s.repo.Create(ctx, input.toModel(rarity, condition))
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "creating card")
	}
	s.notify(ctx, "created", card.ID)
	return card, nil
}

func (s *service) Update(ctx context.Context, id uuid.UUID, input UpdateCardInput) (*models.Card, error) {
	card, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, "card not found")
	}

	var rarity *enums.Rarity
	if input.Rarity != nil {
		parsed, err := enums.ParseRarity(*input.Rarity)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid rarity")
		}
		rarity = &parsed
	}
	var condition *enums.Condition
	if input.Condition != nil {
		parsed, err := enums.ParseCondition(*input.Condition)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid condition")
		}
		condition = &parsed
	}
	if input.Price != nil && input.Price.IsNegative() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "price must not be negative")
	}

	input.apply(card, rarity, condition)

	updated, err := s.repo.Update(ctx, card)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "updating card")
	}
	s.notify(ctx, "updated", updated.ID)
	return updated, nil
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return notFoundOr(err, "card not found")
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "deleting card")
	}
	s.notify(ctx, "deleted", id)
	return nil
}

func (s *service) notify(ctx context.Context, action string, cardID uuid.UUID) {
	if s.notifier == nil {
		return
	}
	s.notifier.CatalogChanged(ctx, action, cardID)
}

func notFoundOr(err error, message string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return pkgerrors.New(pkgerrors.CodeNotFound, message)
	}
	return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "loading card")
}
