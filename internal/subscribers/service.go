package subscribers

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/luckyegg/storefront-backend/pkg/db/models"
	pkgerrors "github.com/luckyegg/storefront-backend/pkg/errors"
)

const defaultSource = "website_newsletter"

type repository interface {
	Create(ctx context.Context, subscriber *models.EmailSubscriber) (*models.EmailSubscriber, error)
	List(ctx context.Context) ([]models.EmailSubscriber, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// SubscribeInput is the newsletter form payload.
type SubscribeInput struct {
	Email     string  `json:"email" validate:"required,email"`
	FirstName *string `json:"first_name,omitempty"`
	Source    string  `json:"source,omitempty"`
}

// Service handles newsletter signups and the admin subscriber list.
type Service interface {
	Subscribe(ctx context.Context, input SubscribeInput) (*models.EmailSubscriber, error)
	List(ctx context.Context) ([]models.EmailSubscriber, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type service struct {
	repo repository
}

func NewService(repo repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("subscribers repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) Subscribe(ctx context.Context, input SubscribeInput) (*models.EmailSubscriber, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if email == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "email is required")
	}

	source := strings.TrimSpace(input.Source)
	if source == "" {
		source = defaultSource
	}

	subscriber, err := s.repo.Create(ctx, &models.EmailSubscriber{
		Email:              email,
		FirstName:          input.FirstName,
		SubscriptionSource: source,
	})
	if err != nil {
		if pkgerrors.IsUniqueViolation(err) || errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "email already subscribed")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "creating subscriber")
	}
	return subscriber, nil
}

func (s *service) List(ctx context.Context) ([]models.EmailSubscriber, error) {
	return s.repo.List(ctx)
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "deleting subscriber")
	}
	return nil
}
