package orders

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/luckyegg/storefront-backend/pkg/db/models"
	"github.com/luckyegg/storefront-backend/pkg/enums"
	pkgerrors "github.com/luckyegg/storefront-backend/pkg/errors"
)

type repository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Order, error)
	FindByOrderNumber(ctx context.Context, orderNumber string) (*models.Order, error)
	List(ctx context.Context) ([]models.Order, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) (bool, error)
	UpdatePaymentStatus(ctx context.Context, id uuid.UUID, status string) (bool, error)
}

// Service exposes order reads and admin status transitions.
type Service interface {
	List(ctx context.Context) ([]models.Order, error)
	Get(ctx context.Context, id uuid.UUID) (*models.Order, error)
	GetByOrderNumber(ctx context.Context, orderNumber string) (*models.Order, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) (*models.Order, error)
	UpdatePaymentStatus(ctx context.Context, id uuid.UUID, status string) (*models.Order, error)
}

type service struct {
	repo repository
}

func NewService(repo repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("orders repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) List(ctx context.Context) ([]models.Order, error) {
	return s.repo.List(ctx)
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	order, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err)
	}
	return order, nil
}

func (s *service) GetByOrderNumber(ctx context.Context, orderNumber string) (*models.Order, error) {
	order, err := s.repo.FindByOrderNumber(ctx, orderNumber)
	if err != nil {
		return nil, notFoundOr(err)
	}
	return order, nil
}

func (s *service) UpdateStatus(ctx context.Context, id uuid.UUID, status string) (*models.Order, error) {
	parsed, err := enums.ParseOrderStatus(status)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid order status")
	}

	updated, err := s.repo.UpdateStatus(ctx, id, string(parsed))
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "updating order status")
	}
	if !updated {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
	}
	return s.Get(ctx, id)
}

func (s *service) UpdatePaymentStatus(ctx context.Context, id uuid.UUID, status string) (*models.Order, error) {
	parsed, err := enums.ParsePaymentStatus(status)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid payment status")
	}

	updated, err := s.repo.UpdatePaymentStatus(ctx, id, string(parsed))
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "updating payment status")
	}
	if !updated {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
	}
	return s.Get(ctx, id)
}

func notFoundOr(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
	}
	return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "loading order")
}

// GenerateOrderNumber mints the public order identifier shown to customers,
// e.g. LE-20250901-3F8A2C.
func GenerateOrderNumber(now time.Time) string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:6])
	return fmt.Sprintf("LE-%s-%s", now.UTC().Format("20060102"), suffix)
}
