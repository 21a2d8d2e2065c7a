package orders

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/luckyegg/storefront-backend/pkg/db/models"
	"github.com/luckyegg/storefront-backend/pkg/enums"
	pkgerrors "github.com/luckyegg/storefront-backend/pkg/errors"
)

type stubRepo struct {
	orders map[uuid.UUID]*models.Order
}

func newStubRepo() *stubRepo {
	return &stubRepo{orders: map[uuid.UUID]*models.Order{}}
}

func (s *stubRepo) FindByID(_ context.Context, id uuid.UUID) (*models.Order, error) {
	if order, ok := s.orders[id]; ok {
		return order, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubRepo) FindByOrderNumber(_ context.Context, orderNumber string) (*models.Order, error) {
	for _, order := range s.orders {
		if order.OrderNumber == orderNumber {
			return order, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubRepo) List(context.Context) ([]models.Order, error) { return nil, nil }

func (s *stubRepo) UpdateStatus(_ context.Context, id uuid.UUID, status string) (bool, error) {
	order, ok := s.orders[id]
	if !ok {
		return false, nil
	}
	order.Status = enums.OrderStatus(status)
	return true, nil
}

func (s *stubRepo) UpdatePaymentStatus(_ context.Context, id uuid.UUID, status string) (bool, error) {
	order, ok := s.orders[id]
	if !ok {
		return false, nil
	}
	order.PaymentStatus = enums.PaymentStatus(status)
	return true, nil
}

func TestUpdateStatusRejectsUnknownValue(t *testing.T) {
	svc, err := NewService(newStubRepo())
	require.NoError(t, err)

	_, err = svc.UpdateStatus(context.Background(), uuid.New(), "teleported")
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())
}

func TestUpdateStatusMissingOrderIsNotFound(t *testing.T) {
	svc, err := NewService(newStubRepo())
	require.NoError(t, err)

	_, err = svc.UpdateStatus(context.Background(), uuid.New(), "shipped")
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeNotFound, pkgerrors.As(err).Code())
}

func TestUpdateStatusTransitions(t *testing.T) {
	repo := newStubRepo()
	order := &models.Order{ID: uuid.New(), OrderNumber: "LE-1", Status: enums.OrderStatusPending}
	repo.orders[order.ID] = order

	svc, err := NewService(repo)
	require.NoError(t, err)

	updated, err := svc.UpdateStatus(context.Background(), order.ID, "shipped")
	require.NoError(t, err)
	assert.Equal(t, enums.OrderStatusShipped, updated.Status)

	updated, err = svc.UpdatePaymentStatus(context.Background(), order.ID, "paid")
	require.NoError(t, err)
	assert.Equal(t, enums.PaymentStatusPaid, updated.PaymentStatus)
}

func TestGenerateOrderNumberShape(t *testing.T) {
	now := time.Date(2025, 9, 1, 12, 0, 0, 0, time.UTC)

	pattern := regexp.MustCompile(`^LE-20250901-[0-9A-F]{6}$`)
	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		number := GenerateOrderNumber(now)
		assert.Regexp(t, pattern, number)
		assert.False(t, seen[number], "order numbers should not repeat: %s", number)
		seen[number] = true
	}
}
