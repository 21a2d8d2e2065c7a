package checkout

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/luckyegg/storefront-backend/internal/cards"
	"github.com/luckyegg/storefront-backend/internal/cart"
	"github.com/luckyegg/storefront-backend/internal/customers"
	"github.com/luckyegg/storefront-backend/internal/orders"
	"github.com/luckyegg/storefront-backend/internal/pricing"
	"github.com/luckyegg/storefront-backend/pkg/db/models"
	"github.com/luckyegg/storefront-backend/pkg/enums"
	pkgerrors "github.com/luckyegg/storefront-backend/pkg/errors"
	"github.com/luckyegg/storefront-backend/pkg/logger"
	"github.com/shopspring/decimal"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type cartProvider interface {
	Get(ctx context.Context, token string) (*cart.Store, error)
	Drop(ctx context.Context, token string) error
}

// Service turns a visitor's cart into a persisted order. The whole write
// sequence runs in one transaction: customer, order, items, and the guarded
// stock decrements commit or roll back together.
type Service interface {
	Submit(ctx context.Context, cartToken string, input Input) (*Result, error)
}

type service struct {
	tx        txRunner
	carts     cartProvider
	cards     *cards.Repository
	customers *customers.Repository
	orders    *orders.Repository
	logg      *logger.Logger
}

// NewService builds the checkout service.
func NewService(
	tx txRunner,
	carts cartProvider,
	cardsRepo *cards.Repository,
	customersRepo *customers.Repository,
	ordersRepo *orders.Repository,
	logg *logger.Logger,
) (Service, error) {
	if tx == nil {
		return nil, fmt.Errorf("tx runner required")
	}
	if carts == nil {
		return nil, fmt.Errorf("cart provider required")
	}
	if cardsRepo == nil {
		return nil, fmt.Errorf("cards repository required")
	}
	if customersRepo == nil {
		return nil, fmt.Errorf("customers repository required")
	}
	if ordersRepo == nil {
		return nil, fmt.Errorf("orders repository required")
	}
	return &service{
		tx:        tx,
		carts:     carts,
		cards:     cardsRepo,
		customers: customersRepo,
		orders:    ordersRepo,
		logg:      logg,
	}, nil
}

func (s *service) Submit(ctx context.Context, cartToken string, input Input) (*Result, error) {
	if cartToken == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cart token required")
	}
	if err := input.validate(); err != nil {
		return nil, err
	}

	store, err := s.carts.Get(ctx, cartToken)
	if err != nil {
		return nil, err
	}
	if len(store.Items) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cart contains no items")
	}

	var result *Result
	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		cardsRepo := s.cards.WithTx(tx)
		customersRepo := s.customers.WithTx(tx)
		ordersRepo := s.orders.WithTx(tx)

		subtotal := decimal.Zero
		orderItems := make([]models.OrderItem, 0, len(store.Items))

		for _, line := range store.Items {
			card, err := cardsRepo.FindActiveByID(ctx, line.Card.ID)
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return pkgerrors.New(pkgerrors.CodeConflict,
						fmt.Sprintf("%s is no longer available", line.Card.Name))
				}
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "loading card")
			}

			decremented, err := cardsRepo.DecrementStock(ctx, card.ID, line.Quantity)
			if err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "decrementing stock")
			}
			if !decremented {
				return pkgerrors.New(pkgerrors.CodeConflict,
					fmt.Sprintf("insufficient stock for %s", card.Name))
			}

			lineTotal := line.Card.Price.Mul(decimal.NewFromInt(int64(line.Quantity)))
			subtotal = subtotal.Add(lineTotal)
			orderItems = append(orderItems, models.OrderItem{
				CardID:     card.ID,
				Quantity:   line.Quantity,
				UnitPrice:  line.Card.Price,
				TotalPrice: lineTotal,
			})
		}

		totals := pricing.Compute(subtotal)

		customer, err := customersRepo.Create(ctx, &models.Customer{
			Email:     input.Email,
			FirstName: input.FirstName,
			LastName:  input.LastName,
			Phone:     input.Phone,
		})
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "creating customer")
		}

		address := input.address()
		order, err := ordersRepo.CreateOrder(ctx, &models.Order{
			CustomerID:      customer.ID,
			OrderNumber:     orders.GenerateOrderNumber(time.Now()),
			Status:          enums.OrderStatusPending,
			PaymentStatus:   enums.PaymentStatusPending,
			Subtotal:        totals.Subtotal,
			TaxAmount:       totals.Tax,
			ShippingAmount:  totals.Shipping,
			TotalAmount:     totals.Total,
			Currency:        "USD",
			BillingAddress:  address,
			ShippingAddress: address,
			Notes:           input.Notes,
		})
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "creating order")
		}

		for i := range orderItems {
			orderItems[i].OrderID = order.ID
		}
		if err := ordersRepo.CreateOrderItems(ctx, orderItems); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "creating order items")
		}

		result = resultFrom(order.ID, order.OrderNumber, totals)
		return nil
	})
	if err != nil {
		return nil, err
	}

	// A cart that fails to clear leaves a stale key behind, not a broken order.
	if err := s.carts.Drop(ctx, cartToken); err != nil && s.logg != nil {
		s.logg.Warn(s.logg.WithCartToken(ctx, cartToken), "clearing cart after checkout failed")
	}

	return result, nil
}
