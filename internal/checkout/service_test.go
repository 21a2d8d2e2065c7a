package checkout

import (
	"context"
	"io"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/luckyegg/storefront-backend/internal/cards"
	"github.com/luckyegg/storefront-backend/internal/cart"
	"github.com/luckyegg/storefront-backend/internal/customers"
	"github.com/luckyegg/storefront-backend/internal/orders"
	"github.com/luckyegg/storefront-backend/pkg/db/models"
	"github.com/luckyegg/storefront-backend/pkg/enums"
	pkgerrors "github.com/luckyegg/storefront-backend/pkg/errors"
	"github.com/luckyegg/storefront-backend/pkg/logger"
)

type gormTxRunner struct {
	db *gorm.DB
}

func (r gormTxRunner) WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return r.db.WithContext(ctx).Transaction(fn)
}

func setupCheckoutTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	require.NoError(t, err)

	statements := []string{
		`DROP TABLE IF EXISTS order_items`,
		`DROP TABLE IF EXISTS orders`,
		`DROP TABLE IF EXISTS customers`,
		`DROP TABLE IF EXISTS cards`,
		`CREATE TABLE cards (
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  price TEXT NOT NULL,
  original_price TEXT,
  image_url TEXT,
  rarity TEXT NOT NULL,
  condition TEXT NOT NULL,
  stock_quantity INTEGER NOT NULL DEFAULT 0,
  video_episode TEXT,
  pull_date DATETIME,
  set_name TEXT,
  card_number TEXT,
  description TEXT,
  is_featured INTEGER NOT NULL DEFAULT 0,
  is_active INTEGER NOT NULL DEFAULT 1,
  created_at DATETIME,
  updated_at DATETIME
)`,
		`CREATE TABLE customers (
  id TEXT PRIMARY KEY,
  email TEXT NOT NULL,
  first_name TEXT NOT NULL,
  last_name TEXT NOT NULL,
  phone TEXT,
  created_at DATETIME,
  updated_at DATETIME
)`,
		`CREATE TABLE orders (
  id TEXT PRIMARY KEY,
  customer_id TEXT NOT NULL,
  order_number TEXT NOT NULL UNIQUE,
  status TEXT NOT NULL,
  payment_status TEXT NOT NULL,
  subtotal TEXT NOT NULL,
  tax_amount TEXT NOT NULL,
  shipping_amount TEXT NOT NULL,
  total_amount TEXT NOT NULL,
  currency TEXT NOT NULL DEFAULT 'USD',
  payment_method TEXT,
  billing_address TEXT,
  shipping_address TEXT,
  notes TEXT,
  created_at DATETIME,
  updated_at DATETIME
)`,
		`CREATE TABLE order_items (
  id TEXT PRIMARY KEY,
  order_id TEXT NOT NULL,
  card_id TEXT NOT NULL,
  quantity INTEGER NOT NULL,
  unit_price TEXT NOT NULL,
  total_price TEXT NOT NULL,
  created_at DATETIME
)`,
	}
	for _, stmt := range statements {
		require.NoError(t, db.Exec(stmt).Error)
	}
	return db
}

type fixture struct {
	svc       Service
	carts     *cart.Service
	cardsRepo *cards.Repository
	db        *gorm.DB
}

func setupCheckout(t *testing.T) fixture {
	t.Helper()

	db := setupCheckoutTestDB(t)
	logg := logger.New(logger.Options{ServiceName: "test", Output: io.Discard})
	cartSvc := cart.NewService(cart.NewMemoryPersistence(), logg)
	cardsRepo := cards.NewRepository(db)

	svc, err := NewService(
		gormTxRunner{db: db},
		cartSvc,
		cardsRepo,
		customers.NewRepository(db),
		orders.NewRepository(db),
		logg,
	)
	require.NoError(t, err)
	return fixture{svc: svc, carts: cartSvc, cardsRepo: cardsRepo, db: db}
}

func seedCard(t *testing.T, db *gorm.DB, name, price string, stock int) *models.Card {
	t.Helper()

	card := &models.Card{
		ID:            uuid.New(),
		Name:          name,
		Price:         decimal.RequireFromString(price),
		Rarity:        enums.RarityRare,
		Condition:     enums.ConditionNearMint,
		StockQuantity: stock,
		IsActive:      true,
	}
	require.NoError(t, db.Create(card).Error)
	return card
}

func snapshotOf(card *models.Card) cart.CardSnapshot {
	return cart.CardSnapshot{
		ID:            card.ID,
		Name:          card.Name,
		Price:         card.Price,
		StockQuantity: card.StockQuantity,
	}
}

func validInput() Input {
	return Input{
		Email:        "buyer@example.com",
		FirstName:    "Jamie",
		LastName:     "Rivera",
		AddressLine1: "1 Main St",
		City:         "Austin",
		State:        "TX",
		PostalCode:   "78701",
	}
}

func TestSubmitCreatesOrderAndDecrementsStock(t *testing.T) {
	f := setupCheckout(t)
	ctx := context.Background()

	card := seedCard(t, f.db, "Charizard", "20.00", 5)
	_, err := f.carts.Add(ctx, "visitor", snapshotOf(card))
	require.NoError(t, err)
	_, err = f.carts.SetQuantity(ctx, "visitor", card.ID, 2)
	require.NoError(t, err)

	result, err := f.svc.Submit(ctx, "visitor", validInput())
	require.NoError(t, err)

	assert.True(t, result.Subtotal.Equal(decimal.RequireFromString("40.00")))
	assert.True(t, result.Tax.Equal(decimal.RequireFromString("3.20")))
	assert.True(t, result.Shipping.Equal(decimal.RequireFromString("9.99")))
	assert.True(t, result.Total.Equal(decimal.RequireFromString("53.19")))
	assert.NotEmpty(t, result.OrderNumber)

	order, err := orders.NewRepository(f.db).FindByID(ctx, result.OrderID)
	require.NoError(t, err)
	require.Len(t, order.Items, 1)
	assert.Equal(t, 2, order.Items[0].Quantity)
	assert.Equal(t, enums.OrderStatusPending, order.Status)
	assert.Equal(t, enums.PaymentStatusPending, order.PaymentStatus)

	remaining, err := f.cardsRepo.FindByID(ctx, card.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, remaining.StockQuantity)

	store, err := f.carts.Get(ctx, "visitor")
	require.NoError(t, err)
	assert.Empty(t, store.Items, "cart should be dropped after checkout")
}

func TestSubmitFreeShippingOverThreshold(t *testing.T) {
	f := setupCheckout(t)
	ctx := context.Background()

	card := seedCard(t, f.db, "Lugia", "30.00", 5)
	_, err := f.carts.Add(ctx, "visitor", snapshotOf(card))
	require.NoError(t, err)
	_, err = f.carts.SetQuantity(ctx, "visitor", card.ID, 2)
	require.NoError(t, err)

	result, err := f.svc.Submit(ctx, "visitor", validInput())
	require.NoError(t, err)
	assert.True(t, result.Shipping.IsZero())
	assert.True(t, result.Total.Equal(decimal.RequireFromString("64.80")))
}

func TestSubmitMissingFieldWritesNothing(t *testing.T) {
	f := setupCheckout(t)
	ctx := context.Background()

	card := seedCard(t, f.db, "Mew", "10.00", 5)
	_, err := f.carts.Add(ctx, "visitor", snapshotOf(card))
	require.NoError(t, err)

	input := validInput()
	input.City = ""

	_, err = f.svc.Submit(ctx, "visitor", input)
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())

	var count int64
	require.NoError(t, f.db.Model(&models.Customer{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestSubmitEmptyCartRejected(t *testing.T) {
	f := setupCheckout(t)

	_, err := f.svc.Submit(context.Background(), "visitor", validInput())
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())
}

func TestSubmitInsufficientStockRollsBack(t *testing.T) {
	f := setupCheckout(t)
	ctx := context.Background()

	plenty := seedCard(t, f.db, "Common", "5.00", 10)
	scarce := seedCard(t, f.db, "Scarce", "10.00", 3)

	_, err := f.carts.Add(ctx, "visitor", snapshotOf(plenty))
	require.NoError(t, err)
	_, err = f.carts.Add(ctx, "visitor", snapshotOf(scarce))
	require.NoError(t, err)
	_, err = f.carts.SetQuantity(ctx, "visitor", scarce.ID, 3)
	require.NoError(t, err)

	// Someone else buys the scarce card between cart and checkout.
	ok, err := f.cardsRepo.DecrementStock(ctx, scarce.ID, 2)
	require.NoError(t, err)
	require.True(t, ok)

	_, err = f.svc.Submit(ctx, "visitor", validInput())
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeConflict, pkgerrors.As(err).Code())

	var customerCount int64
	require.NoError(t, f.db.Model(&models.Customer{}).Count(&customerCount).Error)
	assert.Zero(t, customerCount, "failed checkout must not leave partial writes")

	untouched, err := f.cardsRepo.FindByID(ctx, plenty.ID)
	require.NoError(t, err)
	assert.Equal(t, 10, untouched.StockQuantity, "earlier decrements must roll back")

	store, err := f.carts.Get(ctx, "visitor")
	require.NoError(t, err)
	assert.NotEmpty(t, store.Items, "cart survives a failed checkout")
}

func TestSubmitInactiveCardConflicts(t *testing.T) {
	f := setupCheckout(t)
	ctx := context.Background()

	card := seedCard(t, f.db, "Pulled Listing", "10.00", 5)
	_, err := f.carts.Add(ctx, "visitor", snapshotOf(card))
	require.NoError(t, err)

	require.NoError(t, f.db.Model(&models.Card{}).Where("id = ?", card.ID).Update("is_active", false).Error)

	_, err = f.svc.Submit(ctx, "visitor", validInput())
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeConflict, pkgerrors.As(err).Code())
}
