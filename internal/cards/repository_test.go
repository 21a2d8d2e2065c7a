package cards

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/luckyegg/storefront-backend/pkg/db/models"
	"github.com/luckyegg/storefront-backend/pkg/enums"
)

func setupCardsTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	require.NoError(t, err)

	cards := `
CREATE TABLE IF NOT EXISTS cards (
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
);`
	require.NoError(t, db.Exec(`DROP TABLE IF EXISTS cards`).Error)
	require.NoError(t, db.Exec(cards).Error)
	return db
}

func seedCard(t *testing.T, repo *Repository, name string, stock int, active, featured bool) *models.Card {
	t.Helper()

	card := &models.Card{
		ID:            uuid.New(),
		Name:          name,
		Price:         decimal.RequireFromString("10.00"),
		Rarity:        enums.RarityRare,
		Condition:     enums.ConditionNearMint,
		StockQuantity: stock,
		IsActive:      active,
		IsFeatured:    featured,
	}
	created, err := repo.Create(context.Background(), card)
	require.NoError(t, err)
	return created
}

func TestListActiveFiltersAndOrders(t *testing.T) {
	repo := NewRepository(setupCardsTestDB(t))

	seedCard(t, repo, "older", 1, true, false)
	seedCard(t, repo, "hidden", 1, false, false)
	newer := seedCard(t, repo, "newer", 1, true, false)

	rows, err := repo.ListActive(context.Background())
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, newer.ID, rows[0].ID)
	for _, row := range rows {
		assert.True(t, row.IsActive)
	}
}

func TestListFeaturedRequiresActive(t *testing.T) {
	repo := NewRepository(setupCardsTestDB(t))

	seedCard(t, repo, "plain", 1, true, false)
	seedCard(t, repo, "hidden feature", 1, false, true)
	featured := seedCard(t, repo, "featured", 1, true, true)

	rows, err := repo.ListFeatured(context.Background())
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, featured.ID, rows[0].ID)
}

func TestFindActiveByIDHidesInactive(t *testing.T) {
	repo := NewRepository(setupCardsTestDB(t))

	hidden := seedCard(t, repo, "hidden", 1, false, false)

	_, err := repo.FindActiveByID(context.Background(), hidden.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	found, err := repo.FindByID(context.Background(), hidden.ID)
	require.NoError(t, err)
	assert.Equal(t, hidden.ID, found.ID)
}

func TestDecrementStockGuardsAgainstOversell(t *testing.T) {
	repo := NewRepository(setupCardsTestDB(t))
	ctx := context.Background()

	card := seedCard(t, repo, "limited", 3, true, false)

	ok, err := repo.DecrementStock(ctx, card.ID, 2)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = repo.DecrementStock(ctx, card.ID, 2)
	require.NoError(t, err)
	assert.False(t, ok, "decrement past zero must be refused")

	remaining, err := repo.FindByID(ctx, card.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, remaining.StockQuantity)
}

func TestUpdateAndDelete(t *testing.T) {
	repo := NewRepository(setupCardsTestDB(t))
	ctx := context.Background()

	card := seedCard(t, repo, "rename me", 1, true, false)
	card.Name = "renamed"

	updated, err := repo.Update(ctx, card)
	require.NoError(t, err)
	assert.Equal(t, "renamed", updated.Name)

	require.NoError(t, repo.Delete(ctx, card.ID))
	_, err = repo.FindByID(ctx, card.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
