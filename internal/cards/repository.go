package cards

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/luckyegg/storefront-backend/pkg/db/models"
)

// Repository wires card persistence helpers.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx returns a repository bound to the provided transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return &Repository{db: tx}
}

// FindByID loads one card regardless of its active flag.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Card, error) {
	var card models.Card
	if err := r.db.WithContext(ctx).First(&card, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &card, nil
}

// FindActiveByID loads one card visible to the storefront.
func (r *Repository) FindActiveByID(ctx context.Context, id uuid.UUID) (*models.Card, error) {
	var card models.Card
	if err := r.db.WithContext(ctx).First(&card, "id = ? AND is_active = ?", id, true).Error; err != nil {
		return nil, err
	}
	return &card, nil
}

// ListActive returns storefront-visible cards, newest pull first.
func (r *Repository) ListActive(ctx context.Context) ([]models.Card, error) {
	var rows []models.Card
	err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("created_at DESC").
		Find(&rows).
		Error
	return rows, err
}

// ListFeatured returns active cards flagged for the homepage strip.
func (r *Repository) ListFeatured(ctx context.Context) ([]models.Card, error) {
	var rows []models.Card
	err := r.db.WithContext(ctx).
		Where("is_active = ? AND is_featured = ?", true, true).
		Order("created_at DESC").
		Find(&rows).
		Error
	return rows, err
}

// ListAll returns every card including hidden ones, for the admin panel.
func (r *Repository) ListAll(ctx context.Context) ([]models.Card, error) {
	var rows []models.Card
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Find(&rows).
		Error
	return rows, err
}

// Create inserts a new card row.
func (r *Repository) Create(ctx context.Context, card *models.Card) (*models.Card, error) {
	if card.ID == uuid.Nil {
		card.ID = uuid.New()
	}
	if err := r.db.WithContext(ctx).Create(card).Error; err != nil {
		return nil, err
	}
	return card, nil
}

// Update saves an existing card row.
func (r *Repository) Update(ctx context.Context, card *models.Card) (*models.Card, error) {
	if err := r.db.WithContext(ctx).Save(card).Error; err != nil {
		return nil, err
	}
	return card, nil
}

// Delete removes a card by ID.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Card{}).Error
}

// DecrementStock atomically reduces a card's stock, refusing to go negative.
// It reports whether a row was updated.
func (r *Repository) DecrementStock(ctx context.Context, id uuid.UUID, qty int) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&models.Card{}).
		Where("id = ? AND stock_quantity >= ?", id, qty).
		Update("stock_quantity", gorm.Expr("stock_quantity - ?", qty))
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}
