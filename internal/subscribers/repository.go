package subscribers

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/luckyegg/storefront-backend/pkg/db/models"
)

// Repository persists newsletter signups.
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a signup. The unique index on email surfaces duplicates.
func (r *Repository) Create(ctx context.Context, subscriber *models.EmailSubscriber) (*models.EmailSubscriber, error) {
	if subscriber.ID == uuid.Nil {
		subscriber.ID = uuid.New()
	}
	if err := r.db.WithContext(ctx).Create(subscriber).Error; err != nil {
		return nil, err
	}
	return subscriber, nil
}

// List returns all subscribers newest first.
func (r *Repository) List(ctx context.Context) ([]models.EmailSubscriber, error) {
	var rows []models.EmailSubscriber
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Find(&rows).
		Error
	return rows, err
}

// Delete removes a subscriber by ID.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.EmailSubscriber{}).Error
}
