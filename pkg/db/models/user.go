package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/luckyegg/storefront-backend/pkg/enums"
)

// User is an authenticated account with the binary storefront role.
type User struct {
	ID           uuid.UUID      `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Email        string         `gorm:"column:email;not null;uniqueIndex" json:"email"`
	PasswordHash string         `gorm:"column:password_hash;not null" json:"-"`
	FirstName    *string        `gorm:"column:first_name" json:"first_name,omitempty"`
	LastName     *string        `gorm:"column:last_name" json:"last_name,omitempty"`
	Role         enums.UserRole `gorm:"column:role;not null;default:customer" json:"role"`
	CreatedAt    time.Time      `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time      `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}
