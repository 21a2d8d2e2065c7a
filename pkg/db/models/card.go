package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/luckyegg/storefront-backend/pkg/enums"
)

// Card is one sellable listing pulled on a livestream.
type Card struct {
	ID            uuid.UUID        `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Name          string           `gorm:"column:name;not null" json:"name"`
	Price         decimal.Decimal  `gorm:"column:price;type:numeric(10,2);not null" json:"price"`
	OriginalPrice *decimal.Decimal `gorm:"column:original_price;type:numeric(10,2)" json:"original_price,omitempty"`
	ImageURL      string           `gorm:"column:image_url" json:"image_url"`
	Rarity        enums.Rarity     `gorm:"column:rarity;not null" json:"rarity"`
	Condition     enums.Condition  `gorm:"column:condition;not null" json:"condition"`
	StockQuantity int              `gorm:"column:stock_quantity;not null;default:0" json:"stock_quantity"`
	VideoEpisode  *string          `gorm:"column:video_episode" json:"video_episode,omitempty"`
	PullDate      *time.Time       `gorm:"column:pull_date" json:"pull_date,omitempty"`
	SetName       *string          `gorm:"column:set_name" json:"set_name,omitempty"`
	CardNumber    *string          `gorm:"column:card_number" json:"card_number,omitempty"`
	Description   *string          `gorm:"column:description" json:"description,omitempty"`
	IsFeatured    bool             `gorm:"column:is_featured;not null;default:false" json:"is_featured"`
	IsActive      bool             `gorm:"column:is_active;not null;default:true" json:"is_active"`
	CreatedAt     time.Time        `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time        `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}
