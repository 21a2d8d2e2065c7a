package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderItem is one purchased line on an order.
type OrderItem struct {
	ID         uuid.UUID       `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	OrderID    uuid.UUID       `gorm:"column:order_id;type:uuid;not null" json:"order_id"`
	CardID     uuid.UUID       `gorm:"column:card_id;type:uuid;not null" json:"card_id"`
	Quantity   int             `gorm:"column:quantity;not null" json:"quantity"`
	UnitPrice  decimal.Decimal `gorm:"column:unit_price;type:numeric(10,2);not null" json:"unit_price"`
	TotalPrice decimal.Decimal `gorm:"column:total_price;type:numeric(10,2);not null" json:"total_price"`
	CreatedAt  time.Time       `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}
