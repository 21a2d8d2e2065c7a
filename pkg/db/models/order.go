package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/luckyegg/storefront-backend/pkg/enums"
	"github.com/luckyegg/storefront-backend/pkg/types"
)

// Order is a placed order with its computed totals and both addresses.
type Order struct {
	ID              uuid.UUID           `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	CustomerID      uuid.UUID           `gorm:"column:customer_id;type:uuid;not null" json:"customer_id"`
	OrderNumber     string              `gorm:"column:order_number;not null;uniqueIndex" json:"order_number"`
	Status          enums.OrderStatus   `gorm:"column:status;not null" json:"status"`
	PaymentStatus   enums.PaymentStatus `gorm:"column:payment_status;not null" json:"payment_status"`
	Subtotal        decimal.Decimal     `gorm:"column:subtotal;type:numeric(10,2);not null" json:"subtotal"`
	TaxAmount       decimal.Decimal     `gorm:"column:tax_amount;type:numeric(10,2);not null" json:"tax_amount"`
	ShippingAmount  decimal.Decimal     `gorm:"column:shipping_amount;type:numeric(10,2);not null" json:"shipping_amount"`
	TotalAmount     decimal.Decimal     `gorm:"column:total_amount;type:numeric(10,2);not null" json:"total_amount"`
	Currency        string              `gorm:"column:currency;not null;default:USD" json:"currency"`
	PaymentMethod   *string             `gorm:"column:payment_method" json:"payment_method,omitempty"`
	BillingAddress  types.Address       `gorm:"column:billing_address;type:jsonb" json:"billing_address"`
	ShippingAddress types.Address       `gorm:"column:shipping_address;type:jsonb" json:"shipping_address"`
	Notes           *string             `gorm:"column:notes" json:"notes,omitempty"`
	Items           []OrderItem         `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items"`
	CreatedAt       time.Time           `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time           `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}
