package checkout

import (
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/luckyegg/storefront-backend/internal/pricing"
	pkgerrors "github.com/luckyegg/storefront-backend/pkg/errors"
	"github.com/luckyegg/storefront-backend/pkg/types"
)

// Input is the checkout form payload.
type Input struct {
	Email        string  `json:"email" validate:"required,email"`
	FirstName    string  `json:"first_name" validate:"required"`
	LastName     string  `json:"last_name" validate:"required"`
	Phone        *string `json:"phone,omitempty"`
	AddressLine1 string  `json:"address_line1" validate:"required"`
	AddressLine2 *string `json:"address_line2,omitempty"`
	City         string  `json:"city" validate:"required"`
	State        string  `json:"state" validate:"required"`
	PostalCode   string  `json:"postal_code" validate:"required"`
	Country      string  `json:"country,omitempty"`
	Notes        *string `json:"notes,omitempty"`
}

// Result is returned to the storefront after a successful submission.
type Result struct {
	OrderID     uuid.UUID       `json:"order_id"`
	OrderNumber string          `json:"order_number"`
	Subtotal    decimal.Decimal `json:"subtotal"`
	Tax         decimal.Decimal `json:"tax"`
	Shipping    decimal.Decimal `json:"shipping"`
	Total       decimal.Decimal `json:"total"`
}

func resultFrom(orderID uuid.UUID, orderNumber string, totals pricing.Totals) *Result {
	return &Result{
		OrderID:     orderID,
		OrderNumber: orderNumber,
		Subtotal:    totals.Subtotal,
		Tax:         totals.Tax,
		Shipping:    totals.Shipping,
		Total:       totals.Total,
	}
}

func (in Input) address() types.Address {
	country := strings.TrimSpace(in.Country)
	if country == "" {
		country = "US"
	}
	var line2 string
	if in.AddressLine2 != nil {
		line2 = *in.AddressLine2
	}
	return types.Address{
		Line1:      strings.TrimSpace(in.AddressLine1),
		Line2:      line2,
		City:       strings.TrimSpace(in.City),
		State:      strings.TrimSpace(in.State),
		PostalCode: strings.TrimSpace(in.PostalCode),
		Country:    country,
	}
}

func (in Input) validate() error {
	required := []struct {
		name  string
		value string
	}{
		{"email", in.Email},
		{"first_name", in.FirstName},
		{"last_name", in.LastName},
		{"address_line1", in.AddressLine1},
		{"city", in.City},
		{"state", in.State},
		{"postal_code", in.PostalCode},
	}
	for _, field := range required {
		if strings.TrimSpace(field.value) == "" {
			return pkgerrors.New(pkgerrors.CodeValidation, field.name+" is required")
		}
	}
	return nil
}
