package pricing

import "github.com/shopspring/decimal"

var (
	// TaxRate is the flat rate applied to every order's subtotal.
	TaxRate = decimal.RequireFromString("0.08")

	// FreeShippingThreshold is the subtotal above which shipping is waived.
	FreeShippingThreshold = decimal.RequireFromString("50.00")

	// FlatShipping is charged when the threshold is not met.
	FlatShipping = decimal.RequireFromString("9.99")
)

// Totals is the money breakdown for one order.
type Totals struct {
	Subtotal decimal.Decimal `json:"subtotal"`
	Tax      decimal.Decimal `json:"tax"`
	Shipping decimal.Decimal `json:"shipping"`
	Total    decimal.Decimal `json:"total"`
}

// Compute derives tax, shipping, and grand total from a subtotal. Tax is
// rounded to cents; shipping is free strictly above the threshold.
func Compute(subtotal decimal.Decimal) Totals {
	tax := subtotal.Mul(TaxRate).Round(2)

	shipping := FlatShipping
	if subtotal.GreaterThan(FreeShippingThreshold) {
		shipping = decimal.Zero
	}

	return Totals{
		Subtotal: subtotal.Round(2),
		Tax:      tax,
		Shipping: shipping,
		Total:    subtotal.Add(tax).Add(shipping).Round(2),
	}
}
