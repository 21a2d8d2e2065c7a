package pricing

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestComputeTotals(t *testing.T) {
	cases := []struct {
		name     string
		subtotal string
		tax      string
		shipping string
		total    string
	}{
		{"below threshold", "40.00", "3.20", "9.99", "53.19"},
		{"above threshold", "60.00", "4.80", "0", "64.80"},
		{"exactly at threshold still ships", "50.00", "4.00", "9.99", "63.99"},
		{"just over threshold", "50.01", "4.00", "0", "54.01"},
		{"empty cart", "0.00", "0.00", "9.99", "9.99"},
		{"tax rounds to cents", "10.55", "0.84", "9.99", "21.38"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			totals := Compute(decimal.RequireFromString(tc.subtotal))

			assert.True(t, totals.Tax.Equal(decimal.RequireFromString(tc.tax)),
				"tax: got %s want %s", totals.Tax, tc.tax)
			assert.True(t, totals.Shipping.Equal(decimal.RequireFromString(tc.shipping)),
				"shipping: got %s want %s", totals.Shipping, tc.shipping)
			assert.True(t, totals.Total.Equal(decimal.RequireFromString(tc.total)),
				"total: got %s want %s", totals.Total, tc.total)
		})
	}
}
