// Package pricing derives cart totals. Every function here is total and pure.
package pricing

import (
	"github.com/shopspring/decimal"

	"storefront/models"
)

var (
	// FreeShippingThreshold is the subtotal that must be exceeded for free shipping.
	FreeShippingThreshold = decimal.NewFromInt(500)
	// FlatShippingFee applies to every order at or below the threshold.
	FlatShippingFee = decimal.NewFromInt(50)
	// TaxRate is charged on the subtotal.
	TaxRate = decimal.RequireFromString("0.15")
)

// Breakdown is the full set of derived amounts for a cart
type Breakdown struct {
	Subtotal     decimal.Decimal `json:"subtotal"`
	ShippingFee  decimal.Decimal `json:"shippingFee"`
	Tax          decimal.Decimal `json:"tax"`
	GrandTotal   decimal.Decimal `json:"grandTotal"`
	FreeShipping bool            `json:"freeShipping"`
}

// Subtotal sums unit price times quantity over the items.
func Subtotal(items []models.LineItem) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.LineTotal())
	}
	return total
}

// QualifiesForFreeShipping reports whether the subtotal is strictly above the threshold.
func QualifiesForFreeShipping(subtotal decimal.Decimal) bool {
	return subtotal.GreaterThan(FreeShippingThreshold)
}

func ShippingFee(subtotal decimal.Decimal) decimal.Decimal {
	if QualifiesForFreeShipping(subtotal) {
		return decimal.Zero
	}
	return FlatShippingFee
}

func Tax(subtotal decimal.Decimal) decimal.Decimal {
	return subtotal.Mul(TaxRate).Round(2)
}

func GrandTotal(subtotal decimal.Decimal) decimal.Decimal {
	return subtotal.Add(ShippingFee(subtotal)).Add(Tax(subtotal)).Round(2)
}

// Calculate derives every amount for the given items.
func Calculate(items []models.LineItem) Breakdown {
	subtotal := Subtotal(items)
	return Breakdown{
		Subtotal:     subtotal,
		ShippingFee:  ShippingFee(subtotal),
		Tax:          Tax(subtotal),
		GrandTotal:   GrandTotal(subtotal),
		FreeShipping: QualifiesForFreeShipping(subtotal),
	}
}
