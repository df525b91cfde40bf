// internal/pricing/pricing.go
package pricing

import (
	"github.com/shopspring/decimal"

	"github.com/digivault/shop-backend/internal/models"
)

// Bulk discount: 5% off the subtotal once the cart holds 100 units or more.
const BulkDiscountMinQuantity = 100

var (
	bulkDiscountRate = decimal.NewFromFloat(0.05)
	one              = decimal.NewFromInt(1)
)

// Line is a unit price and a quantity; Calculate needs nothing else.
type Line struct {
	UnitPrice decimal.Decimal
	Quantity  int
}

// Quote is the priced result of a line collection. Subtotal, Discount and
// Total carry full precision; rounding to 2 places happens only at display.
type Quote struct {
	TotalQuantity int             `json:"total_quantity"`
	Subtotal      decimal.Decimal `json:"subtotal"`
	Discount      decimal.Decimal `json:"discount"`
	Total         decimal.Decimal `json:"total"`
}

func (q Quote) DiscountEligible() bool {
	return q.TotalQuantity >= BulkDiscountMinQuantity
}

// Calculate prices an ordered collection of lines. It is total: empty input
// yields a zero quote.
func Calculate(lines []Line) Quote {
	q := Quote{
		Subtotal: decimal.Zero,
		Discount: decimal.Zero,
		Total:    decimal.Zero,
	}

	for _, l := range lines {
		q.TotalQuantity += l.Quantity
		q.Subtotal = q.Subtotal.Add(l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity))))
	}

	if q.TotalQuantity >= BulkDiscountMinQuantity {
		q.Discount = q.Subtotal.Mul(bulkDiscountRate)
	}

	q.Total = q.Subtotal.Sub(q.Discount)
	return q
}

// CartLines converts cart items into pricing lines, preserving order.
func CartLines(items []models.CartItem) []Line {
	lines := make([]Line, 0, len(items))
	for _, it := range items {
		lines = append(lines, Line{UnitPrice: it.UnitPrice, Quantity: it.Quantity})
	}
	return lines
}

// OrderLines prices a stored order snapshot.
func OrderLines(items []models.OrderItem) []Line {
	lines := make([]Line, 0, len(items))
	for _, it := range items {
		lines = append(lines, Line{UnitPrice: it.UnitPrice, Quantity: it.Quantity})
	}
	return lines
}

// EffectiveUnitPrice is the per-unit price after any bulk discount for the
// given total quantity. For a single-product cart,
// EffectiveUnitPrice(p, q) * q equals Calculate's Total exactly.
func EffectiveUnitPrice(unitPrice decimal.Decimal, totalQuantity int) decimal.Decimal {
	if totalQuantity >= BulkDiscountMinQuantity {
		return unitPrice.Mul(one.Sub(bulkDiscountRate))
	}
	return unitPrice
}
