// internal/pricing/pricing_test.go
package pricing

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/digivault/shop-backend/internal/models"
)

func d(s string) decimal.Decimal {
	v, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return v
}

func TestCalculateEmpty(t *testing.T) {
	q := Calculate(nil)

	assert.Equal(t, 0, q.TotalQuantity)
	assert.True(t, q.Subtotal.IsZero())
	assert.True(t, q.Discount.IsZero())
	assert.True(t, q.Total.IsZero())
	assert.False(t, q.DiscountEligible())
}

func TestCalculateNoDiscountBelowThreshold(t *testing.T) {
	q := Calculate([]Line{
		{UnitPrice: d("4.50"), Quantity: 2},
		{UnitPrice: d("1.20"), Quantity: 97},
	})

	assert.Equal(t, 99, q.TotalQuantity)
	assert.False(t, q.DiscountEligible())
	assert.True(t, q.Discount.IsZero())
	assert.True(t, q.Total.Equal(q.Subtotal))
}

func TestCalculateBulkDiscountAtThreshold(t *testing.T) {
	// 110 units of a 1.00 product: subtotal 110, 5% off.
	q := Calculate([]Line{
		{UnitPrice: d("1.00"), Quantity: 110},
	})

	assert.Equal(t, 110, q.TotalQuantity)
	assert.True(t, q.DiscountEligible())
	assert.True(t, q.Subtotal.Equal(d("110.00")), "subtotal %s", q.Subtotal)
	assert.True(t, q.Discount.Equal(d("5.50")), "discount %s", q.Discount)
	assert.True(t, q.Total.Equal(d("104.50")), "total %s", q.Total)
}

func TestCalculateThresholdSpansLines(t *testing.T) {
	// 60 + 40 units qualify together even though neither line does alone.
	q := Calculate([]Line{
		{UnitPrice: d("2.00"), Quantity: 60},
		{UnitPrice: d("3.00"), Quantity: 40},
	})

	assert.Equal(t, 100, q.TotalQuantity)
	assert.True(t, q.DiscountEligible())
	assert.True(t, q.Subtotal.Equal(d("240.00")))
	assert.True(t, q.Discount.Equal(d("12.00")))
	assert.True(t, q.Total.Equal(d("228.00")))
}

func TestCalculateExactlyOneBelowThreshold(t *testing.T) {
	q := Calculate([]Line{
		{UnitPrice: d("1.00"), Quantity: BulkDiscountMinQuantity - 1},
	})

	assert.False(t, q.DiscountEligible())
	assert.True(t, q.Discount.IsZero())
}

func TestDiscountNeverExceedsSubtotal(t *testing.T) {
	quotes := []Quote{
		Calculate([]Line{{UnitPrice: d("0.01"), Quantity: 100}}),
		Calculate([]Line{{UnitPrice: d("999.99"), Quantity: 500}}),
		Calculate([]Line{{UnitPrice: d("0"), Quantity: 150}}),
	}

	for _, q := range quotes {
		assert.True(t, q.Discount.LessThanOrEqual(q.Subtotal))
		assert.True(t, q.Total.Equal(q.Subtotal.Sub(q.Discount)))
		assert.False(t, q.Total.IsNegative())
	}
}

func TestEffectiveUnitPriceIdentity(t *testing.T) {
	// For a single-product cart the effective unit price times the quantity
	// reproduces the calculated total exactly.
	price := d("4.50")
	for _, qty := range []int{1, 50, 99, 100, 110, 250} {
		q := Calculate([]Line{{UnitPrice: price, Quantity: qty}})
		effective := EffectiveUnitPrice(price, qty)
		assert.True(t, effective.Mul(decimal.NewFromInt(int64(qty))).Equal(q.Total),
			"qty %d: effective %s total %s", qty, effective, q.Total)
	}
}

func TestEffectiveUnitPriceBelowThresholdUnchanged(t *testing.T) {
	price := d("12.50")
	assert.True(t, EffectiveUnitPrice(price, 99).Equal(price))
	assert.True(t, EffectiveUnitPrice(price, 100).Equal(d("11.875")))
}

func TestOrderLinesReproduceFrozenTotal(t *testing.T) {
	// Repricing a stored order's item snapshot must reproduce the total
	// that was frozen at checkout, discount included.
	cartItems := []models.CartItem{
		{Name: "Fresh Gmail Account", UnitPrice: d("1.20"), Quantity: 60},
		{Name: "Netflix Premium (1 month)", UnitPrice: d("3.80"), Quantity: 50},
	}
	frozen := Calculate(CartLines(cartItems))
	assert.True(t, frozen.DiscountEligible())

	orderItems := make([]models.OrderItem, 0, len(cartItems))
	for _, it := range cartItems {
		orderItems = append(orderItems, models.OrderItem{
			Name:      it.Name,
			UnitPrice: it.UnitPrice,
			Quantity:  it.Quantity,
		})
	}

	replayed := Calculate(OrderLines(orderItems))
	assert.Equal(t, frozen.TotalQuantity, replayed.TotalQuantity)
	assert.True(t, replayed.Subtotal.Equal(frozen.Subtotal))
	assert.True(t, replayed.Discount.Equal(frozen.Discount))
	assert.True(t, replayed.Total.Equal(frozen.Total))
}

func TestFormatTotalBankTransfer(t *testing.T) {
	out := FormatTotal(d("104.50"), "bank_transfer", d("1500"))
	assert.Equal(t, "₦104.50", out)
}

func TestFormatTotalCryptoRoundsUp(t *testing.T) {
	// 104.50 / 1500 = 0.0696..., rounded up to a whole unit.
	out := FormatTotal(d("104.50"), "crypto", d("1500"))
	assert.Equal(t, "$1", out)

	// Exact multiples do not round up further.
	out = FormatTotal(d("3000"), "crypto", d("1500"))
	assert.Equal(t, "$2", out)
}
