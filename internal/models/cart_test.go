// internal/models/cart_test.go
package models

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func testProduct(name string, price string) *Product {
	p, _ := decimal.NewFromString(price)
	return &Product{
		BaseModel: BaseModel{ID: uuid.New()},
		Name:      name,
		Price:     p,
	}
}

func TestCartAddNewLine(t *testing.T) {
	var cart Cart
	p := testProduct("Fresh Gmail Account", "1.20")

	cart.Add(p, 3)

	items := cart.Items()
	assert.Len(t, items, 1)
	assert.Equal(t, p.ID, items[0].ProductID)
	assert.Equal(t, 3, items[0].Quantity)
	assert.True(t, items[0].UnitPrice.Equal(p.Price))
}

func TestCartAddMergesSameProduct(t *testing.T) {
	var cart Cart
	p := testProduct("Fresh Gmail Account", "1.20")

	cart.Add(p, 2)
	cart.Add(p, 5)

	items := cart.Items()
	assert.Len(t, items, 1, "same product must merge into one line")
	assert.Equal(t, 7, items[0].Quantity)
}

func TestCartAddClampsQuantity(t *testing.T) {
	var cart Cart
	p := testProduct("Netflix Premium (1 month)", "3.80")

	cart.Add(p, 0)
	assert.Equal(t, 1, cart.Items()[0].Quantity)

	cart.Add(p, -10)
	assert.Equal(t, 2, cart.Items()[0].Quantity)
}

func TestCartPreservesInsertionOrder(t *testing.T) {
	var cart Cart
	a := testProduct("A", "1.00")
	b := testProduct("B", "2.00")
	c := testProduct("C", "3.00")

	cart.Add(a, 1)
	cart.Add(b, 1)
	cart.Add(c, 1)
	cart.Add(b, 1) // merge must not reorder

	items := cart.Items()
	assert.Equal(t, []string{"A", "B", "C"}, []string{items[0].Name, items[1].Name, items[2].Name})
}

func TestCartSetQuantity(t *testing.T) {
	var cart Cart
	p := testProduct("A", "1.00")
	cart.Add(p, 5)

	cart.SetQuantity(p.ID, 2)
	assert.Equal(t, 2, cart.Items()[0].Quantity)

	// Clamps below 1
	cart.SetQuantity(p.ID, 0)
	assert.Equal(t, 1, cart.Items()[0].Quantity)

	// Absent product is a no-op
	cart.SetQuantity(uuid.New(), 9)
	assert.Len(t, cart.Items(), 1)
	assert.Equal(t, 1, cart.Items()[0].Quantity)
}

func TestCartRemoveIdempotent(t *testing.T) {
	var cart Cart
	a := testProduct("A", "1.00")
	b := testProduct("B", "2.00")
	cart.Add(a, 1)
	cart.Add(b, 1)

	cart.Remove(a.ID)
	assert.Equal(t, 1, cart.Len())

	cart.Remove(a.ID)
	assert.Equal(t, 1, cart.Len())

	cart.Remove(uuid.New())
	assert.Equal(t, 1, cart.Len())
	assert.Equal(t, "B", cart.Items()[0].Name)
}

func TestCartClear(t *testing.T) {
	var cart Cart
	cart.Add(testProduct("A", "1.00"), 1)

	assert.False(t, cart.IsEmpty())
	cart.Clear()
	assert.True(t, cart.IsEmpty())
	assert.Equal(t, 0, cart.Len())
}

func TestCartItemsReturnsCopy(t *testing.T) {
	var cart Cart
	p := testProduct("A", "1.00")
	cart.Add(p, 1)

	items := cart.Items()
	items[0].Quantity = 99

	assert.Equal(t, 1, cart.Items()[0].Quantity)
}

func TestCartSnapshotPriceFrozenAtAddTime(t *testing.T) {
	var cart Cart
	p := testProduct("A", "1.00")
	cart.Add(p, 1)

	// Catalog price change after adding must not reprice the line.
	p.Price = decimal.NewFromInt(100)

	assert.True(t, cart.Items()[0].UnitPrice.Equal(decimal.NewFromInt(1)))
}
