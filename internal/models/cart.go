// internal/models/cart.go
package models

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CartItem is a frozen product snapshot plus a quantity. The snapshot is
// taken at add time so later catalog edits do not reprice a cart.
type CartItem struct {
	ProductID uuid.UUID       `json:"product_id"`
	Name      string          `json:"name"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Image     string          `json:"image,omitempty"`
	Quantity  int             `json:"quantity"`
}

// Cart is an ordered collection of line items, at most one per product id.
// It is not safe for concurrent use; CartService serializes access.
type Cart struct {
	items []CartItem
}

// Add merges quantity into an existing line for the same product, or
// appends a new line. Quantities below 1 are clamped to 1.
func (c *Cart) Add(product *Product, quantity int) {
	if quantity < 1 {
		quantity = 1
	}

	for i := range c.items {
		if c.items[i].ProductID == product.ID {
			c.items[i].Quantity += quantity
			return
		}
	}

	c.items = append(c.items, CartItem{
		ProductID: product.ID,
		Name:      product.Name,
		UnitPrice: product.Price,
		Image:     product.ImageURL(),
		Quantity:  quantity,
	})
}

// SetQuantity replaces the stored quantity, clamping to a minimum of 1.
// It is a no-op when the product is not in the cart.
func (c *Cart) SetQuantity(productID uuid.UUID, quantity int) {
	if quantity < 1 {
		quantity = 1
	}

	for i := range c.items {
		if c.items[i].ProductID == productID {
			c.items[i].Quantity = quantity
			return
		}
	}
}

// Remove deletes the line if present; removing an absent id is a no-op.
func (c *Cart) Remove(productID uuid.UUID) {
	for i := range c.items {
		if c.items[i].ProductID == productID {
			c.items = append(c.items[:i], c.items[i+1:]...)
			return
		}
	}
}

func (c *Cart) Clear() {
	c.items = nil
}

func (c *Cart) IsEmpty() bool {
	return len(c.items) == 0
}

func (c *Cart) Len() int {
	return len(c.items)
}

// Items returns a copy preserving insertion order.
func (c *Cart) Items() []CartItem {
	out := make([]CartItem, len(c.items))
	copy(out, c.items)
	return out
}
