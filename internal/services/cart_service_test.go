// internal/services/cart_service_test.go
package services

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/digivault/shop-backend/internal/models"
)

// The memory-only paths need no database; AddItem is exercised through
// the checkout flow tests instead.
func seedCart(s *CartService, userID uuid.UUID, name string, price string, qty int) uuid.UUID {
	product := &models.Product{
		BaseModel: models.BaseModel{ID: uuid.New()},
		Name:      name,
		Price:     decimal.RequireFromString(price),
	}

	s.mtx.Lock()
	s.cart(userID).Add(product, qty)
	s.mtx.Unlock()
	return product.ID
}

func TestCartServiceGetCartEmptyQuote(t *testing.T) {
	s := NewCartService(nil)
	view := s.GetCart(uuid.New())

	assert.Empty(t, view.Items)
	assert.Equal(t, 0, view.Quote.TotalQuantity)
	assert.True(t, view.Quote.Total.IsZero())
}

func TestCartServiceQuoteTracksContents(t *testing.T) {
	s := NewCartService(nil)
	userID := uuid.New()
	productID := seedCart(s, userID, "Fresh Gmail Account", "1.20", 2)

	view := s.GetCart(userID)
	assert.Len(t, view.Items, 1)
	assert.True(t, view.Quote.Total.Equal(decimal.RequireFromString("2.40")))

	view, err := s.UpdateQuantity(userID, productID, 110)
	assert.NoError(t, err)
	assert.Equal(t, 110, view.Quote.TotalQuantity)
	assert.True(t, view.Quote.DiscountEligible())
	// 110 * 1.20 = 132.00, minus 5%
	assert.True(t, view.Quote.Total.Equal(decimal.RequireFromString("125.40")), "total %s", view.Quote.Total)
}

func TestCartServiceUpdateAbsentProductNoOp(t *testing.T) {
	s := NewCartService(nil)
	userID := uuid.New()
	seedCart(s, userID, "A", "1.00", 1)

	view, err := s.UpdateQuantity(userID, uuid.New(), 50)
	assert.NoError(t, err)
	assert.Len(t, view.Items, 1)
	assert.Equal(t, 1, view.Items[0].Quantity)
}

func TestCartServiceRemoveAndClear(t *testing.T) {
	s := NewCartService(nil)
	userID := uuid.New()
	a := seedCart(s, userID, "A", "1.00", 1)
	seedCart(s, userID, "B", "2.00", 1)

	view, err := s.RemoveItem(userID, a)
	assert.NoError(t, err)
	assert.Len(t, view.Items, 1)
	assert.Equal(t, "B", view.Items[0].Name)

	s.Clear(userID)
	assert.Empty(t, s.Items(userID))
}

func TestCartServiceCartsAreIsolatedPerUser(t *testing.T) {
	s := NewCartService(nil)
	alice := uuid.New()
	bob := uuid.New()

	seedCart(s, alice, "A", "1.00", 1)

	assert.Len(t, s.Items(alice), 1)
	assert.Empty(t, s.Items(bob))

	s.Clear(alice)
	assert.Empty(t, s.Items(alice))
}
