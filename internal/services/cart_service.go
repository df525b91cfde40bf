// internal/services/cart_service.go
package services

import (
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/digivault/shop-backend/internal/models"
	"github.com/digivault/shop-backend/internal/pricing"
)

// CartService keeps one in-memory cart per user. Carts are session-scoped
// working state, not durable data; a restart empties them.
type CartService struct {
	db    *gorm.DB
	mtx   sync.Mutex
	carts map[uuid.UUID]*models.Cart
}

// CartView is the cart plus its live pricing quote, returned to handlers.
type CartView struct {
	Items []models.CartItem `json:"items"`
	Quote pricing.Quote     `json:"quote"`
}

func NewCartService(db *gorm.DB) *CartService {
	return &CartService{
		db:    db,
		carts: make(map[uuid.UUID]*models.Cart),
	}
}

func (s *CartService) cart(userID uuid.UUID) *models.Cart {
	c, ok := s.carts[userID]
	if !ok {
		c = &models.Cart{}
		s.carts[userID] = c
	}
	return c
}

// AddItem snapshots the product into the cart, merging with an existing
// line for the same product. Hidden products cannot be added.
func (s *CartService) AddItem(userID, productID uuid.UUID, quantity int) (*CartView, error) {
	var product models.Product
	if err := s.db.First(&product, productID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("product not found")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	if !product.Visible {
		return nil, errors.New("product not found")
	}

	s.mtx.Lock()
	defer s.mtx.Unlock()

	c := s.cart(userID)
	c.Add(&product, quantity)
	return s.viewLocked(c), nil
}

// UpdateQuantity replaces a line's quantity, clamping below 1 up to 1.
// Updating a product that is not in the cart changes nothing.
func (s *CartService) UpdateQuantity(userID, productID uuid.UUID, quantity int) (*CartView, error) {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	c := s.cart(userID)
	c.SetQuantity(productID, quantity)
	return s.viewLocked(c), nil
}

// RemoveItem deletes a line; removing an absent product is a no-op.
func (s *CartService) RemoveItem(userID, productID uuid.UUID) (*CartView, error) {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	c := s.cart(userID)
	c.Remove(productID)
	return s.viewLocked(c), nil
}

// GetCart returns the current cart contents and quote.
func (s *CartService) GetCart(userID uuid.UUID) *CartView {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	return s.viewLocked(s.cart(userID))
}

// Items returns a snapshot of the cart lines.
func (s *CartService) Items(userID uuid.UUID) []models.CartItem {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	return s.cart(userID).Items()
}

// Clear empties the user's cart. It also satisfies the checkout machine's
// cart-clearer collaborator.
func (s *CartService) Clear(userID uuid.UUID) {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	delete(s.carts, userID)
}

func (s *CartService) viewLocked(c *models.Cart) *CartView {
	items := c.Items()
	return &CartView{
		Items: items,
		Quote: pricing.Calculate(pricing.CartLines(items)),
	}
}
