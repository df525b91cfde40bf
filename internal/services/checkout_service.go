// internal/services/checkout_service.go
package services

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/digivault/shop-backend/internal/checkout"
	"github.com/digivault/shop-backend/internal/models"
	"github.com/digivault/shop-backend/internal/pricing"
)

// CheckoutService holds at most one live checkout machine per user. The
// per-user entry doubles as a double-submission guard: a second submit on
// a completed machine fails the step check instead of writing a second
// order.
type CheckoutService struct {
	mtx      sync.Mutex
	machines map[uuid.UUID]*checkout.Machine

	carts         *CartService
	storage       *StorageService
	notifications *NotificationService
	orders        *gormOrderCreator
}

// CheckoutState is the handler-facing snapshot of a machine.
type CheckoutState struct {
	Step    checkout.Step     `json:"step"`
	Items   []models.CartItem `json:"items"`
	Quote   pricing.Quote     `json:"quote"`
	Details checkout.Details  `json:"details"`
}

func NewCheckoutService(db *gorm.DB, carts *CartService, storage *StorageService, notifications *NotificationService) *CheckoutService {
	return &CheckoutService{
		machines:      make(map[uuid.UUID]*checkout.Machine),
		carts:         carts,
		storage:       storage,
		notifications: notifications,
		orders:        &gormOrderCreator{db: db},
	}
}

// Start begins a checkout from the user's current cart, replacing any
// previous in-flight machine. The quote is frozen here.
func (s *CheckoutService) Start(userID uuid.UUID) (*CheckoutState, error) {
	items := s.carts.Items(userID)

	machine, err := checkout.NewMachine(userID, items, s.storage, s.orders, s.carts)
	if err != nil {
		return nil, err
	}

	s.mtx.Lock()
	s.machines[userID] = machine
	s.mtx.Unlock()

	return snapshot(machine), nil
}

func (s *CheckoutService) State(userID uuid.UUID) (*CheckoutState, error) {
	machine, err := s.machine(userID)
	if err != nil {
		return nil, err
	}
	return snapshot(machine), nil
}

func (s *CheckoutService) SubmitDetails(userID uuid.UUID, details checkout.Details) (*CheckoutState, error) {
	machine, err := s.machine(userID)
	if err != nil {
		return nil, err
	}

	if err := machine.SubmitDetails(details); err != nil {
		return nil, err
	}
	return snapshot(machine), nil
}

func (s *CheckoutService) Back(userID uuid.UUID) (*CheckoutState, error) {
	machine, err := s.machine(userID)
	if err != nil {
		return nil, err
	}

	if err := machine.Back(); err != nil {
		return nil, err
	}
	return snapshot(machine), nil
}

// SubmitProof finalizes the checkout. On success the machine is dropped,
// the cart is already cleared, and admins are notified of the new order.
func (s *CheckoutService) SubmitProof(ctx context.Context, userID uuid.UUID, proof checkout.Proof) (*models.Order, error) {
	machine, err := s.machine(userID)
	if err != nil {
		return nil, err
	}

	order, err := machine.SubmitProof(ctx, proof)
	if err != nil {
		return nil, err
	}

	s.mtx.Lock()
	delete(s.machines, userID)
	s.mtx.Unlock()

	s.notifications.NotifyOrderCreated(order)
	return order, nil
}

// Cancel abandons an in-flight checkout. The cart is untouched.
func (s *CheckoutService) Cancel(userID uuid.UUID) {
	s.mtx.Lock()
	delete(s.machines, userID)
	s.mtx.Unlock()
}

func (s *CheckoutService) machine(userID uuid.UUID) (*checkout.Machine, error) {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	machine, ok := s.machines[userID]
	if !ok {
		return nil, fmt.Errorf("no checkout in progress")
	}
	return machine, nil
}

func snapshot(m *checkout.Machine) *CheckoutState {
	return &CheckoutState{
		Step:    m.Step(),
		Items:   m.Items(),
		Quote:   m.Quote(),
		Details: m.Details(),
	}
}

// gormOrderCreator persists the order with its items in one transaction
// and bumps each product's sales counter.
type gormOrderCreator struct {
	db *gorm.DB
}

func (c *gormOrderCreator) CreateOrder(ctx context.Context, order *models.Order) error {
	return c.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(order).Error; err != nil {
			return fmt.Errorf("failed to persist order: %w", err)
		}

		for _, item := range order.Items {
			if err := tx.Model(&models.Product{}).
				Where("id = ?", item.ProductID).
				UpdateColumn("sales_count", gorm.Expr("sales_count + ?", item.Quantity)).Error; err != nil {
				return fmt.Errorf("failed to update sales count: %w", err)
			}
		}

		return nil
	})
}
