// internal/checkout/machine.go
package checkout

import (
	"context"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/digivault/shop-backend/internal/models"
	"github.com/digivault/shop-backend/internal/pricing"
)

type Step string

const (
	StepDetails   Step = "details"
	StepProof     Step = "proof"
	StepCompleted Step = "completed"
)

var (
	ErrEmptyCart      = errors.New("cart is empty")
	ErrWrongStep      = errors.New("action not allowed in current step")
	ErrInvalidDetails = errors.New("invalid checkout details")
	ErrInvalidProof   = errors.New("invalid payment proof")
)

// Details holds the first checkout step. Phone is normalized to digits on
// submission; the original input is never rejected for formatting alone.
type Details struct {
	PaymentMethod models.PaymentMethod `json:"payment_method"`
	FullName      string               `json:"full_name"`
	Phone         string               `json:"phone"`
	DeliveryEmail string               `json:"delivery_email"`
	AcceptTerms   bool                 `json:"accept_terms"`
}

// Proof holds the second checkout step: a transaction reference and the
// proof-of-payment file to upload.
type Proof struct {
	TransactionRef string
	Filename       string
	File           io.Reader
}

// BlobStore uploads a proof file and returns its public URL.
type BlobStore interface {
	UploadProof(ctx context.Context, filename string, file io.Reader) (string, error)
}

// OrderCreator persists a finalized order.
type OrderCreator interface {
	CreateOrder(ctx context.Context, order *models.Order) error
}

// CartClearer empties the user's cart after a successful submission.
type CartClearer interface {
	Clear(userID uuid.UUID)
}

// Machine walks one user's cart snapshot through details -> proof ->
// completed. The pricing quote is frozen at construction; catalog or cart
// changes made while checking out do not reprice the order.
//
// All methods serialize on an internal lock, held across the proof upload
// and order insert. Concurrent submissions from the same user therefore
// queue, and whichever runs second fails the step guard instead of
// creating a duplicate order.
type Machine struct {
	mu      sync.Mutex
	userID  uuid.UUID
	items   []models.CartItem
	quote   pricing.Quote
	step    Step
	details Details

	blobs  BlobStore
	orders OrderCreator
	carts  CartClearer
}

func NewMachine(userID uuid.UUID, items []models.CartItem, blobs BlobStore, orders OrderCreator, carts CartClearer) (*Machine, error) {
	if len(items) == 0 {
		return nil, ErrEmptyCart
	}

	snapshot := make([]models.CartItem, len(items))
	copy(snapshot, items)

	return &Machine{
		userID: userID,
		items:  snapshot,
		quote:  pricing.Calculate(pricing.CartLines(snapshot)),
		step:   StepDetails,
		blobs:  blobs,
		orders: orders,
		carts:  carts,
	}, nil
}

func (m *Machine) Step() Step {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.step
}

// Quote and Items are frozen at construction and need no lock.
func (m *Machine) Quote() pricing.Quote { return m.quote }

func (m *Machine) Details() Details {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.details
}

func (m *Machine) Items() []models.CartItem {
	out := make([]models.CartItem, len(m.items))
	copy(out, m.items)
	return out
}

var (
	nonDigits    = regexp.MustCompile(`\D`)
	emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[A-Za-z]{2,}$`)
)

// NormalizePhone strips every non-digit character from the input.
func NormalizePhone(raw string) string {
	return nonDigits.ReplaceAllString(raw, "")
}

// Validate checks the details-step predicate. Phone must already be
// normalized. The first failing field is reported.
func (d *Details) Validate() error {
	if !d.PaymentMethod.Valid() {
		return fmt.Errorf("%w: payment method must be chosen", ErrInvalidDetails)
	}
	if strings.TrimSpace(d.FullName) == "" {
		return fmt.Errorf("%w: full name is required", ErrInvalidDetails)
	}
	if len(d.Phone) != 11 {
		return fmt.Errorf("%w: phone number must be exactly 11 digits", ErrInvalidDetails)
	}
	if !emailPattern.MatchString(d.DeliveryEmail) {
		return fmt.Errorf("%w: delivery email is not a valid address", ErrInvalidDetails)
	}
	if !d.AcceptTerms {
		return fmt.Errorf("%w: terms must be accepted", ErrInvalidDetails)
	}
	return nil
}

// SubmitDetails advances details -> proof when the guard predicate holds.
// A failed guard leaves the machine unchanged.
func (m *Machine) SubmitDetails(d Details) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.step != StepDetails {
		return ErrWrongStep
	}

	d.Phone = NormalizePhone(d.Phone)
	if err := d.Validate(); err != nil {
		return err
	}

	m.details = d
	m.step = StepProof
	return nil
}

// Back returns from the proof step to details, preserving entered values.
func (m *Machine) Back() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.step != StepProof {
		return ErrWrongStep
	}
	m.step = StepDetails
	return nil
}

// SubmitProof finalizes the checkout: upload the proof, persist the order
// with the frozen total, clear the cart. Upload or persistence failure
// leaves the machine in the proof step so the user can retry. The lock is
// held for the whole submission so a concurrent second submit waits and
// then fails the step guard rather than placing a duplicate order.
func (m *Machine) SubmitProof(ctx context.Context, p Proof) (*models.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.step != StepProof {
		return nil, ErrWrongStep
	}

	if strings.TrimSpace(p.TransactionRef) == "" {
		return nil, fmt.Errorf("%w: transaction reference is required", ErrInvalidProof)
	}
	if p.File == nil || p.Filename == "" {
		return nil, fmt.Errorf("%w: proof of payment file is required", ErrInvalidProof)
	}

	proofURL, err := m.blobs.UploadProof(ctx, p.Filename, p.File)
	if err != nil {
		return nil, fmt.Errorf("failed to upload payment proof: %w", err)
	}

	order := &models.Order{
		UserID:         m.userID,
		Total:          m.quote.Total,
		Status:         models.OrderStatusPending,
		FullName:       m.details.FullName,
		Phone:          m.details.Phone,
		DeliveryEmail:  m.details.DeliveryEmail,
		PaymentMethod:  m.details.PaymentMethod,
		TransactionRef: strings.TrimSpace(p.TransactionRef),
		ProofURL:       proofURL,
	}
	for _, it := range m.items {
		order.Items = append(order.Items, models.OrderItem{
			ProductID: it.ProductID,
			Name:      it.Name,
			UnitPrice: it.UnitPrice,
			Quantity:  it.Quantity,
		})
	}

	if err := m.orders.CreateOrder(ctx, order); err != nil {
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	m.carts.Clear(m.userID)
	m.step = StepCompleted
	return order, nil
}
