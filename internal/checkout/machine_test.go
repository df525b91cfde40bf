// internal/checkout/machine_test.go
package checkout

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/digivault/shop-backend/internal/models"
)

type fakeBlobStore struct {
	uploads int
	fail    bool
	delay   time.Duration
}

func (f *fakeBlobStore) UploadProof(ctx context.Context, filename string, file io.Reader) (string, error) {
	f.uploads++
	if f.delay > 0 {
		time.Sleep(f.delay)
	}
	if f.fail {
		return "", errors.New("s3 unavailable")
	}
	return "https://cdn.test/proofs/" + filename, nil
}

type fakeOrderCreator struct {
	created []*models.Order
	fail    bool
}

func (f *fakeOrderCreator) CreateOrder(ctx context.Context, order *models.Order) error {
	if f.fail {
		return errors.New("db down")
	}
	f.created = append(f.created, order)
	return nil
}

type fakeCartClearer struct {
	cleared []uuid.UUID
}

func (f *fakeCartClearer) Clear(userID uuid.UUID) {
	f.cleared = append(f.cleared, userID)
}

func testItems() []models.CartItem {
	return []models.CartItem{
		{ProductID: uuid.New(), Name: "Fresh Gmail Account", UnitPrice: decimal.RequireFromString("1.20"), Quantity: 2},
		{ProductID: uuid.New(), Name: "Netflix Premium (1 month)", UnitPrice: decimal.RequireFromString("3.80"), Quantity: 1},
	}
}

func validDetails() Details {
	return Details{
		PaymentMethod: models.PaymentMethodTransfer,
		FullName:      "Ada Obi",
		Phone:         "08012345678",
		DeliveryEmail: "ada@example.com",
		AcceptTerms:   true,
	}
}

func newTestMachine(t *testing.T) (*Machine, *fakeBlobStore, *fakeOrderCreator, *fakeCartClearer) {
	t.Helper()
	blobs := &fakeBlobStore{}
	orders := &fakeOrderCreator{}
	carts := &fakeCartClearer{}
	m, err := NewMachine(uuid.New(), testItems(), blobs, orders, carts)
	require.NoError(t, err)
	return m, blobs, orders, carts
}

func TestNewMachineEmptyCart(t *testing.T) {
	_, err := NewMachine(uuid.New(), nil, &fakeBlobStore{}, &fakeOrderCreator{}, &fakeCartClearer{})
	assert.ErrorIs(t, err, ErrEmptyCart)
}

func TestNewMachineStartsAtDetailsWithFrozenQuote(t *testing.T) {
	m, _, _, _ := newTestMachine(t)

	assert.Equal(t, StepDetails, m.Step())
	assert.Equal(t, 3, m.Quote().TotalQuantity)
	assert.True(t, m.Quote().Total.Equal(decimal.RequireFromString("6.20")))
}

func TestNormalizePhoneStripsNonDigits(t *testing.T) {
	assert.Equal(t, "08012345678", NormalizePhone("0801-234-5678"))
	assert.Equal(t, "08012345678", NormalizePhone("  0801 234 5678 "))
	assert.Equal(t, "2348012345678", NormalizePhone("+234 (801) 234-5678"))
	assert.Equal(t, "", NormalizePhone("no digits"))
}

func TestSubmitDetailsAcceptsFormattedPhone(t *testing.T) {
	m, _, _, _ := newTestMachine(t)

	d := validDetails()
	d.Phone = "0801-234-5678" // normalizes to 11 digits

	require.NoError(t, m.SubmitDetails(d))
	assert.Equal(t, StepProof, m.Step())
	assert.Equal(t, "08012345678", m.Details().Phone)
}

func TestSubmitDetailsRejectsShortPhone(t *testing.T) {
	m, _, _, _ := newTestMachine(t)

	d := validDetails()
	d.Phone = "12345"

	err := m.SubmitDetails(d)
	assert.ErrorIs(t, err, ErrInvalidDetails)
	assert.Equal(t, StepDetails, m.Step(), "failed guard must not advance")
	assert.Equal(t, Details{}, m.Details(), "failed guard must not store details")
}

func TestSubmitDetailsFieldGuards(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Details)
	}{
		{"missing payment method", func(d *Details) { d.PaymentMethod = "" }},
		{"unknown payment method", func(d *Details) { d.PaymentMethod = "cash" }},
		{"blank name", func(d *Details) { d.FullName = "   " }},
		{"phone too long", func(d *Details) { d.Phone = "080123456789" }},
		{"bad email", func(d *Details) { d.DeliveryEmail = "not-an-email" }},
		{"email without tld", func(d *Details) { d.DeliveryEmail = "a@b" }},
		{"terms not accepted", func(d *Details) { d.AcceptTerms = false }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			m, _, _, _ := newTestMachine(t)
			d := validDetails()
			tc.mutate(&d)

			err := m.SubmitDetails(d)
			assert.ErrorIs(t, err, ErrInvalidDetails)
			assert.Equal(t, StepDetails, m.Step())
		})
	}
}

func TestBackPreservesDetails(t *testing.T) {
	m, _, _, _ := newTestMachine(t)
	require.NoError(t, m.SubmitDetails(validDetails()))

	require.NoError(t, m.Back())
	assert.Equal(t, StepDetails, m.Step())
	assert.Equal(t, "Ada Obi", m.Details().FullName, "going back keeps entered values")

	// And the step can be resubmitted.
	require.NoError(t, m.SubmitDetails(validDetails()))
	assert.Equal(t, StepProof, m.Step())
}

func TestBackOnlyFromProof(t *testing.T) {
	m, _, _, _ := newTestMachine(t)
	assert.ErrorIs(t, m.Back(), ErrWrongStep)
}

func TestSubmitProofHappyPath(t *testing.T) {
	m, blobs, orders, carts := newTestMachine(t)
	userID := uuid.New()
	m, err := NewMachine(userID, testItems(), blobs, orders, carts)
	require.NoError(t, err)
	require.NoError(t, m.SubmitDetails(validDetails()))

	order, err := m.SubmitProof(context.Background(), Proof{
		TransactionRef: " TRX-001 ",
		Filename:       "receipt.png",
		File:           strings.NewReader("png bytes"),
	})
	require.NoError(t, err)

	assert.Equal(t, StepCompleted, m.Step())
	assert.Equal(t, models.OrderStatusPending, order.Status)
	assert.Equal(t, userID, order.UserID)
	assert.Equal(t, "TRX-001", order.TransactionRef)
	assert.Equal(t, "https://cdn.test/proofs/receipt.png", order.ProofURL)
	assert.True(t, order.Total.Equal(decimal.RequireFromString("6.20")), "order carries the frozen total")
	assert.Len(t, order.Items, 2)

	require.Len(t, orders.created, 1)
	assert.Equal(t, []uuid.UUID{userID}, carts.cleared)
}

func TestSubmitProofRequiresRefAndFile(t *testing.T) {
	m, _, orders, carts := newTestMachine(t)
	require.NoError(t, m.SubmitDetails(validDetails()))

	_, err := m.SubmitProof(context.Background(), Proof{TransactionRef: "  ", Filename: "r.png", File: strings.NewReader("x")})
	assert.ErrorIs(t, err, ErrInvalidProof)

	_, err = m.SubmitProof(context.Background(), Proof{TransactionRef: "TRX", Filename: "", File: nil})
	assert.ErrorIs(t, err, ErrInvalidProof)

	assert.Equal(t, StepProof, m.Step())
	assert.Empty(t, orders.created)
	assert.Empty(t, carts.cleared)
}

func TestSubmitProofUploadFailureStaysInProof(t *testing.T) {
	blobs := &fakeBlobStore{fail: true}
	orders := &fakeOrderCreator{}
	carts := &fakeCartClearer{}
	m, err := NewMachine(uuid.New(), testItems(), blobs, orders, carts)
	require.NoError(t, err)
	require.NoError(t, m.SubmitDetails(validDetails()))

	_, err = m.SubmitProof(context.Background(), Proof{
		TransactionRef: "TRX-001",
		Filename:       "receipt.png",
		File:           strings.NewReader("png bytes"),
	})
	require.Error(t, err)

	assert.Equal(t, StepProof, m.Step(), "upload failure must allow retry")
	assert.Empty(t, orders.created)
	assert.Empty(t, carts.cleared)

	// Retry succeeds once the store recovers.
	blobs.fail = false
	_, err = m.SubmitProof(context.Background(), Proof{
		TransactionRef: "TRX-001",
		Filename:       "receipt.png",
		File:           strings.NewReader("png bytes"),
	})
	require.NoError(t, err)
	assert.Equal(t, StepCompleted, m.Step())
}

func TestSubmitProofPersistFailureKeepsCart(t *testing.T) {
	blobs := &fakeBlobStore{}
	orders := &fakeOrderCreator{fail: true}
	carts := &fakeCartClearer{}
	m, err := NewMachine(uuid.New(), testItems(), blobs, orders, carts)
	require.NoError(t, err)
	require.NoError(t, m.SubmitDetails(validDetails()))

	_, err = m.SubmitProof(context.Background(), Proof{
		TransactionRef: "TRX-001",
		Filename:       "receipt.png",
		File:           strings.NewReader("png bytes"),
	})
	require.Error(t, err)
	assert.Equal(t, StepProof, m.Step())
	assert.Empty(t, carts.cleared)
}

func TestCompletedMachineRejectsFurtherSubmissions(t *testing.T) {
	m, _, orders, _ := newTestMachine(t)
	require.NoError(t, m.SubmitDetails(validDetails()))
	_, err := m.SubmitProof(context.Background(), Proof{
		TransactionRef: "TRX-001",
		Filename:       "receipt.png",
		File:           strings.NewReader("png bytes"),
	})
	require.NoError(t, err)

	_, err = m.SubmitProof(context.Background(), Proof{
		TransactionRef: "TRX-002",
		Filename:       "receipt2.png",
		File:           strings.NewReader("png bytes"),
	})
	assert.ErrorIs(t, err, ErrWrongStep, "double submission must not create a second order")
	assert.Len(t, orders.created, 1)

	assert.ErrorIs(t, m.SubmitDetails(validDetails()), ErrWrongStep)
	assert.ErrorIs(t, m.Back(), ErrWrongStep)
}

func TestConcurrentSubmitProofPlacesOneOrder(t *testing.T) {
	// A slow upload widens the window: both submissions arrive while the
	// machine is in the proof step, but the lock held across the upload
	// means the second one waits and then fails the step guard.
	blobs := &fakeBlobStore{delay: 50 * time.Millisecond}
	orders := &fakeOrderCreator{}
	carts := &fakeCartClearer{}
	m, err := NewMachine(uuid.New(), testItems(), blobs, orders, carts)
	require.NoError(t, err)
	require.NoError(t, m.SubmitDetails(validDetails()))

	errs := make([]error, 2)
	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = m.SubmitProof(context.Background(), Proof{
				TransactionRef: fmt.Sprintf("TRX-%d", i),
				Filename:       "receipt.png",
				File:           strings.NewReader("png bytes"),
			})
		}(i)
	}
	wg.Wait()

	var succeeded, rejected int
	for _, err := range errs {
		switch {
		case err == nil:
			succeeded++
		case errors.Is(err, ErrWrongStep):
			rejected++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	assert.Equal(t, 1, succeeded)
	assert.Equal(t, 1, rejected)

	assert.Len(t, orders.created, 1, "exactly one order may be placed")
	assert.Len(t, carts.cleared, 1, "cart must be cleared exactly once")
	assert.Equal(t, 1, blobs.uploads, "losing submission must not upload")
	assert.Equal(t, StepCompleted, m.Step())
}

func TestMachineSnapshotsCartItems(t *testing.T) {
	items := testItems()
	m, err := NewMachine(uuid.New(), items, &fakeBlobStore{}, &fakeOrderCreator{}, &fakeCartClearer{})
	require.NoError(t, err)

	// Mutating the source slice after construction must not change the
	// frozen checkout contents.
	items[0].Quantity = 500

	assert.Equal(t, 2, m.Items()[0].Quantity)
	assert.Equal(t, 3, m.Quote().TotalQuantity)
}
