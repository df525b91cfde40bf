// internal/models/common_test.go
package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOrderStatusValid(t *testing.T) {
	for _, s := range []OrderStatus{OrderStatusPending, OrderStatusConfirmed, OrderStatusDelivered, OrderStatusCancelled} {
		assert.True(t, s.Valid(), "%s", s)
	}

	assert.False(t, OrderStatus("").Valid())
	assert.False(t, OrderStatus("shipped").Valid())
	assert.False(t, OrderStatus("PENDING").Valid())
}

func TestPaymentMethodValid(t *testing.T) {
	assert.True(t, PaymentMethodTransfer.Valid())
	assert.True(t, PaymentMethodCrypto.Valid())
	assert.False(t, PaymentMethod("card").Valid())
	assert.False(t, PaymentMethod("").Valid())
}

func TestJSONBRoundTrip(t *testing.T) {
	j := JSONB{"reset_token": "abc", "count": float64(3)}

	v, err := j.Value()
	assert.NoError(t, err)

	var out JSONB
	assert.NoError(t, out.Scan(v))
	assert.Equal(t, j, out)
}

func TestUserPassword(t *testing.T) {
	u := &User{}
	assert.NoError(t, u.SetPassword("Sup3r$ecret"))
	assert.NotEqual(t, "Sup3r$ecret", u.PasswordHash)

	assert.NoError(t, u.CheckPassword("Sup3r$ecret"))
	assert.Error(t, u.CheckPassword("wrong"))
}

func TestUserIsAdmin(t *testing.T) {
	assert.True(t, (&User{Role: UserRoleAdmin}).IsAdmin())
	assert.False(t, (&User{Role: UserRoleCustomer}).IsAdmin())
}
