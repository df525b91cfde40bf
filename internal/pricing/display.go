// internal/pricing/display.go
package pricing

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/digivault/shop-backend/internal/models"
)

// FormatTotal renders a stored total for the chosen payment method without
// altering it. Bank transfer shows the native currency at 2 decimal places;
// crypto shows the converted amount rounded up to a whole alternate-currency
// unit using the fixed conversion rate (native units per alternate unit).
func FormatTotal(total decimal.Decimal, method models.PaymentMethod, conversionRate decimal.Decimal) string {
	if method == models.PaymentMethodCrypto && conversionRate.IsPositive() {
		converted := total.Div(conversionRate).Ceil()
		return fmt.Sprintf("$%s", converted.StringFixed(0))
	}
	return fmt.Sprintf("₦%s", total.StringFixed(2))
}
