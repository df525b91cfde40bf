// internal/models/order.go
package models

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Order is created exactly once at successful checkout submission and never
// deleted. Items and Total are a frozen snapshot; only Status is mutated
// afterwards, by admin action.
type Order struct {
	BaseModel
	UserID         uuid.UUID       `json:"user_id" gorm:"type:uuid;not null;index"`
	Items          []OrderItem     `json:"items" gorm:"foreignKey:OrderID"`
	Total          decimal.Decimal `json:"total" gorm:"type:decimal(14,4);not null"`
	Status         OrderStatus     `json:"status" gorm:"type:varchar(20);default:'pending';index"`
	FullName       string          `json:"full_name" gorm:"size:255;not null"`
	Phone          string          `json:"phone" gorm:"size:20;not null"`
	DeliveryEmail  string          `json:"delivery_email" gorm:"size:255;not null"`
	PaymentMethod  PaymentMethod   `json:"payment_method" gorm:"type:varchar(20);not null"`
	TransactionRef string          `json:"transaction_ref" gorm:"size:255;not null"`
	ProofURL       string          `json:"proof_url" gorm:"size:512;not null"`

	// Relationships
	User User `json:"user,omitempty" gorm:"foreignKey:UserID"`
}

type OrderItem struct {
	BaseModel
	OrderID   uuid.UUID       `json:"order_id" gorm:"type:uuid;not null;index"`
	ProductID uuid.UUID       `json:"product_id" gorm:"type:uuid;not null"`
	Name      string          `json:"name" gorm:"size:255;not null"`
	UnitPrice decimal.Decimal `json:"unit_price" gorm:"type:decimal(12,2);not null"`
	Quantity  int             `json:"quantity" gorm:"not null"`
}
