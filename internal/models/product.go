// internal/models/product.go
package models

import (
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

type Product struct {
	BaseModel
	Name        string          `json:"name" gorm:"size:255;not null"`
	Description string          `json:"description" gorm:"type:text"`
	Price       decimal.Decimal `json:"price" gorm:"type:decimal(12,2);not null"`
	Category    string          `json:"category" gorm:"size:100;index"`
	Images      pq.StringArray  `json:"images" gorm:"type:text[]"`
	Stock       int             `json:"stock" gorm:"default:0"`
	Rating      float64         `json:"rating" gorm:"type:decimal(3,2);default:0"`
	Visible     bool            `json:"visible" gorm:"default:true;index"`
	SalesCount  int64           `json:"sales_count" gorm:"default:0"`
}

// ImageURL returns the primary image reference, or "" when none is set.
func (p *Product) ImageURL() string {
	if len(p.Images) == 0 {
		return ""
	}
	return p.Images[0]
}

type Category struct {
	BaseModel
	Name string `json:"name" gorm:"uniqueIndex;size:100;not null"`
}
