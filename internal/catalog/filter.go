// internal/catalog/filter.go
package catalog

import (
	"strings"

	"github.com/digivault/shop-backend/internal/models"
)

// AllCategories is the category selector that matches every product.
const AllCategories = "All"

// Filter returns the subsequence of products matching the selected category
// and search query, preserving source order. A product matches when the
// category is AllCategories or equal to its own, and the query is empty or
// a case-insensitive substring of its name or description.
func Filter(products []models.Product, category, query string) []models.Product {
	out := make([]models.Product, 0, len(products))
	for _, p := range products {
		if Matches(&p, category, query) {
			out = append(out, p)
		}
	}
	return out
}

func Matches(p *models.Product, category, query string) bool {
	if category != "" && category != AllCategories && p.Category != category {
		return false
	}
	if query == "" {
		return true
	}
	q := strings.ToLower(query)
	return strings.Contains(strings.ToLower(p.Name), q) ||
		strings.Contains(strings.ToLower(p.Description), q)
}
