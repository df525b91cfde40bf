// internal/catalog/filter_test.go
package catalog

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/digivault/shop-backend/internal/models"
)

func testProducts() []models.Product {
	mk := func(name, description, category string) models.Product {
		return models.Product{
			Name:        name,
			Description: description,
			Price:       decimal.NewFromInt(1),
			Category:    category,
		}
	}
	return []models.Product{
		mk("Aged Gmail Account (2019)", "Gmail account created in 2019 with recovery details included.", "Gmail"),
		mk("Fresh Gmail Account", "Newly created Gmail account, phone verified.", "Gmail"),
		mk("Instagram Account (1k followers)", "Organic Instagram account with around 1,000 followers.", "Social Media"),
		mk("Twitter/X Aged Account", "Aged Twitter account with email access.", "Social Media"),
		mk("Virtual Dollar Card ($10 limit)", "Prepaid virtual dollar card for online subscriptions.", "Virtual Cards"),
		mk("Virtual Dollar Card ($50 limit)", "Prepaid virtual dollar card with a fifty dollar spending limit.", "Virtual Cards"),
		mk("Netflix Premium (1 month)", "One month Netflix premium profile slot.", "Streaming"),
		mk("Spotify Premium (3 months)", "Three months of Spotify premium on a fresh account.", "Streaming"),
	}
}

func names(products []models.Product) []string {
	out := make([]string, 0, len(products))
	for _, p := range products {
		out = append(out, p.Name)
	}
	return out
}

func TestFilterAllNoQueryReturnsEverything(t *testing.T) {
	products := testProducts()

	got := Filter(products, AllCategories, "")

	assert.Len(t, got, len(products))
	assert.Equal(t, names(products), names(got), "source order must be preserved")
}

func TestFilterEmptyCategoryBehavesLikeAll(t *testing.T) {
	products := testProducts()

	assert.Equal(t, names(Filter(products, AllCategories, "")), names(Filter(products, "", "")))
}

func TestFilterByCategory(t *testing.T) {
	got := Filter(testProducts(), "Streaming", "")

	assert.Equal(t, []string{"Netflix Premium (1 month)", "Spotify Premium (3 months)"}, names(got))
}

func TestFilterAllWithGmailQuery(t *testing.T) {
	// Under "All", searching for gmail surfaces exactly the two Gmail
	// products regardless of query casing.
	for _, query := range []string{"gmail", "GMAIL", "Gmail", "gMaIl"} {
		got := Filter(testProducts(), AllCategories, query)
		assert.Equal(t, []string{"Aged Gmail Account (2019)", "Fresh Gmail Account"}, names(got), "query %q", query)
	}
}

func TestFilterQueryMatchesDescription(t *testing.T) {
	// "phone verified" only appears in a description, never a name.
	got := Filter(testProducts(), AllCategories, "phone verified")

	assert.Equal(t, []string{"Fresh Gmail Account"}, names(got))
}

func TestFilterCategoryAndQueryCombine(t *testing.T) {
	// "account" matches products in several categories; the category
	// narrows it down.
	got := Filter(testProducts(), "Social Media", "aged")

	assert.Equal(t, []string{"Twitter/X Aged Account"}, names(got))
}

func TestFilterNoMatches(t *testing.T) {
	got := Filter(testProducts(), AllCategories, "no such product")

	assert.Empty(t, got)
	assert.NotNil(t, got)
}

func TestFilterUnknownCategory(t *testing.T) {
	got := Filter(testProducts(), "Gift Cards", "")

	assert.Empty(t, got)
}

func TestMatchesSubstringMidWord(t *testing.T) {
	p := models.Product{Name: "Spotify Premium (3 months)", Description: "Three months of Spotify premium on a fresh account."}

	assert.True(t, Matches(&p, AllCategories, "potif"))
	assert.False(t, Matches(&p, AllCategories, "netflix"))
}
