// internal/database/seed.go
package database

import (
	"fmt"
	"log"

	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/digivault/shop-backend/internal/models"
)

// SeedInitialData creates the default admin, base categories and the
// starter catalog when the corresponding tables are empty.
func SeedInitialData(db *gorm.DB) error {
	log.Println("Seeding initial data...")

	// Create default admin user
	var adminCount int64
	db.Model(&models.User{}).Where("role = ?", models.UserRoleAdmin).Count(&adminCount)

	if adminCount == 0 {
		admin := &models.User{
			Username: "admin",
			Email:    "admin@digivault.shop",
			Role:     models.UserRoleAdmin,
			Status:   models.UserStatusActive,
			ProfileData: models.JSONB{
				"display_name": "Store Administrator",
			},
		}

		if err := admin.SetPassword("admin123!@#"); err != nil {
			return fmt.Errorf("failed to set admin password: %w", err)
		}

		if err := db.Create(admin).Error; err != nil {
			return fmt.Errorf("failed to create admin user: %w", err)
		}

		log.Println("Default admin user created successfully")
	}

	// Create base categories
	for _, name := range []string{"Gmail", "Social Media", "Virtual Cards", "Streaming"} {
		var count int64
		db.Model(&models.Category{}).Where("name = ?", name).Count(&count)
		if count == 0 {
			if err := db.Create(&models.Category{Name: name}).Error; err != nil {
				return fmt.Errorf("failed to create category %s: %w", name, err)
			}
		}
	}

	// Starter catalog
	var productCount int64
	db.Model(&models.Product{}).Count(&productCount)
	if productCount == 0 {
		for _, p := range SeedProducts() {
			product := p
			if err := db.Create(&product).Error; err != nil {
				return fmt.Errorf("failed to seed product %s: %w", product.Name, err)
			}
		}
		log.Println("Starter catalog seeded successfully")
	}

	// Default storefront settings
	defaultSettings := []models.ShopSetting{
		{
			Category:    "payments",
			Key:         "bank_transfer_instructions",
			Value:       models.JSONB{"value": "Transfer the order total to the account shown at checkout and upload your receipt."},
			DataType:    "string",
			Description: "Instructions shown for the bank transfer payment method",
		},
		{
			Category:    "payments",
			Key:         "crypto_wallet_address",
			Value:       models.JSONB{"value": ""},
			DataType:    "string",
			Description: "Wallet address shown for the crypto payment method",
		},
		{
			Category:    "general",
			Key:         "store_name",
			Value:       models.JSONB{"value": "DigiVault Shop"},
			DataType:    "string",
			Description: "Store name displayed to shoppers",
		},
	}

	for _, setting := range defaultSettings {
		var count int64
		db.Model(&models.ShopSetting{}).Where("category = ? AND key = ?", setting.Category, setting.Key).Count(&count)

		if count == 0 {
			var admin models.User
			if err := db.Where("role = ?", models.UserRoleAdmin).First(&admin).Error; err == nil {
				setting.UpdatedBy = admin.ID
				if err := db.Create(&setting).Error; err != nil {
					log.Printf("Warning: Failed to create setting %s.%s: %v", setting.Category, setting.Key, err)
				}
			}
		}
	}

	log.Println("Initial data seeding completed")
	return nil
}

// SeedProducts is the eight-product starter catalog.
func SeedProducts() []models.Product {
	return []models.Product{
		{
			Name:        "Aged Gmail Account (2019)",
			Description: "Gmail account created in 2019 with recovery details included.",
			Price:       decimal.NewFromFloat(4.50),
			Category:    "Gmail",
			Images:      pq.StringArray{"https://cdn.digivault.shop/products/gmail-aged.png"},
			Stock:       120,
			Rating:      4.6,
			Visible:     true,
		},
		{
			Name:        "Fresh Gmail Account",
			Description: "Newly created Gmail account, phone verified.",
			Price:       decimal.NewFromFloat(1.20),
			Category:    "Gmail",
			Images:      pq.StringArray{"https://cdn.digivault.shop/products/gmail-fresh.png"},
			Stock:       500,
			Rating:      4.2,
			Visible:     true,
		},
		{
			Name:        "Instagram Account (1k followers)",
			Description: "Organic Instagram account with around 1,000 followers.",
			Price:       decimal.NewFromFloat(15.00),
			Category:    "Social Media",
			Images:      pq.StringArray{"https://cdn.digivault.shop/products/instagram-1k.png"},
			Stock:       35,
			Rating:      4.8,
			Visible:     true,
		},
		{
			Name:        "Twitter/X Aged Account",
			Description: "Aged Twitter account with email access.",
			Price:       decimal.NewFromFloat(8.00),
			Category:    "Social Media",
			Images:      pq.StringArray{"https://cdn.digivault.shop/products/twitter-aged.png"},
			Stock:       60,
			Rating:      4.1,
			Visible:     true,
		},
		{
			Name:        "Virtual Dollar Card ($10 limit)",
			Description: "Prepaid virtual dollar card for online subscriptions.",
			Price:       decimal.NewFromFloat(12.50),
			Category:    "Virtual Cards",
			Images:      pq.StringArray{"https://cdn.digivault.shop/products/vcard-10.png"},
			Stock:       200,
			Rating:      4.9,
			Visible:     true,
		},
		{
			Name:        "Virtual Dollar Card ($50 limit)",
			Description: "Prepaid virtual dollar card with a fifty dollar spending limit.",
			Price:       decimal.NewFromFloat(55.00),
			Category:    "Virtual Cards",
			Images:      pq.StringArray{"https://cdn.digivault.shop/products/vcard-50.png"},
			Stock:       80,
			Rating:      4.7,
			Visible:     true,
		},
		{
			Name:        "Netflix Premium (1 month)",
			Description: "One month Netflix premium profile slot.",
			Price:       decimal.NewFromFloat(3.80),
			Category:    "Streaming",
			Images:      pq.StringArray{"https://cdn.digivault.shop/products/netflix-1m.png"},
			Stock:       150,
			Rating:      4.4,
			Visible:     true,
		},
		{
			Name:        "Spotify Premium (3 months)",
			Description: "Three months of Spotify premium on a fresh account.",
			Price:       decimal.NewFromFloat(6.90),
			Category:    "Streaming",
			Images:      pq.StringArray{"https://cdn.digivault.shop/products/spotify-3m.png"},
			Stock:       90,
			Rating:      4.5,
			Visible:     true,
		},
	}
}
