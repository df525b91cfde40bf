// internal/services/catalog_service.go
package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/digivault/shop-backend/internal/catalog"
	"github.com/digivault/shop-backend/internal/models"
	"github.com/digivault/shop-backend/internal/utils"
)

type CatalogService struct {
	db *gorm.DB
}

type CreateProductRequest struct {
	Name        string   `json:"name" validate:"required,min=3,max=255"`
	Description string   `json:"description" validate:"max=5000"`
	Price       string   `json:"price" validate:"required"`
	Category    string   `json:"category" validate:"required,max=100"`
	Images      []string `json:"images"`
	Stock       int      `json:"stock" validate:"min=0"`
	Visible     *bool    `json:"visible"`
}

type UpdateProductRequest struct {
	Name        *string  `json:"name" validate:"omitempty,min=3,max=255"`
	Description *string  `json:"description" validate:"omitempty,max=5000"`
	Price       *string  `json:"price"`
	Category    *string  `json:"category" validate:"omitempty,max=100"`
	Images      []string `json:"images"`
	Stock       *int     `json:"stock" validate:"omitempty,min=0"`
	Visible     *bool    `json:"visible"`
}

type CreateCategoryRequest struct {
	Name string `json:"name" validate:"required,min=2,max=100"`
}

func NewCatalogService(db *gorm.DB) *CatalogService {
	return &CatalogService{db: db}
}

// ListProducts returns visible products filtered by category and search
// query, mirroring the in-memory filter semantics: "All" (or empty) spans
// every category, and the search is a case-insensitive substring match
// against name and description. Insertion order is kept stable.
func (s *CatalogService) ListProducts(params utils.PaginationParams) (*utils.PaginationResult, error) {
	var products []models.Product
	var total int64

	query := s.db.Model(&models.Product{}).Where("visible = ?", true)

	if params.Category != "" && params.Category != catalog.AllCategories {
		query = query.Where("category = ?", params.Category)
	}

	if params.Search != "" {
		searchTerm := "%" + params.Search + "%"
		query = query.Where("name ILIKE ? OR description ILIKE ?", searchTerm, searchTerm)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, fmt.Errorf("failed to count products: %w", err)
	}

	query = utils.ApplySort(query, params, []string{"created_at", "name", "price", "sales_count", "rating"})
	query = utils.ApplyPagination(query, params)

	if err := query.Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch products: %w", err)
	}

	result := utils.CreatePaginationResult(products, total, params)
	return &result, nil
}

// ListAllProducts is the admin view: hidden products included.
func (s *CatalogService) ListAllProducts(params utils.PaginationParams) (*utils.PaginationResult, error) {
	var products []models.Product
	var total int64

	query := s.db.Model(&models.Product{})

	if params.Category != "" && params.Category != catalog.AllCategories {
		query = query.Where("category = ?", params.Category)
	}
	if params.Search != "" {
		searchTerm := "%" + params.Search + "%"
		query = query.Where("name ILIKE ? OR description ILIKE ?", searchTerm, searchTerm)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, fmt.Errorf("failed to count products: %w", err)
	}

	query = utils.ApplySort(query, params, []string{"created_at", "name", "price", "sales_count", "stock"})
	query = utils.ApplyPagination(query, params)

	if err := query.Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch products: %w", err)
	}

	result := utils.CreatePaginationResult(products, total, params)
	return &result, nil
}

func (s *CatalogService) GetProduct(productID uuid.UUID) (*models.Product, error) {
	var product models.Product
	if err := s.db.First(&product, productID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("product not found")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &product, nil
}

func (s *CatalogService) CreateProduct(req *CreateProductRequest) (*models.Product, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	price, err := decimal.NewFromString(req.Price)
	if err != nil || price.IsNegative() {
		return nil, errors.New("price must be a non-negative number")
	}

	if err := s.ensureCategoryExists(req.Category); err != nil {
		return nil, err
	}

	visible := true
	if req.Visible != nil {
		visible = *req.Visible
	}

	product := &models.Product{
		Name:        strings.TrimSpace(req.Name),
		Description: req.Description,
		Price:       price,
		Category:    req.Category,
		Images:      pq.StringArray(req.Images),
		Stock:       req.Stock,
		Visible:     visible,
	}

	if err := s.db.Create(product).Error; err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	return product, nil
}

func (s *CatalogService) UpdateProduct(productID uuid.UUID, req *UpdateProductRequest) (*models.Product, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	product, err := s.GetProduct(productID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		product.Name = strings.TrimSpace(*req.Name)
	}
	if req.Description != nil {
		product.Description = *req.Description
	}
	if req.Price != nil {
		price, err := decimal.NewFromString(*req.Price)
		if err != nil || price.IsNegative() {
			return nil, errors.New("price must be a non-negative number")
		}
		product.Price = price
	}
	if req.Category != nil {
		if err := s.ensureCategoryExists(*req.Category); err != nil {
			return nil, err
		}
		product.Category = *req.Category
	}
	if req.Images != nil {
		product.Images = pq.StringArray(req.Images)
	}
	if req.Stock != nil {
		product.Stock = *req.Stock
	}
	if req.Visible != nil {
		product.Visible = *req.Visible
	}

	if err := s.db.Save(product).Error; err != nil {
		return nil, fmt.Errorf("failed to update product: %w", err)
	}

	return product, nil
}

func (s *CatalogService) DeleteProduct(productID uuid.UUID) error {
	result := s.db.Delete(&models.Product{}, productID)
	if result.Error != nil {
		return fmt.Errorf("failed to delete product: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return errors.New("product not found")
	}
	return nil
}

// ListCategories returns every category name. The virtual "All" entry is a
// filter value, not a row, so handlers prepend it for storefront responses.
func (s *CatalogService) ListCategories() ([]models.Category, error) {
	var categories []models.Category
	if err := s.db.Order("name ASC").Find(&categories).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch categories: %w", err)
	}
	return categories, nil
}

func (s *CatalogService) CreateCategory(req *CreateCategoryRequest) (*models.Category, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	name := strings.TrimSpace(req.Name)
	if strings.EqualFold(name, catalog.AllCategories) {
		return nil, errors.New("category name is reserved")
	}

	var existing models.Category
	if err := s.db.Where("name = ?", name).First(&existing).Error; err == nil {
		return nil, errors.New("category already exists")
	}

	category := &models.Category{Name: name}
	if err := s.db.Create(category).Error; err != nil {
		return nil, fmt.Errorf("failed to create category: %w", err)
	}

	return category, nil
}

// DeleteCategory removes the category row only. Products keep their stored
// category string; they surface under "All" until an admin re-categorizes.
func (s *CatalogService) DeleteCategory(categoryID uuid.UUID) error {
	result := s.db.Delete(&models.Category{}, categoryID)
	if result.Error != nil {
		return fmt.Errorf("failed to delete category: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return errors.New("category not found")
	}
	return nil
}

func (s *CatalogService) ensureCategoryExists(name string) error {
	var category models.Category
	if err := s.db.Where("name = ?", name).First(&category).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errors.New("category not found")
		}
		return fmt.Errorf("database error: %w", err)
	}
	return nil
}
