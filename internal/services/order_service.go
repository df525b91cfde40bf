// internal/services/order_service.go
package services

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/digivault/shop-backend/internal/models"
	"github.com/digivault/shop-backend/internal/utils"
)

type OrderService struct {
	db            *gorm.DB
	notifications *NotificationService
}

type UpdateOrderStatusRequest struct {
	Status models.OrderStatus `json:"status" validate:"required"`
}

// RevenueStats aggregates the fulfillment dashboard numbers. Revenue counts
// only confirmed and delivered orders; pending and cancelled money is not
// revenue yet.
type RevenueStats struct {
	TotalRevenue   decimal.Decimal              `json:"total_revenue"`
	TotalOrders    int64                        `json:"total_orders"`
	PendingCount   int64                        `json:"pending_count"`
	CountsByStatus map[models.OrderStatus]int64 `json:"counts_by_status"`
}

func NewOrderService(db *gorm.DB, notifications *NotificationService) *OrderService {
	return &OrderService{
		db:            db,
		notifications: notifications,
	}
}

// ListUserOrders returns the shopper's own orders, newest first.
func (s *OrderService) ListUserOrders(userID uuid.UUID, params utils.PaginationParams) (*utils.PaginationResult, error) {
	var orders []models.Order
	var total int64

	query := s.db.Model(&models.Order{}).Where("user_id = ?", userID)

	if err := query.Count(&total).Error; err != nil {
		return nil, fmt.Errorf("failed to count orders: %w", err)
	}

	query = query.Preload("Items").Order("created_at DESC")
	query = utils.ApplyPagination(query, params)

	if err := query.Find(&orders).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch orders: %w", err)
	}

	result := utils.CreatePaginationResult(orders, total, params)
	return &result, nil
}

// ListOrders is the admin view over every order, optionally filtered by
// status.
func (s *OrderService) ListOrders(params utils.PaginationParams, status models.OrderStatus) (*utils.PaginationResult, error) {
	if status != "" && !status.Valid() {
		return nil, errors.New("invalid order status")
	}

	var orders []models.Order
	var total int64

	query := s.db.Model(&models.Order{})
	if status != "" {
		query = query.Where("status = ?", status)
	}
	if params.Search != "" {
		searchTerm := "%" + params.Search + "%"
		query = query.Where("full_name ILIKE ? OR delivery_email ILIKE ? OR transaction_ref ILIKE ?", searchTerm, searchTerm, searchTerm)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, fmt.Errorf("failed to count orders: %w", err)
	}

	query = query.Preload("Items").Preload("User").Order("created_at DESC")
	query = utils.ApplyPagination(query, params)

	if err := query.Find(&orders).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch orders: %w", err)
	}

	result := utils.CreatePaginationResult(orders, total, params)
	return &result, nil
}

// GetOrder returns one order. Non-admin callers only see their own.
func (s *OrderService) GetOrder(orderID uuid.UUID, requesterID uuid.UUID, isAdmin bool) (*models.Order, error) {
	var order models.Order
	if err := s.db.Preload("Items").First(&order, orderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("order not found")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	if !isAdmin && order.UserID != requesterID {
		return nil, errors.New("order not found")
	}

	return &order, nil
}

// UpdateStatus sets an order to any valid status. There is no transition
// graph: admins may move an order between any pair of statuses, including
// reopening a cancelled one. Setting the current status again is a no-op
// that still succeeds.
func (s *OrderService) UpdateStatus(orderID uuid.UUID, req *UpdateOrderStatusRequest) (*models.Order, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}
	if !req.Status.Valid() {
		return nil, errors.New("invalid order status")
	}

	var order models.Order
	if err := s.db.Preload("Items").First(&order, orderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("order not found")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	previous := order.Status
	if previous == req.Status {
		return &order, nil
	}

	order.Status = req.Status
	if err := s.db.Save(&order).Error; err != nil {
		return nil, fmt.Errorf("failed to update order status: %w", err)
	}

	s.notifications.NotifyOrderStatusChanged(&order, previous)
	return &order, nil
}

// GetRevenueStats computes the dashboard aggregates in the database.
func (s *OrderService) GetRevenueStats() (*RevenueStats, error) {
	stats := &RevenueStats{
		TotalRevenue:   decimal.Zero,
		CountsByStatus: make(map[models.OrderStatus]int64),
	}

	var revenue struct {
		Total decimal.Decimal
	}
	if err := s.db.Model(&models.Order{}).
		Select("COALESCE(SUM(total), 0) AS total").
		Where("status IN ?", []models.OrderStatus{models.OrderStatusConfirmed, models.OrderStatusDelivered}).
		Scan(&revenue).Error; err != nil {
		return nil, fmt.Errorf("failed to aggregate revenue: %w", err)
	}
	stats.TotalRevenue = revenue.Total

	var counts []struct {
		Status models.OrderStatus
		Count  int64
	}
	if err := s.db.Model(&models.Order{}).
		Select("status, COUNT(*) AS count").
		Group("status").
		Scan(&counts).Error; err != nil {
		return nil, fmt.Errorf("failed to count orders by status: %w", err)
	}

	for _, row := range counts {
		stats.CountsByStatus[row.Status] = row.Count
		stats.TotalOrders += row.Count
	}
	stats.PendingCount = stats.CountsByStatus[models.OrderStatusPending]

	return stats, nil
}
