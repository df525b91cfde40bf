// internal/services/notification_service.go
package services

import (
	"errors"
	"fmt"
	"net/smtp"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/digivault/shop-backend/internal/config"
	"github.com/digivault/shop-backend/internal/models"
	"github.com/digivault/shop-backend/internal/pricing"
	"github.com/digivault/shop-backend/internal/utils"
)

type NotificationService struct {
	db  *gorm.DB
	cfg *config.Config
}

func NewNotificationService(db *gorm.DB, cfg *config.Config) *NotificationService {
	return &NotificationService{
		db:  db,
		cfg: cfg,
	}
}

// NotifyOrderCreated records an admin notification for a freshly placed
// order and emails the shopper an order confirmation.
func (s *NotificationService) NotifyOrderCreated(order *models.Order) {
	notification := &models.AdminNotification{
		Type:                "new_order",
		Title:               "New order awaiting confirmation",
		Message:             fmt.Sprintf("Order %s for %s placed by %s via %s", order.ID, pricing.FormatTotal(order.Total, order.PaymentMethod, s.cfg.Shop.ConversionRate), order.FullName, order.PaymentMethod),
		Priority:            "high",
		RelatedResourceType: "order",
		RelatedResourceID:   &order.ID,
	}

	if err := s.db.Create(notification).Error; err != nil {
		logrus.WithError(err).Error("Failed to create order notification")
	}

	go s.sendOrderConfirmationEmail(order)
}

// NotifyOrderStatusChanged records the admin-side audit trail for a
// fulfillment transition and emails the shopper about the change.
func (s *NotificationService) NotifyOrderStatusChanged(order *models.Order, previous models.OrderStatus) {
	notification := &models.AdminNotification{
		Type:                "order_status_changed",
		Title:               "Order status updated",
		Message:             fmt.Sprintf("Order %s moved from %s to %s", order.ID, previous, order.Status),
		Priority:            "medium",
		RelatedResourceType: "order",
		RelatedResourceID:   &order.ID,
	}

	if err := s.db.Create(notification).Error; err != nil {
		logrus.WithError(err).Error("Failed to create status notification")
	}

	go s.sendOrderStatusEmail(order)
}

func (s *NotificationService) GetNotifications(params utils.PaginationParams, status string) (*utils.PaginationResult, error) {
	var notifications []models.AdminNotification
	var total int64

	query := s.db.Model(&models.AdminNotification{})
	if status != "" {
		query = query.Where("status = ?", status)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, fmt.Errorf("failed to count notifications: %w", err)
	}

	query = query.Order("created_at DESC")
	query = utils.ApplyPagination(query, params)

	if err := query.Find(&notifications).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch notifications: %w", err)
	}

	result := utils.CreatePaginationResult(notifications, total, params)
	return &result, nil
}

func (s *NotificationService) MarkNotificationRead(notificationID uuid.UUID) error {
	now := time.Now()
	result := s.db.Model(&models.AdminNotification{}).
		Where("id = ?", notificationID).
		Updates(map[string]interface{}{
			"status":  "read",
			"read_at": &now,
		})

	if result.Error != nil {
		return fmt.Errorf("failed to mark notification as read: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return errors.New("notification not found")
	}

	return nil
}

func (s *NotificationService) UnreadCount() (int64, error) {
	var count int64
	if err := s.db.Model(&models.AdminNotification{}).Where("status = ?", "unread").Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count unread notifications: %w", err)
	}
	return count, nil
}

func (s *NotificationService) sendOrderConfirmationEmail(order *models.Order) {
	total := pricing.FormatTotal(order.Total, order.PaymentMethod, s.cfg.Shop.ConversionRate)
	body := fmt.Sprintf(
		"Hi %s,\n\nWe received your order and payment proof. Your order total is %s.\n\nYour items will be delivered to %s once payment is confirmed.\n\nOrder reference: %s",
		order.FullName, total, order.DeliveryEmail, order.ID,
	)
	sendPlainEmail(s.cfg, order.DeliveryEmail, "Order received", body)
}

func (s *NotificationService) sendOrderStatusEmail(order *models.Order) {
	var body string
	switch order.Status {
	case models.OrderStatusConfirmed:
		body = fmt.Sprintf("Hi %s,\n\nYour payment has been confirmed. Delivery to %s is in progress.", order.FullName, order.DeliveryEmail)
	case models.OrderStatusDelivered:
		body = fmt.Sprintf("Hi %s,\n\nYour order has been delivered to %s. Thank you for shopping with us.", order.FullName, order.DeliveryEmail)
	case models.OrderStatusCancelled:
		body = fmt.Sprintf("Hi %s,\n\nYour order %s has been cancelled. Contact support if this is unexpected.", order.FullName, order.ID)
	default:
		body = fmt.Sprintf("Hi %s,\n\nYour order %s is now %s.", order.FullName, order.ID, order.Status)
	}
	sendPlainEmail(s.cfg, order.DeliveryEmail, fmt.Sprintf("Order %s", order.Status), body)
}

// sendPlainEmail delivers a plain-text email over SMTP. It logs and
// returns silently when SMTP credentials are not configured so local
// development never blocks on mail delivery.
func sendPlainEmail(cfg *config.Config, to, subject, body string) {
	if cfg.Email.SMTPUsername == "" || cfg.Email.SMTPPassword == "" {
		logrus.WithFields(logrus.Fields{
			"to":      to,
			"subject": subject,
		}).Info("SMTP not configured, skipping email")
		return
	}

	auth := smtp.PlainAuth("", cfg.Email.SMTPUsername, cfg.Email.SMTPPassword, cfg.Email.SMTPHost)
	addr := cfg.Email.SMTPHost + ":" + cfg.Email.SMTPPort

	msg := fmt.Sprintf("From: %s <%s>\r\nTo: %s\r\nSubject: %s\r\nContent-Type: text/plain; charset=UTF-8\r\n\r\n%s",
		cfg.Email.FromName, cfg.Email.FromEmail, to, subject, body)

	if err := smtp.SendMail(addr, auth, cfg.Email.FromEmail, []string{to}, []byte(msg)); err != nil {
		logrus.WithError(err).WithField("to", to).Error("Failed to send email")
	}
}
