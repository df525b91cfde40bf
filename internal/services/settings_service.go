// internal/services/settings_service.go
package services

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/digivault/shop-backend/internal/models"
	"github.com/digivault/shop-backend/internal/utils"
)

type SettingsService struct {
	db *gorm.DB
}

type UpdateSettingRequest struct {
	Value models.JSONB `json:"value" validate:"required"`
}

func NewSettingsService(db *gorm.DB) *SettingsService {
	return &SettingsService{db: db}
}

// GetSettings returns all settings grouped by category.
func (s *SettingsService) GetSettings() (map[string][]models.ShopSetting, error) {
	var settings []models.ShopSetting
	if err := s.db.Order("category ASC, key ASC").Find(&settings).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch settings: %w", err)
	}

	grouped := make(map[string][]models.ShopSetting)
	for _, setting := range settings {
		grouped[setting.Category] = append(grouped[setting.Category], setting)
	}
	return grouped, nil
}

func (s *SettingsService) GetSetting(category, key string) (*models.ShopSetting, error) {
	var setting models.ShopSetting
	if err := s.db.Where("category = ? AND key = ?", category, key).First(&setting).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("setting not found")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &setting, nil
}

// UpdateSetting replaces a setting's value and records who changed it.
func (s *SettingsService) UpdateSetting(category, key string, req *UpdateSettingRequest, updatedBy uuid.UUID) (*models.ShopSetting, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	setting, err := s.GetSetting(category, key)
	if err != nil {
		return nil, err
	}

	setting.Value = req.Value
	setting.UpdatedBy = updatedBy

	if err := s.db.Save(setting).Error; err != nil {
		return nil, fmt.Errorf("failed to update setting: %w", err)
	}

	return setting, nil
}
