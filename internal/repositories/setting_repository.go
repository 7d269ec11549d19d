package repositories

import (
	"errors"

	"gebeya_backend/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var ErrSettingNotFound = errors.New("setting not found")

// Setting keys known to the application.
const (
	SettingForceModeration        = "force_moderation"
	SettingEnableSMSNotifications = "enable_sms_notifications"
)

type SettingRepository interface {
	Get(key string) (string, error)
	Set(key, value string) error
	GetAll() (map[string]string, error)

	// GetSetting satisfies chapa.SettingSource.
	GetSetting(key string) (string, bool)
}

type SettingRepositoryImpl struct {
	db *gorm.DB
}

func NewSettingRepository(db *gorm.DB) SettingRepository {
	return &SettingRepositoryImpl{db: db}
}

func (r *SettingRepositoryImpl) Get(key string) (string, error) {
	var setting models.Setting
	err := r.db.First(&setting, "key = ?", key).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrSettingNotFound
		}
		return "", err
	}
	return setting.Value, nil
}

// Set upserts the key.
func (r *SettingRepositoryImpl) Set(key, value string) error {
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&models.Setting{Key: key, Value: value}).Error
}

func (r *SettingRepositoryImpl) GetAll() (map[string]string, error) {
	var settings []models.Setting
	if err := r.db.Find(&settings).Error; err != nil {
		return nil, err
	}

	result := make(map[string]string, len(settings))
	for _, s := range settings {
		result[s.Key] = s.Value
	}
	return result, nil
}

func (r *SettingRepositoryImpl) GetSetting(key string) (string, bool) {
	value, err := r.Get(key)
	if err != nil || value == "" {
		return "", false
	}
	return value, true
}
