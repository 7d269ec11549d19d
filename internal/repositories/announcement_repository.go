package repositories

import (
	"errors"

	"gebeya_backend/internal/models"

	"gorm.io/gorm"
)

var ErrAnnouncementNotFound = errors.New("announcement not found")

type AnnouncementRepository interface {
	Create(announcement *models.Announcement) error
	FindAll() ([]models.Announcement, error)
	Update(announcement *models.Announcement) error
	Delete(id string) error
}

type AnnouncementRepositoryImpl struct {
	db *gorm.DB
}

func NewAnnouncementRepository(db *gorm.DB) AnnouncementRepository {
	return &AnnouncementRepositoryImpl{db: db}
}

func (r *AnnouncementRepositoryImpl) Create(announcement *models.Announcement) error {
	return r.db.Create(announcement).Error
}

func (r *AnnouncementRepositoryImpl) FindAll() ([]models.Announcement, error) {
	var announcements []models.Announcement
	err := r.db.Order("created_at DESC").Find(&announcements).Error
	return announcements, err
}

func (r *AnnouncementRepositoryImpl) Update(announcement *models.Announcement) error {
	result := r.db.Model(announcement).Updates(map[string]interface{}{
		"title":   announcement.Title,
		"content": announcement.Content,
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrAnnouncementNotFound
	}
	return nil
}

func (r *AnnouncementRepositoryImpl) Delete(id string) error {
	result := r.db.Where("id = ?", id).Delete(&models.Announcement{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrAnnouncementNotFound
	}
	return nil
}
