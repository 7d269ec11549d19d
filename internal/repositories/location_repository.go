package repositories

import (
	"errors"

	"gebeya_backend/internal/models"

	"gorm.io/gorm"
)

var (
	ErrLocationNotFound      = errors.New("location not found")
	ErrLocationAlreadyExists = errors.New("location already exists")
)

type LocationRepository interface {
	Create(location *models.Location) error
	FindAll() ([]models.Location, error)
	Update(location *models.Location) error
	Delete(id string) error
}

type LocationRepositoryImpl struct {
	db *gorm.DB
}

func NewLocationRepository(db *gorm.DB) LocationRepository {
	return &LocationRepositoryImpl{db: db}
}

func (r *LocationRepositoryImpl) Create(location *models.Location) error {
	var count int64
	if err := r.db.Model(&models.Location{}).
		Where("name = ? AND region = ?", location.Name, location.Region).
		Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return ErrLocationAlreadyExists
	}

	return r.db.Create(location).Error
}

func (r *LocationRepositoryImpl) FindAll() ([]models.Location, error) {
	var locations []models.Location
	err := r.db.Order("name ASC").Find(&locations).Error
	return locations, err
}

func (r *LocationRepositoryImpl) Update(location *models.Location) error {
	result := r.db.Model(location).Updates(map[string]interface{}{
		"name":   location.Name,
		"region": location.Region,
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrLocationNotFound
	}
	return nil
}

func (r *LocationRepositoryImpl) Delete(id string) error {
	result := r.db.Where("id = ?", id).Delete(&models.Location{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrLocationNotFound
	}
	return nil
}
