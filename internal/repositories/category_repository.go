package repositories

import (
	"errors"

	"gebeya_backend/internal/models"

	"gorm.io/gorm"
)

var (
	ErrCategoryNotFound      = errors.New("category not found")
	ErrCategoryAlreadyExists = errors.New("category already exists")
)

type CategoryRepository interface {
	Create(category *models.Category) error
	FindByID(id string) (*models.Category, error)
	FindBySlug(slug string) (*models.Category, error)
	FindAll(activeOnly bool) ([]models.Category, error)
	Update(category *models.Category) error
	Delete(id string) error
}

type CategoryRepositoryImpl struct {
	db *gorm.DB
}

func NewCategoryRepository(db *gorm.DB) CategoryRepository {
	return &CategoryRepositoryImpl{db: db}
}

func (r *CategoryRepositoryImpl) Create(category *models.Category) error {
	var count int64
	if err := r.db.Model(&models.Category{}).Where("slug = ?", category.Slug).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return ErrCategoryAlreadyExists
	}

	return r.db.Create(category).Error
}

func (r *CategoryRepositoryImpl) FindByID(id string) (*models.Category, error) {
	var category models.Category
	err := r.db.First(&category, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}
	return &category, nil
}

func (r *CategoryRepositoryImpl) FindBySlug(slug string) (*models.Category, error) {
	var category models.Category
	err := r.db.First(&category, "slug = ?", slug).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}
	return &category, nil
}

func (r *CategoryRepositoryImpl) FindAll(activeOnly bool) ([]models.Category, error) {
	var categories []models.Category
	query := r.db.Order("name ASC")
	if activeOnly {
		query = query.Where("is_active = ?", true)
	}
	err := query.Find(&categories).Error
	return categories, err
}

func (r *CategoryRepositoryImpl) Update(category *models.Category) error {
	result := r.db.Model(category).Updates(map[string]interface{}{
		"name":        category.Name,
		"slug":        category.Slug,
		"icon":        category.Icon,
		"description": category.Description,
		"is_active":   category.IsActive,
	})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrCategoryNotFound
	}
	return nil
}

func (r *CategoryRepositoryImpl) Delete(id string) error {
	result := r.db.Where("id = ?", id).Delete(&models.Category{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrCategoryNotFound
	}
	return nil
}
