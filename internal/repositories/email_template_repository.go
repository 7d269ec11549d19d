package repositories

import (
	"errors"

	"gebeya_backend/internal/models"

	"gorm.io/gorm"
)

var (
	ErrTemplateNotFound      = errors.New("email template not found")
	ErrTemplateAlreadyExists = errors.New("email template already exists")
)

type EmailTemplateRepository interface {
	Create(template *models.EmailTemplate) error
	FindByID(id string) (*models.EmailTemplate, error)
	FindByName(name string) (*models.EmailTemplate, error)
	FindAll() ([]models.EmailTemplate, error)
	Update(template *models.EmailTemplate) error
	Delete(id string) error

	// LookupTemplate satisfies the mail sender's override source.
	LookupTemplate(name string) (subject, body string, ok bool)
}

type EmailTemplateRepositoryImpl struct {
	db *gorm.DB
}

func NewEmailTemplateRepository(db *gorm.DB) EmailTemplateRepository {
	return &EmailTemplateRepositoryImpl{db: db}
}

func (r *EmailTemplateRepositoryImpl) Create(template *models.EmailTemplate) error {
	var count int64
	if err := r.db.Model(&models.EmailTemplate{}).Where("name = ?", template.Name).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return ErrTemplateAlreadyExists
	}

	return r.db.Create(template).Error
}

func (r *EmailTemplateRepositoryImpl) FindByID(id string) (*models.EmailTemplate, error) {
	var template models.EmailTemplate
	err := r.db.First(&template, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTemplateNotFound
		}
		return nil, err
	}
	return &template, nil
}

func (r *EmailTemplateRepositoryImpl) FindByName(name string) (*models.EmailTemplate, error) {
	var template models.EmailTemplate
	err := r.db.First(&template, "name = ?", name).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTemplateNotFound
		}
		return nil, err
	}
	return &template, nil
}

func (r *EmailTemplateRepositoryImpl) LookupTemplate(name string) (string, string, bool) {
	template, err := r.FindByName(name)
	if err != nil {
		return "", "", false
	}
	return template.Subject, template.Body, true
}

func (r *EmailTemplateRepositoryImpl) FindAll() ([]models.EmailTemplate, error) {
	var templates []models.EmailTemplate
	err := r.db.Order("name ASC").Find(&templates).Error
	return templates, err
}

func (r *EmailTemplateRepositoryImpl) Update(template *models.EmailTemplate) error {
	result := r.db.Model(template).Updates(map[string]interface{}{
		"name":    template.Name,
		"subject": template.Subject,
		"body":    template.Body,
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrTemplateNotFound
	}
	return nil
}

func (r *EmailTemplateRepositoryImpl) Delete(id string) error {
	result := r.db.Where("id = ?", id).Delete(&models.EmailTemplate{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrTemplateNotFound
	}
	return nil
}
