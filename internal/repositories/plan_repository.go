package repositories

import (
	"errors"

	"gebeya_backend/internal/models"

	"gorm.io/gorm"
)

var (
	ErrPlanNotFound      = errors.New("subscription plan not found")
	ErrPlanAlreadyExists = errors.New("subscription plan already exists")
)

type PlanRepository interface {
	Create(plan *models.SubscriptionPlan) error
	FindByID(id string) (*models.SubscriptionPlan, error)
	FindByName(name string) (*models.SubscriptionPlan, error)
	FindAll(activeOnly bool) ([]models.SubscriptionPlan, error)
	Update(plan *models.SubscriptionPlan) error
}

type PlanRepositoryImpl struct {
	db *gorm.DB
}

func NewPlanRepository(db *gorm.DB) PlanRepository {
	return &PlanRepositoryImpl{db: db}
}

func (r *PlanRepositoryImpl) Create(plan *models.SubscriptionPlan) error {
	var count int64
	if err := r.db.Model(&models.SubscriptionPlan{}).Where("name = ?", plan.Name).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return ErrPlanAlreadyExists
	}

	return r.db.Create(plan).Error
}

func (r *PlanRepositoryImpl) FindByID(id string) (*models.SubscriptionPlan, error) {
	var plan models.SubscriptionPlan
	err := r.db.First(&plan, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPlanNotFound
		}
		return nil, err
	}
	return &plan, nil
}

func (r *PlanRepositoryImpl) FindByName(name string) (*models.SubscriptionPlan, error) {
	var plan models.SubscriptionPlan
	err := r.db.First(&plan, "name = ?", name).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPlanNotFound
		}
		return nil, err
	}
	return &plan, nil
}

func (r *PlanRepositoryImpl) FindAll(activeOnly bool) ([]models.SubscriptionPlan, error) {
	var plans []models.SubscriptionPlan
	query := r.db.Order("price ASC")
	if activeOnly {
		query = query.Where("is_active = ?", true)
	}
	err := query.Find(&plans).Error
	return plans, err
}

func (r *PlanRepositoryImpl) Update(plan *models.SubscriptionPlan) error {
	result := r.db.Model(plan).Updates(map[string]interface{}{
		"price":         plan.Price,
		"currency":      plan.Currency,
		"duration_days": plan.DurationDays,
		"features":      plan.Features,
		"is_active":     plan.IsActive,
	})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrPlanNotFound
	}
	return nil
}
