package services

import (
	"encoding/json"
	"errors"

	"gebeya_backend/internal/models"
	"gebeya_backend/internal/repositories"
	"gebeya_backend/internal/services/dto"
	"gebeya_backend/pkg/apperrors"

	"gorm.io/datatypes"
)

type PlanService interface {
	GetPlans(activeOnly bool) ([]dto.PlanResponse, error)
	CreatePlan(req *dto.CreatePlanRequest) (*dto.PlanResponse, error)
	UpdatePlan(planID string, req *dto.UpdatePlanRequest) (*dto.PlanResponse, error)
}

type planService struct {
	planRepo repositories.PlanRepository
}

func NewPlanService(planRepo repositories.PlanRepository) PlanService {
	return &planService{planRepo: planRepo}
}

func (s *planService) GetPlans(activeOnly bool) ([]dto.PlanResponse, error) {
	plans, err := s.planRepo.FindAll(activeOnly)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	responses := make([]dto.PlanResponse, 0, len(plans))
	for i := range plans {
		responses = append(responses, dto.PlanFromModel(&plans[i]))
	}
	return responses, nil
}

func (s *planService) CreatePlan(req *dto.CreatePlanRequest) (*dto.PlanResponse, error) {
	currency := req.Currency
	if currency == "" {
		currency = "ETB"
	}
	durationDays := req.DurationDays
	if durationDays == 0 {
		durationDays = 30
	}

	plan := &models.SubscriptionPlan{
		Name:         req.Name,
		Price:        req.Price,
		Currency:     currency,
		DurationDays: durationDays,
		IsActive:     true,
	}
	if req.Features != nil {
		raw, err := json.Marshal(req.Features)
		if err != nil {
			return nil, apperrors.NewBadRequestError("Invalid features")
		}
		plan.Features = datatypes.JSON(raw)
	}

	if err := s.planRepo.Create(plan); err != nil {
		if errors.Is(err, repositories.ErrPlanAlreadyExists) {
			return nil, apperrors.ErrAlreadyExists(err)
		}
		return nil, apperrors.InternalError(err)
	}

	resp := dto.PlanFromModel(plan)
	return &resp, nil
}

func (s *planService) UpdatePlan(planID string, req *dto.UpdatePlanRequest) (*dto.PlanResponse, error) {
	plan, err := s.planRepo.FindByID(planID)
	if err != nil {
		if errors.Is(err, repositories.ErrPlanNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}

	if req.Price != nil {
		plan.Price = *req.Price
	}
	if req.DurationDays != nil {
		plan.DurationDays = *req.DurationDays
	}
	if req.Features != nil {
		raw, err := json.Marshal(req.Features)
		if err != nil {
			return nil, apperrors.NewBadRequestError("Invalid features")
		}
		plan.Features = datatypes.JSON(raw)
	}
	if req.IsActive != nil {
		plan.IsActive = *req.IsActive
	}

	if err := s.planRepo.Update(plan); err != nil {
		return nil, apperrors.InternalError(err)
	}

	resp := dto.PlanFromModel(plan)
	return &resp, nil
}
