package dto

import (
	"encoding/json"

	"gebeya_backend/internal/models"
)

type CreatePlanRequest struct {
	Name         string   `json:"name" binding:"required,min=2"`
	Price        float64  `json:"price" binding:"required,gt=0"`
	Currency     string   `json:"currency"`
	DurationDays int      `json:"duration_days" binding:"omitempty,gt=0"`
	Features     []string `json:"features"`
}

type UpdatePlanRequest struct {
	Price        *float64 `json:"price" binding:"omitempty,gt=0"`
	DurationDays *int     `json:"duration_days" binding:"omitempty,gt=0"`
	Features     []string `json:"features"`
	IsActive     *bool    `json:"is_active"`
}

type PlanResponse struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Price        float64  `json:"price"`
	Currency     string   `json:"currency"`
	DurationDays int      `json:"duration_days"`
	Features     []string `json:"features,omitempty"`
	IsActive     bool     `json:"is_active"`
}

func PlanFromModel(plan *models.SubscriptionPlan) PlanResponse {
	resp := PlanResponse{
		ID:           plan.ID,
		Name:         plan.Name,
		Price:        plan.Price,
		Currency:     plan.Currency,
		DurationDays: plan.DurationDays,
		IsActive:     plan.IsActive,
	}
	if len(plan.Features) > 0 {
		_ = json.Unmarshal(plan.Features, &resp.Features)
	}
	return resp
}
