package handlers

import (
	"net/http"

	"gebeya_backend/internal/middleware"
	"gebeya_backend/internal/models"
	"gebeya_backend/internal/services"
	"gebeya_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type PlanHandler struct {
	*BaseHandler
	planService services.PlanService
}

func NewPlanHandler(base *BaseHandler, planService services.PlanService) *PlanHandler {
	return &PlanHandler{
		BaseHandler: base,
		planService: planService,
	}
}

func (h *PlanHandler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/plans", h.GetPlans)

	admin := r.Group("/admin/plans")
	admin.Use(middleware.AuthMiddleware(), middleware.RoleMiddleware(models.UserRoleAdmin))
	{
		admin.POST("", h.CreatePlan)
		admin.PUT("/:planId", h.UpdatePlan)
	}
}

func (h *PlanHandler) GetPlans(c *gin.Context) {
	activeOnly := !ParseQueryBool(c, "include_inactive")

	plans, err := h.planService.GetPlans(activeOnly)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"plans": plans,
		"total": len(plans),
	})
}

func (h *PlanHandler) CreatePlan(c *gin.Context) {
	var req dto.CreatePlanRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	plan, err := h.planService.CreatePlan(&req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, plan)
}

func (h *PlanHandler) UpdatePlan(c *gin.Context) {
	planID := c.Param("planId")

	var req dto.UpdatePlanRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	plan, err := h.planService.UpdatePlan(planID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, plan)
}
