package handlers

import (
	"net/http"

	"gebeya_backend/internal/middleware"
	"gebeya_backend/internal/models"
	"gebeya_backend/internal/services"
	"gebeya_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type VerificationHandler struct {
	*BaseHandler
	verificationService services.VerificationService
}

func NewVerificationHandler(base *BaseHandler, verificationService services.VerificationService) *VerificationHandler {
	return &VerificationHandler{
		BaseHandler:         base,
		verificationService: verificationService,
	}
}

func (h *VerificationHandler) RegisterRoutes(r *gin.RouterGroup) {
	verification := r.Group("/verification")
	verification.Use(middleware.AuthMiddleware())
	{
		verification.POST("/request", h.RequestVerification)
		verification.GET("/status", h.GetStatus)
	}

	admin := r.Group("/admin/verifications")
	admin.Use(middleware.AuthMiddleware(), middleware.RoleMiddleware(models.UserRoleAdmin))
	{
		admin.GET("/pending", h.ListPending)
		admin.PUT("/:userId/approve", h.Approve)
		admin.PUT("/:userId/reject", h.Reject)
	}
}

func (h *VerificationHandler) RequestVerification(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.RequestVerificationRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	if err := h.verificationService.RequestVerification(c.Request.Context(), userID, &req); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Verification request submitted successfully",
		"status":  models.VerificationStatusPending,
	})
}

func (h *VerificationHandler) GetStatus(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	resp, err := h.verificationService.GetVerificationStatus(userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *VerificationHandler) ListPending(c *gin.Context) {
	items, err := h.verificationService.ListPendingVerifications()
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"verifications": items,
		"total":         len(items),
	})
}

func (h *VerificationHandler) Approve(c *gin.Context) {
	adminID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}
	userID := c.Param("userId")

	if err := h.verificationService.ApproveVerification(c.Request.Context(), adminID, userID); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Company verification approved successfully"})
}

func (h *VerificationHandler) Reject(c *gin.Context) {
	adminID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}
	userID := c.Param("userId")

	var req dto.RejectVerificationRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	if err := h.verificationService.RejectVerification(c.Request.Context(), adminID, userID, &req); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Company verification rejected"})
}
