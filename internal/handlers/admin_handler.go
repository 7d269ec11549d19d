package handlers

import (
	"net/http"

	"gebeya_backend/internal/middleware"
	"gebeya_backend/internal/models"
	"gebeya_backend/internal/services"
	"gebeya_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type AdminHandler struct {
	*BaseHandler
	adminService        services.AdminService
	userService         services.UserService
	listingService      services.ListingService
	systemConfigService services.SystemConfigService
}

func NewAdminHandler(
	base *BaseHandler,
	adminService services.AdminService,
	userService services.UserService,
	listingService services.ListingService,
	systemConfigService services.SystemConfigService,
) *AdminHandler {
	return &AdminHandler{
		BaseHandler:         base,
		adminService:        adminService,
		userService:         userService,
		listingService:      listingService,
		systemConfigService: systemConfigService,
	}
}

func (h *AdminHandler) RegisterRoutes(r *gin.RouterGroup) {
	admin := r.Group("/admin")
	admin.Use(middleware.AuthMiddleware(), middleware.RoleMiddleware(models.UserRoleAdmin))
	{
		admin.GET("/dashboard", h.GetDashboard)
		admin.GET("/users", h.GetUsers)
		admin.PUT("/users/:userId/ban", h.BanUser)
		admin.PUT("/users/:userId/unban", h.UnbanUser)
		admin.GET("/listings", h.GetListingsForModeration)
		admin.PUT("/listings/:listingId/moderate", h.ModerateListing)
		admin.GET("/config", h.GetSystemConfig)
		admin.PUT("/config", h.UpdateSystemConfig)
	}
}

func (h *AdminHandler) GetDashboard(c *gin.Context) {
	stats, err := h.adminService.GetDashboardStats()
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, stats)
}

func (h *AdminHandler) GetUsers(c *gin.Context) {
	var query dto.AdminUsersQuery
	if !h.BindAndValidate_Query(c, &query) {
		return
	}

	users, total, err := h.userService.GetUsers(&query)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"users": users,
		"total": total,
	})
}

func (h *AdminHandler) BanUser(c *gin.Context) {
	h.setBanned(c, true)
}

func (h *AdminHandler) UnbanUser(c *gin.Context) {
	h.setBanned(c, false)
}

func (h *AdminHandler) setBanned(c *gin.Context, banned bool) {
	adminID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}
	userID := c.Param("userId")

	if err := h.userService.SetBanned(adminID, userID, banned); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	message := "User unbanned"
	if banned {
		message = "User banned"
	}
	c.JSON(http.StatusOK, gin.H{"message": message})
}

func (h *AdminHandler) GetListingsForModeration(c *gin.Context) {
	var query dto.BrowseListingsQuery
	if !h.BindAndValidate_Query(c, &query) {
		return
	}

	status := models.ListingStatus(c.DefaultQuery("status", string(models.ListingStatusPending)))

	resp, err := h.listingService.GetListingsForModeration(&query, status)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *AdminHandler) ModerateListing(c *gin.Context) {
	listingID := c.Param("listingId")

	var req dto.ModerateListingRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	if err := h.listingService.ModerateListing(c.Request.Context(), listingID, &req); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Listing " + req.Status})
}

func (h *AdminHandler) GetSystemConfig(c *gin.Context) {
	resp, err := h.systemConfigService.GetSystemConfig()
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *AdminHandler) UpdateSystemConfig(c *gin.Context) {
	var req dto.UpdateSystemConfigRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	resp, err := h.systemConfigService.UpdateSystemConfig(&req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
