package handlers

import (
	"net/http"

	"gebeya_backend/internal/middleware"
	"gebeya_backend/internal/models"
	"gebeya_backend/internal/services"
	"gebeya_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

// ContentHandler serves admin-curated site content: announcements,
// locations and email template overrides.
type ContentHandler struct {
	*BaseHandler
	contentService services.ContentService
}

func NewContentHandler(base *BaseHandler, contentService services.ContentService) *ContentHandler {
	return &ContentHandler{
		BaseHandler:    base,
		contentService: contentService,
	}
}

func (h *ContentHandler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/announcements", h.GetAnnouncements)
	r.GET("/locations", h.GetLocations)

	admin := r.Group("/admin")
	admin.Use(middleware.AuthMiddleware(), middleware.RoleMiddleware(models.UserRoleAdmin))
	{
		admin.POST("/announcements", h.CreateAnnouncement)
		admin.PUT("/announcements/:announcementId", h.UpdateAnnouncement)
		admin.DELETE("/announcements/:announcementId", h.DeleteAnnouncement)

		admin.POST("/locations", h.CreateLocation)
		admin.PUT("/locations/:locationId", h.UpdateLocation)
		admin.DELETE("/locations/:locationId", h.DeleteLocation)

		admin.GET("/email-templates", h.GetEmailTemplates)
		admin.GET("/email-templates/:templateId", h.GetEmailTemplate)
		admin.POST("/email-templates", h.CreateEmailTemplate)
		admin.PUT("/email-templates/:templateId", h.UpdateEmailTemplate)
		admin.DELETE("/email-templates/:templateId", h.DeleteEmailTemplate)
	}
}

// Announcements

func (h *ContentHandler) GetAnnouncements(c *gin.Context) {
	announcements, err := h.contentService.GetAnnouncements()
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"announcements": announcements,
		"total":         len(announcements),
	})
}

func (h *ContentHandler) CreateAnnouncement(c *gin.Context) {
	var req dto.AnnouncementRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	announcement, err := h.contentService.CreateAnnouncement(&req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, announcement)
}

func (h *ContentHandler) UpdateAnnouncement(c *gin.Context) {
	announcementID := c.Param("announcementId")

	var req dto.AnnouncementRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	announcement, err := h.contentService.UpdateAnnouncement(announcementID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, announcement)
}

func (h *ContentHandler) DeleteAnnouncement(c *gin.Context) {
	announcementID := c.Param("announcementId")

	if err := h.contentService.DeleteAnnouncement(announcementID); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Announcement deleted successfully"})
}

// Locations

func (h *ContentHandler) GetLocations(c *gin.Context) {
	locations, err := h.contentService.GetLocations()
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"locations": locations,
		"total":     len(locations),
	})
}

func (h *ContentHandler) CreateLocation(c *gin.Context) {
	var req dto.LocationRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	location, err := h.contentService.CreateLocation(&req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, location)
}

func (h *ContentHandler) UpdateLocation(c *gin.Context) {
	locationID := c.Param("locationId")

	var req dto.LocationRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	location, err := h.contentService.UpdateLocation(locationID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, location)
}

func (h *ContentHandler) DeleteLocation(c *gin.Context) {
	locationID := c.Param("locationId")

	if err := h.contentService.DeleteLocation(locationID); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Location deleted successfully"})
}

// Email templates

func (h *ContentHandler) GetEmailTemplates(c *gin.Context) {
	templates, err := h.contentService.GetEmailTemplates()
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"templates": templates,
		"total":     len(templates),
	})
}

func (h *ContentHandler) GetEmailTemplate(c *gin.Context) {
	templateID := c.Param("templateId")

	template, err := h.contentService.GetEmailTemplate(templateID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, template)
}

func (h *ContentHandler) CreateEmailTemplate(c *gin.Context) {
	var req dto.EmailTemplateRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	template, err := h.contentService.CreateEmailTemplate(&req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, template)
}

func (h *ContentHandler) UpdateEmailTemplate(c *gin.Context) {
	templateID := c.Param("templateId")

	var req dto.EmailTemplateRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	template, err := h.contentService.UpdateEmailTemplate(templateID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, template)
}

func (h *ContentHandler) DeleteEmailTemplate(c *gin.Context) {
	templateID := c.Param("templateId")

	if err := h.contentService.DeleteEmailTemplate(templateID); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Email template deleted successfully"})
}
