package handlers

import (
	"net/http"

	"gebeya_backend/internal/middleware"
	"gebeya_backend/internal/services"
	"gebeya_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type ListingHandler struct {
	*BaseHandler
	listingService services.ListingService
}

func NewListingHandler(base *BaseHandler, listingService services.ListingService) *ListingHandler {
	return &ListingHandler{
		BaseHandler:    base,
		listingService: listingService,
	}
}

func (h *ListingHandler) RegisterRoutes(r *gin.RouterGroup) {
	// Public browse. Optional auth lets owners see their own pending
	// listings and marks favorites for logged-in viewers.
	public := r.Group("/listings")
	public.Use(middleware.OptionalAuthMiddleware())
	{
		public.GET("", h.Browse)
		public.GET("/:listingId", h.GetListing)
		public.GET("/:listingId/comments", h.GetComments)
	}

	protected := r.Group("/listings")
	protected.Use(middleware.AuthMiddleware())
	{
		protected.POST("", h.CreateListing)
		protected.PUT("/:listingId", h.UpdateListing)
		protected.DELETE("/:listingId", h.DeleteListing)
		protected.POST("/:listingId/apply", h.Apply)
		protected.GET("/:listingId/applications", h.GetApplications)
		protected.PUT("/:listingId/applications/:applicationId", h.DecideApplication)
		protected.POST("/:listingId/comments", h.AddComment)
		protected.DELETE("/comments/:commentId", h.DeleteComment)
		protected.POST("/:listingId/favorite", h.ToggleFavorite)
	}
}

func (h *ListingHandler) Browse(c *gin.Context) {
	var query dto.BrowseListingsQuery
	if !h.BindAndValidate_Query(c, &query) {
		return
	}

	resp, err := h.listingService.BrowseListings(&query)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *ListingHandler) GetListing(c *gin.Context) {
	listingID := c.Param("listingId")
	viewerID := middleware.GetUserID(c)

	resp, err := h.listingService.GetListing(c.Request.Context(), listingID, viewerID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *ListingHandler) CreateListing(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.CreateListingRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	resp, err := h.listingService.CreateListing(c.Request.Context(), userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

func (h *ListingHandler) UpdateListing(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}
	listingID := c.Param("listingId")

	var req dto.UpdateListingRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	resp, err := h.listingService.UpdateListing(c.Request.Context(), userID, listingID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *ListingHandler) DeleteListing(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}
	listingID := c.Param("listingId")

	if err := h.listingService.DeleteListing(userID, h.IsAdmin(c), listingID); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Listing deleted successfully"})
}

func (h *ListingHandler) Apply(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}
	listingID := c.Param("listingId")

	var req dto.ApplyToListingRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	if err := h.listingService.ApplyToListing(c.Request.Context(), userID, listingID, &req); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Application submitted"})
}

func (h *ListingHandler) GetApplications(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}
	listingID := c.Param("listingId")

	apps, err := h.listingService.GetListingApplications(userID, listingID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"applications": apps,
		"total":        len(apps),
	})
}

func (h *ListingHandler) DecideApplication(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}
	listingID := c.Param("listingId")
	applicationID := c.Param("applicationId")

	var req struct {
		Status string `json:"status" binding:"required,oneof=accepted rejected"`
	}
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	err := h.listingService.DecideApplication(c.Request.Context(), userID, listingID, applicationID, req.Status == "accepted")
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Application " + req.Status})
}

func (h *ListingHandler) AddComment(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}
	listingID := c.Param("listingId")

	var req dto.CreateCommentRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	comment, err := h.listingService.AddComment(c.Request.Context(), userID, listingID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, comment)
}

func (h *ListingHandler) GetComments(c *gin.Context) {
	listingID := c.Param("listingId")

	comments, err := h.listingService.GetComments(listingID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"comments": comments,
		"total":    len(comments),
	})
}

func (h *ListingHandler) DeleteComment(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}
	commentID := c.Param("commentId")

	if err := h.listingService.DeleteComment(userID, commentID); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Comment deleted successfully"})
}

func (h *ListingHandler) ToggleFavorite(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}
	listingID := c.Param("listingId")

	favorited, err := h.listingService.ToggleFavorite(userID, listingID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"favorited": favorited})
}
