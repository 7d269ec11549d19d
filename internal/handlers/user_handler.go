package handlers

import (
	"net/http"

	"gebeya_backend/internal/middleware"
	"gebeya_backend/internal/services"
	"gebeya_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	*BaseHandler
	userService    services.UserService
	listingService services.ListingService
	paymentService services.PaymentService
}

func NewUserHandler(
	base *BaseHandler,
	userService services.UserService,
	listingService services.ListingService,
	paymentService services.PaymentService,
) *UserHandler {
	return &UserHandler{
		BaseHandler:    base,
		userService:    userService,
		listingService: listingService,
		paymentService: paymentService,
	}
}

func (h *UserHandler) RegisterRoutes(r *gin.RouterGroup) {
	users := r.Group("/users/me")
	users.Use(middleware.AuthMiddleware())
	{
		users.PUT("", h.UpdateProfile)
		users.GET("/listings", h.GetMyListings)
		users.GET("/applications", h.GetMyApplications)
		users.GET("/favorites", h.GetFavorites)
		users.GET("/payments", h.GetPaymentHistory)
	}
}

func (h *UserHandler) UpdateProfile(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateProfileRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	user, err := h.userService.UpdateProfile(userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}

func (h *UserHandler) GetMyListings(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	listings, err := h.listingService.GetMyListings(userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"listings": listings,
		"total":    len(listings),
	})
}

func (h *UserHandler) GetMyApplications(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	apps, err := h.listingService.GetMyApplications(userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"applications": apps,
		"total":        len(apps),
	})
}

func (h *UserHandler) GetFavorites(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	listings, err := h.listingService.GetFavorites(userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"listings": listings,
		"total":    len(listings),
	})
}

func (h *UserHandler) GetPaymentHistory(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	limit := ParseQueryInt(c, "limit", 20)

	history, err := h.paymentService.GetPaymentHistory(userID, limit)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"payments": history,
		"total":    len(history),
	})
}
