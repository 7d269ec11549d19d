package handlers

import (
	"net/http"

	"gebeya_backend/internal/middleware"
	"gebeya_backend/internal/models"
	"gebeya_backend/internal/services"
	"gebeya_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type CategoryHandler struct {
	*BaseHandler
	categoryService services.CategoryService
}

func NewCategoryHandler(base *BaseHandler, categoryService services.CategoryService) *CategoryHandler {
	return &CategoryHandler{
		BaseHandler:     base,
		categoryService: categoryService,
	}
}

func (h *CategoryHandler) RegisterRoutes(r *gin.RouterGroup) {
	categories := r.Group("/categories")
	{
		categories.GET("", h.GetCategories)
		categories.GET("/:slug", h.GetCategory)
	}

	admin := r.Group("/admin/categories")
	admin.Use(middleware.AuthMiddleware(), middleware.RoleMiddleware(models.UserRoleAdmin))
	{
		admin.POST("", h.CreateCategory)
		admin.PUT("/:categoryId", h.UpdateCategory)
		admin.DELETE("/:categoryId", h.DeleteCategory)
	}
}

func (h *CategoryHandler) GetCategories(c *gin.Context) {
	activeOnly := !ParseQueryBool(c, "include_inactive")

	categories, err := h.categoryService.GetCategories(activeOnly)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"categories": categories,
		"total":      len(categories),
	})
}

func (h *CategoryHandler) GetCategory(c *gin.Context) {
	slug := c.Param("slug")

	category, err := h.categoryService.GetCategoryBySlug(slug)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, category)
}

func (h *CategoryHandler) CreateCategory(c *gin.Context) {
	var req dto.CreateCategoryRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	category, err := h.categoryService.CreateCategory(&req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, category)
}

func (h *CategoryHandler) UpdateCategory(c *gin.Context) {
	categoryID := c.Param("categoryId")

	var req dto.UpdateCategoryRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	category, err := h.categoryService.UpdateCategory(categoryID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, category)
}

func (h *CategoryHandler) DeleteCategory(c *gin.Context) {
	categoryID := c.Param("categoryId")

	if err := h.categoryService.DeleteCategory(categoryID); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Category deleted successfully"})
}
