package dto

type CreateCategoryRequest struct {
	Name        string `json:"name" binding:"required,min=2"`
	Slug        string `json:"slug" binding:"required,min=2"`
	Icon        string `json:"icon"`
	Description string `json:"description"`
}

type UpdateCategoryRequest struct {
	Name        string  `json:"name" binding:"omitempty,min=2"`
	Slug        string  `json:"slug" binding:"omitempty,min=2"`
	Icon        *string `json:"icon"`
	Description *string `json:"description"`
	IsActive    *bool   `json:"is_active"`
}
