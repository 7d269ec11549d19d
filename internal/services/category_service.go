package services

import (
	"errors"

	"gebeya_backend/internal/models"
	"gebeya_backend/internal/repositories"
	"gebeya_backend/internal/services/dto"
	"gebeya_backend/pkg/apperrors"
)

type CategoryService interface {
	CreateCategory(req *dto.CreateCategoryRequest) (*models.Category, error)
	GetCategories(activeOnly bool) ([]models.Category, error)
	GetCategoryBySlug(slug string) (*models.Category, error)
	UpdateCategory(categoryID string, req *dto.UpdateCategoryRequest) (*models.Category, error)
	DeleteCategory(categoryID string) error
}

type categoryService struct {
	categoryRepo repositories.CategoryRepository
}

func NewCategoryService(categoryRepo repositories.CategoryRepository) CategoryService {
	return &categoryService{categoryRepo: categoryRepo}
}

func (s *categoryService) CreateCategory(req *dto.CreateCategoryRequest) (*models.Category, error) {
	category := &models.Category{
		Name:        req.Name,
		Slug:        req.Slug,
		Icon:        req.Icon,
		Description: req.Description,
		IsActive:    true,
	}

	if err := s.categoryRepo.Create(category); err != nil {
		if errors.Is(err, repositories.ErrCategoryAlreadyExists) {
			return nil, apperrors.ErrAlreadyExists(err)
		}
		return nil, apperrors.InternalError(err)
	}
	return category, nil
}

func (s *categoryService) GetCategories(activeOnly bool) ([]models.Category, error) {
	categories, err := s.categoryRepo.FindAll(activeOnly)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return categories, nil
}

func (s *categoryService) GetCategoryBySlug(slug string) (*models.Category, error) {
	category, err := s.categoryRepo.FindBySlug(slug)
	if err != nil {
		if errors.Is(err, repositories.ErrCategoryNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}
	return category, nil
}

func (s *categoryService) UpdateCategory(categoryID string, req *dto.UpdateCategoryRequest) (*models.Category, error) {
	category, err := s.categoryRepo.FindByID(categoryID)
	if err != nil {
		if errors.Is(err, repositories.ErrCategoryNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}

	if req.Name != "" {
		category.Name = req.Name
	}
	if req.Slug != "" {
		category.Slug = req.Slug
	}
	if req.Icon != nil {
		category.Icon = *req.Icon
	}
	if req.Description != nil {
		category.Description = *req.Description
	}
	if req.IsActive != nil {
		category.IsActive = *req.IsActive
	}

	if err := s.categoryRepo.Update(category); err != nil {
		return nil, apperrors.InternalError(err)
	}
	return category, nil
}

func (s *categoryService) DeleteCategory(categoryID string) error {
	if err := s.categoryRepo.Delete(categoryID); err != nil {
		if errors.Is(err, repositories.ErrCategoryNotFound) {
			return apperrors.ErrNotFound(err)
		}
		return apperrors.InternalError(err)
	}
	return nil
}
