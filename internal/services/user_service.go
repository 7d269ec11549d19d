package services

import (
	"errors"

	"gebeya_backend/internal/models"
	"gebeya_backend/internal/repositories"
	"gebeya_backend/internal/services/dto"
	"gebeya_backend/pkg/apperrors"
)

type UserService interface {
	UpdateProfile(userID string, req *dto.UpdateProfileRequest) (*dto.UserResponse, error)
	GetUsers(query *dto.AdminUsersQuery) ([]dto.UserResponse, int64, error)
	SetBanned(adminID, userID string, banned bool) error
}

type userService struct {
	userRepo repositories.UserRepository
}

func NewUserService(userRepo repositories.UserRepository) UserService {
	return &userService{userRepo: userRepo}
}

func (s *userService) UpdateProfile(userID string, req *dto.UpdateProfileRequest) (*dto.UserResponse, error) {
	updates := map[string]interface{}{}
	if req.FullName != "" {
		updates["full_name"] = req.FullName
	}
	if req.CompanyName != nil {
		updates["company_name"] = *req.CompanyName
	}

	if len(updates) > 0 {
		if err := s.userRepo.UpdateProfile(userID, updates); err != nil {
			if errors.Is(err, repositories.ErrUserNotFound) {
				return nil, apperrors.ErrNotFound(err)
			}
			return nil, apperrors.InternalError(err)
		}
	}

	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return dto.UserFromModel(user), nil
}

func (s *userService) GetUsers(query *dto.AdminUsersQuery) ([]dto.UserResponse, int64, error) {
	filter := repositories.UserFilter{
		Search:   query.Search,
		IsBanned: query.Banned,
		Page:     normalizePage(query.Page),
		PageSize: normalizePageSize(query.PageSize),
	}
	if query.Role != "" {
		filter.Role = models.UserRole(query.Role)
	}

	users, total, err := s.userRepo.FindWithFilter(filter)
	if err != nil {
		return nil, 0, apperrors.InternalError(err)
	}

	responses := make([]dto.UserResponse, 0, len(users))
	for i := range users {
		responses = append(responses, *dto.UserFromModel(&users[i]))
	}
	return responses, total, nil
}

// SetBanned toggles the ban flag. Admins cannot ban themselves.
func (s *userService) SetBanned(adminID, userID string, banned bool) error {
	if adminID == userID {
		return apperrors.ErrCannotModifySelf
	}

	if err := s.userRepo.SetBanned(userID, banned); err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return apperrors.ErrNotFound(err)
		}
		return apperrors.InternalError(err)
	}
	return nil
}
