package services

import (
	"gebeya_backend/internal/models"
	"gebeya_backend/internal/repositories"
	"gebeya_backend/internal/services/dto"
	"gebeya_backend/pkg/apperrors"
)

type AdminService interface {
	GetDashboardStats() (*dto.DashboardStats, error)
}

type adminService struct {
	userRepo    repositories.UserRepository
	listingRepo repositories.ListingRepository
}

func NewAdminService(userRepo repositories.UserRepository, listingRepo repositories.ListingRepository) AdminService {
	return &adminService{
		userRepo:    userRepo,
		listingRepo: listingRepo,
	}
}

func (s *adminService) GetDashboardStats() (*dto.DashboardStats, error) {
	var stats dto.DashboardStats
	var err error

	if stats.TotalUsers, err = s.userRepo.CountAll(); err != nil {
		return nil, apperrors.InternalError(err)
	}
	if stats.SubscribedUsers, err = s.userRepo.CountSubscribed(); err != nil {
		return nil, apperrors.InternalError(err)
	}
	if stats.TotalListings, err = s.listingRepo.CountByStatus(""); err != nil {
		return nil, apperrors.InternalError(err)
	}
	if stats.PendingListings, err = s.listingRepo.CountByStatus(models.ListingStatusPending); err != nil {
		return nil, apperrors.InternalError(err)
	}
	if stats.ApprovedListings, err = s.listingRepo.CountByStatus(models.ListingStatusApproved); err != nil {
		return nil, apperrors.InternalError(err)
	}
	if stats.RejectedListings, err = s.listingRepo.CountByStatus(models.ListingStatusRejected); err != nil {
		return nil, apperrors.InternalError(err)
	}

	return &stats, nil
}
