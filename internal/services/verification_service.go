package services

import (
	"context"
	"encoding/json"
	"errors"

	"gebeya_backend/internal/logger"
	"gebeya_backend/internal/models"
	"gebeya_backend/internal/repositories"
	"gebeya_backend/internal/services/dto"
	"gebeya_backend/pkg/apperrors"

	"gorm.io/datatypes"
)

// VerificationService handles the document-backed verification badge
// for company accounts.
type VerificationService interface {
	RequestVerification(ctx context.Context, userID string, req *dto.RequestVerificationRequest) error
	GetVerificationStatus(userID string) (*dto.VerificationStatusResponse, error)
	ListPendingVerifications() ([]dto.PendingVerificationItem, error)
	ApproveVerification(ctx context.Context, adminID, userID string) error
	RejectVerification(ctx context.Context, adminID, userID string, req *dto.RejectVerificationRequest) error
}

type verificationService struct {
	userRepo         repositories.UserRepository
	notificationRepo repositories.NotificationRepository
}

func NewVerificationService(
	userRepo repositories.UserRepository,
	notificationRepo repositories.NotificationRepository,
) VerificationService {
	return &verificationService{
		userRepo:         userRepo,
		notificationRepo: notificationRepo,
	}
}

func (s *verificationService) RequestVerification(ctx context.Context, userID string, req *dto.RequestVerificationRequest) error {
	user, err := s.loadCompany(userID)
	if err != nil {
		return err
	}

	switch user.VerificationStatus {
	case models.VerificationStatusPending:
		return apperrors.ErrInvalidOperation("verification", "Verification request already pending")
	case models.VerificationStatusApproved:
		return apperrors.ErrInvalidOperation("verification", "Account is already verified")
	}

	raw, err := json.Marshal(req.Documents)
	if err != nil {
		return apperrors.NewBadRequestError("Invalid documents")
	}

	if err := s.userRepo.RequestVerification(userID, datatypes.JSON(raw)); err != nil {
		return apperrors.InternalError(err)
	}

	logger.CtxInfo(ctx, "verification requested", "user_id", userID)
	return nil
}

func (s *verificationService) GetVerificationStatus(userID string) (*dto.VerificationStatusResponse, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}

	return &dto.VerificationStatusResponse{
		AccountType:        user.AccountType,
		VerificationStatus: user.VerificationStatus,
		RequestedAt:        user.VerificationRequestedAt,
		VerifiedAt:         user.VerifiedAt,
		RejectionReason:    user.VerificationRejectionReason,
	}, nil
}

func (s *verificationService) ListPendingVerifications() ([]dto.PendingVerificationItem, error) {
	users, err := s.userRepo.FindPendingVerifications()
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	items := make([]dto.PendingVerificationItem, 0, len(users))
	for i := range users {
		user := &users[i]

		email := ""
		if user.Email != nil {
			email = *user.Email
		}

		var documents []string
		if user.VerificationDocuments != nil {
			_ = json.Unmarshal(user.VerificationDocuments, &documents)
		}

		items = append(items, dto.PendingVerificationItem{
			UserID:      user.ID,
			FullName:    user.FullName,
			Email:       email,
			CompanyName: user.CompanyName,
			Documents:   documents,
			RequestedAt: user.VerificationRequestedAt,
		})
	}
	return items, nil
}

func (s *verificationService) ApproveVerification(ctx context.Context, adminID, userID string) error {
	user, err := s.loadCompany(userID)
	if err != nil {
		return err
	}
	if user.VerificationStatus != models.VerificationStatusPending {
		return apperrors.ErrInvalidOperation("verification", "No pending verification request for this user")
	}

	if err := s.userRepo.ApproveVerification(userID); err != nil {
		return apperrors.InternalError(err)
	}

	s.notify(ctx, userID, repositories.NotificationTypeVerificationApproved,
		"Company verified", "Your company account has been verified.")

	logger.CtxInfo(ctx, "verification approved", "user_id", userID, "admin_id", adminID)
	return nil
}

func (s *verificationService) RejectVerification(ctx context.Context, adminID, userID string, req *dto.RejectVerificationRequest) error {
	user, err := s.loadCompany(userID)
	if err != nil {
		return err
	}
	if user.VerificationStatus != models.VerificationStatusPending {
		return apperrors.ErrInvalidOperation("verification", "No pending verification request for this user")
	}

	if err := s.userRepo.RejectVerification(userID, req.Reason); err != nil {
		return apperrors.InternalError(err)
	}

	s.notify(ctx, userID, repositories.NotificationTypeVerificationRejected,
		"Verification rejected", "Your verification request was rejected: "+req.Reason)

	logger.CtxInfo(ctx, "verification rejected", "user_id", userID, "admin_id", adminID)
	return nil
}

// loadCompany loads the user and enforces the company account rule the
// whole workflow shares.
func (s *verificationService) loadCompany(userID string) (*models.User, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}
	if user.AccountType != models.AccountTypeCompany {
		return nil, apperrors.ErrInvalidOperation("verification", "Only company accounts can be verified")
	}
	return user, nil
}

// notify is fire-and-forget.
func (s *verificationService) notify(ctx context.Context, userID, notificationType, title, message string) {
	notification := &models.Notification{
		UserID:  userID,
		Type:    notificationType,
		Title:   title,
		Message: message,
	}
	if err := s.notificationRepo.Create(notification); err != nil {
		logger.CtxWithError(ctx, "failed to create verification notification", err, "user_id", userID)
	}
}
