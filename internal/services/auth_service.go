package services

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"time"

	"gebeya_backend/internal/auth"
	"gebeya_backend/internal/logger"
	"gebeya_backend/internal/models"
	"gebeya_backend/internal/pkg/email"
	"gebeya_backend/internal/pkg/sms"
	"gebeya_backend/internal/repositories"
	"gebeya_backend/internal/services/dto"
	"gebeya_backend/pkg/apperrors"
)

const otpTTL = 10 * time.Minute

type AuthService interface {
	Register(ctx context.Context, req *dto.RegisterRequest) (*dto.RegisterResponse, error)
	VerifyOTP(ctx context.Context, req *dto.VerifyOTPRequest) (*dto.AuthResponse, error)
	ResendOTP(ctx context.Context, req *dto.ResendOTPRequest) error
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error)
	GetMe(userID string) (*dto.UserResponse, error)
	ForgotPassword(ctx context.Context, req *dto.ForgotPasswordRequest) (*dto.RegisterResponse, error)
	ResetPassword(ctx context.Context, req *dto.ResetPasswordRequest) error
}

type authService struct {
	userRepo    repositories.UserRepository
	emailSender email.Sender
	smsSender   sms.Sender
}

func NewAuthService(userRepo repositories.UserRepository, emailSender email.Sender, smsSender sms.Sender) AuthService {
	return &authService{
		userRepo:    userRepo,
		emailSender: emailSender,
		smsSender:   smsSender,
	}
}

// Register creates an unverified account and sends a verification code
// to whichever contact the user registered with.
func (s *authService) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.RegisterResponse, error) {
	if req.Email == "" && req.Phone == "" {
		return nil, apperrors.NewBadRequestError("Either email or phone is required")
	}

	passwordHash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	user := &models.User{
		FullName:     req.FullName,
		PasswordHash: passwordHash,
		Role:         models.UserRoleUser,
		AccountType:  models.AccountTypeIndividual,
		CompanyName:  req.CompanyName,
	}
	if req.Email != "" {
		user.Email = &req.Email
	}
	if req.Phone != "" {
		user.Phone = &req.Phone
	}
	if req.AccountType != "" {
		user.AccountType = models.AccountType(req.AccountType)
	}

	if err := s.userRepo.Create(user); err != nil {
		if errors.Is(err, repositories.ErrUserAlreadyExists) {
			if req.Email != "" {
				return nil, apperrors.ErrEmailAlreadyExists
			}
			return nil, apperrors.ErrPhoneAlreadyExists
		}
		return nil, apperrors.InternalError(err)
	}

	if err := s.issueOTP(ctx, user, models.OTPPurposeVerify); err != nil {
		return nil, err
	}

	return &dto.RegisterResponse{
		UserID:  user.ID,
		Message: "Verification code sent",
	}, nil
}

// VerifyOTP consumes a verification code, activates the account and
// issues an access token.
func (s *authService) VerifyOTP(ctx context.Context, req *dto.VerifyOTPRequest) (*dto.AuthResponse, error) {
	user, err := s.userRepo.FindByID(req.UserID)
	if err != nil {
		return nil, apperrors.ErrInvalidOTP
	}

	otp, err := s.userRepo.FindValidOTP(user.ID, req.Code, models.OTPPurposeVerify)
	if err != nil {
		return nil, apperrors.ErrInvalidOTP
	}

	if err := s.userRepo.MarkOTPUsed(otp.ID); err != nil {
		return nil, apperrors.InternalError(err)
	}
	if err := s.userRepo.MarkVerified(user.ID); err != nil {
		return nil, apperrors.InternalError(err)
	}
	user.IsVerified = true

	token, err := auth.GenerateToken(user.ID, user.Role)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	if user.Email != nil {
		if err := s.emailSender.SendWelcome(*user.Email, user.FullName); err != nil {
			logger.CtxWithError(ctx, "failed to send welcome email", err, "user_id", user.ID)
		}
	}

	return &dto.AuthResponse{
		Token: token,
		User:  dto.UserFromModel(user),
	}, nil
}

func (s *authService) ResendOTP(ctx context.Context, req *dto.ResendOTPRequest) error {
	user, err := s.userRepo.FindByID(req.UserID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return apperrors.ErrNotFound(err)
		}
		return apperrors.InternalError(err)
	}

	if user.IsVerified {
		return apperrors.ErrInvalidOperation("auth", "Account is already verified")
	}

	return s.issueOTP(ctx, user, models.OTPPurposeVerify)
}

// Login authenticates by email or phone, detected from the identifier.
func (s *authService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error) {
	user, err := s.findByIdentifier(req.Identifier)
	if err != nil {
		return nil, apperrors.ErrInvalidCredentials
	}

	if !auth.CheckPasswordHash(req.Password, user.PasswordHash) {
		return nil, apperrors.ErrInvalidCredentials
	}
	if user.IsBanned {
		return nil, apperrors.ErrUserBanned
	}
	if !user.IsVerified {
		return nil, apperrors.ErrUserNotVerified
	}

	token, err := auth.GenerateToken(user.ID, user.Role)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	logger.CtxInfo(ctx, "user logged in", "user_id", user.ID)

	return &dto.AuthResponse{
		Token: token,
		User:  dto.UserFromModel(user),
	}, nil
}

func (s *authService) GetMe(userID string) (*dto.UserResponse, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}
	return dto.UserFromModel(user), nil
}

// ForgotPassword sends a reset code. The response is the same whether or
// not the account exists, to avoid leaking registered identifiers.
func (s *authService) ForgotPassword(ctx context.Context, req *dto.ForgotPasswordRequest) (*dto.RegisterResponse, error) {
	resp := &dto.RegisterResponse{Message: "If the account exists, a reset code has been sent"}

	user, err := s.findByIdentifier(req.Identifier)
	if err != nil {
		return resp, nil
	}

	if err := s.issueOTP(ctx, user, models.OTPPurposeReset); err != nil {
		return nil, err
	}

	resp.UserID = user.ID
	return resp, nil
}

func (s *authService) ResetPassword(ctx context.Context, req *dto.ResetPasswordRequest) error {
	otp, err := s.userRepo.FindValidOTP(req.UserID, req.Code, models.OTPPurposeReset)
	if err != nil {
		return apperrors.ErrInvalidOTP
	}

	passwordHash, err := auth.HashPassword(req.NewPassword)
	if err != nil {
		return apperrors.InternalError(err)
	}

	if err := s.userRepo.MarkOTPUsed(otp.ID); err != nil {
		return apperrors.InternalError(err)
	}
	if err := s.userRepo.UpdatePassword(req.UserID, passwordHash); err != nil {
		return apperrors.InternalError(err)
	}

	logger.CtxInfo(ctx, "password reset", "user_id", req.UserID)
	return nil
}

// issueOTP invalidates earlier codes, stores a new one and delivers it
// over email or SMS. Delivery failures are logged, not returned: the
// code can always be resent.
func (s *authService) issueOTP(ctx context.Context, user *models.User, purpose models.OTPPurpose) error {
	code, err := generateOTP()
	if err != nil {
		return apperrors.InternalError(err)
	}

	if err := s.userRepo.InvalidateOTPs(user.ID, purpose); err != nil {
		return apperrors.InternalError(err)
	}

	otp := &models.OTPCode{
		UserID:    user.ID,
		Code:      code,
		Purpose:   purpose,
		ExpiresAt: time.Now().Add(otpTTL),
	}
	if err := s.userRepo.CreateOTP(otp); err != nil {
		return apperrors.InternalError(err)
	}

	switch {
	case user.Email != nil:
		if err := s.emailSender.SendOTP(*user.Email, user.FullName, code); err != nil {
			logger.CtxWithError(ctx, "failed to send otp email", err, "user_id", user.ID)
		}
	case user.Phone != nil:
		message := fmt.Sprintf("Your Gebeya verification code is %s. It expires in 10 minutes.", code)
		if err := s.smsSender.Send(ctx, *user.Phone, message); err != nil {
			logger.CtxWithError(ctx, "failed to send otp sms", err, "user_id", user.ID)
		}
	}

	return nil
}

func (s *authService) findByIdentifier(identifier string) (*models.User, error) {
	if strings.Contains(identifier, "@") {
		return s.userRepo.FindByEmail(identifier)
	}
	return s.userRepo.FindByPhone(identifier)
}

// generateOTP returns a random 6-digit code.
func generateOTP() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}
