package services

import (
	"context"
	"regexp"
	"testing"
	"time"

	"gebeya_backend/internal/auth"
	"gebeya_backend/internal/config"
	"gebeya_backend/internal/models"
	"gebeya_backend/internal/repositories"
	"gebeya_backend/internal/services/dto"
	"gebeya_backend/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type authUserRepo struct {
	repositories.UserRepository

	users     map[string]*models.User
	otps      []*models.OTPCode
	createErr error
	verified  []string
}

func (f *authUserRepo) FindByID(id string) (*models.User, error) {
	user, ok := f.users[id]
	if !ok {
		return nil, repositories.ErrUserNotFound
	}
	return user, nil
}

func (f *authUserRepo) FindByEmail(email string) (*models.User, error) {
	for _, user := range f.users {
		if user.Email != nil && *user.Email == email {
			return user, nil
		}
	}
	return nil, repositories.ErrUserNotFound
}

func (f *authUserRepo) FindByPhone(phone string) (*models.User, error) {
	for _, user := range f.users {
		if user.Phone != nil && *user.Phone == phone {
			return user, nil
		}
	}
	return nil, repositories.ErrUserNotFound
}

func (f *authUserRepo) Create(user *models.User) error {
	if f.createErr != nil {
		return f.createErr
	}
	user.ID = "user-new"
	f.users[user.ID] = user
	return nil
}

func (f *authUserRepo) CreateOTP(otp *models.OTPCode) error {
	otp.ID = "otp-new"
	f.otps = append(f.otps, otp)
	return nil
}

func (f *authUserRepo) FindValidOTP(userID, code string, purpose models.OTPPurpose) (*models.OTPCode, error) {
	for _, otp := range f.otps {
		if otp.UserID == userID && otp.Code == code && otp.Purpose == purpose && otp.UsedAt == nil {
			return otp, nil
		}
	}
	return nil, repositories.ErrOTPNotFound
}

func (f *authUserRepo) MarkOTPUsed(otpID string) error {
	now := time.Now()
	for _, otp := range f.otps {
		if otp.ID == otpID {
			otp.UsedAt = &now
		}
	}
	return nil
}

func (f *authUserRepo) InvalidateOTPs(userID string, purpose models.OTPPurpose) error {
	now := time.Now()
	for _, otp := range f.otps {
		if otp.UserID == userID && otp.Purpose == purpose {
			otp.UsedAt = &now
		}
	}
	return nil
}

func (f *authUserRepo) MarkVerified(userID string) error {
	f.verified = append(f.verified, userID)
	if user, ok := f.users[userID]; ok {
		user.IsVerified = true
	}
	return nil
}

func (f *authUserRepo) UpdatePassword(userID, passwordHash string) error {
	if user, ok := f.users[userID]; ok {
		user.PasswordHash = passwordHash
	}
	return nil
}

type recordingEmailSender struct {
	otps     []string
	welcomes []string
}

func (s *recordingEmailSender) SendOTP(to, name, code string) error {
	s.otps = append(s.otps, code)
	return nil
}

func (s *recordingEmailSender) SendWelcome(to, name string) error {
	s.welcomes = append(s.welcomes, to)
	return nil
}

type recordingSMSSender struct {
	messages []string
}

func (s *recordingSMSSender) Send(ctx context.Context, phone, message string) error {
	s.messages = append(s.messages, message)
	return nil
}

func setAuthTestConfig(t *testing.T) {
	t.Helper()
	prev := config.AppConfig
	cfg := &config.Config{}
	cfg.JWT.Secret = "test-signing-secret"
	cfg.JWT.TTL = 60
	config.AppConfig = cfg
	t.Cleanup(func() { config.AppConfig = prev })
}

func newAuthFixture(t *testing.T) (AuthService, *authUserRepo, *recordingEmailSender, *recordingSMSSender) {
	t.Helper()
	setAuthTestConfig(t)

	repo := &authUserRepo{users: map[string]*models.User{}}
	emailSender := &recordingEmailSender{}
	smsSender := &recordingSMSSender{}
	return NewAuthService(repo, emailSender, smsSender), repo, emailSender, smsSender
}

func TestRegister(t *testing.T) {
	t.Run("email registration sends an email code", func(t *testing.T) {
		svc, repo, emailSender, smsSender := newAuthFixture(t)

		resp, err := svc.Register(context.Background(), &dto.RegisterRequest{
			FullName: "Abebe Bikila",
			Email:    "abebe@example.com",
			Password: "sekret-password",
		})
		require.NoError(t, err)
		assert.NotEmpty(t, resp.UserID)

		require.Len(t, repo.otps, 1)
		assert.Regexp(t, regexp.MustCompile(`^\d{6}$`), repo.otps[0].Code)
		assert.Equal(t, models.OTPPurposeVerify, repo.otps[0].Purpose)
		assert.WithinDuration(t, time.Now().Add(10*time.Minute), repo.otps[0].ExpiresAt, 5*time.Second)

		require.Len(t, emailSender.otps, 1)
		assert.Equal(t, repo.otps[0].Code, emailSender.otps[0])
		assert.Empty(t, smsSender.messages)

		created := repo.users[resp.UserID]
		require.NotNil(t, created)
		assert.False(t, created.IsVerified)
		assert.True(t, auth.CheckPasswordHash("sekret-password", created.PasswordHash))
	})

	t.Run("phone registration sends an sms code", func(t *testing.T) {
		svc, _, emailSender, smsSender := newAuthFixture(t)

		_, err := svc.Register(context.Background(), &dto.RegisterRequest{
			FullName: "Abebe Bikila",
			Phone:    "+251911234567",
			Password: "sekret-password",
		})
		require.NoError(t, err)

		assert.Empty(t, emailSender.otps)
		require.Len(t, smsSender.messages, 1)
	})

	t.Run("requires a contact", func(t *testing.T) {
		svc, _, _, _ := newAuthFixture(t)

		_, err := svc.Register(context.Background(), &dto.RegisterRequest{
			FullName: "Abebe Bikila",
			Password: "sekret-password",
		})
		var appErr *apperrors.AppError
		require.True(t, apperrors.As(err, &appErr))
		assert.Equal(t, apperrors.CodeValidationFailed, appErr.Code)
	})

	t.Run("duplicate email", func(t *testing.T) {
		svc, repo, _, _ := newAuthFixture(t)
		repo.createErr = repositories.ErrUserAlreadyExists

		_, err := svc.Register(context.Background(), &dto.RegisterRequest{
			FullName: "Abebe Bikila",
			Email:    "abebe@example.com",
			Password: "sekret-password",
		})
		assert.Equal(t, apperrors.ErrEmailAlreadyExists, err)
	})
}

func TestVerifyOTPFlow(t *testing.T) {
	svc, repo, emailSender, _ := newAuthFixture(t)

	resp, err := svc.Register(context.Background(), &dto.RegisterRequest{
		FullName: "Abebe Bikila",
		Email:    "abebe@example.com",
		Password: "sekret-password",
	})
	require.NoError(t, err)
	code := repo.otps[0].Code

	t.Run("wrong code rejected", func(t *testing.T) {
		_, err := svc.VerifyOTP(context.Background(), &dto.VerifyOTPRequest{
			UserID: resp.UserID,
			Code:   "000000",
		})
		assert.Equal(t, apperrors.ErrInvalidOTP, err)
	})

	t.Run("correct code activates and issues a token", func(t *testing.T) {
		authResp, err := svc.VerifyOTP(context.Background(), &dto.VerifyOTPRequest{
			UserID: resp.UserID,
			Code:   code,
		})
		require.NoError(t, err)
		assert.NotEmpty(t, authResp.Token)
		assert.True(t, authResp.User.IsVerified)
		assert.Contains(t, repo.verified, resp.UserID)
		assert.Len(t, emailSender.welcomes, 1)
	})

	t.Run("code cannot be replayed", func(t *testing.T) {
		_, err := svc.VerifyOTP(context.Background(), &dto.VerifyOTPRequest{
			UserID: resp.UserID,
			Code:   code,
		})
		assert.Equal(t, apperrors.ErrInvalidOTP, err)
	})
}

func TestLogin(t *testing.T) {
	hash, err := auth.HashPassword("sekret-password")
	require.NoError(t, err)

	email := "abebe@example.com"
	phone := "+251911234567"
	baseUser := func() *models.User {
		return &models.User{
			BaseModel:    models.BaseModel{ID: "user-1"},
			FullName:     "Abebe Bikila",
			Email:        &email,
			Phone:        &phone,
			PasswordHash: hash,
			Role:         models.UserRoleUser,
			IsVerified:   true,
		}
	}

	t.Run("by email", func(t *testing.T) {
		svc, repo, _, _ := newAuthFixture(t)
		repo.users["user-1"] = baseUser()

		resp, err := svc.Login(context.Background(), &dto.LoginRequest{
			Identifier: email,
			Password:   "sekret-password",
		})
		require.NoError(t, err)
		assert.NotEmpty(t, resp.Token)
	})

	t.Run("by phone", func(t *testing.T) {
		svc, repo, _, _ := newAuthFixture(t)
		repo.users["user-1"] = baseUser()

		_, err := svc.Login(context.Background(), &dto.LoginRequest{
			Identifier: phone,
			Password:   "sekret-password",
		})
		require.NoError(t, err)
	})

	t.Run("wrong password", func(t *testing.T) {
		svc, repo, _, _ := newAuthFixture(t)
		repo.users["user-1"] = baseUser()

		_, err := svc.Login(context.Background(), &dto.LoginRequest{
			Identifier: email,
			Password:   "wrong",
		})
		assert.Equal(t, apperrors.ErrInvalidCredentials, err)
	})

	t.Run("banned account", func(t *testing.T) {
		svc, repo, _, _ := newAuthFixture(t)
		user := baseUser()
		user.IsBanned = true
		repo.users["user-1"] = user

		_, err := svc.Login(context.Background(), &dto.LoginRequest{
			Identifier: email,
			Password:   "sekret-password",
		})
		assert.Equal(t, apperrors.ErrUserBanned, err)
	})

	t.Run("unverified account", func(t *testing.T) {
		svc, repo, _, _ := newAuthFixture(t)
		user := baseUser()
		user.IsVerified = false
		repo.users["user-1"] = user

		_, err := svc.Login(context.Background(), &dto.LoginRequest{
			Identifier: email,
			Password:   "sekret-password",
		})
		assert.Equal(t, apperrors.ErrUserNotVerified, err)
	})
}

func TestPasswordReset(t *testing.T) {
	svc, repo, emailSender, _ := newAuthFixture(t)

	hash, err := auth.HashPassword("old-password")
	require.NoError(t, err)
	email := "abebe@example.com"
	repo.users["user-1"] = &models.User{
		BaseModel:    models.BaseModel{ID: "user-1"},
		FullName:     "Abebe Bikila",
		Email:        &email,
		PasswordHash: hash,
		IsVerified:   true,
	}

	t.Run("unknown identifier gets the same answer", func(t *testing.T) {
		resp, err := svc.ForgotPassword(context.Background(), &dto.ForgotPasswordRequest{
			Identifier: "stranger@example.com",
		})
		require.NoError(t, err)
		assert.Empty(t, resp.UserID)
		assert.Empty(t, emailSender.otps)
	})

	t.Run("reset with the emailed code", func(t *testing.T) {
		resp, err := svc.ForgotPassword(context.Background(), &dto.ForgotPasswordRequest{
			Identifier: email,
		})
		require.NoError(t, err)
		assert.Equal(t, "user-1", resp.UserID)
		require.Len(t, emailSender.otps, 1)

		err = svc.ResetPassword(context.Background(), &dto.ResetPasswordRequest{
			UserID:      "user-1",
			Code:        emailSender.otps[0],
			NewPassword: "new-password",
		})
		require.NoError(t, err)
		assert.True(t, auth.CheckPasswordHash("new-password", repo.users["user-1"].PasswordHash))
	})
}
