package repositories

import (
	"errors"
	"time"

	"gebeya_backend/internal/models"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

var (
	ErrUserNotFound      = errors.New("user not found")
	ErrUserAlreadyExists = errors.New("user already exists")
	ErrOTPNotFound       = errors.New("otp code not found or expired")
)

type UserRepository interface {
	// User operations
	FindByID(id string) (*models.User, error)
	FindByEmail(email string) (*models.User, error)
	FindByPhone(phone string) (*models.User, error)
	Create(user *models.User) error
	UpdateProfile(userID string, updates map[string]interface{}) error
	MarkVerified(userID string) error
	SetBanned(userID string, banned bool) error
	UpdatePassword(userID, passwordHash string) error

	// Company verification
	RequestVerification(userID string, documents datatypes.JSON) error
	ApproveVerification(userID string) error
	RejectVerification(userID, reason string) error
	FindPendingVerifications() ([]models.User, error)

	// OTP operations
	CreateOTP(otp *models.OTPCode) error
	FindValidOTP(userID, code string, purpose models.OTPPurpose) (*models.OTPCode, error)
	MarkOTPUsed(otpID string) error
	InvalidateOTPs(userID string, purpose models.OTPPurpose) error

	// Admin operations
	FindWithFilter(criteria UserFilter) ([]models.User, int64, error)
	CountAll() (int64, error)
	CountSubscribed() (int64, error)
}

type UserRepositoryImpl struct {
	db *gorm.DB
}

type UserFilter struct {
	Role     models.UserRole
	IsBanned *bool
	Search   string
	Page     int
	PageSize int
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &UserRepositoryImpl{db: db}
}

// User operations

func (r *UserRepositoryImpl) FindByID(id string) (*models.User, error) {
	var user models.User
	err := r.db.First(&user, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *UserRepositoryImpl) FindByEmail(email string) (*models.User, error) {
	var user models.User
	err := r.db.First(&user, "email = ?", email).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *UserRepositoryImpl) FindByPhone(phone string) (*models.User, error) {
	var user models.User
	err := r.db.First(&user, "phone = ?", phone).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *UserRepositoryImpl) Create(user *models.User) error {
	if user.Email != nil {
		var count int64
		if err := r.db.Model(&models.User{}).Where("email = ?", *user.Email).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return ErrUserAlreadyExists
		}
	}
	if user.Phone != nil {
		var count int64
		if err := r.db.Model(&models.User{}).Where("phone = ?", *user.Phone).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return ErrUserAlreadyExists
		}
	}

	return r.db.Create(user).Error
}

func (r *UserRepositoryImpl) UpdateProfile(userID string, updates map[string]interface{}) error {
	updates["updated_at"] = time.Now()

	result := r.db.Model(&models.User{}).Where("id = ?", userID).Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (r *UserRepositoryImpl) MarkVerified(userID string) error {
	return r.UpdateProfile(userID, map[string]interface{}{"is_verified": true})
}

func (r *UserRepositoryImpl) SetBanned(userID string, banned bool) error {
	return r.UpdateProfile(userID, map[string]interface{}{"is_banned": banned})
}

func (r *UserRepositoryImpl) UpdatePassword(userID, passwordHash string) error {
	return r.UpdateProfile(userID, map[string]interface{}{"password_hash": passwordHash})
}

// Company verification

func (r *UserRepositoryImpl) RequestVerification(userID string, documents datatypes.JSON) error {
	return r.UpdateProfile(userID, map[string]interface{}{
		"verification_status":           models.VerificationStatusPending,
		"verification_documents":        documents,
		"verification_requested_at":     time.Now(),
		"verification_rejection_reason": "",
	})
}

func (r *UserRepositoryImpl) ApproveVerification(userID string) error {
	return r.UpdateProfile(userID, map[string]interface{}{
		"verification_status":           models.VerificationStatusApproved,
		"verified_at":                   time.Now(),
		"verification_rejection_reason": "",
	})
}

func (r *UserRepositoryImpl) RejectVerification(userID, reason string) error {
	return r.UpdateProfile(userID, map[string]interface{}{
		"verification_status":           models.VerificationStatusRejected,
		"verification_rejection_reason": reason,
		"verified_at":                   nil,
	})
}

func (r *UserRepositoryImpl) FindPendingVerifications() ([]models.User, error) {
	var users []models.User
	err := r.db.Where("verification_status = ?", models.VerificationStatusPending).
		Order("verification_requested_at ASC").
		Find(&users).Error
	return users, err
}

// OTP operations

func (r *UserRepositoryImpl) CreateOTP(otp *models.OTPCode) error {
	return r.db.Create(otp).Error
}

func (r *UserRepositoryImpl) FindValidOTP(userID, code string, purpose models.OTPPurpose) (*models.OTPCode, error) {
	var otp models.OTPCode
	err := r.db.Where("user_id = ? AND code = ? AND purpose = ? AND used_at IS NULL AND expires_at > ?",
		userID, code, purpose, time.Now()).
		Order("created_at DESC").First(&otp).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOTPNotFound
		}
		return nil, err
	}
	return &otp, nil
}

func (r *UserRepositoryImpl) MarkOTPUsed(otpID string) error {
	result := r.db.Model(&models.OTPCode{}).Where("id = ?", otpID).Update("used_at", time.Now())
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrOTPNotFound
	}
	return nil
}

// InvalidateOTPs expires older codes so only the most recent one works.
func (r *UserRepositoryImpl) InvalidateOTPs(userID string, purpose models.OTPPurpose) error {
	return r.db.Model(&models.OTPCode{}).
		Where("user_id = ? AND purpose = ? AND used_at IS NULL", userID, purpose).
		Update("used_at", time.Now()).Error
}

// Admin operations

func (r *UserRepositoryImpl) FindWithFilter(criteria UserFilter) ([]models.User, int64, error) {
	var users []models.User
	query := r.db.Model(&models.User{})

	if criteria.Role != "" {
		query = query.Where("role = ?", criteria.Role)
	}
	if criteria.IsBanned != nil {
		query = query.Where("is_banned = ?", *criteria.IsBanned)
	}
	if criteria.Search != "" {
		search := "%" + criteria.Search + "%"
		query = query.Where("full_name ILIKE ? OR email ILIKE ? OR phone ILIKE ?", search, search, search)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	limit := criteria.PageSize
	offset := (criteria.Page - 1) * criteria.PageSize

	err := query.Order("created_at DESC").Limit(limit).Offset(offset).Find(&users).Error
	return users, total, err
}

func (r *UserRepositoryImpl) CountAll() (int64, error) {
	var count int64
	err := r.db.Model(&models.User{}).Count(&count).Error
	return count, err
}

func (r *UserRepositoryImpl) CountSubscribed() (int64, error) {
	var count int64
	err := r.db.Model(&models.User{}).
		Where("subscription_plan IS NOT NULL AND subscription_plan != ''").
		Count(&count).Error
	return count, err
}
