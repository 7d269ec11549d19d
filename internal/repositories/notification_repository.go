package repositories

import (
	"errors"
	"time"

	"gebeya_backend/internal/models"

	"gorm.io/gorm"
)

var ErrNotificationNotFound = errors.New("notification not found")

// Notification types.
const (
	NotificationTypeListingApproved = "listing_approved"
	NotificationTypeListingRejected = "listing_rejected"
	NotificationTypeNewApplication  = "new_application"
	NotificationTypeNewMessage      = "new_message"
	NotificationTypeNewComment      = "new_comment"
	NotificationTypePaymentSuccess  = "payment_success"

	NotificationTypeVerificationApproved = "verification_approved"
	NotificationTypeVerificationRejected = "verification_rejected"
)

type NotificationRepository interface {
	Create(notification *models.Notification) error
	FindByUser(userID string, unreadOnly bool, limit, offset int) ([]models.Notification, int64, error)
	GetUnreadCount(userID string) (int64, error)
	MarkAsRead(notificationID, userID string) error
	MarkAllAsRead(userID string) error
	Delete(notificationID, userID string) error
}

type NotificationRepositoryImpl struct {
	db *gorm.DB
}

func NewNotificationRepository(db *gorm.DB) NotificationRepository {
	return &NotificationRepositoryImpl{db: db}
}

func (r *NotificationRepositoryImpl) Create(notification *models.Notification) error {
	if notification.UserID == "" || notification.Type == "" || notification.Title == "" {
		return errors.New("notification requires user_id, type and title")
	}
	return r.db.Create(notification).Error
}

func (r *NotificationRepositoryImpl) FindByUser(userID string, unreadOnly bool, limit, offset int) ([]models.Notification, int64, error) {
	if limit <= 0 {
		limit = 20
	}

	query := r.db.Model(&models.Notification{}).Where("user_id = ?", userID)
	if unreadOnly {
		query = query.Where("is_read = ?", false)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var notifications []models.Notification
	err := query.Order("created_at DESC").Limit(limit).Offset(offset).
		Find(&notifications).Error

	return notifications, total, err
}

func (r *NotificationRepositoryImpl) GetUnreadCount(userID string) (int64, error) {
	var count int64
	err := r.db.Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Count(&count).Error
	return count, err
}

func (r *NotificationRepositoryImpl) MarkAsRead(notificationID, userID string) error {
	result := r.db.Model(&models.Notification{}).
		Where("id = ? AND user_id = ?", notificationID, userID).
		Updates(map[string]interface{}{
			"is_read": true,
			"read_at": time.Now(),
		})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotificationNotFound
	}
	return nil
}

func (r *NotificationRepositoryImpl) MarkAllAsRead(userID string) error {
	return r.db.Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Updates(map[string]interface{}{
			"is_read": true,
			"read_at": time.Now(),
		}).Error
}

func (r *NotificationRepositoryImpl) Delete(notificationID, userID string) error {
	result := r.db.Where("id = ? AND user_id = ?", notificationID, userID).
		Delete(&models.Notification{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotificationNotFound
	}
	return nil
}
