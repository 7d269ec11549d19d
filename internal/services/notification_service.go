package services

import (
	"errors"

	"gebeya_backend/internal/models"
	"gebeya_backend/internal/repositories"
	"gebeya_backend/pkg/apperrors"
)

type NotificationService interface {
	GetUserNotifications(userID string, unreadOnly bool, page, pageSize int) ([]models.Notification, int64, error)
	GetUnreadCount(userID string) (int64, error)
	MarkAsRead(userID, notificationID string) error
	MarkAllAsRead(userID string) error
	DeleteNotification(userID, notificationID string) error
}

type notificationService struct {
	notificationRepo repositories.NotificationRepository
}

func NewNotificationService(notificationRepo repositories.NotificationRepository) NotificationService {
	return &notificationService{notificationRepo: notificationRepo}
}

func (s *notificationService) GetUserNotifications(userID string, unreadOnly bool, page, pageSize int) ([]models.Notification, int64, error) {
	page = normalizePage(page)
	pageSize = normalizePageSize(pageSize)

	notifications, total, err := s.notificationRepo.FindByUser(userID, unreadOnly, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, 0, apperrors.InternalError(err)
	}
	return notifications, total, nil
}

func (s *notificationService) GetUnreadCount(userID string) (int64, error) {
	count, err := s.notificationRepo.GetUnreadCount(userID)
	if err != nil {
		return 0, apperrors.InternalError(err)
	}
	return count, nil
}

func (s *notificationService) MarkAsRead(userID, notificationID string) error {
	if err := s.notificationRepo.MarkAsRead(notificationID, userID); err != nil {
		if errors.Is(err, repositories.ErrNotificationNotFound) {
			return apperrors.ErrNotFound(err)
		}
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *notificationService) MarkAllAsRead(userID string) error {
	if err := s.notificationRepo.MarkAllAsRead(userID); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *notificationService) DeleteNotification(userID, notificationID string) error {
	if err := s.notificationRepo.Delete(notificationID, userID); err != nil {
		if errors.Is(err, repositories.ErrNotificationNotFound) {
			return apperrors.ErrNotFound(err)
		}
		return apperrors.InternalError(err)
	}
	return nil
}
