package services

import (
	"context"
	"errors"

	"gebeya_backend/internal/logger"
	"gebeya_backend/internal/models"
	"gebeya_backend/internal/repositories"
	"gebeya_backend/internal/services/dto"
	"gebeya_backend/pkg/apperrors"
)

type ChatService interface {
	StartConversation(ctx context.Context, userID string, req *dto.StartConversationRequest) (*models.Conversation, error)
	GetConversations(userID string) ([]repositories.ConversationSummary, error)
	GetMessages(userID, conversationID string, query *dto.MessagesQuery) ([]models.Message, error)
	SendMessage(ctx context.Context, userID, conversationID string, req *dto.SendMessageRequest) (*models.Message, error)
	GetUnreadCount(userID string) (int64, error)
}

type chatService struct {
	chatRepo         repositories.ChatRepository
	userRepo         repositories.UserRepository
	notificationRepo repositories.NotificationRepository
}

func NewChatService(
	chatRepo repositories.ChatRepository,
	userRepo repositories.UserRepository,
	notificationRepo repositories.NotificationRepository,
) ChatService {
	return &chatService{
		chatRepo:         chatRepo,
		userRepo:         userRepo,
		notificationRepo: notificationRepo,
	}
}

// StartConversation returns the existing conversation with the other
// user or creates a fresh one.
func (s *chatService) StartConversation(ctx context.Context, userID string, req *dto.StartConversationRequest) (*models.Conversation, error) {
	if req.OtherUserID == userID {
		return nil, apperrors.ErrSelfConversation
	}

	if _, err := s.userRepo.FindByID(req.OtherUserID); err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}

	conversation, err := s.chatRepo.FindOrCreateConversation(userID, req.OtherUserID, req.ListingID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return conversation, nil
}

func (s *chatService) GetConversations(userID string) ([]repositories.ConversationSummary, error) {
	summaries, err := s.chatRepo.FindConversationsByUser(userID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return summaries, nil
}

// GetMessages returns the conversation history and marks the other
// side's messages as read.
func (s *chatService) GetMessages(userID, conversationID string, query *dto.MessagesQuery) ([]models.Message, error) {
	if err := s.authorizeParticipant(userID, conversationID); err != nil {
		return nil, err
	}

	messages, err := s.chatRepo.FindMessages(conversationID, query.Limit, query.Offset)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	if err := s.chatRepo.MarkMessagesRead(conversationID, userID); err != nil {
		return nil, apperrors.InternalError(err)
	}

	return messages, nil
}

func (s *chatService) SendMessage(ctx context.Context, userID, conversationID string, req *dto.SendMessageRequest) (*models.Message, error) {
	conversation, err := s.chatRepo.FindConversationByID(conversationID)
	if err != nil {
		if errors.Is(err, repositories.ErrConversationNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}

	if conversation.Participant1ID != userID && conversation.Participant2ID != userID {
		return nil, apperrors.ErrConversationAccessDenied
	}

	message := &models.Message{
		ConversationID: conversationID,
		SenderID:       userID,
		Content:        req.Content,
	}
	if err := s.chatRepo.CreateMessage(message); err != nil {
		return nil, apperrors.InternalError(err)
	}

	recipientID := conversation.Participant1ID
	if recipientID == userID {
		recipientID = conversation.Participant2ID
	}

	sender, err := s.userRepo.FindByID(userID)
	senderName := "Someone"
	if err == nil {
		senderName = sender.FullName
	}

	notification := &models.Notification{
		UserID:    recipientID,
		Type:      repositories.NotificationTypeNewMessage,
		Title:     "New message",
		Message:   "New message from " + senderName,
		RelatedID: &conversation.ID,
	}
	if err := s.notificationRepo.Create(notification); err != nil {
		logger.CtxWithError(ctx, "failed to create message notification", err, "user_id", recipientID)
	}

	return message, nil
}

func (s *chatService) GetUnreadCount(userID string) (int64, error) {
	count, err := s.chatRepo.CountUnread(userID)
	if err != nil {
		return 0, apperrors.InternalError(err)
	}
	return count, nil
}

func (s *chatService) authorizeParticipant(userID, conversationID string) error {
	conversation, err := s.chatRepo.FindConversationByID(conversationID)
	if err != nil {
		if errors.Is(err, repositories.ErrConversationNotFound) {
			return apperrors.ErrNotFound(err)
		}
		return apperrors.InternalError(err)
	}

	if conversation.Participant1ID != userID && conversation.Participant2ID != userID {
		return apperrors.ErrConversationAccessDenied
	}
	return nil
}
