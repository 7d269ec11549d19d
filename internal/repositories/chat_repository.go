package repositories

import (
	"errors"
	"time"

	"gebeya_backend/internal/models"

	"gorm.io/gorm"
)

var (
	ErrConversationNotFound = errors.New("conversation not found")
	ErrMessageNotFound      = errors.New("message not found")
)

type ChatRepository interface {
	FindOrCreateConversation(userID, otherUserID string, listingID *string) (*models.Conversation, error)
	FindConversationByID(id string) (*models.Conversation, error)
	FindConversationsByUser(userID string) ([]ConversationSummary, error)

	CreateMessage(message *models.Message) error
	FindMessages(conversationID string, limit, offset int) ([]models.Message, error)
	MarkMessagesRead(conversationID, readerID string) error
	CountUnread(userID string) (int64, error)
}

// ConversationSummary is one row of the conversation list: the
// conversation plus its last message and the caller's unread count.
type ConversationSummary struct {
	Conversation models.Conversation `json:"conversation"`
	LastMessage  *models.Message     `json:"last_message,omitempty"`
	UnreadCount  int64               `json:"unread_count"`
}

type ChatRepositoryImpl struct {
	db *gorm.DB
}

func NewChatRepository(db *gorm.DB) ChatRepository {
	return &ChatRepositoryImpl{db: db}
}

// FindOrCreateConversation returns the existing conversation between the
// two users regardless of who started it, creating one when missing.
func (r *ChatRepositoryImpl) FindOrCreateConversation(userID, otherUserID string, listingID *string) (*models.Conversation, error) {
	var conversation models.Conversation

	query := r.db.Where(
		"(participant1_id = ? AND participant2_id = ?) OR (participant1_id = ? AND participant2_id = ?)",
		userID, otherUserID, otherUserID, userID,
	)
	if listingID != nil {
		query = query.Where("listing_id = ?", *listingID)
	}

	err := query.First(&conversation).Error
	if err == nil {
		return &conversation, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	conversation = models.Conversation{
		Participant1ID: userID,
		Participant2ID: otherUserID,
		ListingID:      listingID,
	}
	if err := r.db.Create(&conversation).Error; err != nil {
		return nil, err
	}
	return &conversation, nil
}

func (r *ChatRepositoryImpl) FindConversationByID(id string) (*models.Conversation, error) {
	var conversation models.Conversation
	err := r.db.Preload("Participant1").Preload("Participant2").
		First(&conversation, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrConversationNotFound
		}
		return nil, err
	}
	return &conversation, nil
}

func (r *ChatRepositoryImpl) FindConversationsByUser(userID string) ([]ConversationSummary, error) {
	var conversations []models.Conversation
	err := r.db.Preload("Participant1").Preload("Participant2").Preload("Listing").
		Where("participant1_id = ? OR participant2_id = ?", userID, userID).
		Order("updated_at DESC").
		Find(&conversations).Error
	if err != nil {
		return nil, err
	}

	summaries := make([]ConversationSummary, 0, len(conversations))
	for _, conv := range conversations {
		summary := ConversationSummary{Conversation: conv}

		var last models.Message
		err := r.db.Where("conversation_id = ?", conv.ID).
			Order("created_at DESC").First(&last).Error
		if err == nil {
			summary.LastMessage = &last
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}

		if err := r.db.Model(&models.Message{}).
			Where("conversation_id = ? AND sender_id != ? AND is_read = ?", conv.ID, userID, false).
			Count(&summary.UnreadCount).Error; err != nil {
			return nil, err
		}

		summaries = append(summaries, summary)
	}

	return summaries, nil
}

func (r *ChatRepositoryImpl) CreateMessage(message *models.Message) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(message).Error; err != nil {
			return err
		}
		// Bump the conversation so it sorts to the top of the list.
		return tx.Model(&models.Conversation{}).
			Where("id = ?", message.ConversationID).
			Update("updated_at", time.Now()).Error
	})
}

func (r *ChatRepositoryImpl) FindMessages(conversationID string, limit, offset int) ([]models.Message, error) {
	if limit <= 0 {
		limit = 50
	}
	var messages []models.Message
	err := r.db.Where("conversation_id = ?", conversationID).
		Order("created_at ASC").Limit(limit).Offset(offset).
		Find(&messages).Error
	return messages, err
}

// MarkMessagesRead marks everything the other participant sent as read.
func (r *ChatRepositoryImpl) MarkMessagesRead(conversationID, readerID string) error {
	return r.db.Model(&models.Message{}).
		Where("conversation_id = ? AND sender_id != ? AND is_read = ?", conversationID, readerID, false).
		Update("is_read", true).Error
}

func (r *ChatRepositoryImpl) CountUnread(userID string) (int64, error) {
	var count int64
	err := r.db.Model(&models.Message{}).
		Joins("JOIN conversations ON conversations.id = messages.conversation_id").
		Where("(conversations.participant1_id = ? OR conversations.participant2_id = ?)", userID, userID).
		Where("messages.sender_id != ? AND messages.is_read = ?", userID, false).
		Count(&count).Error
	return count, err
}
