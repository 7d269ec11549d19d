package handlers

import (
	"net/http"

	"gebeya_backend/internal/middleware"
	"gebeya_backend/internal/services"
	"gebeya_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type ChatHandler struct {
	*BaseHandler
	chatService services.ChatService
}

func NewChatHandler(base *BaseHandler, chatService services.ChatService) *ChatHandler {
	return &ChatHandler{
		BaseHandler: base,
		chatService: chatService,
	}
}

func (h *ChatHandler) RegisterRoutes(r *gin.RouterGroup) {
	conversations := r.Group("/conversations")
	conversations.Use(middleware.AuthMiddleware())
	{
		conversations.POST("", h.StartConversation)
		conversations.GET("", h.GetConversations)
		conversations.GET("/unread-count", h.GetUnreadCount)
		conversations.GET("/:conversationId/messages", h.GetMessages)
		conversations.POST("/:conversationId/messages", h.SendMessage)
	}
}

func (h *ChatHandler) StartConversation(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.StartConversationRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	conversation, err := h.chatService.StartConversation(c.Request.Context(), userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, conversation)
}

func (h *ChatHandler) GetConversations(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	summaries, err := h.chatService.GetConversations(userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"conversations": summaries,
		"total":         len(summaries),
	})
}

func (h *ChatHandler) GetMessages(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}
	conversationID := c.Param("conversationId")

	var query dto.MessagesQuery
	if !h.BindAndValidate_Query(c, &query) {
		return
	}

	messages, err := h.chatService.GetMessages(userID, conversationID, &query)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"messages": messages,
		"total":    len(messages),
	})
}

func (h *ChatHandler) SendMessage(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}
	conversationID := c.Param("conversationId")

	var req dto.SendMessageRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	message, err := h.chatService.SendMessage(c.Request.Context(), userID, conversationID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, message)
}

func (h *ChatHandler) GetUnreadCount(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	count, err := h.chatService.GetUnreadCount(userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"unread_count": count})
}
