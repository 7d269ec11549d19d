package dto

type StartConversationRequest struct {
	OtherUserID string  `json:"other_user_id" binding:"required,uuid"`
	ListingID   *string `json:"listing_id" binding:"omitempty,uuid"`
}

type SendMessageRequest struct {
	Content string `json:"content" binding:"required,min=1"`
}

type MessagesQuery struct {
	Limit  int `form:"limit"`
	Offset int `form:"offset"`
}
