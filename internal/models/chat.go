package models

// Conversation always has exactly two participants. The pair is stored in
// creation order; lookups check both orderings.
type Conversation struct {
	BaseModel
	Participant1ID string  `gorm:"type:uuid;not null;index;uniqueIndex:idx_conversation_pair"`
	Participant2ID string  `gorm:"type:uuid;not null;index;uniqueIndex:idx_conversation_pair"`
	ListingID      *string `gorm:"type:uuid;uniqueIndex:idx_conversation_pair"`

	Participant1 *User    `gorm:"foreignKey:Participant1ID"`
	Participant2 *User    `gorm:"foreignKey:Participant2ID"`
	Listing      *Listing `gorm:"foreignKey:ListingID"`
}

type Message struct {
	BaseModel
	ConversationID string `gorm:"type:uuid;not null;index"`
	SenderID       string `gorm:"type:uuid;not null"`
	Content        string `gorm:"type:text;not null"`
	IsRead         bool   `gorm:"default:false"`
}
