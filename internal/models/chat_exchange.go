package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ChatExchange records one assistant exchange: the user's message and the
// response that was selected for it. Rows are append-only and never mutated.
type ChatExchange struct {
	ID string `gorm:"type:uuid;primaryKey" json:"id"`
	// UserID is the profile that sent the message.
	UserID string `gorm:"type:uuid;not null;index" json:"user_id"`
	// SessionID groups all exchanges of one widget activation.
	SessionID string `gorm:"type:uuid;not null;index" json:"session_id"`
	Message   string `gorm:"type:text;not null" json:"message"`
	Response  string `gorm:"type:text;not null" json:"response"`

	CreatedAt time.Time `json:"created_at"`
}

// BeforeCreate generates a UUID for the exchange if one is not set.
func (e *ChatExchange) BeforeCreate(tx *gorm.DB) (err error) {
	if e.ID == "" {
		e.ID = uuid.New().String()
	}
	return
}
