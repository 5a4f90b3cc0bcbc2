package model

import (
	"time"

	"github.com/google/uuid"
)

// Message is a chat message. Messages are global, not board-scoped.
type Message struct {
	ID        uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	SenderID  uuid.UUID `gorm:"type:uuid;not null;index"`
	Content   string    `gorm:"not null"`
	CreatedAt time.Time `gorm:"autoCreateTime;index"`

	Sender User `gorm:"foreignKey:SenderID"`
}
