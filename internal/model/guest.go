package model

import (
	"time"

	"github.com/google/uuid"
)

// Guest belongs to a user, not a board.
type Guest struct {
	ID        uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index"`
	Name      string    `gorm:"not null"`
	Phone     string
	Email     string
	RSVP      bool `gorm:"not null;default:false"`
	CreatedAt time.Time
	UpdatedAt time.Time

	User User `gorm:"foreignKey:UserID"`
}
