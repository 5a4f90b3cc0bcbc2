package model

import (
	"time"

	"github.com/google/uuid"
)

// Board is a single wedding project. TotalSpent and TotalRemaining are
// derived by the budget aggregator and must never be set from user input.
type Board struct {
	ID             uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	Name           string    `gorm:"not null"`
	OwnerID        uuid.UUID `gorm:"type:uuid;not null;index"`
	TotalBudget    float64   `gorm:"not null;default:0"`
	TotalSpent     float64   `gorm:"not null;default:0"`
	TotalRemaining float64   `gorm:"not null;default:0"`
	WeddingDate    *time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time

	Owner   User   `gorm:"foreignKey:OwnerID"`
	Members []User `gorm:"many2many:board_members"`
}
