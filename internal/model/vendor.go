package model

import (
	"time"

	"github.com/google/uuid"
)

type Vendor struct {
	ID        uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	BoardID   uuid.UUID `gorm:"type:uuid;not null;index"`
	Name      string    `gorm:"not null"`
	Category  string
	Address   string
	Phone     string
	Email     string
	Cost      float64 `gorm:"not null;default:0"`
	CreatedAt time.Time
	UpdatedAt time.Time

	Board Board `gorm:"foreignKey:BoardID"`
}
