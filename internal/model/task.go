package model

import (
	"time"

	"github.com/google/uuid"
)

// Task statuses. Any status may transition to any other.
const (
	StatusToDo       = "To Do"
	StatusInProgress = "In Progress"
	StatusDone       = "Done"
)

// Task priorities.
const (
	PriorityLow    = "Low"
	PriorityMedium = "Medium"
	PriorityHigh   = "High"
)

// Task belongs to one board. Category and Cost are copied from the linked
// vendor when it is assigned; vendor updates push new values into these
// fields, and deleting the vendor clears them.
type Task struct {
	ID          uuid.UUID  `gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	BoardID     uuid.UUID  `gorm:"type:uuid;not null;index"`
	VendorID    *uuid.UUID `gorm:"type:uuid;index"`
	Title       string     `gorm:"not null"`
	Description string
	Color       string
	Category    string
	Cost        *float64
	DueDate     *time.Time
	Status      string `gorm:"not null;default:'To Do';check:status IN ('To Do', 'In Progress', 'Done')"`
	Priority    string `gorm:"not null;default:'Medium';check:priority IN ('Low', 'Medium', 'High')"`
	Position    int    `gorm:"not null;default:0"`
	CreatedAt   time.Time
	UpdatedAt   time.Time

	Board     Board           `gorm:"foreignKey:BoardID"`
	Vendor    *Vendor         `gorm:"foreignKey:VendorID"`
	Checklist []ChecklistItem `gorm:"foreignKey:TaskID"`
	Comments  []Comment       `gorm:"foreignKey:TaskID"`
}

// ChecklistItem has no lifecycle outside its parent task.
type ChecklistItem struct {
	ID          uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	TaskID      uuid.UUID `gorm:"type:uuid;not null;index"`
	Text        string    `gorm:"not null"`
	IsCompleted bool      `gorm:"not null;default:false"`
}

// Comment has no lifecycle outside its parent task.
type Comment struct {
	ID        uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	TaskID    uuid.UUID `gorm:"type:uuid;not null;index"`
	UserID    uuid.UUID `gorm:"type:uuid;not null"`
	Text      string    `gorm:"not null"`
	CreatedAt time.Time
	UpdatedAt time.Time

	User User `gorm:"foreignKey:UserID"`
}
