package repository

import (
	"context"

	"gorm.io/gorm"

	"wedplan/internal/model"
)

type MessageRepository struct {
	db *gorm.DB
}

type MessageRepositoryInterface interface {
	Create(ctx context.Context, message *model.Message) error
	GetAll(ctx context.Context) ([]model.Message, error)
}

var _ MessageRepositoryInterface = (*MessageRepository)(nil)

func NewMessageRepository(db *gorm.DB) *MessageRepository {
	return &MessageRepository{db: db}
}

func (r *MessageRepository) Create(ctx context.Context, message *model.Message) error {
	return r.db.WithContext(ctx).Create(message).Error
}

// GetAll returns the full history, oldest first, sender expanded.
func (r *MessageRepository) GetAll(ctx context.Context) ([]model.Message, error) {
	var messages []model.Message
	result := r.db.WithContext(ctx).
		Preload("Sender").
		Order("created_at").
		Find(&messages)
	if result.Error != nil {
		return nil, result.Error
	}
	return messages, nil
}
