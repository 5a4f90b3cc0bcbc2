package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"wedplan/internal/model"
)

type CommentRepository struct {
	db *gorm.DB
}

type CommentRepositoryInterface interface {
	Create(ctx context.Context, comment *model.Comment) error
	GetByTaskID(ctx context.Context, taskID uuid.UUID) ([]model.Comment, error)
	GetByID(ctx context.Context, taskID, commentID uuid.UUID) (*model.Comment, error)
	Update(ctx context.Context, comment *model.Comment) error
	Delete(ctx context.Context, taskID, commentID uuid.UUID) error
}

var _ CommentRepositoryInterface = (*CommentRepository)(nil)

func NewCommentRepository(db *gorm.DB) *CommentRepository {
	return &CommentRepository{db: db}
}

func (r *CommentRepository) Create(ctx context.Context, comment *model.Comment) error {
	return r.db.WithContext(ctx).Create(comment).Error
}

func (r *CommentRepository) GetByTaskID(ctx context.Context, taskID uuid.UUID) ([]model.Comment, error) {
	var comments []model.Comment
	result := r.db.WithContext(ctx).
		Preload("User").
		Where("task_id = ?", taskID).
		Order("created_at").
		Find(&comments)
	if result.Error != nil {
		return nil, result.Error
	}
	return comments, nil
}

func (r *CommentRepository) GetByID(ctx context.Context, taskID, commentID uuid.UUID) (*model.Comment, error) {
	var comment model.Comment
	result := r.db.WithContext(ctx).First(&comment, "id = ? AND task_id = ?", commentID, taskID)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrCommentNotFound
		}
		return nil, result.Error
	}
	return &comment, nil
}

func (r *CommentRepository) Update(ctx context.Context, comment *model.Comment) error {
	result := r.db.WithContext(ctx).Omit("User").Save(comment)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrCommentNotFound
	}
	return nil
}

func (r *CommentRepository) Delete(ctx context.Context, taskID, commentID uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&model.Comment{}, "id = ? AND task_id = ?", commentID, taskID)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrCommentNotFound
	}
	return nil
}
