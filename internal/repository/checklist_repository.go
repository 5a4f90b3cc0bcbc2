package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"wedplan/internal/model"
)

type ChecklistRepository struct {
	db *gorm.DB
}

type ChecklistRepositoryInterface interface {
	Create(ctx context.Context, item *model.ChecklistItem) error
	GetByTaskID(ctx context.Context, taskID uuid.UUID) ([]model.ChecklistItem, error)
	GetByID(ctx context.Context, taskID, itemID uuid.UUID) (*model.ChecklistItem, error)
	Update(ctx context.Context, item *model.ChecklistItem) error
	Delete(ctx context.Context, taskID, itemID uuid.UUID) error
}

var _ ChecklistRepositoryInterface = (*ChecklistRepository)(nil)

func NewChecklistRepository(db *gorm.DB) *ChecklistRepository {
	return &ChecklistRepository{db: db}
}

func (r *ChecklistRepository) Create(ctx context.Context, item *model.ChecklistItem) error {
	return r.db.WithContext(ctx).Create(item).Error
}

func (r *ChecklistRepository) GetByTaskID(ctx context.Context, taskID uuid.UUID) ([]model.ChecklistItem, error) {
	var items []model.ChecklistItem
	result := r.db.WithContext(ctx).Where("task_id = ?", taskID).Find(&items)
	if result.Error != nil {
		return nil, result.Error
	}
	return items, nil
}

// GetByID looks an item up by its own id scoped to the parent task, so an
// item id from another task answers not-found rather than leaking.
func (r *ChecklistRepository) GetByID(ctx context.Context, taskID, itemID uuid.UUID) (*model.ChecklistItem, error) {
	var item model.ChecklistItem
	result := r.db.WithContext(ctx).First(&item, "id = ? AND task_id = ?", itemID, taskID)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrChecklistNotFound
		}
		return nil, result.Error
	}
	return &item, nil
}

func (r *ChecklistRepository) Update(ctx context.Context, item *model.ChecklistItem) error {
	// Select forces the write even when IsCompleted toggles back to the
	// zero value.
	result := r.db.WithContext(ctx).Model(item).
		Select("text", "is_completed").
		Updates(map[string]interface{}{"text": item.Text, "is_completed": item.IsCompleted})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrChecklistNotFound
	}
	return nil
}

func (r *ChecklistRepository) Delete(ctx context.Context, taskID, itemID uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&model.ChecklistItem{}, "id = ? AND task_id = ?", itemID, taskID)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrChecklistNotFound
	}
	return nil
}
