package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"wedplan/internal/model"
)

type TaskRepository struct {
	db *gorm.DB
}

type TaskRepositoryInterface interface {
	Create(ctx context.Context, task *model.Task) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Task, error)
	GetByBoardID(ctx context.Context, boardID uuid.UUID) ([]model.Task, error)
	Update(ctx context.Context, task *model.Task) error
	Delete(ctx context.Context, id uuid.UUID) error
	CountByVendor(ctx context.Context, vendorID uuid.UUID) (int64, error)
	PropagateVendor(ctx context.Context, vendorID uuid.UUID, category string, cost float64) (int64, error)
	UnlinkVendor(ctx context.Context, vendorID uuid.UUID) (int64, error)
}

var _ TaskRepositoryInterface = (*TaskRepository)(nil)

func NewTaskRepository(db *gorm.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

// Create adds a new task to the database
func (r *TaskRepository) Create(ctx context.Context, task *model.Task) error {
	return r.db.WithContext(ctx).Create(task).Error
}

// GetByID retrieves a task by its ID with its checklist and comments
func (r *TaskRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Task, error) {
	var task model.Task
	result := r.db.WithContext(ctx).
		Preload("Checklist").
		Preload("Comments").
		First(&task, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, result.Error
	}
	return &task, nil
}

// GetByBoardID retrieves all tasks on a board, vendor and board expanded,
// ordered by position within status
func (r *TaskRepository) GetByBoardID(ctx context.Context, boardID uuid.UUID) ([]model.Task, error) {
	var tasks []model.Task
	result := r.db.WithContext(ctx).
		Preload("Vendor").
		Preload("Board").
		Preload("Checklist").
		Preload("Comments").
		Where("board_id = ?", boardID).
		Order("status, position").
		Find(&tasks)
	if result.Error != nil {
		return nil, result.Error
	}
	return tasks, nil
}

// Update updates an existing task
func (r *TaskRepository) Update(ctx context.Context, task *model.Task) error {
	result := r.db.WithContext(ctx).Omit("Checklist", "Comments", "Vendor", "Board").Save(task)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrTaskNotFound
	}
	return nil
}

// Delete removes a task by its ID
func (r *TaskRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&model.Task{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrTaskNotFound
	}
	return nil
}

// CountByVendor returns how many tasks currently reference the vendor
func (r *TaskRepository) CountByVendor(ctx context.Context, vendorID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Task{}).
		Where("vendor_id = ?", vendorID).
		Count(&count).Error
	return count, err
}

// PropagateVendor pushes the vendor's current category and cost onto every
// task still referencing it. Returns the number of tasks touched.
func (r *TaskRepository) PropagateVendor(ctx context.Context, vendorID uuid.UUID, category string, cost float64) (int64, error) {
	result := r.db.WithContext(ctx).Model(&model.Task{}).
		Where("vendor_id = ?", vendorID).
		Updates(map[string]interface{}{"category": category, "cost": cost})
	return result.RowsAffected, result.Error
}

// UnlinkVendor clears the vendor reference and the copied category/cost on
// every task referencing the vendor. The tasks themselves survive.
func (r *TaskRepository) UnlinkVendor(ctx context.Context, vendorID uuid.UUID) (int64, error) {
	result := r.db.WithContext(ctx).Model(&model.Task{}).
		Where("vendor_id = ?", vendorID).
		Updates(map[string]interface{}{"vendor_id": nil, "category": "", "cost": nil})
	return result.RowsAffected, result.Error
}
