// Package budget recomputes a board's derived spending totals from its
// current task set. It runs synchronously after every mutation that can
// change a task's cost; nothing wraps the triggering mutation and the
// recompute in one transaction, so a failed recompute leaves totals stale
// until the next successful mutation.
package budget

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"wedplan/internal/model"
	"wedplan/internal/repository"
)

// Recalculator is what the handlers depend on.
type Recalculator interface {
	Recalculate(ctx context.Context, boardID uuid.UUID) error
}

type Aggregator struct {
	db *gorm.DB
}

var _ Recalculator = (*Aggregator)(nil)

func NewAggregator(db *gorm.DB) *Aggregator {
	return &Aggregator{db: db}
}

// Recalculate sums the cost of every task on the board (NULL cost counts as
// 0), writes the sum to total_spent and total_budget - sum to
// total_remaining. A missing board is fatal to the caller's operation even
// though the caller's own mutation has already committed.
func (a *Aggregator) Recalculate(ctx context.Context, boardID uuid.UUID) error {
	var board model.Board
	if err := a.db.WithContext(ctx).First(&board, "id = ?", boardID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return repository.ErrBoardNotFound
		}
		return err
	}

	var total struct {
		Total float64
	}
	err := a.db.WithContext(ctx).Model(&model.Task{}).
		Select("COALESCE(SUM(cost), 0) as total").
		Where("board_id = ?", boardID).
		Scan(&total).Error
	if err != nil {
		return err
	}

	return a.db.WithContext(ctx).Model(&model.Board{}).
		Where("id = ?", boardID).
		Updates(map[string]interface{}{
			"total_spent":     total.Total,
			"total_remaining": board.TotalBudget - total.Total,
		}).Error
}
