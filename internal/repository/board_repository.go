package repository

import (
	"context"
	"errors"

	"wedplan/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type BoardRepository struct {
	db *gorm.DB
}

type BoardRepositoryInterface interface {
	Create(ctx context.Context, board *model.Board) error
	GetForUser(ctx context.Context, userID uuid.UUID) ([]model.Board, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.Board, error)
	Update(ctx context.Context, board *model.Board) error
	Delete(ctx context.Context, id uuid.UUID) error
	AddMember(ctx context.Context, boardID, userID uuid.UUID) error
	RemoveMember(ctx context.Context, boardID, userID uuid.UUID) error
	IsMember(ctx context.Context, boardID, userID uuid.UUID) (bool, error)
}

var _ BoardRepositoryInterface = (*BoardRepository)(nil)

func NewBoardRepository(db *gorm.DB) *BoardRepository {
	return &BoardRepository{db: db}
}

func (r *BoardRepository) Create(ctx context.Context, board *model.Board) error {
	return r.db.WithContext(ctx).Create(board).Error
}

// GetForUser returns boards the user owns or is a member of.
func (r *BoardRepository) GetForUser(ctx context.Context, userID uuid.UUID) ([]model.Board, error) {
	var boards []model.Board
	err := r.db.WithContext(ctx).
		Preload("Members").
		Joins("LEFT JOIN board_members ON board_members.board_id = boards.id").
		Where("boards.owner_id = ? OR board_members.user_id = ?", userID, userID).
		Distinct("boards.*").
		Find(&boards).Error
	return boards, err
}

func (r *BoardRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Board, error) {
	var board model.Board
	err := r.db.WithContext(ctx).Preload("Members").Where("id = ?", id).First(&board).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &board, nil
}

func (r *BoardRepository) Update(ctx context.Context, board *model.Board) error {
	return r.db.WithContext(ctx).Omit("Members").Save(board).Error
}

// Delete removes the board row only. Tasks and vendors referencing the
// board are left in place.
func (r *BoardRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&model.Board{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrBoardNotFound
	}
	return nil
}

func (r *BoardRepository) AddMember(ctx context.Context, boardID, userID uuid.UUID) error {
	return r.db.WithContext(ctx).Exec(
		"INSERT INTO board_members (board_id, user_id) VALUES (?, ?) ON CONFLICT DO NOTHING",
		boardID, userID,
	).Error
}

func (r *BoardRepository) RemoveMember(ctx context.Context, boardID, userID uuid.UUID) error {
	return r.db.WithContext(ctx).Exec(
		"DELETE FROM board_members WHERE board_id = ? AND user_id = ?",
		boardID, userID,
	).Error
}

func (r *BoardRepository) IsMember(ctx context.Context, boardID, userID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Table("board_members").
		Where("board_id = ? AND user_id = ?", boardID, userID).
		Count(&count).Error
	return count > 0, err
}
