package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"wedplan/internal/model"
)

type GuestRepository struct {
	db *gorm.DB
}

type GuestRepositoryInterface interface {
	Create(ctx context.Context, guest *model.Guest) error
	GetByUserID(ctx context.Context, userID uuid.UUID) ([]model.Guest, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.Guest, error)
	Update(ctx context.Context, guest *model.Guest) error
	Delete(ctx context.Context, id uuid.UUID) error
}

var _ GuestRepositoryInterface = (*GuestRepository)(nil)

func NewGuestRepository(db *gorm.DB) *GuestRepository {
	return &GuestRepository{db: db}
}

func (r *GuestRepository) Create(ctx context.Context, guest *model.Guest) error {
	return r.db.WithContext(ctx).Create(guest).Error
}

func (r *GuestRepository) GetByUserID(ctx context.Context, userID uuid.UUID) ([]model.Guest, error) {
	var guests []model.Guest
	result := r.db.WithContext(ctx).Where("user_id = ?", userID).Order("created_at").Find(&guests)
	if result.Error != nil {
		return nil, result.Error
	}
	return guests, nil
}

func (r *GuestRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Guest, error) {
	var guest model.Guest
	result := r.db.WithContext(ctx).First(&guest, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrGuestNotFound
		}
		return nil, result.Error
	}
	return &guest, nil
}

func (r *GuestRepository) Update(ctx context.Context, guest *model.Guest) error {
	result := r.db.WithContext(ctx).Model(guest).
		Select("name", "phone", "email", "rsvp", "updated_at").
		Updates(guest)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrGuestNotFound
	}
	return nil
}

func (r *GuestRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&model.Guest{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrGuestNotFound
	}
	return nil
}
