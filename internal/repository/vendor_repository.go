package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"wedplan/internal/model"
)

type VendorRepository struct {
	db *gorm.DB
}

type VendorRepositoryInterface interface {
	Create(ctx context.Context, vendor *model.Vendor) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Vendor, error)
	GetByBoardID(ctx context.Context, boardID uuid.UUID) ([]model.Vendor, error)
	Update(ctx context.Context, vendor *model.Vendor) error
	Delete(ctx context.Context, id uuid.UUID) error
}

var _ VendorRepositoryInterface = (*VendorRepository)(nil)

func NewVendorRepository(db *gorm.DB) *VendorRepository {
	return &VendorRepository{db: db}
}

func (r *VendorRepository) Create(ctx context.Context, vendor *model.Vendor) error {
	return r.db.WithContext(ctx).Create(vendor).Error
}

func (r *VendorRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Vendor, error) {
	var vendor model.Vendor
	result := r.db.WithContext(ctx).First(&vendor, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrVendorNotFound
		}
		return nil, result.Error
	}
	return &vendor, nil
}

func (r *VendorRepository) GetByBoardID(ctx context.Context, boardID uuid.UUID) ([]model.Vendor, error) {
	var vendors []model.Vendor
	result := r.db.WithContext(ctx).Where("board_id = ?", boardID).Order("created_at").Find(&vendors)
	if result.Error != nil {
		return nil, result.Error
	}
	return vendors, nil
}

func (r *VendorRepository) Update(ctx context.Context, vendor *model.Vendor) error {
	result := r.db.WithContext(ctx).Omit("Board").Save(vendor)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrVendorNotFound
	}
	return nil
}

func (r *VendorRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&model.Vendor{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrVendorNotFound
	}
	return nil
}
