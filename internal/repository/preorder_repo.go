package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"tradefair_dev_v1_202608/internal/model"
)

// ==================== 接口定义 ====================

// PreorderRepository 预订单仓储接口
type PreorderRepository interface {
	Create(ctx context.Context, preorder *model.Preorder) error
	GetByID(ctx context.Context, id int64) (*model.Preorder, error)
	UpdateStatus(ctx context.Context, id int64, status string) error

	ListByCustomer(ctx context.Context, customerProfileID int64) ([]model.Preorder, error)
	ListByVendor(ctx context.Context, vendorProfileID int64) ([]model.Preorder, error)
	CountByVendor(ctx context.Context, vendorProfileID int64) (int64, error)
	CountByVendorAndStatus(ctx context.Context, vendorProfileID int64, status string) (int64, error)
}

// ==================== 仓储实现 ====================

type preorderRepo struct {
	db *gorm.DB
}

// NewPreorderRepository 创建预订单仓储
func NewPreorderRepository(db *gorm.DB) PreorderRepository {
	return &preorderRepo{db: db}
}

func (r *preorderRepo) Create(ctx context.Context, preorder *model.Preorder) error {
	return r.db.WithContext(ctx).Create(preorder).Error
}

func (r *preorderRepo) GetByID(ctx context.Context, id int64) (*model.Preorder, error) {
	var preorder model.Preorder
	err := r.db.WithContext(ctx).
		Preload("Product").
		Preload("Customer").
		Preload("Customer.User").
		Preload("Vendor").
		First(&preorder, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &preorder, nil
}

func (r *preorderRepo) UpdateStatus(ctx context.Context, id int64, status string) error {
	return r.db.WithContext(ctx).Model(&model.Preorder{}).
		Where("id = ?", id).
		Update("status", status).Error
}

func (r *preorderRepo) ListByCustomer(ctx context.Context, customerProfileID int64) ([]model.Preorder, error) {
	var preorders []model.Preorder
	err := r.db.WithContext(ctx).
		Preload("Product").
		Where("customer_profile_id = ?", customerProfileID).
		Order("created_at DESC").
		Find(&preorders).Error
	return preorders, err
}

func (r *preorderRepo) ListByVendor(ctx context.Context, vendorProfileID int64) ([]model.Preorder, error) {
	var preorders []model.Preorder
	err := r.db.WithContext(ctx).
		Preload("Product").
		Preload("Customer").
		Preload("Customer.User").
		Where("vendor_profile_id = ?", vendorProfileID).
		Order("created_at DESC").
		Find(&preorders).Error
	return preorders, err
}

func (r *preorderRepo) CountByVendor(ctx context.Context, vendorProfileID int64) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Preorder{}).
		Where("vendor_profile_id = ?", vendorProfileID).
		Count(&count).Error
	return count, err
}

func (r *preorderRepo) CountByVendorAndStatus(ctx context.Context, vendorProfileID int64, status string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Preorder{}).
		Where("vendor_profile_id = ? AND status = ?", vendorProfileID, status).
		Count(&count).Error
	return count, err
}
