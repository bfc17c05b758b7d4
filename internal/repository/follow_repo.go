package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"tradefair_dev_v1_202608/internal/model"
)

// ==================== 接口定义 ====================

// FollowRepository 关注关系仓储接口
type FollowRepository interface {
	Create(ctx context.Context, follow *model.Follow) error
	GetByID(ctx context.Context, id int64) (*model.Follow, error)
	GetByPair(ctx context.Context, customerProfileID, vendorProfileID int64) (*model.Follow, error)
	Delete(ctx context.Context, id int64) error

	ListByCustomer(ctx context.Context, customerProfileID int64) ([]model.Follow, error)
	CountByVendor(ctx context.Context, vendorProfileID int64) (int64, error)
}

// ==================== 仓储实现 ====================

type followRepo struct {
	db *gorm.DB
}

// NewFollowRepository 创建关注仓储
func NewFollowRepository(db *gorm.DB) FollowRepository {
	return &followRepo{db: db}
}

func (r *followRepo) Create(ctx context.Context, follow *model.Follow) error {
	return r.db.WithContext(ctx).Create(follow).Error
}

func (r *followRepo) GetByID(ctx context.Context, id int64) (*model.Follow, error) {
	var follow model.Follow
	err := r.db.WithContext(ctx).
		Preload("Vendor").
		First(&follow, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &follow, nil
}

func (r *followRepo) GetByPair(ctx context.Context, customerProfileID, vendorProfileID int64) (*model.Follow, error) {
	var follow model.Follow
	err := r.db.WithContext(ctx).
		Where("customer_profile_id = ? AND vendor_profile_id = ?", customerProfileID, vendorProfileID).
		First(&follow).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &follow, nil
}

func (r *followRepo) Delete(ctx context.Context, id int64) error {
	// 硬删除，保证重新关注时不撞联合唯一索引
	return r.db.WithContext(ctx).Unscoped().Delete(&model.Follow{}, id).Error
}

func (r *followRepo) ListByCustomer(ctx context.Context, customerProfileID int64) ([]model.Follow, error) {
	var follows []model.Follow
	err := r.db.WithContext(ctx).
		Preload("Vendor").
		Where("customer_profile_id = ?", customerProfileID).
		Order("created_at DESC").
		Find(&follows).Error
	return follows, err
}

func (r *followRepo) CountByVendor(ctx context.Context, vendorProfileID int64) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Follow{}).
		Where("vendor_profile_id = ?", vendorProfileID).
		Count(&count).Error
	return count, err
}
