package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"tradefair_dev_v1_202608/internal/model"
)

// ==================== VendorProfileRepository ====================

// VendorProfileRepository 摊主档案仓储接口
type VendorProfileRepository interface {
	Create(ctx context.Context, profile *model.VendorProfile) error
	GetByID(ctx context.Context, id int64) (*model.VendorProfile, error)
	GetByUserID(ctx context.Context, userID int64) (*model.VendorProfile, error)
	Update(ctx context.Context, profile *model.VendorProfile) error
	UpdatePaymentStatus(ctx context.Context, id int64, status string) error
	List(ctx context.Context, filter VendorFilter) ([]model.VendorProfile, int64, error)
}

// VendorFilter 摊主列表过滤条件
type VendorFilter struct {
	Domain   string // 空表示不筛选
	Keyword  string // 按商号模糊搜索
	Page     int
	PageSize int
}

type vendorProfileRepo struct {
	db *gorm.DB
}

// NewVendorProfileRepository 创建摊主档案仓储
func NewVendorProfileRepository(db *gorm.DB) VendorProfileRepository {
	return &vendorProfileRepo{db: db}
}

func (r *vendorProfileRepo) Create(ctx context.Context, profile *model.VendorProfile) error {
	return r.db.WithContext(ctx).Create(profile).Error
}

func (r *vendorProfileRepo) GetByID(ctx context.Context, id int64) (*model.VendorProfile, error) {
	var profile model.VendorProfile
	err := r.db.WithContext(ctx).Preload("User").First(&profile, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

func (r *vendorProfileRepo) GetByUserID(ctx context.Context, userID int64) (*model.VendorProfile, error) {
	var profile model.VendorProfile
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("user_id = ?", userID).
		First(&profile).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

func (r *vendorProfileRepo) Update(ctx context.Context, profile *model.VendorProfile) error {
	return r.db.WithContext(ctx).Save(profile).Error
}

func (r *vendorProfileRepo) UpdatePaymentStatus(ctx context.Context, id int64, status string) error {
	return r.db.WithContext(ctx).Model(&model.VendorProfile{}).
		Where("id = ?", id).
		Update("payment_status", status).Error
}

func (r *vendorProfileRepo) List(ctx context.Context, filter VendorFilter) ([]model.VendorProfile, int64, error) {
	var profiles []model.VendorProfile
	var total int64

	query := r.db.WithContext(ctx).Model(&model.VendorProfile{})

	if filter.Domain != "" {
		query = query.Where("domain = ?", filter.Domain)
	}
	if filter.Keyword != "" {
		query = query.Where("business_name LIKE ?", "%"+filter.Keyword+"%")
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}

	offset := (filter.Page - 1) * filter.PageSize
	if err := query.Order("created_at DESC").Limit(filter.PageSize).Offset(offset).Find(&profiles).Error; err != nil {
		return nil, 0, err
	}

	return profiles, total, nil
}

// ==================== CustomerProfileRepository ====================

// CustomerProfileRepository 顾客档案仓储接口
type CustomerProfileRepository interface {
	Create(ctx context.Context, profile *model.CustomerProfile) error
	GetByID(ctx context.Context, id int64) (*model.CustomerProfile, error)
	GetByUserID(ctx context.Context, userID int64) (*model.CustomerProfile, error)
	Update(ctx context.Context, profile *model.CustomerProfile) error
}

type customerProfileRepo struct {
	db *gorm.DB
}

// NewCustomerProfileRepository 创建顾客档案仓储
func NewCustomerProfileRepository(db *gorm.DB) CustomerProfileRepository {
	return &customerProfileRepo{db: db}
}

func (r *customerProfileRepo) Create(ctx context.Context, profile *model.CustomerProfile) error {
	return r.db.WithContext(ctx).Create(profile).Error
}

func (r *customerProfileRepo) GetByID(ctx context.Context, id int64) (*model.CustomerProfile, error) {
	var profile model.CustomerProfile
	err := r.db.WithContext(ctx).Preload("User").First(&profile, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

func (r *customerProfileRepo) GetByUserID(ctx context.Context, userID int64) (*model.CustomerProfile, error) {
	var profile model.CustomerProfile
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("user_id = ?", userID).
		First(&profile).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

func (r *customerProfileRepo) Update(ctx context.Context, profile *model.CustomerProfile) error {
	return r.db.WithContext(ctx).Save(profile).Error
}
