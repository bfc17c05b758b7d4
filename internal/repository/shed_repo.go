package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"tradefair_dev_v1_202608/internal/model"
)

// ==================== 接口定义 ====================

// ShedRepository 摊位仓储接口
type ShedRepository interface {
	Create(ctx context.Context, shed *model.Shed) error
	GetByID(ctx context.Context, id int64) (*model.Shed, error)
	GetByVendorID(ctx context.Context, vendorProfileID int64) (*model.Shed, error)
	GetByShedNumber(ctx context.Context, shedNumber string) (*model.Shed, error)
	Update(ctx context.Context, shed *model.Shed) error
	UpdateFields(ctx context.Context, id int64, fields map[string]interface{}) error
	SetSecured(ctx context.Context, id int64, secured bool) error

	// 摊位编号分配的唯一计数口径：只数 Shed 表
	CountByDomain(ctx context.Context, domain string) (int64, error)

	List(ctx context.Context, filter ShedFilter) ([]model.Shed, int64, error)
}

// ShedFilter 摊位过滤条件
type ShedFilter struct {
	Domain   string // 空表示不筛选
	Secured  *bool  // nil 表示不筛选
	Keyword  string // 按摊位名模糊搜索
	Page     int
	PageSize int
}

// ==================== 仓储实现 ====================

type shedRepo struct {
	db *gorm.DB
}

// NewShedRepository 创建摊位仓储
func NewShedRepository(db *gorm.DB) ShedRepository {
	return &shedRepo{db: db}
}

func (r *shedRepo) Create(ctx context.Context, shed *model.Shed) error {
	return r.db.WithContext(ctx).Create(shed).Error
}

func (r *shedRepo) GetByID(ctx context.Context, id int64) (*model.Shed, error) {
	var shed model.Shed
	err := r.db.WithContext(ctx).
		Preload("Vendor").
		First(&shed, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &shed, nil
}

func (r *shedRepo) GetByVendorID(ctx context.Context, vendorProfileID int64) (*model.Shed, error) {
	var shed model.Shed
	err := r.db.WithContext(ctx).
		Where("vendor_profile_id = ?", vendorProfileID).
		First(&shed).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &shed, nil
}

func (r *shedRepo) GetByShedNumber(ctx context.Context, shedNumber string) (*model.Shed, error) {
	var shed model.Shed
	err := r.db.WithContext(ctx).
		Where("shed_number = ?", shedNumber).
		First(&shed).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &shed, nil
}

func (r *shedRepo) Update(ctx context.Context, shed *model.Shed) error {
	return r.db.WithContext(ctx).Save(shed).Error
}

func (r *shedRepo) UpdateFields(ctx context.Context, id int64, fields map[string]interface{}) error {
	return r.db.WithContext(ctx).Model(&model.Shed{}).Where("id = ?", id).Updates(fields).Error
}

func (r *shedRepo) SetSecured(ctx context.Context, id int64, secured bool) error {
	return r.db.WithContext(ctx).Model(&model.Shed{}).
		Where("id = ?", id).
		Update("secured", secured).Error
}

func (r *shedRepo) CountByDomain(ctx context.Context, domain string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Shed{}).
		Where("domain = ?", domain).
		Count(&count).Error
	return count, err
}

func (r *shedRepo) List(ctx context.Context, filter ShedFilter) ([]model.Shed, int64, error) {
	var sheds []model.Shed
	var total int64

	query := r.db.WithContext(ctx).Model(&model.Shed{})

	if filter.Domain != "" {
		query = query.Where("domain = ?", filter.Domain)
	}
	if filter.Secured != nil {
		query = query.Where("secured = ?", *filter.Secured)
	}
	if filter.Keyword != "" {
		query = query.Where("name LIKE ?", "%"+filter.Keyword+"%")
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
	if err := query.Order("shed_number ASC").Limit(filter.PageSize).Offset(offset).Find(&sheds).Error; err != nil {
		return nil, 0, err
	}

	return sheds, total, nil
}
