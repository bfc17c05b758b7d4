package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"tradefair_dev_v1_202608/internal/model"
)

// ==================== 接口定义 ====================

// ProductRepository 商品仓储接口
type ProductRepository interface {
	Create(ctx context.Context, product *model.Product) error
	GetByID(ctx context.Context, id int64) (*model.Product, error)
	Update(ctx context.Context, product *model.Product) error
	UpdateFields(ctx context.Context, id int64, fields map[string]interface{}) error
	Delete(ctx context.Context, id int64) error

	List(ctx context.Context, filter ProductFilter) ([]model.Product, int64, error)
	CountByVendor(ctx context.Context, vendorProfileID int64) (int64, error)
}

// ProductFilter 商品过滤条件
type ProductFilter struct {
	ShedID          int64  // 0 表示不筛选
	VendorProfileID int64  // 0 表示不筛选
	Domain          string // 空表示不筛选（按摊位类目）
	Keyword         string // 按商品名模糊搜索
	Page            int
	PageSize        int
}

// ==================== 仓储实现 ====================

type productRepo struct {
	db *gorm.DB
}

// NewProductRepository 创建商品仓储
func NewProductRepository(db *gorm.DB) ProductRepository {
	return &productRepo{db: db}
}

func (r *productRepo) Create(ctx context.Context, product *model.Product) error {
	return r.db.WithContext(ctx).Create(product).Error
}

func (r *productRepo) GetByID(ctx context.Context, id int64) (*model.Product, error) {
	var product model.Product
	err := r.db.WithContext(ctx).
		Preload("Shed").
		Preload("Shed.Vendor").
		First(&product, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *productRepo) Update(ctx context.Context, product *model.Product) error {
	return r.db.WithContext(ctx).Save(product).Error
}

func (r *productRepo) UpdateFields(ctx context.Context, id int64, fields map[string]interface{}) error {
	return r.db.WithContext(ctx).Model(&model.Product{}).Where("id = ?", id).Updates(fields).Error
}

func (r *productRepo) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&model.Product{}, id).Error
}

func (r *productRepo) List(ctx context.Context, filter ProductFilter) ([]model.Product, int64, error) {
	var products []model.Product
	var total int64

	query := r.db.WithContext(ctx).Model(&model.Product{})

	if filter.ShedID > 0 {
		query = query.Where("shed_id = ?", filter.ShedID)
	}
	if filter.VendorProfileID > 0 {
		query = query.Where("vendor_profile_id = ?", filter.VendorProfileID)
	}
	if filter.Domain != "" {
		query = query.Joins("JOIN sheds ON sheds.id = products.shed_id").
			Where("sheds.domain = ?", filter.Domain)
	}
	if filter.Keyword != "" {
		query = query.Where("products.name LIKE ?", "%"+filter.Keyword+"%")
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
	if err := query.Order("products.created_at DESC").Limit(filter.PageSize).Offset(offset).Find(&products).Error; err != nil {
		return nil, 0, err
	}

	return products, total, nil
}

func (r *productRepo) CountByVendor(ctx context.Context, vendorProfileID int64) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Product{}).
		Where("vendor_profile_id = ?", vendorProfileID).
		Count(&count).Error
	return count, err
}
