package service

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"

	"tradefair_dev_v1_202608/internal/api/dto"
	"tradefair_dev_v1_202608/internal/model"
	"tradefair_dev_v1_202608/internal/repository"
)

// ==================== ProductService 商品服务 ====================

// ProductService 商品管理
// 写操作仅限摊主本人且摊位已缴费，读操作公开
type ProductService struct {
	productRepo repository.ProductRepository
	shedRepo    repository.ShedRepository
	vendorRepo  repository.VendorProfileRepository
}

// NewProductService 创建商品服务
func NewProductService(
	productRepo repository.ProductRepository,
	shedRepo repository.ShedRepository,
	vendorRepo repository.VendorProfileRepository,
) *ProductService {
	return &ProductService{
		productRepo: productRepo,
		shedRepo:    shedRepo,
		vendorRepo:  vendorRepo,
	}
}

// CreateProduct 摊主上架商品
func (s *ProductService) CreateProduct(ctx context.Context, userID int64, req *dto.CreateProductReq) (*model.Product, error) {
	vendor, shed, err := s.requireSecuredShed(ctx, userID)
	if err != nil {
		return nil, err
	}

	price, err := decimal.NewFromString(req.Price)
	if err != nil || price.LessThanOrEqual(decimal.Zero) {
		return nil, ErrInvalidPrice
	}
	if req.Quantity == nil || *req.Quantity < 0 {
		return nil, ErrInvalidQuantity
	}

	product := &model.Product{
		ShedID:          shed.ID,
		VendorProfileID: vendor.ID,
		Name:            req.Name,
		Description:     req.Description,
		Price:           price,
		Quantity:        *req.Quantity,
		Image:           req.Image,
	}
	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

// GetProduct 商品详情（公开）
func (s *ProductService) GetProduct(ctx context.Context, id int64) (*model.Product, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}
	return product, nil
}

// ListProducts 商品列表（公开，支持类目 / 摊位 / 关键词筛选）
func (s *ProductService) ListProducts(ctx context.Context, filter repository.ProductFilter) ([]model.Product, int64, error) {
	if filter.Domain != "" && !model.IsValidDomain(filter.Domain) {
		return nil, 0, ErrInvalidDomain
	}
	return s.productRepo.List(ctx, filter)
}

// UpdateProduct 摊主更新商品
func (s *ProductService) UpdateProduct(ctx context.Context, userID int64, req *dto.UpdateProductReq) (*model.Product, error) {
	product, err := s.requireOwnProduct(ctx, userID, req.ID)
	if err != nil {
		return nil, err
	}

	fields := map[string]interface{}{}
	if req.Name != "" {
		fields["name"] = req.Name
	}
	if req.Description != nil {
		fields["description"] = *req.Description
	}
	if req.Price != "" {
		price, err := decimal.NewFromString(req.Price)
		if err != nil || price.LessThanOrEqual(decimal.Zero) {
			return nil, ErrInvalidPrice
		}
		fields["price"] = price
	}
	if req.Quantity != nil {
		if *req.Quantity < 0 {
			return nil, ErrInvalidQuantity
		}
		fields["quantity"] = *req.Quantity
	}
	if req.Image != nil {
		fields["image"] = *req.Image
	}

	if len(fields) > 0 {
		if err := s.productRepo.UpdateFields(ctx, product.ID, fields); err != nil {
			return nil, err
		}
	}
	return s.productRepo.GetByID(ctx, product.ID)
}

// DeleteProduct 摊主下架商品
func (s *ProductService) DeleteProduct(ctx context.Context, userID, productID int64) error {
	product, err := s.requireOwnProduct(ctx, userID, productID)
	if err != nil {
		return err
	}
	return s.productRepo.Delete(ctx, product.ID)
}

// ==================== 内部方法 ====================

// requireSecuredShed 找到当前摊主已缴费的摊位
func (s *ProductService) requireSecuredShed(ctx context.Context, userID int64) (*model.VendorProfile, *model.Shed, error) {
	vendor, err := s.vendorRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, nil, err
	}
	if vendor == nil {
		return nil, nil, ErrVendorNotFound
	}

	shed, err := s.shedRepo.GetByVendorID(ctx, vendor.ID)
	if err != nil {
		return nil, nil, err
	}
	if shed == nil {
		return nil, nil, ErrShedNotFound
	}
	if !shed.Secured {
		return nil, nil, ErrShedNotSecured
	}
	return vendor, shed, nil
}

func (s *ProductService) requireOwnProduct(ctx context.Context, userID, productID int64) (*model.Product, error) {
	product, err := s.productRepo.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}

	vendor, err := s.vendorRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if vendor == nil || product.VendorProfileID != vendor.ID {
		return nil, ErrNotProductOwner
	}
	return product, nil
}

// ToProductResp 转换为 DTO
func ToProductResp(product *model.Product) dto.ProductResp {
	resp := dto.ProductResp{
		ID:          product.ID,
		ShedID:      product.ShedID,
		VendorID:    product.VendorProfileID,
		Name:        product.Name,
		Description: product.Description,
		Price:       product.Price.StringFixed(2),
		Quantity:    product.Quantity,
		Image:       product.Image,
		CreatedAt:   product.CreatedAt,
		UpdatedAt:   product.UpdatedAt,
	}
	if product.Shed != nil {
		resp.ShedNumber = product.Shed.ShedNumber
	}
	return resp
}

// ==================== 错误定义 ====================

var (
	ErrProductNotFound = errors.New("商品不存在")
	ErrNotProductOwner = errors.New("只能操作自己的商品")
	ErrInvalidPrice    = errors.New("价格必须大于 0")
	ErrInvalidQuantity = errors.New("库存数量不能为负")
	ErrShedNotSecured  = errors.New("摊位费未缴清，不能上架商品")
)
