package service

import (
	"context"
	"errors"

	"tradefair_dev_v1_202608/internal/api/dto"
	"tradefair_dev_v1_202608/internal/model"
	"tradefair_dev_v1_202608/internal/repository"
)

// ==================== ProfileService 档案服务 ====================

// ProfileService 摊主 / 顾客档案查询与维护
type ProfileService struct {
	userRepo     repository.UserRepository
	vendorRepo   repository.VendorProfileRepository
	customerRepo repository.CustomerProfileRepository
}

// NewProfileService 创建档案服务
func NewProfileService(
	userRepo repository.UserRepository,
	vendorRepo repository.VendorProfileRepository,
	customerRepo repository.CustomerProfileRepository,
) *ProfileService {
	return &ProfileService{
		userRepo:     userRepo,
		vendorRepo:   vendorRepo,
		customerRepo: customerRepo,
	}
}

// GetCurrentUser 当前用户信息
func (s *ProfileService) GetCurrentUser(ctx context.Context, userID int64) (*dto.UserInfo, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return ToUserInfo(user), nil
}

// GetVendorProfile 摊主档案（公开，用于摊主主页）
func (s *ProfileService) GetVendorProfile(ctx context.Context, vendorID int64) (*dto.VendorProfileResp, error) {
	vendor, err := s.vendorRepo.GetByID(ctx, vendorID)
	if err != nil {
		return nil, err
	}
	if vendor == nil {
		return nil, ErrVendorNotFound
	}
	return ToVendorProfileResp(vendor), nil
}

// GetOwnVendorProfile 当前用户的摊主档案
func (s *ProfileService) GetOwnVendorProfile(ctx context.Context, userID int64) (*dto.VendorProfileResp, error) {
	vendor, err := s.vendorRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if vendor == nil {
		return nil, ErrVendorNotFound
	}
	return ToVendorProfileResp(vendor), nil
}

// UpdateVendorProfile 更新摊主档案（商号和简介，类目和摊位号不可改）
func (s *ProfileService) UpdateVendorProfile(ctx context.Context, userID int64, req *dto.UpdateVendorProfileReq) (*dto.VendorProfileResp, error) {
	vendor, err := s.vendorRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if vendor == nil {
		return nil, ErrVendorNotFound
	}

	if req.BusinessName != "" {
		vendor.BusinessName = req.BusinessName
	}
	if req.Description != "" {
		vendor.Description = req.Description
	}
	if err := s.vendorRepo.Update(ctx, vendor); err != nil {
		return nil, err
	}
	return ToVendorProfileResp(vendor), nil
}

// ListVendors 摊主列表（公开）
func (s *ProfileService) ListVendors(ctx context.Context, filter repository.VendorFilter) ([]dto.VendorProfileResp, int64, error) {
	if filter.Domain != "" && !model.IsValidDomain(filter.Domain) {
		return nil, 0, ErrInvalidDomain
	}
	vendors, total, err := s.vendorRepo.List(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	resps := make([]dto.VendorProfileResp, 0, len(vendors))
	for i := range vendors {
		resps = append(resps, *ToVendorProfileResp(&vendors[i]))
	}
	return resps, total, nil
}

// GetCustomerProfile 当前用户的顾客档案
func (s *ProfileService) GetCustomerProfile(ctx context.Context, userID int64) (*dto.CustomerProfileResp, error) {
	customer, err := s.customerRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, ErrCustomerNotFound
	}
	return toCustomerProfileResp(customer), nil
}

// UpdateCustomerProfile 更新顾客档案
func (s *ProfileService) UpdateCustomerProfile(ctx context.Context, userID int64, req *dto.UpdateCustomerProfileReq) (*dto.CustomerProfileResp, error) {
	customer, err := s.customerRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, ErrCustomerNotFound
	}

	if req.Phone != "" {
		customer.Phone = req.Phone
	}
	if req.Address != "" {
		customer.Address = req.Address
	}
	if err := s.customerRepo.Update(ctx, customer); err != nil {
		return nil, err
	}
	return toCustomerProfileResp(customer), nil
}

// ==================== 辅助方法 ====================

// ToVendorProfileResp 转换为 DTO
func ToVendorProfileResp(vendor *model.VendorProfile) *dto.VendorProfileResp {
	return &dto.VendorProfileResp{
		ID:            vendor.ID,
		UserID:        vendor.UserID,
		BusinessName:  vendor.BusinessName,
		Description:   vendor.Description,
		Domain:        vendor.Domain,
		DomainName:    model.DomainNames[vendor.Domain],
		ShedNumber:    vendor.ShedNumber,
		PaymentStatus: vendor.PaymentStatus,
	}
}

func toCustomerProfileResp(customer *model.CustomerProfile) *dto.CustomerProfileResp {
	return &dto.CustomerProfileResp{
		ID:      customer.ID,
		UserID:  customer.UserID,
		Phone:   customer.Phone,
		Address: customer.Address,
	}
}

// ==================== 错误定义 ====================

var (
	ErrVendorNotFound   = errors.New("摊主不存在")
	ErrCustomerNotFound = errors.New("顾客档案不存在")
)
