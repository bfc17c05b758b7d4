package service

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"tradefair_dev_v1_202608/internal/api/dto"
	"tradefair_dev_v1_202608/internal/model"
	"tradefair_dev_v1_202608/internal/repository"
)

// ==================== FollowService 关注服务 ====================

// FollowService 顾客关注摊主
type FollowService struct {
	followRepo   repository.FollowRepository
	customerRepo repository.CustomerProfileRepository
	vendorRepo   repository.VendorProfileRepository
}

// NewFollowService 创建关注服务
func NewFollowService(
	followRepo repository.FollowRepository,
	customerRepo repository.CustomerProfileRepository,
	vendorRepo repository.VendorProfileRepository,
) *FollowService {
	return &FollowService{
		followRepo:   followRepo,
		customerRepo: customerRepo,
		vendorRepo:   vendorRepo,
	}
}

// Follow 顾客关注摊主
func (s *FollowService) Follow(ctx context.Context, userID, vendorID int64) (*model.Follow, error) {
	customer, err := s.requireCustomer(ctx, userID)
	if err != nil {
		return nil, err
	}

	vendor, err := s.vendorRepo.GetByID(ctx, vendorID)
	if err != nil {
		return nil, err
	}
	if vendor == nil {
		return nil, ErrVendorNotFound
	}

	existing, err := s.followRepo.GetByPair(ctx, customer.ID, vendor.ID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrAlreadyFollowing
	}

	follow := &model.Follow{
		CustomerProfileID: customer.ID,
		VendorProfileID:   vendor.ID,
	}
	if err := s.followRepo.Create(ctx, follow); err != nil {
		// 并发重复关注撞联合唯一索引
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrAlreadyFollowing
		}
		return nil, err
	}
	follow.Vendor = vendor
	return follow, nil
}

// Unfollow 取消关注
func (s *FollowService) Unfollow(ctx context.Context, userID, vendorID int64) error {
	customer, err := s.requireCustomer(ctx, userID)
	if err != nil {
		return err
	}

	follow, err := s.followRepo.GetByPair(ctx, customer.ID, vendorID)
	if err != nil {
		return err
	}
	if follow == nil {
		return ErrNotFollowing
	}
	return s.followRepo.Delete(ctx, follow.ID)
}

// ListFollowing 当前顾客的关注列表
func (s *FollowService) ListFollowing(ctx context.Context, userID int64) ([]model.Follow, error) {
	customer, err := s.requireCustomer(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.followRepo.ListByCustomer(ctx, customer.ID)
}

// ==================== 内部方法 ====================

func (s *FollowService) requireCustomer(ctx context.Context, userID int64) (*model.CustomerProfile, error) {
	customer, err := s.customerRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, ErrCustomerNotFound
	}
	return customer, nil
}

// ToFollowResp 转换为 DTO
func ToFollowResp(follow *model.Follow) dto.FollowResp {
	resp := dto.FollowResp{
		ID:        follow.ID,
		VendorID:  follow.VendorProfileID,
		CreatedAt: follow.CreatedAt,
	}
	if follow.Vendor != nil {
		resp.BusinessName = follow.Vendor.BusinessName
		resp.Domain = follow.Vendor.Domain
	}
	return resp
}

// ==================== 错误定义 ====================

var (
	ErrAlreadyFollowing = errors.New("已关注该摊主")
	ErrNotFollowing     = errors.New("未关注该摊主")
)
