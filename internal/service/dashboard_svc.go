package service

import (
	"context"

	"tradefair_dev_v1_202608/internal/api/dto"
	"tradefair_dev_v1_202608/internal/model"
	"tradefair_dev_v1_202608/internal/repository"
)

// ==================== DashboardService 仪表盘服务 ====================

// DashboardService 摊主仪表盘聚合
type DashboardService struct {
	vendorRepo        repository.VendorProfileRepository
	shedRepo          repository.ShedRepository
	productRepo       repository.ProductRepository
	preorderRepo      repository.PreorderRepository
	followRepo        repository.FollowRepository
	vendorPaymentRepo repository.VendorPaymentRepository
}

// NewDashboardService 创建仪表盘服务
func NewDashboardService(
	vendorRepo repository.VendorProfileRepository,
	shedRepo repository.ShedRepository,
	productRepo repository.ProductRepository,
	preorderRepo repository.PreorderRepository,
	followRepo repository.FollowRepository,
	vendorPaymentRepo repository.VendorPaymentRepository,
) *DashboardService {
	return &DashboardService{
		vendorRepo:        vendorRepo,
		shedRepo:          shedRepo,
		productRepo:       productRepo,
		preorderRepo:      preorderRepo,
		followRepo:        followRepo,
		vendorPaymentRepo: vendorPaymentRepo,
	}
}

// GetDashboard 当前摊主的经营概览
func (s *DashboardService) GetDashboard(ctx context.Context, userID int64) (*dto.DashboardResp, error) {
	vendor, err := s.vendorRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if vendor == nil {
		return nil, ErrVendorNotFound
	}

	shed, err := s.shedRepo.GetByVendorID(ctx, vendor.ID)
	if err != nil {
		return nil, err
	}
	if shed == nil {
		return nil, ErrShedNotFound
	}

	productCount, err := s.productRepo.CountByVendor(ctx, vendor.ID)
	if err != nil {
		return nil, err
	}

	preorderCount, err := s.preorderRepo.CountByVendor(ctx, vendor.ID)
	if err != nil {
		return nil, err
	}

	// 按状态分桶
	byStatus := make(map[string]int64, 3)
	for _, status := range []string{
		model.PreorderStatusPending,
		model.PreorderStatusConfirmed,
		model.PreorderStatusCancelled,
	} {
		count, err := s.preorderRepo.CountByVendorAndStatus(ctx, vendor.ID, status)
		if err != nil {
			return nil, err
		}
		byStatus[status] = count
	}

	followerCount, err := s.followRepo.CountByVendor(ctx, vendor.ID)
	if err != nil {
		return nil, err
	}

	resp := &dto.DashboardResp{
		Shed:          ToShedResp(shed),
		ProductCount:  productCount,
		PreorderCount: preorderCount,
		Preorders:     byStatus,
		FollowerCount: followerCount,
		PaymentStatus: vendor.PaymentStatus,
		Secured:       shed.Secured,
		Actions:       map[string]string{},
	}

	// 未缴费摊位引导去补缴；有未完成的流水就把流水号带回去
	if !shed.Secured {
		resp.Actions["pay_shed_fee"] = "/api/v1/payments/shed"
		vp, err := s.vendorPaymentRepo.GetByShedID(ctx, shed.ID)
		if err != nil {
			return nil, err
		}
		if vp != nil && vp.Status != model.PaymentStatusSuccess {
			resp.PendingShedFeeRef = vp.Reference
		}
	}
	if byStatus[model.PreorderStatusPending] > 0 {
		resp.Actions["review_preorders"] = "/api/v1/preorders/vendor"
	}

	return resp, nil
}
