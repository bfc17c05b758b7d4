package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/shopspring/decimal"

	"tradefair_dev_v1_202608/internal/api/dto"
	"tradefair_dev_v1_202608/internal/model"
	"tradefair_dev_v1_202608/internal/repository"
	"tradefair_dev_v1_202608/pkg/paystack"
)

// ==================== PreorderService 预订单服务 ====================

// PreorderService 预订单生命周期：创建 -> 支付 -> 确认 / 取消
type PreorderService struct {
	preorderRepo repository.PreorderRepository
	productRepo  repository.ProductRepository
	customerRepo repository.CustomerProfileRepository
	vendorRepo   repository.VendorProfileRepository
	paymentRepo  repository.PaymentRepository
	gateway      PaymentGateway
	callbackURL  string
}

// NewPreorderService 创建预订单服务
func NewPreorderService(
	preorderRepo repository.PreorderRepository,
	productRepo repository.ProductRepository,
	customerRepo repository.CustomerProfileRepository,
	vendorRepo repository.VendorProfileRepository,
	paymentRepo repository.PaymentRepository,
	gateway PaymentGateway,
	callbackURL string,
) *PreorderService {
	return &PreorderService{
		preorderRepo: preorderRepo,
		productRepo:  productRepo,
		customerRepo: customerRepo,
		vendorRepo:   vendorRepo,
		paymentRepo:  paymentRepo,
		gateway:      gateway,
		callbackURL:  callbackURL,
	}
}

// CreatePreorder 顾客创建预订单
// 数量必须为正且不超过当前库存；库存不在此处扣减，确认时由摊主处理
func (s *PreorderService) CreatePreorder(ctx context.Context, userID int64, req *dto.CreatePreorderReq) (*model.Preorder, error) {
	customer, err := s.customerRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, ErrCustomerNotFound
	}

	product, err := s.productRepo.GetByID(ctx, req.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}

	if req.Quantity <= 0 {
		return nil, ErrInvalidQuantity
	}
	if req.Quantity > product.Quantity {
		return nil, ErrInsufficientStock
	}

	preorder := &model.Preorder{
		CustomerProfileID: customer.ID,
		VendorProfileID:   product.VendorProfileID,
		ProductID:         product.ID,
		Quantity:          req.Quantity,
		Status:            model.PreorderStatusPending,
	}
	if err := s.preorderRepo.Create(ctx, preorder); err != nil {
		return nil, err
	}
	preorder.Product = product
	return preorder, nil
}

// GetPreorder 预订单详情（仅买卖双方可见）
func (s *PreorderService) GetPreorder(ctx context.Context, userID, preorderID int64) (*model.Preorder, error) {
	preorder, err := s.preorderRepo.GetByID(ctx, preorderID)
	if err != nil {
		return nil, err
	}
	if preorder == nil {
		return nil, ErrPreorderNotFound
	}
	if _, err := s.requireParty(ctx, userID, preorder); err != nil {
		return nil, err
	}
	return preorder, nil
}

// ListCustomerPreorders 当前顾客的预订单列表
func (s *PreorderService) ListCustomerPreorders(ctx context.Context, userID int64) ([]model.Preorder, error) {
	customer, err := s.customerRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, ErrCustomerNotFound
	}
	return s.preorderRepo.ListByCustomer(ctx, customer.ID)
}

// ListVendorPreorders 当前摊主收到的预订单列表
func (s *PreorderService) ListVendorPreorders(ctx context.Context, userID int64) ([]model.Preorder, error) {
	vendor, err := s.vendorRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if vendor == nil {
		return nil, ErrVendorNotFound
	}
	return s.preorderRepo.ListByVendor(ctx, vendor.ID)
}

// ConfirmPreorder 摊主确认预订单（仅 pending 可确认）
func (s *PreorderService) ConfirmPreorder(ctx context.Context, userID, preorderID int64) (*model.Preorder, error) {
	preorder, err := s.preorderRepo.GetByID(ctx, preorderID)
	if err != nil {
		return nil, err
	}
	if preorder == nil {
		return nil, ErrPreorderNotFound
	}

	vendor, err := s.vendorRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if vendor == nil || preorder.VendorProfileID != vendor.ID {
		return nil, ErrNotPreorderParty
	}

	if preorder.Status != model.PreorderStatusPending {
		return nil, ErrPreorderNotPending
	}

	if err := s.preorderRepo.UpdateStatus(ctx, preorder.ID, model.PreorderStatusConfirmed); err != nil {
		return nil, err
	}
	preorder.Status = model.PreorderStatusConfirmed
	return preorder, nil
}

// CancelPreorder 取消预订单，买卖双方都可发起（仅 pending 可取消）
func (s *PreorderService) CancelPreorder(ctx context.Context, userID, preorderID int64) (*model.Preorder, error) {
	preorder, err := s.preorderRepo.GetByID(ctx, preorderID)
	if err != nil {
		return nil, err
	}
	if preorder == nil {
		return nil, ErrPreorderNotFound
	}
	if _, err := s.requireParty(ctx, userID, preorder); err != nil {
		return nil, err
	}

	if preorder.Status != model.PreorderStatusPending {
		return nil, ErrPreorderNotPending
	}

	if err := s.preorderRepo.UpdateStatus(ctx, preorder.ID, model.PreorderStatusCancelled); err != nil {
		return nil, err
	}
	preorder.Status = model.PreorderStatusCancelled
	return preorder, nil
}

// ==================== 预订单支付 ====================

// InitiatePayment 顾客为预订单发起支付
// 金额 = 单价 x 数量，换算成 kobo 交给网关
func (s *PreorderService) InitiatePayment(ctx context.Context, userID, preorderID int64) (*dto.InitiatePaymentResp, error) {
	preorder, err := s.preorderRepo.GetByID(ctx, preorderID)
	if err != nil {
		return nil, err
	}
	if preorder == nil {
		return nil, ErrPreorderNotFound
	}

	customer, err := s.customerRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if customer == nil || preorder.CustomerProfileID != customer.ID {
		return nil, ErrNotPreorderParty
	}
	if preorder.Status == model.PreorderStatusCancelled {
		return nil, ErrPreorderCancelled
	}
	if preorder.Product == nil {
		return nil, ErrProductNotFound
	}

	// 已有成功流水则不允许重复支付
	existing, err := s.paymentRepo.GetByPreorderID(ctx, preorder.ID)
	if err != nil {
		return nil, err
	}
	if existing != nil && existing.Status == model.PaymentStatusSuccess {
		return nil, ErrAlreadyPaid
	}

	amount := preorder.Product.Price.Mul(decimal.NewFromInt(int64(preorder.Quantity)))
	amountKobo := amount.Mul(decimal.NewFromInt(100)).IntPart()

	reference := fmt.Sprintf("preorder_%d_%d_%d", preorder.ID, userID, time.Now().Unix())

	if existing == nil {
		err = s.paymentRepo.Create(ctx, &model.Payment{
			PreorderID: preorder.ID,
			Amount:     amount,
			Reference:  reference,
			Status:     model.PaymentStatusPending,
		})
	} else {
		// 复用流水记录，换新 reference 重试
		existing.Reference = reference
		existing.Status = model.PaymentStatusPending
		err = s.paymentRepo.Update(ctx, existing)
	}
	if err != nil {
		return nil, err
	}

	email := ""
	if preorder.Customer != nil && preorder.Customer.User != nil {
		email = preorder.Customer.User.Email
	}

	initResp, err := s.gateway.Initialize(ctx, &paystack.InitializeRequest{
		Reference:   reference,
		Amount:      amountKobo,
		Email:       email,
		CallbackURL: s.callbackURL,
	})
	if err != nil {
		log.Printf("预订单 %d 支付初始化失败: %v", preorder.ID, err)
		return nil, ErrPaymentInitiation
	}

	return &dto.InitiatePaymentResp{
		AuthorizationURL: initResp.Data.AuthorizationURL,
		Reference:        initResp.Data.Reference,
		AmountKobo:       amountKobo,
	}, nil
}

// CheckPaymentStatus 顾客主动查询预订单支付状态（向网关核实）
func (s *PreorderService) CheckPaymentStatus(ctx context.Context, userID, preorderID int64) (*dto.PaymentStatusResp, error) {
	preorder, err := s.preorderRepo.GetByID(ctx, preorderID)
	if err != nil {
		return nil, err
	}
	if preorder == nil {
		return nil, ErrPreorderNotFound
	}
	if _, err := s.requireParty(ctx, userID, preorder); err != nil {
		return nil, err
	}

	payment, err := s.paymentRepo.GetByPreorderID(ctx, preorder.ID)
	if err != nil {
		return nil, err
	}
	if payment == nil {
		return nil, ErrPaymentNotFound
	}

	// 终态直接返回，不再打扰网关
	if payment.Status != model.PaymentStatusPending {
		return &dto.PaymentStatusResp{Reference: payment.Reference, Status: payment.Status}, nil
	}

	verifyResp, err := s.gateway.Verify(ctx, payment.Reference)
	if err != nil {
		return nil, ErrUpstreamGateway
	}

	switch verifyResp.Data.Status {
	case paystack.TxStatusSuccess:
		if err := s.paymentRepo.UpdateStatus(ctx, payment.ID, model.PaymentStatusSuccess); err != nil {
			return nil, err
		}
		payment.Status = model.PaymentStatusSuccess
	case paystack.TxStatusFailed:
		if err := s.paymentRepo.UpdateStatus(ctx, payment.ID, model.PaymentStatusFailed); err != nil {
			return nil, err
		}
		payment.Status = model.PaymentStatusFailed
	}

	return &dto.PaymentStatusResp{Reference: payment.Reference, Status: payment.Status}, nil
}

// ==================== 内部方法 ====================

// requireParty 校验当前用户是预订单的买方或卖方
func (s *PreorderService) requireParty(ctx context.Context, userID int64, preorder *model.Preorder) (string, error) {
	customer, err := s.customerRepo.GetByUserID(ctx, userID)
	if err != nil {
		return "", err
	}
	if customer != nil && preorder.CustomerProfileID == customer.ID {
		return model.RoleCustomer, nil
	}

	vendor, err := s.vendorRepo.GetByUserID(ctx, userID)
	if err != nil {
		return "", err
	}
	if vendor != nil && preorder.VendorProfileID == vendor.ID {
		return model.RoleVendor, nil
	}
	return "", ErrNotPreorderParty
}

// ToPreorderResp 转换为 DTO
func ToPreorderResp(preorder *model.Preorder) dto.PreorderResp {
	resp := dto.PreorderResp{
		ID:         preorder.ID,
		CustomerID: preorder.CustomerProfileID,
		VendorID:   preorder.VendorProfileID,
		ProductID:  preorder.ProductID,
		Quantity:   preorder.Quantity,
		Status:     preorder.Status,
		CreatedAt:  preorder.CreatedAt,
	}
	if preorder.Product != nil {
		resp.ProductName = preorder.Product.Name
	}
	if preorder.Customer != nil && preorder.Customer.User != nil {
		resp.CustomerName = preorder.Customer.User.Username
	}
	return resp
}

// ==================== 错误定义 ====================

var (
	ErrPreorderNotFound   = errors.New("预订单不存在")
	ErrNotPreorderParty   = errors.New("无权操作该预订单")
	ErrPreorderNotPending = errors.New("预订单已处理，不能再变更")
	ErrPreorderCancelled  = errors.New("预订单已取消，不能支付")
	ErrInsufficientStock  = errors.New("库存不足")
	ErrAlreadyPaid        = errors.New("预订单已支付")
	ErrPaymentNotFound    = errors.New("支付流水不存在")
)
