package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"tradefair_dev_v1_202608/internal/api/dto"
	"tradefair_dev_v1_202608/internal/model"
	"tradefair_dev_v1_202608/internal/repository"
	"tradefair_dev_v1_202608/pkg/paystack"
)

// ==================== Webhook 处理结果 ====================

// WebhookOutcome webhook 处理结果
type WebhookOutcome int

const (
	WebhookProcessed WebhookOutcome = iota // 触发了一次状态变更
	WebhookIgnored                         // 合法事件但无需处理（非成功事件 / 重复回调）
	WebhookNotFound                        // reference 对不上任何流水
)

// ==================== PaymentService 支付服务 ====================

// PaymentService 摊位费支付 + 网关 webhook 对账
type PaymentService struct {
	paymentRepo       repository.PaymentRepository
	vendorPaymentRepo repository.VendorPaymentRepository
	preorderRepo      repository.PreorderRepository
	shedRepo          repository.ShedRepository
	vendorRepo        repository.VendorProfileRepository
	registrationSvc   *RegistrationService
	gateway           PaymentGateway
	secretKey         string
	callbackURL       string
}

// NewPaymentService 创建支付服务
func NewPaymentService(
	paymentRepo repository.PaymentRepository,
	vendorPaymentRepo repository.VendorPaymentRepository,
	preorderRepo repository.PreorderRepository,
	shedRepo repository.ShedRepository,
	vendorRepo repository.VendorProfileRepository,
	registrationSvc *RegistrationService,
	gateway PaymentGateway,
	secretKey string,
	callbackURL string,
) *PaymentService {
	return &PaymentService{
		paymentRepo:       paymentRepo,
		vendorPaymentRepo: vendorPaymentRepo,
		preorderRepo:      preorderRepo,
		shedRepo:          shedRepo,
		vendorRepo:        vendorRepo,
		registrationSvc:   registrationSvc,
		gateway:           gateway,
		secretKey:         secretKey,
		callbackURL:       callbackURL,
	}
}

// ==================== 摊位费补缴 ====================

// InitiateShedPayment 为未缴费摊位发起摊位费支付
// 正常注册流程摊位生来就是 secured 的；这条路径服务于
// 历史欠费或支付后被判定失败的摊位
func (s *PaymentService) InitiateShedPayment(ctx context.Context, userID int64, req *dto.InitiateShedPaymentReq) (*dto.InitiatePaymentResp, error) {
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
	if shed.Secured {
		return nil, ErrShedAlreadySecured
	}

	amount, err := decimal.NewFromString(req.Amount)
	if err != nil || amount.LessThanOrEqual(decimal.Zero) {
		return nil, ErrInvalidPrice
	}
	amountKobo := amount.Mul(decimal.NewFromInt(100)).IntPart()

	reference := fmt.Sprintf("shedfee_%d_%s", shed.ID, uuid.New().String())

	existing, err := s.vendorPaymentRepo.GetByShedID(ctx, shed.ID)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		err = s.vendorPaymentRepo.Create(ctx, &model.VendorPayment{
			ShedID:    shed.ID,
			Amount:    amount,
			Reference: reference,
			Status:    model.PaymentStatusPending,
		})
		if err != nil {
			return nil, err
		}
	} else if existing.Status == model.PaymentStatusSuccess {
		return nil, ErrShedAlreadySecured
	} else {
		reference = existing.Reference
		amountKobo = existing.Amount.Mul(decimal.NewFromInt(100)).IntPart()
	}

	email := ""
	if vendor.User != nil {
		email = vendor.User.Email
	}

	initResp, err := s.gateway.Initialize(ctx, &paystack.InitializeRequest{
		Reference:   reference,
		Amount:      amountKobo,
		Email:       email,
		CallbackURL: s.callbackURL,
	})
	if err != nil {
		log.Printf("摊位 %d 摊位费支付初始化失败: %v", shed.ID, err)
		return nil, ErrPaymentInitiation
	}

	return &dto.InitiatePaymentResp{
		AuthorizationURL: initResp.Data.AuthorizationURL,
		Reference:        initResp.Data.Reference,
		AmountKobo:       amountKobo,
	}, nil
}

// ==================== Webhook ====================

// HandleWebhook 网关回调入口
// 先验 HMAC 签名，再按 reference 分流：
// 暂存注册 -> 开通摊主；摊位费流水 -> secured；预订单流水 -> success
// 所有路径幂等，重放同一事件不产生第二次状态变更
func (s *PaymentService) HandleWebhook(ctx context.Context, body []byte, signature string) (WebhookOutcome, error) {
	if !paystack.VerifySignature(s.secretKey, body, signature) {
		return WebhookIgnored, ErrInvalidSignature
	}

	var event paystack.WebhookEvent
	if err := json.Unmarshal(body, &event); err != nil {
		return WebhookIgnored, fmt.Errorf("webhook 事件解析失败: %w", err)
	}

	// 只处理成功事件，其余静默确认防止网关无限重发
	if event.Event != paystack.EventChargeSuccess || event.Data.Status != paystack.TxStatusSuccess {
		return WebhookIgnored, nil
	}

	reference := event.Data.Reference
	if reference == "" {
		return WebhookIgnored, nil
	}

	// 1. 暂存注册：首次支付成功即开通摊主
	if s.registrationSvc.IsStagedReference(reference) {
		if _, err := s.registrationSvc.CompleteVendorRegistration(ctx, reference); err != nil {
			if errors.Is(err, ErrRegistrationExpired) {
				// 回调与过期赛跑输了，当作重复事件
				return WebhookIgnored, nil
			}
			return WebhookIgnored, err
		}
		return WebhookProcessed, nil
	}

	// 2. 摊位费流水
	vendorPayment, err := s.vendorPaymentRepo.GetByReference(ctx, reference)
	if err != nil {
		return WebhookIgnored, err
	}
	if vendorPayment != nil {
		return s.settleVendorPayment(ctx, vendorPayment)
	}

	// 3. 预订单流水
	payment, err := s.paymentRepo.GetByReference(ctx, reference)
	if err != nil {
		return WebhookIgnored, err
	}
	if payment != nil {
		return s.settlePreorderPayment(ctx, payment)
	}

	log.Printf("webhook reference 无法识别: %s", reference)
	return WebhookNotFound, nil
}

// settleVendorPayment 摊位费到账：流水置 success，摊位置 secured，摊主档案置 COMPLETED
func (s *PaymentService) settleVendorPayment(ctx context.Context, payment *model.VendorPayment) (WebhookOutcome, error) {
	if payment.Status == model.PaymentStatusSuccess {
		return WebhookIgnored, nil // 重放
	}

	if err := s.vendorPaymentRepo.UpdateStatus(ctx, payment.ID, model.PaymentStatusSuccess); err != nil {
		return WebhookIgnored, err
	}
	if err := s.shedRepo.SetSecured(ctx, payment.ShedID, true); err != nil {
		return WebhookIgnored, err
	}

	shed, err := s.shedRepo.GetByID(ctx, payment.ShedID)
	if err != nil {
		return WebhookIgnored, err
	}
	if shed != nil && shed.VendorProfileID > 0 {
		if err := s.vendorRepo.UpdatePaymentStatus(ctx, shed.VendorProfileID, model.VendorPaymentCompleted); err != nil {
			return WebhookIgnored, err
		}
	}

	log.Printf("摊位费到账: shed=%d, reference=%s", payment.ShedID, payment.Reference)
	return WebhookProcessed, nil
}

// settlePreorderPayment 预订单支付到账：流水置 success，预订单置 confirmed
func (s *PaymentService) settlePreorderPayment(ctx context.Context, payment *model.Payment) (WebhookOutcome, error) {
	if payment.Status == model.PaymentStatusSuccess {
		return WebhookIgnored, nil // 重放
	}

	if err := s.paymentRepo.UpdateStatus(ctx, payment.ID, model.PaymentStatusSuccess); err != nil {
		return WebhookIgnored, err
	}

	// 付了钱的预订单自动确认，摊主无需再手动点确认
	preorder, err := s.preorderRepo.GetByID(ctx, payment.PreorderID)
	if err != nil {
		return WebhookIgnored, err
	}
	if preorder != nil && preorder.Status == model.PreorderStatusPending {
		if err := s.preorderRepo.UpdateStatus(ctx, preorder.ID, model.PreorderStatusConfirmed); err != nil {
			return WebhookIgnored, err
		}
	}

	log.Printf("预订单支付到账: preorder=%d, reference=%s", payment.PreorderID, payment.Reference)
	return WebhookProcessed, nil
}

// ==================== 对账 ====================

// ReconcilePending 主动向网关核实悬挂的 pending 流水
// 兜底 webhook 丢失的场景，由定时任务驱动
func (s *PaymentService) ReconcilePending(ctx context.Context, payments []model.Payment, vendorPayments []model.VendorPayment) {
	for i := range payments {
		p := &payments[i]
		verifyResp, err := s.gateway.Verify(ctx, p.Reference)
		if err != nil {
			log.Printf("对账查询失败: reference=%s, err=%v", p.Reference, err)
			continue
		}
		switch verifyResp.Data.Status {
		case paystack.TxStatusSuccess:
			if _, err := s.settlePreorderPayment(ctx, p); err != nil {
				log.Printf("对账落账失败: reference=%s, err=%v", p.Reference, err)
			}
		case paystack.TxStatusFailed:
			if err := s.paymentRepo.UpdateStatus(ctx, p.ID, model.PaymentStatusFailed); err != nil {
				log.Printf("对账置失败出错: reference=%s, err=%v", p.Reference, err)
			}
		}
	}

	for i := range vendorPayments {
		vp := &vendorPayments[i]
		verifyResp, err := s.gateway.Verify(ctx, vp.Reference)
		if err != nil {
			log.Printf("对账查询失败: reference=%s, err=%v", vp.Reference, err)
			continue
		}
		switch verifyResp.Data.Status {
		case paystack.TxStatusSuccess:
			if _, err := s.settleVendorPayment(ctx, vp); err != nil {
				log.Printf("对账落账失败: reference=%s, err=%v", vp.Reference, err)
			}
		case paystack.TxStatusFailed:
			if err := s.vendorPaymentRepo.UpdateStatus(ctx, vp.ID, model.PaymentStatusFailed); err != nil {
				log.Printf("对账置失败出错: reference=%s, err=%v", vp.Reference, err)
			}
		}
	}
}

// ==================== 错误定义 ====================

var (
	ErrInvalidSignature   = errors.New("webhook 签名校验失败")
	ErrShedAlreadySecured = errors.New("摊位费已缴清")
)
