package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"tradefair_dev_v1_202608/internal/api/dto"
	"tradefair_dev_v1_202608/internal/middleware"
	"tradefair_dev_v1_202608/internal/model"
	"tradefair_dev_v1_202608/internal/repository"
	"tradefair_dev_v1_202608/pkg/paystack"
	"tradefair_dev_v1_202608/pkg/utils"
)

// ==================== 配置 ====================

// RegistrationConfig 注册服务配置
type RegistrationConfig struct {
	ShedFeeNaira decimal.Decimal // 摊位费（NGN）
	CallbackURL  string          // 支付完成后网关跳回的地址
	StageTTL     time.Duration   // 注册暂存有效期
}

// DefaultRegistrationConfig 默认配置
func DefaultRegistrationConfig() *RegistrationConfig {
	return &RegistrationConfig{
		ShedFeeNaira: decimal.NewFromInt(25000),
		StageTTL:     time.Hour,
	}
}

// ==================== 暂存数据 ====================

// stagedVendorRegistration 摊主注册暂存数据
// 支付确认前不落库，只存在缓存里，过期视为放弃
type stagedVendorRegistration struct {
	Username     string `json:"username"`
	Email        string `json:"email"`
	PasswordHash string `json:"password_hash"`
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	BusinessName string `json:"business_name"`
	Description  string `json:"description"`
	Domain       string `json:"domain"`
	ShedName     string `json:"shed_name"`
	AmountKobo   int64  `json:"amount_kobo"`
}

// 暂存缓存 key 前缀
const stageKeyPrefix = "shedreg_"

// ==================== RegistrationService 注册服务 ====================

// RegistrationService 注册入口
// 顾客注册立即生效；摊主注册先暂存，摊位费到账后才开通
type RegistrationService struct {
	cfg          *RegistrationConfig
	userRepo     repository.UserRepository
	customerRepo repository.CustomerProfileRepository
	uow          *repository.ProvisionUnitOfWork
	gateway      PaymentGateway
}

// NewRegistrationService 创建注册服务
func NewRegistrationService(
	cfg *RegistrationConfig,
	userRepo repository.UserRepository,
	customerRepo repository.CustomerProfileRepository,
	uow *repository.ProvisionUnitOfWork,
	gateway PaymentGateway,
) *RegistrationService {
	if cfg == nil {
		cfg = DefaultRegistrationConfig()
	}
	return &RegistrationService{
		cfg:          cfg,
		userRepo:     userRepo,
		customerRepo: customerRepo,
		uow:          uow,
		gateway:      gateway,
	}
}

// ==================== 顾客注册 ====================

// SignupCustomer 顾客注册，立即建号并返回 Token
func (s *RegistrationService) SignupCustomer(ctx context.Context, req *dto.SignupRequest) (*dto.CustomerSignupResponse, error) {
	if err := s.checkAccountAvailable(ctx, req); err != nil {
		return nil, err
	}

	hashed, err := HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Username:  req.Username,
		Password:  hashed,
		Email:     req.Email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		IsVendor:  false,
		IsActive:  true,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	profile := &model.CustomerProfile{
		UserID:  user.ID,
		Phone:   req.Phone,
		Address: req.Address,
	}
	if err := s.customerRepo.Create(ctx, profile); err != nil {
		return nil, err
	}

	accessToken, refreshToken, err := middleware.GenerateTokenPair(user.ID, user.Username, model.RoleCustomer)
	if err != nil {
		return nil, err
	}

	cfg := middleware.GetJWTConfig()
	return &dto.CustomerSignupResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresAt:    time.Now().Add(cfg.AccessTokenTTL),
		User:         ToUserInfo(user),
	}, nil
}

// ==================== 摊主注册（支付前置） ====================

// StageVendorSignup 暂存摊主注册并发起摊位费支付
// 此时不写任何数据库记录，只拿到收银台地址
func (s *RegistrationService) StageVendorSignup(ctx context.Context, req *dto.SignupRequest) (*dto.VendorSignupResponse, error) {
	if req.BusinessName == "" || req.Domain == "" {
		return nil, ErrVendorFieldsRequired
	}
	if !model.IsValidDomain(req.Domain) {
		return nil, ErrInvalidDomain
	}
	if err := s.checkAccountAvailable(ctx, req); err != nil {
		return nil, err
	}

	hashed, err := HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	// 奈拉 -> kobo，金额换算只发生在网关边界
	amountKobo := s.cfg.ShedFeeNaira.Mul(decimal.NewFromInt(100)).IntPart()

	reference := stageKeyPrefix + uuid.New().String()

	shedName := req.ShedName
	if shedName == "" {
		shedName = req.BusinessName
	}

	staged := &stagedVendorRegistration{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: hashed,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		BusinessName: req.BusinessName,
		Description:  req.Description,
		Domain:       req.Domain,
		ShedName:     shedName,
		AmountKobo:   amountKobo,
	}
	payload, err := json.Marshal(staged)
	if err != nil {
		return nil, err
	}
	utils.SetCache(reference, string(payload), s.cfg.StageTTL)

	// 发起网关交易，失败则丢弃暂存，不留悬挂的注册
	initResp, err := s.gateway.Initialize(ctx, &paystack.InitializeRequest{
		Reference:   reference,
		Amount:      amountKobo,
		Email:       req.Email,
		CallbackURL: s.cfg.CallbackURL,
	})
	if err != nil {
		utils.DeleteCache(reference)
		log.Printf("摊主注册支付初始化失败: %v", err)
		return nil, ErrPaymentInitiation
	}

	return &dto.VendorSignupResponse{
		Reference:        initResp.Data.Reference,
		AuthorizationURL: initResp.Data.AuthorizationURL,
		AmountKobo:       amountKobo,
	}, nil
}

// IsStagedReference 判断 reference 是否还在暂存中（webhook 分流用）
func (s *RegistrationService) IsStagedReference(reference string) bool {
	_, ok := utils.GetCache(reference)
	return ok
}

// CompleteVendorRegistration 支付确认后开通摊主
// 同一事务内创建 User + VendorProfile + Shed + VendorPayment，
// 摊位编号分配也在这一刻执行（而非注册请求时）
// 处理成功即删除暂存，重复回调自然命中"不存在"，以此实现幂等
func (s *RegistrationService) CompleteVendorRegistration(ctx context.Context, reference string) (*model.VendorProfile, error) {
	payload, ok := utils.GetCache(reference)
	if !ok {
		return nil, ErrRegistrationExpired
	}

	var staged stagedVendorRegistration
	if err := json.Unmarshal([]byte(payload), &staged); err != nil {
		utils.DeleteCache(reference)
		return nil, fmt.Errorf("注册暂存数据损坏: %w", err)
	}

	amount := decimal.NewFromInt(staged.AmountKobo).Div(decimal.NewFromInt(100))

	var vendor *model.VendorProfile
	err := s.uow.Transaction(ctx, func(uow *repository.ProvisionUnitOfWork) error {
		user := &model.User{
			Username:  staged.Username,
			Password:  staged.PasswordHash,
			Email:     staged.Email,
			FirstName: staged.FirstName,
			LastName:  staged.LastName,
			IsVendor:  true,
			IsActive:  true,
		}
		if err := uow.Users.Create(ctx, user); err != nil {
			return err
		}

		// 先占位创建档案，摊位编号分配成功后回填序号
		profile := &model.VendorProfile{
			UserID:           user.ID,
			BusinessName:     staged.BusinessName,
			Description:      staged.Description,
			Domain:           staged.Domain,
			ShedNumber:       0,
			PaymentStatus:    model.VendorPaymentCompleted,
			PaymentReference: reference,
		}

		shed, seq, err := AllocateAndCreateShed(ctx, uow.Sheds, 0, staged.ShedName, staged.Domain, true)
		if err != nil {
			return err
		}

		profile.ShedNumber = seq
		if err := uow.Vendors.Create(ctx, profile); err != nil {
			return err
		}

		// 回填摊位归属
		if err := uow.Sheds.UpdateFields(ctx, shed.ID, map[string]interface{}{
			"vendor_profile_id": profile.ID,
		}); err != nil {
			return err
		}

		if err := uow.VendorPayments.Create(ctx, &model.VendorPayment{
			ShedID:    shed.ID,
			Amount:    amount,
			Reference: reference,
			Status:    model.PaymentStatusSuccess,
		}); err != nil {
			return err
		}

		vendor = profile
		return nil
	})
	if err != nil {
		return nil, err
	}

	// 用完即焚：第二次同 reference 的回调会拿不到暂存
	utils.DeleteCache(reference)

	log.Printf("摊主开通完成: %s, 类目 %s, 摊位序号 %03d", staged.Username, staged.Domain, vendor.ShedNumber)
	return vendor, nil
}

// CompleteFromCallback 同步回跳入口：先向网关核实，再走开通流程
func (s *RegistrationService) CompleteFromCallback(ctx context.Context, reference string) (*model.VendorProfile, error) {
	verifyResp, err := s.gateway.Verify(ctx, reference)
	if err != nil {
		return nil, ErrUpstreamGateway
	}
	if verifyResp.Data.Status != paystack.TxStatusSuccess {
		// 支付失败，丢弃暂存，用户需重新注册
		utils.DeleteCache(reference)
		return nil, ErrPaymentFailed
	}
	return s.CompleteVendorRegistration(ctx, reference)
}

// ==================== 内部方法 ====================

func (s *RegistrationService) checkAccountAvailable(ctx context.Context, req *dto.SignupRequest) error {
	if req.Password != req.Password2 {
		return ErrPasswordMismatch
	}

	exists, err := s.userRepo.ExistsByUsername(ctx, req.Username)
	if err != nil {
		return err
	}
	if exists {
		return ErrUsernameExists
	}

	exists, err = s.userRepo.ExistsByEmail(ctx, req.Email)
	if err != nil {
		return err
	}
	if exists {
		return ErrEmailExists
	}
	return nil
}

// ==================== 错误定义 ====================

var (
	ErrPasswordMismatch     = errors.New("两次输入的密码不一致")
	ErrVendorFieldsRequired = errors.New("摊主注册必须提供商号和类目")
	ErrRegistrationExpired  = errors.New("注册已过期或已完成，请重新注册")
	ErrPaymentInitiation    = errors.New("支付初始化失败，请稍后重试")
	ErrPaymentFailed        = errors.New("支付未成功，注册已取消")
	ErrUpstreamGateway      = errors.New("支付网关暂时不可用")
)
