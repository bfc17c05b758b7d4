package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"tradefair_dev_v1_202608/internal/api/dto"
	"tradefair_dev_v1_202608/internal/model"
	"tradefair_dev_v1_202608/internal/repository"
	"tradefair_dev_v1_202608/pkg/paystack"
)

// 测试夹具：user 1 = 顾客，user 2 = 摊主（有摊位和一件库存 5 的商品）
func newPreorderFixture(t *testing.T, gateway PaymentGateway) (*PreorderService, *gorm.DB) {
	db := setupServiceTestDB(t)
	svc := NewPreorderService(
		repository.NewPreorderRepository(db),
		repository.NewProductRepository(db),
		repository.NewCustomerProfileRepository(db),
		repository.NewVendorProfileRepository(db),
		repository.NewPaymentRepository(db),
		gateway,
		"http://localhost:8080/callback",
	)

	db.Create(&model.User{Username: "buyer", Email: "buyer@test.com", Password: "x", IsActive: true})
	db.Create(&model.CustomerProfile{UserID: 1, Phone: "080"})
	db.Create(&model.User{Username: "seller", Email: "seller@test.com", Password: "x", IsVendor: true, IsActive: true})
	db.Create(&model.VendorProfile{UserID: 2, BusinessName: "布艺坊", Domain: model.DomainClothings, ShedNumber: 1})
	db.Create(&model.Shed{VendorProfileID: 1, ShedNumber: "CB001", Name: "布艺坊", Domain: model.DomainClothings, Secured: true})
	db.Create(&model.Product{
		ShedID:          1,
		VendorProfileID: 1,
		Name:            "蜡染布",
		Price:           decimal.NewFromInt(1500),
		Quantity:        5,
	})

	return svc, db
}

// ==================== 创建测试 ====================

func TestCreatePreorder(t *testing.T) {
	svc, _ := newPreorderFixture(t, &mockGateway{})
	ctx := context.Background()

	preorder, err := svc.CreatePreorder(ctx, 1, &dto.CreatePreorderReq{ProductID: 1, Quantity: 3})
	if err != nil {
		t.Fatalf("CreatePreorder() error = %v", err)
	}
	if preorder.Status != model.PreorderStatusPending {
		t.Errorf("Status = %s, want pending", preorder.Status)
	}
	if preorder.VendorProfileID != 1 {
		t.Errorf("VendorProfileID = %d, want 1", preorder.VendorProfileID)
	}
}

func TestCreatePreorder_StockValidation(t *testing.T) {
	svc, _ := newPreorderFixture(t, &mockGateway{})
	ctx := context.Background()

	cases := []struct {
		name     string
		quantity int
		wantErr  error
	}{
		{"数量为零", 0, ErrInvalidQuantity},
		{"数量为负", -1, ErrInvalidQuantity},
		{"超出库存", 6, ErrInsufficientStock},
		{"等于库存", 5, nil},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.CreatePreorder(ctx, 1, &dto.CreatePreorderReq{ProductID: 1, Quantity: tc.quantity})
			if tc.wantErr == nil {
				if err != nil {
					t.Errorf("err = %v, want nil", err)
				}
				return
			}
			if !errors.Is(err, tc.wantErr) {
				t.Errorf("err = %v, want %v", err, tc.wantErr)
			}
		})
	}
}

func TestCreatePreorder_ProductMissing(t *testing.T) {
	svc, _ := newPreorderFixture(t, &mockGateway{})

	_, err := svc.CreatePreorder(context.Background(), 1, &dto.CreatePreorderReq{ProductID: 999, Quantity: 1})
	if !errors.Is(err, ErrProductNotFound) {
		t.Errorf("err = %v, want ErrProductNotFound", err)
	}
}

// ==================== 确认 / 取消测试 ====================

func TestConfirmPreorder_VendorOnly(t *testing.T) {
	svc, _ := newPreorderFixture(t, &mockGateway{})
	ctx := context.Background()

	preorder, err := svc.CreatePreorder(ctx, 1, &dto.CreatePreorderReq{ProductID: 1, Quantity: 1})
	if err != nil {
		t.Fatalf("CreatePreorder() error = %v", err)
	}

	// 顾客不能确认
	if _, err := svc.ConfirmPreorder(ctx, 1, preorder.ID); !errors.Is(err, ErrNotPreorderParty) {
		t.Errorf("顾客确认: err = %v, want ErrNotPreorderParty", err)
	}

	// 摊主可以确认
	confirmed, err := svc.ConfirmPreorder(ctx, 2, preorder.ID)
	if err != nil {
		t.Fatalf("摊主确认失败: %v", err)
	}
	if confirmed.Status != model.PreorderStatusConfirmed {
		t.Errorf("Status = %s, want confirmed", confirmed.Status)
	}

	// 已确认不能再确认
	if _, err := svc.ConfirmPreorder(ctx, 2, preorder.ID); !errors.Is(err, ErrPreorderNotPending) {
		t.Errorf("重复确认: err = %v, want ErrPreorderNotPending", err)
	}
}

func TestCancelPreorder_BothParties(t *testing.T) {
	svc, _ := newPreorderFixture(t, &mockGateway{})
	ctx := context.Background()

	// 顾客可以取消自己的预订单
	p1, _ := svc.CreatePreorder(ctx, 1, &dto.CreatePreorderReq{ProductID: 1, Quantity: 1})
	cancelled, err := svc.CancelPreorder(ctx, 1, p1.ID)
	if err != nil {
		t.Fatalf("顾客取消失败: %v", err)
	}
	if cancelled.Status != model.PreorderStatusCancelled {
		t.Errorf("Status = %s, want cancelled", cancelled.Status)
	}

	// 摊主也可以取消
	p2, _ := svc.CreatePreorder(ctx, 1, &dto.CreatePreorderReq{ProductID: 1, Quantity: 1})
	if _, err := svc.CancelPreorder(ctx, 2, p2.ID); err != nil {
		t.Fatalf("摊主取消失败: %v", err)
	}

	// 已取消的不能支付
	if _, err := svc.InitiatePayment(ctx, 1, p1.ID); !errors.Is(err, ErrPreorderCancelled) {
		t.Errorf("取消后支付: err = %v, want ErrPreorderCancelled", err)
	}
}

func TestGetPreorder_StrangerDenied(t *testing.T) {
	svc, db := newPreorderFixture(t, &mockGateway{})
	ctx := context.Background()

	preorder, _ := svc.CreatePreorder(ctx, 1, &dto.CreatePreorderReq{ProductID: 1, Quantity: 1})

	// 无关用户 (user 3，另一个顾客)
	db.Create(&model.User{Username: "stranger", Email: "s@test.com", Password: "x", IsActive: true})
	db.Create(&model.CustomerProfile{UserID: 3})

	_, err := svc.GetPreorder(ctx, 3, preorder.ID)
	if !errors.Is(err, ErrNotPreorderParty) {
		t.Errorf("err = %v, want ErrNotPreorderParty", err)
	}
}

// ==================== 支付测试 ====================

func TestInitiatePayment(t *testing.T) {
	var captured *paystack.InitializeRequest
	gateway := &mockGateway{
		initializeFn: func(ctx context.Context, req *paystack.InitializeRequest) (*paystack.InitializeResponse, error) {
			captured = req
			resp := &paystack.InitializeResponse{Status: true}
			resp.Data.AuthorizationURL = "https://checkout.paystack.com/test"
			resp.Data.Reference = req.Reference
			return resp, nil
		},
	}
	svc, _ := newPreorderFixture(t, gateway)
	ctx := context.Background()

	preorder, _ := svc.CreatePreorder(ctx, 1, &dto.CreatePreorderReq{ProductID: 1, Quantity: 3})

	resp, err := svc.InitiatePayment(ctx, 1, preorder.ID)
	if err != nil {
		t.Fatalf("InitiatePayment() error = %v", err)
	}

	// 1500 NGN x 3 = 4500 NGN = 450000 kobo
	if resp.AmountKobo != 450000 {
		t.Errorf("AmountKobo = %d, want 450000", resp.AmountKobo)
	}
	if captured == nil || captured.Amount != 450000 {
		t.Error("网关收到的金额不是 kobo 口径")
	}
	if !strings.HasPrefix(resp.Reference, "preorder_") {
		t.Errorf("Reference = %s, want preorder_ 前缀", resp.Reference)
	}

	// 摊主不能替顾客发起支付
	if _, err := svc.InitiatePayment(ctx, 2, preorder.ID); !errors.Is(err, ErrNotPreorderParty) {
		t.Errorf("摊主发起支付: err = %v, want ErrNotPreorderParty", err)
	}
}

func TestCheckPaymentStatus(t *testing.T) {
	verifyStatus := paystack.TxStatusSuccess
	gateway := &mockGateway{
		verifyFn: func(ctx context.Context, reference string) (*paystack.VerifyResponse, error) {
			resp := &paystack.VerifyResponse{Status: true}
			resp.Data.Status = verifyStatus
			resp.Data.Reference = reference
			return resp, nil
		},
	}
	svc, _ := newPreorderFixture(t, gateway)
	ctx := context.Background()

	preorder, _ := svc.CreatePreorder(ctx, 1, &dto.CreatePreorderReq{ProductID: 1, Quantity: 1})
	if _, err := svc.InitiatePayment(ctx, 1, preorder.ID); err != nil {
		t.Fatalf("InitiatePayment() error = %v", err)
	}

	// 网关确认成功后流水落到 success
	status, err := svc.CheckPaymentStatus(ctx, 1, preorder.ID)
	if err != nil {
		t.Fatalf("CheckPaymentStatus() error = %v", err)
	}
	if status.Status != model.PaymentStatusSuccess {
		t.Errorf("Status = %s, want success", status.Status)
	}

	// 终态不再访问网关
	verifyStatus = paystack.TxStatusFailed
	status, err = svc.CheckPaymentStatus(ctx, 1, preorder.ID)
	if err != nil {
		t.Fatalf("二次查询失败: %v", err)
	}
	if status.Status != model.PaymentStatusSuccess {
		t.Errorf("终态被覆盖: Status = %s", status.Status)
	}
}
