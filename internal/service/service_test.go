package service

import (
	"context"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"tradefair_dev_v1_202608/internal/model"
	"tradefair_dev_v1_202608/pkg/paystack"
)

// ==================== Mock 实现 ====================

type mockGateway struct {
	initializeFn func(ctx context.Context, req *paystack.InitializeRequest) (*paystack.InitializeResponse, error)
	verifyFn     func(ctx context.Context, reference string) (*paystack.VerifyResponse, error)
}

func (m *mockGateway) Initialize(ctx context.Context, req *paystack.InitializeRequest) (*paystack.InitializeResponse, error) {
	if m.initializeFn != nil {
		return m.initializeFn(ctx, req)
	}
	resp := &paystack.InitializeResponse{Status: true, Message: "Authorization URL created"}
	resp.Data.AuthorizationURL = "https://checkout.paystack.com/test"
	resp.Data.AccessCode = "test_access_code"
	resp.Data.Reference = req.Reference
	return resp, nil
}

func (m *mockGateway) Verify(ctx context.Context, reference string) (*paystack.VerifyResponse, error) {
	if m.verifyFn != nil {
		return m.verifyFn(ctx, reference)
	}
	resp := &paystack.VerifyResponse{Status: true, Message: "Verification successful"}
	resp.Data.Status = paystack.TxStatusSuccess
	resp.Data.Reference = reference
	return resp, nil
}

// ==================== 测试辅助函数 ====================

func setupServiceTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
		// 唯一索引冲突要翻译成 gorm.ErrDuplicatedKey
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("连接测试数据库失败: %v", err)
	}

	err = db.AutoMigrate(
		&model.User{}, &model.VendorProfile{}, &model.CustomerProfile{},
		&model.Shed{}, &model.Product{},
		&model.Follow{}, &model.Preorder{},
		&model.Payment{}, &model.VendorPayment{},
	)
	if err != nil {
		t.Fatalf("数据库迁移失败: %v", err)
	}

	return db
}
