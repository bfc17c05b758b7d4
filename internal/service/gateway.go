package service

import (
	"context"

	"tradefair_dev_v1_202608/pkg/paystack"
)

// PaymentGateway 支付网关抽象
// 生产实现为 *paystack.Client，测试里用假网关替换
type PaymentGateway interface {
	Initialize(ctx context.Context, req *paystack.InitializeRequest) (*paystack.InitializeResponse, error)
	Verify(ctx context.Context, reference string) (*paystack.VerifyResponse, error)
}
