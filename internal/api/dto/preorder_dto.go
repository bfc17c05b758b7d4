package dto

import "time"

// ==================== 预订单 ====================

// CreatePreorderReq 创建预订单请求
type CreatePreorderReq struct {
	ProductID int64 `json:"product_id" binding:"required,gt=0"`
	Quantity  int   `json:"quantity" binding:"required"`
}

// PreorderResp 预订单响应
type PreorderResp struct {
	ID           int64     `json:"id"`
	CustomerID   int64     `json:"customer_id"`
	CustomerName string    `json:"customer_name,omitempty"`
	VendorID     int64     `json:"vendor_id"`
	ProductID    int64     `json:"product_id"`
	ProductName  string    `json:"product_name,omitempty"`
	Quantity     int       `json:"quantity"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"created_at"`
}

// InitiatePaymentResp 发起支付响应
type InitiatePaymentResp struct {
	AuthorizationURL string `json:"authorization_url"`
	Reference        string `json:"reference"`
	AmountKobo       int64  `json:"amount_kobo"`
}

// PaymentStatusResp 支付状态响应
type PaymentStatusResp struct {
	Reference string `json:"reference"`
	Status    string `json:"status"`
}
