package dto

// ==================== 摊位费支付 ====================

// InitiateShedPaymentReq 发起摊位费支付请求
type InitiateShedPaymentReq struct {
	Amount string `json:"amount" binding:"required"` // NGN，十进制字符串
}

// ==================== 仪表盘 ====================

// DashboardResp 摊主仪表盘
type DashboardResp struct {
	Shed          ShedResp         `json:"shed"`
	ProductCount  int64            `json:"product_count"`
	PreorderCount int64            `json:"preorder_count"`
	Preorders     map[string]int64 `json:"preorders_by_status"`
	FollowerCount int64            `json:"follower_count"`
	PaymentStatus string           `json:"payment_status"`
	Secured       bool             `json:"secured"`
	// 摊位费还没缴清时，带上未完成流水号方便前端续查
	PendingShedFeeRef string            `json:"pending_shed_fee_ref,omitempty"`
	Actions           map[string]string `json:"actions"`
}
