package paystack

// ==================== 请求 ====================

// InitializeRequest 初始化交易请求
type InitializeRequest struct {
	Reference   string `json:"reference"`
	Amount      int64  `json:"amount"` // kobo
	Email       string `json:"email"`
	CallbackURL string `json:"callback_url,omitempty"`
}

// ==================== 响应 ====================

// InitializeResponse 初始化交易响应
type InitializeResponse struct {
	Status  bool   `json:"status"`
	Message string `json:"message"`
	Data    struct {
		AuthorizationURL string `json:"authorization_url"`
		AccessCode       string `json:"access_code"`
		Reference        string `json:"reference"`
	} `json:"data"`
}

// VerifyResponse 交易查询响应
type VerifyResponse struct {
	Status  bool   `json:"status"`
	Message string `json:"message"`
	Data    struct {
		Status    string `json:"status"` // success / failed / abandoned
		Reference string `json:"reference"`
		Amount    int64  `json:"amount"` // kobo
	} `json:"data"`
}

// ==================== Webhook ====================

// 网关事件类型，只有 charge.success 会触发状态变更
const (
	EventChargeSuccess = "charge.success"

	TxStatusSuccess = "success"
	TxStatusFailed  = "failed"
)

// WebhookEvent 网关回调事件
type WebhookEvent struct {
	Event string      `json:"event"`
	Data  WebhookData `json:"data"`
}

// WebhookData 回调负载
// 只信任 reference 和 status 两个字段
type WebhookData struct {
	Reference string `json:"reference"`
	Status    string `json:"status"`
	Amount    int64  `json:"amount,omitempty"`
}
