package dto

import "time"

// ==================== 注册 ====================

// SignupRequest 注册请求
// 一个入口两种身份，由 is_vendor 显式区分（摊主字段仅摊主必填）
type SignupRequest struct {
	Username  string `json:"username" binding:"required,min=3,max=50"`
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,min=6,max=100"`
	Password2 string `json:"password2" binding:"required"`
	FirstName string `json:"first_name" binding:"omitempty,max=150"`
	LastName  string `json:"last_name" binding:"omitempty,max=150"`

	IsVendor bool `json:"is_vendor"`

	// 摊主字段
	BusinessName string `json:"business_name" binding:"omitempty,max=100"`
	Description  string `json:"description"`
	Domain       string `json:"domain" binding:"omitempty,oneof=CB EC FB JA"`
	ShedName     string `json:"shed_name" binding:"omitempty,max=100"`

	// 顾客字段
	Phone   string `json:"phone" binding:"omitempty,max=20"`
	Address string `json:"address"`
}

// CustomerSignupResponse 顾客注册响应（立即生效）
type CustomerSignupResponse struct {
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token"`
	ExpiresAt    time.Time `json:"expires_at"`
	User         *UserInfo `json:"user"`
}

// VendorSignupResponse 摊主注册响应
// 注册数据只是暂存，需要先完成摊位费支付
type VendorSignupResponse struct {
	Reference        string `json:"reference"`
	AuthorizationURL string `json:"authorization_url"`
	AmountKobo       int64  `json:"amount_kobo"`
}

// ==================== 登录 ====================

// LoginRequest 登录请求
type LoginRequest struct {
	Username string `json:"username" binding:"required,min=3,max=50"`
	Password string `json:"password" binding:"required,min=3,max=100"`
}

// LoginResponse 登录响应
type LoginResponse struct {
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token"`
	ExpiresAt    time.Time `json:"expires_at"`
	User         *UserInfo `json:"user"`
}

// ==================== Token 刷新 ====================

// RefreshTokenRequest 刷新 Token 请求
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// RefreshTokenResponse 刷新 Token 响应
type RefreshTokenResponse struct {
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token"`
	ExpiresAt    time.Time `json:"expires_at"`
}

// ==================== 用户信息 ====================

// UserInfo 用户信息
type UserInfo struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	FirstName string    `json:"first_name,omitempty"`
	LastName  string    `json:"last_name,omitempty"`
	IsVendor  bool      `json:"is_vendor"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

// ==================== 档案 ====================

// VendorProfileResp 摊主档案响应
type VendorProfileResp struct {
	ID            int64  `json:"id"`
	UserID        int64  `json:"user_id"`
	BusinessName  string `json:"business_name"`
	Description   string `json:"description"`
	Domain        string `json:"domain"`
	DomainName    string `json:"domain_name"`
	ShedNumber    int    `json:"shed_number"`
	PaymentStatus string `json:"payment_status"`
}

// UpdateVendorProfileReq 更新摊主档案请求
type UpdateVendorProfileReq struct {
	BusinessName string `json:"business_name" binding:"omitempty,max=100"`
	Description  string `json:"description"`
}

// CustomerProfileResp 顾客档案响应
type CustomerProfileResp struct {
	ID      int64  `json:"id"`
	UserID  int64  `json:"user_id"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

// UpdateCustomerProfileReq 更新顾客档案请求
type UpdateCustomerProfileReq struct {
	Phone   string `json:"phone" binding:"omitempty,max=20"`
	Address string `json:"address"`
}
