package dto

import "time"

// ==================== 关注 ====================

// CreateFollowReq 关注请求
type CreateFollowReq struct {
	VendorID int64 `json:"vendor_id" binding:"required,gt=0"`
}

// FollowResp 关注响应
type FollowResp struct {
	ID           int64     `json:"id"`
	VendorID     int64     `json:"vendor_id"`
	BusinessName string    `json:"business_name,omitempty"`
	Domain       string    `json:"domain,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}
