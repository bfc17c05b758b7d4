package dto

import "time"

// ==================== 商品 ====================

// CreateProductReq 创建商品请求
type CreateProductReq struct {
	Name        string `json:"name" binding:"required,max=100"`
	Description string `json:"description"`
	Price       string `json:"price" binding:"required"` // 十进制字符串，如 "150000.00"
	Quantity    *int   `json:"quantity" binding:"required"`
	Image       string `json:"image" binding:"omitempty,max=255"`
}

// UpdateProductReq 更新商品请求
type UpdateProductReq struct {
	ID          int64  `json:"-"`
	Name        string `json:"name" binding:"omitempty,max=100"`
	Description *string `json:"description"`
	Price       string `json:"price"`
	Quantity    *int   `json:"quantity"`
	Image       *string `json:"image"`
}

// ProductResp 商品响应
type ProductResp struct {
	ID          int64     `json:"id"`
	ShedID      int64     `json:"shed_id"`
	ShedNumber  string    `json:"shed_number,omitempty"`
	VendorID    int64     `json:"vendor_id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Price       string    `json:"price"`
	Quantity    int       `json:"quantity"`
	Image       string    `json:"image,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ProductListResp 商品列表响应
type ProductListResp struct {
	Code     int           `json:"code"`
	Message  string        `json:"message"`
	Data     []ProductResp `json:"data"`
	Total    int64         `json:"total"`
	Page     int           `json:"page"`
	PageSize int           `json:"page_size"`
}
