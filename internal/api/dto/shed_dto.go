package dto

// ==================== 摊位 ====================

// ShedResp 摊位响应
type ShedResp struct {
	ID         int64  `json:"id"`
	VendorID   int64  `json:"vendor_id"`
	ShedNumber string `json:"shed_number"`
	Name       string `json:"name"`
	Domain     string `json:"domain"`
	DomainName string `json:"domain_name"`
	Secured    bool   `json:"secured"`
	Collage    string `json:"collage,omitempty"`
}

// ShedListResp 摊位列表响应
type ShedListResp struct {
	Code     int        `json:"code"`
	Message  string     `json:"message"`
	Data     []ShedResp `json:"data"`
	Total    int64      `json:"total"`
	Page     int        `json:"page"`
	PageSize int        `json:"page_size"`
}

// UpdateShedReq 更新摊位请求
// 摊位开通后只允许改名字和拼图
type UpdateShedReq struct {
	Name    string `json:"name" binding:"omitempty,max=100"`
	Collage string `json:"collage" binding:"omitempty,max=255"`
}
