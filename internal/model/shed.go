package model

import "fmt"

// ShedCapacityPerDomain 每个类目的摊位上限
const ShedCapacityPerDomain = 100

// Shed 集市摊位
// 摊位在摊位费确认到账后一次性创建，此后基本不变（除 Secured / Collage）
type Shed struct {
	BaseModel
	VendorProfileID int64          `gorm:"index;not null"`
	Vendor          *VendorProfile `gorm:"foreignKey:VendorProfileID"`

	// 摊位编号，如 "CB001"，全局唯一
	ShedNumber string `gorm:"size:10;uniqueIndex;not null"`
	Name       string `gorm:"size:100;not null"`
	Domain     string `gorm:"size:2;index;not null"`

	// 摊位费是否已确认到账
	Secured bool `gorm:"default:false"`

	// 摊位商品拼图（仅存 URL，上传管线不在本服务内）
	Collage string `gorm:"size:255"`

	Products []Product `gorm:"foreignKey:ShedID"`
}

func (Shed) TableName() string {
	return "sheds"
}

// FormatShedNumber 生成摊位编号：类目前缀 + 三位序号
func FormatShedNumber(domain string, seq int) string {
	return fmt.Sprintf("%s%03d", domain, seq)
}
