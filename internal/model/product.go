package model

import "github.com/shopspring/decimal"

// Product 摊位商品
type Product struct {
	BaseModel
	ShedID int64 `gorm:"index;not null"`
	Shed   *Shed `gorm:"foreignKey:ShedID"`

	// 冗余摊主外键，方便按摊主过滤预订单
	VendorProfileID int64          `gorm:"index;not null"`
	Vendor          *VendorProfile `gorm:"foreignKey:VendorProfileID"`

	Name        string          `gorm:"size:100;not null"`
	Description string          `gorm:"type:text"`
	Price       decimal.Decimal `gorm:"type:decimal(10,2);not null"` // 单价，NGN
	Quantity    int             `gorm:"not null;comment:库存数量"`
	Image       string          `gorm:"size:255"`
}

func (Product) TableName() string {
	return "products"
}
