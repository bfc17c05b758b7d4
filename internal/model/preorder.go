package model

// 预订单状态常量
const (
	PreorderStatusPending   = "pending"
	PreorderStatusConfirmed = "confirmed"
	PreorderStatusCancelled = "cancelled"
)

// Preorder 顾客对商品的预订
type Preorder struct {
	BaseModel
	CustomerProfileID int64 `gorm:"index;not null"`
	VendorProfileID   int64 `gorm:"index;not null"`
	ProductID         int64 `gorm:"index;not null"`

	Customer *CustomerProfile `gorm:"foreignKey:CustomerProfileID"`
	Vendor   *VendorProfile   `gorm:"foreignKey:VendorProfileID"`
	Product  *Product         `gorm:"foreignKey:ProductID"`

	// 下单数量，创建时校验 0 < quantity <= 商品库存
	Quantity int `gorm:"not null"`

	// 状态: pending / confirmed / cancelled
	Status string `gorm:"size:20;default:'pending'"`
}

func (Preorder) TableName() string {
	return "preorders"
}
