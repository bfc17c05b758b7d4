package model

// Follow 顾客关注摊主
// 联合唯一索引保证一对 (customer, vendor) 只有一条记录
type Follow struct {
	BaseModel
	CustomerProfileID int64 `gorm:"index;uniqueIndex:idx_customer_vendor;not null"`
	VendorProfileID   int64 `gorm:"index;uniqueIndex:idx_customer_vendor;not null"`

	Customer *CustomerProfile `gorm:"foreignKey:CustomerProfileID"`
	Vendor   *VendorProfile   `gorm:"foreignKey:VendorProfileID"`
}

func (Follow) TableName() string {
	return "follows"
}
