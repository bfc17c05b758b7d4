package model

// User 平台用户账号
// 同一张表承载摊主 (vendor) 和顾客 (customer)，由 IsVendor 区分，
// 具体身份数据在 VendorProfile / CustomerProfile 中（一对一）
type User struct {
	BaseModel
	// 基础信息
	Username  string `gorm:"size:100;uniqueIndex;not null"`
	Password  string `gorm:"size:255;not null"` // 哈希密码
	Email     string `gorm:"size:100;uniqueIndex"`
	FirstName string `gorm:"size:150"`
	LastName  string `gorm:"size:150"`

	// 是否为摊主账号
	// 注意：一个账号只能有一种身份，应用层保证 profile 与该标记一致
	IsVendor bool `gorm:"default:false"`

	IsActive bool `gorm:"default:true"`

	// ==============================
	// 关联关系 (Has One)
	// ==============================
	VendorProfile   *VendorProfile   `gorm:"foreignKey:UserID"`
	CustomerProfile *CustomerProfile `gorm:"foreignKey:UserID"`
}

func (User) TableName() string {
	return "users"
}

// 账号角色常量，写入 JWT claims
const (
	RoleVendor   = "vendor"
	RoleCustomer = "customer"
)

// Role 返回账号角色
func (u *User) Role() string {
	if u.IsVendor {
		return RoleVendor
	}
	return RoleCustomer
}
