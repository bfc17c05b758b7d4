package model

// 摊位类目常量（4 个固定 domain）
const (
	DomainClothings   = "CB" // Clothings and Beddings
	DomainElectronics = "EC" // Electronics and Computer wares
	DomainFood        = "FB" // Food and Beverages
	DomainJewelry     = "JA" // Jewelry and Accessories
)

// DomainNames 类目编码 -> 展示名
var DomainNames = map[string]string{
	DomainClothings:   "Clothings and Beddings",
	DomainElectronics: "Electronics and Computer wares",
	DomainFood:        "Food and Beverages",
	DomainJewelry:     "Jewelry and Accessories",
}

// IsValidDomain 校验类目编码
func IsValidDomain(domain string) bool {
	_, ok := DomainNames[domain]
	return ok
}

// 摊主缴费状态常量
const (
	VendorPaymentPending   = "PENDING"
	VendorPaymentCompleted = "COMPLETED"
	VendorPaymentFailed    = "FAILED"
)

// VendorProfile 摊主档案
// 仅在摊位费支付成功后创建（注册数据在这之前只存在于暂存缓存中）
type VendorProfile struct {
	BaseModel
	UserID int64 `gorm:"uniqueIndex;not null"`
	User   *User `gorm:"foreignKey:UserID"`

	BusinessName string `gorm:"size:100;not null"`
	Description  string `gorm:"type:text"`

	// 类目 + 摊位序号，同类目内唯一（1-100）
	Domain     string `gorm:"size:2;not null;uniqueIndex:idx_domain_shed"`
	ShedNumber int    `gorm:"not null;uniqueIndex:idx_domain_shed;comment:类目内摊位序号 1-100"`

	// 缴费状态: PENDING / COMPLETED / FAILED
	PaymentStatus    string `gorm:"size:10;default:'PENDING'"`
	PaymentReference string `gorm:"size:100"`

	// 关联摊位（正常情况下只有一个）
	Sheds []Shed `gorm:"foreignKey:VendorProfileID"`
}

func (VendorProfile) TableName() string {
	return "vendor_profiles"
}

// CustomerProfile 顾客档案
type CustomerProfile struct {
	BaseModel
	UserID int64 `gorm:"uniqueIndex;not null"`
	User   *User `gorm:"foreignKey:UserID"`

	Phone   string `gorm:"size:20"`
	Address string `gorm:"type:text"`
}

func (CustomerProfile) TableName() string {
	return "customer_profiles"
}
