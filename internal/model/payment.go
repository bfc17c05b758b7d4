package model

import "github.com/shopspring/decimal"

// 支付状态常量
// 终态只能由 webhook 或主动 verify 写入，永不回滚
const (
	PaymentStatusPending = "pending"
	PaymentStatusSuccess = "success"
	PaymentStatusFailed  = "failed"
)

// Payment 预订单支付流水
type Payment struct {
	BaseModel
	PreorderID int64     `gorm:"uniqueIndex;not null"`
	Preorder   *Preorder `gorm:"foreignKey:PreorderID"`

	Amount decimal.Decimal `gorm:"type:decimal(10,2);not null"` // NGN 金额（非 kobo）

	// Paystack 交易 reference，全局唯一
	Reference string `gorm:"size:100;uniqueIndex;not null"`

	// 状态: pending / success / failed
	Status string `gorm:"size:20;default:'pending'"`
}

func (Payment) TableName() string {
	return "payments"
}

// VendorPayment 摊位费支付流水
// 支付成功后把关联摊位置为 secured
type VendorPayment struct {
	BaseModel
	ShedID int64 `gorm:"uniqueIndex;not null"`
	Shed   *Shed `gorm:"foreignKey:ShedID"`

	Amount    decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Reference string          `gorm:"size:100;uniqueIndex;not null"`
	Status    string          `gorm:"size:20;default:'pending'"`
}

func (VendorPayment) TableName() string {
	return "vendor_payments"
}
