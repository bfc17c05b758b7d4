package repository

import (
	"context"

	"gorm.io/gorm"
)

// ProvisionUnitOfWork 摊主开通工作单元（事务）
// 支付确认后的 User + VendorProfile + Shed + VendorPayment 四表写入
// 必须原子完成，摊位编号分配也发生在同一事务内
type ProvisionUnitOfWork struct {
	db             *gorm.DB
	Users          UserRepository
	Vendors        VendorProfileRepository
	Sheds          ShedRepository
	VendorPayments VendorPaymentRepository
}

// NewProvisionUnitOfWork 创建工作单元
func NewProvisionUnitOfWork(db *gorm.DB) *ProvisionUnitOfWork {
	return &ProvisionUnitOfWork{
		db:             db,
		Users:          NewUserRepository(db),
		Vendors:        NewVendorProfileRepository(db),
		Sheds:          NewShedRepository(db),
		VendorPayments: NewVendorPaymentRepository(db),
	}
}

// Transaction 执行事务
func (u *ProvisionUnitOfWork) Transaction(ctx context.Context, fn func(uow *ProvisionUnitOfWork) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		txUow := &ProvisionUnitOfWork{
			db:             tx,
			Users:          NewUserRepository(tx),
			Vendors:        NewVendorProfileRepository(tx),
			Sheds:          NewShedRepository(tx),
			VendorPayments: NewVendorPaymentRepository(tx),
		}
		return fn(txUow)
	})
}
