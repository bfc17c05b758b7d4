package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"tradefair_dev_v1_202608/internal/model"
)

// ==================== PaymentRepository ====================

// PaymentRepository 预订单支付流水仓储接口
type PaymentRepository interface {
	Create(ctx context.Context, payment *model.Payment) error
	GetByID(ctx context.Context, id int64) (*model.Payment, error)
	GetByReference(ctx context.Context, reference string) (*model.Payment, error)
	GetByPreorderID(ctx context.Context, preorderID int64) (*model.Payment, error)
	Update(ctx context.Context, payment *model.Payment) error
	UpdateStatus(ctx context.Context, id int64, status string) error

	// 对账任务用：查出创建时间早于 before 且仍 pending 的流水
	ListPendingBefore(ctx context.Context, before time.Time, limit int) ([]model.Payment, error)
}

type paymentRepo struct {
	db *gorm.DB
}

// NewPaymentRepository 创建支付流水仓储
func NewPaymentRepository(db *gorm.DB) PaymentRepository {
	return &paymentRepo{db: db}
}

func (r *paymentRepo) Create(ctx context.Context, payment *model.Payment) error {
	return r.db.WithContext(ctx).Create(payment).Error
}

func (r *paymentRepo) GetByID(ctx context.Context, id int64) (*model.Payment, error) {
	var payment model.Payment
	err := r.db.WithContext(ctx).First(&payment, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &payment, nil
}

func (r *paymentRepo) GetByReference(ctx context.Context, reference string) (*model.Payment, error) {
	var payment model.Payment
	err := r.db.WithContext(ctx).
		Preload("Preorder").
		Where("reference = ?", reference).
		First(&payment).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &payment, nil
}

func (r *paymentRepo) GetByPreorderID(ctx context.Context, preorderID int64) (*model.Payment, error) {
	var payment model.Payment
	err := r.db.WithContext(ctx).
		Where("preorder_id = ?", preorderID).
		First(&payment).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &payment, nil
}

func (r *paymentRepo) Update(ctx context.Context, payment *model.Payment) error {
	return r.db.WithContext(ctx).Save(payment).Error
}

func (r *paymentRepo) UpdateStatus(ctx context.Context, id int64, status string) error {
	return r.db.WithContext(ctx).Model(&model.Payment{}).
		Where("id = ?", id).
		Update("status", status).Error
}

func (r *paymentRepo) ListPendingBefore(ctx context.Context, before time.Time, limit int) ([]model.Payment, error) {
	var payments []model.Payment
	err := r.db.WithContext(ctx).
		Where("status = ? AND created_at < ?", model.PaymentStatusPending, before).
		Limit(limit).
		Find(&payments).Error
	return payments, err
}

// ==================== VendorPaymentRepository ====================

// VendorPaymentRepository 摊位费支付流水仓储接口
type VendorPaymentRepository interface {
	Create(ctx context.Context, payment *model.VendorPayment) error
	GetByReference(ctx context.Context, reference string) (*model.VendorPayment, error)
	GetByShedID(ctx context.Context, shedID int64) (*model.VendorPayment, error)
	UpdateStatus(ctx context.Context, id int64, status string) error

	ListPendingBefore(ctx context.Context, before time.Time, limit int) ([]model.VendorPayment, error)
}

type vendorPaymentRepo struct {
	db *gorm.DB
}

// NewVendorPaymentRepository 创建摊位费流水仓储
func NewVendorPaymentRepository(db *gorm.DB) VendorPaymentRepository {
	return &vendorPaymentRepo{db: db}
}

func (r *vendorPaymentRepo) Create(ctx context.Context, payment *model.VendorPayment) error {
	return r.db.WithContext(ctx).Create(payment).Error
}

func (r *vendorPaymentRepo) GetByReference(ctx context.Context, reference string) (*model.VendorPayment, error) {
	var payment model.VendorPayment
	err := r.db.WithContext(ctx).
		Preload("Shed").
		Where("reference = ?", reference).
		First(&payment).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &payment, nil
}

func (r *vendorPaymentRepo) GetByShedID(ctx context.Context, shedID int64) (*model.VendorPayment, error) {
	var payment model.VendorPayment
	err := r.db.WithContext(ctx).
		Where("shed_id = ?", shedID).
		First(&payment).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &payment, nil
}

func (r *vendorPaymentRepo) UpdateStatus(ctx context.Context, id int64, status string) error {
	return r.db.WithContext(ctx).Model(&model.VendorPayment{}).
		Where("id = ?", id).
		Update("status", status).Error
}

func (r *vendorPaymentRepo) ListPendingBefore(ctx context.Context, before time.Time, limit int) ([]model.VendorPayment, error) {
	var payments []model.VendorPayment
	err := r.db.WithContext(ctx).
		Where("status = ? AND created_at < ?", model.PaymentStatusPending, before).
		Limit(limit).
		Find(&payments).Error
	return payments, err
}
