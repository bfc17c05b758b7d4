package task

import (
	"context"
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"tradefair_dev_v1_202608/internal/repository"
	"tradefair_dev_v1_202608/internal/service"
)

// PaymentReconcileTask 支付对账任务
// webhook 可能丢失，定期把悬挂的 pending 流水拿去网关核实
type PaymentReconcileTask struct {
	PaymentRepo       repository.PaymentRepository
	VendorPaymentRepo repository.VendorPaymentRepository
	PaymentService    *service.PaymentService
	Cron              *cron.Cron

	// 流水创建后多久才纳入对账，给 webhook 留足到达窗口
	graceWindow time.Duration
	batchSize   int
}

func NewPaymentReconcileTask(
	paymentRepo repository.PaymentRepository,
	vendorPaymentRepo repository.VendorPaymentRepository,
	paymentService *service.PaymentService,
) *PaymentReconcileTask {
	return &PaymentReconcileTask{
		PaymentRepo:       paymentRepo,
		VendorPaymentRepo: vendorPaymentRepo,
		PaymentService:    paymentService,
		Cron:              cron.New(cron.WithSeconds()), // 支持秒级控制
		graceWindow:       15 * time.Minute,
		batchSize:         100,
	}
}

// Start 启动定时任务
func (t *PaymentReconcileTask) Start() {
	// 首次执行
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
		defer cancel()
		log.Println("[Task] 服务启动，正在执行首次支付对账...")
		t.reconcileJob(ctx)
	}()

	// 定时策略：每 10 分钟对账一次
	_, err := t.Cron.AddFunc("0 0/10 * * * *", func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
		defer cancel()

		t.reconcileJob(ctx)
	})

	if err != nil {
		log.Fatalf("无法启动支付对账任务: %v", err)
	}

	t.Cron.Start()
	log.Println("支付对账任务已启动 (每10分钟检查一次)")
}

// Stop 停止任务（优雅关闭用）
func (t *PaymentReconcileTask) Stop() {
	if t.Cron != nil {
		t.Cron.Stop()
	}
}

// reconcileJob 对账逻辑
func (t *PaymentReconcileTask) reconcileJob(ctx context.Context) {
	before := time.Now().Add(-t.graceWindow)

	payments, err := t.PaymentRepo.ListPendingBefore(ctx, before, t.batchSize)
	if err != nil {
		log.Printf("[Cron] 预订单悬挂流水查询失败: %v", err)
		return
	}

	vendorPayments, err := t.VendorPaymentRepo.ListPendingBefore(ctx, before, t.batchSize)
	if err != nil {
		log.Printf("[Cron] 摊位费悬挂流水查询失败: %v", err)
		return
	}

	if len(payments) == 0 && len(vendorPayments) == 0 {
		return
	}

	log.Printf("[Cron] 开始对账: 预订单流水 %d 条, 摊位费流水 %d 条", len(payments), len(vendorPayments))
	t.PaymentService.ReconcilePending(ctx, payments, vendorPayments)
}
