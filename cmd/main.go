package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"tradefair_dev_v1_202608/internal/controller"
	"tradefair_dev_v1_202608/internal/middleware"
	"tradefair_dev_v1_202608/internal/model"
	"tradefair_dev_v1_202608/internal/repository"
	"tradefair_dev_v1_202608/internal/router"
	"tradefair_dev_v1_202608/internal/service"
	"tradefair_dev_v1_202608/internal/task"
	"tradefair_dev_v1_202608/pkg/database"
	"tradefair_dev_v1_202608/pkg/paystack"
)

func main() {
	// 1. 初始化 JWT 配置
	initJWT()

	// 2. 初始化数据库
	db := initDatabase()

	// 3. 初始化依赖
	deps := initDependencies(db)

	// 4. 启动定时任务
	initTasks(deps)

	// 5. 初始化路由
	r := router.SetupRouter(deps.Controllers)

	// 6. 启动服务
	startServer(r)
}

// ==================== 依赖容器 ====================

// Dependencies 依赖容器
type Dependencies struct {
	DB          *gorm.DB
	Repos       *Repositories
	Services    *Services
	Controllers *router.Controllers
}

// Repositories 仓库集合
type Repositories struct {
	User          repository.UserRepository
	Vendor        repository.VendorProfileRepository
	Customer      repository.CustomerProfileRepository
	Shed          repository.ShedRepository
	Product       repository.ProductRepository
	Follow        repository.FollowRepository
	Preorder      repository.PreorderRepository
	Payment       repository.PaymentRepository
	VendorPayment repository.VendorPaymentRepository
	ProvisionUow  *repository.ProvisionUnitOfWork
}

// Services 服务集合
type Services struct {
	Auth         *service.AuthService
	Registration *service.RegistrationService
	Profile      *service.ProfileService
	Shed         *service.ShedService
	Product      *service.ProductService
	Follow       *service.FollowService
	Preorder     *service.PreorderService
	Payment      *service.PaymentService
	Dashboard    *service.DashboardService
}

// ==================== 初始化函数 ====================

// initJWT 初始化 JWT 配置
func initJWT() {
	cfg := middleware.DefaultJWTConfig()
	if secret := getEnv("JWT_SECRET", ""); secret != "" {
		cfg.SecretKey = secret
	}
	middleware.SetJWTConfig(cfg)
}

// initDatabase 初始化数据库
func initDatabase() *gorm.DB {
	dsn := getEnv("DATABASE_DSN",
		"host=localhost user=tradefair password=tradefair dbname=tradefair port=5432 sslmode=disable")

	return database.InitDB(dsn,
		// Account
		&model.User{}, &model.VendorProfile{}, &model.CustomerProfile{},
		// Marketplace
		&model.Shed{}, &model.Product{},
		// Customer activity
		&model.Follow{}, &model.Preorder{},
		// Payment
		&model.Payment{}, &model.VendorPayment{},
	)
}

// initDependencies 初始化所有依赖
func initDependencies(db *gorm.DB) *Dependencies {
	// -------- Repo 层 --------
	repos := initRepositories(db)

	// -------- 支付网关 --------
	gateway := paystack.NewClient(&paystack.Config{
		SecretKey: getEnv("PAYSTACK_SECRET_KEY", ""),
		BaseURL:   getEnv("PAYSTACK_BASE_URL", ""),
	})

	// -------- 业务服务 --------
	callbackURL := getEnv("SITE_URL", "http://localhost:8080") + "/api/v1/auth/payment/callback"

	regCfg := service.DefaultRegistrationConfig()
	if fee := getEnv("SHED_FEE_NAIRA", ""); fee != "" {
		if parsed, err := decimal.NewFromString(fee); err == nil && parsed.IsPositive() {
			regCfg.ShedFeeNaira = parsed
		} else {
			log.Printf("警告: SHED_FEE_NAIRA 配置无效，使用默认值: %s", fee)
		}
	}
	regCfg.CallbackURL = callbackURL

	services := &Services{}
	services.Auth = service.NewAuthService(repos.User)
	services.Registration = service.NewRegistrationService(
		regCfg, repos.User, repos.Customer, repos.ProvisionUow, gateway,
	)
	services.Profile = service.NewProfileService(repos.User, repos.Vendor, repos.Customer)
	services.Shed = service.NewShedService(repos.Shed, repos.Vendor)
	services.Product = service.NewProductService(repos.Product, repos.Shed, repos.Vendor)
	services.Follow = service.NewFollowService(repos.Follow, repos.Customer, repos.Vendor)
	services.Preorder = service.NewPreorderService(
		repos.Preorder, repos.Product, repos.Customer, repos.Vendor,
		repos.Payment, gateway, callbackURL,
	)
	services.Payment = service.NewPaymentService(
		repos.Payment, repos.VendorPayment, repos.Preorder,
		repos.Shed, repos.Vendor,
		services.Registration, gateway,
		getEnv("PAYSTACK_SECRET_KEY", ""), callbackURL,
	)
	services.Dashboard = service.NewDashboardService(
		repos.Vendor, repos.Shed, repos.Product,
		repos.Preorder, repos.Follow, repos.VendorPayment,
	)

	// -------- Controller 层 --------
	controllers := initControllers(services)

	return &Dependencies{
		DB:          db,
		Repos:       repos,
		Services:    services,
		Controllers: controllers,
	}
}

// initRepositories 初始化所有仓库
func initRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		User:          repository.NewUserRepository(db),
		Vendor:        repository.NewVendorProfileRepository(db),
		Customer:      repository.NewCustomerProfileRepository(db),
		Shed:          repository.NewShedRepository(db),
		Product:       repository.NewProductRepository(db),
		Follow:        repository.NewFollowRepository(db),
		Preorder:      repository.NewPreorderRepository(db),
		Payment:       repository.NewPaymentRepository(db),
		VendorPayment: repository.NewVendorPaymentRepository(db),
		ProvisionUow:  repository.NewProvisionUnitOfWork(db),
	}
}

// initControllers 初始化所有控制器
func initControllers(svc *Services) *router.Controllers {
	return &router.Controllers{
		Auth:      controller.NewAuthController(svc.Auth, svc.Registration),
		User:      controller.NewUserController(svc.Profile),
		Shed:      controller.NewShedController(svc.Shed),
		Product:   controller.NewProductController(svc.Product),
		Follow:    controller.NewFollowController(svc.Follow),
		Preorder:  controller.NewPreorderController(svc.Preorder),
		Payment:   controller.NewPaymentController(svc.Payment),
		Dashboard: controller.NewDashboardController(svc.Dashboard),
	}
}

// ==================== 定时任务 ====================

// initTasks 初始化定时任务
func initTasks(deps *Dependencies) {
	// 支付对账
	reconcileTask := task.NewPaymentReconcileTask(
		deps.Repos.Payment,
		deps.Repos.VendorPayment,
		deps.Services.Payment,
	)
	reconcileTask.Start()

	log.Println("定时任务已启动")
}

// ==================== 服务启动 ====================

// startServer 启动服务
func startServer(r http.Handler) {
	port := getEnv("SERVER_PORT", "8080")

	srv := &http.Server{
		Addr:    ":" + port,
		Handler: r,
	}

	// 异步启动服务
	go func() {
		log.Printf("服务启动在 :%s", port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("服务启动失败: %v", err)
		}
	}()

	// 等待退出信号
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("正在关闭服务...")

	// 优雅关闭，最多等待 30 秒
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("服务强制关闭: %v", err)
	}

	log.Println("服务已退出")
}

// ==================== 工具函数 ====================

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
