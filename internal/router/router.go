package router

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"tradefair_dev_v1_202608/internal/controller"
	"tradefair_dev_v1_202608/internal/middleware"
)

// Controllers 控制器集合
type Controllers struct {
	Auth      *controller.AuthController
	User      *controller.UserController
	Shed      *controller.ShedController
	Product   *controller.ProductController
	Follow    *controller.FollowController
	Preorder  *controller.PreorderController
	Payment   *controller.PaymentController
	Dashboard *controller.DashboardController
}

// SetupRouter 注册所有路由
func SetupRouter(ctls *Controllers) *gin.Engine {
	r := gin.Default()

	// 1. Swagger 文档路由
	// 访问 http://localhost:8080/swagger/index.html 即可查看
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// 2. API 路由组
	api := r.Group("/api/v1")
	{
		// auth 认证组（公开）
		auth := api.Group("/auth")
		{
			auth.POST("/signup", ctls.Auth.Signup)
			auth.POST("/login", ctls.Auth.Login)
			auth.POST("/refresh", ctls.Auth.RefreshToken)

			// GET /api/v1/auth/payment/callback
			// 网关支付完成后浏览器回跳，完成摊主开通
			auth.GET("/payment/callback", ctls.Auth.PaymentCallback)
		}

		// user 用户组
		api.GET("/users/me", middleware.JWTAuth(), ctls.User.GetMe)

		// vendor 摊主档案组
		vendors := api.Group("/vendors")
		{
			vendors.GET("", ctls.User.GetVendors)
			vendors.GET("/me", middleware.JWTAuth(), middleware.RequireVendor(), ctls.User.GetOwnVendorProfile)
			vendors.PUT("/me", middleware.JWTAuth(), middleware.RequireVendor(), ctls.User.UpdateVendorProfile)
			vendors.GET("/:id", ctls.User.GetVendor)
		}

		// customer 顾客档案组
		customers := api.Group("/customers", middleware.JWTAuth(), middleware.RequireCustomer())
		{
			customers.GET("/me", ctls.User.GetCustomerProfile)
			customers.PUT("/me", ctls.User.UpdateCustomerProfile)
		}

		// shed 摊位组
		sheds := api.Group("/sheds")
		{
			sheds.GET("", ctls.Shed.GetSheds)
			sheds.GET("/:id", ctls.Shed.GetShed)
			sheds.PUT("/:id", middleware.JWTAuth(), middleware.RequireVendor(), ctls.Shed.UpdateShed)
		}

		// product 商品组
		products := api.Group("/products")
		{
			products.GET("", ctls.Product.GetProducts)
			products.GET("/:id", ctls.Product.GetProduct)
			products.POST("", middleware.JWTAuth(), middleware.RequireVendor(), ctls.Product.CreateProduct)
			products.PUT("/:id", middleware.JWTAuth(), middleware.RequireVendor(), ctls.Product.UpdateProduct)
			products.DELETE("/:id", middleware.JWTAuth(), middleware.RequireVendor(), ctls.Product.DeleteProduct)
		}

		// follow 关注组（仅顾客）
		follows := api.Group("/follows", middleware.JWTAuth(), middleware.RequireCustomer())
		{
			follows.POST("", ctls.Follow.Follow)
			follows.GET("", ctls.Follow.GetFollowing)
			follows.DELETE("/:vendor_id", ctls.Follow.Unfollow)
		}

		// preorder 预订组
		preorders := api.Group("/preorders", middleware.JWTAuth())
		{
			preorders.POST("", middleware.RequireCustomer(), ctls.Preorder.CreatePreorder)
			preorders.GET("", middleware.RequireCustomer(), ctls.Preorder.GetCustomerPreorders)
			preorders.GET("/vendor", middleware.RequireVendor(), ctls.Preorder.GetVendorPreorders)
			preorders.GET("/:id", ctls.Preorder.GetPreorder)
			preorders.POST("/:id/confirm", middleware.RequireVendor(), ctls.Preorder.ConfirmPreorder)
			preorders.POST("/:id/cancel", ctls.Preorder.CancelPreorder)
			preorders.POST("/:id/pay", middleware.RequireCustomer(), ctls.Preorder.InitiatePayment)
			preorders.GET("/:id/payment", ctls.Preorder.GetPaymentStatus)
		}

		// payment 支付组
		payments := api.Group("/payments")
		{
			// webhook 无鉴权，靠 HMAC 签名校验
			payments.POST("/webhook", ctls.Payment.Webhook)
			payments.POST("/shed", middleware.JWTAuth(), middleware.RequireVendor(), ctls.Payment.InitiateShedPayment)
		}

		// dashboard 仪表盘（仅摊主）
		api.GET("/dashboard", middleware.JWTAuth(), middleware.RequireVendor(), ctls.Dashboard.GetDashboard)
	}

	return r
}
