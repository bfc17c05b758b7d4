package controller

import (
	"github.com/gin-gonic/gin"

	"tradefair_dev_v1_202608/internal/api/dto"
	"tradefair_dev_v1_202608/internal/service"
)

type AuthController struct {
	authService         *service.AuthService
	registrationService *service.RegistrationService
}

func NewAuthController(authService *service.AuthService, registrationService *service.RegistrationService) *AuthController {
	return &AuthController{
		authService:         authService,
		registrationService: registrationService,
	}
}

// Signup 注册
// @Summary 注册（顾客立即生效，摊主返回支付链接）
// @Description 顾客注册直接建号并返回 Token；摊主注册先暂存，需完成摊位费支付后才开通
// @Tags Auth (认证模块)
// @Accept json
// @Produce json
// @Param body body dto.SignupRequest true "注册信息"
// @Success 200 {object} map[string]interface{} "注册结果"
// @Failure 400 {object} map[string]string "参数错误"
// @Failure 409 {object} map[string]string "用户名或邮箱已存在"
// @Router /api/v1/auth/signup [post]
func (ctrl *AuthController) Signup(c *gin.Context) {
	var req dto.SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"code": 400, "message": "参数错误: " + err.Error()})
		return
	}

	ctx := c.Request.Context()
	if req.IsVendor {
		resp, err := ctrl.registrationService.StageVendorSignup(ctx, &req)
		if err != nil {
			fail(c, err)
			return
		}
		ok(c, resp)
		return
	}

	resp, err := ctrl.registrationService.SignupCustomer(ctx, &req)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, resp)
}

// Login 登录
// @Summary 用户登录
// @Tags Auth (认证模块)
// @Accept json
// @Produce json
// @Param body body dto.LoginRequest true "登录信息"
// @Success 200 {object} dto.LoginResponse
// @Failure 401 {object} map[string]string "用户名或密码错误"
// @Router /api/v1/auth/login [post]
func (ctrl *AuthController) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"code": 400, "message": "参数错误: " + err.Error()})
		return
	}

	resp, err := ctrl.authService.Login(c.Request.Context(), &req)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, resp)
}

// RefreshToken 刷新 Token
// @Summary 用 Refresh Token 换取新的 Token 对
// @Tags Auth (认证模块)
// @Accept json
// @Produce json
// @Param body body dto.RefreshTokenRequest true "Refresh Token"
// @Success 200 {object} dto.RefreshTokenResponse
// @Failure 401 {object} map[string]string "Token 无效"
// @Router /api/v1/auth/refresh [post]
func (ctrl *AuthController) RefreshToken(c *gin.Context) {
	var req dto.RefreshTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"code": 400, "message": "参数错误: " + err.Error()})
		return
	}

	resp, err := ctrl.authService.RefreshToken(c.Request.Context(), &req)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, resp)
}

// PaymentCallback 摊位费支付同步回跳
// @Summary 网关支付完成后的浏览器回跳入口
// @Description 对 reference 做一次主动 verify，成功则开通摊主账号
// @Tags Auth (认证模块)
// @Produce json
// @Param reference query string true "交易 reference"
// @Success 200 {object} map[string]interface{} "开通结果"
// @Failure 400 {object} map[string]string "注册已过期"
// @Failure 502 {object} map[string]string "网关不可用"
// @Router /api/v1/auth/payment/callback [get]
func (ctrl *AuthController) PaymentCallback(c *gin.Context) {
	reference := c.Query("reference")
	if reference == "" {
		// Paystack 有时用 trxref 传参
		reference = c.Query("trxref")
	}
	if reference == "" {
		c.JSON(400, gin.H{"code": 400, "message": "缺少 reference 参数"})
		return
	}

	vendor, err := ctrl.registrationService.CompleteFromCallback(c.Request.Context(), reference)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, service.ToVendorProfileResp(vendor))
}
