package controller

import (
	"errors"
	"io"
	"log"

	"github.com/gin-gonic/gin"

	"tradefair_dev_v1_202608/internal/api/dto"
	"tradefair_dev_v1_202608/internal/middleware"
	"tradefair_dev_v1_202608/internal/service"
	"tradefair_dev_v1_202608/pkg/paystack"
)

type PaymentController struct {
	paymentService *service.PaymentService
}

func NewPaymentController(paymentService *service.PaymentService) *PaymentController {
	return &PaymentController{paymentService: paymentService}
}

// InitiateShedPayment 发起摊位费支付
// @Summary 为未缴费摊位发起摊位费支付
// @Tags Payment (支付模块)
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.InitiateShedPaymentReq true "支付金额（NGN）"
// @Success 200 {object} dto.InitiatePaymentResp
// @Failure 409 {object} map[string]string "摊位费已缴清"
// @Router /api/v1/payments/shed [post]
func (ctrl *PaymentController) InitiateShedPayment(c *gin.Context) {
	var req dto.InitiateShedPaymentReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"code": 400, "message": "参数错误: " + err.Error()})
		return
	}

	userID := middleware.GetUserID(c)
	resp, err := ctrl.paymentService.InitiateShedPayment(c.Request.Context(), userID, &req)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, resp)
}

// Webhook 网关回调
// @Summary Paystack webhook 入口
// @Description 校验 HMAC 签名后按 reference 分流落账；对网关只回粗粒度状态
// @Tags Payment (支付模块)
// @Accept json
// @Produce json
// @Success 200 {object} map[string]string "已确认"
// @Failure 400 {object} map[string]string "签名无效"
// @Router /api/v1/payments/webhook [post]
func (ctrl *PaymentController) Webhook(c *gin.Context) {
	// 签名是对原始 body 算的，必须在绑定前读完
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(400, gin.H{"status": "invalid"})
		return
	}
	signature := c.GetHeader(paystack.SignatureHeader)

	outcome, err := ctrl.paymentService.HandleWebhook(c.Request.Context(), body, signature)
	if err != nil {
		if errors.Is(err, service.ErrInvalidSignature) {
			c.JSON(400, gin.H{"status": "invalid signature"})
			return
		}
		// 处理失败也回 200，避免网关风暴式重发；错误靠对账任务兜底
		log.Printf("webhook 处理出错: %v", err)
	}

	switch outcome {
	case service.WebhookNotFound:
		c.JSON(200, gin.H{"status": "unknown reference"})
	default:
		c.JSON(200, gin.H{"status": "ok"})
	}
}
