package controller

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"tradefair_dev_v1_202608/internal/api/dto"
	"tradefair_dev_v1_202608/internal/middleware"
	"tradefair_dev_v1_202608/internal/service"
)

type PreorderController struct {
	preorderService *service.PreorderService
}

func NewPreorderController(preorderService *service.PreorderService) *PreorderController {
	return &PreorderController{preorderService: preorderService}
}

// CreatePreorder 创建预订单
// @Summary 顾客创建预订单（数量不得超过库存）
// @Tags Preorder (预订模块)
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.CreatePreorderReq true "预订信息"
// @Success 200 {object} dto.PreorderResp
// @Failure 400 {object} map[string]string "库存不足"
// @Router /api/v1/preorders [post]
func (ctrl *PreorderController) CreatePreorder(c *gin.Context) {
	var req dto.CreatePreorderReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"code": 400, "message": "参数错误: " + err.Error()})
		return
	}

	userID := middleware.GetUserID(c)
	preorder, err := ctrl.preorderService.CreatePreorder(c.Request.Context(), userID, &req)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, service.ToPreorderResp(preorder))
}

// GetPreorder 预订单详情
// @Summary 预订单详情（仅买卖双方）
// @Tags Preorder (预订模块)
// @Produce json
// @Security BearerAuth
// @Param id path int true "预订单ID"
// @Success 200 {object} dto.PreorderResp
// @Failure 403 {object} map[string]string "无权查看"
// @Router /api/v1/preorders/{id} [get]
func (ctrl *PreorderController) GetPreorder(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(400, gin.H{"code": 400, "message": "无效的预订单ID"})
		return
	}

	userID := middleware.GetUserID(c)
	preorder, err := ctrl.preorderService.GetPreorder(c.Request.Context(), userID, id)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, service.ToPreorderResp(preorder))
}

// GetCustomerPreorders 顾客的预订单列表
// @Summary 当前顾客的预订单列表
// @Tags Preorder (预订模块)
// @Produce json
// @Security BearerAuth
// @Success 200 {object} []dto.PreorderResp
// @Router /api/v1/preorders [get]
func (ctrl *PreorderController) GetCustomerPreorders(c *gin.Context) {
	userID := middleware.GetUserID(c)
	preorders, err := ctrl.preorderService.ListCustomerPreorders(c.Request.Context(), userID)
	if err != nil {
		fail(c, err)
		return
	}

	respList := make([]dto.PreorderResp, 0, len(preorders))
	for i := range preorders {
		respList = append(respList, service.ToPreorderResp(&preorders[i]))
	}
	ok(c, respList)
}

// GetVendorPreorders 摊主收到的预订单列表
// @Summary 当前摊主收到的预订单列表
// @Tags Preorder (预订模块)
// @Produce json
// @Security BearerAuth
// @Success 200 {object} []dto.PreorderResp
// @Router /api/v1/preorders/vendor [get]
func (ctrl *PreorderController) GetVendorPreorders(c *gin.Context) {
	userID := middleware.GetUserID(c)
	preorders, err := ctrl.preorderService.ListVendorPreorders(c.Request.Context(), userID)
	if err != nil {
		fail(c, err)
		return
	}

	respList := make([]dto.PreorderResp, 0, len(preorders))
	for i := range preorders {
		respList = append(respList, service.ToPreorderResp(&preorders[i]))
	}
	ok(c, respList)
}

// ConfirmPreorder 确认预订单
// @Summary 摊主确认预订单
// @Tags Preorder (预订模块)
// @Produce json
// @Security BearerAuth
// @Param id path int true "预订单ID"
// @Success 200 {object} dto.PreorderResp
// @Failure 409 {object} map[string]string "预订单已处理"
// @Router /api/v1/preorders/{id}/confirm [post]
func (ctrl *PreorderController) ConfirmPreorder(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(400, gin.H{"code": 400, "message": "无效的预订单ID"})
		return
	}

	userID := middleware.GetUserID(c)
	preorder, err := ctrl.preorderService.ConfirmPreorder(c.Request.Context(), userID, id)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, service.ToPreorderResp(preorder))
}

// CancelPreorder 取消预订单
// @Summary 取消预订单（买卖双方均可）
// @Tags Preorder (预订模块)
// @Produce json
// @Security BearerAuth
// @Param id path int true "预订单ID"
// @Success 200 {object} dto.PreorderResp
// @Failure 409 {object} map[string]string "预订单已处理"
// @Router /api/v1/preorders/{id}/cancel [post]
func (ctrl *PreorderController) CancelPreorder(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(400, gin.H{"code": 400, "message": "无效的预订单ID"})
		return
	}

	userID := middleware.GetUserID(c)
	preorder, err := ctrl.preorderService.CancelPreorder(c.Request.Context(), userID, id)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, service.ToPreorderResp(preorder))
}

// InitiatePayment 发起预订单支付
// @Summary 顾客为预订单发起支付
// @Tags Preorder (预订模块)
// @Produce json
// @Security BearerAuth
// @Param id path int true "预订单ID"
// @Success 200 {object} dto.InitiatePaymentResp
// @Failure 409 {object} map[string]string "已支付"
// @Failure 502 {object} map[string]string "网关不可用"
// @Router /api/v1/preorders/{id}/pay [post]
func (ctrl *PreorderController) InitiatePayment(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(400, gin.H{"code": 400, "message": "无效的预订单ID"})
		return
	}

	userID := middleware.GetUserID(c)
	resp, err := ctrl.preorderService.InitiatePayment(c.Request.Context(), userID, id)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, resp)
}

// GetPaymentStatus 查询支付状态
// @Summary 查询预订单支付状态（pending 时会向网关核实）
// @Tags Preorder (预订模块)
// @Produce json
// @Security BearerAuth
// @Param id path int true "预订单ID"
// @Success 200 {object} dto.PaymentStatusResp
// @Router /api/v1/preorders/{id}/payment [get]
func (ctrl *PreorderController) GetPaymentStatus(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(400, gin.H{"code": 400, "message": "无效的预订单ID"})
		return
	}

	userID := middleware.GetUserID(c)
	resp, err := ctrl.preorderService.CheckPaymentStatus(c.Request.Context(), userID, id)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, resp)
}
