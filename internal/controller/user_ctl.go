package controller

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"tradefair_dev_v1_202608/internal/api/dto"
	"tradefair_dev_v1_202608/internal/middleware"
	"tradefair_dev_v1_202608/internal/repository"
	"tradefair_dev_v1_202608/internal/service"
)

type UserController struct {
	profileService *service.ProfileService
}

func NewUserController(profileService *service.ProfileService) *UserController {
	return &UserController{profileService: profileService}
}

// GetMe 当前用户信息
// @Summary 获取当前登录用户信息
// @Tags User (用户模块)
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.UserInfo
// @Router /api/v1/users/me [get]
func (ctrl *UserController) GetMe(c *gin.Context) {
	userID := middleware.GetUserID(c)
	info, err := ctrl.profileService.GetCurrentUser(c.Request.Context(), userID)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, info)
}

// ==================== 摊主档案 ====================

// GetVendors 摊主列表
// @Summary 摊主列表（公开，可按类目 / 商号筛选）
// @Tags User (用户模块)
// @Produce json
// @Param domain query string false "类目代码 CB/EC/FB/JA"
// @Param keyword query string false "商号搜索"
// @Param page query int false "页码" default(1)
// @Param page_size query int false "每页数量" default(20)
// @Success 200 {object} map[string]interface{}
// @Router /api/v1/vendors [get]
func (ctrl *UserController) GetVendors(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))

	vendors, total, err := ctrl.profileService.ListVendors(c.Request.Context(), repository.VendorFilter{
		Domain:   c.Query("domain"),
		Keyword:  c.Query("keyword"),
		Page:     page,
		PageSize: pageSize,
	})
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(200, gin.H{
		"code":      0,
		"message":   "success",
		"data":      vendors,
		"total":     total,
		"page":      page,
		"page_size": pageSize,
	})
}

// GetVendor 摊主详情
// @Summary 摊主档案（公开）
// @Tags User (用户模块)
// @Produce json
// @Param id path int true "摊主档案ID"
// @Success 200 {object} dto.VendorProfileResp
// @Failure 404 {object} map[string]string "摊主不存在"
// @Router /api/v1/vendors/{id} [get]
func (ctrl *UserController) GetVendor(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(400, gin.H{"code": 400, "message": "无效的摊主ID"})
		return
	}

	vendor, err := ctrl.profileService.GetVendorProfile(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, vendor)
}

// GetOwnVendorProfile 当前摊主的档案
// @Summary 获取自己的摊主档案
// @Tags User (用户模块)
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.VendorProfileResp
// @Router /api/v1/vendors/me [get]
func (ctrl *UserController) GetOwnVendorProfile(c *gin.Context) {
	userID := middleware.GetUserID(c)
	vendor, err := ctrl.profileService.GetOwnVendorProfile(c.Request.Context(), userID)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, vendor)
}

// UpdateVendorProfile 更新摊主档案
// @Summary 更新自己的摊主档案（商号 / 简介）
// @Tags User (用户模块)
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.UpdateVendorProfileReq true "更新内容"
// @Success 200 {object} dto.VendorProfileResp
// @Router /api/v1/vendors/me [put]
func (ctrl *UserController) UpdateVendorProfile(c *gin.Context) {
	var req dto.UpdateVendorProfileReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"code": 400, "message": "参数错误: " + err.Error()})
		return
	}

	userID := middleware.GetUserID(c)
	vendor, err := ctrl.profileService.UpdateVendorProfile(c.Request.Context(), userID, &req)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, vendor)
}

// ==================== 顾客档案 ====================

// GetCustomerProfile 当前顾客的档案
// @Summary 获取自己的顾客档案
// @Tags User (用户模块)
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.CustomerProfileResp
// @Router /api/v1/customers/me [get]
func (ctrl *UserController) GetCustomerProfile(c *gin.Context) {
	userID := middleware.GetUserID(c)
	customer, err := ctrl.profileService.GetCustomerProfile(c.Request.Context(), userID)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, customer)
}

// UpdateCustomerProfile 更新顾客档案
// @Summary 更新自己的顾客档案（电话 / 地址）
// @Tags User (用户模块)
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.UpdateCustomerProfileReq true "更新内容"
// @Success 200 {object} dto.CustomerProfileResp
// @Router /api/v1/customers/me [put]
func (ctrl *UserController) UpdateCustomerProfile(c *gin.Context) {
	var req dto.UpdateCustomerProfileReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"code": 400, "message": "参数错误: " + err.Error()})
		return
	}

	userID := middleware.GetUserID(c)
	customer, err := ctrl.profileService.UpdateCustomerProfile(c.Request.Context(), userID, &req)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, customer)
}
