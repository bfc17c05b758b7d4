package controller

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"tradefair_dev_v1_202608/internal/api/dto"
	"tradefair_dev_v1_202608/internal/middleware"
	"tradefair_dev_v1_202608/internal/repository"
	"tradefair_dev_v1_202608/internal/service"
)

type ProductController struct {
	productService *service.ProductService
}

func NewProductController(productService *service.ProductService) *ProductController {
	return &ProductController{productService: productService}
}

// ==================== 查询接口 ====================

// GetProducts 商品列表
// @Summary 商品列表（公开，可按类目 / 摊位 / 关键词筛选）
// @Tags Product (商品模块)
// @Produce json
// @Param domain query string false "类目代码 CB/EC/FB/JA"
// @Param shed_id query int false "摊位ID"
// @Param keyword query string false "商品名搜索"
// @Param page query int false "页码" default(1)
// @Param page_size query int false "每页数量" default(20)
// @Success 200 {object} dto.ProductListResp
// @Router /api/v1/products [get]
func (ctrl *ProductController) GetProducts(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	shedID, _ := strconv.ParseInt(c.DefaultQuery("shed_id", "0"), 10, 64)

	products, total, err := ctrl.productService.ListProducts(c.Request.Context(), repository.ProductFilter{
		ShedID:   shedID,
		Domain:   c.Query("domain"),
		Keyword:  c.Query("keyword"),
		Page:     page,
		PageSize: pageSize,
	})
	if err != nil {
		fail(c, err)
		return
	}

	respList := make([]dto.ProductResp, 0, len(products))
	for i := range products {
		respList = append(respList, service.ToProductResp(&products[i]))
	}

	c.JSON(200, dto.ProductListResp{
		Code:     0,
		Message:  "success",
		Data:     respList,
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	})
}

// GetProduct 商品详情
// @Summary 商品详情（公开）
// @Tags Product (商品模块)
// @Produce json
// @Param id path int true "商品ID"
// @Success 200 {object} dto.ProductResp
// @Failure 404 {object} map[string]string "商品不存在"
// @Router /api/v1/products/{id} [get]
func (ctrl *ProductController) GetProduct(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(400, gin.H{"code": 400, "message": "无效的商品ID"})
		return
	}

	product, err := ctrl.productService.GetProduct(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, service.ToProductResp(product))
}

// ==================== 摊主接口 ====================

// CreateProduct 上架商品
// @Summary 摊主上架商品（摊位需已缴费）
// @Tags Product (商品模块)
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.CreateProductReq true "商品信息"
// @Success 200 {object} dto.ProductResp
// @Failure 403 {object} map[string]string "摊位未缴费"
// @Router /api/v1/products [post]
func (ctrl *ProductController) CreateProduct(c *gin.Context) {
	var req dto.CreateProductReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"code": 400, "message": "参数错误: " + err.Error()})
		return
	}

	userID := middleware.GetUserID(c)
	product, err := ctrl.productService.CreateProduct(c.Request.Context(), userID, &req)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, service.ToProductResp(product))
}

// UpdateProduct 更新商品
// @Summary 摊主更新商品
// @Tags Product (商品模块)
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "商品ID"
// @Param body body dto.UpdateProductReq true "更新内容"
// @Success 200 {object} dto.ProductResp
// @Failure 403 {object} map[string]string "不是商品所有者"
// @Router /api/v1/products/{id} [put]
func (ctrl *ProductController) UpdateProduct(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(400, gin.H{"code": 400, "message": "无效的商品ID"})
		return
	}

	var req dto.UpdateProductReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"code": 400, "message": "参数错误: " + err.Error()})
		return
	}
	req.ID = id

	userID := middleware.GetUserID(c)
	product, err := ctrl.productService.UpdateProduct(c.Request.Context(), userID, &req)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, service.ToProductResp(product))
}

// DeleteProduct 下架商品
// @Summary 摊主下架商品
// @Tags Product (商品模块)
// @Produce json
// @Security BearerAuth
// @Param id path int true "商品ID"
// @Success 200 {object} map[string]interface{}
// @Failure 403 {object} map[string]string "不是商品所有者"
// @Router /api/v1/products/{id} [delete]
func (ctrl *ProductController) DeleteProduct(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(400, gin.H{"code": 400, "message": "无效的商品ID"})
		return
	}

	userID := middleware.GetUserID(c)
	if err := ctrl.productService.DeleteProduct(c.Request.Context(), userID, id); err != nil {
		fail(c, err)
		return
	}
	ok(c, nil)
}
