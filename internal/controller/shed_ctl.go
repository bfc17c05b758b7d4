package controller

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"tradefair_dev_v1_202608/internal/api/dto"
	"tradefair_dev_v1_202608/internal/middleware"
	"tradefair_dev_v1_202608/internal/repository"
	"tradefair_dev_v1_202608/internal/service"
)

type ShedController struct {
	shedService *service.ShedService
}

func NewShedController(shedService *service.ShedService) *ShedController {
	return &ShedController{shedService: shedService}
}

// GetSheds 摊位列表
// @Summary 摊位列表（公开，按摊位编号排序）
// @Tags Shed (摊位模块)
// @Produce json
// @Param domain query string false "类目代码 CB/EC/FB/JA"
// @Param secured query bool false "是否已缴费"
// @Param keyword query string false "摊位名搜索"
// @Param page query int false "页码" default(1)
// @Param page_size query int false "每页数量" default(20)
// @Success 200 {object} dto.ShedListResp
// @Router /api/v1/sheds [get]
func (ctrl *ShedController) GetSheds(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))

	filter := repository.ShedFilter{
		Domain:   c.Query("domain"),
		Keyword:  c.Query("keyword"),
		Page:     page,
		PageSize: pageSize,
	}
	if securedStr := c.Query("secured"); securedStr != "" {
		secured := securedStr == "true"
		filter.Secured = &secured
	}

	sheds, total, err := ctrl.shedService.ListSheds(c.Request.Context(), filter)
	if err != nil {
		fail(c, err)
		return
	}

	respList := make([]dto.ShedResp, 0, len(sheds))
	for i := range sheds {
		respList = append(respList, service.ToShedResp(&sheds[i]))
	}

	c.JSON(200, dto.ShedListResp{
		Code:     0,
		Message:  "success",
		Data:     respList,
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	})
}

// GetShed 摊位详情
// @Summary 摊位详情（公开）
// @Tags Shed (摊位模块)
// @Produce json
// @Param id path int true "摊位ID"
// @Success 200 {object} dto.ShedResp
// @Failure 404 {object} map[string]string "摊位不存在"
// @Router /api/v1/sheds/{id} [get]
func (ctrl *ShedController) GetShed(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(400, gin.H{"code": 400, "message": "无效的摊位ID"})
		return
	}

	shed, err := ctrl.shedService.GetShed(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, service.ToShedResp(shed))
}

// UpdateShed 更新摊位
// @Summary 更新摊位（仅摊主本人，仅名字和拼图）
// @Tags Shed (摊位模块)
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "摊位ID"
// @Param body body dto.UpdateShedReq true "更新内容"
// @Success 200 {object} dto.ShedResp
// @Failure 403 {object} map[string]string "不是摊位所有者"
// @Router /api/v1/sheds/{id} [put]
func (ctrl *ShedController) UpdateShed(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(400, gin.H{"code": 400, "message": "无效的摊位ID"})
		return
	}

	var req dto.UpdateShedReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"code": 400, "message": "参数错误: " + err.Error()})
		return
	}

	userID := middleware.GetUserID(c)
	shed, err := ctrl.shedService.UpdateShed(c.Request.Context(), userID, id, &req)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, service.ToShedResp(shed))
}
