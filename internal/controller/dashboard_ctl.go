package controller

import (
	"github.com/gin-gonic/gin"

	"tradefair_dev_v1_202608/internal/middleware"
	"tradefair_dev_v1_202608/internal/service"
)

type DashboardController struct {
	dashboardService *service.DashboardService
}

func NewDashboardController(dashboardService *service.DashboardService) *DashboardController {
	return &DashboardController{dashboardService: dashboardService}
}

// GetDashboard 摊主仪表盘
// @Summary 当前摊主的经营概览
// @Description 摊位信息 + 商品数 + 预订单分状态统计 + 粉丝数 + 待办入口
// @Tags Dashboard (仪表盘模块)
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.DashboardResp
// @Failure 404 {object} map[string]string "尚无摊位"
// @Router /api/v1/dashboard [get]
func (ctrl *DashboardController) GetDashboard(c *gin.Context) {
	userID := middleware.GetUserID(c)
	resp, err := ctrl.dashboardService.GetDashboard(c.Request.Context(), userID)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, resp)
}
