package controller

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"tradefair_dev_v1_202608/internal/api/dto"
	"tradefair_dev_v1_202608/internal/middleware"
	"tradefair_dev_v1_202608/internal/service"
)

type FollowController struct {
	followService *service.FollowService
}

func NewFollowController(followService *service.FollowService) *FollowController {
	return &FollowController{followService: followService}
}

// Follow 关注摊主
// @Summary 顾客关注摊主
// @Tags Follow (关注模块)
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.CreateFollowReq true "摊主ID"
// @Success 200 {object} dto.FollowResp
// @Failure 409 {object} map[string]string "已关注"
// @Router /api/v1/follows [post]
func (ctrl *FollowController) Follow(c *gin.Context) {
	var req dto.CreateFollowReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"code": 400, "message": "参数错误: " + err.Error()})
		return
	}

	userID := middleware.GetUserID(c)
	follow, err := ctrl.followService.Follow(c.Request.Context(), userID, req.VendorID)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, service.ToFollowResp(follow))
}

// Unfollow 取消关注
// @Summary 顾客取消关注摊主
// @Tags Follow (关注模块)
// @Produce json
// @Security BearerAuth
// @Param vendor_id path int true "摊主档案ID"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]string "未关注该摊主"
// @Router /api/v1/follows/{vendor_id} [delete]
func (ctrl *FollowController) Unfollow(c *gin.Context) {
	vendorID, err := strconv.ParseInt(c.Param("vendor_id"), 10, 64)
	if err != nil || vendorID <= 0 {
		c.JSON(400, gin.H{"code": 400, "message": "无效的摊主ID"})
		return
	}

	userID := middleware.GetUserID(c)
	if err := ctrl.followService.Unfollow(c.Request.Context(), userID, vendorID); err != nil {
		fail(c, err)
		return
	}
	ok(c, nil)
}

// GetFollowing 关注列表
// @Summary 当前顾客的关注列表
// @Tags Follow (关注模块)
// @Produce json
// @Security BearerAuth
// @Success 200 {object} []dto.FollowResp
// @Router /api/v1/follows [get]
func (ctrl *FollowController) GetFollowing(c *gin.Context) {
	userID := middleware.GetUserID(c)
	follows, err := ctrl.followService.ListFollowing(c.Request.Context(), userID)
	if err != nil {
		fail(c, err)
		return
	}

	respList := make([]dto.FollowResp, 0, len(follows))
	for i := range follows {
		respList = append(respList, service.ToFollowResp(&follows[i]))
	}
	ok(c, respList)
}
