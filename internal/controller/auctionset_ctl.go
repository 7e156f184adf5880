package controller

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"sell_that_sheet/internal/service"
)

// ==================== 控制器 ====================

// AuctionSetController 拍卖集控制器
type AuctionSetController struct {
	setService *service.AuctionSetService
}

func NewAuctionSetController(setService *service.AuctionSetService) *AuctionSetController {
	return &AuctionSetController{setService: setService}
}

// ==================== API 方法 ====================

// ListSets 列出拍卖集
// @Summary 按创建时间倒序列出拍卖集
// @Tags AuctionSet
// @Produce json
// @Success 200 {array} model.AuctionSet
// @Router /api/auction-sets [get]
func (ctrl *AuctionSetController) ListSets(c *gin.Context) {
	ctx := c.Request.Context()
	sets, err := ctrl.setService.List(ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"code":    500,
			"message": "查询失败: " + err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"code":    0,
		"message": "success",
		"data":    sets,
	})
}

// GetSetDetail 获取拍卖集详情
// @Summary 获取拍卖集及其成员拍卖
// @Tags AuctionSet
// @Param set_id path int true "拍卖集ID"
// @Success 200 {object} service.AuctionSetDetail
// @Router /api/auction-sets/{set_id} [get]
func (ctrl *AuctionSetController) GetSetDetail(c *gin.Context) {
	setID, err := strconv.ParseInt(c.Param("set_id"), 10, 64)
	if err != nil || setID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"code":    400,
			"message": "无效的拍卖集ID",
		})
		return
	}

	ctx := c.Request.Context()
	detail, err := ctrl.setService.GetDetail(ctx, setID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"code":    404,
			"message": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"code":    0,
		"message": "success",
		"data":    detail,
	})
}

// RequestPush 请求推送到 Baselinker
// @Summary 把拍卖集标记为待推送
// @Tags AuctionSet
// @Param set_id path int true "拍卖集ID"
// @Success 202 {object} map[string]interface{}
// @Router /api/auction-sets/{set_id}/push [post]
func (ctrl *AuctionSetController) RequestPush(c *gin.Context) {
	setID, err := strconv.ParseInt(c.Param("set_id"), 10, 64)
	if err != nil || setID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"code":    400,
			"message": "无效的拍卖集ID",
		})
		return
	}

	ctx := c.Request.Context()
	if err := ctrl.setService.RequestPush(ctx, setID); err != nil {
		c.JSON(http.StatusConflict, gin.H{
			"code":    409,
			"message": err.Error(),
		})
		return
	}

	c.JSON(http.StatusAccepted, gin.H{
		"code":    0,
		"message": "已加入推送队列",
	})
}

// RotateShareToken 换发分享令牌
// @Summary 重新生成拍卖集的外部分享令牌
// @Tags AuctionSet
// @Param set_id path int true "拍卖集ID"
// @Success 200 {object} map[string]interface{}
// @Router /api/auction-sets/{set_id}/share-token [post]
func (ctrl *AuctionSetController) RotateShareToken(c *gin.Context) {
	setID, err := strconv.ParseInt(c.Param("set_id"), 10, 64)
	if err != nil || setID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"code":    400,
			"message": "无效的拍卖集ID",
		})
		return
	}

	ctx := c.Request.Context()
	token, err := ctrl.setService.RotateShareToken(ctx, setID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"code":    500,
			"message": "换发失败: " + err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"code":    0,
		"message": "success",
		"data":    gin.H{"share_token": token},
	})
}
