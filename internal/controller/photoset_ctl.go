package controller

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"sell_that_sheet/internal/api/dto"
	"sell_that_sheet/internal/service"
)

// ==================== 控制器 ====================

// PhotosetController 图集控制器
type PhotosetController struct {
	photosetService *service.PhotosetService
}

func NewPhotosetController(photosetService *service.PhotosetService) *PhotosetController {
	return &PhotosetController{photosetService: photosetService}
}

// ==================== API 方法 ====================

// CreatePhotoset 创建图集
// @Summary 批量登记照片并创建图集
// @Tags Photoset
// @Accept json
// @Produce json
// @Param body body dto.CreatePhotosetRequest true "创建请求"
// @Success 201 {object} model.PhotoSet
// @Router /api/photosets [post]
func (ctrl *PhotosetController) CreatePhotoset(c *gin.Context) {
	var req dto.CreatePhotosetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"code":    400,
			"message": "参数错误: " + err.Error(),
		})
		return
	}

	ctx := c.Request.Context()
	set, err := ctrl.photosetService.Create(ctx, req.Directory, req.ThumbnailName, req.PhotoNames)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"code":    500,
			"message": "创建失败: " + err.Error(),
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"code":    0,
		"message": "success",
		"data":    set,
	})
}

// GetPhotoset 获取图集
// @Summary 获取图集详情
// @Tags Photoset
// @Param set_id path int true "图集ID"
// @Success 200 {object} model.PhotoSet
// @Router /api/photosets/{set_id} [get]
func (ctrl *PhotosetController) GetPhotoset(c *gin.Context) {
	setID, err := strconv.ParseInt(c.Param("set_id"), 10, 64)
	if err != nil || setID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"code":    400,
			"message": "无效的图集ID",
		})
		return
	}

	ctx := c.Request.Context()
	set, err := ctrl.photosetService.GetByID(ctx, setID)
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
		"data":    set,
	})
}

// GetThumbnail 获取图集缩略图地址
// @Summary 获取图集缩略图的访问地址
// @Tags Photoset
// @Param set_id path int true "图集ID"
// @Success 200 {object} dto.ThumbnailResponse
// @Router /api/photosets/{set_id}/thumbnail [get]
func (ctrl *PhotosetController) GetThumbnail(c *gin.Context) {
	setID, err := strconv.ParseInt(c.Param("set_id"), 10, 64)
	if err != nil || setID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"code":    400,
			"message": "无效的图集ID",
		})
		return
	}

	ctx := c.Request.Context()
	url, err := ctrl.photosetService.GetThumbnailURL(ctx, setID)
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
		"data":    dto.ThumbnailResponse{URL: url},
	})
}
