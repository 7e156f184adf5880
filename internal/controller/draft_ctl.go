package controller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"sell_that_sheet/internal/api/dto"
	"sell_that_sheet/internal/service"
)

// ==================== 控制器 ====================

// DraftController 草稿控制器：会话内存草稿的增删改查和批量装配
type DraftController struct {
	store           *service.DraftStore
	assemblyService *service.AssemblyService
	schemaService   *service.SchemaService
	formService     *service.FormService
}

func NewDraftController(store *service.DraftStore, assemblyService *service.AssemblyService,
	schemaService *service.SchemaService, formService *service.FormService) *DraftController {
	return &DraftController{
		store:           store,
		assemblyService: assemblyService,
		schemaService:   schemaService,
		formService:     formService,
	}
}

// validateDraft 按草稿类目的规则集校验一条草稿，失败时直接写响应
// 入仓前拦住非法值，装配阶段就不用再管半成品草稿
func (ctrl *DraftController) validateDraft(c *gin.Context, req *dto.DraftRequest) bool {
	fields, err := ctrl.schemaService.Resolve(c.Request.Context(), req.CategoryID)
	if err != nil {
		if errors.Is(err, service.ErrSourceUnavailable) {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"code":    503,
				"message": "字段定义源不可用: " + err.Error(),
			})
			return false
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"code":    500,
			"message": "解析失败: " + err.Error(),
		})
		return false
	}

	values := make(map[string]service.FieldValue, len(req.BaseValues)+len(req.CustomValues))
	for k, v := range req.BaseValues {
		values[k] = v
	}
	for k, v := range req.CustomValues {
		values[k] = v
	}

	rules := ctrl.formService.BuildValidation(fields)
	if verr := ctrl.formService.Validate(rules, values); verr != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"code":    422,
			"message": "校验失败",
			"data":    verr.Fields,
		})
		return false
	}
	return true
}

// ==================== API 方法 ====================

// AddDraft 新增草稿
// @Summary 往当前会话追加一条草稿
// @Tags Draft
// @Accept json
// @Produce json
// @Param body body dto.DraftRequest true "草稿内容"
// @Success 201 {object} service.DraftAuction
// @Router /api/drafts [post]
func (ctrl *DraftController) AddDraft(c *gin.Context) {
	var req dto.DraftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"code":    400,
			"message": "参数错误: " + err.Error(),
		})
		return
	}

	if !ctrl.validateDraft(c, &req) {
		return
	}

	draft := ctrl.store.Add(&service.DraftAuction{
		CategoryID:   req.CategoryID,
		BaseValues:   req.BaseValues,
		CustomValues: req.CustomValues,
		Translations: req.Translations,
		PhotosetID:   req.PhotosetID,
	})

	c.JSON(http.StatusCreated, gin.H{
		"code":    0,
		"message": "success",
		"data":    draft,
	})
}

// UpdateDraft 更新草稿
// @Summary 整体替换一条草稿的内容
// @Tags Draft
// @Accept json
// @Param local_id path int true "草稿ID"
// @Param body body dto.DraftRequest true "草稿内容"
// @Success 200 {object} map[string]interface{}
// @Router /api/drafts/{local_id} [put]
func (ctrl *DraftController) UpdateDraft(c *gin.Context) {
	localID, err := strconv.ParseInt(c.Param("local_id"), 10, 64)
	if err != nil || localID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"code":    400,
			"message": "无效的草稿ID",
		})
		return
	}

	var req dto.DraftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"code":    400,
			"message": "参数错误: " + err.Error(),
		})
		return
	}

	if !ctrl.validateDraft(c, &req) {
		return
	}

	err = ctrl.store.Update(localID, &service.DraftAuction{
		CategoryID:   req.CategoryID,
		BaseValues:   req.BaseValues,
		CustomValues: req.CustomValues,
		Translations: req.Translations,
		PhotosetID:   req.PhotosetID,
	})
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
	})
}

// RemoveDraft 删除草稿
// @Summary 从当前会话删除一条草稿
// @Tags Draft
// @Param local_id path int true "草稿ID"
// @Success 200 {object} map[string]interface{}
// @Router /api/drafts/{local_id} [delete]
func (ctrl *DraftController) RemoveDraft(c *gin.Context) {
	localID, err := strconv.ParseInt(c.Param("local_id"), 10, 64)
	if err != nil || localID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"code":    400,
			"message": "无效的草稿ID",
		})
		return
	}

	if err := ctrl.store.Remove(localID); err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"code":    404,
			"message": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"code":    0,
		"message": "success",
	})
}

// ListDrafts 列出草稿
// @Summary 按入仓顺序列出会话草稿
// @Tags Draft
// @Produce json
// @Param category_id query int false "按类目过滤"
// @Success 200 {array} service.DraftAuction
// @Router /api/drafts [get]
func (ctrl *DraftController) ListDrafts(c *gin.Context) {
	categoryID := int64(-1)
	if raw := c.Query("category_id"); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"code":    400,
				"message": "无效的类目ID",
			})
			return
		}
		categoryID = parsed
	}

	c.JSON(http.StatusOK, gin.H{
		"code":    0,
		"message": "success",
		"data":    ctrl.store.List(categoryID),
	})
}

// Assemble 批量装配
// @Summary 把会话内全部草稿装配成拍卖集
// @Tags Draft
// @Accept json
// @Produce json
// @Param body body dto.AssembleRequest true "装配请求"
// @Success 201 {object} dto.AssembleResult
// @Router /api/drafts/assemble [post]
func (ctrl *DraftController) Assemble(c *gin.Context) {
	var req dto.AssembleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"code":    400,
			"message": "参数错误: " + err.Error(),
		})
		return
	}

	drafts := ctrl.store.Snapshot()
	if len(drafts) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"code":    400,
			"message": "没有待装配的草稿",
		})
		return
	}

	ctx := c.Request.Context()
	directory := service.DirectoryLocation(req.Path)
	set, err := ctrl.assemblyService.Assemble(ctx, drafts, directory, req.SetName, req.OwnerID)
	if err != nil {
		// 装配失败：已落库的部分保留，草稿仓不清空，前端提示后可整批重试
		var asmErr *service.AssemblyError
		if errors.As(err, &asmErr) {
			c.JSON(http.StatusInternalServerError, gin.H{
				"code":    500,
				"message": asmErr.Error(),
				"data": gin.H{
					"draft_index": asmErr.DraftIndex,
				},
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"code":    500,
			"message": "装配失败: " + err.Error(),
		})
		return
	}

	// 全部成功才清空会话草稿
	ctrl.store.Clear()

	c.JSON(http.StatusCreated, gin.H{
		"code":    0,
		"message": "success",
		"data": dto.AssembleResult{
			Set:        set,
			AuctionIDs: set.AuctionIDs,
		},
	})
}
