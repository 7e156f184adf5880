package controller

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"sell_that_sheet/internal/api/dto"
	"sell_that_sheet/internal/middleware"
	"sell_that_sheet/internal/model"
	"sell_that_sheet/internal/repository"
)

// ==================== 控制器 ====================

// CatalogController 自定义参数目录与描述模板控制器
// 目录项是纯 CRUD，直接走仓储，不再包一层服务
type CatalogController struct {
	catalogRepo  repository.CategoryParameterRepository
	templateRepo repository.DescriptionTemplateRepository
}

func NewCatalogController(catalogRepo repository.CategoryParameterRepository, templateRepo repository.DescriptionTemplateRepository) *CatalogController {
	return &CatalogController{catalogRepo: catalogRepo, templateRepo: templateRepo}
}

// ==================== 自定义参数目录 ====================

// CreateParameter 新增目录项
// @Summary 新增自定义参数目录项
// @Tags Catalog
// @Accept json
// @Produce json
// @Param body body dto.CategoryParameterRequest true "目录项"
// @Success 201 {object} model.CategoryParameter
// @Router /api/category-parameters [post]
func (ctrl *CatalogController) CreateParameter(c *gin.Context) {
	var req dto.CategoryParameterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"code":    400,
			"message": "参数错误: " + err.Error(),
		})
		return
	}

	param := &model.CategoryParameter{
		CategoryID:       req.CategoryID,
		NamePL:           req.NamePL,
		NameDE:           req.NameDE,
		ParameterType:    req.ParameterType,
		PossibleValuesPL: req.PossibleValuesPL,
		PossibleValuesDE: req.PossibleValuesDE,
	}

	ctx := c.Request.Context()
	if err := ctrl.catalogRepo.Create(ctx, param); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"code":    500,
			"message": "创建失败: " + err.Error(),
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"code":    0,
		"message": "success",
		"data":    param,
	})
}

// UpdateParameter 更新目录项
// @Summary 更新自定义参数目录项
// @Tags Catalog
// @Accept json
// @Param param_id path int true "目录项ID"
// @Param body body dto.CategoryParameterRequest true "目录项"
// @Success 200 {object} model.CategoryParameter
// @Router /api/category-parameters/{param_id} [put]
func (ctrl *CatalogController) UpdateParameter(c *gin.Context) {
	paramID, err := strconv.ParseInt(c.Param("param_id"), 10, 64)
	if err != nil || paramID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"code":    400,
			"message": "无效的目录项ID",
		})
		return
	}

	var req dto.CategoryParameterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"code":    400,
			"message": "参数错误: " + err.Error(),
		})
		return
	}

	ctx := c.Request.Context()
	param, err := ctrl.catalogRepo.GetByID(ctx, paramID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"code":    404,
			"message": "目录项不存在",
		})
		return
	}

	param.CategoryID = req.CategoryID
	param.NamePL = req.NamePL
	param.NameDE = req.NameDE
	param.ParameterType = req.ParameterType
	param.PossibleValuesPL = req.PossibleValuesPL
	param.PossibleValuesDE = req.PossibleValuesDE

	if err := ctrl.catalogRepo.Update(ctx, param); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"code":    500,
			"message": "更新失败: " + err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"code":    0,
		"message": "success",
		"data":    param,
	})
}

// DeleteParameter 删除目录项
// @Summary 删除自定义参数目录项
// @Tags Catalog
// @Param param_id path int true "目录项ID"
// @Success 200 {object} map[string]interface{}
// @Router /api/category-parameters/{param_id} [delete]
func (ctrl *CatalogController) DeleteParameter(c *gin.Context) {
	paramID, err := strconv.ParseInt(c.Param("param_id"), 10, 64)
	if err != nil || paramID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"code":    400,
			"message": "无效的目录项ID",
		})
		return
	}

	ctx := c.Request.Context()
	if err := ctrl.catalogRepo.Delete(ctx, paramID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"code":    500,
			"message": "删除失败: " + err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"code":    0,
		"message": "success",
	})
}

// ListParameters 列出目录项
// @Summary 列出自定义参数目录
// @Tags Catalog
// @Produce json
// @Param category_id query int false "按类目过滤（含全局项）"
// @Success 200 {array} model.CategoryParameter
// @Router /api/category-parameters [get]
func (ctrl *CatalogController) ListParameters(c *gin.Context) {
	ctx := c.Request.Context()

	if raw := c.Query("category_id"); raw != "" {
		categoryID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"code":    400,
				"message": "无效的类目ID",
			})
			return
		}
		params, err := ctrl.catalogRepo.ListForCategory(ctx, categoryID)
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
			"data":    params,
		})
		return
	}

	params, err := ctrl.catalogRepo.List(ctx)
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
		"data":    params,
	})
}

// ==================== 描述模板 ====================

// CreateTemplate 新增描述模板
// @Summary 新增当前用户的描述模板
// @Tags Catalog
// @Accept json
// @Produce json
// @Param body body dto.DescriptionTemplateRequest true "模板"
// @Success 201 {object} model.DescriptionTemplate
// @Router /api/description-templates [post]
func (ctrl *CatalogController) CreateTemplate(c *gin.Context) {
	var req dto.DescriptionTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"code":    400,
			"message": "参数错误: " + err.Error(),
		})
		return
	}

	tpl := &model.DescriptionTemplate{
		OwnerID: middleware.GetUserID(c),
		Name:    req.Name,
		Content: req.Content,
	}

	ctx := c.Request.Context()
	if err := ctrl.templateRepo.Create(ctx, tpl); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"code":    500,
			"message": "创建失败: " + err.Error(),
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"code":    0,
		"message": "success",
		"data":    tpl,
	})
}

// ListTemplates 列出当前用户的描述模板
// @Summary 列出当前用户的描述模板
// @Tags Catalog
// @Produce json
// @Success 200 {array} model.DescriptionTemplate
// @Router /api/description-templates [get]
func (ctrl *CatalogController) ListTemplates(c *gin.Context) {
	ctx := c.Request.Context()
	templates, err := ctrl.templateRepo.ListByOwner(ctx, middleware.GetUserID(c))
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
		"data":    templates,
	})
}

// DeleteTemplate 删除描述模板
// @Summary 删除描述模板
// @Tags Catalog
// @Param template_id path int true "模板ID"
// @Success 200 {object} map[string]interface{}
// @Router /api/description-templates/{template_id} [delete]
func (ctrl *CatalogController) DeleteTemplate(c *gin.Context) {
	templateID, err := strconv.ParseInt(c.Param("template_id"), 10, 64)
	if err != nil || templateID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"code":    400,
			"message": "无效的模板ID",
		})
		return
	}

	ctx := c.Request.Context()
	if err := ctrl.templateRepo.Delete(ctx, templateID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"code":    500,
			"message": "删除失败: " + err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"code":    0,
		"message": "success",
	})
}
