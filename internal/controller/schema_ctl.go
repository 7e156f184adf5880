package controller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"sell_that_sheet/internal/api/dto"
	"sell_that_sheet/internal/service"
	"sell_that_sheet/pkg/allegro"
)

// ==================== 控制器 ====================

// SchemaController 表单 schema 控制器
type SchemaController struct {
	schemaService *service.SchemaService
	formService   *service.FormService
	categories    *allegro.Client
}

func NewSchemaController(schemaService *service.SchemaService, formService *service.FormService, categories *allegro.Client) *SchemaController {
	return &SchemaController{schemaService: schemaService, formService: formService, categories: categories}
}

// ==================== API 方法 ====================

// GetOfferSchema 获取类目的表单 schema
// @Summary 获取类目字段定义、校验规则和初始值
// @Tags Schema
// @Produce json
// @Param category_id path int true "类目ID"
// @Success 200 {object} dto.OfferSchemaResponse
// @Router /api/categories/{category_id}/offer-schema [get]
func (ctrl *SchemaController) GetOfferSchema(c *gin.Context) {
	categoryIDStr := c.Param("category_id")
	categoryID, err := strconv.ParseInt(categoryIDStr, 10, 64)
	if err != nil || categoryID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"code":    400,
			"message": "无效的类目ID",
		})
		return
	}

	ctx := c.Request.Context()
	fields, err := ctrl.schemaService.Resolve(ctx, categoryID)
	if err != nil {
		// 字段源不可用：不给半截 schema，前端整页重试
		if errors.Is(err, service.ErrSourceUnavailable) {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"code":    503,
				"message": "字段定义源不可用: " + err.Error(),
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"code":    500,
			"message": "解析失败: " + err.Error(),
		})
		return
	}

	rules := ctrl.formService.BuildValidation(fields)
	initial := ctrl.formService.BuildInitialValues(fields, nil)

	c.JSON(http.StatusOK, gin.H{
		"code":    0,
		"message": "success",
		"data": dto.OfferSchemaResponse{
			CategoryID:    categoryID,
			Fields:        fields,
			Rules:         rules.Rules,
			InitialValues: initial,
		},
	})
}

// GetCategory 查询单个类目
// @Summary 按ID查询类目信息
// @Tags Schema
// @Produce json
// @Param category_id path int true "类目ID"
// @Success 200 {object} allegro.Category
// @Router /api/categories/{category_id} [get]
func (ctrl *SchemaController) GetCategory(c *gin.Context) {
	categoryIDStr := c.Param("category_id")
	categoryID, err := strconv.ParseInt(categoryIDStr, 10, 64)
	if err != nil || categoryID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"code":    400,
			"message": "无效的类目ID",
		})
		return
	}

	category, err := ctrl.categories.GetCategoryByID(c.Request.Context(), categoryID)
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"code":    503,
			"message": "类目源不可用: " + err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"code":    0,
		"message": "success",
		"data":    category,
	})
}

// MatchCategories 按商品名匹配候选类目
// @Summary 按商品名匹配候选类目
// @Tags Schema
// @Produce json
// @Param name query string true "商品名"
// @Success 200 {array} allegro.Category
// @Router /api/categories/match [get]
func (ctrl *SchemaController) MatchCategories(c *gin.Context) {
	name := c.Query("name")
	if name == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"code":    400,
			"message": "参数错误: 缺少 name",
		})
		return
	}

	matches, err := ctrl.categories.MatchCategory(c.Request.Context(), name)
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"code":    503,
			"message": "类目源不可用: " + err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"code":    0,
		"message": "success",
		"data":    matches,
	})
}

// ValidateValues 校验一份表单值
// @Summary 按类目规则校验表单值
// @Tags Schema
// @Accept json
// @Produce json
// @Param body body dto.ValidateRequest true "待校验的值"
// @Success 200 {object} map[string]interface{}
// @Router /api/offer-schema/validate [post]
func (ctrl *SchemaController) ValidateValues(c *gin.Context) {
	var req dto.ValidateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"code":    400,
			"message": "参数错误: " + err.Error(),
		})
		return
	}

	ctx := c.Request.Context()
	fields, err := ctrl.schemaService.Resolve(ctx, req.CategoryID)
	if err != nil {
		if errors.Is(err, service.ErrSourceUnavailable) {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"code":    503,
				"message": "字段定义源不可用: " + err.Error(),
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"code":    500,
			"message": "解析失败: " + err.Error(),
		})
		return
	}

	rules := ctrl.formService.BuildValidation(fields)
	if verr := ctrl.formService.Validate(rules, req.Values); verr != nil {
		// 校验失败可恢复：按字段回错误文案，前端改完重交
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"code":    422,
			"message": "校验失败",
			"data":    verr.Fields,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"code":    0,
		"message": "success",
	})
}
