package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"sell_that_sheet/internal/api/dto"
	"sell_that_sheet/internal/service"
)

// ==================== 控制器 ====================

// AuthController 认证控制器
type AuthController struct {
	authService *service.AuthService
}

func NewAuthController(authService *service.AuthService) *AuthController {
	return &AuthController{authService: authService}
}

// ==================== API 方法 ====================

// Login 登录
// @Summary 用户名密码登录
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body dto.LoginRequest true "登录请求"
// @Success 200 {object} service.LoginResult
// @Router /api/auth/login [post]
func (ctrl *AuthController) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"code":    400,
			"message": "参数错误: " + err.Error(),
		})
		return
	}

	ctx := c.Request.Context()
	result, err := ctrl.authService.Login(ctx, req.Username, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{
				"code":    401,
				"message": err.Error(),
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"code":    500,
			"message": "登录失败: " + err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"code":    0,
		"message": "success",
		"data":    result,
	})
}

// Register 注册
// @Summary 创建用户
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body dto.RegisterRequest true "注册请求"
// @Success 201 {object} model.User
// @Router /api/auth/register [post]
func (ctrl *AuthController) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"code":    400,
			"message": "参数错误: " + err.Error(),
		})
		return
	}

	ctx := c.Request.Context()
	user, err := ctrl.authService.Register(ctx, req.Username, req.Password, req.Role, req.Group)
	if err != nil {
		c.JSON(http.StatusConflict, gin.H{
			"code":    409,
			"message": err.Error(),
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"code":    0,
		"message": "success",
		"data":    user,
	})
}

// ListGroupUsers 列出组内用户
// @Summary 列出指定组的用户（归属人下拉）
// @Tags Auth
// @Produce json
// @Param group query string true "用户组"
// @Success 200 {array} dto.UserBrief
// @Router /api/users [get]
func (ctrl *AuthController) ListGroupUsers(c *gin.Context) {
	group := c.Query("group")
	if group == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"code":    400,
			"message": "缺少用户组参数",
		})
		return
	}

	ctx := c.Request.Context()
	users, err := ctrl.authService.GroupUsers(ctx, group)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"code":    500,
			"message": "查询失败: " + err.Error(),
		})
		return
	}

	briefs := make([]dto.UserBrief, 0, len(users))
	for _, u := range users {
		briefs = append(briefs, dto.UserBrief{ID: u.ID, Username: u.Username})
	}

	c.JSON(http.StatusOK, gin.H{
		"code":    0,
		"message": "success",
		"data":    briefs,
	})
}
