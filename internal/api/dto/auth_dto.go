package dto

// LoginRequest 登录请求
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// RegisterRequest 注册请求
type RegisterRequest struct {
	Username string `json:"username" binding:"required,min=3,max=64"`
	Password string `json:"password" binding:"required,min=8"`
	Role     string `json:"role"`
	Group    string `json:"group"`
}

// UserBrief 用户摘要（归属人下拉用）
type UserBrief struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
}
