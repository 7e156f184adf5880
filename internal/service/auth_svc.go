package service

import (
	"context"
	"errors"

	"golang.org/x/crypto/bcrypt"

	"sell_that_sheet/internal/middleware"
	"sell_that_sheet/internal/model"
	"sell_that_sheet/internal/repository"
)

// ErrInvalidCredentials 用户名或密码错误
var ErrInvalidCredentials = errors.New("用户名或密码错误")

// ==================== AuthService ====================

// AuthService 认证服务
type AuthService struct {
	users repository.UserRepository
}

// NewAuthService 创建认证服务
func NewAuthService(users repository.UserRepository) *AuthService {
	return &AuthService{users: users}
}

// LoginResult 登录结果
type LoginResult struct {
	AccessToken  string      `json:"access_token"`
	RefreshToken string      `json:"refresh_token"`
	User         *model.User `json:"user"`
}

// Login 用户名密码登录，成功签发 Token 对
func (s *AuthService) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	access, refresh, err := middleware.GenerateTokenPair(user.ID, user.Username, user.Role)
	if err != nil {
		return nil, err
	}
	return &LoginResult{AccessToken: access, RefreshToken: refresh, User: user}, nil
}

// Register 创建用户，密码做 bcrypt 散列
func (s *AuthService) Register(ctx context.Context, username, password, role, group string) (*model.User, error) {
	existing, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, errors.New("用户名已存在")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Username:     username,
		PasswordHash: string(hash),
		Role:         role,
		UserGroup:    group,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// GroupUsers 列出指定组的用户（拍卖集归属人下拉用）
func (s *AuthService) GroupUsers(ctx context.Context, group string) ([]model.User, error) {
	return s.users.ListByGroup(ctx, group)
}
