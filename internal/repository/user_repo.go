package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"sell_that_sheet/internal/model"
)

// ==================== 仓储接口 ====================

// UserRepository 用户仓储接口
type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	FindByUsername(ctx context.Context, username string) (*model.User, error)
	ListByGroup(ctx context.Context, group string) ([]model.User, error)
}

// DescriptionTemplateRepository 描述模板仓储接口
type DescriptionTemplateRepository interface {
	Create(ctx context.Context, tpl *model.DescriptionTemplate) error
	ListByOwner(ctx context.Context, ownerID int64) ([]model.DescriptionTemplate, error)
	Delete(ctx context.Context, id int64) error
}

// ==================== User 仓储实现 ====================

type userRepo struct {
	db *gorm.DB
}

// NewUserRepository 创建用户仓储
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepo{db: db}
}

func (r *userRepo) Create(ctx context.Context, user *model.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *userRepo) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	var user model.User
	err := r.db.WithContext(ctx).Where("username = ?", username).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepo) ListByGroup(ctx context.Context, group string) ([]model.User, error) {
	var users []model.User
	err := r.db.WithContext(ctx).Where("user_group = ?", group).Order("username").Find(&users).Error
	return users, err
}

// ==================== DescriptionTemplate 仓储实现 ====================

type descriptionTemplateRepo struct {
	db *gorm.DB
}

// NewDescriptionTemplateRepository 创建描述模板仓储
func NewDescriptionTemplateRepository(db *gorm.DB) DescriptionTemplateRepository {
	return &descriptionTemplateRepo{db: db}
}

func (r *descriptionTemplateRepo) Create(ctx context.Context, tpl *model.DescriptionTemplate) error {
	return r.db.WithContext(ctx).Create(tpl).Error
}

func (r *descriptionTemplateRepo) ListByOwner(ctx context.Context, ownerID int64) ([]model.DescriptionTemplate, error) {
	var tpls []model.DescriptionTemplate
	err := r.db.WithContext(ctx).Where("owner_id = ?", ownerID).Order("id").Find(&tpls).Error
	return tpls, err
}

func (r *descriptionTemplateRepo) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&model.DescriptionTemplate{}, id).Error
}
