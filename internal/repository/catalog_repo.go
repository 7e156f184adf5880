package repository

import (
	"context"

	"gorm.io/gorm"

	"sell_that_sheet/internal/model"
)

// ==================== 仓储接口 ====================

// CategoryParameterRepository 自定义参数目录仓储接口
type CategoryParameterRepository interface {
	Create(ctx context.Context, param *model.CategoryParameter) error
	GetByID(ctx context.Context, id int64) (*model.CategoryParameter, error)
	Update(ctx context.Context, param *model.CategoryParameter) error
	Delete(ctx context.Context, id int64) error

	// ListForCategory 取对指定类目生效的目录项：该类目专属 + 全局(category_id IS NULL)
	// 按目录顺序（主键序）返回
	ListForCategory(ctx context.Context, categoryID int64) ([]model.CategoryParameter, error)

	List(ctx context.Context) ([]model.CategoryParameter, error)
}

// ==================== 仓储实现 ====================

type categoryParameterRepo struct {
	db *gorm.DB
}

// NewCategoryParameterRepository 创建自定义参数目录仓储
func NewCategoryParameterRepository(db *gorm.DB) CategoryParameterRepository {
	return &categoryParameterRepo{db: db}
}

func (r *categoryParameterRepo) Create(ctx context.Context, param *model.CategoryParameter) error {
	return r.db.WithContext(ctx).Create(param).Error
}

func (r *categoryParameterRepo) GetByID(ctx context.Context, id int64) (*model.CategoryParameter, error) {
	var param model.CategoryParameter
	if err := r.db.WithContext(ctx).First(&param, id).Error; err != nil {
		return nil, err
	}
	return &param, nil
}

func (r *categoryParameterRepo) Update(ctx context.Context, param *model.CategoryParameter) error {
	return r.db.WithContext(ctx).Save(param).Error
}

func (r *categoryParameterRepo) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&model.CategoryParameter{}, id).Error
}

func (r *categoryParameterRepo) ListForCategory(ctx context.Context, categoryID int64) ([]model.CategoryParameter, error) {
	var params []model.CategoryParameter
	err := r.db.WithContext(ctx).
		Where("category_id = ? OR category_id IS NULL", categoryID).
		Order("id").
		Find(&params).Error
	return params, err
}

func (r *categoryParameterRepo) List(ctx context.Context) ([]model.CategoryParameter, error) {
	var params []model.CategoryParameter
	if err := r.db.WithContext(ctx).Order("id").Find(&params).Error; err != nil {
		return nil, err
	}
	return params, nil
}
