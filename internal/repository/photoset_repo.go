package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"sell_that_sheet/internal/model"
)

// ==================== 仓储接口 ====================

// PhotoRepository 照片仓储接口
type PhotoRepository interface {
	// Register 按名登记照片（幂等）：同名照片返回已有行
	Register(ctx context.Context, name string) (*model.Photo, error)
	GetByID(ctx context.Context, id int64) (*model.Photo, error)
}

// PhotoSetRepository 图集仓储接口
type PhotoSetRepository interface {
	Create(ctx context.Context, set *model.PhotoSet) error
	GetByID(ctx context.Context, id int64) (*model.PhotoSet, error)
}

// ==================== Photo 仓储实现 ====================

type photoRepo struct {
	db *gorm.DB
}

// NewPhotoRepository 创建照片仓储
func NewPhotoRepository(db *gorm.DB) PhotoRepository {
	return &photoRepo{db: db}
}

func (r *photoRepo) Register(ctx context.Context, name string) (*model.Photo, error) {
	// 先插：name 唯一索引冲突时什么都不做。照片登记是并发发起的，
	// 同名两次 SELECT 都扑空后只能有一边插入成功
	candidate := model.Photo{Name: name}
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "name"}},
			DoNothing: true,
		}).
		Create(&candidate).Error
	if err != nil {
		return nil, err
	}

	// 再读：无论是本次插入还是别人先插的，读回的都是同一行
	var photo model.Photo
	if err := r.db.WithContext(ctx).Where("name = ?", name).First(&photo).Error; err != nil {
		return nil, err
	}
	return &photo, nil
}

func (r *photoRepo) GetByID(ctx context.Context, id int64) (*model.Photo, error) {
	var photo model.Photo
	if err := r.db.WithContext(ctx).First(&photo, id).Error; err != nil {
		return nil, err
	}
	return &photo, nil
}

// ==================== PhotoSet 仓储实现 ====================

type photoSetRepo struct {
	db *gorm.DB
}

// NewPhotoSetRepository 创建图集仓储
func NewPhotoSetRepository(db *gorm.DB) PhotoSetRepository {
	return &photoSetRepo{db: db}
}

func (r *photoSetRepo) Create(ctx context.Context, set *model.PhotoSet) error {
	return r.db.WithContext(ctx).Create(set).Error
}

func (r *photoSetRepo) GetByID(ctx context.Context, id int64) (*model.PhotoSet, error) {
	var set model.PhotoSet
	if err := r.db.WithContext(ctx).First(&set, id).Error; err != nil {
		return nil, err
	}
	return &set, nil
}
