package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"sell_that_sheet/internal/model"
)

// ==================== 仓储接口 ====================

// ParameterRepository 参数注册表仓储接口
type ParameterRepository interface {
	// FindByAllegroID 按外部ID查找，未登记返回 (nil, nil)
	FindByAllegroID(ctx context.Context, allegroID string) (*model.Parameter, error)

	// GetOrCreate 按外部ID取行，不存在时用给定名称/类型登记
	// upsert 语义：并发装配同时登记同一外部ID也只会落一行
	GetOrCreate(ctx context.Context, allegroID, name, paramType string) (*model.Parameter, error)

	List(ctx context.Context) ([]model.Parameter, error)
}

// AuctionParameterRepository 拍卖参数关联仓储接口
type AuctionParameterRepository interface {
	Create(ctx context.Context, link *model.AuctionParameter) error
	ListByAuctionID(ctx context.Context, auctionID int64) ([]model.AuctionParameter, error)
	CountByAuctionID(ctx context.Context, auctionID int64) (int64, error)
}

// ==================== Parameter 仓储实现 ====================

type parameterRepo struct {
	db *gorm.DB
}

// NewParameterRepository 创建参数注册表仓储
func NewParameterRepository(db *gorm.DB) ParameterRepository {
	return &parameterRepo{db: db}
}

func (r *parameterRepo) FindByAllegroID(ctx context.Context, allegroID string) (*model.Parameter, error) {
	var param model.Parameter
	err := r.db.WithContext(ctx).Where("allegro_id = ?", allegroID).First(&param).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &param, nil
}

func (r *parameterRepo) GetOrCreate(ctx context.Context, allegroID, name, paramType string) (*model.Parameter, error) {
	// 先插：allegro_id 唯一索引冲突时什么都不做
	candidate := model.Parameter{
		AllegroID: allegroID,
		Name:      name,
		Type:      paramType,
	}
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "allegro_id"}},
			DoNothing: true,
		}).
		Create(&candidate).Error
	if err != nil {
		return nil, err
	}

	// 再读：无论是本次插入还是别人先插的，读回的都是同一行
	var param model.Parameter
	if err := r.db.WithContext(ctx).Where("allegro_id = ?", allegroID).First(&param).Error; err != nil {
		return nil, err
	}
	return &param, nil
}

func (r *parameterRepo) List(ctx context.Context) ([]model.Parameter, error) {
	var params []model.Parameter
	if err := r.db.WithContext(ctx).Order("id").Find(&params).Error; err != nil {
		return nil, err
	}
	return params, nil
}

// ==================== AuctionParameter 仓储实现 ====================

type auctionParameterRepo struct {
	db *gorm.DB
}

// NewAuctionParameterRepository 创建拍卖参数关联仓储
func NewAuctionParameterRepository(db *gorm.DB) AuctionParameterRepository {
	return &auctionParameterRepo{db: db}
}

func (r *auctionParameterRepo) Create(ctx context.Context, link *model.AuctionParameter) error {
	return r.db.WithContext(ctx).Create(link).Error
}

func (r *auctionParameterRepo) ListByAuctionID(ctx context.Context, auctionID int64) ([]model.AuctionParameter, error) {
	var links []model.AuctionParameter
	err := r.db.WithContext(ctx).Where("auction_id = ?", auctionID).Order("id").Find(&links).Error
	return links, err
}

func (r *auctionParameterRepo) CountByAuctionID(ctx context.Context, auctionID int64) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.AuctionParameter{}).Where("auction_id = ?", auctionID).Count(&count).Error
	return count, err
}
