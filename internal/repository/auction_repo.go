package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"sell_that_sheet/internal/model"
)

// ==================== 仓储接口 ====================

// AuctionRepository 拍卖仓储接口
type AuctionRepository interface {
	Create(ctx context.Context, auction *model.Auction) error
	GetByID(ctx context.Context, id int64) (*model.Auction, error)
	ListByIDs(ctx context.Context, ids []int64) ([]model.Auction, error)
	UpdateFields(ctx context.Context, id int64, fields map[string]interface{}) error

	// Finalize 终化写入：只覆盖翻译快照和状态，可安全重试
	Finalize(ctx context.Context, id int64, translations model.JSONMap) error
}

// AuctionSetRepository 拍卖集仓储接口
type AuctionSetRepository interface {
	Create(ctx context.Context, set *model.AuctionSet) error
	GetByID(ctx context.Context, id int64) (*model.AuctionSet, error)
	List(ctx context.Context) ([]model.AuctionSet, error)
	UpdateFields(ctx context.Context, id int64, fields map[string]interface{}) error

	// 推送任务相关
	FindPendingPush(ctx context.Context, limit int) ([]*model.AuctionSet, error)
	MarkPushed(ctx context.Context, id int64) error
	MarkPushFailed(ctx context.Context, id int64, errMsg string) error
}

// ==================== Auction 仓储实现 ====================

type auctionRepo struct {
	db *gorm.DB
}

// NewAuctionRepository 创建拍卖仓储
func NewAuctionRepository(db *gorm.DB) AuctionRepository {
	return &auctionRepo{db: db}
}

func (r *auctionRepo) Create(ctx context.Context, auction *model.Auction) error {
	return r.db.WithContext(ctx).Create(auction).Error
}

func (r *auctionRepo) GetByID(ctx context.Context, id int64) (*model.Auction, error) {
	var auction model.Auction
	if err := r.db.WithContext(ctx).First(&auction, id).Error; err != nil {
		return nil, err
	}
	return &auction, nil
}

func (r *auctionRepo) ListByIDs(ctx context.Context, ids []int64) ([]model.Auction, error) {
	var auctions []model.Auction
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&auctions).Error; err != nil {
		return nil, err
	}

	// 按传入顺序重排（IN 查询不保序）
	byID := make(map[int64]model.Auction, len(auctions))
	for _, a := range auctions {
		byID[a.ID] = a
	}
	ordered := make([]model.Auction, 0, len(ids))
	for _, id := range ids {
		if a, ok := byID[id]; ok {
			ordered = append(ordered, a)
		}
	}
	return ordered, nil
}

func (r *auctionRepo) UpdateFields(ctx context.Context, id int64, fields map[string]interface{}) error {
	return r.db.WithContext(ctx).Model(&model.Auction{}).Where("id = ?", id).Updates(fields).Error
}

func (r *auctionRepo) Finalize(ctx context.Context, id int64, translations model.JSONMap) error {
	return r.db.WithContext(ctx).Model(&model.Auction{}).Where("id = ?", id).Updates(map[string]interface{}{
		"translated_params": translations,
		"status":            model.AuctionStatusFinalized,
	}).Error
}

// ==================== AuctionSet 仓储实现 ====================

type auctionSetRepo struct {
	db *gorm.DB
}

// NewAuctionSetRepository 创建拍卖集仓储
func NewAuctionSetRepository(db *gorm.DB) AuctionSetRepository {
	return &auctionSetRepo{db: db}
}

func (r *auctionSetRepo) Create(ctx context.Context, set *model.AuctionSet) error {
	return r.db.WithContext(ctx).Create(set).Error
}

func (r *auctionSetRepo) GetByID(ctx context.Context, id int64) (*model.AuctionSet, error) {
	var set model.AuctionSet
	if err := r.db.WithContext(ctx).First(&set, id).Error; err != nil {
		return nil, err
	}
	return &set, nil
}

func (r *auctionSetRepo) List(ctx context.Context) ([]model.AuctionSet, error) {
	var sets []model.AuctionSet
	if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&sets).Error; err != nil {
		return nil, err
	}
	return sets, nil
}

func (r *auctionSetRepo) UpdateFields(ctx context.Context, id int64, fields map[string]interface{}) error {
	return r.db.WithContext(ctx).Model(&model.AuctionSet{}).Where("id = ?", id).Updates(fields).Error
}

func (r *auctionSetRepo) FindPendingPush(ctx context.Context, limit int) ([]*model.AuctionSet, error) {
	var sets []*model.AuctionSet
	err := r.db.WithContext(ctx).
		Where("push_status = ?", model.PushStatusPending).
		Order("id").
		Limit(limit).
		Find(&sets).Error
	return sets, err
}

func (r *auctionSetRepo) MarkPushed(ctx context.Context, id int64) error {
	now := time.Now()
	return r.UpdateFields(ctx, id, map[string]interface{}{
		"push_status": model.PushStatusDone,
		"push_error":  "",
		"pushed_at":   &now,
	})
}

func (r *auctionSetRepo) MarkPushFailed(ctx context.Context, id int64, errMsg string) error {
	return r.UpdateFields(ctx, id, map[string]interface{}{
		"push_status": model.PushStatusFailed,
		"push_error":  errMsg,
	})
}
