package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"sell_that_sheet/internal/model"
	"sell_that_sheet/internal/repository"
)

// ==================== AuctionSetService ====================

// AuctionSetService 拍卖集查询与推送管理
type AuctionSetService struct {
	sets     repository.AuctionSetRepository
	auctions repository.AuctionRepository
}

// NewAuctionSetService 创建拍卖集服务
func NewAuctionSetService(sets repository.AuctionSetRepository, auctions repository.AuctionRepository) *AuctionSetService {
	return &AuctionSetService{sets: sets, auctions: auctions}
}

// List 按创建时间倒序列出全部拍卖集
func (s *AuctionSetService) List(ctx context.Context) ([]model.AuctionSet, error) {
	return s.sets.List(ctx)
}

// AuctionSetDetail 拍卖集详情：集合行 + 按批次顺序展开的成员拍卖
type AuctionSetDetail struct {
	Set      *model.AuctionSet `json:"set"`
	Auctions []model.Auction   `json:"auctions"`
}

// GetDetail 取拍卖集和成员拍卖（保持批次内顺序）
func (s *AuctionSetService) GetDetail(ctx context.Context, id int64) (*AuctionSetDetail, error) {
	set, err := s.sets.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	auctions, err := s.auctions.ListByIDs(ctx, set.AuctionIDs)
	if err != nil {
		return nil, err
	}
	return &AuctionSetDetail{Set: set, Auctions: auctions}, nil
}

// RequestPush 把拍卖集标记为待推送，由定时任务异步执行
func (s *AuctionSetService) RequestPush(ctx context.Context, id int64) error {
	set, err := s.sets.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if set.PushStatus == model.PushStatusPending {
		return fmt.Errorf("拍卖集 %d 已在推送队列", id)
	}
	return s.sets.UpdateFields(ctx, id, map[string]interface{}{
		"push_status": model.PushStatusPending,
		"push_error":  "",
	})
}

// RotateShareToken 重新生成外部分享令牌
func (s *AuctionSetService) RotateShareToken(ctx context.Context, id int64) (string, error) {
	token := uuid.NewString()
	if err := s.sets.UpdateFields(ctx, id, map[string]interface{}{"share_token": token}); err != nil {
		return "", err
	}
	return token, nil
}
