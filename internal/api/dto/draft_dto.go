package dto

import (
	"sell_that_sheet/internal/model"
	"sell_that_sheet/internal/service"
)

// DraftRequest 新增/更新草稿
type DraftRequest struct {
	CategoryID   int64                         `json:"category_id" binding:"required"`
	BaseValues   map[string]service.FieldValue `json:"base_values" binding:"required"`
	CustomValues map[string]service.FieldValue `json:"custom_values"`
	Translations model.JSONMap                 `json:"translations"`
	PhotosetID   *int64                        `json:"photoset_id"`
}

// AssembleRequest 装配请求：把当前会话的全部草稿批量落库
type AssembleRequest struct {
	SetName string                `json:"set_name" binding:"required"`
	Path    []service.FolderEntry `json:"path" binding:"required"`
	OwnerID *int64                `json:"owner_id"`
}

// AssembleResult 装配结果
type AssembleResult struct {
	Set        *model.AuctionSet `json:"set"`
	AuctionIDs []int64           `json:"auction_ids"`
}
