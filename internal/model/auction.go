package model

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// ==================== 状态常量 ====================

const (
	// 拍卖生命周期：创建后参数和翻译逐条落库，全部就绪后再做一次终化写入
	AuctionStatusCreated   = "created"
	AuctionStatusFinalized = "finalized"

	// 拍卖集推送状态（Baselinker）
	PushStatusNone    = 0 // 未推送
	PushStatusPending = 1 // 待推送
	PushStatusDone    = 2 // 已推送
	PushStatusFailed  = 3 // 推送失败
)

// ==================== 数据库模型 ====================

// Auction 已落库的拍卖记录
// 基础字段 + 通过 AuctionParameter 关联的类目/自定义参数 + 翻译快照
type Auction struct {
	ID            int64          `gorm:"primaryKey;autoIncrement" json:"id"`
	CreatedAt     time.Time      `gorm:"index" json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
	Name          string         `gorm:"size:255;not null;comment:标题" json:"name"`
	PricePLN      float64        `gorm:"comment:价格(PLN)" json:"price_pln"`
	PriceEuro     float64        `gorm:"comment:价格(EUR)" json:"price_euro"`
	Tags          string         `gorm:"type:text;comment:标签" json:"tags"`
	SerialNumbers string         `gorm:"type:text;comment:序列号" json:"serial_numbers"`
	ShipmentPrice float64        `gorm:"comment:运费" json:"shipment_price"`
	Category      int64          `gorm:"index;comment:Allegro类目ID" json:"category"`
	Amount        float64        `gorm:"default:1;comment:数量" json:"amount"`
	Description   string         `gorm:"type:text;comment:富文本描述" json:"description"`
	PhotosetID    int64          `gorm:"index;comment:图集ID" json:"photoset"`

	// 翻译快照：{"de": {"custom": {"<name_de>": <值>}}}
	// 只有处理完全部自定义参数后才完整，所以创建后还有一次终化更新
	TranslatedParams JSONMap `gorm:"type:json;comment:翻译参数快照" json:"translated_params"`

	Status string `gorm:"size:32;index;default:created;comment:生命周期状态" json:"status"`
}

func (*Auction) TableName() string {
	return "auctions"
}

// AuctionSet 一次装配产出的拍卖批次
type AuctionSet struct {
	ID                int64                      `gorm:"primaryKey;autoIncrement" json:"id"`
	CreatedAt         time.Time                  `gorm:"index" json:"created_at"`
	UpdatedAt         time.Time                  `json:"updated_at"`
	DeletedAt         gorm.DeletedAt             `gorm:"index" json:"-"`
	Name              string                     `gorm:"size:255;not null;comment:批次名称" json:"name"`
	DirectoryLocation string                     `gorm:"size:1024;comment:图片目录" json:"directory_location"`
	OwnerID           *int64                     `gorm:"index;comment:归属人ID" json:"owner"`
	AuctionIDs        datatypes.JSONSlice[int64] `gorm:"comment:成员拍卖ID(保序)" json:"auctions"`
	ShareToken        string                     `gorm:"size:64;index;comment:外部分享令牌" json:"share_token"`
	PushStatus        int                        `gorm:"index;default:0;comment:Baselinker推送状态" json:"push_status"`
	PushError         string                     `gorm:"size:1024;comment:推送错误信息" json:"push_error"`
	PushedAt          *time.Time                 `json:"pushed_at"`
}

func (*AuctionSet) TableName() string {
	return "auction_sets"
}
