package model

import (
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"
)

// ==================== 外部参数 ID ====================

// CustomParamPrefix 自定义参数外部ID前缀，区别于 Allegro 原生参数ID
const CustomParamPrefix = "custom_"

// CustomParamExternalID 根据自定义参数主键生成外部ID
func CustomParamExternalID(id int64) string {
	return fmt.Sprintf("%s%d", CustomParamPrefix, id)
}

// IsCustomParam 判断外部ID是否指向自定义参数
func IsCustomParam(externalID string) bool {
	return strings.HasPrefix(externalID, CustomParamPrefix)
}

// ==================== 数据库模型 ====================

// Parameter 参数注册表
// 任何基础/类目/自定义属性在内部的唯一身份，按外部ID（allegro_id）惰性登记。
// 未知的外部ID不会被拒绝，只会最小化落一行，名称类型留待运营后补。
type Parameter struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	AllegroID string    `gorm:"size:64;uniqueIndex;not null;comment:外部参数ID" json:"allegro_id"`
	Name      string    `gorm:"size:255;comment:参数名称" json:"name"`
	Type      string    `gorm:"size:32;comment:参数类型" json:"type"`
}

func (*Parameter) TableName() string {
	return "parameters"
}

// AuctionParameter 拍卖-参数关联行
// 每个非空参数值对应一行；多选值用固定分隔符拼接存储
type AuctionParameter struct {
	ID          int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	ParameterID int64     `gorm:"index;not null;comment:参数ID" json:"parameter"`
	AuctionID   int64     `gorm:"index;not null;comment:拍卖ID" json:"auction"`
	ValueName   string    `gorm:"type:text;comment:序列化后的参数值" json:"value_name"`
	ValueID     int64     `gorm:"comment:历史遗留值ID" json:"value_id"`
}

func (*AuctionParameter) TableName() string {
	return "auction_parameters"
}

// CategoryParameter 卖家自定义参数目录
// category_id 为 NULL 表示全局参数，对所有类目生效
type CategoryParameter struct {
	ID               int64          `gorm:"primaryKey;autoIncrement" json:"id"`
	CreatedAt        time.Time      `json:"created_at"`
	UpdatedAt        time.Time      `json:"updated_at"`
	DeletedAt        gorm.DeletedAt `gorm:"index" json:"-"`
	CategoryID       *int64         `gorm:"index;comment:类目ID，NULL为全局" json:"category_id"`
	NamePL           string         `gorm:"size:255;not null;comment:波兰语名称" json:"name_pl"`
	NameDE           string         `gorm:"size:255;comment:德语名称" json:"name_de"`
	ParameterType    string         `gorm:"size:16;default:string;comment:single/multi/numeric/string" json:"parameter_type"`
	PossibleValuesPL StringSlice    `gorm:"type:json;comment:波兰语可选值" json:"possible_values_pl"`
	PossibleValuesDE StringSlice    `gorm:"type:json;comment:德语可选值(与PL按下标配对)" json:"possible_values_de"`
}

func (*CategoryParameter) TableName() string {
	return "category_parameters"
}

// ExternalID 目录项的外部参数ID
func (p *CategoryParameter) ExternalID() string {
	return CustomParamExternalID(p.ID)
}
