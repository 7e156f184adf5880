package model

import (
	"time"

	"gorm.io/datatypes"
)

// Photo 已登记的照片
// 名称唯一，重复登记返回同一行（按名幂等）
type Photo struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Name      string    `gorm:"size:512;uniqueIndex;not null;comment:文件名" json:"name"`
}

func (*Photo) TableName() string {
	return "photos"
}

// PhotoSet 图集：有序照片集合 + 指定缩略图
// 缩略图必须是 photos 的成员
type PhotoSet struct {
	ID                int64                      `gorm:"primaryKey;autoIncrement" json:"id"`
	CreatedAt         time.Time                  `json:"created_at"`
	UpdatedAt         time.Time                  `json:"updated_at"`
	DirectoryLocation string                     `gorm:"size:1024;comment:照片目录" json:"directory_location"`
	ThumbnailID       int64                      `gorm:"not null;comment:缩略图照片ID" json:"thumbnail"`
	PhotoIDs          datatypes.JSONSlice[int64] `gorm:"comment:照片ID(保序)" json:"photos"`
}

func (*PhotoSet) TableName() string {
	return "photo_sets"
}
