package service

import (
	"fmt"
	"sync"

	"sell_that_sheet/internal/model"
)

// ==================== 草稿 ====================

// DraftAuction 工作会话里的一条竞拍草稿
// BaseValues 按基础字段名键入，CustomValues 按参数外部ID键入
type DraftAuction struct {
	LocalID      int64                 `json:"local_id"`
	CategoryID   int64                 `json:"category_id"`
	BaseValues   map[string]FieldValue `json:"base_values"`
	CustomValues map[string]FieldValue `json:"custom_values"`
	Translations model.JSONMap         `json:"translations"`
	PhotosetID   *int64                `json:"photoset_id"`
}

func copyValues(src map[string]FieldValue) map[string]FieldValue {
	dst := make(map[string]FieldValue, len(src))
	for k, v := range src {
		if v.Kind == ValueStrList {
			list := make([]string, len(v.List))
			copy(list, v.List)
			v.List = list
		}
		dst[k] = v
	}
	return dst
}

func (d *DraftAuction) clone() *DraftAuction {
	c := *d
	c.BaseValues = copyValues(d.BaseValues)
	c.CustomValues = copyValues(d.CustomValues)
	c.Translations = make(model.JSONMap, len(d.Translations))
	for k, v := range d.Translations {
		c.Translations[k] = v
	}
	return &c
}

// ==================== DraftStore ====================

// DraftStore 会话内存草稿仓：有序、不落库，装配成功后整体清空
type DraftStore struct {
	mu     sync.RWMutex
	drafts []*DraftAuction
	nextID int64
}

// NewDraftStore 创建草稿仓
func NewDraftStore() *DraftStore {
	return &DraftStore{nextID: 1}
}

// Add 追加草稿，分配会话内ID并返回
// 入仓即深拷贝，调用方后续改自己那份不影响仓内快照；
// 描述在此统一去首尾空行，存进去的就是装配要用的
func (s *DraftStore) Add(d *DraftAuction) *DraftAuction {
	s.mu.Lock()
	defer s.mu.Unlock()

	c := d.clone()
	c.LocalID = s.nextID
	s.nextID++
	if desc, ok := c.BaseValues["description"]; ok {
		c.BaseValues["description"] = Html(TrimEdgeBreaks(desc.AsString()))
	}
	s.drafts = append(s.drafts, c)
	return c.clone()
}

// Update 整体替换指定草稿的内容（LocalID 不变）
func (s *DraftStore) Update(localID int64, d *DraftAuction) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, cur := range s.drafts {
		if cur.LocalID == localID {
			c := d.clone()
			c.LocalID = localID
			if desc, ok := c.BaseValues["description"]; ok {
				c.BaseValues["description"] = Html(TrimEdgeBreaks(desc.AsString()))
			}
			s.drafts[i] = c
			return nil
		}
	}
	return fmt.Errorf("草稿不存在: %d", localID)
}

// Remove 删除指定草稿
func (s *DraftStore) Remove(localID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, cur := range s.drafts {
		if cur.LocalID == localID {
			s.drafts = append(s.drafts[:i], s.drafts[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("草稿不存在: %d", localID)
}

// List 按入仓顺序列出草稿；categoryID 为 -1 时不过滤类目
func (s *DraftStore) List(categoryID int64) []*DraftAuction {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*DraftAuction, 0, len(s.drafts))
	for _, d := range s.drafts {
		if categoryID >= 0 && d.CategoryID != categoryID {
			continue
		}
		out = append(out, d.clone())
	}
	return out
}

// Snapshot 取全量草稿快照，装配管线用
func (s *DraftStore) Snapshot() []*DraftAuction {
	return s.List(-1)
}

// Len 当前草稿数
func (s *DraftStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.drafts)
}

// Clear 清空草稿仓（装配成功后调用）
func (s *DraftStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.drafts = nil
}
