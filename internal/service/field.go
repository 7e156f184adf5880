package service

import (
	"encoding/json"
	"errors"
	"strconv"
	"strings"
)

// ==================== 字段定义 ====================

// FieldOrigin 字段来源
type FieldOrigin string

const (
	OriginBase    FieldOrigin = "base"    // 固定基础字段
	OriginAllegro FieldOrigin = "allegro" // Allegro 类目参数
	OriginCustom  FieldOrigin = "custom"  // 卖家自定义参数
)

// FieldKind 字段值类型
type FieldKind string

const (
	KindString   FieldKind = "string"
	KindFloat    FieldKind = "float"
	KindSingle   FieldKind = "single" // 单选
	KindMulti    FieldKind = "multi"  // 多选
	KindRichText FieldKind = "richtext"
)

// Restrictions 取值约束
type Restrictions struct {
	Min             *float64 `json:"min,omitempty"`
	Max             *float64 `json:"max,omitempty"`
	MinLength       *int     `json:"min_length,omitempty"`
	MaxLength       *int     `json:"max_length,omitempty"`
	Precision       *int     `json:"precision,omitempty"`
	MultipleChoices bool     `json:"multiple_choices"`
}

// Choice 选择型字段的可选值
type Choice struct {
	ID    string `json:"id"`
	Value string `json:"value"`
}

// FieldSchema 统一后的字段定义
// ID 与 Name 在同一份解析结果内都唯一：Name 是工作值表的键，ID 是外部参数ID
type FieldSchema struct {
	ID           string       `json:"id"`
	Name         string       `json:"name"`
	DisplayName  string       `json:"display_name"`
	Origin       FieldOrigin  `json:"origin"`
	Kind         FieldKind    `json:"kind"`
	Required     bool         `json:"required"`
	Disabled     bool         `json:"disabled"`
	Restrictions Restrictions `json:"restrictions"`
	Choices      []Choice     `json:"choices,omitempty"`

	// Value 模板预置值（如 category 预填类目ID、photoset 预填图集ID）
	Value FieldValue `json:"value"`
}

// ==================== 字段值（带标签联合） ====================

// ValueKind 字段值的具体形态
type ValueKind int

const (
	ValueEmpty ValueKind = iota
	ValueStr
	ValueNum
	ValueStrList
	ValueHtml
)

// FieldValue 字段值
// 校验器和序列化器对 Kind 做穷举匹配，杜绝按字符串标签乱转型
type FieldValue struct {
	Kind ValueKind
	Str  string
	Num  float64
	List []string
}

// 构造函数

func Empty() FieldValue        { return FieldValue{Kind: ValueEmpty} }
func Str(s string) FieldValue  { return FieldValue{Kind: ValueStr, Str: s} }
func Num(n float64) FieldValue { return FieldValue{Kind: ValueNum, Num: n} }

func StrList(items ...string) FieldValue {
	if items == nil {
		items = []string{}
	}
	return FieldValue{Kind: ValueStrList, List: items}
}

func Html(s string) FieldValue { return FieldValue{Kind: ValueHtml, Str: s} }

// IsEmpty 值是否为空（空值不会落 AuctionParameter）
func (v FieldValue) IsEmpty() bool {
	switch v.Kind {
	case ValueEmpty:
		return true
	case ValueStr, ValueHtml:
		return v.Str == ""
	case ValueNum:
		return false
	case ValueStrList:
		return len(v.List) == 0
	default:
		return true
	}
}

// ParamValueSeparator 多选值序列化分隔符
const ParamValueSeparator = "|"

// Serialize 序列化为落库字符串：列表按固定分隔符拼接，其余取字符串形式
func (v FieldValue) Serialize() string {
	switch v.Kind {
	case ValueStr, ValueHtml:
		return v.Str
	case ValueNum:
		return strconv.FormatFloat(v.Num, 'f', -1, 64)
	case ValueStrList:
		return strings.Join(v.List, ParamValueSeparator)
	default:
		return ""
	}
}

// AsString 字符串视图
func (v FieldValue) AsString() string {
	return v.Serialize()
}

// AsFloat 数值视图：数值原样，字符串尝试解析，解析不了返回 false
func (v FieldValue) AsFloat() (float64, bool) {
	switch v.Kind {
	case ValueNum:
		return v.Num, true
	case ValueStr, ValueHtml:
		f, err := strconv.ParseFloat(strings.TrimSpace(v.Str), 64)
		return f, err == nil
	default:
		return 0, false
	}
}

// ==================== JSON 编解码 ====================

// MarshalJSON 按自然 JSON 形态输出：字符串/数字/数组
func (v FieldValue) MarshalJSON() ([]byte, error) {
	switch v.Kind {
	case ValueEmpty:
		return json.Marshal("")
	case ValueStr, ValueHtml:
		return json.Marshal(v.Str)
	case ValueNum:
		return json.Marshal(v.Num)
	case ValueStrList:
		return json.Marshal(v.List)
	default:
		return nil, errors.New("unknown value kind")
	}
}

// UnmarshalJSON 从自然 JSON 形态还原
func (v *FieldValue) UnmarshalJSON(data []byte) error {
	var raw interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	switch val := raw.(type) {
	case nil:
		*v = FieldValue{Kind: ValueEmpty}
	case string:
		if val == "" {
			*v = FieldValue{Kind: ValueEmpty}
		} else {
			*v = Str(val)
		}
	case float64:
		*v = Num(val)
	case []interface{}:
		items := make([]string, 0, len(val))
		for _, item := range val {
			s, ok := item.(string)
			if !ok {
				return errors.New("列表型字段值只接受字符串元素")
			}
			items = append(items, s)
		}
		*v = StrList(items...)
	default:
		return errors.New("不支持的字段值类型")
	}
	return nil
}
