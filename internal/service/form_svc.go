package service

import (
	"fmt"
	"regexp"
	"strings"
)

// ==================== 常量 ====================

// EmptyDescription 新建竞拍时的描述占位，保证富文本编辑器有可视高度
const EmptyDescription = "<br/><br/><br/><br/><br/><br/><br/><br/><br/><br/><br/><br/>"

// edgeBreaksRe 匹配富文本首尾的空行：裸 <br>（任意自闭合写法）
// 或包着 <br> 的空 <p> 段落，连续多个一并吃掉
var edgeBreaksRe = regexp.MustCompile(`(?i)^(<br\s*/?>|<p>\s*<br\s*/?>\s*</p>)+|(<br\s*/?>|<p>\s*<br\s*/?>\s*</p>)+$`)

// TrimEdgeBreaks 去掉描述首尾的空行标签，中间内容不动
func TrimEdgeBreaks(html string) string {
	return edgeBreaksRe.ReplaceAllString(html, "")
}

// ==================== 校验规则 ====================

// FieldRule 由字段定义合成的单字段校验规则
type FieldRule struct {
	Name        string      `json:"name"`
	ID          string      `json:"id"`
	Origin      FieldOrigin `json:"origin"`
	DisplayName string      `json:"display_name"`
	Kind        FieldKind   `json:"kind"`
	Required    bool        `json:"required"`
	Restrictions
}

// ValidationRuleSet 一个类目表单的全部校验规则，按字段名索引
type ValidationRuleSet struct {
	Rules []FieldRule
}

// ValidationError 表单校验失败，按字段名收集波兰语错误文案
type ValidationError struct {
	Fields map[string]string `json:"fields"`
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("表单校验失败: %d 个字段不合法", len(e.Fields))
}

// ==================== FormService ====================

// FormService 表单合成服务：从字段 schema 生成校验规则和初始值
type FormService struct {
	defaults map[string]FieldValue
}

// NewFormService 创建表单服务；defaults 为空时用内置默认值表
func NewFormService(defaults map[string]FieldValue) *FormService {
	if defaults == nil {
		defaults = DefaultValueTable()
	}
	return &FormService{defaults: defaults}
}

// DefaultValueTable 内置默认值表，按字段名键入
// 字段名随市场文案变动会让条目失配，保持可替换就是为了运营能整表换掉
func DefaultValueTable() map[string]FieldValue {
	return map[string]FieldValue{
		"Wersja":                        Str("Europejska"),
		"Typ samochodu":                 StrList("4x4/SUV", "Samochody osobowe"),
		"amount":                        Num(1),
		"Stan":                          Str("Używany"),
		"Jakość części (zgodnie z GVO)": Str("Q - oryginał z logo producenta części (OEM, OES)"),
		"Rodzaj lampy":                  Str("dedykowana"),
		"description":                   Html(EmptyDescription),
	}
}

// BuildValidation 由字段 schema 合成校验规则集
// 禁用字段不进规则：用户改不了的值校验了也没意义
func (s *FormService) BuildValidation(fields []FieldSchema) *ValidationRuleSet {
	rules := make([]FieldRule, 0, len(fields))
	for _, f := range fields {
		if f.Disabled {
			continue
		}
		rules = append(rules, FieldRule{
			Name:         f.Name,
			ID:           f.ID,
			Origin:       f.Origin,
			DisplayName:  f.DisplayName,
			Kind:         f.Kind,
			Required:     s.isRequired(f),
			Restrictions: f.Restrictions,
		})
	}
	return &ValidationRuleSet{Rules: rules}
}

// isRequired 必填以市场声明为准，但字段名含 "Numer" 的一律豁免：
// 这类序列号参数市场标了必填，实际录入时经常拿不到
func (s *FormService) isRequired(f FieldSchema) bool {
	if !f.Required {
		return false
	}
	return !strings.Contains(f.Name, "Numer")
}

// Validate 按规则集校验一份工作值表（按字段名键入）
// 全部合法返回 nil；否则返回按字段收集的波兰语文案
func (s *FormService) Validate(rules *ValidationRuleSet, values map[string]FieldValue) *ValidationError {
	errs := make(map[string]string)
	for _, r := range rules.Rules {
		v, ok := values[r.Name]
		if !ok {
			v = Empty()
		}
		if msg := validateField(r, v); msg != "" {
			errs[r.Name] = msg
		}
	}
	if len(errs) == 0 {
		return nil
	}
	return &ValidationError{Fields: errs}
}

func validateField(r FieldRule, v FieldValue) string {
	if v.IsEmpty() {
		if r.Required {
			return fmt.Sprintf("Pole %s jest wymagane", r.DisplayName)
		}
		return ""
	}

	switch r.Kind {
	case KindFloat:
		n, ok := v.AsFloat()
		if !ok {
			return fmt.Sprintf("Pole %s musi być liczbą", r.DisplayName)
		}
		if r.Min != nil && n < *r.Min {
			return fmt.Sprintf("Minimalna wartość: %v", *r.Min)
		}
		if r.Max != nil && n > *r.Max {
			return fmt.Sprintf("Maksymalna wartość: %v", *r.Max)
		}
	case KindString, KindRichText:
		s := v.AsString()
		if r.MinLength != nil && len([]rune(s)) < *r.MinLength {
			return fmt.Sprintf("Minimalna długość: %d", *r.MinLength)
		}
		if r.MaxLength != nil && len([]rune(s)) > *r.MaxLength {
			return fmt.Sprintf("Maksymalna długość: %d", *r.MaxLength)
		}
	}
	return ""
}

// ==================== 初始值 ====================

// PriorAuction 编辑模式下的既有值：基础字段表和自定义参数表
type PriorAuction struct {
	Base   map[string]FieldValue
	Custom map[string]FieldValue
}

// BuildInitialValues 为一张表单生成初始值表（按字段名键入）
//
// 编辑模式（prior 非空）：基础字段取 Base，自定义字段取 Custom，缺省空串。
// 新建模式：schema 预填值 > 默认值表（按字段名）> 空。
// 多选字段永远给 []，不给 nil，前端多选组件吃不了标量。
func (s *FormService) BuildInitialValues(fields []FieldSchema, prior *PriorAuction) map[string]FieldValue {
	values := make(map[string]FieldValue, len(fields))
	for _, f := range fields {
		if prior != nil {
			values[f.Name] = priorValue(f, prior)
			continue
		}
		values[f.Name] = s.newValue(f)
	}
	return values
}

func priorValue(f FieldSchema, prior *PriorAuction) FieldValue {
	if f.Origin == OriginBase {
		if v, ok := prior.Base[f.Name]; ok {
			return v
		}
	} else {
		if v, ok := prior.Custom[f.Name]; ok {
			return v
		}
	}
	if f.Kind == KindMulti {
		return StrList()
	}
	return Str("")
}

func (s *FormService) newValue(f FieldSchema) FieldValue {
	if !f.Value.IsEmpty() {
		if f.Kind == KindMulti && f.Value.Kind != ValueStrList {
			return StrList(f.Value.AsString())
		}
		return f.Value
	}
	if d, ok := s.defaults[f.Name]; ok {
		if f.Kind == KindMulti {
			if d.Kind == ValueStrList {
				return d
			}
			if d.IsEmpty() {
				return StrList()
			}
			return StrList(d.AsString())
		}
		return d
	}
	if f.Name == "description" {
		return Html(EmptyDescription)
	}
	if f.Kind == KindMulti {
		return StrList()
	}
	return Str("")
}
