package service

import (
	"context"
	"errors"
	"fmt"

	"sell_that_sheet/internal/model"
	"sell_that_sheet/internal/repository"
	"sell_that_sheet/pkg/allegro"
)

// ==================== 外部字段源 ====================

// CategorySource 市场侧字段定义源（Allegro）
type CategorySource interface {
	FetchCategoryFields(ctx context.Context, categoryID int64) ([]allegro.CategoryField, error)
}

// ErrSourceUnavailable 字段定义源不可用
// 解析失败时不返回半截 schema，调用方不能渲染残缺表单
var ErrSourceUnavailable = errors.New("字段定义源不可用")

// ==================== 基础字段静态表 ====================

// 基础字段按市场约定顺序排列；translated_params 属于内部快照，不进表单
type baseFieldDef struct {
	name string
	kind FieldKind
}

var baseFieldDefs = []baseFieldDef{
	{"name", KindString},
	{"price_pln", KindFloat},
	{"price_euro", KindFloat},
	{"tags", KindString},
	{"serial_numbers", KindString},
	{"photoset", KindString},
	{"description", KindRichText},
	{"shipment_price", KindFloat},
	{"category", KindString},
	{"amount", KindFloat},
	{"id", KindString},
	{"created_at", KindString},
}

// baseDisplayNames 基础字段波兰语展示名
var baseDisplayNames = map[string]string{
	"name":           "Nazwa",
	"price_pln":      "Cena",
	"price_euro":     "Cena w Euro",
	"tags":           "Tagi",
	"description":    "Opis",
	"serial_numbers": "Numery seryjne",
	"shipment_price": "Cena wysyłki",
	"category":       "Kategoria",
	"amount":         "Ilość",
}

var requiredBaseFields = map[string]bool{
	"name":           true,
	"price_pln":      true,
	"shipment_price": true,
}

var disabledBaseFields = map[string]bool{
	"id":         true,
	"photoset":   true,
	"category":   true,
	"created_at": true,
}

// BaseFieldID 基础字段在工作值表外的字段ID
func BaseFieldID(name string) string {
	return name + "Base"
}

// ==================== SchemaService ====================

// SchemaService 字段 schema 解析服务
// 把三路异构字段源（固定基础字段、Allegro 类目参数、自定义参数目录）
// 合并成一份有序的统一字段定义
type SchemaService struct {
	source  CategorySource
	catalog repository.CategoryParameterRepository
}

// NewSchemaService 创建解析服务
func NewSchemaService(source CategorySource, catalog repository.CategoryParameterRepository) *SchemaService {
	return &SchemaService{source: source, catalog: catalog}
}

// Resolve 解析指定类目的完整字段 schema
// 顺序约定：基础字段（市场声明序）→ Allegro 类目参数（返回序）→ 自定义参数（目录序）。
// 该顺序决定表单 tab 序和装配时的遍历序，不能乱。
// 任一上游失败整体失败，不返回部分结果。
func (s *SchemaService) Resolve(ctx context.Context, categoryID int64) ([]FieldSchema, error) {
	marketFields, err := s.source.FetchCategoryFields(ctx, categoryID)
	if err != nil {
		return nil, fmt.Errorf("%w: allegro 类目参数: %v", ErrSourceUnavailable, err)
	}

	catalogParams, err := s.catalog.ListForCategory(ctx, categoryID)
	if err != nil {
		return nil, fmt.Errorf("%w: 自定义参数目录: %v", ErrSourceUnavailable, err)
	}

	fields := make([]FieldSchema, 0, len(baseFieldDefs)+len(marketFields)+len(catalogParams))
	fields = append(fields, buildBaseFields(categoryID)...)
	for _, mf := range marketFields {
		fields = append(fields, mapAllegroField(mf))
	}
	for i := range catalogParams {
		fields = append(fields, MapCustomParam(&catalogParams[i]))
	}

	return fields, nil
}

// buildBaseFields 生成基础字段定义；category 预填类目ID
func buildBaseFields(categoryID int64) []FieldSchema {
	fields := make([]FieldSchema, 0, len(baseFieldDefs))
	for _, def := range baseFieldDefs {
		f := FieldSchema{
			ID:          BaseFieldID(def.name),
			Name:        def.name,
			DisplayName: def.name,
			Origin:      OriginBase,
			Kind:        def.kind,
			Required:    requiredBaseFields[def.name],
			Disabled:    disabledBaseFields[def.name],
		}
		if dn, ok := baseDisplayNames[def.name]; ok {
			f.DisplayName = dn
		}
		if def.name == "category" {
			f.Value = Num(float64(categoryID))
		}
		fields = append(fields, f)
	}
	return fields
}

// mapAllegroField Allegro 参数 → 统一字段定义
func mapAllegroField(mf allegro.CategoryField) FieldSchema {
	f := FieldSchema{
		ID:          mf.ID,
		Name:        mf.Name,
		DisplayName: mf.Name,
		Origin:      OriginAllegro,
		Required:    mf.Required,
		Restrictions: Restrictions{
			Min:             mf.Restrictions.Min,
			Max:             mf.Restrictions.Max,
			MinLength:       mf.Restrictions.MinLength,
			MaxLength:       mf.Restrictions.MaxLength,
			Precision:       mf.Restrictions.Precision,
			MultipleChoices: mf.Restrictions.MultipleChoices,
		},
	}

	switch mf.Type {
	case "dictionary":
		if mf.Restrictions.MultipleChoices {
			f.Kind = KindMulti
		} else {
			f.Kind = KindSingle
		}
		f.Choices = make([]Choice, 0, len(mf.Dictionary))
		for _, d := range mf.Dictionary {
			f.Choices = append(f.Choices, Choice{ID: d.ID, Value: d.Value})
		}
	case "float", "integer", "number":
		f.Kind = KindFloat
	default:
		f.Kind = KindString
	}

	return f
}

// MapCustomParam 自定义参数目录项 → 统一字段定义
// single|multi → 选择型（可选值来自波兰语列表，德语列表按下标配对，翻译时用）
// numeric → 浮点，其余 → 字符串
func MapCustomParam(p *model.CategoryParameter) FieldSchema {
	externalID := p.ExternalID()
	f := FieldSchema{
		ID:          externalID,
		Name:        externalID,
		DisplayName: p.NamePL,
		Origin:      OriginCustom,
	}

	switch p.ParameterType {
	case "single", "multi":
		if p.ParameterType == "multi" {
			f.Kind = KindMulti
			f.Restrictions.MultipleChoices = true
		} else {
			f.Kind = KindSingle
		}
		f.Choices = make([]Choice, 0, len(p.PossibleValuesPL))
		for i, val := range p.PossibleValuesPL {
			f.Choices = append(f.Choices, Choice{ID: fmt.Sprintf("%d", i), Value: val})
		}
	case "numeric":
		f.Kind = KindFloat
	default:
		f.Kind = KindString
	}

	return f
}
