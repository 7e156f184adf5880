package dto

import "sell_that_sheet/internal/service"

// OfferSchemaResponse 类目表单 schema：字段定义 + 校验规则 + 初始值
type OfferSchemaResponse struct {
	CategoryID    int64                         `json:"category_id"`
	Fields        []service.FieldSchema         `json:"fields"`
	Rules         []service.FieldRule           `json:"rules"`
	InitialValues map[string]service.FieldValue `json:"initial_values"`
}

// ValidateRequest 表单校验请求
type ValidateRequest struct {
	CategoryID int64                         `json:"category_id" binding:"required"`
	Values     map[string]service.FieldValue `json:"values" binding:"required"`
}
