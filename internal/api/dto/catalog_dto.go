package dto

// CategoryParameterRequest 新增/更新自定义参数目录项
type CategoryParameterRequest struct {
	CategoryID       *int64   `json:"category_id"`
	NamePL           string   `json:"name_pl" binding:"required"`
	NameDE           string   `json:"name_de"`
	ParameterType    string   `json:"parameter_type" binding:"required,oneof=single multi numeric string"`
	PossibleValuesPL []string `json:"possible_values_pl"`
	PossibleValuesDE []string `json:"possible_values_de"`
}

// DescriptionTemplateRequest 新增描述模板
type DescriptionTemplateRequest struct {
	Name    string `json:"name" binding:"required"`
	Content string `json:"content" binding:"required"`
}
