package allegro

// ==================== 类目参数 DTO ====================

// CategoryParametersResp 类目参数列表响应
type CategoryParametersResp struct {
	Parameters []CategoryField `json:"parameters"`
}

// CategoryField Allegro 类目参数定义
type CategoryField struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Type     string `json:"type"` // dictionary / float / integer / string
	Required bool   `json:"required"`

	Restrictions FieldRestrictions `json:"restrictions"`
	Dictionary   []DictionaryValue `json:"dictionary"`
}

// FieldRestrictions 参数取值约束
type FieldRestrictions struct {
	Min             *float64 `json:"min"`
	Max             *float64 `json:"max"`
	MinLength       *int     `json:"minLength"`
	MaxLength       *int     `json:"maxLength"`
	Precision       *int     `json:"precision"`
	MultipleChoices bool     `json:"multipleChoices"`
}

// DictionaryValue 字典型参数的可选值
type DictionaryValue struct {
	ID    string `json:"id"`
	Value string `json:"value"`
}

// ==================== 类目 DTO ====================

// Category 类目信息
type Category struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Leaf bool   `json:"leaf"`
}

// MatchCategoriesResp 类目匹配响应
type MatchCategoriesResp struct {
	MatchingCategories []Category `json:"matchingCategories"`
}
