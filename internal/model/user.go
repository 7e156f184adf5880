package model

// User 系统用户
type User struct {
	BaseModel
	Username     string `gorm:"size:64;uniqueIndex;not null;comment:登录名" json:"username"`
	PasswordHash string `gorm:"size:128;not null;comment:bcrypt口令哈希" json:"-"`
	Role         string `gorm:"size:32;default:user;comment:角色" json:"role"`
	UserGroup    string `gorm:"size:32;index;comment:用户组(如 owners)" json:"user_group"`
}

func (*User) TableName() string {
	return "users"
}

// DescriptionTemplate 描述模板（按归属人隔离）
type DescriptionTemplate struct {
	BaseModel
	OwnerID int64  `gorm:"index;not null;comment:归属人ID" json:"owner"`
	Name    string `gorm:"size:255;not null;comment:模板名称" json:"name"`
	Content string `gorm:"type:text;comment:模板内容" json:"content"`
}

func (*DescriptionTemplate) TableName() string {
	return "description_templates"
}
