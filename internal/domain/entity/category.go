package entity

import (
	"time"
)

// Category 新闻栏目实体
type Category struct {
	ID       string `json:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	TenantID string `json:"tenant_id" gorm:"type:uuid;index;not null"`
	Name     string `json:"name" gorm:"type:varchar(100);not null"`
	Slug     string `json:"slug" gorm:"type:varchar(120);index"`
	// Directive 栏目编辑指令，三级编辑指令体系中的中间层
	Directive string    `json:"directive,omitempty" gorm:"type:text"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

// TableName 指定表名
func (Category) TableName() string {
	return "categories"
}
