// Package entity 定义领域实体
package entity

import (
	"time"
)

// TenantStatus 租户状态
type TenantStatus string

const (
	TenantStatusActive    TenantStatus = "active"
	TenantStatusSuspended TenantStatus = "suspended"
)

// Tenant 报纸租户实体，一个租户对应一份本地报纸站点
type Tenant struct {
	ID        string       `json:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name      string       `json:"name" gorm:"type:varchar(255);not null"`
	Subdomain string       `json:"subdomain" gorm:"type:varchar(100);uniqueIndex"`
	// ServiceArea 服务地区，例如 "Bergen County, New Jersey"
	ServiceArea string `json:"service_area,omitempty" gorm:"type:varchar(255)"`
	// EditorDirective 主编指令，三级编辑指令体系中的最高层
	EditorDirective string       `json:"editor_directive,omitempty" gorm:"type:text"`
	APIKey          string       `json:"-" gorm:"type:varchar(128);index"`
	Status          TenantStatus `json:"status" gorm:"type:varchar(50);default:'active'"`
	CreatedAt       time.Time    `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt       time.Time    `json:"updated_at" gorm:"autoUpdateTime"`
}

// TableName 指定表名
func (Tenant) TableName() string {
	return "tenants"
}

// IsActive 检查租户是否可用
func (t *Tenant) IsActive() bool {
	return t.Status == TenantStatusActive
}
