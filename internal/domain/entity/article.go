package entity

import (
	"time"
)

// ArticleStatus 文章状态
type ArticleStatus string

const (
	ArticleStatusPublished ArticleStatus = "published"
)

// GenerationAudit 生成审计信息，记录一次生成用到的指令层级与素材质量
type GenerationAudit struct {
	// EditorDirective 本次生成是否启用了主编指令
	EditorDirective bool `json:"editor_directive"`
	// CategoryDirective 本次生成是否启用了栏目指令
	CategoryDirective bool `json:"category_directive"`
	// ArticlePrompt 本次生成是否携带了单篇指令
	ArticlePrompt bool `json:"article_prompt"`
	// PromptMode 生成模式：source_grounded 或 local_interest
	PromptMode string `json:"prompt_mode"`
	// SourceRichness 素材丰富度分级
	SourceRichness string `json:"source_richness"`
	// SourceWordCount 素材词数
	SourceWordCount int `json:"source_word_count"`
}

// Article 已发布文章实体，生成成功后创建一次，核心流程不再修改
type Article struct {
	ID         string `json:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	TenantID   string `json:"tenant_id" gorm:"type:uuid;index;not null"`
	CategoryID string `json:"category_id" gorm:"type:uuid;index;not null"`

	Title   string   `json:"title" gorm:"type:varchar(500);not null"`
	Content string   `json:"content" gorm:"type:text;not null"`
	Excerpt string   `json:"excerpt,omitempty" gorm:"type:text"`
	Tags    []string `json:"tags,omitempty" gorm:"type:text[]"`
	Slug    string   `json:"slug" gorm:"type:varchar(600);not null;index:idx_articles_tenant_slug,unique,composite:tenant_id"`

	JournalistName string `json:"journalist_name,omitempty" gorm:"type:varchar(255)"`
	JournalistID   string `json:"journalist_id,omitempty" gorm:"type:varchar(100)"`

	ImageURL         string `json:"image_url,omitempty" gorm:"type:text"`
	ImageAttribution string `json:"image_attribution,omitempty" gorm:"type:text"`

	SourceName    string `json:"source_name,omitempty" gorm:"type:varchar(255)"`
	SourceURL     string `json:"source_url,omitempty" gorm:"type:text"`
	UsedWebSearch bool   `json:"used_web_search" gorm:"default:false"`

	Model        string           `json:"model,omitempty" gorm:"type:varchar(100)"`
	GenerationMs int64            `json:"generation_ms" gorm:"default:0"`
	Audit        *GenerationAudit `json:"audit,omitempty" gorm:"type:jsonb;serializer:json"`

	Status    ArticleStatus `json:"status" gorm:"type:varchar(50);default:'published'"`
	CreatedAt time.Time     `json:"created_at" gorm:"autoCreateTime"`
}

// TableName 指定表名
func (Article) TableName() string {
	return "articles"
}
