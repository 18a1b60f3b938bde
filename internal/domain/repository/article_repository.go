package repository

import (
	"context"

	"localpress-ai-api/internal/domain/entity"
)

// ArticleRepository 文章仓储接口
type ArticleRepository interface {
	// Create 持久化文章，回填 ID 与创建时间
	Create(ctx context.Context, article *entity.Article) error
	// SlugExists 精确匹配检查 slug 在租户内是否已被占用
	SlugExists(ctx context.Context, tenantID, slug string) (bool, error)
}
