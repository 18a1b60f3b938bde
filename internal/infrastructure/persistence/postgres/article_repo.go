package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/lib/pq"

	"localpress-ai-api/internal/domain/entity"
)

// ArticleRepository 文章仓储实现
type ArticleRepository struct {
	client *Client
}

// NewArticleRepository 创建文章仓储
func NewArticleRepository(client *Client) *ArticleRepository {
	return &ArticleRepository{client: client}
}

// Create 创建文章
func (r *ArticleRepository) Create(ctx context.Context, article *entity.Article) error {
	ctx, span := tracer.Start(ctx, "postgres.ArticleRepository.Create")
	defer span.End()

	q := getQuerier(ctx, r.client.sqlDB)

	auditJSON, _ := json.Marshal(article.Audit)

	query := `
		INSERT INTO articles (id, tenant_id, category_id, title, content, excerpt, tags, slug,
			journalist_name, journalist_id, image_url, image_attribution,
			source_name, source_url, used_web_search, model, generation_ms, audit, status, created_at)
		VALUES (gen_random_uuid(), $1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, NOW())
		RETURNING id, created_at
	`

	err := q.QueryRowContext(ctx, query,
		article.TenantID, article.CategoryID, article.Title, article.Content, article.Excerpt,
		pq.Array(article.Tags), article.Slug,
		article.JournalistName, article.JournalistID, article.ImageURL, article.ImageAttribution,
		article.SourceName, article.SourceURL, article.UsedWebSearch,
		article.Model, article.GenerationMs, auditJSON, article.Status,
	).Scan(&article.ID, &article.CreatedAt)

	if err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to create article: %w", err)
	}

	return nil
}

// SlugExists 精确匹配检查 slug 是否已被占用
func (r *ArticleRepository) SlugExists(ctx context.Context, tenantID, slug string) (bool, error) {
	ctx, span := tracer.Start(ctx, "postgres.ArticleRepository.SlugExists")
	defer span.End()

	q := getQuerier(ctx, r.client.sqlDB)

	query := `SELECT EXISTS (SELECT 1 FROM articles WHERE tenant_id = $1 AND slug = $2)`

	var exists bool
	if err := q.QueryRowContext(ctx, query, tenantID, slug).Scan(&exists); err != nil {
		span.RecordError(err)
		return false, fmt.Errorf("failed to check slug: %w", err)
	}

	return exists, nil
}
