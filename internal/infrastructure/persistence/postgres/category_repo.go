package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"localpress-ai-api/internal/domain/entity"
)

// CategoryRepository 栏目仓储实现
type CategoryRepository struct {
	client *Client
}

// NewCategoryRepository 创建栏目仓储
func NewCategoryRepository(client *Client) *CategoryRepository {
	return &CategoryRepository{client: client}
}

// GetByID 根据租户与 ID 获取栏目
func (r *CategoryRepository) GetByID(ctx context.Context, tenantID, id string) (*entity.Category, error) {
	ctx, span := tracer.Start(ctx, "postgres.CategoryRepository.GetByID")
	defer span.End()

	q := getQuerier(ctx, r.client.sqlDB)

	query := `
		SELECT id, tenant_id, name, slug, directive, created_at, updated_at
		FROM categories
		WHERE tenant_id = $1 AND id = $2
	`

	var c entity.Category
	var slug, directive sql.NullString

	err := q.QueryRowContext(ctx, query, tenantID, id).Scan(
		&c.ID, &c.TenantID, &c.Name, &slug, &directive, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		span.RecordError(err)
		return nil, fmt.Errorf("failed to get category: %w", err)
	}

	c.Slug = slug.String
	c.Directive = directive.String

	return &c, nil
}
