// Package postgres 提供 PostgreSQL Repository 实现
package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"localpress-ai-api/internal/domain/entity"
)

// TenantRepository 租户仓储实现
type TenantRepository struct {
	client *Client
}

// NewTenantRepository 创建租户仓储
func NewTenantRepository(client *Client) *TenantRepository {
	return &TenantRepository{client: client}
}

const tenantColumns = `id, name, subdomain, service_area, editor_directive, api_key, status, created_at, updated_at`

// GetByID 根据 ID 获取租户
func (r *TenantRepository) GetByID(ctx context.Context, id string) (*entity.Tenant, error) {
	ctx, span := tracer.Start(ctx, "postgres.TenantRepository.GetByID")
	defer span.End()

	q := getQuerier(ctx, r.client.sqlDB)

	query := fmt.Sprintf(`SELECT %s FROM tenants WHERE id = $1`, tenantColumns)
	return scanTenant(q.QueryRowContext(ctx, query, id))
}

// GetByAPIKey 根据 API Key 获取租户
func (r *TenantRepository) GetByAPIKey(ctx context.Context, apiKey string) (*entity.Tenant, error) {
	ctx, span := tracer.Start(ctx, "postgres.TenantRepository.GetByAPIKey")
	defer span.End()

	q := getQuerier(ctx, r.client.sqlDB)

	query := fmt.Sprintf(`SELECT %s FROM tenants WHERE api_key = $1`, tenantColumns)
	return scanTenant(q.QueryRowContext(ctx, query, apiKey))
}

// scanTenant 扫描单行租户记录
func scanTenant(row *sql.Row) (*entity.Tenant, error) {
	var t entity.Tenant
	var subdomain, serviceArea, editorDirective, apiKey sql.NullString

	err := row.Scan(
		&t.ID, &t.Name, &subdomain, &serviceArea, &editorDirective,
		&apiKey, &t.Status, &t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get tenant: %w", err)
	}

	t.Subdomain = subdomain.String
	t.ServiceArea = serviceArea.String
	t.EditorDirective = editorDirective.String
	t.APIKey = apiKey.String

	return &t, nil
}
