package repository

import (
	"context"

	"localpress-ai-api/internal/domain/entity"
)

// TenantRepository 租户仓储接口
type TenantRepository interface {
	// GetByID 按 ID 获取租户，不存在时返回 (nil, nil)
	GetByID(ctx context.Context, id string) (*entity.Tenant, error)
	// GetByAPIKey 按 API Key 获取租户，不存在时返回 (nil, nil)
	GetByAPIKey(ctx context.Context, apiKey string) (*entity.Tenant, error)
}

// CategoryRepository 栏目仓储接口
type CategoryRepository interface {
	// GetByID 按租户与 ID 获取栏目，不存在时返回 (nil, nil)
	GetByID(ctx context.Context, tenantID, id string) (*entity.Category, error)
}
