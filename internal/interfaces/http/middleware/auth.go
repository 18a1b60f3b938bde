package middleware

import (
	"crypto/subtle"
	"strings"

	"github.com/gin-gonic/gin"

	"localpress-ai-api/internal/config"
	"localpress-ai-api/internal/domain/entity"
	"localpress-ai-api/internal/domain/repository"
	"localpress-ai-api/internal/interfaces/http/dto"
	"localpress-ai-api/pkg/logger"
)

// TenantContextKey gin 上下文中租户实体的键
const TenantContextKey = "tenant"

// TenantAuth 租户认证中间件
// 三种凭据形态收敛为同一个租户上下文：平台内部密钥、租户 API Key、
// 或（开发配置允许时）仅携带租户 ID 的匿名调用。
func TenantAuth(tenants repository.TenantRepository, cfg config.AuthConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		tenantID := strings.TrimSpace(c.GetHeader("X-Tenant-ID"))
		if tenantID == "" {
			dto.Unauthorized(c, "X-Tenant-ID header is required")
			c.Abort()
			return
		}

		ctx := c.Request.Context()

		var (
			tenant *entity.Tenant
			err    error
		)

		secret := c.GetHeader("X-Platform-Secret")
		apiKey := c.GetHeader("X-API-Key")

		switch {
		case secret != "":
			if cfg.PlatformSecret == "" ||
				subtle.ConstantTimeCompare([]byte(secret), []byte(cfg.PlatformSecret)) != 1 {
				dto.Unauthorized(c, "invalid platform secret")
				c.Abort()
				return
			}
			tenant, err = tenants.GetByID(ctx, tenantID)

		case apiKey != "":
			tenant, err = tenants.GetByAPIKey(ctx, apiKey)
			if err == nil && tenant != nil && tenant.ID != tenantID {
				// API Key 与声称的租户不符
				tenant = nil
			}

		default:
			if !cfg.AllowAnonymous {
				dto.Unauthorized(c, "missing credentials")
				c.Abort()
				return
			}
			tenant, err = tenants.GetByID(ctx, tenantID)
		}

		if err != nil {
			logger.Error(ctx, "tenant lookup failed", err, "tenant_id", tenantID)
			dto.InternalError(c, "authentication backend unavailable")
			c.Abort()
			return
		}
		if tenant == nil {
			dto.Unauthorized(c, "invalid credentials")
			c.Abort()
			return
		}
		if !tenant.IsActive() {
			dto.Unauthorized(c, "tenant suspended")
			c.Abort()
			return
		}

		c.Set(TenantContextKey, tenant)
		c.Set("tenant_id", tenant.ID)
		c.Request = c.Request.WithContext(
			logger.WithContext(ctx, logger.TenantIDKey, tenant.ID))

		c.Next()
	}
}

// TenantFromContext 从 gin 上下文取出认证后的租户
func TenantFromContext(c *gin.Context) *entity.Tenant {
	if v, ok := c.Get(TenantContextKey); ok {
		if tenant, ok := v.(*entity.Tenant); ok {
			return tenant
		}
	}
	return nil
}
