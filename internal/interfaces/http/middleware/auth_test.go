package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"localpress-ai-api/internal/config"
	"localpress-ai-api/internal/domain/entity"
)

type fakeTenants struct {
	byID     map[string]*entity.Tenant
	byAPIKey map[string]*entity.Tenant
	err      error
}

func (f *fakeTenants) GetByID(ctx context.Context, id string) (*entity.Tenant, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.byID[id], nil
}

func (f *fakeTenants) GetByAPIKey(ctx context.Context, apiKey string) (*entity.Tenant, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.byAPIKey[apiKey], nil
}

func activeTenant() *entity.Tenant {
	return &entity.Tenant{ID: "t1", Name: "Bergen Local News", Status: entity.TenantStatusActive}
}

func authRouter(tenants *fakeTenants, cfg config.AuthConfig) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/probe", TenantAuth(tenants, cfg), func(c *gin.Context) {
		tenant := TenantFromContext(c)
		if tenant == nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "tenant missing from context"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"tenant": tenant.ID})
	})
	return r
}

func doAuthRequest(r *gin.Engine, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestTenantAuthRequiresTenantID(t *testing.T) {
	r := authRouter(&fakeTenants{}, config.AuthConfig{})

	w := doAuthRequest(r, nil)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestTenantAuthPlatformSecret(t *testing.T) {
	tenants := &fakeTenants{byID: map[string]*entity.Tenant{"t1": activeTenant()}}
	r := authRouter(tenants, config.AuthConfig{PlatformSecret: "s3cret"})

	w := doAuthRequest(r, map[string]string{
		"X-Tenant-ID":       "t1",
		"X-Platform-Secret": "s3cret",
	})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "t1")
}

func TestTenantAuthWrongPlatformSecret(t *testing.T) {
	tenants := &fakeTenants{byID: map[string]*entity.Tenant{"t1": activeTenant()}}
	r := authRouter(tenants, config.AuthConfig{PlatformSecret: "s3cret"})

	w := doAuthRequest(r, map[string]string{
		"X-Tenant-ID":       "t1",
		"X-Platform-Secret": "wrong",
	})

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestTenantAuthUnconfiguredSecretRejects(t *testing.T) {
	tenants := &fakeTenants{byID: map[string]*entity.Tenant{"t1": activeTenant()}}
	r := authRouter(tenants, config.AuthConfig{})

	w := doAuthRequest(r, map[string]string{
		"X-Tenant-ID":       "t1",
		"X-Platform-Secret": "anything",
	})

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestTenantAuthAPIKey(t *testing.T) {
	tenant := activeTenant()
	tenants := &fakeTenants{byAPIKey: map[string]*entity.Tenant{"key-123": tenant}}
	r := authRouter(tenants, config.AuthConfig{})

	w := doAuthRequest(r, map[string]string{
		"X-Tenant-ID": "t1",
		"X-API-Key":   "key-123",
	})

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestTenantAuthAPIKeyTenantMismatch(t *testing.T) {
	tenant := activeTenant()
	tenants := &fakeTenants{byAPIKey: map[string]*entity.Tenant{"key-123": tenant}}
	r := authRouter(tenants, config.AuthConfig{})

	w := doAuthRequest(r, map[string]string{
		"X-Tenant-ID": "someone-else",
		"X-API-Key":   "key-123",
	})

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestTenantAuthAnonymousAllowed(t *testing.T) {
	tenants := &fakeTenants{byID: map[string]*entity.Tenant{"t1": activeTenant()}}
	r := authRouter(tenants, config.AuthConfig{AllowAnonymous: true})

	w := doAuthRequest(r, map[string]string{"X-Tenant-ID": "t1"})

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestTenantAuthAnonymousDenied(t *testing.T) {
	tenants := &fakeTenants{byID: map[string]*entity.Tenant{"t1": activeTenant()}}
	r := authRouter(tenants, config.AuthConfig{AllowAnonymous: false})

	w := doAuthRequest(r, map[string]string{"X-Tenant-ID": "t1"})

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestTenantAuthSuspendedTenant(t *testing.T) {
	suspended := activeTenant()
	suspended.Status = entity.TenantStatusSuspended
	tenants := &fakeTenants{byID: map[string]*entity.Tenant{"t1": suspended}}
	r := authRouter(tenants, config.AuthConfig{AllowAnonymous: true})

	w := doAuthRequest(r, map[string]string{"X-Tenant-ID": "t1"})

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "suspended")
}

func TestTenantAuthLookupError(t *testing.T) {
	tenants := &fakeTenants{err: errors.New("db down")}
	r := authRouter(tenants, config.AuthConfig{AllowAnonymous: true})

	w := doAuthRequest(r, map[string]string{"X-Tenant-ID": "t1"})

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestTenantAuthUnknownTenant(t *testing.T) {
	tenants := &fakeTenants{}
	r := authRouter(tenants, config.AuthConfig{AllowAnonymous: true})

	w := doAuthRequest(r, map[string]string{"X-Tenant-ID": "ghost"})

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
