// Package router 提供 HTTP 路由配置
package router

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"localpress-ai-api/internal/config"
	"localpress-ai-api/internal/domain/repository"
	"localpress-ai-api/internal/infrastructure/persistence/redis"
	"localpress-ai-api/internal/interfaces/http/handler"
	"localpress-ai-api/internal/interfaces/http/middleware"
)

// Router HTTP 路由器
type Router struct {
	engine *gin.Engine
	cfg    *config.Config

	articles *handler.ArticleHandler
	tickets  *handler.TicketHandler
	health   *handler.HealthHandler

	tenants     repository.TenantRepository
	redisClient *redis.Client
}

// New 创建新的路由器
func New(
	cfg *config.Config,
	articles *handler.ArticleHandler,
	tickets *handler.TicketHandler,
	health *handler.HealthHandler,
	tenants repository.TenantRepository,
	redisClient *redis.Client,
) *Router {
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := &Router{
		engine:      gin.New(),
		cfg:         cfg,
		articles:    articles,
		tickets:     tickets,
		health:      health,
		tenants:     tenants,
		redisClient: redisClient,
	}

	r.setupMiddleware()
	r.setupRoutes()

	return r
}

// Engine 返回 Gin Engine
func (r *Router) Engine() *gin.Engine {
	return r.engine
}

// setupMiddleware 配置中间件
func (r *Router) setupMiddleware() {
	r.engine.Use(middleware.Recovery())
	r.engine.Use(middleware.RequestID())

	r.engine.Use(middleware.CORS(middleware.CORSConfig{
		AllowedOrigins: r.cfg.Security.CORS.AllowedOrigins,
		AllowedMethods: r.cfg.Security.CORS.AllowedMethods,
		AllowedHeaders: r.cfg.Security.CORS.AllowedHeaders,
	}))

	if r.cfg.Observability.Tracing.Enabled {
		r.engine.Use(middleware.Trace(r.cfg.App.Name))
		r.engine.Use(middleware.TraceContext())
	}

	if r.cfg.Observability.Metrics.Enabled {
		r.engine.Use(middleware.Metrics())
	}
}

// setupRoutes 配置路由
func (r *Router) setupRoutes() {
	r.engine.GET("/health", r.health.Health)
	r.engine.GET("/ready", r.health.Ready)

	if r.cfg.Observability.Metrics.Enabled {
		path := r.cfg.Observability.Metrics.Path
		if path == "" {
			path = "/metrics"
		}
		r.engine.GET(path, gin.WrapH(promhttp.Handler()))
	}

	auth := middleware.TenantAuth(r.tenants, r.cfg.Security.Auth)

	var rateLimit gin.HandlerFunc
	if r.redisClient != nil {
		rateLimit = middleware.NewRateLimitMiddleware(middleware.RateLimitConfig{
			Enabled:           r.cfg.Security.RateLimit.Enabled,
			RequestsPerSecond: r.cfg.Security.RateLimit.RequestsPerSecond,
			Burst:             r.cfg.Security.RateLimit.Burst,
		}, r.redisClient.Redis())
	} else {
		rateLimit = func(c *gin.Context) { c.Next() }
	}

	v1 := r.engine.Group("/v1", auth, rateLimit)
	{
		articles := v1.Group("/articles")
		{
			articles.POST("/generate", r.articles.Generate)
		}

		support := v1.Group("/support")
		{
			support.POST("/tickets", r.tickets.Create)
			support.PATCH("/tickets/:id", r.tickets.Patch)
		}
	}
}
