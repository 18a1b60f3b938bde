// Package wire 提供依赖注入配置
package wire

import (
	"localpress-ai-api/internal/application/newsroom/source"
	"localpress-ai-api/internal/config"
	"localpress-ai-api/internal/infrastructure/images"
	"localpress-ai-api/internal/infrastructure/persistence/postgres"
	"localpress-ai-api/internal/infrastructure/persistence/redis"
	"localpress-ai-api/internal/infrastructure/search"
)

// ProvidePostgresClient 创建 PostgreSQL 客户端及清理函数
func ProvidePostgresClient(cfg *config.Config) (*postgres.Client, func(), error) {
	client, err := postgres.NewClient(&cfg.Database.Postgres)
	if err != nil {
		return nil, nil, err
	}
	return client, func() { _ = client.Close() }, nil
}

// ProvideRedisClient 创建 Redis 客户端及清理函数
func ProvideRedisClient(cfg *config.Config) (*redis.Client, func(), error) {
	client, err := redis.NewClient(&cfg.Cache.Redis)
	if err != nil {
		return nil, nil, err
	}
	return client, func() { _ = client.Close() }, nil
}

// ProvideSearchProvider 主检索通道，外面包一层结果缓存
func ProvideSearchProvider(cfg *config.Config, cache *redis.Cache) source.SearchProvider {
	return search.NewCachedSearcher(search.NewClient(cfg), cache, cfg.Search.CacheTTL)
}

// ProvideFeedProvider RSS 回退通道
func ProvideFeedProvider(cfg *config.Config) source.FeedProvider {
	return search.NewRSSSearcher(cfg)
}

// ProvideAcquirer 三级回退素材获取器
func ProvideAcquirer(s source.SearchProvider, f source.FeedProvider) *source.Acquirer {
	return source.NewAcquirer(s, f)
}

// ProvideImageResolver 图库优先、AI 生图兜底的配图器
func ProvideImageResolver(cfg *config.Config) *images.Resolver {
	return images.NewResolver(images.NewStockClient(cfg), images.NewAIClient(cfg))
}
