package search

import (
	"context"
	"encoding/json"
	"time"

	"localpress-ai-api/internal/infrastructure/persistence/redis"
	"localpress-ai-api/pkg/logger"
)

// CachedSearcher 带缓存的检索装饰器
// 同一查询在 TTL 内直接命中缓存，避免重复消耗检索配额。
type CachedSearcher struct {
	inner *Client
	cache *redis.Cache
	ttl   time.Duration
}

func NewCachedSearcher(inner *Client, cache *redis.Cache, ttl time.Duration) *CachedSearcher {
	if ttl <= 0 {
		ttl = 15 * time.Minute
	}
	return &CachedSearcher{inner: inner, cache: cache, ttl: ttl}
}

func (s *CachedSearcher) Search(ctx context.Context, query, focusArea string) (string, error) {
	if s.cache == nil {
		return s.inner.Search(ctx, query, focusArea)
	}

	// 缓存值为 JSON 编码的字符串
	key := redis.SearchKey(query, focusArea)
	if val, err := s.cache.Get(ctx, key); err == nil && len(val) > 0 {
		var text string
		if jsonErr := json.Unmarshal(val, &text); jsonErr == nil && text != "" {
			return text, nil
		}
	}

	text, err := s.inner.Search(ctx, query, focusArea)
	if err != nil {
		return "", err
	}

	// 缓存写入失败只记日志，不影响本次结果
	if err := s.cache.Set(ctx, key, text, s.ttl); err != nil {
		logger.Warn(ctx, "failed to cache search result", "error", err.Error())
	}
	return text, nil
}
