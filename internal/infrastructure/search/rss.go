package search

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/mmcdole/gofeed"

	"localpress-ai-api/internal/application/newsroom/source"
	"localpress-ai-api/internal/config"
)

// RSSSearcher 基于关键词 RSS 检索的素材提供者（搜索提供商不可用时的降级路径）
type RSSSearcher struct {
	config *config.SearchConfig
	parser *gofeed.Parser
}

// NewRSSSearcher 创建 RSS 检索器
func NewRSSSearcher(cfg *config.Config) *RSSSearcher {
	return &RSSSearcher{
		config: &cfg.Search,
		parser: gofeed.NewParser(),
	}
}

// Items 按关键词检索 RSS，返回解析后的条目，不含链接的条目被跳过
func (s *RSSSearcher) Items(ctx context.Context, query string) ([]source.FeedItem, error) {
	ctx, span := tracer.Start(ctx, "search.rss.Items")
	defer span.End()

	feedURL := fmt.Sprintf(s.config.FeedURLTemplate, url.QueryEscape(query))

	feed, err := s.parser.ParseURLWithContext(feedURL, ctx)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to fetch feed: %w", err)
	}

	items := make([]source.FeedItem, 0, len(feed.Items))
	for _, entry := range feed.Items {
		if entry.Link == "" {
			continue
		}

		title, src := splitSourceSuffix(entry.Title)

		item := source.FeedItem{
			Title:       title,
			Description: strings.TrimSpace(entry.Description),
			Link:        entry.Link,
			Source:      src,
		}
		if entry.PublishedParsed != nil {
			item.Published = *entry.PublishedParsed
		}

		items = append(items, item)
	}

	return items, nil
}

// splitSourceSuffix 拆分 "Headline - Publication" 形式的标题
// 新闻聚合 RSS 常把出版方附在标题尾部。
func splitSourceSuffix(title string) (string, string) {
	idx := strings.LastIndex(title, " - ")
	if idx <= 0 {
		return strings.TrimSpace(title), ""
	}
	return strings.TrimSpace(title[:idx]), strings.TrimSpace(title[idx+3:])
}
