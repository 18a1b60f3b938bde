// Package search 提供新闻素材检索客户端
package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"go.opentelemetry.io/otel"

	"localpress-ai-api/internal/config"
)

var tracer = otel.Tracer("search")

// Client 新闻搜索提供商客户端
// 提供商返回带标记段落（HEADLINE/SOURCE/SUMMARY/KEY FACTS）的半结构化文本，
// 解析由素材获取层负责。
type Client struct {
	config     *config.SearchConfig
	httpClient *http.Client
}

// NewClient 创建搜索客户端
func NewClient(cfg *config.Config) *Client {
	return &Client{
		config: &cfg.Search,
		httpClient: &http.Client{
			Timeout: cfg.Search.Timeout,
		},
	}
}

// searchRequest 搜索请求体
type searchRequest struct {
	Query       string   `json:"query"`
	FocusArea   string   `json:"focus_area,omitempty"`
	RecencyDays int      `json:"recency_days,omitempty"`
	Domains     []string `json:"domains,omitempty"`
}

// searchResponse 搜索响应体
type searchResponse struct {
	Text string `json:"text"`
}

// Search 调用搜索提供商，返回半结构化文本
func (c *Client) Search(ctx context.Context, query, focusArea string) (string, error) {
	ctx, span := tracer.Start(ctx, "search.Search")
	defer span.End()

	if c.config.BaseURL == "" {
		return "", fmt.Errorf("search provider not configured")
	}

	body, err := json.Marshal(searchRequest{
		Query:       query,
		FocusArea:   focusArea,
		RecencyDays: c.config.RecencyDays,
		Domains:     c.config.Domains,
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal search request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.config.BaseURL+"/v1/news/search", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to build search request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.config.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.config.APIKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		span.RecordError(err)
		return "", fmt.Errorf("search request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("search provider returned status %d", resp.StatusCode)
	}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		span.RecordError(err)
		return "", fmt.Errorf("failed to read search response: %w", err)
	}

	var parsed searchResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return "", fmt.Errorf("failed to decode search response: %w", err)
	}
	if parsed.Text == "" {
		return "", fmt.Errorf("search provider returned empty text")
	}

	return parsed.Text, nil
}
