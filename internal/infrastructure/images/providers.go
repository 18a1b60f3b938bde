package images

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"localpress-ai-api/internal/config"
)

// StockClient 图库检索客户端（Pexels 风格 API）
type StockClient struct {
	config     *config.ImagesConfig
	httpClient *http.Client
}

// NewStockClient 创建图库客户端
func NewStockClient(cfg *config.Config) *StockClient {
	return &StockClient{
		config: &cfg.Images,
		httpClient: &http.Client{
			Timeout: cfg.Images.Timeout,
		},
	}
}

// stockPhoto 图库单张照片
type stockPhoto struct {
	URL          string `json:"url"`
	Photographer string `json:"photographer"`
	Src          struct {
		Large string `json:"large"`
	} `json:"src"`
}

// stockResponse 图库检索响应
type stockResponse struct {
	Photos []stockPhoto `json:"photos"`
}

// Search 按关键词检索图库
func (c *StockClient) Search(ctx context.Context, query string) (*Image, error) {
	if c.config.StockBaseURL == "" {
		return nil, fmt.Errorf("stock image provider not configured")
	}

	endpoint := fmt.Sprintf("%s/v1/search?query=%s&per_page=1", c.config.StockBaseURL, url.QueryEscape(query))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build stock search request: %w", err)
	}
	req.Header.Set("Authorization", c.config.StockAPIKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("stock search failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("stock provider returned status %d", resp.StatusCode)
	}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("failed to read stock response: %w", err)
	}

	var parsed stockResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return nil, fmt.Errorf("failed to decode stock response: %w", err)
	}
	if len(parsed.Photos) == 0 {
		return nil, nil
	}

	photo := parsed.Photos[0]
	return &Image{
		URL:         photo.Src.Large,
		Attribution: fmt.Sprintf("Photo by %s", photo.Photographer),
	}, nil
}

// AIClient AI 生成图客户端
type AIClient struct {
	config     *config.ImagesConfig
	httpClient *http.Client
}

// NewAIClient 创建 AI 生成图客户端
func NewAIClient(cfg *config.Config) *AIClient {
	return &AIClient{
		config: &cfg.Images,
		httpClient: &http.Client{
			Timeout: cfg.Images.Timeout,
		},
	}
}

// aiImageRequest 生成图请求
type aiImageRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
	Size   string `json:"size"`
}

// aiImageResponse 生成图响应
type aiImageResponse struct {
	Data []struct {
		URL string `json:"url"`
	} `json:"data"`
}

// Generate 按提示词生成配图
func (c *AIClient) Generate(ctx context.Context, prompt string) (*Image, error) {
	if c.config.AIBaseURL == "" {
		return nil, fmt.Errorf("ai image provider not configured")
	}

	body, err := json.Marshal(aiImageRequest{
		Model:  c.config.AIModel,
		Prompt: fmt.Sprintf("Editorial news photograph, realistic, no text overlay: %s", prompt),
		Size:   "1024x1024",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal image request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.config.AIBaseURL+"/v1/images/generations", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build image request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.config.AIAPIKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("ai image generation failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("ai image provider returned status %d", resp.StatusCode)
	}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("failed to read image response: %w", err)
	}

	var parsed aiImageResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return nil, fmt.Errorf("failed to decode image response: %w", err)
	}
	if len(parsed.Data) == 0 || parsed.Data[0].URL == "" {
		return nil, fmt.Errorf("ai image provider returned no image")
	}

	return &Image{
		URL:         parsed.Data[0].URL,
		Attribution: "AI-generated illustration",
	}, nil
}
