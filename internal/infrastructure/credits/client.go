// Package credits 提供外部信用额度服务客户端
package credits

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"go.opentelemetry.io/otel"

	"localpress-ai-api/internal/config"
	"localpress-ai-api/internal/domain/entity"
)

var tracer = otel.Tracer("credits")

// Client 信用额度服务客户端
// 核心流程只消费 check/deduct 两个契约，额度账本本身由外部服务维护。
type Client struct {
	config     *config.CreditsConfig
	httpClient *http.Client
}

// NewClient 创建额度服务客户端
func NewClient(cfg *config.Config) *Client {
	return &Client{
		config: &cfg.Credits,
		httpClient: &http.Client{
			Timeout: cfg.Credits.Timeout,
		},
	}
}

// checkRequest 额度预检请求
type checkRequest struct {
	TenantID string `json:"tenantId"`
	Action   string `json:"action"`
	Quantity int    `json:"quantity"`
}

// Check 额度预检
func (c *Client) Check(ctx context.Context, tenantID, action string, quantity int) (*entity.CreditDecision, error) {
	ctx, span := tracer.Start(ctx, "credits.Check")
	defer span.End()

	var decision entity.CreditDecision
	err := c.post(ctx, "/credits/check", checkRequest{
		TenantID: tenantID,
		Action:   action,
		Quantity: quantity,
	}, &decision)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	return &decision, nil
}

// Deduct 额度扣减，响应体不被消费
func (c *Client) Deduct(ctx context.Context, deduction *entity.CreditDeduction) error {
	ctx, span := tracer.Start(ctx, "credits.Deduct")
	defer span.End()

	if err := c.post(ctx, "/credits/deduct", deduction, nil); err != nil {
		span.RecordError(err)
		return err
	}

	return nil
}

// post 执行 JSON POST 调用
func (c *Client) post(ctx context.Context, path string, body any, out any) error {
	if c.config.BaseURL == "" {
		return fmt.Errorf("credit service not configured")
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.config.BaseURL+path, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.config.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.config.APIKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("credit service request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("credit service returned status %d", resp.StatusCode)
	}

	if out == nil {
		return nil
	}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return fmt.Errorf("failed to read credit service response: %w", err)
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("failed to decode credit service response: %w", err)
	}

	return nil
}
