// Package images 提供文章配图解析
package images

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"

	"localpress-ai-api/pkg/logger"
)

var tracer = otel.Tracer("images")

// Image 配图结果
type Image struct {
	URL         string
	Attribution string
}

// StockProvider 图库检索端口
type StockProvider interface {
	Search(ctx context.Context, query string) (*Image, error)
}

// AIImageProvider AI 生成图端口
type AIImageProvider interface {
	Generate(ctx context.Context, prompt string) (*Image, error)
}

// Resolver 配图解析器：优先图库，检索失败或无结果时回退到 AI 生成
type Resolver struct {
	stock StockProvider
	ai    AIImageProvider
}

// NewResolver 创建配图解析器
func NewResolver(stock StockProvider, ai AIImageProvider) *Resolver {
	return &Resolver{stock: stock, ai: ai}
}

// ResolveImage 按标题检索配图，两级都失败时返回错误，调用方自行决定是否降级
func (r *Resolver) ResolveImage(ctx context.Context, query string) (url, attribution string, err error) {
	ctx, span := tracer.Start(ctx, "images.ResolveImage")
	defer span.End()

	if r.stock != nil {
		img, stockErr := r.stock.Search(ctx, query)
		if stockErr == nil && img != nil && img.URL != "" {
			return img.URL, img.Attribution, nil
		}
		if stockErr != nil {
			logger.Warn(ctx, "stock image search failed, falling back to ai image", "error", stockErr.Error())
		}
	}

	if r.ai != nil {
		img, aiErr := r.ai.Generate(ctx, query)
		if aiErr == nil && img != nil && img.URL != "" {
			return img.URL, img.Attribution, nil
		}
		if aiErr != nil {
			span.RecordError(aiErr)
			return "", "", fmt.Errorf("ai image generation failed: %w", aiErr)
		}
	}

	return "", "", fmt.Errorf("no image provider produced a result")
}
