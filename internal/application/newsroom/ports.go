// Package newsroom 实现文章生成流水线
package newsroom

import (
	"context"
	"fmt"

	"github.com/cloudwego/eino/schema"

	"localpress-ai-api/internal/application/newsroom/source"
	"localpress-ai-api/internal/domain/entity"
	wfmodel "localpress-ai-api/internal/workflow/model"
)

// Generator 文章生成调用
type Generator interface {
	Invoke(ctx context.Context, in *wfmodel.ArticleGenerateInput) (*schema.Message, error)
}

// SourceAcquirer 素材获取，内部三级回退，永不失败
type SourceAcquirer interface {
	Acquire(ctx context.Context, query, focusArea string) *source.Content
}

// CreditMeter 信用额度服务
type CreditMeter interface {
	Check(ctx context.Context, tenantID, action string, quantity int) (*entity.CreditDecision, error)
	Deduct(ctx context.Context, d *entity.CreditDeduction) error
}

// ImageResolver 配图服务
type ImageResolver interface {
	ResolveImage(ctx context.Context, query string) (url, attribution string, err error)
}

// InsufficientCreditsError 额度不足
// 携带所需与剩余额度，供接口层回给调用方。
type InsufficientCreditsError struct {
	Required  int
	Remaining int
	Message   string
}

func (e *InsufficientCreditsError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("insufficient credits: %d required, %d remaining", e.Required, e.Remaining)
}
