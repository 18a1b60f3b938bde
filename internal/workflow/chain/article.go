package chain

import (
	"context"
	"fmt"
	"strings"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"

	wfmodel "localpress-ai-api/internal/workflow/model"
	workflowport "localpress-ai-api/internal/workflow/port"
	workflowprompt "localpress-ai-api/internal/workflow/prompt"
)

type ArticleChain struct {
	factory workflowport.ChatModelFactory
}

func NewArticleChain(factory workflowport.ChatModelFactory) *ArticleChain {
	return &ArticleChain{factory: factory}
}

func (c *ArticleChain) Invoke(ctx context.Context, in *wfmodel.ArticleGenerateInput) (*schema.Message, error) {
	if c == nil || c.factory == nil {
		return nil, fmt.Errorf("llm factory not configured")
	}
	if in == nil {
		return nil, fmt.Errorf("input is nil")
	}
	if strings.TrimSpace(in.Provider) == "" {
		return nil, fmt.Errorf("provider is required")
	}
	if strings.TrimSpace(in.Prompt) == "" {
		return nil, fmt.Errorf("prompt is required")
	}

	chatModel, err := c.factory.Get(ctx, strings.TrimSpace(in.Provider))
	if err != nil {
		return nil, err
	}

	msgs, err := formatArticleMessages(in)
	if err != nil {
		return nil, err
	}

	outMsg, err := chatModel.Generate(ctx, msgs, buildArticleModelOptions(in)...)
	if err != nil {
		return nil, err
	}
	if outMsg == nil || strings.TrimSpace(outMsg.Content) == "" {
		return nil, fmt.Errorf("empty llm response")
	}
	return outMsg, nil
}

var articlePromptRegistry = workflowprompt.NewRegistry()

// formatArticleMessages 组装消息
// 用户侧提示词由上层组装器产出，这里不做二次格式化。
func formatArticleMessages(in *wfmodel.ArticleGenerateInput) ([]*schema.Message, error) {
	system, err := articlePromptRegistry.SystemText(workflowprompt.PromptArticleGenV1)
	if err != nil {
		return nil, err
	}
	return []*schema.Message{
		schema.SystemMessage(system),
		schema.UserMessage(strings.TrimSpace(in.Prompt)),
	}, nil
}

func buildArticleModelOptions(in *wfmodel.ArticleGenerateInput) []model.Option {
	opts := make([]model.Option, 0, 3)
	if in == nil {
		return opts
	}
	if in.Temperature != nil {
		opts = append(opts, model.WithTemperature(*in.Temperature))
	}
	if in.MaxTokens != nil {
		opts = append(opts, model.WithMaxTokens(*in.MaxTokens))
	}
	if strings.TrimSpace(in.Model) != "" {
		opts = append(opts, model.WithModel(strings.TrimSpace(in.Model)))
	}
	return opts
}
