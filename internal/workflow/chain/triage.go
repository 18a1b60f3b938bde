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

type TriageChain struct {
	factory workflowport.ChatModelFactory
}

func NewTriageChain(factory workflowport.ChatModelFactory) *TriageChain {
	return &TriageChain{factory: factory}
}

// Invoke 返回模型原始输出，JSON 解析由上层负责
func (c *TriageChain) Invoke(ctx context.Context, in *wfmodel.TriageInput) (string, error) {
	if c == nil || c.factory == nil {
		return "", fmt.Errorf("llm factory not configured")
	}
	if in == nil {
		return "", fmt.Errorf("input is nil")
	}
	if strings.TrimSpace(in.Provider) == "" {
		return "", fmt.Errorf("provider is required")
	}
	if strings.TrimSpace(in.Body) == "" {
		return "", fmt.Errorf("ticket body is required")
	}

	chatModel, err := c.factory.Get(ctx, strings.TrimSpace(in.Provider))
	if err != nil {
		return "", err
	}

	msgs, err := formatTriageMessages(in)
	if err != nil {
		return "", err
	}

	opts := make([]model.Option, 0, 1)
	if in.Temperature != nil {
		opts = append(opts, model.WithTemperature(*in.Temperature))
	}

	outMsg, err := chatModel.Generate(ctx, msgs, opts...)
	if err != nil {
		return "", err
	}
	if outMsg == nil || strings.TrimSpace(outMsg.Content) == "" {
		return "", fmt.Errorf("empty llm response")
	}
	return outMsg.Content, nil
}

var triagePromptRegistry = workflowprompt.NewRegistry()

func formatTriageMessages(in *wfmodel.TriageInput) ([]*schema.Message, error) {
	system, err := triagePromptRegistry.SystemText(workflowprompt.PromptTriageV1)
	if err != nil {
		return nil, err
	}

	var b strings.Builder
	b.WriteString("KNOWLEDGE BASE:\n")
	b.WriteString(strings.TrimSpace(in.Knowledge))
	b.WriteString("\n\nTICKET SUBJECT: ")
	b.WriteString(strings.TrimSpace(in.Subject))
	b.WriteString("\n\nTICKET BODY:\n")
	b.WriteString(strings.TrimSpace(in.Body))

	return []*schema.Message{
		schema.SystemMessage(system),
		schema.UserMessage(b.String()),
	}, nil
}
