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

type AutopilotChain struct {
	factory workflowport.ChatModelFactory
}

func NewAutopilotChain(factory workflowport.ChatModelFactory) *AutopilotChain {
	return &AutopilotChain{factory: factory}
}

func (c *AutopilotChain) Invoke(ctx context.Context, in *wfmodel.AutopilotInput) (string, error) {
	if c == nil || c.factory == nil {
		return "", fmt.Errorf("llm factory not configured")
	}
	if in == nil {
		return "", fmt.Errorf("input is nil")
	}
	if strings.TrimSpace(in.Provider) == "" {
		return "", fmt.Errorf("provider is required")
	}
	if len(in.History) == 0 {
		return "", fmt.Errorf("conversation history is required")
	}

	chatModel, err := c.factory.Get(ctx, strings.TrimSpace(in.Provider))
	if err != nil {
		return "", err
	}

	msgs, err := formatAutopilotMessages(in)
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
	return strings.TrimSpace(outMsg.Content), nil
}

var autopilotPromptRegistry = workflowprompt.NewRegistry()

func formatAutopilotMessages(in *wfmodel.AutopilotInput) ([]*schema.Message, error) {
	system, err := autopilotPromptRegistry.SystemText(workflowprompt.PromptAutopilotV1)
	if err != nil {
		return nil, err
	}

	var b strings.Builder
	b.WriteString("KNOWLEDGE BASE:\n")
	b.WriteString(strings.TrimSpace(in.Knowledge))
	b.WriteString("\n\nTICKET SUBJECT: ")
	b.WriteString(strings.TrimSpace(in.Subject))
	b.WriteString("\n\nCONVERSATION:\n")
	for _, turn := range in.History {
		b.WriteString(speakerLabel(turn.Role))
		b.WriteString(": ")
		b.WriteString(strings.TrimSpace(turn.Content))
		b.WriteString("\n")
	}
	if in.AdminBusy {
		b.WriteString("\nThe human support team is currently unavailable. Mention that a team member will review the ticket when they are back, without giving a timeline.\n")
	}
	b.WriteString("\nWrite the next reply to the customer.")

	return []*schema.Message{
		schema.SystemMessage(system),
		schema.UserMessage(b.String()),
	}, nil
}

func speakerLabel(role string) string {
	switch role {
	case "user":
		return "Customer"
	default:
		return "Support"
	}
}
