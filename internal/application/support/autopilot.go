package support

import (
	"context"
	"strings"

	"localpress-ai-api/internal/config"
	"localpress-ai-api/internal/domain/entity"
	wfmodel "localpress-ai-api/internal/workflow/model"
	"localpress-ai-api/pkg/metrics"
)

// AutopilotInvoker 自动回复链调用
type AutopilotInvoker interface {
	Invoke(ctx context.Context, in *wfmodel.AutopilotInput) (string, error)
}

// DefaultHistoryTurns 自动回复携带的默认会话轮数
const DefaultHistoryTurns = 6

// Autopilot 无人值守回复器，单次调用无状态
type Autopilot struct {
	chain AutopilotInvoker
	cfg   *config.Config
}

func NewAutopilot(chain AutopilotInvoker, cfg *config.Config) *Autopilot {
	return &Autopilot{chain: chain, cfg: cfg}
}

// Respond 生成下一条回复
// 上游失败时返回错误，调用方应静默跳过本次自动回复。
func (a *Autopilot) Respond(ctx context.Context, ticket *entity.SupportTicket, history []*entity.TicketMessage, adminBusy bool) (string, error) {
	turns := a.historyTurns()
	if len(history) > turns {
		history = history[len(history)-turns:]
	}

	hist := make([]wfmodel.Turn, 0, len(history))
	for _, m := range history {
		if m == nil {
			continue
		}
		hist = append(hist, wfmodel.Turn{
			Role:    string(m.Sender),
			Content: m.Content,
		})
	}

	var temp *float32
	if a.cfg != nil && a.cfg.Support.Temperature > 0 {
		t := float32(a.cfg.Support.Temperature)
		temp = &t
	}

	reply, err := a.chain.Invoke(ctx, &wfmodel.AutopilotInput{
		Provider:    a.provider(),
		Subject:     ticket.Subject,
		History:     hist,
		Knowledge:   knowledgeBase,
		AdminBusy:   adminBusy,
		Temperature: temp,
	})
	if err != nil {
		metrics.AutopilotRepliesTotal.WithLabelValues("failure").Inc()
		return "", err
	}

	metrics.AutopilotRepliesTotal.WithLabelValues("success").Inc()
	return reply, nil
}

func (a *Autopilot) historyTurns() int {
	if a.cfg != nil && a.cfg.Support.HistoryTurns > 0 {
		return a.cfg.Support.HistoryTurns
	}
	return DefaultHistoryTurns
}

func (a *Autopilot) provider() string {
	if a.cfg != nil {
		if p := strings.TrimSpace(a.cfg.Support.Provider); p != "" {
			return p
		}
		return a.cfg.LLM.DefaultProvider
	}
	return ""
}
