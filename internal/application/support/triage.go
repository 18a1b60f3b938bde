package support

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"localpress-ai-api/internal/config"
	"localpress-ai-api/internal/domain/entity"
	wfmodel "localpress-ai-api/internal/workflow/model"
	"localpress-ai-api/internal/workflow/node"
	"localpress-ai-api/pkg/logger"
	"localpress-ai-api/pkg/metrics"
)

// TriageInvoker 分诊链调用
type TriageInvoker interface {
	Invoke(ctx context.Context, in *wfmodel.TriageInput) (string, error)
}

// TriageEngine 工单分诊引擎
// 分诊是尽力而为的增强，任何失败都退化为通用答复，绝不阻塞建单。
type TriageEngine struct {
	chain TriageInvoker
	cfg   *config.Config
}

func NewTriageEngine(chain TriageInvoker, cfg *config.Config) *TriageEngine {
	return &TriageEngine{chain: chain, cfg: cfg}
}

// triageVerdict 模型输出的结构化结论
type triageVerdict struct {
	Classification   string `json:"classification"`
	Confidence       string `json:"confidence"`
	MatchedKnowledge string `json:"matched_knowledge"`
	SuggestedReply   string `json:"suggested_response"`
	SuggestedStatus  string `json:"suggested_status"`
	SuggestedPrio    string `json:"suggested_priority"`
	Escalate         bool   `json:"escalate"`
}

// FirstResponse 对新工单做分诊并产出首条回复
// 永不返回错误：模型失败或输出不可解析时返回通用答复与 nil 结论。
func (e *TriageEngine) FirstResponse(ctx context.Context, ticket *entity.SupportTicket, tenantName string) (string, *entity.TriageResult) {
	if e == nil || e.chain == nil || ticket == nil {
		return fallbackAdvisory(tenantName), nil
	}

	var temp *float32
	if e.cfg != nil && e.cfg.Support.Temperature > 0 {
		t := float32(e.cfg.Support.Temperature)
		temp = &t
	}

	raw, err := e.chain.Invoke(ctx, &wfmodel.TriageInput{
		Provider:    e.provider(),
		Subject:     ticket.Subject,
		Body:        buildTriageBody(ticket, tenantName),
		Knowledge:   knowledgeBase,
		Temperature: temp,
	})
	if err != nil {
		logger.Warn(ctx, "triage call failed, using advisory fallback", "error", err.Error())
		metrics.TriageTotal.WithLabelValues("fallback").Inc()
		return fallbackAdvisory(tenantName), nil
	}

	var verdict triageVerdict
	if err := json.Unmarshal([]byte(node.ExtractJSONObject(raw)), &verdict); err != nil {
		logger.Warn(ctx, "triage output unparseable, using advisory fallback", "error", err.Error())
		metrics.TriageTotal.WithLabelValues("fallback").Inc()
		return fallbackAdvisory(tenantName), nil
	}

	classification := entity.TriageClassification(strings.TrimSpace(verdict.Classification))
	if !entity.ValidClassification(classification) || strings.TrimSpace(verdict.SuggestedReply) == "" {
		logger.Warn(ctx, "triage verdict invalid, using advisory fallback",
			"classification", verdict.Classification)
		metrics.TriageTotal.WithLabelValues("fallback").Inc()
		return fallbackAdvisory(tenantName), nil
	}

	result := &entity.TriageResult{
		Classification:   classification,
		Confidence:       normalizeConfidence(verdict.Confidence),
		MatchedKnowledge: strings.TrimSpace(verdict.MatchedKnowledge),
		SuggestedReply:   strings.TrimSpace(verdict.SuggestedReply),
		SuggestedStatus:  normalizeStatus(verdict.SuggestedStatus),
		SuggestedPrio:    normalizePriority(verdict.SuggestedPrio),
		Escalate:         verdict.Escalate,
	}

	metrics.TriageTotal.WithLabelValues(string(classification)).Inc()
	return result.SuggestedReply, result
}

func (e *TriageEngine) provider() string {
	if e.cfg != nil {
		if p := strings.TrimSpace(e.cfg.Support.Provider); p != "" {
			return p
		}
		return e.cfg.LLM.DefaultProvider
	}
	return ""
}

func buildTriageBody(ticket *entity.SupportTicket, tenantName string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Tenant: %s\n", tenantName)
	if c := strings.TrimSpace(ticket.Category); c != "" {
		fmt.Fprintf(&b, "Ticket category: %s\n", c)
	}
	b.WriteString("\n")
	b.WriteString(strings.TrimSpace(ticket.Description))

	if len(ticket.Diagnostics) > 0 {
		if diag, err := json.Marshal(ticket.Diagnostics); err == nil {
			b.WriteString("\n\nDiagnostics:\n")
			b.Write(diag)
		}
	}
	return b.String()
}

func fallbackAdvisory(tenantName string) string {
	name := strings.TrimSpace(tenantName)
	if name == "" {
		name = "your site"
	}
	return fmt.Sprintf(
		"Thanks for reaching out about %s. We've received your ticket and our team will review it shortly. "+
			"In the meantime, you may find quick answers in the help section of your dashboard. "+
			"We'll follow up here as soon as we have more information.", name)
}

func normalizeConfidence(s string) entity.TriageConfidence {
	switch entity.TriageConfidence(strings.TrimSpace(strings.ToLower(s))) {
	case entity.TriageConfidenceHigh:
		return entity.TriageConfidenceHigh
	case entity.TriageConfidenceMedium:
		return entity.TriageConfidenceMedium
	default:
		return entity.TriageConfidenceLow
	}
}

func normalizeStatus(s string) entity.TicketStatus {
	switch entity.TicketStatus(strings.TrimSpace(strings.ToLower(s))) {
	case entity.TicketStatusInProgress:
		return entity.TicketStatusInProgress
	case entity.TicketStatusWaiting:
		return entity.TicketStatusWaiting
	case entity.TicketStatusResolved:
		return entity.TicketStatusResolved
	default:
		return entity.TicketStatusOpen
	}
}

func normalizePriority(s string) entity.TicketPriority {
	switch entity.TicketPriority(strings.TrimSpace(strings.ToLower(s))) {
	case entity.TicketPriorityLow:
		return entity.TicketPriorityLow
	case entity.TicketPriorityHigh:
		return entity.TicketPriorityHigh
	case entity.TicketPriorityUrgent:
		return entity.TicketPriorityUrgent
	default:
		return entity.TicketPriorityMedium
	}
}
