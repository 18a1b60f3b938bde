package support

import (
	"context"
	"strings"

	"localpress-ai-api/internal/config"
	"localpress-ai-api/internal/domain/entity"
	"localpress-ai-api/internal/domain/repository"
	apperrors "localpress-ai-api/pkg/errors"
	"localpress-ai-api/pkg/logger"
)

// CreateTicketInput 建单请求
type CreateTicketInput struct {
	Subject     string
	Description string
	Category    string
	Priority    string
	Type        string

	ReporterUID   string
	ReporterName  string
	ReporterEmail string

	Diagnostics map[string]any
}

// CreateTicketOutput 建单结果
type CreateTicketOutput struct {
	Ticket     *entity.SupportTicket
	AIResponse string
	Triage     *entity.TriageResult
}

// ReplyInput 工单追加回复
type ReplyInput struct {
	Sender     entity.MessageSender
	SenderName string
	Content    string
}

// ReplyOutput 回复结果，AIResponse 仅在自动回复触发时非空
type ReplyOutput struct {
	Ticket     *entity.SupportTicket
	AIResponse string
}

// Service 工单应用服务
type Service struct {
	tickets   repository.TicketRepository
	tx        repository.Transactor
	triage    *TriageEngine
	autopilot *Autopilot
	cfg       *config.Config
}

func NewService(tickets repository.TicketRepository, tx repository.Transactor, triage *TriageEngine, autopilot *Autopilot, cfg *config.Config) *Service {
	return &Service{tickets: tickets, tx: tx, triage: triage, autopilot: autopilot, cfg: cfg}
}

// CreateTicket 建单
// 先分诊后落库，工单连同分诊结论一次写入，随后种入用户首条消息，
// 分诊成功时再追加一条 AI 首回复。分诊失败不会阻塞建单。
func (s *Service) CreateTicket(ctx context.Context, tenant *entity.Tenant, in *CreateTicketInput) (*CreateTicketOutput, error) {
	if tenant == nil {
		return nil, apperrors.New(apperrors.CodeUnauthorized, "no tenant context")
	}
	if strings.TrimSpace(in.Subject) == "" || strings.TrimSpace(in.Description) == "" {
		return nil, apperrors.New(apperrors.CodeInvalidParam, "subject and description are required")
	}
	ctx = logger.WithContext(ctx, logger.TenantIDKey, tenant.ID)

	ticket := &entity.SupportTicket{
		TenantID:      tenant.ID,
		Subject:       strings.TrimSpace(in.Subject),
		Description:   strings.TrimSpace(in.Description),
		Category:      strings.TrimSpace(in.Category),
		Type:          strings.TrimSpace(in.Type),
		Priority:      normalizePriority(in.Priority),
		Status:        entity.TicketStatusOpen,
		Mode:          entity.TicketModeAutopilot,
		ReporterUID:   strings.TrimSpace(in.ReporterUID),
		ReporterName:  strings.TrimSpace(in.ReporterName),
		ReporterEmail: strings.TrimSpace(in.ReporterEmail),
		Diagnostics:   in.Diagnostics,
	}

	aiResponse, triage := s.triage.FirstResponse(ctx, ticket, tenant.Name)
	if triage != nil {
		ticket.Triage = triage
		if triage.SuggestedStatus != "" {
			ticket.Status = triage.SuggestedStatus
		}
		if triage.SuggestedPrio != "" && strings.TrimSpace(in.Priority) == "" {
			ticket.Priority = triage.SuggestedPrio
		}
	}

	// 工单与用户首条消息同一事务落库
	err := s.tx.WithTransaction(ctx, func(txCtx context.Context) error {
		if err := s.tickets.Create(txCtx, ticket); err != nil {
			return err
		}
		return s.tickets.AddMessage(txCtx, &entity.TicketMessage{
			TicketID:   ticket.ID,
			Sender:     entity.SenderUser,
			SenderName: ticket.ReporterName,
			Content:    ticket.Description,
		})
	})
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeDatabaseError, "failed to create ticket")
	}
	ctx = logger.WithContext(ctx, logger.TicketIDKey, ticket.ID)

	if aiResponse != "" {
		if err := s.tickets.AddMessage(ctx, &entity.TicketMessage{
			TicketID: ticket.ID,
			Sender:   entity.SenderAI,
			Content:  aiResponse,
		}); err != nil {
			// 首回复写入失败不回滚工单
			logger.Error(ctx, "failed to persist triage response", err)
		}
	}

	logger.Info(ctx, "support ticket created",
		"status", string(ticket.Status),
		"priority", string(ticket.Priority),
		"triaged", triage != nil)

	return &CreateTicketOutput{Ticket: ticket, AIResponse: aiResponse, Triage: triage}, nil
}

// Reply 追加回复
// 用户在 autopilot 模式下发言会触发自动回复；自动回复失败只静默跳过。
// 管理员发言把工单切回人工模式。
func (s *Service) Reply(ctx context.Context, tenant *entity.Tenant, ticketID string, in *ReplyInput) (*ReplyOutput, error) {
	if tenant == nil {
		return nil, apperrors.New(apperrors.CodeUnauthorized, "no tenant context")
	}
	if strings.TrimSpace(in.Content) == "" {
		return nil, apperrors.New(apperrors.CodeInvalidParam, "content is required")
	}
	ctx = logger.WithContext(ctx, logger.TicketIDKey, ticketID)

	ticket, err := s.tickets.GetByID(ctx, tenant.ID, ticketID)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeDatabaseError, "failed to load ticket")
	}
	if ticket == nil {
		return nil, apperrors.New(apperrors.CodeTicketNotFound, "ticket not found")
	}

	sender := in.Sender
	if sender != entity.SenderAdmin {
		sender = entity.SenderUser
	}

	if err := s.tickets.AddMessage(ctx, &entity.TicketMessage{
		TicketID:   ticket.ID,
		Sender:     sender,
		SenderName: strings.TrimSpace(in.SenderName),
		Content:    strings.TrimSpace(in.Content),
	}); err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeDatabaseError, "failed to append message")
	}

	out := &ReplyOutput{Ticket: ticket}

	if sender == entity.SenderAdmin {
		if ticket.Mode == entity.TicketModeAutopilot {
			if err := s.tickets.UpdateMode(ctx, ticket.ID, entity.TicketModeManual); err != nil {
				logger.Warn(ctx, "failed to update ticket mode", "error", err.Error())
			} else {
				ticket.Mode = entity.TicketModeManual
			}
		}
		if ticket.Status == entity.TicketStatusOpen {
			if err := s.tickets.UpdateStatus(ctx, ticket.ID, entity.TicketStatusInProgress, ticket.Priority); err != nil {
				logger.Warn(ctx, "failed to update ticket status", "error", err.Error())
			} else {
				ticket.Status = entity.TicketStatusInProgress
			}
		}
		return out, nil
	}

	if ticket.Mode != entity.TicketModeAutopilot || !s.autopilotEnabled() {
		return out, nil
	}

	history, err := s.tickets.ListRecentMessages(ctx, ticket.ID, s.historyLimit())
	if err != nil {
		logger.Warn(ctx, "failed to load conversation history, skipping autopilot", "error", err.Error())
		return out, nil
	}

	reply, err := s.autopilot.Respond(ctx, ticket, history, adminIsAbsent(history))
	if err != nil {
		logger.Warn(ctx, "autopilot reply failed, suppressing", "error", err.Error())
		return out, nil
	}

	if err := s.tickets.AddMessage(ctx, &entity.TicketMessage{
		TicketID: ticket.ID,
		Sender:   entity.SenderAI,
		Content:  reply,
	}); err != nil {
		logger.Error(ctx, "failed to persist autopilot reply", err)
		return out, nil
	}

	out.AIResponse = reply
	return out, nil
}

// SetStatus 人工更新工单状态与优先级，留空的字段保持原值
func (s *Service) SetStatus(ctx context.Context, tenant *entity.Tenant, ticketID, status, priority string) (*entity.SupportTicket, error) {
	if tenant == nil {
		return nil, apperrors.New(apperrors.CodeUnauthorized, "no tenant context")
	}
	ctx = logger.WithContext(ctx, logger.TicketIDKey, ticketID)

	ticket, err := s.tickets.GetByID(ctx, tenant.ID, ticketID)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeDatabaseError, "failed to load ticket")
	}
	if ticket == nil {
		return nil, apperrors.New(apperrors.CodeTicketNotFound, "ticket not found")
	}

	newStatus := ticket.Status
	if v := strings.TrimSpace(status); v != "" {
		st := entity.TicketStatus(strings.ToLower(v))
		if !entity.ValidTicketStatus(st) {
			return nil, apperrors.New(apperrors.CodeInvalidParam, "invalid status: "+v)
		}
		newStatus = st
	}

	newPriority := ticket.Priority
	if v := strings.TrimSpace(priority); v != "" {
		pr := entity.TicketPriority(strings.ToLower(v))
		if !entity.ValidTicketPriority(pr) {
			return nil, apperrors.New(apperrors.CodeInvalidParam, "invalid priority: "+v)
		}
		newPriority = pr
	}

	if newStatus == ticket.Status && newPriority == ticket.Priority {
		return ticket, nil
	}

	if err := s.tickets.UpdateStatus(ctx, ticket.ID, newStatus, newPriority); err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeDatabaseError, "failed to update ticket")
	}
	ticket.Status = newStatus
	ticket.Priority = newPriority

	logger.Info(ctx, "ticket status updated",
		"status", string(newStatus),
		"priority", string(newPriority))

	return ticket, nil
}

func (s *Service) autopilotEnabled() bool {
	return s.cfg != nil && s.cfg.Support.AutopilotEnabled
}

func (s *Service) historyLimit() int {
	if s.cfg != nil && s.cfg.Support.HistoryTurns > 0 {
		return s.cfg.Support.HistoryTurns
	}
	return DefaultHistoryTurns
}

// adminIsAbsent 近期会话里没有人工客服发言即视为人工暂离
func adminIsAbsent(history []*entity.TicketMessage) bool {
	for _, m := range history {
		if m != nil && m.Sender == entity.SenderAdmin {
			return false
		}
	}
	return true
}
