package repository

import (
	"context"

	"localpress-ai-api/internal/domain/entity"
)

// TicketRepository 支持工单仓储接口
type TicketRepository interface {
	// Create 持久化工单，回填 ID 与创建时间
	Create(ctx context.Context, ticket *entity.SupportTicket) error
	// GetByID 按租户与 ID 获取工单，不存在时返回 (nil, nil)
	GetByID(ctx context.Context, tenantID, id string) (*entity.SupportTicket, error)
	// UpdateStatus 更新工单状态与优先级
	UpdateStatus(ctx context.Context, id string, status entity.TicketStatus, priority entity.TicketPriority) error
	// UpdateMode 更新工单会话模式
	UpdateMode(ctx context.Context, id string, mode entity.TicketMode) error
	// AddMessage 追加一条会话消息，回填 ID 与创建时间
	AddMessage(ctx context.Context, msg *entity.TicketMessage) error
	// ListRecentMessages 按时间正序返回最近 limit 条会话消息
	ListRecentMessages(ctx context.Context, ticketID string, limit int) ([]*entity.TicketMessage, error)
}
