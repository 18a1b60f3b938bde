package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"localpress-ai-api/internal/domain/entity"
)

// TicketRepository 支持工单仓储实现
type TicketRepository struct {
	client *Client
}

// NewTicketRepository 创建工单仓储
func NewTicketRepository(client *Client) *TicketRepository {
	return &TicketRepository{client: client}
}

// Create 创建工单
func (r *TicketRepository) Create(ctx context.Context, ticket *entity.SupportTicket) error {
	ctx, span := tracer.Start(ctx, "postgres.TicketRepository.Create")
	defer span.End()

	q := getQuerier(ctx, r.client.sqlDB)

	diagnosticsJSON, _ := json.Marshal(ticket.Diagnostics)
	triageJSON, _ := json.Marshal(ticket.Triage)

	query := `
		INSERT INTO support_tickets (id, tenant_id, subject, description, category, type,
			priority, status, mode, reporter_uid, reporter_name, reporter_email,
			diagnostics, triage, created_at, updated_at)
		VALUES (gen_random_uuid(), $1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`

	err := q.QueryRowContext(ctx, query,
		ticket.TenantID, ticket.Subject, ticket.Description, ticket.Category, ticket.Type,
		ticket.Priority, ticket.Status, ticket.Mode,
		ticket.ReporterUID, ticket.ReporterName, ticket.ReporterEmail,
		diagnosticsJSON, triageJSON,
	).Scan(&ticket.ID, &ticket.CreatedAt, &ticket.UpdatedAt)

	if err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to create ticket: %w", err)
	}

	return nil
}

// GetByID 根据租户与 ID 获取工单
func (r *TicketRepository) GetByID(ctx context.Context, tenantID, id string) (*entity.SupportTicket, error) {
	ctx, span := tracer.Start(ctx, "postgres.TicketRepository.GetByID")
	defer span.End()

	q := getQuerier(ctx, r.client.sqlDB)

	query := `
		SELECT id, tenant_id, subject, description, category, type, priority, status, mode,
			reporter_uid, reporter_name, reporter_email, diagnostics, triage, created_at, updated_at
		FROM support_tickets
		WHERE tenant_id = $1 AND id = $2
	`

	var t entity.SupportTicket
	var category, ticketType, reporterUID, reporterName, reporterEmail sql.NullString
	var diagnosticsJSON, triageJSON []byte

	err := q.QueryRowContext(ctx, query, tenantID, id).Scan(
		&t.ID, &t.TenantID, &t.Subject, &t.Description, &category, &ticketType,
		&t.Priority, &t.Status, &t.Mode,
		&reporterUID, &reporterName, &reporterEmail,
		&diagnosticsJSON, &triageJSON, &t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		span.RecordError(err)
		return nil, fmt.Errorf("failed to get ticket: %w", err)
	}

	t.Category = category.String
	t.Type = ticketType.String
	t.ReporterUID = reporterUID.String
	t.ReporterName = reporterName.String
	t.ReporterEmail = reporterEmail.String
	if len(diagnosticsJSON) > 0 {
		json.Unmarshal(diagnosticsJSON, &t.Diagnostics)
	}
	if len(triageJSON) > 0 {
		json.Unmarshal(triageJSON, &t.Triage)
	}

	return &t, nil
}

// UpdateStatus 更新工单状态与优先级
func (r *TicketRepository) UpdateStatus(ctx context.Context, id string, status entity.TicketStatus, priority entity.TicketPriority) error {
	ctx, span := tracer.Start(ctx, "postgres.TicketRepository.UpdateStatus")
	defer span.End()

	q := getQuerier(ctx, r.client.sqlDB)

	query := `
		UPDATE support_tickets
		SET status = $1, priority = $2, updated_at = NOW()
		WHERE id = $3
	`

	if _, err := q.ExecContext(ctx, query, status, priority, id); err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to update ticket status: %w", err)
	}

	return nil
}

// UpdateMode 更新工单会话模式
func (r *TicketRepository) UpdateMode(ctx context.Context, id string, mode entity.TicketMode) error {
	ctx, span := tracer.Start(ctx, "postgres.TicketRepository.UpdateMode")
	defer span.End()

	q := getQuerier(ctx, r.client.sqlDB)

	query := `
		UPDATE support_tickets
		SET mode = $1, updated_at = NOW()
		WHERE id = $2
	`

	if _, err := q.ExecContext(ctx, query, mode, id); err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to update ticket mode: %w", err)
	}

	return nil
}

// AddMessage 追加一条会话消息
func (r *TicketRepository) AddMessage(ctx context.Context, msg *entity.TicketMessage) error {
	ctx, span := tracer.Start(ctx, "postgres.TicketRepository.AddMessage")
	defer span.End()

	q := getQuerier(ctx, r.client.sqlDB)

	query := `
		INSERT INTO ticket_messages (id, ticket_id, sender, sender_name, content, created_at)
		VALUES (gen_random_uuid(), $1, $2, $3, $4, NOW())
		RETURNING id, created_at
	`

	err := q.QueryRowContext(ctx, query,
		msg.TicketID, msg.Sender, msg.SenderName, msg.Content,
	).Scan(&msg.ID, &msg.CreatedAt)

	if err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to add ticket message: %w", err)
	}

	return nil
}

// ListRecentMessages 按时间正序返回最近 limit 条会话消息
func (r *TicketRepository) ListRecentMessages(ctx context.Context, ticketID string, limit int) ([]*entity.TicketMessage, error) {
	ctx, span := tracer.Start(ctx, "postgres.TicketRepository.ListRecentMessages")
	defer span.End()

	q := getQuerier(ctx, r.client.sqlDB)

	query := `
		SELECT id, ticket_id, sender, sender_name, content, created_at
		FROM (
			SELECT id, ticket_id, sender, sender_name, content, created_at
			FROM ticket_messages
			WHERE ticket_id = $1
			ORDER BY created_at DESC
			LIMIT $2
		) recent
		ORDER BY created_at ASC
	`

	rows, err := q.QueryContext(ctx, query, ticketID, limit)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to list ticket messages: %w", err)
	}
	defer rows.Close()

	var msgs []*entity.TicketMessage
	for rows.Next() {
		var m entity.TicketMessage
		var senderName sql.NullString
		if err := rows.Scan(&m.ID, &m.TicketID, &m.Sender, &senderName, &m.Content, &m.CreatedAt); err != nil {
			span.RecordError(err)
			return nil, fmt.Errorf("failed to scan ticket message: %w", err)
		}
		m.SenderName = senderName.String
		msgs = append(msgs, &m)
	}

	if err := rows.Err(); err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to iterate ticket messages: %w", err)
	}

	return msgs, nil
}
