package support

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"localpress-ai-api/internal/domain/entity"
	apperrors "localpress-ai-api/pkg/errors"
)

type memTicketRepo struct {
	tickets       map[string]*entity.SupportTicket
	messages      map[string][]*entity.TicketMessage
	createErr     error
	updateModeErr error
	seq           int
}

func newMemTicketRepo() *memTicketRepo {
	return &memTicketRepo{
		tickets:  map[string]*entity.SupportTicket{},
		messages: map[string][]*entity.TicketMessage{},
	}
}

func (r *memTicketRepo) Create(ctx context.Context, ticket *entity.SupportTicket) error {
	if r.createErr != nil {
		return r.createErr
	}
	r.seq++
	ticket.ID = fmt.Sprintf("ticket-%d", r.seq)
	r.tickets[ticket.ID] = ticket
	return nil
}

// GetByID 返回副本，模拟真实存储不共享内存指针。
func (r *memTicketRepo) GetByID(ctx context.Context, tenantID, id string) (*entity.SupportTicket, error) {
	t, ok := r.tickets[id]
	if !ok || t.TenantID != tenantID {
		return nil, nil
	}
	cp := *t
	return &cp, nil
}

func (r *memTicketRepo) UpdateStatus(ctx context.Context, id string, status entity.TicketStatus, priority entity.TicketPriority) error {
	if t, ok := r.tickets[id]; ok {
		t.Status = status
		t.Priority = priority
	}
	return nil
}

func (r *memTicketRepo) UpdateMode(ctx context.Context, id string, mode entity.TicketMode) error {
	if r.updateModeErr != nil {
		return r.updateModeErr
	}
	if t, ok := r.tickets[id]; ok {
		t.Mode = mode
	}
	return nil
}

func (r *memTicketRepo) AddMessage(ctx context.Context, msg *entity.TicketMessage) error {
	r.seq++
	msg.ID = fmt.Sprintf("msg-%d", r.seq)
	r.messages[msg.TicketID] = append(r.messages[msg.TicketID], msg)
	return nil
}

func (r *memTicketRepo) ListRecentMessages(ctx context.Context, ticketID string, limit int) ([]*entity.TicketMessage, error) {
	msgs := r.messages[ticketID]
	if len(msgs) > limit {
		msgs = msgs[len(msgs)-limit:]
	}
	return msgs, nil
}

type passthroughTx struct{}

func (passthroughTx) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func newTestService(repo *memTicketRepo, triageChain TriageInvoker, autopilotChain AutopilotInvoker) *Service {
	cfg := supportConfig()
	return NewService(repo, passthroughTx{}, NewTriageEngine(triageChain, cfg), NewAutopilot(autopilotChain, cfg), cfg)
}

func TestCreateTicketWithTriage(t *testing.T) {
	repo := newMemTicketRepo()
	svc := newTestService(repo, &stubTriageChain{out: validVerdict}, &stubAutopilotChain{})

	out, err := svc.CreateTicket(context.Background(), &entity.Tenant{ID: "t1", Name: "Bergen Local News"}, &CreateTicketInput{
		Subject:      "Article generation returns an error",
		Description:  "Every time I click generate I get a red banner.",
		ReporterName: "Dana",
	})

	require.NoError(t, err)
	require.NotNil(t, out.Ticket)
	require.NotNil(t, out.Triage)
	assert.NotEmpty(t, out.Ticket.ID)
	assert.Equal(t, entity.TicketModeAutopilot, out.Ticket.Mode)
	assert.Equal(t, entity.TicketStatusInProgress, out.Ticket.Status, "suggested status must be applied")
	assert.Equal(t, entity.TicketPriorityHigh, out.Ticket.Priority, "suggested priority fills the blank")
	assert.Equal(t, out.Triage.SuggestedReply, out.AIResponse)

	msgs := repo.messages[out.Ticket.ID]
	require.Len(t, msgs, 2)
	assert.Equal(t, entity.SenderUser, msgs[0].Sender)
	assert.Equal(t, "Dana", msgs[0].SenderName)
	assert.Equal(t, entity.SenderAI, msgs[1].Sender)
	assert.Equal(t, out.AIResponse, msgs[1].Content)
}

func TestCreateTicketExplicitPriorityWins(t *testing.T) {
	repo := newMemTicketRepo()
	svc := newTestService(repo, &stubTriageChain{out: validVerdict}, &stubAutopilotChain{})

	out, err := svc.CreateTicket(context.Background(), &entity.Tenant{ID: "t1"}, &CreateTicketInput{
		Subject:     "s",
		Description: "d",
		Priority:    "urgent",
	})

	require.NoError(t, err)
	assert.Equal(t, entity.TicketPriorityUrgent, out.Ticket.Priority)
}

func TestCreateTicketTriageFailureStillCreates(t *testing.T) {
	repo := newMemTicketRepo()
	svc := newTestService(repo, &stubTriageChain{err: errors.New("provider down")}, &stubAutopilotChain{})

	out, err := svc.CreateTicket(context.Background(), &entity.Tenant{ID: "t1", Name: "Bergen Local News"}, &CreateTicketInput{
		Subject:     "Cannot log in",
		Description: "Password reset email never arrives.",
	})

	require.NoError(t, err)
	assert.Nil(t, out.Triage)
	assert.NotEmpty(t, out.AIResponse, "fallback advisory must still be produced")
	assert.Equal(t, entity.TicketStatusOpen, out.Ticket.Status)
	assert.Equal(t, entity.TicketPriorityMedium, out.Ticket.Priority)
}

func TestCreateTicketValidation(t *testing.T) {
	svc := newTestService(newMemTicketRepo(), &stubTriageChain{}, &stubAutopilotChain{})

	_, err := svc.CreateTicket(context.Background(), &entity.Tenant{ID: "t1"}, &CreateTicketInput{
		Subject: "only a subject",
	})

	require.Error(t, err)
	assert.Equal(t, apperrors.CodeInvalidParam, apperrors.AsAppError(err).Code)
}

func TestCreateTicketPersistFailure(t *testing.T) {
	repo := newMemTicketRepo()
	repo.createErr = errors.New("insert failed")
	svc := newTestService(repo, &stubTriageChain{out: validVerdict}, &stubAutopilotChain{})

	_, err := svc.CreateTicket(context.Background(), &entity.Tenant{ID: "t1"}, &CreateTicketInput{
		Subject:     "s",
		Description: "d",
	})

	require.Error(t, err)
	assert.Equal(t, apperrors.CodeDatabaseError, apperrors.AsAppError(err).Code)
}

func seedTicket(repo *memTicketRepo, mode entity.TicketMode) *entity.SupportTicket {
	ticket := &entity.SupportTicket{
		TenantID: "t1",
		Subject:  "Cannot log in",
		Mode:     mode,
		Status:   entity.TicketStatusOpen,
		Priority: entity.TicketPriorityMedium,
	}
	_ = repo.Create(context.Background(), ticket)
	return ticket
}

func TestReplyUserTriggersAutopilot(t *testing.T) {
	repo := newMemTicketRepo()
	chain := &stubAutopilotChain{out: "Try clearing your browser cache."}
	svc := newTestService(repo, &stubTriageChain{}, chain)
	ticket := seedTicket(repo, entity.TicketModeAutopilot)

	out, err := svc.Reply(context.Background(), &entity.Tenant{ID: "t1"}, ticket.ID, &ReplyInput{
		Sender:  entity.SenderUser,
		Content: "Still broken after the reset.",
	})

	require.NoError(t, err)
	assert.Equal(t, "Try clearing your browser cache.", out.AIResponse)
	require.NotNil(t, chain.last)
	assert.True(t, chain.last.AdminBusy, "no admin in history means admin is absent")

	msgs := repo.messages[ticket.ID]
	require.Len(t, msgs, 2)
	assert.Equal(t, entity.SenderUser, msgs[0].Sender)
	assert.Equal(t, entity.SenderAI, msgs[1].Sender)
}

func TestReplyAdminSwitchesToManual(t *testing.T) {
	repo := newMemTicketRepo()
	chain := &stubAutopilotChain{out: "should not be used"}
	svc := newTestService(repo, &stubTriageChain{}, chain)
	ticket := seedTicket(repo, entity.TicketModeAutopilot)

	out, err := svc.Reply(context.Background(), &entity.Tenant{ID: "t1"}, ticket.ID, &ReplyInput{
		Sender:     entity.SenderAdmin,
		SenderName: "Support Team",
		Content:    "Looking into this now.",
	})

	require.NoError(t, err)
	assert.Empty(t, out.AIResponse)
	assert.Equal(t, entity.TicketModeManual, out.Ticket.Mode)
	assert.Equal(t, entity.TicketStatusInProgress, out.Ticket.Status)
	assert.Nil(t, chain.last, "autopilot must not run on admin replies")
	assert.Equal(t, entity.TicketModeManual, repo.tickets[ticket.ID].Mode, "takeover must be persisted")
}

func TestReplyAdminTakeoverIsDurable(t *testing.T) {
	repo := newMemTicketRepo()
	chain := &stubAutopilotChain{out: "should not be used"}
	svc := newTestService(repo, &stubTriageChain{}, chain)
	ticket := seedTicket(repo, entity.TicketModeAutopilot)

	_, err := svc.Reply(context.Background(), &entity.Tenant{ID: "t1"}, ticket.ID, &ReplyInput{
		Sender:     entity.SenderAdmin,
		SenderName: "Support Team",
		Content:    "A human is handling this now.",
	})
	require.NoError(t, err)

	// 接管后的用户追问走人工模式，不再触发自动回复
	out, err := svc.Reply(context.Background(), &entity.Tenant{ID: "t1"}, ticket.ID, &ReplyInput{
		Sender:  entity.SenderUser,
		Content: "Thanks!",
	})
	require.NoError(t, err)
	assert.Empty(t, out.AIResponse)
	assert.Equal(t, entity.TicketModeManual, out.Ticket.Mode)
	assert.Nil(t, chain.last, "autopilot must stay off after human takeover")
}

func TestReplyAdminModePersistFailureKeepsAutopilot(t *testing.T) {
	repo := newMemTicketRepo()
	repo.updateModeErr = errors.New("db down")
	svc := newTestService(repo, &stubTriageChain{}, &stubAutopilotChain{})
	ticket := seedTicket(repo, entity.TicketModeAutopilot)

	out, err := svc.Reply(context.Background(), &entity.Tenant{ID: "t1"}, ticket.ID, &ReplyInput{
		Sender:  entity.SenderAdmin,
		Content: "Looking into this now.",
	})

	require.NoError(t, err)
	assert.Equal(t, entity.TicketModeAutopilot, out.Ticket.Mode, "mode only flips once the store accepts it")
}

func TestReplyManualModeSkipsAutopilot(t *testing.T) {
	repo := newMemTicketRepo()
	chain := &stubAutopilotChain{out: "should not be used"}
	svc := newTestService(repo, &stubTriageChain{}, chain)
	ticket := seedTicket(repo, entity.TicketModeManual)

	out, err := svc.Reply(context.Background(), &entity.Tenant{ID: "t1"}, ticket.ID, &ReplyInput{
		Sender:  entity.SenderUser,
		Content: "Any update?",
	})

	require.NoError(t, err)
	assert.Empty(t, out.AIResponse)
	assert.Nil(t, chain.last)
}

func TestReplyAutopilotFailureIsSuppressed(t *testing.T) {
	repo := newMemTicketRepo()
	svc := newTestService(repo, &stubTriageChain{}, &stubAutopilotChain{err: errors.New("provider down")})
	ticket := seedTicket(repo, entity.TicketModeAutopilot)

	out, err := svc.Reply(context.Background(), &entity.Tenant{ID: "t1"}, ticket.ID, &ReplyInput{
		Sender:  entity.SenderUser,
		Content: "Hello?",
	})

	require.NoError(t, err, "autopilot failure must not fail the reply")
	assert.Empty(t, out.AIResponse)
	require.Len(t, repo.messages[ticket.ID], 1, "only the user message is persisted")
}

func TestReplyAdminRecentlyActiveNotBusy(t *testing.T) {
	repo := newMemTicketRepo()
	chain := &stubAutopilotChain{out: "ok"}
	svc := newTestService(repo, &stubTriageChain{}, chain)
	ticket := seedTicket(repo, entity.TicketModeAutopilot)
	_ = repo.AddMessage(context.Background(), &entity.TicketMessage{
		TicketID: ticket.ID,
		Sender:   entity.SenderAdmin,
		Content:  "We are on it.",
	})

	_, err := svc.Reply(context.Background(), &entity.Tenant{ID: "t1"}, ticket.ID, &ReplyInput{
		Sender:  entity.SenderUser,
		Content: "Thanks, any news?",
	})

	require.NoError(t, err)
	require.NotNil(t, chain.last)
	assert.False(t, chain.last.AdminBusy)
}

func TestSetStatus(t *testing.T) {
	repo := newMemTicketRepo()
	svc := newTestService(repo, &stubTriageChain{}, &stubAutopilotChain{})
	ticket := seedTicket(repo, entity.TicketModeAutopilot)

	updated, err := svc.SetStatus(context.Background(), &entity.Tenant{ID: "t1"}, ticket.ID, "resolved", "low")

	require.NoError(t, err)
	assert.Equal(t, entity.TicketStatusResolved, updated.Status)
	assert.Equal(t, entity.TicketPriorityLow, updated.Priority)
	assert.Equal(t, entity.TicketStatusResolved, repo.tickets[ticket.ID].Status)
}

func TestSetStatusPartialUpdate(t *testing.T) {
	repo := newMemTicketRepo()
	svc := newTestService(repo, &stubTriageChain{}, &stubAutopilotChain{})
	ticket := seedTicket(repo, entity.TicketModeAutopilot)

	updated, err := svc.SetStatus(context.Background(), &entity.Tenant{ID: "t1"}, ticket.ID, "waiting", "")

	require.NoError(t, err)
	assert.Equal(t, entity.TicketStatusWaiting, updated.Status)
	assert.Equal(t, entity.TicketPriorityMedium, updated.Priority, "priority untouched when omitted")
}

func TestSetStatusRejectsInvalidValues(t *testing.T) {
	repo := newMemTicketRepo()
	svc := newTestService(repo, &stubTriageChain{}, &stubAutopilotChain{})
	ticket := seedTicket(repo, entity.TicketModeAutopilot)

	_, err := svc.SetStatus(context.Background(), &entity.Tenant{ID: "t1"}, ticket.ID, "closed", "")
	require.Error(t, err)
	assert.Equal(t, apperrors.CodeInvalidParam, apperrors.AsAppError(err).Code)

	_, err = svc.SetStatus(context.Background(), &entity.Tenant{ID: "t1"}, ticket.ID, "", "critical")
	require.Error(t, err)
	assert.Equal(t, apperrors.CodeInvalidParam, apperrors.AsAppError(err).Code)

	assert.Equal(t, entity.TicketStatusOpen, repo.tickets[ticket.ID].Status)
}

func TestReplyUnknownTicket(t *testing.T) {
	svc := newTestService(newMemTicketRepo(), &stubTriageChain{}, &stubAutopilotChain{})

	_, err := svc.Reply(context.Background(), &entity.Tenant{ID: "t1"}, "missing", &ReplyInput{
		Sender:  entity.SenderUser,
		Content: "hello",
	})

	require.Error(t, err)
	assert.Equal(t, apperrors.CodeTicketNotFound, apperrors.AsAppError(err).Code)
}
