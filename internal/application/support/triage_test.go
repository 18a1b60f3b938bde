package support

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"localpress-ai-api/internal/config"
	"localpress-ai-api/internal/domain/entity"
	wfmodel "localpress-ai-api/internal/workflow/model"
)

type stubTriageChain struct {
	out   string
	err   error
	calls int
	last  *wfmodel.TriageInput
}

func (s *stubTriageChain) Invoke(ctx context.Context, in *wfmodel.TriageInput) (string, error) {
	s.calls++
	s.last = in
	return s.out, s.err
}

func supportConfig() *config.Config {
	cfg := &config.Config{}
	cfg.LLM.DefaultProvider = "openai"
	cfg.Support.Temperature = 0.2
	cfg.Support.AutopilotEnabled = true
	cfg.Support.HistoryTurns = 6
	return cfg
}

func sampleTicket() *entity.SupportTicket {
	return &entity.SupportTicket{
		TenantID:    "t1",
		Subject:     "Article generation returns an error",
		Description: "Every time I click generate I get a red banner.",
		Category:    "bug_report",
	}
}

const validVerdict = `{
	"classification": "known_issue",
	"confidence": "high",
	"matched_knowledge": "KI-102",
	"suggested_response": "This is a known issue we are actively fixing. As a workaround, retry after a minute.",
	"suggested_status": "in_progress",
	"suggested_priority": "high",
	"escalate": false
}`

func TestFirstResponseValidVerdict(t *testing.T) {
	chain := &stubTriageChain{out: validVerdict}
	engine := NewTriageEngine(chain, supportConfig())

	reply, triage := engine.FirstResponse(context.Background(), sampleTicket(), "Bergen Local News")

	require.NotNil(t, triage)
	assert.Equal(t, entity.TriageKnownIssue, triage.Classification)
	assert.Equal(t, entity.TriageConfidenceHigh, triage.Confidence)
	assert.Equal(t, "KI-102", triage.MatchedKnowledge)
	assert.Equal(t, entity.TicketStatusInProgress, triage.SuggestedStatus)
	assert.Equal(t, entity.TicketPriorityHigh, triage.SuggestedPrio)
	assert.False(t, triage.Escalate)
	assert.Equal(t, triage.SuggestedReply, reply)
	assert.Contains(t, reply, "known issue")
}

func TestFirstResponseJSONWrappedInProse(t *testing.T) {
	chain := &stubTriageChain{out: "Here is my assessment:\n" + validVerdict + "\nLet me know if you need more."}
	engine := NewTriageEngine(chain, supportConfig())

	reply, triage := engine.FirstResponse(context.Background(), sampleTicket(), "Bergen Local News")

	require.NotNil(t, triage)
	assert.Equal(t, entity.TriageKnownIssue, triage.Classification)
	assert.NotEmpty(t, reply)
}

func TestFirstResponseMalformedOutputFallsBack(t *testing.T) {
	chain := &stubTriageChain{out: "I think this ticket is probably about credits."}
	engine := NewTriageEngine(chain, supportConfig())

	reply, triage := engine.FirstResponse(context.Background(), sampleTicket(), "Bergen Local News")

	assert.Nil(t, triage)
	assert.NotEmpty(t, reply)
	assert.Contains(t, reply, "Bergen Local News")
}

func TestFirstResponseChainErrorFallsBack(t *testing.T) {
	chain := &stubTriageChain{err: errors.New("provider unavailable")}
	engine := NewTriageEngine(chain, supportConfig())

	reply, triage := engine.FirstResponse(context.Background(), sampleTicket(), "Bergen Local News")

	assert.Nil(t, triage)
	assert.NotEmpty(t, reply)
}

func TestFirstResponseInvalidClassificationFallsBack(t *testing.T) {
	chain := &stubTriageChain{out: `{"classification": "spam", "suggested_response": "Hi"}`}
	engine := NewTriageEngine(chain, supportConfig())

	reply, triage := engine.FirstResponse(context.Background(), sampleTicket(), "")

	assert.Nil(t, triage)
	assert.NotEmpty(t, reply)
}

func TestFirstResponseEmptyReplyFallsBack(t *testing.T) {
	chain := &stubTriageChain{out: `{"classification": "how_to", "suggested_response": "  "}`}
	engine := NewTriageEngine(chain, supportConfig())

	_, triage := engine.FirstResponse(context.Background(), sampleTicket(), "")

	assert.Nil(t, triage)
}

func TestFirstResponseNormalizesLooseEnums(t *testing.T) {
	chain := &stubTriageChain{out: `{
		"classification": "how_to",
		"confidence": "certain",
		"suggested_response": "See the dashboard guide.",
		"suggested_status": "pending",
		"suggested_priority": "critical"
	}`}
	engine := NewTriageEngine(chain, supportConfig())

	_, triage := engine.FirstResponse(context.Background(), sampleTicket(), "")

	require.NotNil(t, triage)
	assert.Equal(t, entity.TriageConfidenceLow, triage.Confidence)
	assert.Equal(t, entity.TicketStatusOpen, triage.SuggestedStatus)
	assert.Equal(t, entity.TicketPriorityMedium, triage.SuggestedPrio)
}

func TestFirstResponseIncludesKnowledgeAndDiagnostics(t *testing.T) {
	chain := &stubTriageChain{out: validVerdict}
	engine := NewTriageEngine(chain, supportConfig())
	ticket := sampleTicket()
	ticket.Diagnostics = map[string]any{"browser": "firefox"}

	engine.FirstResponse(context.Background(), ticket, "Bergen Local News")

	require.NotNil(t, chain.last)
	assert.Equal(t, KnowledgeBase(), chain.last.Knowledge)
	assert.Contains(t, chain.last.Body, "firefox")
	assert.Contains(t, chain.last.Body, "bug_report")
	assert.Equal(t, "openai", chain.last.Provider)
}

func TestFirstResponseNilChain(t *testing.T) {
	engine := NewTriageEngine(nil, supportConfig())

	reply, triage := engine.FirstResponse(context.Background(), sampleTicket(), "Bergen Local News")

	assert.Nil(t, triage)
	assert.NotEmpty(t, reply)
}
