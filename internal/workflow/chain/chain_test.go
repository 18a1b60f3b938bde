package chain

import (
	"context"
	"errors"
	"testing"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	wfmodel "localpress-ai-api/internal/workflow/model"
)

type stubChatModel struct {
	reply    string
	err      error
	lastMsgs []*schema.Message
}

func (s *stubChatModel) Generate(ctx context.Context, input []*schema.Message, opts ...model.Option) (*schema.Message, error) {
	s.lastMsgs = input
	if s.err != nil {
		return nil, s.err
	}
	return &schema.Message{Role: schema.Assistant, Content: s.reply}, nil
}

func (s *stubChatModel) Stream(ctx context.Context, input []*schema.Message, opts ...model.Option) (*schema.StreamReader[*schema.Message], error) {
	return nil, errors.New("streaming not supported")
}

type stubFactory struct {
	chat *stubChatModel
	err  error
	name string
}

func (s *stubFactory) Get(ctx context.Context, name string) (model.BaseChatModel, error) {
	s.name = name
	if s.err != nil {
		return nil, s.err
	}
	return s.chat, nil
}

func TestArticleChainInvoke(t *testing.T) {
	chat := &stubChatModel{reply: "TITLE: T\nCONTENT:\nBody."}
	factory := &stubFactory{chat: chat}
	c := NewArticleChain(factory)

	temp := float32(0.1)
	msg, err := c.Invoke(context.Background(), &wfmodel.ArticleGenerateInput{
		Provider:    "openai",
		Prompt:      "Write about the new library.",
		Temperature: &temp,
	})

	require.NoError(t, err)
	assert.Equal(t, "TITLE: T\nCONTENT:\nBody.", msg.Content)
	assert.Equal(t, "openai", factory.name)

	require.Len(t, chat.lastMsgs, 2)
	assert.Equal(t, schema.System, chat.lastMsgs[0].Role)
	assert.Equal(t, schema.User, chat.lastMsgs[1].Role)
	assert.Equal(t, "Write about the new library.", chat.lastMsgs[1].Content)
}

func TestArticleChainValidation(t *testing.T) {
	c := NewArticleChain(&stubFactory{chat: &stubChatModel{reply: "x"}})

	_, err := c.Invoke(context.Background(), nil)
	assert.Error(t, err)

	_, err = c.Invoke(context.Background(), &wfmodel.ArticleGenerateInput{Prompt: "p"})
	assert.Error(t, err, "provider is required")

	_, err = c.Invoke(context.Background(), &wfmodel.ArticleGenerateInput{Provider: "openai"})
	assert.Error(t, err, "prompt is required")
}

func TestArticleChainEmptyResponse(t *testing.T) {
	c := NewArticleChain(&stubFactory{chat: &stubChatModel{reply: "   "}})

	_, err := c.Invoke(context.Background(), &wfmodel.ArticleGenerateInput{
		Provider: "openai",
		Prompt:   "p",
	})

	assert.Error(t, err)
}

func TestTriageChainBuildsUserContent(t *testing.T) {
	chat := &stubChatModel{reply: `{"classification": "how_to"}`}
	c := NewTriageChain(&stubFactory{chat: chat})

	out, err := c.Invoke(context.Background(), &wfmodel.TriageInput{
		Provider:  "openai",
		Subject:   "How do I add a category?",
		Body:      "I cannot find the button. Settings show {nothing}.",
		Knowledge: "CATEGORIES: managed in the dashboard.",
	})

	require.NoError(t, err)
	assert.Equal(t, `{"classification": "how_to"}`, out)

	require.Len(t, chat.lastMsgs, 2)
	user := chat.lastMsgs[1].Content
	assert.Contains(t, user, "KNOWLEDGE BASE:\nCATEGORIES: managed in the dashboard.")
	assert.Contains(t, user, "TICKET SUBJECT: How do I add a category?")
	assert.Contains(t, user, "Settings show {nothing}.", "braces in user input must pass through untouched")
}

func TestTriageChainFactoryError(t *testing.T) {
	c := NewTriageChain(&stubFactory{err: errors.New("unknown provider")})

	_, err := c.Invoke(context.Background(), &wfmodel.TriageInput{
		Provider: "mystery",
		Body:     "b",
	})

	assert.Error(t, err)
}

func TestAutopilotChainRendersConversation(t *testing.T) {
	chat := &stubChatModel{reply: "Here is the next step."}
	c := NewAutopilotChain(&stubFactory{chat: chat})

	out, err := c.Invoke(context.Background(), &wfmodel.AutopilotInput{
		Provider: "openai",
		Subject:  "Login trouble",
		History: []wfmodel.Turn{
			{Role: "user", Content: "I cannot log in."},
			{Role: "ai", Content: "Try resetting your password."},
			{Role: "user", Content: "Did that, still broken."},
		},
		Knowledge: "LOGIN: resets expire after one hour.",
		AdminBusy: true,
	})

	require.NoError(t, err)
	assert.Equal(t, "Here is the next step.", out)

	user := chat.lastMsgs[1].Content
	assert.Contains(t, user, "Customer: I cannot log in.")
	assert.Contains(t, user, "Support: Try resetting your password.")
	assert.Contains(t, user, "currently unavailable")
	assert.Contains(t, user, "without giving a timeline")
}

func TestAutopilotChainRequiresHistory(t *testing.T) {
	c := NewAutopilotChain(&stubFactory{chat: &stubChatModel{reply: "x"}})

	_, err := c.Invoke(context.Background(), &wfmodel.AutopilotInput{
		Provider: "openai",
		Subject:  "s",
	})

	assert.Error(t, err)
}
