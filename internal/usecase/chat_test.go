package usecase

import (
	"context"
	"errors"
	"net/http"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"travel-agent/internal/catalog"
	"travel-agent/internal/domain"
	"travel-agent/internal/fallback"
	"travel-agent/internal/integrations/openai"
	"travel-agent/internal/intent"
)

type mockLLM struct {
	answer    string
	err       error
	callCount int
	last      domain.GenerationRequest
}

func (m *mockLLM) Chat(_ context.Context, req domain.GenerationRequest) (string, error) {
	m.callCount++
	m.last = req
	return m.answer, m.err
}

type countingFallback struct {
	inner     Fallback
	callCount int
}

func (c *countingFallback) Respond(message string) string {
	c.callCount++
	return c.inner.Respond(message)
}

func defaultCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	c, err := catalog.Default()
	require.NoError(t, err)
	return c
}

func newTestService(t *testing.T, llm LLMClient, fb Fallback, opts ...Option) *ChatService {
	t.Helper()
	c := defaultCatalog(t)
	cl, err := intent.New(c)
	require.NoError(t, err)
	if fb == nil {
		m, err := fallback.NewMatcher(c)
		require.NoError(t, err)
		fb = m
	}
	svc, err := NewChatService(cl, llm, fb, c.Replies, opts...)
	require.NoError(t, err)
	return svc
}

func expectChatError(t *testing.T, err error, code ErrorCode, reason string) {
	t.Helper()
	var usecaseErr *Error
	require.ErrorAs(t, err, &usecaseErr)
	require.Equal(t, code, usecaseErr.Code)
	require.Equal(t, reason, usecaseErr.Reason)
}

func TestNewChatService_ValidatesDependencies(t *testing.T) {
	c := defaultCatalog(t)
	cl, err := intent.New(c)
	require.NoError(t, err)
	fb := fallback.Static("x")

	_, err = NewChatService(nil, &mockLLM{}, fb, c.Replies)
	require.Error(t, err)

	_, err = NewChatService(cl, nil, fb, c.Replies)
	require.Error(t, err)

	_, err = NewChatService(cl, &mockLLM{}, nil, c.Replies)
	require.Error(t, err)

	_, err = NewChatService(cl, &mockLLM{}, fb, catalog.Replies{Greeting: "hi"})
	require.Error(t, err)
}

func TestReply_Greeting_DoesNotCallLLM(t *testing.T) {
	for _, msg := range []string{"hi", " Hello ", "HEY", "greetings"} {
		llm := &mockLLM{err: errors.New("must not be called")}
		svc := newTestService(t, llm, nil)

		out, err := svc.Reply(context.Background(), ChatInput{Message: msg})
		require.NoError(t, err)
		require.Equal(t, "Hello! 👋 I'm your travel assistant. How can I help you plan your next adventure? Ask me about flights, hotels, destinations, or any travel plans! ✈️🌍", out.Response)
		require.Equal(t, domain.IntentGreeting, out.Intent)
		require.Equal(t, domain.SourceCanned, out.Source)
		require.Zero(t, llm.callCount)
	}
}

func TestReply_OffTopic_DoesNotCallLLM(t *testing.T) {
	llm := &mockLLM{answer: "should not be used"}
	svc := newTestService(t, llm, nil)

	out, err := svc.Reply(context.Background(), ChatInput{Message: "what is 2+2?"})
	require.NoError(t, err)
	require.Equal(t, "Sorry! I'm a travel assistant and can only help with travel-related questions. 🌍✈️", out.Response)
	require.Equal(t, domain.IntentOffTopic, out.Intent)
	require.Zero(t, llm.callCount)
}

func TestReply_Travel_ReturnsGeneratedTextVerbatim(t *testing.T) {
	llm := &mockLLM{answer: "  Paris is lovely in spring! 🌸\n"}
	svc := newTestService(t, llm, nil)

	out, err := svc.Reply(context.Background(), ChatInput{Message: "Trip to Paris?"})
	require.NoError(t, err)
	require.Equal(t, "  Paris is lovely in spring! 🌸\n", out.Response)
	require.Equal(t, domain.SourceGenerated, out.Source)
	require.Equal(t, domain.IntentTravel, out.Intent)
	require.Equal(t, 1, llm.callCount)
}

func TestReply_Travel_SendsFixedGenerationRequest(t *testing.T) {
	llm := &mockLLM{answer: "ok"}
	svc := newTestService(t, llm, nil)

	_, err := svc.Reply(context.Background(), ChatInput{Message: "Cheap flights to Tokyo"})
	require.NoError(t, err)
	require.Equal(t, "llama-3.3-70b-versatile", llm.last.Model)
	require.InDelta(t, 0.7, llm.last.Temperature, 1e-6)
	require.Equal(t, 300, llm.last.MaxTokens)
	require.Equal(t, []domain.ChatMessage{
		{Role: domain.RoleSystem, Content: DefaultSystemPrompt},
		{Role: domain.RoleUser, Content: "Cheap flights to Tokyo"},
	}, llm.last.Messages)
}

func TestReply_Options(t *testing.T) {
	llm := &mockLLM{answer: "ok"}
	svc := newTestService(t, llm, nil, WithModel("llama-3.1-8b-instant"), WithSystemPrompt("Be brief."), WithModel("  "))

	_, err := svc.Reply(context.Background(), ChatInput{Message: "hotel in goa"})
	require.NoError(t, err)
	require.Equal(t, "llama-3.1-8b-instant", llm.last.Model)
	require.Equal(t, "Be brief.", llm.last.Messages[0].Content)
}

func TestReply_Travel_FallsBackOnError(t *testing.T) {
	cases := []struct {
		name string
		err  error
	}{
		{name: "network", err: errors.New("dial tcp: connection refused")},
		{name: "status", err: &openai.HTTPStatusError{StatusCode: http.StatusInternalServerError}},
		{name: "rate limited", err: &openai.HTTPStatusError{StatusCode: http.StatusTooManyRequests}},
		{name: "timeout", err: context.DeadlineExceeded},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			llm := &mockLLM{err: tc.err}
			svc := newTestService(t, llm, nil)

			out, err := svc.Reply(context.Background(), ChatInput{Message: "bangalore to delhi flight"})
			require.NoError(t, err)
			require.Equal(t, domain.SourceFallback, out.Source)
			require.Contains(t, out.Response, "IndiGo")
			require.Contains(t, out.Response, "2.5 hours")
			require.Equal(t, 1, llm.callCount, "no retry")
		})
	}
}

func TestReply_Travel_EmptyGenerationFallsBack(t *testing.T) {
	fb := &countingFallback{inner: fallback.Static("static")}
	svc := newTestService(t, &mockLLM{answer: " \n"}, fb)

	out, err := svc.Reply(context.Background(), ChatInput{Message: "visa for france"})
	require.NoError(t, err)
	require.Equal(t, "static", out.Response)
	require.Equal(t, 1, fb.callCount)
}

func TestReply_FallbackOnlyRunsOnFailure(t *testing.T) {
	fb := &countingFallback{inner: fallback.Static("static")}
	svc := newTestService(t, &mockLLM{answer: "generated"}, fb)

	_, err := svc.Reply(context.Background(), ChatInput{Message: "hi"})
	require.NoError(t, err)
	_, err = svc.Reply(context.Background(), ChatInput{Message: "what is 2+2?"})
	require.NoError(t, err)
	_, err = svc.Reply(context.Background(), ChatInput{Message: "hotel in goa"})
	require.NoError(t, err)
	require.Zero(t, fb.callCount)
}

func TestReply_WeatherIsTravelRelated(t *testing.T) {
	llm := &mockLLM{answer: "Sunny!"}
	svc := newTestService(t, llm, nil)

	out, err := svc.Reply(context.Background(), ChatInput{Message: "what's the weather like"})
	require.NoError(t, err)
	require.Equal(t, domain.IntentTravel, out.Intent)
	require.Equal(t, 1, llm.callCount)
}

func TestReply_ValidationErrors(t *testing.T) {
	fb := &countingFallback{inner: fallback.Static("static")}
	llm := &mockLLM{answer: "x"}
	svc := newTestService(t, llm, fb)

	for _, msg := range []string{"", "   ", "\n\t"} {
		_, err := svc.Reply(context.Background(), ChatInput{Message: msg})
		expectChatError(t, err, ErrorInvalidInput, "empty_message")
	}
	require.Zero(t, llm.callCount)
	require.Zero(t, fb.callCount)
}

func TestLoadSystemPrompt(t *testing.T) {
	require.Equal(t, DefaultSystemPrompt, LoadSystemPrompt(""))
	require.Equal(t, DefaultSystemPrompt, LoadSystemPrompt(filepath.Join(t.TempDir(), "missing.txt")))

	empty := filepath.Join(t.TempDir(), "empty.txt")
	require.NoError(t, os.WriteFile(empty, []byte("  \n"), 0o600))
	require.Equal(t, DefaultSystemPrompt, LoadSystemPrompt(empty))

	custom := filepath.Join(t.TempDir(), "prompt.txt")
	require.NoError(t, os.WriteFile(custom, []byte("You are Navi.\n"), 0o600))
	require.Equal(t, "You are Navi.", LoadSystemPrompt(custom))
}

func TestBuildPromptMessages_OnlyLatestMessage(t *testing.T) {
	msgs := buildPromptMessages("sys", "question")
	require.Len(t, msgs, 2)
	require.Equal(t, domain.RoleSystem, msgs[0].Role)
	require.Equal(t, domain.RoleUser, msgs[1].Role)
	require.Equal(t, "question", msgs[1].Content)
}
