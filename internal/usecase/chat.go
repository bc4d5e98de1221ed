package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"travel-agent/internal/catalog"
	"travel-agent/internal/domain"
)

const (
	DefaultModel          = "llama-3.3-70b-versatile"
	DefaultMaxTokens      = 300
	reasonEmptyMessage    = "empty_message"
	reasonEmptyGeneration = "empty_generation"
)

const DefaultTemperature float32 = 0.7

type Classifier interface {
	Classify(message string) domain.Intent
}

type LLMClient interface {
	Chat(ctx context.Context, req domain.GenerationRequest) (string, error)
}

// Fallback produces a reply for a travel message when generation fails.
type Fallback interface {
	Respond(message string) string
}

type httpStatusCoder interface {
	HTTPStatusCode() int
}

// ChatService runs the classify, generate, fall back pipeline. It keeps no
// per-message state and is safe for concurrent use.
type ChatService struct {
	classifier   Classifier
	llm          LLMClient
	fallback     Fallback
	replies      catalog.Replies
	systemPrompt string
	model        string
}

type Option func(*ChatService)

func WithModel(model string) Option {
	return func(s *ChatService) {
		if model = strings.TrimSpace(model); model != "" {
			s.model = model
		}
	}
}

func WithSystemPrompt(prompt string) Option {
	return func(s *ChatService) {
		if prompt = strings.TrimSpace(prompt); prompt != "" {
			s.systemPrompt = prompt
		}
	}
}

type ChatInput struct {
	Message string
}

type ChatOutput struct {
	Response string
	Intent   domain.Intent
	Source   domain.Source
}

func NewChatService(cl Classifier, llm LLMClient, fb Fallback, replies catalog.Replies, opts ...Option) (*ChatService, error) {
	if cl == nil {
		return nil, errors.New("usecase: classifier must not be nil")
	}
	if llm == nil {
		return nil, errors.New("usecase: llm client must not be nil")
	}
	if fb == nil {
		return nil, errors.New("usecase: fallback must not be nil")
	}
	if replies.Greeting == "" || replies.OffTopic == "" {
		return nil, errors.New("usecase: greeting and off-topic replies must not be empty")
	}
	s := &ChatService{
		classifier:   cl,
		llm:          llm,
		fallback:     fb,
		replies:      replies,
		systemPrompt: DefaultSystemPrompt,
		model:        DefaultModel,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Reply resolves a response for one message. The only error it returns is
// an INVALID_INPUT for a blank message; generation failures are absorbed
// into the fallback reply.
func (s *ChatService) Reply(ctx context.Context, in ChatInput) (ChatOutput, error) {
	if strings.TrimSpace(in.Message) == "" {
		return ChatOutput{}, newError(ErrorInvalidInput, reasonEmptyMessage, nil)
	}

	intent := s.classifier.Classify(in.Message)
	switch intent {
	case domain.IntentGreeting:
		return ChatOutput{Response: s.replies.Greeting, Intent: intent, Source: domain.SourceCanned}, nil
	case domain.IntentTravel:
	default:
		return ChatOutput{Response: s.replies.OffTopic, Intent: domain.IntentOffTopic, Source: domain.SourceCanned}, nil
	}

	text, err := s.llm.Chat(ctx, domain.GenerationRequest{
		Model:       s.model,
		Messages:    buildPromptMessages(s.systemPrompt, in.Message),
		Temperature: DefaultTemperature,
		MaxTokens:   DefaultMaxTokens,
	})
	if err == nil && strings.TrimSpace(text) == "" {
		err = newError(ErrorInternal, reasonEmptyGeneration, nil)
	}
	if err != nil {
		attrs := []any{"err", err}
		if status, ok := upstreamStatusCode(err); ok {
			attrs = append(attrs, "status", status)
		}
		slog.WarnContext(ctx, "generation failed, using fallback", attrs...)
		return ChatOutput{Response: s.fallback.Respond(in.Message), Intent: intent, Source: domain.SourceFallback}, nil
	}

	return ChatOutput{Response: text, Intent: intent, Source: domain.SourceGenerated}, nil
}

func upstreamStatusCode(err error) (int, bool) {
	var statusErr httpStatusCoder
	if !errors.As(err, &statusErr) {
		return 0, false
	}
	return statusErr.HTTPStatusCode(), true
}
