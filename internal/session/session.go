package session

import (
	"context"
	"errors"
	"strings"
	"sync"

	"travel-agent/internal/domain"
	"travel-agent/internal/usecase"
)

// State is the per-turn phase of a Session.
type State string

const (
	StateAwaitingInput State = "awaiting_input"
	StateProcessing    State = "processing"
)

var (
	ErrEmptyInput = errors.New("session: input is empty")
	ErrBusy       = errors.New("session: a turn is already being processed")
)

// Replier resolves one message into a reply.
type Replier interface {
	Reply(ctx context.Context, in usecase.ChatInput) (usecase.ChatOutput, error)
}

// Session is one interactive conversation. Turns are only ever appended and
// live as long as the Session value.
type Session struct {
	replier Replier

	mu    sync.Mutex
	state State
	turns []domain.Turn
}

// New starts a session. A non-empty welcome is recorded as the first
// assistant turn.
func New(r Replier, welcome string) (*Session, error) {
	if r == nil {
		return nil, errors.New("session: replier must not be nil")
	}
	s := &Session{replier: r, state: StateAwaitingInput}
	if welcome != "" {
		s.turns = append(s.turns, domain.Turn{Role: domain.RoleAssistant, Content: welcome})
	}
	return s, nil
}

// Submit records the user's input, resolves a reply and records it.
func (s *Session) Submit(ctx context.Context, input string) (string, error) {
	if strings.TrimSpace(input) == "" {
		return "", ErrEmptyInput
	}

	s.mu.Lock()
	if s.state != StateAwaitingInput {
		s.mu.Unlock()
		return "", ErrBusy
	}
	s.turns = append(s.turns, domain.Turn{Role: domain.RoleUser, Content: input})
	s.state = StateProcessing
	s.mu.Unlock()

	out, err := s.replier.Reply(ctx, usecase.ChatInput{Message: input})

	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = StateAwaitingInput
	if err != nil {
		return "", err
	}
	s.turns = append(s.turns, domain.Turn{Role: domain.RoleAssistant, Content: out.Response})
	return out.Response, nil
}

func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Turns returns a copy of the transcript in order.
func (s *Session) Turns() []domain.Turn {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Turn, len(s.turns))
	copy(out, s.turns)
	return out
}
