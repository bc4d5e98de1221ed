package handler

import (
	"context"
	"embed"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"travel-agent/internal/usecase"
)

const (
	correlationHeader = "X-Correlation-Id"
	maxBodyBytes      = 1 << 20

	msgNoMessage = "No message provided"
	msgInternal  = "Internal error"
)

//go:embed static/index.html
var staticFS embed.FS

// ChatUseCase is the resolver consumed by both the HTTP and Lambda adapters.
type ChatUseCase interface {
	Reply(ctx context.Context, in usecase.ChatInput) (usecase.ChatOutput, error)
}

type chatRequest struct {
	Message string `json:"message"`
}

type chatResponse struct {
	Response string `json:"response"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// Handler serves the stateless request/response chat contract.
type Handler struct {
	uc ChatUseCase
}

func NewHandler(uc ChatUseCase) (*Handler, error) {
	if uc == nil {
		return nil, errors.New("handler: chat use case must not be nil")
	}
	return &Handler{uc: uc}, nil
}

// chat decodes body, resolves a reply and returns the status and payload to
// encode. Generation failures never reach here; the use case has already
// substituted fallback text.
func (h *Handler) chat(ctx context.Context, correlationID string, body []byte) (int, any) {
	var req chatRequest
	if err := json.Unmarshal(body, &req); err != nil {
		slog.InfoContext(ctx, "rejecting chat request", "correlation_id", correlationID, "reason", "invalid_json")
		return http.StatusBadRequest, errorResponse{Error: msgNoMessage}
	}

	out, err := h.uc.Reply(ctx, usecase.ChatInput{Message: req.Message})
	if err != nil {
		if reason, ok := usecase.IsInvalidInput(err); ok {
			slog.InfoContext(ctx, "rejecting chat request", "correlation_id", correlationID, "reason", reason)
			return http.StatusBadRequest, errorResponse{Error: msgNoMessage}
		}
		slog.ErrorContext(ctx, "chat request failed", "correlation_id", correlationID, "err", err)
		return http.StatusInternalServerError, errorResponse{Error: msgInternal}
	}

	slog.InfoContext(ctx, "chat reply",
		"correlation_id", correlationID,
		"intent", out.Intent,
		"source", out.Source,
	)
	return http.StatusOK, chatResponse{Response: out.Response}
}

// correlationID returns the caller's id when present, otherwise a new one.
func correlationID(v string) string {
	if v = strings.TrimSpace(v); v != "" {
		return v
	}
	return newUUID()
}

var newUUID = func() string {
	return uuid.NewString()
}
