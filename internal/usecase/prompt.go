package usecase

import (
	"log/slog"
	"os"
	"strings"

	"travel-agent/internal/domain"
)

// DefaultSystemPrompt is the fixed instruction sent with every generation call.
const DefaultSystemPrompt = "You are a friendly travel agent assistant. " +
	"Help users with flights, hotels, destinations, visas, and travel planning. " +
	"Keep responses concise (2-4 sentences) and use emojis occasionally. " +
	"Be enthusiastic about travel!"

// LoadSystemPrompt reads an override from path. A blank path, an unreadable
// file or an empty file yields DefaultSystemPrompt.
func LoadSystemPrompt(path string) string {
	path = strings.TrimSpace(path)
	if path == "" {
		return DefaultSystemPrompt
	}
	data, err := os.ReadFile(path)
	if err != nil {
		slog.Warn("could not read system prompt file, using default", "path", path, "err", err)
		return DefaultSystemPrompt
	}
	prompt := strings.TrimSpace(string(data))
	if prompt == "" {
		slog.Warn("system prompt file is empty, using default", "path", path)
		return DefaultSystemPrompt
	}
	return prompt
}

// buildPromptMessages sends only the latest user message; no history is
// replayed to the model.
func buildPromptMessages(systemPrompt, message string) []domain.ChatMessage {
	return []domain.ChatMessage{
		{Role: domain.RoleSystem, Content: systemPrompt},
		{Role: domain.RoleUser, Content: message},
	}
}
