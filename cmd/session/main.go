package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"travel-agent/internal/app"
	"travel-agent/internal/config"
	"travel-agent/internal/session"
)

func main() {
	ctx := context.Background()

	cfg := config.Load()
	// Logs go to stderr so they do not interleave with the conversation.
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.LogLevel})))

	apiKey, err := app.ResolveAPIKey(ctx, cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "⚠️ %s not found! Add it to %s or the environment.\n", cfg.APIKeyEnv, cfg.SecretsFile)
		fmt.Fprintf(os.Stderr, "   %s = \"your_key_here\"\n", cfg.APIKeyEnv)
		slog.Error("API key not found", "err", err)
		os.Exit(1)
	}

	components, err := app.Build(cfg, apiKey, app.ModeSession)
	if err != nil {
		slog.Error("failed to build chat pipeline", "err", err)
		os.Exit(1)
	}

	s, err := session.New(components.Chat, components.Catalog.Replies.SessionWelcome)
	if err != nil {
		slog.Error("failed to start session", "err", err)
		os.Exit(1)
	}

	fmt.Println("✈️ Travel Agent Chatbot 🌍  (/history to review, /quit to leave)")
	if err := session.Run(ctx, s, os.Stdin, os.Stdout); err != nil {
		slog.Error("session ended with error", "err", err)
		os.Exit(1)
	}
}
