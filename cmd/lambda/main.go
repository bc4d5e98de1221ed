package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/aws/aws-lambda-go/lambda"

	"travel-agent/handler"
	"travel-agent/internal/app"
	"travel-agent/internal/config"
)

func main() {
	ctx := context.Background()

	cfg := config.Load()
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel})))

	apiKey, err := app.ResolveAPIKey(ctx, cfg)
	if err != nil {
		slog.Error("API key not found, refusing to start", "err", err)
		os.Exit(1)
	}

	components, err := app.Build(cfg, apiKey, app.ModeRequest)
	if err != nil {
		slog.Error("failed to build chat pipeline", "err", err)
		os.Exit(1)
	}

	h, err := handler.NewHandler(components.Chat)
	if err != nil {
		slog.Error("failed to create handler", "err", err)
		os.Exit(1)
	}

	lambda.Start(h.Handle)
}
