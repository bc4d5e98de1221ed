package app

import (
	"context"
	"fmt"
	"log/slog"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"

	"travel-agent/internal/catalog"
	"travel-agent/internal/config"
	"travel-agent/internal/credentials"
	"travel-agent/internal/fallback"
	"travel-agent/internal/integrations/openai"
	"travel-agent/internal/integrations/paramstore"
	"travel-agent/internal/intent"
	"travel-agent/internal/usecase"
)

// Mode selects the fallback used when generation fails.
type Mode int

const (
	// ModeRequest uses the keyword template matcher.
	ModeRequest Mode = iota
	// ModeSession uses the single generic session fallback.
	ModeSession
)

// Components are the pieces shared by every entry point.
type Components struct {
	Catalog *catalog.Catalog
	Chat    *usecase.ChatService
}

// ResolveAPIKey walks the secrets file, the environment and, when a
// parameter prefix is configured, SSM Parameter Store.
func ResolveAPIKey(ctx context.Context, cfg config.Config) (string, error) {
	providers := []credentials.Provider{
		credentials.FileProvider{Path: cfg.SecretsFile, Key: cfg.APIKeyEnv},
		credentials.EnvProvider{Key: cfg.APIKeyEnv},
	}
	if param := cfg.APIKeyParameter(); param != "" {
		awsCfg, err := awsconfig.LoadDefaultConfig(ctx)
		if err != nil {
			slog.WarnContext(ctx, "failed to load AWS config, skipping parameter store", "err", err)
		} else {
			providers = append(providers, credentials.ParamStoreProvider{
				Getter:    paramstore.NewFromConfig(awsCfg),
				Parameter: param,
			})
		}
	}
	chain, err := credentials.NewChain(providers...)
	if err != nil {
		return "", err
	}
	key, from, err := chain.Resolve(ctx)
	if err != nil {
		return "", err
	}
	slog.InfoContext(ctx, "api key resolved", "provider", from)
	return key, nil
}

// Build wires the catalog, classifier, generation client and resolver.
func Build(cfg config.Config, apiKey string, mode Mode) (*Components, error) {
	cat, err := catalog.LoadFile(cfg.CatalogFile)
	if err != nil {
		return nil, err
	}
	cl, err := intent.New(cat)
	if err != nil {
		return nil, err
	}
	llm, err := openai.NewClient(apiKey,
		openai.WithBaseURL(cfg.LLMBaseURL),
		openai.WithTimeout(cfg.LLMTimeout),
	)
	if err != nil {
		return nil, err
	}
	fb, err := newFallback(cat, mode)
	if err != nil {
		return nil, err
	}
	svc, err := usecase.NewChatService(cl, llm, fb, cat.Replies,
		usecase.WithModel(cfg.LLMModel),
		usecase.WithSystemPrompt(usecase.LoadSystemPrompt(cfg.SystemPromptFile)),
	)
	if err != nil {
		return nil, err
	}
	return &Components{Catalog: cat, Chat: svc}, nil
}

func newFallback(cat *catalog.Catalog, mode Mode) (usecase.Fallback, error) {
	switch mode {
	case ModeRequest:
		return fallback.NewMatcher(cat)
	case ModeSession:
		return fallback.Static(cat.Replies.SessionFallback), nil
	default:
		return nil, fmt.Errorf("app: unknown mode %d", mode)
	}
}
