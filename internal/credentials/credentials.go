package credentials

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strings"

	"github.com/joho/godotenv"

	"travel-agent/internal/integrations/paramstore"
)

// ErrNotFound is returned by a Provider that has no value, and wraps the
// Chain error when every provider missed.
var ErrNotFound = errors.New("credentials: not found")

// Provider is one source of the API credential.
type Provider interface {
	Name() string
	Lookup(ctx context.Context) (string, error)
}

// Chain tries providers in order and stops at the first non-empty value.
type Chain struct {
	providers []Provider
}

func NewChain(providers ...Provider) (*Chain, error) {
	out := make([]Provider, 0, len(providers))
	for _, p := range providers {
		if p != nil {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return nil, errors.New("credentials: at least one provider is required")
	}
	return &Chain{providers: out}, nil
}

// Resolve returns the credential and the name of the provider that supplied
// it. Provider failures are logged and the next provider is tried.
func (c *Chain) Resolve(ctx context.Context) (string, string, error) {
	var errs []error
	names := make([]string, 0, len(c.providers))
	for _, p := range c.providers {
		names = append(names, p.Name())
		v, err := p.Lookup(ctx)
		if err != nil {
			if !errors.Is(err, ErrNotFound) {
				slog.WarnContext(ctx, "credential provider failed", "provider", p.Name(), "err", err)
				errs = append(errs, err)
			}
			continue
		}
		if v = strings.TrimSpace(v); v != "" {
			return v, p.Name(), nil
		}
	}
	err := fmt.Errorf("%w (tried %s)", ErrNotFound, strings.Join(names, ", "))
	if len(errs) > 0 {
		err = errors.Join(append([]error{err}, errs...)...)
	}
	return "", "", err
}

// EnvProvider reads Key from the process environment.
type EnvProvider struct {
	Key string
}

func (p EnvProvider) Name() string { return "env:" + p.Key }

func (p EnvProvider) Lookup(context.Context) (string, error) {
	v, ok := os.LookupEnv(p.Key)
	if !ok || strings.TrimSpace(v) == "" {
		return "", ErrNotFound
	}
	return v, nil
}

// FileProvider reads Key from a dotenv-format secrets file.
type FileProvider struct {
	Path string
	Key  string
}

func (p FileProvider) Name() string { return "file:" + p.Path }

func (p FileProvider) Lookup(context.Context) (string, error) {
	if strings.TrimSpace(p.Path) == "" {
		return "", ErrNotFound
	}
	vals, err := godotenv.Read(p.Path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("credentials: read %q: %w", p.Path, err)
	}
	v, ok := vals[p.Key]
	if !ok || strings.TrimSpace(v) == "" {
		return "", ErrNotFound
	}
	return v, nil
}

// tokenPayload is the JSON shape some parameters use for API tokens.
type tokenPayload struct {
	Token string `json:"token"`
}

// ParamStoreProvider reads an SSM parameter. The value is either the raw
// key or a JSON object {"token": "..."}.
type ParamStoreProvider struct {
	Getter    paramstore.Getter
	Parameter string
}

func (p ParamStoreProvider) Name() string { return "ssm:" + p.Parameter }

func (p ParamStoreProvider) Lookup(ctx context.Context) (string, error) {
	if p.Getter == nil || strings.TrimSpace(p.Parameter) == "" {
		return "", ErrNotFound
	}
	raw, err := p.Getter.GetParameter(ctx, p.Parameter)
	if err != nil {
		return "", fmt.Errorf("credentials: fetch %q: %w", p.Parameter, err)
	}
	raw = strings.TrimSpace(raw)
	if !strings.HasPrefix(raw, "{") {
		return raw, nil
	}
	var tp tokenPayload
	if err := json.Unmarshal([]byte(raw), &tp); err != nil {
		return "", fmt.Errorf("credentials: unmarshal %q as JSON: %w", p.Parameter, err)
	}
	if tp.Token == "" {
		return "", fmt.Errorf("credentials: %q has an empty token", p.Parameter)
	}
	return tp.Token, nil
}
