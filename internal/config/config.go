package config

import (
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config is read once at startup by the entry points.
type Config struct {
	Port             string
	LLMBaseURL       string
	LLMModel         string
	LLMTimeout       time.Duration
	APIKeyEnv        string
	SecretsFile      string
	ParamPrefix      string
	CatalogFile      string
	SystemPromptFile string
	AllowedOrigins   []string
	LogLevel         slog.Level
}

// APIKeyParameter is the SSM parameter holding the API key, or "" when no
// prefix is configured.
func (c Config) APIKeyParameter() string {
	if c.ParamPrefix == "" {
		return ""
	}
	return c.ParamPrefix + "/groq-api-key"
}

// Load reads a .env file when present and then the environment.
func Load() Config {
	_ = godotenv.Load()
	return FromEnv(os.LookupEnv)
}

// FromEnv builds a Config from lookup, applying defaults for unset values.
func FromEnv(lookup func(string) (string, bool)) Config {
	get := func(key, def string) string {
		if v, ok := lookup(key); ok && strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
		return def
	}
	return Config{
		Port:             get("PORT", "5000"),
		LLMBaseURL:       get("LLM_BASE_URL", "https://api.groq.com/openai/v1"),
		LLMModel:         get("LLM_MODEL", "llama-3.3-70b-versatile"),
		LLMTimeout:       duration(get("LLM_TIMEOUT", ""), 20*time.Second),
		APIKeyEnv:        get("API_KEY_ENV", "GROQ_API_KEY"),
		SecretsFile:      get("SECRETS_FILE", ".streamlit/secrets.env"),
		ParamPrefix:      strings.TrimRight(get("PARAM_PREFIX", ""), "/"),
		CatalogFile:      get("CATALOG_FILE", ""),
		SystemPromptFile: get("SYSTEM_PROMPT_FILE", ""),
		AllowedOrigins:   list(get("CORS_ALLOWED_ORIGINS", "*")),
		LogLevel:         level(get("LOG_LEVEL", "info")),
	}
}

func duration(v string, def time.Duration) time.Duration {
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		return def
	}
	return d
}

func list(v string) []string {
	var out []string
	for _, s := range strings.Split(v, ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func level(v string) slog.Level {
	var l slog.Level
	if err := l.UnmarshalText([]byte(v)); err != nil {
		return slog.LevelInfo
	}
	return l
}
