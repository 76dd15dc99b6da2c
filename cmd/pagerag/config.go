package main

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/fwojciec/pagerag/rag"
)

// Supported values of the provider, store and extractor settings.
const (
	ProviderOpenAI = "openai"
	ProviderGemini = "gemini"

	StoreChromem = "chromem"
	StoreSQLite  = "sqlite"

	ExtractorTrafilatura = "trafilatura"
	ExtractorReadability = "readability"
	ExtractorGoquery     = "goquery"
)

// Config is the process configuration, read from the environment.
type Config struct {
	Provider       string        `env:"PAGERAG_PROVIDER" envDefault:"openai"`
	OpenAIAPIKey   string        `env:"OPENAI_API_KEY"`
	OpenAIBaseURL  string        `env:"OPENAI_BASE_URL"`
	GeminiAPIKey   string        `env:"GEMINI_API_KEY"`
	ChatModel      string        `env:"PAGERAG_CHAT_MODEL"`
	EmbeddingModel string        `env:"PAGERAG_EMBEDDING_MODEL"`
	Store          string        `env:"PAGERAG_STORE" envDefault:"chromem"`
	Extractor      string        `env:"PAGERAG_EXTRACTOR" envDefault:"trafilatura"`
	Browser        bool          `env:"PAGERAG_BROWSER" envDefault:"false"`
	TopK           int           `env:"PAGERAG_TOP_K" envDefault:"4"`
	FetchTimeout   time.Duration `env:"PAGERAG_FETCH_TIMEOUT" envDefault:"10s"`
	FetchRPS       float64       `env:"PAGERAG_FETCH_RPS" envDefault:"1"`
	LogLevel       string        `env:"PAGERAG_LOG_LEVEL" envDefault:"info"`
}

// LoadConfig parses the configuration from environ. A nil environ reads
// the process environment.
func LoadConfig(environ map[string]string) (Config, error) {
	var cfg Config
	if err := env.ParseWithOptions(&cfg, env.Options{Environment: environ}); err != nil {
		return Config{}, fmt.Errorf("parse environment: %w", err)
	}

	cfg.Provider = strings.ToLower(strings.TrimSpace(cfg.Provider))
	cfg.Store = strings.ToLower(strings.TrimSpace(cfg.Store))
	cfg.Extractor = strings.ToLower(strings.TrimSpace(cfg.Extractor))
	if cfg.TopK <= 0 {
		cfg.TopK = rag.DefaultTopK
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate reports unknown provider, store or extractor names.
func (c Config) Validate() error {
	switch c.Provider {
	case ProviderOpenAI, ProviderGemini:
	default:
		return fmt.Errorf("unknown PAGERAG_PROVIDER %q (want %s or %s)", c.Provider, ProviderOpenAI, ProviderGemini)
	}
	switch c.Store {
	case StoreChromem, StoreSQLite:
	default:
		return fmt.Errorf("unknown PAGERAG_STORE %q (want %s or %s)", c.Store, StoreChromem, StoreSQLite)
	}
	switch c.Extractor {
	case ExtractorTrafilatura, ExtractorReadability, ExtractorGoquery:
	default:
		return fmt.Errorf("unknown PAGERAG_EXTRACTOR %q", c.Extractor)
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	return nil
}

// APIKey returns the key of the configured provider.
func (c Config) APIKey() string {
	if c.Provider == ProviderGemini {
		return c.GeminiAPIKey
	}
	return c.OpenAIAPIKey
}

// APIKeyName returns the environment variable holding APIKey.
func (c Config) APIKeyName() string {
	if c.Provider == ProviderGemini {
		return "GEMINI_API_KEY"
	}
	return "OPENAI_API_KEY"
}

// Level returns the configured log level.
func (c Config) Level() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return 0, fmt.Errorf("invalid PAGERAG_LOG_LEVEL %q", c.LogLevel)
	}
	return level, nil
}
