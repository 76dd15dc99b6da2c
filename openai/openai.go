// Package openai implements answer generation and text embedding on top of
// the OpenAI API, or any server speaking the same protocol.
package openai

import (
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

// Default models.
const (
	DefaultChatModel      = "gpt-4o-mini"
	DefaultEmbeddingModel = "text-embedding-3-small"
)

// NewClient returns an API client. An empty baseURL selects the public API.
// SDK retries are disabled: a failed call surfaces to the user immediately.
func NewClient(apiKey, baseURL string) openai.Client {
	opts := []option.RequestOption{
		option.WithAPIKey(apiKey),
		option.WithMaxRetries(0),
	}
	if baseURL != "" {
		opts = append(opts, option.WithBaseURL(baseURL))
	}
	return openai.NewClient(opts...)
}
