package gemini

import (
	"context"
	"strings"

	"github.com/fwojciec/pagerag"
	"google.golang.org/genai"
)

// Default models.
const (
	DefaultChatModel      = "gemini-2.5-flash"
	DefaultEmbeddingModel = "gemini-embedding-001"
)

// Ensure Generator implements pagerag.Generator at compile time.
var _ pagerag.Generator = (*Generator)(nil)

// Generator implements pagerag.Generator using Google Gemini.
type Generator struct {
	client *genai.Client
	model  string
}

// NewGenerator creates a new Generator. An empty model selects
// DefaultChatModel.
func NewGenerator(client *genai.Client, model string) *Generator {
	if model == "" {
		model = DefaultChatModel
	}
	return &Generator{client: client, model: model}
}

// Generate answers a question using only the retrieved page segments.
func (g *Generator) Generate(ctx context.Context, segments []string, question string, temperature float64) (string, error) {
	if strings.TrimSpace(question) == "" {
		return "", pagerag.Errorf(pagerag.EINVALID, "question required")
	}

	result, err := g.client.Models.GenerateContent(ctx, g.model,
		[]*genai.Content{
			genai.NewContentFromText(pagerag.BuildPrompt(segments, question), genai.RoleUser),
		},
		BuildConfig(temperature),
	)
	if err != nil {
		return "", pagerag.Errorf(pagerag.EGENERATE, "%s", err.Error())
	}
	if result == nil {
		return "", pagerag.Errorf(pagerag.EGENERATE, "gemini returned nil result")
	}

	return result.Text(), nil
}

// BuildConfig returns the GenerateContentConfig for Gemini API calls.
func BuildConfig(temperature float64) *genai.GenerateContentConfig {
	temp := float32(temperature)
	return &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{
				Text: "You are a helpful assistant answering questions about a web page.",
			}},
		},
		Temperature: &temp,
	}
}
