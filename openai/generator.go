package openai

import (
	"context"
	"strings"

	"github.com/fwojciec/pagerag"
	"github.com/openai/openai-go"
)

const systemPrompt = "You are a helpful assistant answering questions about a web page."

// Ensure Generator implements pagerag.Generator at compile time.
var _ pagerag.Generator = (*Generator)(nil)

// Generator implements pagerag.Generator using chat completions.
type Generator struct {
	client openai.Client
	model  string
}

// NewGenerator creates a Generator. An empty model selects DefaultChatModel.
func NewGenerator(client openai.Client, model string) *Generator {
	if model == "" {
		model = DefaultChatModel
	}
	return &Generator{client: client, model: model}
}

// Generate answers question from segments at the given temperature.
func (g *Generator) Generate(ctx context.Context, segments []string, question string, temperature float64) (string, error) {
	if strings.TrimSpace(question) == "" {
		return "", pagerag.Errorf(pagerag.EINVALID, "question required")
	}

	resp, err := g.client.Chat.Completions.New(ctx, BuildParams(g.model, segments, question, temperature))
	if err != nil {
		return "", pagerag.Errorf(pagerag.EGENERATE, "%s", err.Error())
	}
	if len(resp.Choices) == 0 {
		return "", pagerag.Errorf(pagerag.EGENERATE, "model returned no choices")
	}

	return resp.Choices[0].Message.Content, nil
}

// BuildParams returns the chat completion request for a question.
func BuildParams(model string, segments []string, question string, temperature float64) openai.ChatCompletionNewParams {
	return openai.ChatCompletionNewParams{
		Model: openai.ChatModel(model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(systemPrompt),
			openai.UserMessage(pagerag.BuildPrompt(segments, question)),
		},
		Temperature: openai.Float(temperature),
	}
}
