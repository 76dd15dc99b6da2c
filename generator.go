package pagerag

import "context"

// Generator produces an answer to a question grounded in retrieved segments.
type Generator interface {
	// Generate asks the language model to answer question from segments.
	// Temperature ranges from 0 (deterministic) to 2. Model errors are
	// returned as EGENERATE.
	Generate(ctx context.Context, segments []string, question string, temperature float64) (string, error)
}

// Retriever finds the segments of an index most relevant to a question.
type Retriever interface {
	Retrieve(ctx context.Context, store IndexStore, question string) ([]string, error)
}

// RequestHandler answers user requests. Handle never fails: validation
// problems and pipeline errors are returned as readable text.
type RequestHandler interface {
	Handle(ctx context.Context, req Request) string
}
