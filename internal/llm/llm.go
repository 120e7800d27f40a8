package llm

import "context"

// Generator is a single prompt/response completion backend.
type Generator interface {
	GenerateContent(ctx context.Context, prompt string) (string, error)
}
