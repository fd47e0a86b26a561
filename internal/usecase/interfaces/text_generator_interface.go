package interfaces

import "context"

//go:generate mockgen -source=text_generator_interface.go -destination=mocks/mock_text_generator.go -package=mock_interfaces

type TextPrompt struct {
	Prompt      string
	Temperature float32
	MaxTokens   int32
	// JSON asks the model for a JSON-only answer.
	JSON bool
}

// ITextGenerator abstracts the LLM used to draft texts.
type ITextGenerator interface {
	Generate(ctx context.Context, p TextPrompt) (string, error)
}
