package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"obra_presupuestos/internal/usecase/interfaces"

	"go.uber.org/zap"
	"google.golang.org/genai"
)

const DefaultModel = "gemini-2.0-flash"

var ErrMissingAPIKey = errors.New("missing GEMINI_API_KEY")

// contentGenerator is the part of *genai.Models used here.
type contentGenerator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// GenAIGenerator drafts texts with a Gemini model.
type GenAIGenerator struct {
	models contentGenerator
	model  string
	logger *zap.Logger
}

var _ interfaces.ITextGenerator = (*GenAIGenerator)(nil)

func NewGenAIGenerator(ctx context.Context, apiKey, model string, logger *zap.Logger) (*GenAIGenerator, error) {
	if apiKey == "" {
		return nil, ErrMissingAPIKey
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create GenAI client: %w", err)
	}
	return newGenerator(client.Models, model, logger), nil
}

func newGenerator(models contentGenerator, model string, logger *zap.Logger) *GenAIGenerator {
	if model == "" {
		model = DefaultModel
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &GenAIGenerator{models: models, model: model, logger: logger}
}

func (g *GenAIGenerator) Generate(ctx context.Context, p interfaces.TextPrompt) (string, error) {
	cfg := &genai.GenerateContentConfig{}
	if p.Temperature > 0 {
		cfg.Temperature = genai.Ptr(p.Temperature)
	}
	if p.MaxTokens > 0 {
		cfg.MaxOutputTokens = p.MaxTokens
	}
	if p.JSON {
		cfg.ResponseMIMEType = "application/json"
	}

	res, err := g.models.GenerateContent(ctx, g.model, genai.Text(p.Prompt), cfg)
	if err != nil {
		g.logger.Warn("[llm][genai] generate failed", zap.String("model", g.model), zap.Error(err))
		return "", fmt.Errorf("GenAI generate failed: %w", err)
	}

	text := strings.TrimSpace(res.Text())
	g.logger.Debug("[llm][genai] generated", zap.String("model", g.model), zap.Int("chars", len(text)))
	return text, nil
}
