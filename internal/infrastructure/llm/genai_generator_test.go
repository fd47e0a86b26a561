package llm

import (
	"context"
	"errors"
	"testing"

	"obra_presupuestos/internal/usecase/interfaces"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"
)

type fakeModels struct {
	gotModel  string
	gotPrompt string
	gotConfig *genai.GenerateContentConfig
	reply     string
	err       error
}

func (f *fakeModels) GenerateContent(_ context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	f.gotModel = model
	f.gotConfig = config
	if len(contents) > 0 && len(contents[0].Parts) > 0 {
		f.gotPrompt = contents[0].Parts[0].Text
	}
	if f.err != nil {
		return nil, f.err
	}
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{
			Content: genai.NewContentFromText(f.reply, genai.RoleModel),
		}},
	}, nil
}

func TestGenAIGenerator_Generate(t *testing.T) {
	t.Run("json prompt", func(t *testing.T) {
		fake := &fakeModels{reply: "  {\"percent\": 10}\n"}
		g := newGenerator(fake, "", nil)

		out, err := g.Generate(context.Background(), interfaces.TextPrompt{
			Prompt:      "analiza",
			Temperature: 0.2,
			MaxTokens:   200,
			JSON:        true,
		})
		require.NoError(t, err)
		assert.Equal(t, `{"percent": 10}`, out)
		assert.Equal(t, DefaultModel, fake.gotModel)
		assert.Equal(t, "analiza", fake.gotPrompt)
		assert.Equal(t, "application/json", fake.gotConfig.ResponseMIMEType)
		assert.Equal(t, int32(200), fake.gotConfig.MaxOutputTokens)
		require.NotNil(t, fake.gotConfig.Temperature)
		assert.InDelta(t, 0.2, *fake.gotConfig.Temperature, 0.0001)
	})

	t.Run("plain prompt keeps defaults", func(t *testing.T) {
		fake := &fakeModels{reply: "Hola"}
		g := newGenerator(fake, "gemini-custom", nil)

		out, err := g.Generate(context.Background(), interfaces.TextPrompt{Prompt: "x"})
		require.NoError(t, err)
		assert.Equal(t, "Hola", out)
		assert.Equal(t, "gemini-custom", fake.gotModel)
		assert.Nil(t, fake.gotConfig.Temperature)
		assert.Empty(t, fake.gotConfig.ResponseMIMEType)
	})

	t.Run("provider error", func(t *testing.T) {
		g := newGenerator(&fakeModels{err: errors.New("quota")}, "", nil)
		_, err := g.Generate(context.Background(), interfaces.TextPrompt{Prompt: "x"})
		assert.ErrorContains(t, err, "quota")
	})
}

func TestNewGenAIGeneratorRequiresKey(t *testing.T) {
	_, err := NewGenAIGenerator(context.Background(), "", "", nil)
	assert.ErrorIs(t, err, ErrMissingAPIKey)
}
