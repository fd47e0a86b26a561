package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"

	"obra_presupuestos/internal/usecase/interfaces"
	mock_interfaces "obra_presupuestos/internal/usecase/interfaces/mocks"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestObservationUseCase_Analyze(t *testing.T) {
	base := decimal.NewFromInt(450)

	t.Run("negative base", func(t *testing.T) {
		uc := NewObservationUseCase(nil, nil)
		_, err := uc.Analyze(context.Background(), "algo", decimal.NewFromInt(-1))
		require.ErrorIs(t, err, ErrInvalidBaseTotal)
	})

	t.Run("no observations or no llm", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		llm := mock_interfaces.NewMockITextGenerator(ctrl)

		s, err := NewObservationUseCase(llm, nil).Analyze(context.Background(), "   ", base)
		require.NoError(t, err)
		assert.True(t, s.IsZero())

		s, err = NewObservationUseCase(nil, nil).Analyze(context.Background(), "acceso difícil", base)
		require.NoError(t, err)
		assert.True(t, s.IsZero())
	})

	t.Run("ten percent of 450", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		llm := mock_interfaces.NewMockITextGenerator(ctrl)
		uc := NewObservationUseCase(llm, nil)

		llm.EXPECT().Generate(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, p interfaces.TextPrompt) (string, error) {
				assert.True(t, p.JSON)
				assert.Contains(t, p.Prompt, "acceso por escalera estrecha")
				assert.Contains(t, p.Prompt, "450.00€")
				return "```json\n{\"hasAdjustment\": true, \"adjustment\": 10, \"reason\": \"Acceso complicado\"}\n```", nil
			},
		)

		s, err := uc.Analyze(context.Background(), "acceso por escalera estrecha", base)
		require.NoError(t, err)
		assert.Equal(t, "45.00", s.Amount.StringFixed(2))
		assert.Equal(t, "10", s.Percent.String())
		assert.Equal(t, "Acceso complicado", s.Reason)
	})

	t.Run("negative suggestion", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		llm := mock_interfaces.NewMockITextGenerator(ctrl)
		uc := NewObservationUseCase(llm, nil)
		llm.EXPECT().Generate(gomock.Any(), gomock.Any()).Return(`{"hasAdjustment":true,"adjustment":-5,"reason":"Trabajo simplificado"}`, nil)

		s, err := uc.Analyze(context.Background(), "solo una pared", decimal.RequireFromString("333.33"))
		require.NoError(t, err)
		assert.Equal(t, "-16.67", s.Amount.StringFixed(2))
	})

	degraded := []struct {
		name   string
		answer string
		err    error
	}{
		{name: "llm error", err: errors.New("quota")},
		{name: "not json", answer: "sube un 10%"},
		{name: "no adjustment", answer: `{"hasAdjustment":false,"adjustment":0,"reason":"nada"}`},
		{name: "out of range", answer: `{"hasAdjustment":true,"adjustment":250,"reason":"x"}`},
	}
	for _, tc := range degraded {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()
			llm := mock_interfaces.NewMockITextGenerator(ctrl)
			uc := NewObservationUseCase(llm, nil)
			llm.EXPECT().Generate(gomock.Any(), gomock.Any()).Return(tc.answer, tc.err)

			s, err := uc.Analyze(context.Background(), "obs", base)
			require.NoError(t, err)
			assert.True(t, s.IsZero())
		})
	}
}

func TestStripCodeFence(t *testing.T) {
	assert.Equal(t, `{"a":1}`, stripCodeFence("```json\n{\"a\":1}\n```"))
	assert.Equal(t, `{"a":1}`, stripCodeFence(`  {"a":1} `))
	assert.True(t, strings.HasPrefix(observationPrompt("x", decimal.NewFromInt(1)), "Analiza"))
}
