package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"obra_presupuestos/internal/domain/pricing"
	"obra_presupuestos/internal/usecase/interfaces"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

var ErrInvalidBaseTotal = errors.New("invalid base total")

// maxAdjustmentPercent bounds what is accepted from the model. Anything
// outside is treated as an unusable answer.
var maxAdjustmentPercent = decimal.NewFromInt(100)

// AdjustmentSuggestion is the price correction derived from site observations.
type AdjustmentSuggestion struct {
	Percent decimal.Decimal
	Amount  decimal.Decimal
	Reason  string
}

func (s AdjustmentSuggestion) IsZero() bool {
	return s.Amount.IsZero()
}

// IObservationUseCase turns free-text site observations into a flat price
// adjustment.
type IObservationUseCase interface {
	Analyze(ctx context.Context, observations string, baseTotal decimal.Decimal) (AdjustmentSuggestion, error)
}

type ObservationUseCase struct {
	llm    interfaces.ITextGenerator
	logger *zap.Logger
}

var _ IObservationUseCase = (*ObservationUseCase)(nil)

func NewObservationUseCase(llm interfaces.ITextGenerator, logger *zap.Logger) *ObservationUseCase {
	return &ObservationUseCase{llm: llm, logger: orNop(logger)}
}

type observationAnswer struct {
	HasAdjustment bool            `json:"hasAdjustment"`
	Adjustment    decimal.Decimal `json:"adjustment"`
	Reason        string          `json:"reason"`
}

// Analyze never fails because of the model: a missing generator, an error or
// an unreadable answer all produce a zero suggestion.
func (u *ObservationUseCase) Analyze(ctx context.Context, observations string, baseTotal decimal.Decimal) (AdjustmentSuggestion, error) {
	if baseTotal.IsNegative() {
		return AdjustmentSuggestion{}, ErrInvalidBaseTotal
	}
	observations = strings.TrimSpace(observations)
	if observations == "" || u.llm == nil {
		return AdjustmentSuggestion{}, nil
	}

	raw, err := u.llm.Generate(ctx, interfaces.TextPrompt{
		Prompt:      observationPrompt(observations, baseTotal),
		Temperature: 0.3,
		MaxTokens:   200,
		JSON:        true,
	})
	if err != nil {
		u.logger.Warn("[observation][usecase] llm failed", zap.Error(err))
		return AdjustmentSuggestion{}, nil
	}

	var ans observationAnswer
	if err := json.Unmarshal([]byte(stripCodeFence(raw)), &ans); err != nil {
		u.logger.Warn("[observation][usecase] unreadable answer", zap.Error(err), zap.Int("answer_len", len(raw)))
		return AdjustmentSuggestion{}, nil
	}
	if !ans.HasAdjustment || ans.Adjustment.IsZero() {
		return AdjustmentSuggestion{Reason: strings.TrimSpace(ans.Reason)}, nil
	}
	if ans.Adjustment.Abs().GreaterThan(maxAdjustmentPercent) {
		u.logger.Warn("[observation][usecase] adjustment out of range", zap.String("percent", ans.Adjustment.String()))
		return AdjustmentSuggestion{}, nil
	}

	s := AdjustmentSuggestion{
		Percent: ans.Adjustment,
		Amount:  pricing.AdjustmentFromPercent(baseTotal, ans.Adjustment).Round(2),
		Reason:  strings.TrimSpace(ans.Reason),
	}
	u.logger.Info("[observation][usecase] adjustment suggested",
		zap.String("percent", s.Percent.String()),
		zap.String("amount", s.Amount.StringFixed(2)),
	)
	return s, nil
}

func observationPrompt(observations string, baseTotal decimal.Decimal) string {
	var b strings.Builder
	b.WriteString("Analiza estas observaciones de obra y determina si requieren ajuste de precio:\n\n")
	fmt.Fprintf(&b, "OBSERVACIONES: %q\n", observations)
	fmt.Fprintf(&b, "PRESUPUESTO BASE: %s€\n\n", baseTotal.StringFixed(2))
	b.WriteString("Responde en JSON con este formato exacto:\n")
	b.WriteString("{\n  \"hasAdjustment\": boolean,\n  \"adjustment\": número (porcentaje, positivo o negativo),\n  \"reason\": \"texto corto explicando el ajuste\"\n}\n\n")
	b.WriteString("REGLAS:\n")
	b.WriteString("- Si menciona dificultades extra, acceso complicado, alturas, refuerzos → suma 5-15%\n")
	b.WriteString("- Si menciona necesidad de permisos, trámites especiales → suma 8%\n")
	b.WriteString("- Si menciona materiales especiales caros → suma 10-20%\n")
	b.WriteString("- Si menciona urgencia/rapidez → suma 10%\n")
	b.WriteString("- Si menciona simplificación de trabajo → resta 5%\n")
	b.WriteString("- Si no hay motivo para ajuste → adjustment: 0\n\n")
	b.WriteString("Responde SOLO el JSON, sin explicaciones adicionales.")
	return b.String()
}

// stripCodeFence removes a ```json ... ``` wrapper some models add.
func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[i+1:]
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
