package response

import (
	"time"

	"obra_presupuestos/internal/domain/document"
	"obra_presupuestos/internal/domain/entities"
	"obra_presupuestos/internal/usecase"
)

type BudgetResponse struct {
	ID                     string             `json:"id"`
	Number                 int64              `json:"number"`
	ClientID               string             `json:"client_id"`
	ProjectName            string             `json:"project_name"`
	Items                  []LineItemResponse `json:"items"`
	DistanceKm             string             `json:"distance_km"`
	GlobalDifficultyFactor *string            `json:"global_difficulty_factor,omitempty"`
	Adjustment             *string            `json:"adjustment,omitempty"`
	AdjustmentReason       string             `json:"adjustment_reason,omitempty"`
	Subtotal               string             `json:"subtotal"`
	DistanceFee            string             `json:"distance_fee"`
	TotalPrice             string             `json:"total_price"`
	Status                 string             `json:"status"`
	Observations           string             `json:"observations,omitempty"`
	Locale                 string             `json:"locale"`
	CreatedAt              time.Time          `json:"created_at"`
	UpdatedAt              time.Time          `json:"updated_at"`
	SentAt                 *time.Time         `json:"sent_at,omitempty"`
}

func FromBudget(b entities.Budget) BudgetResponse {
	res := BudgetResponse{
		ID:                     b.ID,
		Number:                 b.Number,
		ClientID:               b.ClientID,
		ProjectName:            b.ProjectName,
		Items:                  FromLineItems(b.Items),
		DistanceKm:             b.DistanceKm.String(),
		GlobalDifficultyFactor: optionalDecimal(b.GlobalDifficultyFactor),
		AdjustmentReason:       b.AdjustmentReason,
		Subtotal:               money(b.Subtotal),
		DistanceFee:            money(b.DistanceFee),
		TotalPrice:             money(b.TotalPrice),
		Status:                 string(b.Status),
		Observations:           b.Observations,
		Locale:                 b.Locale,
		CreatedAt:              b.CreatedAt,
		UpdatedAt:              b.UpdatedAt,
		SentAt:                 b.SentAt,
	}
	if b.Adjustment != nil {
		s := money(*b.Adjustment)
		res.Adjustment = &s
	}
	return res
}

func FromBudgets(list []entities.Budget) []BudgetResponse {
	out := make([]BudgetResponse, 0, len(list))
	for _, b := range list {
		out = append(out, FromBudget(b))
	}
	return out
}

type BudgetCreatedResponse struct {
	Budget               BudgetResponse  `json:"budget"`
	Client               ClientResponse  `json:"client"`
	EmailSent            bool            `json:"email_sent"`
	EmailSubject         string          `json:"email_subject"`
	EmailText            string          `json:"email_text"`
	UnresolvedServiceIDs []string        `json:"unresolved_service_ids"`
	Issues               []IssueResponse `json:"issues"`
}

func FromBudgetResult(r usecase.BudgetResult) BudgetCreatedResponse {
	return BudgetCreatedResponse{
		Budget:               FromBudget(r.Budget),
		Client:               FromClient(r.Client),
		EmailSent:            r.EmailSent,
		EmailSubject:         r.Content.Subject,
		EmailText:            r.Content.EmailText,
		UnresolvedServiceIDs: nonNil(r.UnresolvedServiceIDs),
		Issues:               FromIssues(r.Issues),
	}
}

type PrintableLineResponse struct {
	Kind        string  `json:"kind"`
	Description string  `json:"description"`
	Amount      *string `json:"amount,omitempty"`
	Indent      int     `json:"indent,omitempty"`
}

type DocumentResponse struct {
	Title    string                  `json:"title"`
	Number   string                  `json:"number"`
	FileName string                  `json:"file_name"`
	Date     string                  `json:"date"`
	Lines    []PrintableLineResponse `json:"lines"`
	Notes    []string                `json:"notes,omitempty"`
}

func FromDocument(d document.Document) DocumentResponse {
	lines := make([]PrintableLineResponse, 0, len(d.Lines))
	for _, l := range d.Lines {
		pl := PrintableLineResponse{Kind: string(l.Kind), Description: l.Description, Indent: l.Indent}
		if l.Amount != nil {
			s := money(*l.Amount)
			pl.Amount = &s
		}
		lines = append(lines, pl)
	}
	return DocumentResponse{
		Title:    d.Title,
		Number:   d.Number,
		FileName: d.FileName,
		Date:     d.Date,
		Lines:    lines,
		Notes:    d.Notes,
	}
}

type BudgetPreviewResponse struct {
	Subject              string           `json:"subject"`
	EmailText            string           `json:"email_text"`
	PerItemTotals        []string         `json:"per_item_totals"`
	Subtotal             string           `json:"subtotal"`
	DistanceFee          string           `json:"distance_fee"`
	Adjustment           string           `json:"adjustment"`
	AdjustmentReason     string           `json:"adjustment_reason,omitempty"`
	Total                string           `json:"total"`
	Document             DocumentResponse `json:"document"`
	UnresolvedServiceIDs []string         `json:"unresolved_service_ids"`
	Issues               []IssueResponse  `json:"issues"`
}

func FromBudgetPreview(p usecase.BudgetPreview) BudgetPreviewResponse {
	totals := make([]string, 0, len(p.Quote.Items))
	for _, t := range p.Quote.PerItemTotals() {
		totals = append(totals, money(t))
	}
	return BudgetPreviewResponse{
		Subject:              p.Content.Subject,
		EmailText:            p.Content.EmailText,
		PerItemTotals:        totals,
		Subtotal:             money(p.Quote.Subtotal),
		DistanceFee:          money(p.Quote.DistanceFee),
		Adjustment:           money(p.Quote.Adjustment),
		AdjustmentReason:     p.AdjustmentReason,
		Total:                money(p.Quote.Total),
		Document:             FromDocument(p.Content.Document),
		UnresolvedServiceIDs: nonNil(p.UnresolvedServiceIDs),
		Issues:               FromIssues(p.Issues),
	}
}

type EmailHistoryResponse struct {
	ID         string    `json:"id"`
	DocumentID string    `json:"document_id"`
	Type       string    `json:"type"`
	Subject    string    `json:"subject"`
	Content    string    `json:"content"`
	SentAt     time.Time `json:"sent_at"`
}

func FromEmailHistoryEntry(e entities.EmailHistoryEntry) EmailHistoryResponse {
	return EmailHistoryResponse{
		ID:         e.ID,
		DocumentID: e.DocumentID,
		Type:       string(e.Type),
		Subject:    e.Subject,
		Content:    e.Content,
		SentAt:     e.SentAt,
	}
}

func FromEmailHistory(list []entities.EmailHistoryEntry) []EmailHistoryResponse {
	out := make([]EmailHistoryResponse, 0, len(list))
	for _, e := range list {
		out = append(out, FromEmailHistoryEntry(e))
	}
	return out
}

type AdjustmentResponse struct {
	HasAdjustment bool   `json:"has_adjustment"`
	Percent       string `json:"percent"`
	Amount        string `json:"amount"`
	Reason        string `json:"reason,omitempty"`
}

func FromAdjustment(s usecase.AdjustmentSuggestion) AdjustmentResponse {
	return AdjustmentResponse{
		HasAdjustment: !s.IsZero(),
		Percent:       s.Percent.String(),
		Amount:        money(s.Amount),
		Reason:        s.Reason,
	}
}

type ResponseDraftResponse struct {
	Content string `json:"content"`
}

type ResponseSentResponse struct {
	Content string               `json:"content"`
	Entry   EmailHistoryResponse `json:"entry"`
}
