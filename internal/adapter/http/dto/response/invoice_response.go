package response

import (
	"time"

	"obra_presupuestos/internal/domain/entities"
	"obra_presupuestos/internal/usecase"
)

type InvoiceResponse struct {
	ID           string             `json:"id"`
	Number       int64              `json:"number"`
	ClientID     string             `json:"client_id"`
	ProjectName  string             `json:"project_name,omitempty"`
	Items        []LineItemResponse `json:"items"`
	Subtotal     string             `json:"subtotal"`
	Tax          string             `json:"tax"`
	GrandTotal   string             `json:"grand_total"`
	Status       string             `json:"status"`
	Observations string             `json:"observations,omitempty"`
	Locale       string             `json:"locale"`
	CreatedAt    time.Time          `json:"created_at"`
	UpdatedAt    time.Time          `json:"updated_at"`
	SentAt       *time.Time         `json:"sent_at,omitempty"`
}

func FromInvoice(inv entities.Invoice) InvoiceResponse {
	return InvoiceResponse{
		ID:           inv.ID,
		Number:       inv.Number,
		ClientID:     inv.ClientID,
		ProjectName:  inv.ProjectName,
		Items:        FromLineItems(inv.Items),
		Subtotal:     money(inv.Subtotal),
		Tax:          money(inv.Tax),
		GrandTotal:   money(inv.GrandTotal),
		Status:       string(inv.Status),
		Observations: inv.Observations,
		Locale:       inv.Locale,
		CreatedAt:    inv.CreatedAt,
		UpdatedAt:    inv.UpdatedAt,
		SentAt:       inv.SentAt,
	}
}

func FromInvoices(list []entities.Invoice) []InvoiceResponse {
	out := make([]InvoiceResponse, 0, len(list))
	for _, inv := range list {
		out = append(out, FromInvoice(inv))
	}
	return out
}

type InvoiceCreatedResponse struct {
	Invoice              InvoiceResponse `json:"invoice"`
	Client               ClientResponse  `json:"client"`
	FileName             string          `json:"file_name"`
	EmailSent            bool            `json:"email_sent"`
	EmailSubject         string          `json:"email_subject"`
	UnresolvedServiceIDs []string        `json:"unresolved_service_ids"`
	Issues               []IssueResponse `json:"issues"`
}

func FromInvoiceResult(r usecase.InvoiceResult) InvoiceCreatedResponse {
	return InvoiceCreatedResponse{
		Invoice:              FromInvoice(r.Invoice),
		Client:               FromClient(r.Client),
		FileName:             r.FileName,
		EmailSent:            r.EmailSent,
		EmailSubject:         r.Content.Subject,
		UnresolvedServiceIDs: nonNil(r.UnresolvedServiceIDs),
		Issues:               FromIssues(r.Issues),
	}
}

type InvoicePaymentResponse struct {
	PaymentID   string    `json:"payment_id"`
	ID          string    `json:"id"`
	InvoiceID   string    `json:"invoice_id"`
	PaymentDate time.Time `json:"payment_date"`
	Date        time.Time `json:"date"`
	Status      string    `json:"status"`

	MPPayloadRaw string                 `json:"mp_payload_raw,omitempty"`
	MPPayload    map[string]interface{} `json:"mp_payload,omitempty"`
}

func FromInvoicePayment(p entities.InvoicePayment) InvoicePaymentResponse {
	return InvoicePaymentResponse{
		PaymentID:    p.ID,
		ID:           p.ID,
		InvoiceID:    p.InvoiceID,
		PaymentDate:  p.Date,
		Date:         p.Date,
		Status:       string(p.Status),
		MPPayloadRaw: string(p.MPPayloadRaw),
		MPPayload:    p.MPPayload,
	}
}
