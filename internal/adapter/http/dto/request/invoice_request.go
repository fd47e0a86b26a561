package request

import (
	"encoding/json"

	"obra_presupuestos/internal/usecase"
)

type InvoiceRequest struct {
	Client       ClientRequest     `json:"client"`
	ProjectName  string            `json:"project_name"`
	Items        []LineItemRequest `json:"items" binding:"required,dive"`
	Observations string            `json:"observations,omitempty"`
	Locale       string            `json:"locale,omitempty"`
	Number       *int64            `json:"number,omitempty"`
	EmailSubject string            `json:"email_subject,omitempty"`
	EmailBody    string            `json:"email_body,omitempty"`
}

func (r InvoiceRequest) ToCommand() usecase.CreateInvoiceCommand {
	return usecase.CreateInvoiceCommand{
		Client:       r.Client.ToInput(),
		ProjectName:  r.ProjectName,
		Items:        toLineItems(r.Items),
		Observations: r.Observations,
		Locale:       r.Locale,
		Number:       r.Number,
		EmailSubject: r.EmailSubject,
		EmailBody:    r.EmailBody,
	}
}

// InvoicePaymentCreateRequest is the payload for the pay-an-invoice route.
//
// `mp_payload` is stored as-is (raw JSON) to support varying Mercado Pago schemas.
type InvoicePaymentCreateRequest struct {
	MPPayload json.RawMessage `json:"mp_payload"`
}
