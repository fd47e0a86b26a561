package request

import "github.com/shopspring/decimal"

type ObservationRequest struct {
	Observations string          `json:"observations" binding:"required"`
	BaseTotal    decimal.Decimal `json:"base_total"`
}

type ResponseDraftRequest struct {
	ClientMessage string `json:"client_message" binding:"required"`
}

type ResponseSendRequest struct {
	Content string `json:"content" binding:"required"`
}
