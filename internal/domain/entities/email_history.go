package entities

import "time"

type EmailType string

const (
	EmailTypeProposal EmailType = "proposal"
	EmailTypeResponse EmailType = "response"
)

// EmailHistoryEntry is an append-only record of an email sent about a budget
// or invoice.
//
// Storage model (DynamoDB):
//   - PK: id
//   - GSI1 (document_id-index): document_id
type EmailHistoryEntry struct {
	ID         string    `json:"id"`
	DocumentID string    `json:"document_id"`
	Type       EmailType `json:"type"`
	Subject    string    `json:"subject"`
	Content    string    `json:"content"`
	SentAt     time.Time `json:"sent_at"`
}
