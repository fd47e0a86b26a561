package entities

import (
	"strings"
	"time"
)

// Client is the customer a budget or invoice is addressed to.
//
// Storage model (DynamoDB):
//   - PK: email (normalized), which enforces one client per address
//   - GSI1 (id-index): id
type Client struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// NormalizeEmail is the de-duplication key for clients.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// FirstName returns the first word of the client name.
func (c Client) FirstName() string {
	fields := strings.Fields(c.Name)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}
