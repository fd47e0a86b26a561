package interfaces

import "context"

//go:generate mockgen -source=email_sender_interface.go -destination=mocks/mock_email_sender.go -package=mock_interfaces

type EmailAttachment struct {
	FileName    string
	ContentType string
	Content     []byte
}

type EmailMessage struct {
	To          string
	Subject     string
	Text        string
	Attachments []EmailAttachment
}

// IEmailSender delivers plain-text emails through a transactional provider.
type IEmailSender interface {
	Send(ctx context.Context, msg EmailMessage) (providerMessageID string, err error)
}
