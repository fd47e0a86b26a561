package email

import (
	"context"
	"errors"
	"fmt"

	"obra_presupuestos/internal/usecase/interfaces"

	"github.com/resend/resend-go/v2"
	"go.uber.org/zap"
)

var (
	ErrMissingAPIKey      = errors.New("missing RESEND_API_KEY")
	ErrMissingFromAddress = errors.New("missing EMAIL_FROM")
)

// emailsAPI is the part of the Resend client used here.
type emailsAPI interface {
	SendWithContext(ctx context.Context, params *resend.SendEmailRequest) (*resend.SendEmailResponse, error)
}

// ResendSender delivers plain-text emails through Resend.
type ResendSender struct {
	emails  emailsAPI
	from    string
	replyTo string
	logger  *zap.Logger
}

var _ interfaces.IEmailSender = (*ResendSender)(nil)

func NewResendSender(apiKey, from, replyTo string, logger *zap.Logger) (*ResendSender, error) {
	if apiKey == "" {
		return nil, ErrMissingAPIKey
	}
	if from == "" {
		return nil, ErrMissingFromAddress
	}
	return newSender(resend.NewClient(apiKey).Emails, from, replyTo, logger), nil
}

func newSender(emails emailsAPI, from, replyTo string, logger *zap.Logger) *ResendSender {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ResendSender{emails: emails, from: from, replyTo: replyTo, logger: logger}
}

func (s *ResendSender) Send(ctx context.Context, msg interfaces.EmailMessage) (string, error) {
	req := &resend.SendEmailRequest{
		From:    s.from,
		To:      []string{msg.To},
		Subject: msg.Subject,
		Text:    msg.Text,
		ReplyTo: s.replyTo,
	}
	for _, a := range msg.Attachments {
		req.Attachments = append(req.Attachments, &resend.Attachment{
			Content:     a.Content,
			Filename:    a.FileName,
			ContentType: a.ContentType,
		})
	}

	s.logger.Debug("[email][resend] send start",
		zap.String("to", msg.To),
		zap.String("subject", msg.Subject),
		zap.Int("attachments", len(req.Attachments)),
	)
	res, err := s.emails.SendWithContext(ctx, req)
	if err != nil {
		s.logger.Warn("[email][resend] send failed", zap.String("to", msg.To), zap.Error(err))
		return "", fmt.Errorf("resend send failed: %w", err)
	}
	s.logger.Info("[email][resend] sent", zap.String("to", msg.To), zap.String("message_id", res.Id))
	return res.Id, nil
}
