package mailer

import (
	"context"
	"errors"
	"fmt"

	"github.com/resend/resend-go/v2"
)

// ResendSender delivers messages through the Resend transactional API.
// A fresh client is constructed per call because the credential belongs to
// the sending account, not the process.
type ResendSender struct{}

// NewResendSender returns a Resend-backed Sender.
func NewResendSender() *ResendSender {
	return &ResendSender{}
}

// Send implements Sender. Provider rejections are wrapped in
// ErrFailedToSend with the provider's message preserved for the caller.
func (s *ResendSender) Send(ctx context.Context, apiKey string, params SendParams) (string, error) {
	if apiKey == "" {
		return "", fmt.Errorf("%w: api key is required", ErrInvalidParams)
	}
	if err := params.Validate(); err != nil {
		return "", err
	}

	client := resend.NewClient(apiKey)

	sent, err := client.Emails.SendWithContext(ctx, buildResendRequest(params))
	if err != nil {
		return "", errors.Join(ErrFailedToSend, err)
	}
	return sent.Id, nil
}

// buildResendRequest maps provider-agnostic params onto the Resend wire
// shape. Split out so the mapping is testable without network access.
func buildResendRequest(params SendParams) *resend.SendEmailRequest {
	req := &resend.SendEmailRequest{
		From:    params.FromHeader,
		To:      params.To,
		Subject: params.Subject,
		Html:    params.Body,
	}
	if params.Subject == "" {
		req.Subject = "(no subject)"
	}
	if params.ScheduledAt != "" {
		req.ScheduledAt = params.ScheduledAt
	}
	return req
}
