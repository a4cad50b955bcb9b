package mailer

import "errors"

var (
	ErrFailedToSend  = errors.New("mailer.errors.failed_to_send_email")
	ErrInvalidParams = errors.New("mailer.errors.invalid_params")
)
