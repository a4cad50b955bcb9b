// Package mailer abstracts the transactional email provider behind the
// Sender interface.
//
// ResendSender is the production implementation; it sends through the
// Resend API with a per-call API key because each account ships its own
// provider credential. DevSender logs instead of delivering, for local
// development and tests.
package mailer
