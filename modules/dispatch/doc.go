// Package dispatch is the email dispatch and quota core: it authorizes a
// send, enforces the account's monthly plan ceiling, delivers the message
// through the provider, fans a copy out to recipients who are also platform
// accounts, and records usage and delivery history.
//
// The central design decision is the asymmetric error policy. Everything
// before the provider call is checked synchronously and aborts the request;
// nothing after a successful provider call may downgrade the response to an
// error. Post-send bookkeeping failures are collected as Degradations on
// the Result and logged, because the caller must never be told a send
// failed when the message actually went out, and must never be charged
// quota for a send that did not happen.
package dispatch
