// Package quota tracks monthly send counters per account and decides
// whether a plan ceiling permits another send.
//
// The Ledger interface separates the read used for the pre-send check from
// the post-send increment; see the interface docs for the concurrency
// semantics of that split.
package quota
