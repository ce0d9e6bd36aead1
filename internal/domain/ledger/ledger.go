package ledger

import "context"

// Ledger is the append-only outcome log. Appends from parallel split-payment
// branches must not lose records; reads work against a snapshot so they never
// block appends indefinitely. A failing Append must never fail the payment
// that produced the record — callers log and move on.
type Ledger interface {
	Append(context.Context, TransactionRecord) error
	Query(context.Context, Query) (Stats, error)
}
