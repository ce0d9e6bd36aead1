package inmemory

import (
	"context"
	"sync"

	"github.com/rcarvalho-pb/payment_routing-go/internal/domain/ledger"
)

// Ledger keeps the outcome log in process memory. Appends only ever grow the
// slice; queries aggregate over a snapshot so readers never hold appenders up.
type Ledger struct {
	mu      sync.RWMutex
	records []ledger.TransactionRecord
}

func NewLedger() *Ledger {
	return &Ledger{
		records: make([]ledger.TransactionRecord, 0, 1024),
	}
}

func (l *Ledger) Append(_ context.Context, r ledger.TransactionRecord) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.records = append(l.records, r)
	return nil
}

func (l *Ledger) Query(_ context.Context, q ledger.Query) (ledger.Stats, error) {
	snapshot := l.snapshot()

	matched := make([]ledger.TransactionRecord, 0, len(snapshot))
	for _, r := range snapshot {
		if q.Matches(r) {
			matched = append(matched, r)
		}
	}

	return ledger.Aggregate(matched), nil
}

// Records returns a copy of the full log, oldest first.
func (l *Ledger) Records() []ledger.TransactionRecord {
	return l.snapshot()
}

func (l *Ledger) snapshot() []ledger.TransactionRecord {
	l.mu.RLock()
	defer l.mu.RUnlock()

	out := make([]ledger.TransactionRecord, len(l.records))
	copy(out, l.records)
	return out
}
