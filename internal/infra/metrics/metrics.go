package metrics

import "sync/atomic"

// Counters track routing-core activity. Safe for concurrent use; split
// branches increment in parallel.
type Counters struct {
	PaymentsAttempted  uint64
	PaymentsSucceeded  uint64
	PaymentsFailed     uint64
	FallbacksExhausted uint64
	SplitsDispatched   uint64
	RecordsDropped     uint64
}

func (c *Counters) IncAttempted() {
	atomic.AddUint64(&c.PaymentsAttempted, 1)
}

func (c *Counters) IncSucceeded() {
	atomic.AddUint64(&c.PaymentsSucceeded, 1)
}

func (c *Counters) IncFailed() {
	atomic.AddUint64(&c.PaymentsFailed, 1)
}

func (c *Counters) IncFallbacksExhausted() {
	atomic.AddUint64(&c.FallbacksExhausted, 1)
}

func (c *Counters) AddSplitsDispatched(n uint64) {
	atomic.AddUint64(&c.SplitsDispatched, n)
}

func (c *Counters) IncRecordsDropped() {
	atomic.AddUint64(&c.RecordsDropped, 1)
}
