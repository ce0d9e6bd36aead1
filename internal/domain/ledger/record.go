package ledger

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/rcarvalho-pb/payment_routing-go/internal/domain/method"
)

// TransactionRecord is one append-only outcome entry. Write-once, never
// mutated after Append.
type TransactionRecord struct {
	ID             string          `json:"id"`
	Timestamp      time.Time       `json:"timestamp"`
	Method         method.Method   `json:"method"`
	Amount         decimal.Decimal `json:"amount"`
	Currency       string          `json:"currency"`
	Country        string          `json:"country,omitempty"`
	Success        bool            `json:"success"`
	ProcessingTime time.Duration   `json:"processing_time"`
	ErrorCode      string          `json:"error_code,omitempty"`
}

// Query narrows the aggregate computation. Zero values mean "no filter".
type Query struct {
	Method   method.Method
	Country  string
	Currency string
	From     time.Time
	To       time.Time
}

// Matches reports whether the record passes every set filter.
func (q Query) Matches(r TransactionRecord) bool {
	if q.Method != "" && r.Method != q.Method {
		return false
	}
	if q.Country != "" && r.Country != q.Country {
		return false
	}
	if q.Currency != "" && r.Currency != q.Currency {
		return false
	}
	if !q.From.IsZero() && r.Timestamp.Before(q.From) {
		return false
	}
	if !q.To.IsZero() && r.Timestamp.After(q.To) {
		return false
	}
	return true
}

// Stats are the aggregates computed over the matching records.
type Stats struct {
	Count             int
	SuccessCount      int
	SuccessRate       float64
	AvgAmount         decimal.Decimal
	AvgProcessingTime time.Duration
}

// Aggregate folds a record set into Stats. Shared by the ledger
// implementations that filter in process.
func Aggregate(records []TransactionRecord) Stats {
	stats := Stats{}
	if len(records) == 0 {
		return stats
	}

	totalAmount := decimal.Zero
	var totalTime time.Duration

	for _, r := range records {
		stats.Count++
		if r.Success {
			stats.SuccessCount++
		}
		totalAmount = totalAmount.Add(r.Amount)
		totalTime += r.ProcessingTime
	}

	stats.SuccessRate = float64(stats.SuccessCount) / float64(stats.Count)
	stats.AvgAmount = totalAmount.Div(decimal.NewFromInt(int64(stats.Count)))
	stats.AvgProcessingTime = totalTime / time.Duration(stats.Count)

	return stats
}
