package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/shopspring/decimal"

	"github.com/rcarvalho-pb/payment_routing-go/internal/domain/ledger"
	"github.com/rcarvalho-pb/payment_routing-go/internal/domain/method"
)

// Ledger is the durable outcome log. Rows are insert-only; nothing here
// updates or deletes.
type Ledger struct {
	db *sql.DB
}

func NewLedger(db *sql.DB) *Ledger {
	return &Ledger{db: db}
}

func (l *Ledger) Append(ctx context.Context, r ledger.TransactionRecord) error {
	_, err := l.db.ExecContext(ctx,
		`INSERT INTO transactions
		 (id, method, amount, currency, country, success, processing_time_ns, error_code, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.ID,
		string(r.Method),
		r.Amount.String(),
		r.Currency,
		r.Country,
		boolToInt(r.Success),
		int64(r.ProcessingTime),
		r.ErrorCode,
		r.Timestamp.UTC(),
	)
	return err
}

func (l *Ledger) Query(ctx context.Context, q ledger.Query) (ledger.Stats, error) {
	where := " WHERE 1=1"
	args := []any{}

	if q.Method != "" {
		where += " AND method = ?"
		args = append(args, string(q.Method))
	}
	if q.Country != "" {
		where += " AND country = ?"
		args = append(args, q.Country)
	}
	if q.Currency != "" {
		where += " AND currency = ?"
		args = append(args, q.Currency)
	}
	if !q.From.IsZero() {
		where += " AND created_at >= ?"
		args = append(args, q.From.UTC())
	}
	if !q.To.IsZero() {
		where += " AND created_at <= ?"
		args = append(args, q.To.UTC())
	}

	row := l.db.QueryRowContext(ctx,
		`SELECT COUNT(*),
		        COALESCE(SUM(success), 0),
		        COALESCE(AVG(CAST(amount AS REAL)), 0),
		        COALESCE(AVG(processing_time_ns), 0)
		 FROM transactions`+where,
		args...,
	)

	var (
		count     int
		successes int
		avgAmount float64
		avgTimeNs float64
	)
	if err := row.Scan(&count, &successes, &avgAmount, &avgTimeNs); err != nil {
		return ledger.Stats{}, err
	}

	stats := ledger.Stats{
		Count:        count,
		SuccessCount: successes,
	}
	if count > 0 {
		stats.SuccessRate = float64(successes) / float64(count)
		stats.AvgAmount = decimal.NewFromFloat(avgAmount)
		stats.AvgProcessingTime = time.Duration(int64(avgTimeNs))
	} else {
		stats.AvgAmount = decimal.Zero
	}

	return stats, nil
}

// Records returns the full log, oldest first. Used by the stats endpoint and
// tests; analysis queries go through Query.
func (l *Ledger) Records(ctx context.Context) ([]ledger.TransactionRecord, error) {
	rows, err := l.db.QueryContext(ctx,
		`SELECT id, method, amount, currency, country, success, processing_time_ns, error_code, created_at
		 FROM transactions
		 ORDER BY created_at`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []ledger.TransactionRecord

	for rows.Next() {
		var (
			r       ledger.TransactionRecord
			m       string
			amount  string
			success int
			timeNs  int64
		)
		if err := rows.Scan(&r.ID, &m, &amount, &r.Currency, &r.Country, &success, &timeNs, &r.ErrorCode, &r.Timestamp); err != nil {
			return nil, err
		}

		r.Method = method.Method(m)
		r.Success = success == 1
		r.ProcessingTime = time.Duration(timeNs)
		if r.Amount, err = decimal.NewFromString(amount); err != nil {
			return nil, err
		}

		records = append(records, r)
	}

	return records, rows.Err()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
