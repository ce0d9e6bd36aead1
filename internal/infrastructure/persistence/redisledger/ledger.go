package redisledger

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/rcarvalho-pb/payment_routing-go/internal/domain/ledger"
)

const defaultKey = "routing:transactions"

// Ledger stores the outcome log as a Redis list: RPUSH on append, LRANGE on
// query. Records are JSON; a row that fails to decode is skipped rather than
// poisoning the aggregate.
type Ledger struct {
	client *redis.Client
	key    string
}

func NewLedger(client *redis.Client, key string) *Ledger {
	if key == "" {
		key = defaultKey
	}
	return &Ledger{client: client, key: key}
}

func (l *Ledger) Append(ctx context.Context, r ledger.TransactionRecord) error {
	b, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("encode record: %w", err)
	}
	return l.client.RPush(ctx, l.key, b).Err()
}

func (l *Ledger) Query(ctx context.Context, q ledger.Query) (ledger.Stats, error) {
	raw, err := l.client.LRange(ctx, l.key, 0, -1).Result()
	if err != nil {
		return ledger.Stats{}, err
	}

	matched := make([]ledger.TransactionRecord, 0, len(raw))
	for _, item := range raw {
		var r ledger.TransactionRecord
		if err := json.Unmarshal([]byte(item), &r); err != nil {
			continue
		}
		if q.Matches(r) {
			matched = append(matched, r)
		}
	}

	return ledger.Aggregate(matched), nil
}
