package inmemory_test

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/rcarvalho-pb/payment_routing-go/internal/domain/ledger"
	"github.com/rcarvalho-pb/payment_routing-go/internal/domain/method"
	"github.com/rcarvalho-pb/payment_routing-go/internal/infrastructure/persistence/inmemory"
)

func record(id string, m method.Method, amount string, success bool) ledger.TransactionRecord {
	return ledger.TransactionRecord{
		ID:             id,
		Timestamp:      time.Now(),
		Method:         m,
		Amount:         decimal.RequireFromString(amount),
		Currency:       "USD",
		Country:        "US",
		Success:        success,
		ProcessingTime: time.Second,
	}
}

func TestLedger_AppendPreservesOrder(t *testing.T) {
	l := inmemory.NewLedger()
	ctx := context.Background()

	require.NoError(t, l.Append(ctx, record("txn-1", method.Card, "100", true)))
	require.NoError(t, l.Append(ctx, record("txn-2", method.BankTransfer, "50", false)))

	records := l.Records()
	require.Len(t, records, 2)
	require.Equal(t, "txn-1", records[0].ID)
	require.Equal(t, "txn-2", records[1].ID)
}

func TestLedger_QueryFiltersByMethod(t *testing.T) {
	l := inmemory.NewLedger()
	ctx := context.Background()

	require.NoError(t, l.Append(ctx, record("txn-1", method.Card, "100", true)))
	require.NoError(t, l.Append(ctx, record("txn-2", method.Card, "100", false)))
	require.NoError(t, l.Append(ctx, record("txn-3", method.BankTransfer, "100", true)))

	stats, err := l.Query(ctx, ledger.Query{Method: method.Card})
	require.NoError(t, err)

	require.Equal(t, 2, stats.Count)
	require.Equal(t, 1, stats.SuccessCount)
	require.InDelta(t, 0.5, stats.SuccessRate, 1e-9)
}

func TestLedger_QueryFiltersByWindow(t *testing.T) {
	l := inmemory.NewLedger()
	ctx := context.Background()

	old := record("txn-old", method.Card, "100", false)
	old.Timestamp = time.Now().Add(-45 * 24 * time.Hour)
	require.NoError(t, l.Append(ctx, old))
	require.NoError(t, l.Append(ctx, record("txn-new", method.Card, "100", true)))

	stats, err := l.Query(ctx, ledger.Query{
		Method: method.Card,
		From:   time.Now().Add(-30 * 24 * time.Hour),
	})
	require.NoError(t, err)

	require.Equal(t, 1, stats.Count)
	require.InDelta(t, 1.0, stats.SuccessRate, 1e-9)
}

func TestLedger_QueryAggregates(t *testing.T) {
	l := inmemory.NewLedger()
	ctx := context.Background()

	first := record("txn-1", method.Card, "100", true)
	first.ProcessingTime = 2 * time.Second
	second := record("txn-2", method.Card, "200", true)
	second.ProcessingTime = 4 * time.Second
	require.NoError(t, l.Append(ctx, first))
	require.NoError(t, l.Append(ctx, second))

	stats, err := l.Query(ctx, ledger.Query{})
	require.NoError(t, err)

	require.True(t, stats.AvgAmount.Equal(decimal.RequireFromString("150")),
		"expected avg amount 150, got %s", stats.AvgAmount)
	require.Equal(t, 3*time.Second, stats.AvgProcessingTime)
}

func TestLedger_EmptyQueryReturnsZeroStats(t *testing.T) {
	l := inmemory.NewLedger()

	stats, err := l.Query(context.Background(), ledger.Query{Method: method.Crypto})
	require.NoError(t, err)

	require.Zero(t, stats.Count)
	require.Zero(t, stats.SuccessRate)
}

func TestLedger_ConcurrentAppends(t *testing.T) {
	l := inmemory.NewLedger()
	ctx := context.Background()

	const writers = 20
	const perWriter = 50

	var wg sync.WaitGroup
	for w := 0; w < writers; w++ {
		w := w
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < perWriter; i++ {
				_ = l.Append(ctx, record(fmt.Sprintf("txn-%d-%d", w, i), method.Card, "10", true))
			}
		}()
	}
	wg.Wait()

	require.Len(t, l.Records(), writers*perWriter)
}
