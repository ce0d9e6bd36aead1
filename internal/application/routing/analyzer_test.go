package routing_test

import (
	"context"
	"errors"
	"testing"
	"time"

	approuting "github.com/rcarvalho-pb/payment_routing-go/internal/application/routing"
	"github.com/rcarvalho-pb/payment_routing-go/internal/domain/ledger"
	"github.com/rcarvalho-pb/payment_routing-go/internal/domain/method"
	"github.com/rcarvalho-pb/payment_routing-go/internal/infra/logging"
	"github.com/rcarvalho-pb/payment_routing-go/internal/infrastructure/persistence/inmemory"
	"github.com/rcarvalho-pb/payment_routing-go/internal/infrastructure/registry"
)

type failingLedger struct{}

func (failingLedger) Append(context.Context, ledger.TransactionRecord) error {
	return errors.New("storage unavailable")
}

func (failingLedger) Query(context.Context, ledger.Query) (ledger.Stats, error) {
	return ledger.Stats{}, errors.New("storage unavailable")
}

func newAnalyzer(l ledger.Ledger) *approuting.RouteAnalyzer {
	return &approuting.RouteAnalyzer{
		Registry: registry.NewDefault(),
		Ledger:   l,
		Logger:   logging.Noop{},
	}
}

func appendOutcomes(t *testing.T, l *inmemory.Ledger, m method.Method, successes, failures int, took time.Duration) {
	t.Helper()
	total := successes + failures
	for i := 0; i < total; i++ {
		err := l.Append(context.Background(), ledger.TransactionRecord{
			ID:             "txn",
			Timestamp:      time.Now(),
			Method:         m,
			Amount:         dec(t, "100"),
			Currency:       "USD",
			Success:        i < successes,
			ProcessingTime: took,
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
}

func TestAnalyze_NoHistoryUsesDefaults(t *testing.T) {
	analyzer := newAnalyzer(inmemory.NewLedger())

	routes := analyzer.Analyze(context.Background(), usRequest(t, "100"), []method.Method{method.Card})
	if len(routes) != 1 {
		t.Fatalf("expected 1 route, got %d", len(routes))
	}

	r := routes[0]
	if r.Reliability != 0.5 {
		t.Errorf("expected default reliability 0.5, got %f", r.Reliability)
	}
	if r.Speed != 5*time.Second {
		t.Errorf("expected nominal speed 5s, got %s", r.Speed)
	}
	if r.SampleCount != 0 {
		t.Errorf("expected no samples, got %d", r.SampleCount)
	}
}

func TestAnalyze_CostFollowsFeeModel(t *testing.T) {
	analyzer := newAnalyzer(inmemory.NewLedger())

	routes := analyzer.Analyze(context.Background(), usRequest(t, "100"),
		[]method.Method{method.Card, method.BankTransfer})

	// card: 0.30 + 100*2.9% = 3.20; bank: 1.00 + 100*0.8% = 1.80
	if !routes[0].Cost.Total.Equal(dec(t, "3.20")) {
		t.Errorf("expected card cost 3.20, got %s", routes[0].Cost.Total)
	}
	if !routes[1].Cost.Total.Equal(dec(t, "1.80")) {
		t.Errorf("expected bank_transfer cost 1.80, got %s", routes[1].Cost.Total)
	}
}

func TestAnalyze_HistoryDrivesReliabilityAndSpeed(t *testing.T) {
	l := inmemory.NewLedger()
	appendOutcomes(t, l, method.Card, 8, 2, 2*time.Second)

	analyzer := newAnalyzer(l)
	routes := analyzer.Analyze(context.Background(), usRequest(t, "100"), []method.Method{method.Card})

	r := routes[0]
	if r.Reliability != 0.8 {
		t.Errorf("expected reliability 0.8 after 8/10 successes, got %f", r.Reliability)
	}
	if r.SampleCount != 10 {
		t.Errorf("expected 10 samples, got %d", r.SampleCount)
	}
	if r.Speed != 2*time.Second {
		t.Errorf("expected observed speed 2s to replace nominal, got %s", r.Speed)
	}
}

func TestAnalyze_IgnoresHistoryOutsideWindow(t *testing.T) {
	l := inmemory.NewLedger()
	err := l.Append(context.Background(), ledger.TransactionRecord{
		ID:        "old",
		Timestamp: time.Now().Add(-60 * 24 * time.Hour),
		Method:    method.Card,
		Amount:    dec(t, "100"),
		Currency:  "USD",
		Success:   false,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	analyzer := newAnalyzer(l)
	routes := analyzer.Analyze(context.Background(), usRequest(t, "100"), []method.Method{method.Card})

	if routes[0].Reliability != 0.5 {
		t.Errorf("expected stale record to be ignored, reliability %f", routes[0].Reliability)
	}
}

func TestAnalyze_UnknownMethodMarkedUnusableWithoutAbortingOthers(t *testing.T) {
	analyzer := newAnalyzer(inmemory.NewLedger())

	routes := analyzer.Analyze(context.Background(), usRequest(t, "100"),
		[]method.Method{"carrier_pigeon", method.Card})

	if len(routes) != 2 {
		t.Fatalf("expected 2 routes, got %d", len(routes))
	}
	if !routes[0].Unusable {
		t.Errorf("expected unknown method to be unusable")
	}
	if routes[0].Reliability != 0 {
		t.Errorf("expected zero reliability for unusable route, got %f", routes[0].Reliability)
	}
	if routes[1].Unusable {
		t.Errorf("expected card to survive the sibling failure")
	}
}

func TestAnalyze_LedgerDownDegradesToProfileDefaults(t *testing.T) {
	analyzer := newAnalyzer(failingLedger{})

	routes := analyzer.Analyze(context.Background(), usRequest(t, "100"), []method.Method{method.Card})

	r := routes[0]
	if r.Unusable {
		t.Fatal("storage outage must not make the route unusable")
	}
	if r.Reliability != 0.5 {
		t.Errorf("expected neutral reliability, got %f", r.Reliability)
	}
	if r.Speed != 5*time.Second {
		t.Errorf("expected nominal speed, got %s", r.Speed)
	}
}
