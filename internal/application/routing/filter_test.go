package routing_test

import (
	"testing"

	approuting "github.com/rcarvalho-pb/payment_routing-go/internal/application/routing"
	"github.com/rcarvalho-pb/payment_routing-go/internal/domain/method"
	"github.com/rcarvalho-pb/payment_routing-go/internal/domain/routing"
	"github.com/rcarvalho-pb/payment_routing-go/internal/infrastructure/registry"
)

func usRequest(t *testing.T, amount string) routing.PaymentRequest {
	t.Helper()
	return routing.PaymentRequest{
		Amount:   dec(t, amount),
		Currency: "USD",
		Country:  "US",
	}
}

func TestFilter_ExcludesMethodsByCountryAndCurrency(t *testing.T) {
	filter := &approuting.AvailabilityFilter{Registry: registry.NewDefault()}

	available, err := filter.Filter(usRequest(t, "100"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, m := range available {
		if m == method.MobileMoney {
			t.Errorf("mobile_money is not available for US/USD, but was returned")
		}
	}
	if len(available) == 0 {
		t.Fatal("expected card, bank_transfer and crypto to be available")
	}
}

func TestFilter_ExcludesMethodsByAmountLimits(t *testing.T) {
	filter := &approuting.AvailabilityFilter{Registry: registry.NewDefault()}

	// 100000 exceeds the card max of 50000 but fits bank_transfer.
	available, err := filter.Filter(usRequest(t, "100000"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, m := range available {
		if m == method.Card {
			t.Errorf("card limit is 50000, but card was returned for 100000")
		}
	}
}

func TestFilter_PreservesCandidateOrder(t *testing.T) {
	filter := &approuting.AvailabilityFilter{Registry: registry.NewDefault()}

	req := usRequest(t, "100")
	req.CandidateMethods = []method.Method{method.Crypto, method.Card, method.BankTransfer}

	available, err := filter.Filter(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	expected := []method.Method{method.Crypto, method.Card, method.BankTransfer}
	if len(available) != len(expected) {
		t.Fatalf("expected %d methods, got %d", len(expected), len(available))
	}
	for i, m := range expected {
		if available[i] != m {
			t.Errorf("position %d: expected %s, got %s", i, m, available[i])
		}
	}
}

func TestFilter_SkipsUnknownCandidates(t *testing.T) {
	filter := &approuting.AvailabilityFilter{Registry: registry.NewDefault()}

	req := usRequest(t, "100")
	req.CandidateMethods = []method.Method{"carrier_pigeon", method.Card}

	available, err := filter.Filter(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(available) != 1 || available[0] != method.Card {
		t.Fatalf("expected only card, got %v", available)
	}
}

func TestFilter_NoMatchReturnsNoAvailableMethods(t *testing.T) {
	filter := &approuting.AvailabilityFilter{Registry: registry.NewDefault()}

	// Below every registered minimum.
	_, err := filter.Filter(usRequest(t, "0.01"))
	if err != routing.ErrNoAvailableMethods {
		t.Fatalf("expected ErrNoAvailableMethods, got %v", err)
	}
}
