package routing

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/rcarvalho-pb/payment_routing-go/internal/domain/method"
	domainRouting "github.com/rcarvalho-pb/payment_routing-go/internal/domain/routing"
)

// Outcome is what the orchestrator feeds back after an attempt resolves.
type Outcome struct {
	Cost           decimal.Decimal
	ProcessingTime time.Duration
	ErrorCode      string
}

// Scorer is the predictive model boundary. The core never depends on it
// returning a sensible answer: a nil Scorer or an erroring Predict degrades
// selection to the reliability-only path, and Learn failures are logged and
// swallowed. Implementations can be statistical, learned or static.
type Scorer interface {
	Predict(ctx context.Context, req domainRouting.PaymentRequest, candidates []method.Method) (domainRouting.Prediction, error)
	Learn(ctx context.Context, req domainRouting.PaymentRequest, chosen method.Method, success bool, outcome Outcome) error
}
