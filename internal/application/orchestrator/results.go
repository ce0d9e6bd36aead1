package orchestrator

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/rcarvalho-pb/payment_routing-go/internal/domain/method"
	"github.com/rcarvalho-pb/payment_routing-go/internal/domain/routing"
)

// PaymentResult is the outcome of one processor attempt, pass-through plus
// the bookkeeping fields the core adds.
type PaymentResult struct {
	Success        bool            `json:"success"`
	TransactionID  string          `json:"transaction_id"`
	Method         method.Method   `json:"method"`
	Amount         decimal.Decimal `json:"amount"`
	Currency       string          `json:"currency"`
	ErrorCode      string          `json:"error_code,omitempty"`
	Message        string          `json:"message,omitempty"`
	ProcessingTime time.Duration   `json:"processing_time"`
	Timestamp      time.Time       `json:"timestamp"`
}

// FallbackResult reports a multi-method fallback run: the winning attempt (if
// any) plus every method tried, in order, for diagnostics.
type FallbackResult struct {
	PaymentResult
	MethodUsed       method.Method   `json:"method_used,omitempty"`
	AttemptedMethods []method.Method `json:"attempted_methods"`
}

// SplitOutcome is one recipient's result inside a split payment.
type SplitOutcome struct {
	Recipient string          `json:"recipient"`
	Amount    decimal.Decimal `json:"amount"`
	PaymentResult
}

// SplitResult reports a split run. Success mirrors the base payment only;
// partial recipient failure shows up in the counts, never as an error.
type SplitResult struct {
	Success          bool           `json:"success"`
	Main             PaymentResult  `json:"main"`
	Splits           []SplitOutcome `json:"splits"`
	TotalSplits      int            `json:"total_splits"`
	SuccessfulSplits int            `json:"successful_splits"`
	FailedSplits     int            `json:"failed_splits"`
}

// SmartResult pairs the executed attempt with the routing decision that
// produced it.
type SmartResult struct {
	PaymentResult
	Decision routing.RoutingDecision `json:"decision"`
}
