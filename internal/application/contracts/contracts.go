package contracts

import (
	"context"
	"time"

	"github.com/rcarvalho-pb/payment_routing-go/internal/domain/method"
	"github.com/rcarvalho-pb/payment_routing-go/internal/domain/routing"
)

// ProcessorResult is the uniform shape every payment-rail integration returns.
// The core never branches on processor-specific fields beyond this contract.
type ProcessorResult struct {
	Success        bool
	TransactionID  string
	ErrorCode      string
	Message        string
	ProcessingTime time.Duration
}

// Processor is the external capability that actually moves money. A clean
// decline comes back as Success=false with an error code; a returned error
// means the call itself blew up. Both are treated as a failed attempt.
type Processor interface {
	Execute(ctx context.Context, m method.Method, req routing.PaymentRequest) (ProcessorResult, error)
}
