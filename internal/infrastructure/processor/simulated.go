package processor

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"

	"github.com/rcarvalho-pb/payment_routing-go/internal/application/contracts"
	"github.com/rcarvalho-pb/payment_routing-go/internal/domain/method"
	"github.com/rcarvalho-pb/payment_routing-go/internal/domain/routing"
)

// Behavior shapes how the simulator treats one method.
type Behavior struct {
	SuccessRate float64
	Latency     time.Duration
	ErrorCode   string
}

var defaultBehavior = Behavior{
	SuccessRate: 0.7,
	Latency:     20 * time.Millisecond,
	ErrorCode:   "ERR_PAYMENT_METHOD",
}

// Simulated is a stand-in processor capability for local runs and tests. It
// sleeps for the configured latency (honoring ctx) and declines a share of
// attempts at random.
type Simulated struct {
	Behaviors map[method.Method]Behavior
	Rand      *rand.Rand
}

func NewSimulated() *Simulated {
	return &Simulated{
		Behaviors: map[method.Method]Behavior{
			method.Card:         {SuccessRate: 0.90, Latency: 30 * time.Millisecond, ErrorCode: "ERR_CARD_DECLINED"},
			method.BankTransfer: {SuccessRate: 0.97, Latency: 80 * time.Millisecond, ErrorCode: "ERR_BANK_TRANSFER"},
			method.MobileMoney:  {SuccessRate: 0.85, Latency: 50 * time.Millisecond, ErrorCode: "ERR_MOBILE_MONEY"},
			method.Crypto:       {SuccessRate: 0.80, Latency: 120 * time.Millisecond, ErrorCode: "ERR_CRYPTO"},
		},
	}
}

func (s *Simulated) behavior(m method.Method) Behavior {
	if b, ok := s.Behaviors[m]; ok {
		return b
	}
	return defaultBehavior
}

func (s *Simulated) roll() float64 {
	if s.Rand != nil {
		return s.Rand.Float64()
	}
	return rand.Float64()
}

func (s *Simulated) Execute(ctx context.Context, m method.Method, _ routing.PaymentRequest) (contracts.ProcessorResult, error) {
	b := s.behavior(m)

	if b.Latency > 0 {
		timer := time.NewTimer(b.Latency)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return contracts.ProcessorResult{}, ctx.Err()
		case <-timer.C:
		}
	}

	result := contracts.ProcessorResult{
		TransactionID:  fmt.Sprintf("TXN-%s", uuid.NewString()),
		ProcessingTime: b.Latency,
	}

	if s.roll() < b.SuccessRate {
		result.Success = true
		return result, nil
	}

	result.ErrorCode = b.ErrorCode
	result.Message = fmt.Sprintf("%s declined the payment", m)
	return result, nil
}
