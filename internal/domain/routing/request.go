package routing

import (
	"github.com/shopspring/decimal"

	"github.com/rcarvalho-pb/payment_routing-go/internal/domain/method"
)

// PaymentRequest is one logical payment to route. Value type; never mutated
// after construction.
type PaymentRequest struct {
	Amount           decimal.Decimal
	Currency         string
	Country          string
	CandidateMethods []method.Method
	PreferredMethod  method.Method
	Metadata         map[string]string
}

// Validate checks the request is well formed. Availability is a separate
// concern handled by the filter.
func (r PaymentRequest) Validate() error {
	if !r.Amount.IsPositive() {
		return &ValidationError{Field: "amount", Reason: "must be positive"}
	}
	if r.Currency == "" {
		return &ValidationError{Field: "currency", Reason: "is required"}
	}
	return nil
}

// SplitRecipient is one independent transfer inside a split plan.
type SplitRecipient struct {
	Recipient   string
	Amount      decimal.Decimal
	Description string
}

// SplitPaymentPlan is a base payment plus independent recipient transfers.
// Recipient amounts are deliberately not reconciled against the base amount;
// callers needing equality must check it themselves.
type SplitPaymentPlan struct {
	Base       PaymentRequest
	Recipients []SplitRecipient
}

func (p SplitPaymentPlan) Validate() error {
	if err := p.Base.Validate(); err != nil {
		return err
	}
	if len(p.Recipients) == 0 {
		return &ValidationError{Field: "recipients", Reason: "at least one recipient is required"}
	}
	for _, r := range p.Recipients {
		if r.Recipient == "" {
			return &ValidationError{Field: "recipients", Reason: "recipient identifier is required"}
		}
		if !r.Amount.IsPositive() {
			return &ValidationError{Field: "recipients", Reason: "recipient amount must be positive"}
		}
	}
	return nil
}
