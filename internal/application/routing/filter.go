package routing

import (
	"github.com/rcarvalho-pb/payment_routing-go/internal/domain/method"
	domainRouting "github.com/rcarvalho-pb/payment_routing-go/internal/domain/routing"
)

// AvailabilityFilter narrows the registry to the methods valid for one
// request: supported country, supported currency, amount within [min, max].
type AvailabilityFilter struct {
	Registry method.Registry
}

// Filter returns the available methods in caller-preference order: the
// request's candidate list when given, registry order otherwise. Returns
// ErrNoAvailableMethods when nothing matches.
func (f *AvailabilityFilter) Filter(req domainRouting.PaymentRequest) ([]method.Method, error) {
	candidates := req.CandidateMethods
	if len(candidates) == 0 {
		candidates = f.Registry.Methods()
	}

	available := make([]method.Method, 0, len(candidates))
	for _, m := range candidates {
		profile, err := f.Registry.Profile(m)
		if err != nil {
			continue
		}
		if !profile.SupportsCountry(req.Country) {
			continue
		}
		if !profile.SupportsCurrency(req.Currency) {
			continue
		}
		if !profile.Limits.Allows(req.Amount) {
			continue
		}
		available = append(available, m)
	}

	if len(available) == 0 {
		return nil, domainRouting.ErrNoAvailableMethods
	}
	return available, nil
}
