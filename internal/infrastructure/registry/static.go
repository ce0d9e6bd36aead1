package registry

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/rcarvalho-pb/payment_routing-go/internal/domain/method"
)

// Static is a read-only registry loaded once at startup. Lookups are pure;
// the only failure mode is an unknown method.
type Static struct {
	profiles map[method.Method]method.MethodProfile
	order    []method.Method
}

func NewStatic(profiles []method.MethodProfile) *Static {
	s := &Static{
		profiles: make(map[method.Method]method.MethodProfile, len(profiles)),
		order:    make([]method.Method, 0, len(profiles)),
	}
	for _, p := range profiles {
		if _, exists := s.profiles[p.Method]; !exists {
			s.order = append(s.order, p.Method)
		}
		s.profiles[p.Method] = p
	}
	sort.Slice(s.order, func(i, j int) bool { return s.order[i] < s.order[j] })
	return s
}

func (s *Static) Profile(m method.Method) (method.MethodProfile, error) {
	p, ok := s.profiles[m]
	if !ok {
		return method.MethodProfile{}, method.ErrMethodNotFound
	}
	return p, nil
}

func (s *Static) Methods() []method.Method {
	out := make([]method.Method, len(s.order))
	copy(out, s.order)
	return out
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// NewDefault returns the built-in profile set.
func NewDefault() *Static {
	return NewStatic([]method.MethodProfile{
		{
			Method: method.Card,
			Fees:   method.FeeModel{Fixed: dec("0.30"), Percent: dec("2.9")},
			Speed: method.Speed{
				Nominal: 5 * time.Second,
				Min:     1 * time.Second,
				Max:     30 * time.Second,
			},
			Limits: method.Limits{
				Min:   dec("0.50"),
				Max:   dec("50000"),
				Daily: dec("100000"),
			},
		},
		{
			Method: method.BankTransfer,
			Fees:   method.FeeModel{Fixed: dec("1.00"), Percent: dec("0.8")},
			Speed: method.Speed{
				Nominal: 1 * time.Hour,
				Min:     10 * time.Minute,
				Max:     72 * time.Hour,
			},
			Limits: method.Limits{
				Min: dec("1.00"),
				Max: dec("1000000"),
			},
		},
		{
			Method: method.MobileMoney,
			Fees:   method.FeeModel{Percent: dec("1.5")},
			Speed: method.Speed{
				Nominal: 30 * time.Second,
				Min:     5 * time.Second,
				Max:     5 * time.Minute,
			},
			Limits: method.Limits{
				Min:   dec("0.10"),
				Max:   dec("5000"),
				Daily: dec("10000"),
			},
			Countries:  []string{"KE", "NG", "GH", "TZ", "UG", "ZA"},
			Currencies: []string{"KES", "NGN", "GHS", "TZS", "UGX", "ZAR"},
		},
		{
			Method: method.Crypto,
			Fees:   method.FeeModel{Percent: dec("1.0")},
			Speed: method.Speed{
				Nominal: 10 * time.Minute,
				Min:     1 * time.Minute,
				Max:     1 * time.Hour,
			},
			Limits: method.Limits{
				Min: dec("1.00"),
			},
		},
	})
}
