package method

import (
	"time"

	"github.com/shopspring/decimal"
)

// Method identifies a payment rail (card, bank transfer, mobile money...).
type Method string

const (
	Card         Method = "card"
	BankTransfer Method = "bank_transfer"
	MobileMoney  Method = "mobile_money"
	Crypto       Method = "crypto"
)

func (m Method) String() string {
	return string(m)
}

// FeeModel describes how a method charges: a fixed part, a percentage of the
// amount and an optional extra surcharge.
type FeeModel struct {
	Fixed   decimal.Decimal
	Percent decimal.Decimal
	Extra   decimal.Decimal
}

// Speed holds the nominal processing-time estimate and its expected range.
type Speed struct {
	Nominal time.Duration
	Min     time.Duration
	Max     time.Duration
}

// Limits are the transaction bounds a method accepts. Zero Daily/Monthly
// means unbounded.
type Limits struct {
	Min     decimal.Decimal `json:"min"`
	Max     decimal.Decimal `json:"max"`
	Daily   decimal.Decimal `json:"daily"`
	Monthly decimal.Decimal `json:"monthly"`
}

// Allows reports whether amount falls within [Min, Max].
func (l Limits) Allows(amount decimal.Decimal) bool {
	if amount.LessThan(l.Min) {
		return false
	}
	if l.Max.IsPositive() && amount.GreaterThan(l.Max) {
		return false
	}
	return true
}

// MethodProfile is the static capability sheet for one method. Owned by the
// registry, read-only everywhere else. Empty Countries or Currencies means
// the method is universally supported on that axis.
type MethodProfile struct {
	Method     Method
	Fees       FeeModel
	Speed      Speed
	Limits     Limits
	Countries  []string
	Currencies []string
}

// SupportsCountry reports whether the profile accepts the given ISO 3166
// country code. An empty country on the request side always passes.
func (p MethodProfile) SupportsCountry(country string) bool {
	if country == "" || len(p.Countries) == 0 {
		return true
	}
	for _, c := range p.Countries {
		if c == country {
			return true
		}
	}
	return false
}

// SupportsCurrency reports whether the profile accepts the given ISO 4217
// currency code.
func (p MethodProfile) SupportsCurrency(currency string) bool {
	if len(p.Currencies) == 0 {
		return true
	}
	for _, c := range p.Currencies {
		if c == currency {
			return true
		}
	}
	return false
}
