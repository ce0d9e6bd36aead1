package routing

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/rcarvalho-pb/payment_routing-go/internal/domain/ledger"
	"github.com/rcarvalho-pb/payment_routing-go/internal/domain/method"
	domainRouting "github.com/rcarvalho-pb/payment_routing-go/internal/domain/routing"
	"github.com/rcarvalho-pb/payment_routing-go/internal/infra/logging"
)

// DefaultWindow is the trailing window of history consulted per method.
const DefaultWindow = 30 * 24 * time.Hour

var oneHundred = decimal.NewFromInt(100)

// RouteAnalyzer computes cost, speed and reliability for each available
// method, consulting the ledger for historical stats. A failure analyzing one
// method marks that route unusable without aborting the others; a ledger
// failure degrades that method to its profile defaults.
type RouteAnalyzer struct {
	Registry method.Registry
	Ledger   ledger.Ledger
	Window   time.Duration
	Logger   logging.Logger
	Now      func() time.Time
}

func (a *RouteAnalyzer) window() time.Duration {
	if a.Window > 0 {
		return a.Window
	}
	return DefaultWindow
}

func (a *RouteAnalyzer) now() time.Time {
	if a.Now != nil {
		return a.Now()
	}
	return time.Now()
}

// Analyze evaluates every given method for the request. The returned slice
// preserves input order and always has one entry per method.
func (a *RouteAnalyzer) Analyze(ctx context.Context, req domainRouting.PaymentRequest, methods []method.Method) []domainRouting.RouteAnalysis {
	routes := make([]domainRouting.RouteAnalysis, 0, len(methods))
	for _, m := range methods {
		routes = append(routes, a.analyzeOne(ctx, req, m))
	}
	return routes
}

func (a *RouteAnalyzer) analyzeOne(ctx context.Context, req domainRouting.PaymentRequest, m method.Method) domainRouting.RouteAnalysis {
	analysis := domainRouting.RouteAnalysis{Method: m}

	profile, err := a.Registry.Profile(m)
	if err != nil {
		a.Logger.Error("route analysis failed", map[string]any{
			"method": m.String(),
			"error":  err.Error(),
		})
		analysis.MarkUnusable()
		return analysis
	}

	analysis.Cost = computeCost(profile.Fees, req.Amount)
	analysis.Speed = profile.Speed.Nominal
	analysis.Reliability = domainRouting.DefaultReliability
	analysis.Limits = profile.Limits

	stats, err := a.Ledger.Query(ctx, ledger.Query{
		Method: m,
		From:   a.now().Add(-a.window()),
	})
	if err != nil {
		// Storage down: keep profile defaults, the payment still routes.
		a.Logger.Error("ledger query failed, using profile defaults", map[string]any{
			"method": m.String(),
			"error":  err.Error(),
		})
		return analysis
	}

	if stats.Count >= 1 {
		analysis.Reliability = stats.SuccessRate
		analysis.SuccessRate = stats.SuccessRate
		analysis.SampleCount = stats.Count
		if stats.AvgProcessingTime > 0 {
			analysis.Speed = stats.AvgProcessingTime
		}
	}

	return analysis
}

// computeCost applies the profile fee model: fixed + amount*percent/100 + extra.
func computeCost(fees method.FeeModel, amount decimal.Decimal) domainRouting.CostBreakdown {
	variable := amount.Mul(fees.Percent).Div(oneHundred)
	return domainRouting.CostBreakdown{
		Fixed:    fees.Fixed,
		Variable: variable,
		Extra:    fees.Extra,
		Total:    fees.Fixed.Add(variable).Add(fees.Extra),
	}
}
