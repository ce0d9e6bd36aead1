package routing

import (
	"math"
	"time"

	"github.com/shopspring/decimal"

	"github.com/rcarvalho-pb/payment_routing-go/internal/domain/method"
)

// Strategy is the policy used to pick one route among the analyzed candidates.
type Strategy string

const (
	StrategyCheapest   Strategy = "cheapest"
	StrategyFastest    Strategy = "fastest"
	StrategyReliable   Strategy = "reliable"
	StrategyUserChoice Strategy = "user_choice"
)

// DefaultReliability is assumed for methods with no history.
const DefaultReliability = 0.5

// CostBreakdown itemizes the computed fee for one route.
type CostBreakdown struct {
	Fixed    decimal.Decimal `json:"fixed"`
	Variable decimal.Decimal `json:"variable"`
	Extra    decimal.Decimal `json:"extra"`
	Total    decimal.Decimal `json:"total"`
}

// RouteAnalysis is the per-method evaluation for one request. Ephemeral,
// created fresh per orchestration call, never persisted.
type RouteAnalysis struct {
	Method      method.Method `json:"method"`
	Cost        CostBreakdown `json:"cost"`
	Speed       time.Duration `json:"speed"`
	Reliability float64       `json:"reliability"`
	SuccessRate float64       `json:"success_rate"`
	SampleCount int           `json:"sample_count"`
	Limits      method.Limits `json:"limits"`
	Unusable    bool          `json:"unusable,omitempty"`
}

// MarkUnusable flags a route whose analysis failed so it never wins selection
// but does not abort sibling analyses.
func (a *RouteAnalysis) MarkUnusable() {
	a.Unusable = true
	a.Reliability = 0
	a.SuccessRate = 0
	a.Speed = math.MaxInt64
	a.Limits = method.Limits{}
	a.Cost = CostBreakdown{}
}

// Prediction is the predictive scorer's output. Non-authoritative; selection
// works without it.
type Prediction struct {
	Method     method.Method             `json:"method"`
	Confidence float64                   `json:"confidence"`
	Scores     map[method.Method]float64 `json:"scores"`
}

// Score returns the predicted score for m, defaulting to 0.
func (p *Prediction) Score(m method.Method) float64 {
	if p == nil {
		return 0
	}
	return p.Scores[m]
}

// RoutingDecision is what the selector hands back to the orchestrator:
// the winning route plus everything that was considered.
type RoutingDecision struct {
	Method     method.Method   `json:"method"`
	Strategy   Strategy        `json:"strategy"`
	Routes     []RouteAnalysis `json:"routes"`
	Prediction *Prediction     `json:"prediction,omitempty"`
}
