package routing

import (
	"github.com/shopspring/decimal"

	"github.com/rcarvalho-pb/payment_routing-go/internal/domain/method"
	domainRouting "github.com/rcarvalho-pb/payment_routing-go/internal/domain/routing"
)

const (
	reliabilityWeight = 0.6
	predictiveWeight  = 0.4
)

// ValidRoutes re-checks amount limits on analyzed routes and drops unusable
// ones. The availability filter already did this once; the re-check keeps a
// method that slipped past it from winning selection.
func ValidRoutes(routes []domainRouting.RouteAnalysis, amount decimal.Decimal) []domainRouting.RouteAnalysis {
	valid := make([]domainRouting.RouteAnalysis, 0, len(routes))
	for _, r := range routes {
		if r.Unusable {
			continue
		}
		if !r.Limits.Allows(amount) {
			continue
		}
		valid = append(valid, r)
	}
	return valid
}

// Select picks one route. Pure function: same inputs, same decision.
// prediction and preferred may be zero-valued; routes must already be limit
// filtered (ErrNoValidRoutes when empty).
func Select(routes []domainRouting.RouteAnalysis, strategy domainRouting.Strategy, prediction *domainRouting.Prediction, preferred method.Method) (domainRouting.RoutingDecision, error) {
	if len(routes) == 0 {
		return domainRouting.RoutingDecision{}, domainRouting.ErrNoValidRoutes
	}

	if strategy == "" {
		strategy = domainRouting.StrategyReliable
	}

	var winner domainRouting.RouteAnalysis
	switch strategy {
	case domainRouting.StrategyCheapest:
		winner = pick(routes, cheaper)
	case domainRouting.StrategyFastest:
		winner = pick(routes, faster)
	case domainRouting.StrategyUserChoice:
		if route, ok := findMethod(routes, preferred); ok {
			winner = route
			break
		}
		if prediction != nil {
			if route, ok := findMethod(routes, prediction.Method); ok {
				winner = route
				break
			}
		}
		winner = pick(routes, moreReliable(prediction))
	default:
		winner = pick(routes, moreReliable(prediction))
	}

	return domainRouting.RoutingDecision{
		Method:     winner.Method,
		Strategy:   strategy,
		Routes:     routes,
		Prediction: prediction,
	}, nil
}

// pick scans for the route that beats every other under the given ordering.
func pick(routes []domainRouting.RouteAnalysis, beats func(a, b domainRouting.RouteAnalysis) bool) domainRouting.RouteAnalysis {
	best := routes[0]
	for _, r := range routes[1:] {
		if beats(r, best) {
			best = r
		}
	}
	return best
}

// tieBreak orders equal candidates: higher reliability first, then
// lexicographic method id. Returns true when a beats b.
func tieBreak(a, b domainRouting.RouteAnalysis) bool {
	if a.Reliability != b.Reliability {
		return a.Reliability > b.Reliability
	}
	return a.Method < b.Method
}

func cheaper(a, b domainRouting.RouteAnalysis) bool {
	switch a.Cost.Total.Cmp(b.Cost.Total) {
	case -1:
		return true
	case 1:
		return false
	}
	return tieBreak(a, b)
}

func faster(a, b domainRouting.RouteAnalysis) bool {
	if a.Speed != b.Speed {
		return a.Speed < b.Speed
	}
	return tieBreak(a, b)
}

func moreReliable(prediction *domainRouting.Prediction) func(a, b domainRouting.RouteAnalysis) bool {
	return func(a, b domainRouting.RouteAnalysis) bool {
		scoreA := reliabilityWeight*a.Reliability + predictiveWeight*prediction.Score(a.Method)
		scoreB := reliabilityWeight*b.Reliability + predictiveWeight*prediction.Score(b.Method)
		if scoreA != scoreB {
			return scoreA > scoreB
		}
		return tieBreak(a, b)
	}
}

func findMethod(routes []domainRouting.RouteAnalysis, m method.Method) (domainRouting.RouteAnalysis, bool) {
	if m == "" {
		return domainRouting.RouteAnalysis{}, false
	}
	for _, r := range routes {
		if r.Method == m {
			return r, true
		}
	}
	return domainRouting.RouteAnalysis{}, false
}
