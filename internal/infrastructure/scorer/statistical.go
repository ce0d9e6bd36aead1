package scorer

import (
	"context"
	"sync"

	approuting "github.com/rcarvalho-pb/payment_routing-go/internal/application/routing"
	"github.com/rcarvalho-pb/payment_routing-go/internal/domain/method"
	"github.com/rcarvalho-pb/payment_routing-go/internal/domain/routing"
)

const (
	neutralScore        = 0.5
	defaultLearningRate = 0.05
)

// Statistical is a reference predictive scorer: per-method and per-country
// weights nudged by a fixed learning rate on every observed outcome. It is
// deliberately simple — the orchestration never assumes anything smarter sits
// behind the Scorer boundary.
type Statistical struct {
	mu             sync.Mutex
	learningRate   float64
	methodWeights  map[method.Method]float64
	countryWeights map[string]float64
}

func NewStatistical(learningRate float64) *Statistical {
	if learningRate <= 0 {
		learningRate = defaultLearningRate
	}
	return &Statistical{
		learningRate:   learningRate,
		methodWeights:  make(map[method.Method]float64),
		countryWeights: make(map[string]float64),
	}
}

func countryKey(country string, m method.Method) string {
	return country + ":" + string(m)
}

func (s *Statistical) Predict(_ context.Context, req routing.PaymentRequest, candidates []method.Method) (routing.Prediction, error) {
	if len(candidates) == 0 {
		return routing.Prediction{Scores: map[method.Method]float64{}}, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	scores := make(map[method.Method]float64, len(candidates))
	best := candidates[0]

	for _, m := range candidates {
		score := neutralScore + s.methodWeights[m] + s.countryWeights[countryKey(req.Country, m)]
		scores[m] = clamp(score)

		if scores[m] > scores[best] || (scores[m] == scores[best] && m < best) {
			best = m
		}
	}

	// Confidence: how far the top score sits above the rest.
	var otherSum float64
	for m, sc := range scores {
		if m != best {
			otherSum += sc
		}
	}
	confidence := scores[best]
	if len(scores) > 1 {
		confidence = clamp(scores[best] - otherSum/float64(len(scores)-1))
	}

	return routing.Prediction{
		Method:     best,
		Confidence: confidence,
		Scores:     scores,
	}, nil
}

func (s *Statistical) Learn(_ context.Context, req routing.PaymentRequest, chosen method.Method, success bool, _ approuting.Outcome) error {
	delta := s.learningRate
	if !success {
		delta = -s.learningRate
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.methodWeights[chosen] += delta
	if req.Country != "" {
		s.countryWeights[countryKey(req.Country, chosen)] += delta / 2
	}
	return nil
}

func clamp(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
