package orchestrator

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/rcarvalho-pb/payment_routing-go/internal/application/contracts"
	approuting "github.com/rcarvalho-pb/payment_routing-go/internal/application/routing"
	"github.com/rcarvalho-pb/payment_routing-go/internal/domain/ledger"
	"github.com/rcarvalho-pb/payment_routing-go/internal/domain/method"
	"github.com/rcarvalho-pb/payment_routing-go/internal/domain/routing"
	"github.com/rcarvalho-pb/payment_routing-go/internal/infra/logging"
	"github.com/rcarvalho-pb/payment_routing-go/internal/infra/metrics"
)

// Orchestrator is the public entry point of the routing core. Collaborators
// are injected; it holds no hidden mutable state of its own — the ledger is
// the only shared resource and it is owned elsewhere.
type Orchestrator struct {
	Registry  method.Registry
	Ledger    ledger.Ledger
	Processor contracts.Processor
	Scorer    approuting.Scorer
	Logger    logging.Logger
	Metrics   *metrics.Counters

	// Window overrides the analyzer's trailing history window.
	Window time.Duration
	// Now and NewID exist for deterministic tests.
	Now   func() time.Time
	NewID func() string
}

func (o *Orchestrator) now() time.Time {
	if o.Now != nil {
		return o.Now()
	}
	return time.Now()
}

func (o *Orchestrator) newID() string {
	if o.NewID != nil {
		return o.NewID()
	}
	return fmt.Sprintf("TXN-%s", uuid.NewString())
}

func (o *Orchestrator) filter() *approuting.AvailabilityFilter {
	return &approuting.AvailabilityFilter{Registry: o.Registry}
}

func (o *Orchestrator) analyzer() *approuting.RouteAnalyzer {
	return &approuting.RouteAnalyzer{
		Registry: o.Registry,
		Ledger:   o.Ledger,
		Window:   o.Window,
		Logger:   o.Logger,
		Now:      o.Now,
	}
}

// Pay executes a single-method payment using the request's preferred method
// and passes the processor result through unchanged. The outcome is appended
// to the ledger win or lose.
func (o *Orchestrator) Pay(ctx context.Context, req routing.PaymentRequest) (PaymentResult, error) {
	if err := req.Validate(); err != nil {
		return PaymentResult{}, err
	}
	if req.PreferredMethod == "" {
		return PaymentResult{}, &routing.ValidationError{Field: "preferred_method", Reason: "is required"}
	}

	result, _ := o.attempt(ctx, req.PreferredMethod, req)
	return result, nil
}

// PayWithFallback attempts each method strictly in sequence, stopping on the
// first success. Ordering is a caller preference and is never parallelized:
// two concurrent attempts for the same logical payment risk duplicate
// charges. A processor that errors instead of cleanly declining counts as a
// failure and iteration continues.
func (o *Orchestrator) PayWithFallback(ctx context.Context, req routing.PaymentRequest, methods []method.Method) (FallbackResult, error) {
	if err := req.Validate(); err != nil {
		return FallbackResult{}, err
	}
	if len(methods) == 0 {
		return FallbackResult{}, &routing.ValidationError{Field: "methods", Reason: "at least one payment method is required"}
	}

	attempted := make([]method.Method, 0, len(methods))
	var lastResult PaymentResult
	var lastErr error

	for _, m := range methods {
		if err := ctx.Err(); err != nil {
			return FallbackResult{AttemptedMethods: attempted}, err
		}

		attempted = append(attempted, m)
		result, err := o.attempt(ctx, m, req)
		if result.Success {
			return FallbackResult{
				PaymentResult:    result,
				MethodUsed:       m,
				AttemptedMethods: attempted,
			}, nil
		}
		lastResult = result
		lastErr = err
	}

	o.Metrics.IncFallbacksExhausted()

	return FallbackResult{
			PaymentResult:    lastResult,
			AttemptedMethods: attempted,
		}, &routing.AllMethodsFailedError{
			Attempted: attempted,
			LastErr:   lastErr,
		}
}

// PaySplit executes the base payment first and, only if it succeeds, fans the
// recipient transfers out concurrently. Each recipient failure is captured in
// its own outcome; a partial failure never flips the aggregate success flag.
// On cancellation, sub-payments that already completed keep their recorded
// outcome — reversal is the processor integration's concern, not ours.
func (o *Orchestrator) PaySplit(ctx context.Context, plan routing.SplitPaymentPlan) (SplitResult, error) {
	if err := plan.Validate(); err != nil {
		return SplitResult{}, err
	}
	if plan.Base.PreferredMethod == "" {
		return SplitResult{}, &routing.ValidationError{Field: "preferred_method", Reason: "is required"}
	}

	main, _ := o.attempt(ctx, plan.Base.PreferredMethod, plan.Base)
	if !main.Success {
		return SplitResult{Success: false, Main: main}, nil
	}

	outcomes := make([]SplitOutcome, len(plan.Recipients))
	g, gctx := errgroup.WithContext(ctx)

	for i, recipient := range plan.Recipients {
		i, recipient := i, recipient
		g.Go(func() error {
			subReq := plan.Base
			subReq.Amount = recipient.Amount
			subReq.Metadata = splitMetadata(plan.Base.Metadata, recipient)

			result, _ := o.attempt(gctx, plan.Base.PreferredMethod, subReq)
			outcomes[i] = SplitOutcome{
				Recipient:     recipient.Recipient,
				Amount:        recipient.Amount,
				PaymentResult: result,
			}
			return nil
		})
	}
	g.Wait()

	o.Metrics.AddSplitsDispatched(uint64(len(plan.Recipients)))

	result := SplitResult{
		Success:     true,
		Main:        main,
		Splits:      outcomes,
		TotalSplits: len(outcomes),
	}
	for _, s := range outcomes {
		if s.PaymentResult.Success {
			result.SuccessfulSplits++
		} else {
			result.FailedSplits++
		}
	}
	return result, nil
}

// PayWithSmartRouting runs the full pipeline: availability filter, per-route
// analysis, optional prediction, strategy selection, execution. The scorer
// learns from the true outcome exactly once, success or not, after the
// processor call resolves.
func (o *Orchestrator) PayWithSmartRouting(ctx context.Context, req routing.PaymentRequest, strategy routing.Strategy, preferred method.Method) (SmartResult, error) {
	if err := req.Validate(); err != nil {
		return SmartResult{}, err
	}

	available, err := o.filter().Filter(req)
	if err != nil {
		return SmartResult{}, err
	}

	routes := o.analyzer().Analyze(ctx, req, available)
	valid := approuting.ValidRoutes(routes, req.Amount)

	var prediction *routing.Prediction
	if o.Scorer != nil {
		p, err := o.Scorer.Predict(ctx, req, available)
		if err != nil {
			// Scorer trouble must not fail the payment: degrade to the
			// reliability-only path.
			o.Logger.Error("predictive scorer failed, degrading to reliable strategy", map[string]any{
				"error": (&routing.RoutingError{Err: err}).Error(),
			})
			strategy = routing.StrategyReliable
		} else {
			prediction = &p
		}
	}

	decision, err := approuting.Select(valid, strategy, prediction, preferred)
	if err != nil {
		return SmartResult{}, err
	}

	result, _ := o.attempt(ctx, decision.Method, req)

	if o.Scorer != nil {
		outcome := approuting.Outcome{
			ProcessingTime: result.ProcessingTime,
			ErrorCode:      result.ErrorCode,
		}
		for _, r := range decision.Routes {
			if r.Method == decision.Method {
				outcome.Cost = r.Cost.Total
				break
			}
		}
		if err := o.Scorer.Learn(ctx, req, decision.Method, result.Success, outcome); err != nil {
			o.Logger.Error("scorer learn failed", map[string]any{
				"method": decision.Method.String(),
				"error":  err.Error(),
			})
		}
	}

	return SmartResult{PaymentResult: result, Decision: decision}, nil
}

// attempt runs one processor call and records its outcome. The returned error
// is a *routing.ProcessorError describing the failure; the result is always
// populated so callers can account for it.
func (o *Orchestrator) attempt(ctx context.Context, m method.Method, req routing.PaymentRequest) (PaymentResult, error) {
	o.Metrics.IncAttempted()

	started := o.now()
	procResult, procErr := o.Processor.Execute(ctx, m, req)

	elapsed := procResult.ProcessingTime
	if elapsed <= 0 {
		elapsed = time.Since(started)
	}

	result := PaymentResult{
		Success:        procResult.Success && procErr == nil,
		TransactionID:  procResult.TransactionID,
		Method:         m,
		Amount:         req.Amount,
		Currency:       req.Currency,
		ErrorCode:      procResult.ErrorCode,
		Message:        procResult.Message,
		ProcessingTime: elapsed,
		Timestamp:      started,
	}
	if result.TransactionID == "" {
		result.TransactionID = o.newID()
	}

	var attemptErr error
	if !result.Success {
		if procErr != nil && result.ErrorCode == "" {
			result.ErrorCode = "ERR_PROCESSOR"
		}
		if procErr != nil && result.Message == "" {
			result.Message = procErr.Error()
		}
		attemptErr = &routing.ProcessorError{Method: m, Code: result.ErrorCode, Err: procErr}
		o.Metrics.IncFailed()
		o.Logger.Error("payment attempt failed", map[string]any{
			"transaction_id": result.TransactionID,
			"method":         m.String(),
			"error_code":     result.ErrorCode,
		})
	} else {
		o.Metrics.IncSucceeded()
		o.Logger.Info("payment attempt succeeded", map[string]any{
			"transaction_id":  result.TransactionID,
			"method":          m.String(),
			"processing_time": elapsed.String(),
		})
	}

	o.record(ctx, result, req)

	return result, attemptErr
}

// record appends the attempt outcome. This is the single boundary where
// storage errors are logged and swallowed: bookkeeping failure must never
// change a payment result.
func (o *Orchestrator) record(ctx context.Context, result PaymentResult, req routing.PaymentRequest) {
	err := o.Ledger.Append(ctx, ledger.TransactionRecord{
		ID:             result.TransactionID,
		Timestamp:      result.Timestamp,
		Method:         result.Method,
		Amount:         result.Amount,
		Currency:       result.Currency,
		Country:        req.Country,
		Success:        result.Success,
		ProcessingTime: result.ProcessingTime,
		ErrorCode:      result.ErrorCode,
	})
	if err != nil {
		o.Metrics.IncRecordsDropped()
		o.Logger.Error("ledger append failed", map[string]any{
			"transaction_id": result.TransactionID,
			"error":          err.Error(),
		})
	}
}

func splitMetadata(base map[string]string, recipient routing.SplitRecipient) map[string]string {
	meta := make(map[string]string, len(base)+2)
	for k, v := range base {
		meta[k] = v
	}
	meta["split_recipient"] = recipient.Recipient
	if recipient.Description != "" {
		meta["split_description"] = recipient.Description
	}
	return meta
}
