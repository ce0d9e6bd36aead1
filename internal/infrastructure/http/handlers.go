package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"github.com/rcarvalho-pb/payment_routing-go/internal/application/orchestrator"
	"github.com/rcarvalho-pb/payment_routing-go/internal/domain/ledger"
	"github.com/rcarvalho-pb/payment_routing-go/internal/domain/method"
	"github.com/rcarvalho-pb/payment_routing-go/internal/domain/routing"
)

// PaymentHandler is thin JSON glue over the orchestrator. Declines come back
// as 200 with success=false in the body; only fatal routing errors map to
// HTTP error codes.
type PaymentHandler struct {
	Orchestrator *orchestrator.Orchestrator
	Ledger       ledger.Ledger
	Registry     method.Registry
}

type paymentPayload struct {
	Amount   string            `json:"amount"`
	Currency string            `json:"currency"`
	Country  string            `json:"country,omitempty"`
	Method   string            `json:"method,omitempty"`
	Methods  []string          `json:"methods,omitempty"`
	Strategy string            `json:"strategy,omitempty"`
	Metadata map[string]string `json:"metadata,omitempty"`
}

type splitPayload struct {
	paymentPayload
	Recipients []struct {
		Recipient   string `json:"recipient"`
		Amount      string `json:"amount"`
		Description string `json:"description,omitempty"`
	} `json:"recipients"`
}

func (p paymentPayload) toRequest() (routing.PaymentRequest, error) {
	amount, err := decimal.NewFromString(p.Amount)
	if err != nil {
		return routing.PaymentRequest{}, &routing.ValidationError{Field: "amount", Reason: "is not a valid decimal"}
	}

	req := routing.PaymentRequest{
		Amount:          amount,
		Currency:        p.Currency,
		Country:         p.Country,
		PreferredMethod: method.Method(p.Method),
		Metadata:        p.Metadata,
	}
	for _, m := range p.Methods {
		req.CandidateMethods = append(req.CandidateMethods, method.Method(m))
	}
	return req, nil
}

func (h *PaymentHandler) Pay(w http.ResponseWriter, r *http.Request) {
	var payload paymentPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	req, err := payload.toRequest()
	if err != nil {
		writeError(w, err)
		return
	}

	result, err := h.Orchestrator.Pay(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (h *PaymentHandler) PayWithFallback(w http.ResponseWriter, r *http.Request) {
	var payload paymentPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	req, err := payload.toRequest()
	if err != nil {
		writeError(w, err)
		return
	}

	methods := make([]method.Method, 0, len(payload.Methods))
	for _, m := range payload.Methods {
		methods = append(methods, method.Method(m))
	}

	result, err := h.Orchestrator.PayWithFallback(r.Context(), req, methods)
	if err != nil {
		var exhausted *routing.AllMethodsFailedError
		if errors.As(err, &exhausted) {
			// Exhaustion is a declined payment, not a transport error.
			writeJSON(w, http.StatusOK, result)
			return
		}
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (h *PaymentHandler) PaySplit(w http.ResponseWriter, r *http.Request) {
	var payload splitPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	base, err := payload.toRequest()
	if err != nil {
		writeError(w, err)
		return
	}

	plan := routing.SplitPaymentPlan{Base: base}
	for _, rec := range payload.Recipients {
		amount, err := decimal.NewFromString(rec.Amount)
		if err != nil {
			writeError(w, &routing.ValidationError{Field: "recipients", Reason: "amount is not a valid decimal"})
			return
		}
		plan.Recipients = append(plan.Recipients, routing.SplitRecipient{
			Recipient:   rec.Recipient,
			Amount:      amount,
			Description: rec.Description,
		})
	}

	result, err := h.Orchestrator.PaySplit(r.Context(), plan)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (h *PaymentHandler) PayWithSmartRouting(w http.ResponseWriter, r *http.Request) {
	var payload paymentPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	req, err := payload.toRequest()
	if err != nil {
		writeError(w, err)
		return
	}

	result, err := h.Orchestrator.PayWithSmartRouting(
		r.Context(),
		req,
		routing.Strategy(payload.Strategy),
		method.Method(payload.Method),
	)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (h *PaymentHandler) ListMethods(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, h.Registry.Methods())
}

func (h *PaymentHandler) Stats(w http.ResponseWriter, r *http.Request) {
	q := ledger.Query{
		Method:   method.Method(r.URL.Query().Get("method")),
		Country:  r.URL.Query().Get("country"),
		Currency: r.URL.Query().Get("currency"),
	}

	if from := r.URL.Query().Get("from"); from != "" {
		t, err := time.Parse(time.RFC3339, from)
		if err != nil {
			http.Error(w, "invalid from timestamp", http.StatusBadRequest)
			return
		}
		q.From = t
	}
	if to := r.URL.Query().Get("to"); to != "" {
		t, err := time.Parse(time.RFC3339, to)
		if err != nil {
			http.Error(w, "invalid to timestamp", http.StatusBadRequest)
			return
		}
		q.To = t
	}

	stats, err := h.Ledger.Query(r.Context(), q)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, err error) {
	var validation *routing.ValidationError
	switch {
	case errors.As(err, &validation):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, routing.ErrNoAvailableMethods), errors.Is(err, routing.ErrNoValidRoutes):
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
	default:
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
