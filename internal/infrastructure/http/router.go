package httpapi

import "net/http"

func NewRouter(handler *PaymentHandler) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /payments", handler.Pay)
	mux.HandleFunc("POST /payments/fallback", handler.PayWithFallback)
	mux.HandleFunc("POST /payments/split", handler.PaySplit)
	mux.HandleFunc("POST /payments/smart", handler.PayWithSmartRouting)
	mux.HandleFunc("GET /methods", handler.ListMethods)
	mux.HandleFunc("GET /stats", handler.Stats)

	return mux
}
