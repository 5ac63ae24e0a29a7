//go:build e2e

package e2e

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
)

// FakeGateway is an in-process stand-in for the payment gateway REST API. It
// answers with the same intent for a repeated idempotency key.
type FakeGateway struct {
	srv *httptest.Server

	mu        sync.Mutex
	intents   map[string]string // idempotency key -> intent id
	refunds   []RefundCall
	failNext  int
	rejectAll bool
}

type RefundCall struct {
	PaymentIntent  string `json:"payment_intent"`
	Amount         int64  `json:"amount"`
	Currency       string `json:"currency"`
	IdempotencyKey string `json:"-"`
}

func NewFakeGateway() *FakeGateway {
	g := &FakeGateway{intents: make(map[string]string)}
	mux := http.NewServeMux()
	mux.HandleFunc("POST /v1/payment_intents", g.createIntent)
	mux.HandleFunc("POST /v1/refunds", g.refund)
	g.srv = httptest.NewServer(mux)
	return g
}

func (g *FakeGateway) URL() string { return g.srv.URL }
func (g *FakeGateway) Close()      { g.srv.Close() }

func (g *FakeGateway) Reset() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.intents = make(map[string]string)
	g.refunds = nil
	g.failNext = 0
	g.rejectAll = false
}

// FailNext makes the next n calls answer 503.
func (g *FakeGateway) FailNext(n int) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.failNext = n
}

// RejectAll makes every call answer 402 until Reset.
func (g *FakeGateway) RejectAll() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.rejectAll = true
}

func (g *FakeGateway) Refunds() []RefundCall {
	g.mu.Lock()
	defer g.mu.Unlock()
	return append([]RefundCall(nil), g.refunds...)
}

func (g *FakeGateway) IntentCount() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.intents)
}

// failure writes an error response when one is due and reports whether it did.
func (g *FakeGateway) failure(w http.ResponseWriter) bool {
	switch {
	case g.rejectAll:
		writeJSON(w, http.StatusPaymentRequired, map[string]any{
			"error": map[string]string{"type": "card_error", "message": "card declined"},
		})
		return true
	case g.failNext > 0:
		g.failNext--
		writeJSON(w, http.StatusServiceUnavailable, map[string]any{
			"error": map[string]string{"type": "api_error", "message": "try again"},
		})
		return true
	}
	return false
}

func (g *FakeGateway) createIntent(w http.ResponseWriter, r *http.Request) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.failure(w) {
		return
	}

	var body struct {
		OrderID string `json:"order_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.OrderID == "" {
		writeJSON(w, http.StatusBadRequest, map[string]any{"error": map[string]string{"message": "order_id required"}})
		return
	}

	key := r.Header.Get("Idempotency-Key")
	id, ok := g.intents[key]
	if !ok {
		id = "pi_" + body.OrderID
		g.intents[key] = id
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"id":            id,
		"client_secret": id + "_secret",
		"status":        "requires_payment_method",
	})
}

func (g *FakeGateway) refund(w http.ResponseWriter, r *http.Request) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.failure(w) {
		return
	}

	var call RefundCall
	if err := json.NewDecoder(r.Body).Decode(&call); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"error": map[string]string{"message": "bad body"}})
		return
	}
	call.IdempotencyKey = r.Header.Get("Idempotency-Key")
	for _, prev := range g.refunds {
		if prev.IdempotencyKey == call.IdempotencyKey {
			writeJSON(w, http.StatusOK, map[string]string{"id": "re_" + call.PaymentIntent, "status": "succeeded"})
			return
		}
	}
	g.refunds = append(g.refunds, call)
	writeJSON(w, http.StatusOK, map[string]string{"id": "re_" + call.PaymentIntent, "status": "succeeded"})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
