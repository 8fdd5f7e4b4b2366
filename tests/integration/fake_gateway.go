package integration

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"time"
)

// fakeGateway emulates the KakaoPay ready / approve / cancel endpoints.
type fakeGateway struct {
	server *httptest.Server

	mu       sync.Mutex
	nextTIDs []string
	seq      int
	payments map[string]*fakePayment
	calls    map[string]int
	// declineToken makes approve answer 400 for this pg_token.
	declineToken string
}

type fakePayment struct {
	amount      int64
	approvalURL string
	cancelURL   string
	approved    bool
	canceled    bool
}

func newFakeGateway(tids ...string) *fakeGateway {
	g := &fakeGateway{
		nextTIDs:     tids,
		payments:     make(map[string]*fakePayment),
		calls:        make(map[string]int),
		declineToken: "declined",
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/online/v1/payment/ready", g.ready)
	mux.HandleFunc("/online/v1/payment/approve", g.approve)
	mux.HandleFunc("/online/v1/payment/cancel", g.cancel)
	g.server = httptest.NewServer(g.authorized(mux))
	return g
}

func (g *fakeGateway) close() { g.server.Close() }

func (g *fakeGateway) authorized(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "SECRET_KEY test-secret" {
			writeGatewayError(w, http.StatusUnauthorized, "-401", "invalid secret key")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (g *fakeGateway) ready(w http.ResponseWriter, r *http.Request) {
	var req struct {
		TotalAmount int64  `json:"total_amount"`
		ApprovalURL string `json:"approval_url"`
		CancelURL   string `json:"cancel_url"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeGatewayError(w, http.StatusBadRequest, "-2", "bad request")
		return
	}

	g.mu.Lock()
	g.calls["ready"]++
	var tid string
	if len(g.nextTIDs) > 0 {
		tid, g.nextTIDs = g.nextTIDs[0], g.nextTIDs[1:]
	} else {
		g.seq++
		tid = fmt.Sprintf("T%010d", g.seq)
	}
	g.payments[tid] = &fakePayment{amount: req.TotalAmount, approvalURL: req.ApprovalURL, cancelURL: req.CancelURL}
	g.mu.Unlock()

	writeGatewayJSON(w, map[string]any{
		"tid":                      tid,
		"next_redirect_pc_url":     "https://pg.example.com/pc/" + tid,
		"next_redirect_mobile_url": "https://pg.example.com/m/" + tid,
		"created_at":               time.Now().Format("2006-01-02T15:04:05"),
	})
}

func (g *fakeGateway) approve(w http.ResponseWriter, r *http.Request) {
	var req struct {
		TID     string `json:"tid"`
		PgToken string `json:"pg_token"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeGatewayError(w, http.StatusBadRequest, "-2", "bad request")
		return
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	g.calls["approve"]++

	p, ok := g.payments[req.TID]
	switch {
	case !ok:
		writeGatewayError(w, http.StatusBadRequest, "-780", "unknown tid")
		return
	case req.PgToken == "" || req.PgToken == g.declineToken:
		writeGatewayError(w, http.StatusBadRequest, "-702", "payment declined")
		return
	case p.approved:
		writeGatewayError(w, http.StatusBadRequest, "-702", "already approved")
		return
	}
	p.approved = true

	writeGatewayJSON(w, map[string]any{
		"aid":         "A-" + req.TID,
		"tid":         req.TID,
		"amount":      map[string]int64{"total": p.amount, "tax_free": 0},
		"approved_at": time.Now().Format("2006-01-02T15:04:05"),
	})
}

func (g *fakeGateway) cancel(w http.ResponseWriter, r *http.Request) {
	var req struct {
		TID          string `json:"tid"`
		CancelAmount int64  `json:"cancel_amount"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeGatewayError(w, http.StatusBadRequest, "-2", "bad request")
		return
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	g.calls["cancel"]++

	p, ok := g.payments[req.TID]
	if !ok || !p.approved || p.canceled || req.CancelAmount != p.amount {
		writeGatewayError(w, http.StatusBadRequest, "-721", "cannot cancel")
		return
	}
	p.canceled = true

	writeGatewayJSON(w, map[string]any{
		"tid":             req.TID,
		"status":          "CANCEL_PAYMENT",
		"canceled_amount": map[string]int64{"total": req.CancelAmount, "tax_free": 0},
		"canceled_at":     time.Now().Format("2006-01-02T15:04:05"),
	})
}

func (g *fakeGateway) callCount(op string) int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.calls[op]
}

func (g *fakeGateway) payment(tid string) fakePayment {
	g.mu.Lock()
	defer g.mu.Unlock()
	if p, ok := g.payments[tid]; ok {
		return *p
	}
	return fakePayment{}
}

func writeGatewayJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

func writeGatewayError(w http.ResponseWriter, status int, code, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error_code": code, "error_message": msg})
}
