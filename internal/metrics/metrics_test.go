package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_ObserveGateway(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.ObserveGateway("approve", OutcomeSuccess, 120*time.Millisecond)
	m.ObserveGateway("approve", OutcomeSuccess, 80*time.Millisecond)
	m.ObserveGateway("approve", OutcomeUnavailable, 10*time.Second)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.gatewayRequests.WithLabelValues("approve", OutcomeSuccess)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.gatewayRequests.WithLabelValues("approve", OutcomeUnavailable)))
	assert.Equal(t, 1, testutil.CollectAndCount(m.gatewayDuration))
}

func TestMetrics_LedgerMutation(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.LedgerMutation("CHARGE", OutcomeSuccess)
	m.LedgerMutation("PURCHASE", OutcomeRejected)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.ledgerMutations.WithLabelValues("CHARGE", OutcomeSuccess)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ledgerMutations.WithLabelValues("PURCHASE", OutcomeRejected)))
}

func TestMetrics_NilIsNoop(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.ObserveGateway("ready", OutcomeSuccess, time.Second)
		m.LedgerMutation("REFUND", OutcomeSuccess)
	})
}

func TestMetrics_Handler(t *testing.T) {
	m := NewDefault()
	m.LedgerMutation("REFUND", OutcomeSuccess)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `point_wallet_ledger_mutations_total{kind="REFUND",outcome="success"} 1`)
	assert.Contains(t, string(body), "go_goroutines")
}
