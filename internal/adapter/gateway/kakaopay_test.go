package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"point-wallet/config"
	"point-wallet/internal/core/ports"
	"point-wallet/internal/metrics"
	"point-wallet/pkg/apperror"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockHTTPClient implements HTTPClient for testing.
type mockHTTPClient struct {
	doFunc func(req *http.Request) (*http.Response, error)
}

func (m *mockHTTPClient) Do(req *http.Request) (*http.Response, error) {
	return m.doFunc(req)
}

func newTestClient(t *testing.T, handler http.HandlerFunc) *KakaoPayClient {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	cfg := config.GatewayConfig{
		BaseURL:   srv.URL + "/",
		SecretKey: "DEV-SECRET",
		CID:       "TC0ONETIME",
	}
	return NewKakaoPayClient(cfg, NewHTTPClient(2*time.Second), metrics.New(prometheus.NewRegistry()), zerolog.Nop())
}

func writeJSON(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = io.WriteString(w, body)
}

func assertAppError(t *testing.T, err error, code string) {
	t.Helper()
	require.Error(t, err)
	var appErr *apperror.AppError
	require.True(t, errors.As(err, &appErr), "expected AppError, got %T", err)
	assert.Equal(t, code, appErr.Code)
}

func sampleReady() ports.GatewayReadyRequest {
	return ports.GatewayReadyRequest{
		PartnerOrderID: "CHG-550e8400-20260301093015",
		PartnerUserID:  "550e8400-e29b-41d4-a716-446655440000",
		ItemName:       "포인트 충전",
		Quantity:       1,
		TotalAmount:    10000,
		ApprovalURL:    "https://books.example.com/api/v1/points/charge/success?member_id=550e8400-e29b-41d4-a716-446655440000&amount=10000",
		CancelURL:      "https://books.example.com/api/v1/points/charge/cancel?member_id=550e8400-e29b-41d4-a716-446655440000",
		FailURL:        "https://books.example.com/api/v1/points/charge/fail?member_id=550e8400-e29b-41d4-a716-446655440000",
	}
}

func TestKakaoPayClient_Ready_Success(t *testing.T) {
	var got readyRequest
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, readyPath, r.URL.Path)
		assert.Equal(t, "SECRET_KEY DEV-SECRET", r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		writeJSON(w, http.StatusOK, `{
			"tid": "T1234567890123456789",
			"next_redirect_pc_url": "https://online-pay.kakao.com/mockup/v1/abc/info",
			"next_redirect_mobile_url": "https://online-pay.kakao.com/mockup/v1/abc/mInfo",
			"created_at": "2026-03-01T18:30:15"
		}`)
	})

	resp, err := client.Ready(context.Background(), sampleReady())
	require.NoError(t, err)

	assert.Equal(t, "T1234567890123456789", resp.TID)
	assert.Equal(t, "https://online-pay.kakao.com/mockup/v1/abc/info", resp.NextRedirectPCURL)
	assert.Equal(t, "https://online-pay.kakao.com/mockup/v1/abc/mInfo", resp.NextRedirectMobileURL)
	assert.Equal(t, time.Date(2026, 3, 1, 9, 30, 15, 0, time.UTC), resp.CreatedAt)

	assert.Equal(t, "TC0ONETIME", got.CID)
	assert.Equal(t, int64(10000), got.TotalAmount)
	assert.Equal(t, int64(0), got.TaxFreeAmount)
	assert.Equal(t, 1, got.Quantity)
	assert.Equal(t, "550e8400-e29b-41d4-a716-446655440000", got.PartnerUserID)
	assert.Contains(t, got.ApprovalURL, "amount=10000")
}

func TestKakaoPayClient_Ready_MissingTID(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, `{"next_redirect_pc_url": "https://pay.example.com/x"}`)
	})

	resp, err := client.Ready(context.Background(), sampleReady())
	assert.Nil(t, resp)
	assertAppError(t, err, "GW_002")
}

func TestKakaoPayClient_Ready_MalformedBody(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, `<html>maintenance</html>`)
	})

	_, err := client.Ready(context.Background(), sampleReady())
	assertAppError(t, err, "GW_002")
}

func TestKakaoPayClient_Ready_ServerError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusBadGateway, `{}`)
	})

	_, err := client.Ready(context.Background(), sampleReady())
	assertAppError(t, err, "GW_001")
}

func TestKakaoPayClient_Ready_Declined(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusBadRequest, `{"error_code":"INVALID_REQUEST","error_message":"total_amount is invalid"}`)
	})

	_, err := client.Ready(context.Background(), sampleReady())
	assertAppError(t, err, "CHG_002")
	assert.Contains(t, err.Error(), "INVALID_REQUEST")
}

func TestKakaoPayClient_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		time.Sleep(300 * time.Millisecond)
		writeJSON(w, http.StatusOK, `{"tid":"late"}`)
	}))
	defer srv.Close()

	client := NewKakaoPayClient(
		config.GatewayConfig{BaseURL: srv.URL, SecretKey: "k", CID: "c"},
		NewHTTPClient(50*time.Millisecond), nil, zerolog.Nop(),
	)

	_, err := client.Ready(context.Background(), sampleReady())
	assertAppError(t, err, "GW_001")
}

func TestKakaoPayClient_TransportError(t *testing.T) {
	httpClient := &mockHTTPClient{
		doFunc: func(*http.Request) (*http.Response, error) {
			return nil, errors.New("connection refused")
		},
	}
	client := NewKakaoPayClient(config.GatewayConfig{BaseURL: "http://gateway.invalid"}, httpClient, nil, zerolog.Nop())

	_, err := client.Approve(context.Background(), ports.GatewayApproveRequest{TID: "T1", PgToken: "tok"})
	assertAppError(t, err, "GW_001")
	assert.Contains(t, err.Error(), "connection refused")
}

func TestKakaoPayClient_Approve_Success(t *testing.T) {
	var got approveRequest
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, approvePath, r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		writeJSON(w, http.StatusOK, `{
			"aid": "A5678",
			"tid": "9999",
			"cid": "TC0ONETIME",
			"partner_order_id": "CHG-550e8400-20260301093015",
			"partner_user_id": "550e8400-e29b-41d4-a716-446655440000",
			"payment_method_type": "MONEY",
			"amount": {"total": 10000, "tax_free": 0, "vat": 909},
			"approved_at": "2026-03-01T18:31:02"
		}`)
	})

	resp, err := client.Approve(context.Background(), ports.GatewayApproveRequest{
		TID:            "9999",
		PartnerOrderID: "CHG-550e8400-20260301093015",
		PartnerUserID:  "550e8400-e29b-41d4-a716-446655440000",
		PgToken:        "pg_token_abc",
	})
	require.NoError(t, err)

	assert.Equal(t, "A5678", resp.AID)
	assert.Equal(t, "9999", resp.TID)
	assert.Equal(t, int64(10000), resp.TotalAmount)
	assert.Equal(t, time.Date(2026, 3, 1, 9, 31, 2, 0, time.UTC), resp.ApprovedAt)

	assert.Equal(t, "TC0ONETIME", got.CID)
	assert.Equal(t, "9999", got.TID)
	assert.Equal(t, "pg_token_abc", got.PgToken)
}

func TestKakaoPayClient_Approve_MissingAmount(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, `{"aid":"A1","tid":"9999"}`)
	})

	_, err := client.Approve(context.Background(), ports.GatewayApproveRequest{TID: "9999", PgToken: "tok"})
	assertAppError(t, err, "GW_002")
}

func TestKakaoPayClient_Approve_Declined(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusBadRequest, `{"error_code":"INVALID_PG_TOKEN","error_message":"pg_token is invalid"}`)
	})

	_, err := client.Approve(context.Background(), ports.GatewayApproveRequest{TID: "9999", PgToken: "forged"})
	assertAppError(t, err, "CHG_002")
}

func TestKakaoPayClient_Cancel_Success(t *testing.T) {
	var got cancelRequest
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, cancelPath, r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		writeJSON(w, http.StatusOK, `{
			"tid": "9999",
			"status": "CANCEL_PAYMENT",
			"canceled_amount": {"total": 10000, "tax_free": 0},
			"canceled_at": "2026-03-02T10:00:00+09:00"
		}`)
	})

	resp, err := client.Cancel(context.Background(), ports.GatewayCancelRequest{TID: "9999", CancelAmount: 10000})
	require.NoError(t, err)

	assert.Equal(t, "9999", resp.TID)
	assert.Equal(t, "CANCEL_PAYMENT", resp.Status)
	assert.Equal(t, int64(10000), resp.CancelAmount)
	assert.Equal(t, time.Date(2026, 3, 2, 1, 0, 0, 0, time.UTC), resp.CanceledAt)

	assert.Equal(t, "9999", got.TID)
	assert.Equal(t, int64(10000), got.CancelAmount)
	assert.Equal(t, int64(0), got.CancelTaxFreeAmount)
}

func TestKakaoPayClient_Cancel_MissingTID(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, `{"status":"CANCEL_PAYMENT"}`)
	})

	_, err := client.Cancel(context.Background(), ports.GatewayCancelRequest{TID: "9999", CancelAmount: 10000})
	assertAppError(t, err, "GW_002")
}

func TestParseGatewayTime(t *testing.T) {
	assert.True(t, parseGatewayTime("").IsZero())
	assert.True(t, parseGatewayTime("yesterday").IsZero())
	assert.Equal(t, time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), parseGatewayTime("2026-01-01T09:00:00"))
	assert.Equal(t, time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), parseGatewayTime("2026-01-01T00:00:00Z"))
}
