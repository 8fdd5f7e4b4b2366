package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"point-wallet/internal/adapter/http/dto"
	"point-wallet/internal/adapter/http/middleware"
	"point-wallet/internal/core/domain"
	"point-wallet/internal/core/ports"
	"point-wallet/internal/core/ports/mocks"
	"point-wallet/pkg/apperror"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func init() {
	gin.SetMode(gin.TestMode)
}

var testNow = time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC)

func newContext(method, target string, body any) (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	c.Request = httptest.NewRequest(method, target, &buf)
	c.Request.Header.Set("Content-Type", "application/json")
	return c, w
}

func decodeData(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var resp map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data, ok := resp["data"].(map[string]any)
	require.True(t, ok, "missing data in %s", w.Body.String())
	return data
}

func decodeErrorCode(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var resp map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	code, _ := resp["error_code"].(string)
	return code
}

// --- Points Handler Tests ---

func TestOpenAccount_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockLedger := mocks.NewMockLedgerService(ctrl)
	h := NewPointsHandler(mockLedger)

	memberID := uuid.New()
	mockLedger.EXPECT().OpenAccount(gomock.Any(), memberID).Return(&domain.Member{ID: memberID, CreatedAt: testNow}, nil)

	c, w := newContext(http.MethodPost, "/api/v1/points/account", nil)
	c.Set(middleware.CtxMemberID, memberID)
	h.OpenAccount(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	data := decodeData(t, w)
	assert.Equal(t, memberID.String(), data["member_id"])
	assert.Equal(t, float64(0), data["balance"])
	assert.Equal(t, memberID.String(), c.GetString(middleware.CtxAuditResourceID))
}

func TestGetBalance_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockLedger := mocks.NewMockLedgerService(ctrl)
	h := NewPointsHandler(mockLedger)

	memberID := uuid.New()
	mockLedger.EXPECT().GetBalance(gomock.Any(), memberID).Return(int64(15000), nil)

	c, w := newContext(http.MethodGet, "/api/v1/points/balance", nil)
	c.Set(middleware.CtxMemberID, memberID)
	h.GetBalance(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(15000), decodeData(t, w)["balance"])
}

func TestGetBalance_MissingMember(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	h := NewPointsHandler(mocks.NewMockLedgerService(ctrl))

	c, w := newContext(http.MethodGet, "/api/v1/points/balance", nil)
	h.GetBalance(c)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestGetBalance_MemberNotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockLedger := mocks.NewMockLedgerService(ctrl)
	h := NewPointsHandler(mockLedger)

	memberID := uuid.New()
	mockLedger.EXPECT().GetBalance(gomock.Any(), memberID).Return(int64(0), apperror.ErrMemberNotFound())

	c, w := newContext(http.MethodGet, "/api/v1/points/balance", nil)
	c.Set(middleware.CtxMemberID, memberID)
	h.GetBalance(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "PNT_003", decodeErrorCode(t, w))
}

func TestGetHistory_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockLedger := mocks.NewMockLedgerService(ctrl)
	h := NewPointsHandler(mockLedger)

	memberID := uuid.New()
	mockLedger.EXPECT().GetHistory(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, q ports.HistoryQuery) ([]domain.Transaction, int64, error) {
			assert.Equal(t, memberID, q.MemberID)
			assert.Equal(t, time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC), q.StartDate)
			assert.Equal(t, time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC), q.EndDate)
			require.NotNil(t, q.Kind)
			assert.Equal(t, domain.TransactionKindCharge, *q.Kind)
			assert.Equal(t, 2, q.Page)
			assert.Equal(t, 10, q.PageSize)
			return []domain.Transaction{
				{ID: uuid.New(), MemberID: memberID, Amount: 10000, BalanceAfter: 10000, Kind: domain.TransactionKindCharge, CreatedAt: testNow},
			}, int64(11), nil
		},
	)

	c, w := newContext(http.MethodGet, "/api/v1/points/history?start_date=2026-03-01&end_date=2026-03-31&kind=CHARGE&page=2&page_size=10", nil)
	c.Set(middleware.CtxMemberID, memberID)
	h.GetHistory(c)

	assert.Equal(t, http.StatusOK, w.Code)
	data := decodeData(t, w)
	assert.Len(t, data["items"], 1)
	assert.Equal(t, float64(11), data["total"])
	assert.Equal(t, float64(2), data["total_pages"])
	assert.Equal(t, float64(2), data["page"])
}

func TestGetHistory_DefaultPaging(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockLedger := mocks.NewMockLedgerService(ctrl)
	h := NewPointsHandler(mockLedger)

	memberID := uuid.New()
	mockLedger.EXPECT().GetHistory(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, q ports.HistoryQuery) ([]domain.Transaction, int64, error) {
			assert.Nil(t, q.Kind)
			assert.Equal(t, 1, q.Page)
			assert.Equal(t, 20, q.PageSize)
			return nil, int64(0), nil
		},
	)

	c, w := newContext(http.MethodGet, "/api/v1/points/history?start_date=2026-03-01&end_date=2026-03-01", nil)
	c.Set(middleware.CtxMemberID, memberID)
	h.GetHistory(c)

	assert.Equal(t, http.StatusOK, w.Code)
	data := decodeData(t, w)
	assert.Empty(t, data["items"])
	assert.Equal(t, float64(0), data["total_pages"])
}

func TestGetHistory_InvalidDate(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	h := NewPointsHandler(mocks.NewMockLedgerService(ctrl))

	c, w := newContext(http.MethodGet, "/api/v1/points/history?start_date=03-01-2026&end_date=2026-03-31", nil)
	c.Set(middleware.CtxMemberID, uuid.New())
	h.GetHistory(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "REQ_001", decodeErrorCode(t, w))
}

func TestPurchase_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockLedger := mocks.NewMockLedgerService(ctrl)
	h := NewPointsHandler(mockLedger)

	memberID := uuid.New()
	txn := &domain.Transaction{ID: uuid.New(), MemberID: memberID, Amount: -3000, BalanceAfter: 7000, Kind: domain.TransactionKindPurchase, CreatedAt: testNow}
	mockLedger.EXPECT().Spend(gomock.Any(), memberID, int64(3000), "ebook &lt;vol.1&gt;").Return(txn, nil)

	c, w := newContext(http.MethodPost, "/api/v1/points/purchase", dto.PurchaseRequest{Amount: 3000, Description: " ebook <vol.1> "})
	c.Set(middleware.CtxMemberID, memberID)
	h.Purchase(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	data := decodeData(t, w)
	assert.Equal(t, float64(10000), data["balance_before"])
	assert.Equal(t, float64(7000), data["balance_after"])
	assert.Equal(t, txn.ID.String(), c.GetString(middleware.CtxAuditResourceID))
}

func TestPurchase_InsufficientBalance(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockLedger := mocks.NewMockLedgerService(ctrl)
	h := NewPointsHandler(mockLedger)

	memberID := uuid.New()
	mockLedger.EXPECT().Spend(gomock.Any(), memberID, int64(3000), "").Return(nil, apperror.ErrInsufficientBalance())

	c, w := newContext(http.MethodPost, "/api/v1/points/purchase", dto.PurchaseRequest{Amount: 3000})
	c.Set(middleware.CtxMemberID, memberID)
	h.Purchase(c)

	assert.Equal(t, http.StatusPaymentRequired, w.Code)
	assert.Equal(t, "PNT_002", decodeErrorCode(t, w))
}

func TestPurchase_ValidationError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	h := NewPointsHandler(mocks.NewMockLedgerService(ctrl))

	c, w := newContext(http.MethodPost, "/api/v1/points/purchase", map[string]any{"amount": -5})
	c.Set(middleware.CtxMemberID, uuid.New())
	h.Purchase(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

// --- Charge Handler Tests ---

type chargeHandlerDeps struct {
	h      *ChargeHandler
	charge *mocks.MockChargeService
	ledger *mocks.MockLedgerService
	ctrl   *gomock.Controller
}

func setupChargeHandler(t *testing.T) *chargeHandlerDeps {
	ctrl := gomock.NewController(t)
	d := &chargeHandlerDeps{
		charge: mocks.NewMockChargeService(ctrl),
		ledger: mocks.NewMockLedgerService(ctrl),
		ctrl:   ctrl,
	}
	d.h = NewChargeHandler(d.charge, d.ledger, zerolog.Nop())
	return d
}

func TestChargeReady_Success(t *testing.T) {
	d := setupChargeHandler(t)
	defer d.ctrl.Finish()

	memberID := uuid.New()
	d.charge.EXPECT().PrepareCharge(gomock.Any(), memberID, int64(10000)).Return(&domain.RedirectTarget{
		TID:         "9999",
		RedirectURL: "https://pg.example.com/pc/9999",
		ExpiresAt:   testNow.Add(time.Minute),
	}, nil)

	c, w := newContext(http.MethodPost, "/api/v1/points/charge/ready", dto.ChargeReadyRequest{Amount: 10000})
	c.Set(middleware.CtxMemberID, memberID)
	d.h.Ready(c)

	assert.Equal(t, http.StatusOK, w.Code)
	data := decodeData(t, w)
	assert.Equal(t, "9999", data["tid"])
	assert.Equal(t, "https://pg.example.com/pc/9999", data["redirect_url"])
	assert.Equal(t, "2026-03-01T09:31:00Z", data["expires_at"])
}

func TestChargeReady_GatewayUnavailable(t *testing.T) {
	d := setupChargeHandler(t)
	defer d.ctrl.Finish()

	memberID := uuid.New()
	d.charge.EXPECT().PrepareCharge(gomock.Any(), memberID, int64(10000)).Return(nil, apperror.ErrGatewayUnavailable(errors.New("timeout")))

	c, w := newContext(http.MethodPost, "/api/v1/points/charge/ready", dto.ChargeReadyRequest{Amount: 10000})
	c.Set(middleware.CtxMemberID, memberID)
	d.h.Ready(c)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Equal(t, "GW_001", decodeErrorCode(t, w))
}

func TestChargeSuccess_CreditsApprovedAmount(t *testing.T) {
	d := setupChargeHandler(t)
	defer d.ctrl.Finish()

	memberID := uuid.New()
	approval := &domain.ApprovalResult{MemberID: memberID, TID: "9999", AID: "A1", Amount: 10000}
	d.charge.EXPECT().ApproveCharge(gomock.Any(), memberID, "pg_token_abc").Return(approval, nil)
	d.ledger.EXPECT().ApplyDelta(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, req ports.DeltaRequest) (*domain.Transaction, error) {
			assert.Equal(t, memberID, req.MemberID)
			assert.Equal(t, int64(10000), req.Amount)
			assert.Equal(t, domain.TransactionKindCharge, req.Kind)
			assert.Equal(t, "9999", *req.ExternalID)
			return &domain.Transaction{ID: uuid.New(), MemberID: memberID, Amount: 10000, BalanceAfter: 10000, Kind: domain.TransactionKindCharge, ExternalID: req.ExternalID, CreatedAt: testNow}, nil
		},
	)

	c, w := newContext(http.MethodGet, "/api/v1/points/charge/success?member_id="+memberID.String()+"&amount=10000&pg_token=pg_token_abc", nil)
	d.h.Success(c)

	assert.Equal(t, http.StatusOK, w.Code)
	data := decodeData(t, w)
	assert.Equal(t, "9999", data["tid"])
	assert.Equal(t, float64(10000), data["amount"])
	txn := data["transaction"].(map[string]any)
	assert.Equal(t, float64(10000), txn["balance_after"])
}

func TestChargeSuccess_PendingExpired(t *testing.T) {
	d := setupChargeHandler(t)
	defer d.ctrl.Finish()

	memberID := uuid.New()
	d.charge.EXPECT().ApproveCharge(gomock.Any(), memberID, "tok").Return(nil, apperror.ErrPendingChargeNotFound())

	c, w := newContext(http.MethodGet, "/api/v1/points/charge/success?member_id="+memberID.String()+"&pg_token=tok", nil)
	d.h.Success(c)

	assert.Equal(t, http.StatusGone, w.Code)
	assert.Equal(t, "CHG_001", decodeErrorCode(t, w))
}

func TestChargeSuccess_LedgerFailureVoidsApproval(t *testing.T) {
	d := setupChargeHandler(t)
	defer d.ctrl.Finish()

	memberID := uuid.New()
	approval := &domain.ApprovalResult{MemberID: memberID, TID: "9999", Amount: 10000}
	d.charge.EXPECT().ApproveCharge(gomock.Any(), memberID, "tok").Return(approval, nil)
	d.ledger.EXPECT().ApplyDelta(gomock.Any(), gomock.Any()).Return(nil, apperror.ErrDatabaseError(errors.New("conn reset")))
	d.charge.EXPECT().VoidApproval(gomock.Any(), approval).Return(nil)

	c, w := newContext(http.MethodGet, "/api/v1/points/charge/success?member_id="+memberID.String()+"&pg_token=tok", nil)
	d.h.Success(c)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "SYS_001", decodeErrorCode(t, w))
}

func TestChargeSuccess_AlreadyCredited(t *testing.T) {
	d := setupChargeHandler(t)
	defer d.ctrl.Finish()

	memberID := uuid.New()
	existing := &domain.Transaction{ID: uuid.New(), MemberID: memberID, Amount: 10000, BalanceAfter: 10000, Kind: domain.TransactionKindCharge, CreatedAt: testNow}
	d.charge.EXPECT().ApproveCharge(gomock.Any(), memberID, "tok").Return(&domain.ApprovalResult{TID: "9999", Amount: 10000}, nil)
	d.ledger.EXPECT().ApplyDelta(gomock.Any(), gomock.Any()).Return(nil, apperror.ErrDuplicateExternalID())
	d.ledger.EXPECT().FindEntryByExternalID(gomock.Any(), memberID, "9999").Return(existing, nil)

	c, w := newContext(http.MethodGet, "/api/v1/points/charge/success?member_id="+memberID.String()+"&pg_token=tok", nil)
	d.h.Success(c)

	assert.Equal(t, http.StatusOK, w.Code)
	txn := decodeData(t, w)["transaction"].(map[string]any)
	assert.Equal(t, existing.ID.String(), txn["id"])
}

func TestChargeSuccess_InvalidQuery(t *testing.T) {
	d := setupChargeHandler(t)
	defer d.ctrl.Finish()

	c, w := newContext(http.MethodGet, "/api/v1/points/charge/success?member_id=42&pg_token=tok", nil)
	d.h.Success(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestChargeCancelAndFail(t *testing.T) {
	tests := []struct {
		name   string
		action domain.AuditAction
		call   func(h *ChargeHandler, c *gin.Context)
	}{
		{"cancel", domain.AuditActionChargeCancel, (*ChargeHandler).Cancel},
		{"fail", domain.AuditActionChargeFail, (*ChargeHandler).Fail},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := setupChargeHandler(t)
			defer d.ctrl.Finish()

			memberID := uuid.New()
			d.charge.EXPECT().AbandonCharge(gomock.Any(), memberID, "CHG-550e8400-20260301093015", tt.action).
				Return(apperror.ErrPaymentFailed(nil))

			c, w := newContext(http.MethodGet, "/api/v1/points/charge/"+tt.name+
				"?member_id="+memberID.String()+"&order_id=CHG-550e8400-20260301093015", nil)
			tt.call(d.h, c)

			assert.Equal(t, http.StatusPaymentRequired, w.Code)
			assert.Equal(t, "CHG_002", decodeErrorCode(t, w))
		})
	}
}

func TestChargeCancel_MissingOrderID(t *testing.T) {
	d := setupChargeHandler(t)
	defer d.ctrl.Finish()

	c, w := newContext(http.MethodGet, "/api/v1/points/charge/cancel?member_id="+uuid.NewString(), nil)
	d.h.Cancel(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "REQ_001", decodeErrorCode(t, w))
}

func TestRefund_Success(t *testing.T) {
	d := setupChargeHandler(t)
	defer d.ctrl.Finish()

	memberID := uuid.New()
	txID := uuid.New()
	d.charge.EXPECT().RefundCharge(gomock.Any(), memberID, txID).Return(&domain.Transaction{
		ID: uuid.New(), MemberID: memberID, Amount: -10000, BalanceAfter: 0, Kind: domain.TransactionKindRefund, CreatedAt: testNow,
	}, nil)

	c, w := newContext(http.MethodPost, "/api/v1/points/refund", dto.RefundRequest{TransactionID: txID.String()})
	c.Set(middleware.CtxMemberID, memberID)
	d.h.Refund(c)

	assert.Equal(t, http.StatusOK, w.Code)
	data := decodeData(t, w)
	assert.Equal(t, "REFUND", data["kind"])
	assert.Equal(t, float64(-10000), data["amount"])
}

func TestRefund_InProgress(t *testing.T) {
	d := setupChargeHandler(t)
	defer d.ctrl.Finish()

	memberID := uuid.New()
	txID := uuid.New()
	d.charge.EXPECT().RefundCharge(gomock.Any(), memberID, txID).Return(nil, apperror.ErrRefundInProgress())

	c, w := newContext(http.MethodPost, "/api/v1/points/refund", dto.RefundRequest{TransactionID: txID.String()})
	c.Set(middleware.CtxMemberID, memberID)
	d.h.Refund(c)

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "CHG_003", decodeErrorCode(t, w))
}

func TestRefund_InvalidTransactionID(t *testing.T) {
	d := setupChargeHandler(t)
	defer d.ctrl.Finish()

	c, w := newContext(http.MethodPost, "/api/v1/points/refund", map[string]string{"transaction_id": "abc"})
	c.Set(middleware.CtxMemberID, uuid.New())
	d.h.Refund(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

// --- Health Check Tests ---

type stubChecker struct {
	name string
	err  error
}

func (s stubChecker) Ping(context.Context) error { return s.err }
func (s stubChecker) Name() string               { return s.name }

func TestHealthCheck(t *testing.T) {
	c, w := newContext(http.MethodGet, "/health", nil)
	HealthCheck(stubChecker{name: "postgresql"}, stubChecker{name: "redis"})(c)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "healthy", resp["status"])
}

func TestHealthCheck_Degraded(t *testing.T) {
	c, w := newContext(http.MethodGet, "/health", nil)
	HealthCheck(stubChecker{name: "postgresql"}, stubChecker{name: "redis", err: errors.New("connection refused")})(c)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	var resp map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "degraded", resp["status"])
	deps := resp["dependencies"].(map[string]any)
	assert.Equal(t, "unhealthy", deps["redis"].(map[string]any)["status"])
}

// --- Swagger Tests ---

func TestAPIDocs_UI(t *testing.T) {
	c, w := newContext(http.MethodGet, "/swagger", nil)
	NewAPIDocs(nil).UI(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "/swagger/spec")
	assert.Contains(t, w.Body.String(), "point-wallet points API")
}

func TestAPIDocs_Spec(t *testing.T) {
	c, w := newContext(http.MethodGet, "/swagger/spec", nil)
	NewAPIDocs(nil).Spec(c)
	assert.Equal(t, http.StatusNotFound, w.Code)

	c, w = newContext(http.MethodGet, "/swagger/spec", nil)
	NewAPIDocs([]byte("openapi: 3.0.3")).Spec(c)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "openapi: 3.0.3", w.Body.String())
}
