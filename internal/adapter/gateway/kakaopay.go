package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"point-wallet/config"
	"point-wallet/internal/core/ports"
	"point-wallet/internal/metrics"
	"point-wallet/pkg/apperror"

	"github.com/rs/zerolog"
)

const (
	readyPath   = "/online/v1/payment/ready"
	approvePath = "/online/v1/payment/approve"
	cancelPath  = "/online/v1/payment/cancel"

	maxResponseBytes = 1 << 20
)

// Gateway timestamps carry no zone and are in KST.
var gatewayZone = time.FixedZone("KST", 9*60*60)

// HTTPClient interface for testability.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// KakaoPayClient implements ports.PaymentGateway against the KakaoPay
// single-payment online API. Calls are never retried.
type KakaoPayClient struct {
	httpClient HTTPClient
	baseURL    string
	secretKey  string
	cid        string
	metrics    *metrics.Metrics
	log        zerolog.Logger
}

// NewKakaoPayClient creates a gateway client. httpClient should carry the
// configured request timeout (see NewHTTPClient).
func NewKakaoPayClient(cfg config.GatewayConfig, httpClient HTTPClient, m *metrics.Metrics, log zerolog.Logger) *KakaoPayClient {
	return &KakaoPayClient{
		httpClient: httpClient,
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		secretKey:  cfg.SecretKey,
		cid:        cfg.CID,
		metrics:    m,
		log:        log,
	}
}

// NewHTTPClient returns an http.Client bounded by timeout.
func NewHTTPClient(timeout time.Duration) *http.Client {
	return &http.Client{Timeout: timeout}
}

// --- wire format ---

type readyRequest struct {
	CID            string `json:"cid"`
	PartnerOrderID string `json:"partner_order_id"`
	PartnerUserID  string `json:"partner_user_id"`
	ItemName       string `json:"item_name"`
	Quantity       int    `json:"quantity"`
	TotalAmount    int64  `json:"total_amount"`
	TaxFreeAmount  int64  `json:"tax_free_amount"`
	ApprovalURL    string `json:"approval_url"`
	CancelURL      string `json:"cancel_url"`
	FailURL        string `json:"fail_url"`
}

type readyResponse struct {
	TID                   string `json:"tid"`
	NextRedirectPCURL     string `json:"next_redirect_pc_url"`
	NextRedirectMobileURL string `json:"next_redirect_mobile_url"`
	CreatedAt             string `json:"created_at"`
}

type approveRequest struct {
	CID            string `json:"cid"`
	TID            string `json:"tid"`
	PartnerOrderID string `json:"partner_order_id"`
	PartnerUserID  string `json:"partner_user_id"`
	PgToken        string `json:"pg_token"`
}

type amount struct {
	Total   int64 `json:"total"`
	TaxFree int64 `json:"tax_free"`
}

type approveResponse struct {
	AID        string `json:"aid"`
	TID        string `json:"tid"`
	Amount     amount `json:"amount"`
	ApprovedAt string `json:"approved_at"`
}

type cancelRequest struct {
	CID                 string `json:"cid"`
	TID                 string `json:"tid"`
	CancelAmount        int64  `json:"cancel_amount"`
	CancelTaxFreeAmount int64  `json:"cancel_tax_free_amount"`
}

type cancelResponse struct {
	TID            string `json:"tid"`
	Status         string `json:"status"`
	CanceledAmount amount `json:"canceled_amount"`
	CanceledAt     string `json:"canceled_at"`
}

type errorResponse struct {
	ErrorCode    string `json:"error_code"`
	ErrorMessage string `json:"error_message"`
}

// Ready prepares a payment and returns the tid and redirect URLs.
func (c *KakaoPayClient) Ready(ctx context.Context, req ports.GatewayReadyRequest) (*ports.GatewayReadyResponse, error) {
	body := readyRequest{
		CID:            c.cid,
		PartnerOrderID: req.PartnerOrderID,
		PartnerUserID:  req.PartnerUserID,
		ItemName:       req.ItemName,
		Quantity:       req.Quantity,
		TotalAmount:    req.TotalAmount,
		TaxFreeAmount:  req.TaxFreeAmount,
		ApprovalURL:    req.ApprovalURL,
		CancelURL:      req.CancelURL,
		FailURL:        req.FailURL,
	}

	var resp readyResponse
	err := c.call(ctx, "ready", readyPath, body, &resp, func() error {
		if resp.TID == "" {
			return errors.New("ready response without tid")
		}
		if resp.NextRedirectPCURL == "" && resp.NextRedirectMobileURL == "" {
			return errors.New("ready response without redirect url")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &ports.GatewayReadyResponse{
		TID:                   resp.TID,
		NextRedirectPCURL:     resp.NextRedirectPCURL,
		NextRedirectMobileURL: resp.NextRedirectMobileURL,
		CreatedAt:             parseGatewayTime(resp.CreatedAt),
	}, nil
}

// Approve confirms a prepared payment with the member's pg_token.
func (c *KakaoPayClient) Approve(ctx context.Context, req ports.GatewayApproveRequest) (*ports.GatewayApproveResponse, error) {
	body := approveRequest{
		CID:            c.cid,
		TID:            req.TID,
		PartnerOrderID: req.PartnerOrderID,
		PartnerUserID:  req.PartnerUserID,
		PgToken:        req.PgToken,
	}

	var resp approveResponse
	err := c.call(ctx, "approve", approvePath, body, &resp, func() error {
		if resp.TID == "" {
			return errors.New("approve response without tid")
		}
		if resp.Amount.Total <= 0 {
			return fmt.Errorf("approve response with amount %d", resp.Amount.Total)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	approvedAt := parseGatewayTime(resp.ApprovedAt)
	if approvedAt.IsZero() {
		approvedAt = time.Now().UTC()
	}

	return &ports.GatewayApproveResponse{
		AID:         resp.AID,
		TID:         resp.TID,
		TotalAmount: resp.Amount.Total,
		ApprovedAt:  approvedAt,
	}, nil
}

// Cancel cancels an approved payment in full or in part.
func (c *KakaoPayClient) Cancel(ctx context.Context, req ports.GatewayCancelRequest) (*ports.GatewayCancelResponse, error) {
	body := cancelRequest{
		CID:                 c.cid,
		TID:                 req.TID,
		CancelAmount:        req.CancelAmount,
		CancelTaxFreeAmount: req.CancelTaxFreeAmount,
	}

	var resp cancelResponse
	err := c.call(ctx, "cancel", cancelPath, body, &resp, func() error {
		if resp.TID == "" {
			return errors.New("cancel response without tid")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &ports.GatewayCancelResponse{
		TID:          resp.TID,
		Status:       resp.Status,
		CancelAmount: resp.CanceledAmount.Total,
		CanceledAt:   parseGatewayTime(resp.CanceledAt),
	}, nil
}

// call posts in as JSON to path, decodes a 2xx body into out and runs validate.
// Transport errors, timeouts and 5xx map to GW_001, 4xx to CHG_002, and
// undecodable or invalid 2xx bodies to GW_002.
func (c *KakaoPayClient) call(ctx context.Context, op, path string, in, out any, validate func() error) error {
	start := time.Now()
	outcome := metrics.OutcomeSuccess
	defer func() {
		c.metrics.ObserveGateway(op, outcome, time.Since(start))
	}()

	payload, err := json.Marshal(in)
	if err != nil {
		outcome = metrics.OutcomeError
		return apperror.InternalError(fmt.Errorf("marshal %s request: %w", op, err))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		outcome = metrics.OutcomeError
		return apperror.InternalError(fmt.Errorf("build %s request: %w", op, err))
	}
	req.Header.Set("Authorization", "SECRET_KEY "+c.secretKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		outcome = metrics.OutcomeUnavailable
		c.log.Warn().Err(err).Str("operation", op).Msg("gateway: request failed")
		return apperror.ErrGatewayUnavailable(fmt.Errorf("%s: %w", op, err))
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		outcome = metrics.OutcomeUnavailable
		c.log.Warn().Err(err).Str("operation", op).Int("status", resp.StatusCode).Msg("gateway: reading response failed")
		return apperror.ErrGatewayUnavailable(fmt.Errorf("%s: read body: %w", op, err))
	}

	switch {
	case resp.StatusCode >= http.StatusInternalServerError:
		outcome = metrics.OutcomeUnavailable
		c.log.Warn().Str("operation", op).Int("status", resp.StatusCode).Msg("gateway: server error")
		return apperror.ErrGatewayUnavailable(fmt.Errorf("%s: status %d", op, resp.StatusCode))

	case resp.StatusCode >= http.StatusBadRequest:
		outcome = metrics.OutcomeDeclined
		var gwErr errorResponse
		_ = json.Unmarshal(raw, &gwErr)
		c.log.Warn().
			Str("operation", op).
			Int("status", resp.StatusCode).
			Str("gateway_code", gwErr.ErrorCode).
			Str("gateway_message", gwErr.ErrorMessage).
			Msg("gateway: request declined")
		return apperror.ErrPaymentFailed(fmt.Errorf("%s: status %d: %s %s", op, resp.StatusCode, gwErr.ErrorCode, gwErr.ErrorMessage))

	case resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices:
		outcome = metrics.OutcomeProtocol
		c.log.Error().Str("operation", op).Int("status", resp.StatusCode).Msg("gateway: unexpected status")
		return apperror.ErrGatewayProtocol(fmt.Errorf("%s: unexpected status %d", op, resp.StatusCode))
	}

	if err := json.Unmarshal(raw, out); err != nil {
		outcome = metrics.OutcomeProtocol
		c.log.Error().Err(err).Str("operation", op).Msg("gateway: malformed response")
		return apperror.ErrGatewayProtocol(fmt.Errorf("%s: decode response: %w", op, err))
	}
	if err := validate(); err != nil {
		outcome = metrics.OutcomeProtocol
		c.log.Error().Err(err).Str("operation", op).Msg("gateway: invalid response")
		return apperror.ErrGatewayProtocol(fmt.Errorf("%s: %w", op, err))
	}
	return nil
}

// parseGatewayTime accepts RFC 3339 or the gateway's zone-less format.
// Returns the zero time if s is empty or unparseable.
func parseGatewayTime(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.UTC()
	}
	if t, err := time.ParseInLocation("2006-01-02T15:04:05", s, gatewayZone); err == nil {
		return t.UTC()
	}
	return time.Time{}
}
