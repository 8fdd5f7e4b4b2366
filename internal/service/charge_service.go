package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"point-wallet/internal/core/domain"
	"point-wallet/internal/core/ports"
	"point-wallet/pkg/apperror"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Callback paths the gateway redirects the member to. They are served by the
// HTTP adapter under the same public origin.
const (
	ChargeSuccessPath = "/api/v1/points/charge/success"
	ChargeCancelPath  = "/api/v1/points/charge/cancel"
	ChargeFailPath    = "/api/v1/points/charge/fail"
)

const refundDescription = "결제 취소"

// ChargeOptions configures the charge protocol.
type ChargeOptions struct {
	CallbackBaseURL string
	ItemName        string
	PendingTTL      time.Duration
	RefundLockTTL   time.Duration
	MaxAmount       int64
}

// ChargeServiceImpl implements ports.ChargeService.
type ChargeServiceImpl struct {
	gateway    ports.PaymentGateway
	pending    ports.PendingChargeStore
	refundLock ports.RefundLock
	ledger     ports.LedgerService
	auditSvc   ports.AuditService
	opts       ChargeOptions
	log        zerolog.Logger
	now        func() time.Time
}

// NewChargeService creates a new ChargeServiceImpl.
func NewChargeService(
	gateway ports.PaymentGateway,
	pending ports.PendingChargeStore,
	refundLock ports.RefundLock,
	ledger ports.LedgerService,
	auditSvc ports.AuditService,
	opts ChargeOptions,
	log zerolog.Logger,
) *ChargeServiceImpl {
	opts.CallbackBaseURL = strings.TrimRight(opts.CallbackBaseURL, "/")
	return &ChargeServiceImpl{
		gateway:    gateway,
		pending:    pending,
		refundLock: refundLock,
		ledger:     ledger,
		auditSvc:   auditSvc,
		opts:       opts,
		log:        log,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

// PrepareCharge calls the gateway ready endpoint and caches the pending
// charge for PendingTTL. A new prepare replaces the member's previous one.
func (s *ChargeServiceImpl) PrepareCharge(ctx context.Context, memberID uuid.UUID, amount int64) (*domain.RedirectTarget, error) {
	if amount <= 0 || amount > s.opts.MaxAmount {
		return nil, apperror.ErrInvalidAmount()
	}

	now := s.now()
	orderID := domain.BuildOrderID(memberID, now)

	resp, err := s.gateway.Ready(ctx, ports.GatewayReadyRequest{
		PartnerOrderID: orderID,
		PartnerUserID:  memberID.String(),
		ItemName:       s.opts.ItemName,
		Quantity:       1,
		TotalAmount:    amount,
		TaxFreeAmount:  0,
		ApprovalURL:    s.callbackURL(ChargeSuccessPath, memberID, amount),
		CancelURL:      s.abandonURL(ChargeCancelPath, memberID, orderID),
		FailURL:        s.abandonURL(ChargeFailPath, memberID, orderID),
	})
	if err != nil {
		s.log.Warn().Err(err).Str("member_id", memberID.String()).Int64("amount", amount).Msg("charge ready failed")
		return nil, err
	}

	charge := &domain.PendingCharge{
		MemberID:  memberID,
		TID:       resp.TID,
		OrderID:   orderID,
		Amount:    amount,
		CreatedAt: now,
	}
	if err := s.pending.Set(ctx, charge, s.opts.PendingTTL); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("cache pending charge: %w", err))
	}

	s.log.Info().
		Str("member_id", memberID.String()).
		Str("tid", resp.TID).
		Str("order_id", orderID).
		Int64("amount", amount).
		Str("status", string(domain.ChargeStatusPending)).
		Msg("charge prepared")

	redirect := resp.NextRedirectPCURL
	if redirect == "" {
		redirect = resp.NextRedirectMobileURL
	}
	return &domain.RedirectTarget{
		TID:               resp.TID,
		RedirectURL:       redirect,
		MobileRedirectURL: resp.NextRedirectMobileURL,
		ExpiresAt:         now.Add(s.opts.PendingTTL),
	}, nil
}

// ApproveCharge claims the member's pending charge and approves it at the
// gateway. The pending entry is consumed before the gateway call and is not
// restored on failure; the member has to prepare a new charge.
// The ledger is not touched.
func (s *ChargeServiceImpl) ApproveCharge(ctx context.Context, memberID uuid.UUID, pgToken string) (*domain.ApprovalResult, error) {
	if pgToken == "" {
		return nil, apperror.Validation("pg_token is required")
	}

	charge, err := s.pending.GetAndDelete(ctx, memberID)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("claim pending charge: %w", err))
	}
	if charge == nil {
		s.recordCharge(ctx, memberID, domain.AuditActionChargeFail, "", map[string]any{
			"status": domain.ChargeStatusFailed,
			"reason": "pending charge not found",
		})
		return nil, apperror.ErrPendingChargeNotFound()
	}

	resp, err := s.gateway.Approve(ctx, ports.GatewayApproveRequest{
		TID:            charge.TID,
		PartnerOrderID: charge.OrderID,
		PartnerUserID:  memberID.String(),
		PgToken:        pgToken,
	})
	if err != nil {
		s.log.Warn().Err(err).Str("member_id", memberID.String()).Str("tid", charge.TID).Msg("charge approve failed")
		s.recordCharge(ctx, memberID, domain.AuditActionChargeFail, charge.TID, map[string]any{
			"status": domain.ChargeStatusFailed,
			"reason": apperror.Code(err),
		})
		return nil, err
	}
	if resp.TID != charge.TID {
		return nil, s.voidMismatchedApproval(ctx, memberID, charge, resp)
	}
	if resp.TotalAmount != charge.Amount {
		s.log.Warn().
			Str("tid", resp.TID).
			Int64("requested", charge.Amount).
			Int64("approved", resp.TotalAmount).
			Msg("gateway approved a different amount")
	}

	result := &domain.ApprovalResult{
		MemberID:   memberID,
		TID:        resp.TID,
		AID:        resp.AID,
		OrderID:    charge.OrderID,
		Amount:     resp.TotalAmount,
		ApprovedAt: resp.ApprovedAt,
	}

	s.log.Info().
		Str("member_id", memberID.String()).
		Str("tid", result.TID).
		Str("aid", result.AID).
		Int64("amount", result.Amount).
		Str("status", string(domain.ChargeStatusApproved)).
		Msg("charge approved")
	s.recordCharge(ctx, memberID, domain.AuditActionChargeApprove, result.TID, map[string]any{
		"status": domain.ChargeStatusApproved,
		"amount": result.Amount,
	})

	return result, nil
}

// voidMismatchedApproval handles an approve answer for a different tid than
// the pending one. The gateway has captured the payment, so it is cancelled
// under the tid the gateway reported.
func (s *ChargeServiceImpl) voidMismatchedApproval(ctx context.Context, memberID uuid.UUID, charge *domain.PendingCharge, resp *ports.GatewayApproveResponse) error {
	protoErr := apperror.ErrGatewayProtocol(fmt.Errorf("approve returned tid %s for pending tid %s", resp.TID, charge.TID))
	s.log.Error().Err(protoErr).
		Str("member_id", memberID.String()).
		Str("tid", charge.TID).
		Str("approved_tid", resp.TID).
		Str("aid", resp.AID).
		Int64("amount", resp.TotalAmount).
		Msg("gateway approved an unexpected tid, voiding payment")

	details := map[string]any{
		"status":       domain.ChargeStatusFailed,
		"reason":       "approved tid mismatch",
		"approved_tid": resp.TID,
		"aid":          resp.AID,
		"amount":       resp.TotalAmount,
		"voided":       true,
	}
	_, err := s.gateway.Cancel(context.WithoutCancel(ctx), ports.GatewayCancelRequest{
		TID:          resp.TID,
		CancelAmount: resp.TotalAmount,
	})
	if err != nil {
		s.log.Error().Err(err).
			Str("member_id", memberID.String()).
			Str("approved_tid", resp.TID).
			Str("aid", resp.AID).
			Int64("amount", resp.TotalAmount).
			Msg("void of mismatched approval failed, manual reconciliation required")
		details["voided"] = false
		details["reconcile"] = true
	}
	s.recordCharge(ctx, memberID, domain.AuditActionChargeFail, charge.TID, details)

	return protoErr
}

// AbandonCharge handles the gateway's cancel and fail redirects. It drops the
// pending charge if the redirect carries its order id, and always returns
// PaymentFailed.
func (s *ChargeServiceImpl) AbandonCharge(ctx context.Context, memberID uuid.UUID, orderID string, action domain.AuditAction) error {
	if action != domain.AuditActionChargeCancel && action != domain.AuditActionChargeFail {
		return apperror.InternalError(fmt.Errorf("abandon charge with action %s", action))
	}

	tid := ""
	charge, err := s.pending.DeleteIfOrder(ctx, memberID, orderID)
	switch {
	case err != nil:
		s.log.Warn().Err(err).Str("member_id", memberID.String()).Msg("failed to drop pending charge")
	case charge == nil:
		s.log.Warn().
			Str("member_id", memberID.String()).
			Str("order_id", orderID).
			Msg("abandon redirect matches no pending charge, keeping it")
	default:
		tid = charge.TID
	}

	s.log.Info().
		Str("member_id", memberID.String()).
		Str("tid", tid).
		Str("action", string(action)).
		Str("status", string(domain.ChargeStatusFailed)).
		Msg("charge abandoned")
	s.recordCharge(ctx, memberID, action, tid, map[string]any{
		"status":   domain.ChargeStatusFailed,
		"order_id": orderID,
	})

	return apperror.ErrPaymentFailed(fmt.Errorf("charge %s", strings.ToLower(strings.TrimPrefix(string(action), "CHARGE_"))))
}

// VoidApproval cancels an approved payment whose ledger credit could not be
// recorded.
func (s *ChargeServiceImpl) VoidApproval(ctx context.Context, approval *domain.ApprovalResult) error {
	_, err := s.gateway.Cancel(ctx, ports.GatewayCancelRequest{
		TID:          approval.TID,
		CancelAmount: approval.Amount,
	})
	if err != nil {
		s.log.Error().Err(err).
			Str("member_id", approval.MemberID.String()).
			Str("tid", approval.TID).
			Str("aid", approval.AID).
			Int64("amount", approval.Amount).
			Msg("void of approved charge failed, manual reconciliation required")
		return err
	}

	s.log.Warn().
		Str("member_id", approval.MemberID.String()).
		Str("tid", approval.TID).
		Int64("amount", approval.Amount).
		Msg("approved charge voided")
	s.recordCharge(ctx, approval.MemberID, domain.AuditActionChargeCancel, approval.TID, map[string]any{
		"status": domain.ChargeStatusFailed,
		"reason": "ledger credit failed",
		"amount": approval.Amount,
	})
	return nil
}

// RefundCharge cancels a gateway charge and records the offsetting debit.
// Refunding an already refunded charge returns the existing refund entry.
func (s *ChargeServiceImpl) RefundCharge(ctx context.Context, memberID, txID uuid.UUID) (*domain.Transaction, error) {
	entry, err := s.ledger.FindEntry(ctx, memberID, txID)
	if err != nil {
		return nil, err
	}
	if !entry.IsRefundable() {
		return nil, apperror.ErrTransactionNotFound()
	}
	tid := *entry.ExternalID

	if existing, err := s.ledger.FindRefund(ctx, tid); err != nil || existing != nil {
		return existing, err
	}

	token, ok, err := s.refundLock.Acquire(ctx, tid, s.opts.RefundLockTTL)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("acquire refund lock: %w", err))
	}
	if !ok {
		return nil, apperror.ErrRefundInProgress()
	}
	defer func() {
		if err := s.refundLock.Release(context.WithoutCancel(ctx), tid, token); err != nil {
			s.log.Warn().Err(err).Str("tid", tid).Msg("failed to release refund lock")
		}
	}()

	// A concurrent refund may have finished between the check and the lock
	if existing, err := s.ledger.FindRefund(ctx, tid); err != nil || existing != nil {
		return existing, err
	}

	// Never cancel at the gateway for points the member already spent
	balance, err := s.ledger.GetBalance(ctx, memberID)
	if err != nil {
		return nil, err
	}
	if balance < entry.Amount {
		return nil, apperror.ErrInsufficientBalance()
	}

	if _, err := s.gateway.Cancel(ctx, ports.GatewayCancelRequest{
		TID:          tid,
		CancelAmount: entry.Amount,
	}); err != nil {
		s.log.Warn().Err(err).Str("member_id", memberID.String()).Str("tid", tid).Msg("gateway cancel failed")
		return nil, err
	}

	description := refundDescription
	refund, err := s.ledger.ApplyDelta(ctx, ports.DeltaRequest{
		MemberID:    memberID,
		Amount:      -entry.Amount,
		Kind:        domain.TransactionKindRefund,
		ExternalID:  &tid,
		Description: &description,
	})
	if err != nil {
		if errors.Is(err, apperror.ErrDuplicateExternalID()) {
			return s.ledger.FindRefund(ctx, tid)
		}
		s.log.Error().Err(err).
			Str("member_id", memberID.String()).
			Str("tx_id", entry.ID.String()).
			Str("tid", tid).
			Int64("amount", entry.Amount).
			Msg("gateway cancel succeeded but ledger refund failed, manual reconciliation required")
		return nil, err
	}

	s.recordCharge(ctx, memberID, domain.AuditActionRefund, tid, map[string]any{
		"original_tx_id": entry.ID.String(),
		"refund_tx_id":   refund.ID.String(),
		"amount":         entry.Amount,
	})
	return refund, nil
}

func (s *ChargeServiceImpl) callbackURL(path string, memberID uuid.UUID, amount int64) string {
	q := url.Values{}
	q.Set("member_id", memberID.String())
	if amount > 0 {
		q.Set("amount", strconv.FormatInt(amount, 10))
	}
	return s.opts.CallbackBaseURL + path + "?" + q.Encode()
}

// abandonURL carries the order id so a cancel or fail redirect only drops the
// pending charge it was issued for.
func (s *ChargeServiceImpl) abandonURL(path string, memberID uuid.UUID, orderID string) string {
	q := url.Values{}
	q.Set("member_id", memberID.String())
	q.Set("order_id", orderID)
	return s.opts.CallbackBaseURL + path + "?" + q.Encode()
}

func (s *ChargeServiceImpl) recordCharge(ctx context.Context, memberID uuid.UUID, action domain.AuditAction, tid string, details map[string]any) {
	if s.auditSvc == nil {
		return
	}
	raw, err := json.Marshal(details)
	if err != nil {
		s.log.Warn().Err(err).Str("action", string(action)).Str("tid", tid).Msg("failed to encode audit details")
		raw = []byte("{}")
	}
	s.auditSvc.Log(ctx, &domain.AuditLog{
		ID:           uuid.New(),
		MemberID:     &memberID,
		Action:       action,
		ResourceType: "charge",
		ResourceID:   tid,
		Details:      string(raw),
		CreatedAt:    s.now(),
	})
}
