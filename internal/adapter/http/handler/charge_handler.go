package handler

import (
	"context"
	"errors"

	"point-wallet/internal/adapter/http/dto"
	"point-wallet/internal/adapter/http/middleware"
	"point-wallet/internal/core/domain"
	"point-wallet/internal/core/ports"
	"point-wallet/pkg/apperror"
	"point-wallet/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const chargeDescription = "포인트 충전"

// ChargeHandler handles the wallet charge protocol: prepare, the gateway's
// redirects, and refunds.
type ChargeHandler struct {
	chargeSvc ports.ChargeService
	ledgerSvc ports.LedgerService
	log       zerolog.Logger
}

// NewChargeHandler creates a new ChargeHandler.
func NewChargeHandler(chargeSvc ports.ChargeService, ledgerSvc ports.LedgerService, log zerolog.Logger) *ChargeHandler {
	return &ChargeHandler{chargeSvc: chargeSvc, ledgerSvc: ledgerSvc, log: log}
}

// Ready handles POST /api/v1/points/charge/ready.
func (h *ChargeHandler) Ready(c *gin.Context) {
	memberID, ok := middleware.MemberID(c)
	if !ok {
		response.Error(c, apperror.ErrInvalidToken())
		return
	}

	var req dto.ChargeReadyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	target, err := h.chargeSvc.PrepareCharge(c.Request.Context(), memberID, req.Amount)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.Set(middleware.CtxAuditResourceID, target.TID)
	response.OK(c, dto.NewChargeReadyResponse(target))
}

// Success handles GET /api/v1/points/charge/success, the gateway's approval
// redirect. The approved amount is credited to the ledger; if that fails the
// approval is voided at the gateway.
func (h *ChargeHandler) Success(c *gin.Context) {
	var q dto.ChargeSuccessQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}
	memberID := uuid.MustParse(q.MemberID)
	ctx := c.Request.Context()

	approval, err := h.chargeSvc.ApproveCharge(ctx, memberID, q.PgToken)
	if err != nil {
		response.Error(c, err)
		return
	}
	if q.Amount != 0 && q.Amount != approval.Amount {
		h.log.Warn().
			Str("tid", approval.TID).
			Int64("redirect_amount", q.Amount).
			Int64("approved_amount", approval.Amount).
			Msg("redirect amount differs from approved amount")
	}

	description := chargeDescription
	txn, err := h.ledgerSvc.ApplyDelta(ctx, ports.DeltaRequest{
		MemberID:    memberID,
		Amount:      approval.Amount,
		Kind:        domain.TransactionKindCharge,
		ExternalID:  &approval.TID,
		Description: &description,
	})
	if errors.Is(err, apperror.ErrDuplicateExternalID()) {
		txn, err = h.ledgerSvc.FindEntryByExternalID(ctx, memberID, approval.TID)
	} else if err != nil {
		h.log.Error().Err(err).
			Str("member_id", memberID.String()).
			Str("tid", approval.TID).
			Int64("amount", approval.Amount).
			Msg("ledger credit failed after approval, voiding payment")
		if voidErr := h.chargeSvc.VoidApproval(context.WithoutCancel(ctx), approval); voidErr != nil {
			h.log.Error().Err(voidErr).Str("tid", approval.TID).Msg("void failed")
		}
	}
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, dto.ChargeApprovedResponse{
		TID:         approval.TID,
		AID:         approval.AID,
		Amount:      approval.Amount,
		Transaction: dto.NewTransactionResponse(txn),
	})
}

// Cancel handles GET /api/v1/points/charge/cancel.
func (h *ChargeHandler) Cancel(c *gin.Context) {
	h.abandon(c, domain.AuditActionChargeCancel)
}

// Fail handles GET /api/v1/points/charge/fail.
func (h *ChargeHandler) Fail(c *gin.Context) {
	h.abandon(c, domain.AuditActionChargeFail)
}

func (h *ChargeHandler) abandon(c *gin.Context, action domain.AuditAction) {
	var q dto.ChargeAbandonQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	err := h.chargeSvc.AbandonCharge(c.Request.Context(), uuid.MustParse(q.MemberID), q.OrderID, action)
	if err == nil {
		err = apperror.ErrPaymentFailed(nil)
	}
	response.Error(c, err)
}

// Refund handles POST /api/v1/points/refund.
func (h *ChargeHandler) Refund(c *gin.Context) {
	memberID, ok := middleware.MemberID(c)
	if !ok {
		response.Error(c, apperror.ErrInvalidToken())
		return
	}

	var req dto.RefundRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	refund, err := h.chargeSvc.RefundCharge(c.Request.Context(), memberID, uuid.MustParse(req.TransactionID))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, dto.NewTransactionResponse(refund))
}
