package handler

import (
	"math"
	"time"

	"point-wallet/internal/adapter/http/dto"
	"point-wallet/internal/adapter/http/middleware"
	"point-wallet/internal/core/domain"
	"point-wallet/internal/core/ports"
	"point-wallet/pkg/apperror"
	"point-wallet/pkg/response"

	"github.com/gin-gonic/gin"
)

// PointsHandler handles the member's balance and ledger endpoints.
type PointsHandler struct {
	ledgerSvc ports.LedgerService
}

// NewPointsHandler creates a new PointsHandler.
func NewPointsHandler(ledgerSvc ports.LedgerService) *PointsHandler {
	return &PointsHandler{ledgerSvc: ledgerSvc}
}

// OpenAccount handles POST /api/v1/points/account.
func (h *PointsHandler) OpenAccount(c *gin.Context) {
	memberID, ok := middleware.MemberID(c)
	if !ok {
		response.Error(c, apperror.ErrInvalidToken())
		return
	}

	member, err := h.ledgerSvc.OpenAccount(c.Request.Context(), memberID)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.Set(middleware.CtxAuditResourceID, member.ID.String())
	response.Created(c, dto.AccountResponse{
		MemberID:  member.ID.String(),
		Balance:   member.Balance,
		CreatedAt: member.CreatedAt.Format(time.RFC3339),
	})
}

// GetBalance handles GET /api/v1/points/balance.
func (h *PointsHandler) GetBalance(c *gin.Context) {
	memberID, ok := middleware.MemberID(c)
	if !ok {
		response.Error(c, apperror.ErrInvalidToken())
		return
	}

	balance, err := h.ledgerSvc.GetBalance(c.Request.Context(), memberID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, dto.BalanceResponse{
		MemberID: memberID.String(),
		Balance:  balance,
	})
}

// GetHistory handles GET /api/v1/points/history.
func (h *PointsHandler) GetHistory(c *gin.Context) {
	memberID, ok := middleware.MemberID(c)
	if !ok {
		response.Error(c, apperror.ErrInvalidToken())
		return
	}

	var q dto.HistoryQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	// Already checked by the ymd_date validator
	start, _ := time.Parse(dto.DateLayout, q.StartDate)
	end, _ := time.Parse(dto.DateLayout, q.EndDate)

	query := ports.HistoryQuery{
		MemberID:  memberID,
		StartDate: start,
		EndDate:   end,
		Page:      q.Page,
		PageSize:  q.PageSize,
	}
	if q.Kind != "" {
		kind := domain.TransactionKind(q.Kind)
		query.Kind = &kind
	}
	if query.Page < 1 {
		query.Page = 1
	}
	if query.PageSize < 1 {
		query.PageSize = 20
	}

	txns, total, err := h.ledgerSvc.GetHistory(c.Request.Context(), query)
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]dto.TransactionResponse, 0, len(txns))
	for i := range txns {
		items = append(items, dto.NewTransactionResponse(&txns[i]))
	}

	response.OK(c, dto.TransactionListResponse{
		Items:      items,
		Total:      total,
		Page:       query.Page,
		PageSize:   query.PageSize,
		TotalPages: int(math.Ceil(float64(total) / float64(query.PageSize))),
	})
}

// Purchase handles POST /api/v1/points/purchase.
func (h *PointsHandler) Purchase(c *gin.Context) {
	memberID, ok := middleware.MemberID(c)
	if !ok {
		response.Error(c, apperror.ErrInvalidToken())
		return
	}

	var req dto.PurchaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}
	dto.SanitizeStruct(&req)

	txn, err := h.ledgerSvc.Spend(c.Request.Context(), memberID, req.Amount, req.Description)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.Set(middleware.CtxAuditResourceID, txn.ID.String())
	response.Created(c, dto.NewTransactionResponse(txn))
}
