package dto

import (
	"time"

	"point-wallet/internal/core/domain"
)

// DateLayout is the day format accepted by history queries.
const DateLayout = "2006-01-02"

// ChargeReadyRequest is the request body for preparing a wallet charge.
type ChargeReadyRequest struct {
	Amount int64 `json:"amount" binding:"required,gt=0"`
}

// PurchaseRequest is the request body for spending points on an item.
type PurchaseRequest struct {
	Amount      int64  `json:"amount" binding:"required,gt=0"`
	Description string `json:"description" binding:"max=200"`
}

// RefundRequest is the request body for refunding a wallet charge.
type RefundRequest struct {
	TransactionID string `json:"transaction_id" binding:"required,uuid"`
}

// HistoryQuery holds the ledger history query parameters.
type HistoryQuery struct {
	StartDate string `form:"start_date" binding:"required,ymd_date"`
	EndDate   string `form:"end_date" binding:"required,ymd_date"`
	Kind      string `form:"kind" binding:"omitempty,tx_kind"`
	Page      int    `form:"page" binding:"omitempty,min=1"`
	PageSize  int    `form:"page_size" binding:"omitempty,min=1,max=100"`
}

// ChargeSuccessQuery holds the parameters of the gateway's approval redirect.
type ChargeSuccessQuery struct {
	MemberID string `form:"member_id" binding:"required,uuid"`
	Amount   int64  `form:"amount" binding:"omitempty,gt=0"`
	PgToken  string `form:"pg_token" binding:"required,safe_id"`
}

// ChargeAbandonQuery holds the parameters of the cancel and fail redirects.
type ChargeAbandonQuery struct {
	MemberID string `form:"member_id" binding:"required,uuid"`
	OrderID  string `form:"order_id" binding:"required,max=64,safe_id"`
}

// AccountResponse is the response body for an opened account.
type AccountResponse struct {
	MemberID  string `json:"member_id"`
	Balance   int64  `json:"balance"`
	CreatedAt string `json:"created_at"`
}

// BalanceResponse is the response for balance query.
type BalanceResponse struct {
	MemberID string `json:"member_id"`
	Balance  int64  `json:"balance"`
}

// TransactionResponse is a single ledger entry.
type TransactionResponse struct {
	ID            string  `json:"id"`
	Amount        int64   `json:"amount"`
	BalanceBefore int64   `json:"balance_before"`
	BalanceAfter  int64   `json:"balance_after"`
	Kind          string  `json:"kind"`
	ExternalID    *string `json:"external_id,omitempty"`
	Description   *string `json:"description,omitempty"`
	CreatedAt     string  `json:"created_at"`
}

// TransactionListResponse wraps a paginated ledger history.
type TransactionListResponse struct {
	Items      []TransactionResponse `json:"items"`
	Total      int64                 `json:"total"`
	Page       int                   `json:"page"`
	PageSize   int                   `json:"page_size"`
	TotalPages int                   `json:"total_pages"`
}

// ChargeReadyResponse tells the client where to send the member.
type ChargeReadyResponse struct {
	TID               string `json:"tid"`
	RedirectURL       string `json:"redirect_url"`
	MobileRedirectURL string `json:"mobile_redirect_url,omitempty"`
	ExpiresAt         string `json:"expires_at"`
}

// ChargeApprovedResponse is returned once a charge is approved and credited.
type ChargeApprovedResponse struct {
	TID         string              `json:"tid"`
	AID         string              `json:"aid,omitempty"`
	Amount      int64               `json:"amount"`
	Transaction TransactionResponse `json:"transaction"`
}

// NewTransactionResponse converts a ledger entry to its response body.
func NewTransactionResponse(tx *domain.Transaction) TransactionResponse {
	return TransactionResponse{
		ID:            tx.ID.String(),
		Amount:        tx.Amount,
		BalanceBefore: tx.BalanceBefore(),
		BalanceAfter:  tx.BalanceAfter,
		Kind:          string(tx.Kind),
		ExternalID:    tx.ExternalID,
		Description:   tx.Description,
		CreatedAt:     tx.CreatedAt.Format(time.RFC3339),
	}
}

// NewChargeReadyResponse converts a redirect target to its response body.
func NewChargeReadyResponse(t *domain.RedirectTarget) ChargeReadyResponse {
	return ChargeReadyResponse{
		TID:               t.TID,
		RedirectURL:       t.RedirectURL,
		MobileRedirectURL: t.MobileRedirectURL,
		ExpiresAt:         t.ExpiresAt.Format(time.RFC3339),
	}
}
