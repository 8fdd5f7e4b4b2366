package ports

//go:generate mockgen -source=gateway.go -destination=mocks/mock_gateway.go -package=mocks

import (
	"context"
	"time"
)

// PaymentGateway drives the external ready -> approve / cancel protocol.
// Implementations return *apperror.AppError values: GW_001 for transport
// failures and 5xx, GW_002 for malformed responses, CHG_002 for declines.
type PaymentGateway interface {
	Ready(ctx context.Context, req GatewayReadyRequest) (*GatewayReadyResponse, error)
	Approve(ctx context.Context, req GatewayApproveRequest) (*GatewayApproveResponse, error)
	Cancel(ctx context.Context, req GatewayCancelRequest) (*GatewayCancelResponse, error)
}

// GatewayReadyRequest prepares a single payment.
type GatewayReadyRequest struct {
	PartnerOrderID string
	PartnerUserID  string
	ItemName       string
	Quantity       int
	TotalAmount    int64
	TaxFreeAmount  int64
	ApprovalURL    string
	CancelURL      string
	FailURL        string
}

// GatewayReadyResponse carries the tid and where to send the member.
type GatewayReadyResponse struct {
	TID                   string
	NextRedirectPCURL     string
	NextRedirectMobileURL string
	CreatedAt             time.Time
}

// GatewayApproveRequest approves a prepared payment with the member's pg_token.
type GatewayApproveRequest struct {
	TID            string
	PartnerOrderID string
	PartnerUserID  string
	PgToken        string
}

// GatewayApproveResponse is the approval confirmation.
type GatewayApproveResponse struct {
	AID         string
	TID         string
	TotalAmount int64
	ApprovedAt  time.Time
}

// GatewayCancelRequest cancels (refunds) an approved payment.
type GatewayCancelRequest struct {
	TID                 string
	CancelAmount        int64
	CancelTaxFreeAmount int64
}

// GatewayCancelResponse confirms the cancellation.
type GatewayCancelResponse struct {
	TID          string
	Status       string
	CancelAmount int64
	CanceledAt   time.Time
}
