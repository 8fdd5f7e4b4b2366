package ports

//go:generate mockgen -source=services.go -destination=mocks/mock_services.go -package=mocks

import (
	"context"
	"time"

	"point-wallet/internal/core/domain"

	"github.com/google/uuid"
)

// PendingChargeStore is the shared TTL cache of in-flight charges.
type PendingChargeStore interface {
	Set(ctx context.Context, charge *domain.PendingCharge, ttl time.Duration) error
	// GetAndDelete atomically reads and removes the member's pending charge.
	// Returns nil, nil if there is none (never set or expired).
	GetAndDelete(ctx context.Context, memberID uuid.UUID) (*domain.PendingCharge, error)
	// DeleteIfOrder removes the member's pending charge only if it belongs to
	// orderID, and returns it. Returns nil, nil if there is none or it does
	// not match.
	DeleteIfOrder(ctx context.Context, memberID uuid.UUID, orderID string) (*domain.PendingCharge, error)
}

// RefundLock serializes refunds of the same gateway payment across instances.
type RefundLock interface {
	// Acquire returns a release token and true if the lock was taken.
	Acquire(ctx context.Context, key string, ttl time.Duration) (string, bool, error)
	// Release frees the lock only if it is still held with token.
	Release(ctx context.Context, key string, token string) error
}

// TokenService handles JWT token operations.
type TokenService interface {
	Generate(memberID uuid.UUID) (string, time.Time, error)
	Validate(tokenString string) (*TokenClaims, error)
}

// TokenClaims holds the parsed JWT claims.
type TokenClaims struct {
	MemberID uuid.UUID
}

// --- Service Ports (Business Logic) ---

// LedgerService owns member balances and the append-only ledger.
type LedgerService interface {
	OpenAccount(ctx context.Context, memberID uuid.UUID) (*domain.Member, error)
	GetBalance(ctx context.Context, memberID uuid.UUID) (int64, error)
	ApplyDelta(ctx context.Context, req DeltaRequest) (*domain.Transaction, error)
	Spend(ctx context.Context, memberID uuid.UUID, amount int64, description string) (*domain.Transaction, error)
	GetHistory(ctx context.Context, q HistoryQuery) ([]domain.Transaction, int64, error)
	FindEntry(ctx context.Context, memberID, txID uuid.UUID) (*domain.Transaction, error)
	FindEntryByExternalID(ctx context.Context, memberID uuid.UUID, externalID string) (*domain.Transaction, error)
	// FindRefund returns the refund entry linked to externalID, or nil.
	FindRefund(ctx context.Context, externalID string) (*domain.Transaction, error)
}

// DeltaRequest is a single signed balance change.
type DeltaRequest struct {
	MemberID    uuid.UUID
	Amount      int64
	Kind        domain.TransactionKind
	ExternalID  *string
	Description *string
}

// HistoryQuery selects a page of a member's ledger. StartDate and EndDate
// are calendar days, both inclusive.
type HistoryQuery struct {
	MemberID  uuid.UUID
	StartDate time.Time
	EndDate   time.Time
	Kind      *domain.TransactionKind
	Page      int
	PageSize  int
}

// ChargeService drives the gateway charge protocol and refunds.
type ChargeService interface {
	PrepareCharge(ctx context.Context, memberID uuid.UUID, amount int64) (*domain.RedirectTarget, error)
	ApproveCharge(ctx context.Context, memberID uuid.UUID, pgToken string) (*domain.ApprovalResult, error)
	AbandonCharge(ctx context.Context, memberID uuid.UUID, orderID string, action domain.AuditAction) error
	VoidApproval(ctx context.Context, approval *domain.ApprovalResult) error
	RefundCharge(ctx context.Context, memberID, txID uuid.UUID) (*domain.Transaction, error)
}

// AuditService records audit entries without blocking the caller.
type AuditService interface {
	Log(ctx context.Context, entry *domain.AuditLog)
}
