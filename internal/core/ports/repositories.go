package ports

//go:generate mockgen -source=repositories.go -destination=mocks/mock_repositories.go -package=mocks

import (
	"context"
	"errors"
	"time"

	"point-wallet/internal/core/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// MemberRepository persists member balance rows.
// Methods accepting pgx.Tx are used inside transaction blocks for pessimistic locking.
type MemberRepository interface {
	// Create inserts a zero-balance row; an existing row is left untouched.
	Create(ctx context.Context, member *domain.Member) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Member, error)
	GetByIDForUpdate(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*domain.Member, error)
	UpdateBalance(ctx context.Context, tx pgx.Tx, id uuid.UUID, balance int64) error
}

// ErrDuplicateExternalID is returned by TransactionRepository.Create when an
// entry of the same kind already carries the external id.
var ErrDuplicateExternalID = errors.New("duplicate external id for transaction kind")

// TransactionRepository is the append-only ledger store. There is no update
// or delete.
type TransactionRepository interface {
	Create(ctx context.Context, tx pgx.Tx, transaction *domain.Transaction) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Transaction, error)
	GetByExternalID(ctx context.Context, externalID string, kind domain.TransactionKind) (*domain.Transaction, error)
	List(ctx context.Context, params TransactionListParams) ([]domain.Transaction, int64, error)
}

// TransactionListParams holds filter + pagination for listing a member's ledger.
type TransactionListParams struct {
	MemberID uuid.UUID
	From     time.Time // inclusive
	To       time.Time // exclusive
	Kind     *domain.TransactionKind
	Page     int
	PageSize int
}

// Offset returns the row offset of the requested page.
func (p TransactionListParams) Offset() int {
	if p.Page < 1 {
		return 0
	}
	return (p.Page - 1) * p.PageSize
}

// AuditRepository persists audit log entries.
type AuditRepository interface {
	Create(ctx context.Context, log *domain.AuditLog) error
}

// DBTransactor provides database transaction management.
type DBTransactor interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}
