package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"point-wallet/internal/core/domain"
	"point-wallet/internal/core/ports"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const uniqueViolation = "23505"

// Partial unique indexes guarding one CHARGE and one REFUND per gateway tid.
const (
	chargeExternalIDIndex = "uq_point_transactions_charge_external_id"
	refundExternalIDIndex = "uq_point_transactions_refund_external_id"
)

const transactionColumns = `id, member_id, amount, balance_after, kind, external_id, description, created_at`

// TransactionRepo implements ports.TransactionRepository over the point_transactions table.
type TransactionRepo struct {
	pool Pool
}

// NewTransactionRepo creates a new TransactionRepo.
func NewTransactionRepo(pool Pool) *TransactionRepo {
	return &TransactionRepo{pool: pool}
}

// Create appends a ledger entry within a database transaction.
func (r *TransactionRepo) Create(ctx context.Context, tx pgx.Tx, t *domain.Transaction) error {
	query := `INSERT INTO point_transactions (` + transactionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := tx.Exec(ctx, query,
		t.ID, t.MemberID, t.Amount, t.BalanceAfter,
		t.Kind, t.ExternalID, t.Description, t.CreatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && isDuplicateExternalID(pgErr) {
			return ports.ErrDuplicateExternalID
		}
		return fmt.Errorf("insert transaction: %w", err)
	}
	return nil
}

// GetByID fetches a ledger entry by UUID.
func (r *TransactionRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM point_transactions WHERE id = $1`

	return r.scanTransaction(r.pool.QueryRow(ctx, query, id))
}

// GetByExternalID fetches the entry of the given kind carrying a gateway tid.
func (r *TransactionRepo) GetByExternalID(ctx context.Context, externalID string, kind domain.TransactionKind) (*domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM point_transactions
		WHERE external_id = $1 AND kind = $2
		ORDER BY created_at ASC LIMIT 1`

	return r.scanTransaction(r.pool.QueryRow(ctx, query, externalID, kind))
}

// List fetches a member's ledger entries in [From, To), newest first.
func (r *TransactionRepo) List(ctx context.Context, params ports.TransactionListParams) ([]domain.Transaction, int64, error) {
	conditions := []string{"member_id = $1", "created_at >= $2", "created_at < $3"}
	args := []any{params.MemberID, params.From, params.To}
	argIdx := 4

	if params.Kind != nil {
		conditions = append(conditions, fmt.Sprintf("kind = $%d", argIdx))
		args = append(args, *params.Kind)
		argIdx++
	}

	where := "WHERE " + strings.Join(conditions, " AND ")

	// Count total
	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM point_transactions %s", where)
	var total int64
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count transactions: %w", err)
	}

	// Fetch page
	dataQuery := fmt.Sprintf(`SELECT %s FROM point_transactions %s
		ORDER BY created_at DESC, id DESC LIMIT $%d OFFSET $%d`, transactionColumns, where, argIdx, argIdx+1)
	args = append(args, params.PageSize, params.Offset())

	rows, err := r.pool.Query(ctx, dataQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list transactions: %w", err)
	}
	defer rows.Close()

	txns := make([]domain.Transaction, 0, params.PageSize)
	for rows.Next() {
		t := domain.Transaction{}
		err := rows.Scan(
			&t.ID, &t.MemberID, &t.Amount, &t.BalanceAfter,
			&t.Kind, &t.ExternalID, &t.Description, &t.CreatedAt,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("scan transaction row: %w", err)
		}
		txns = append(txns, t)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate transaction rows: %w", err)
	}
	return txns, total, nil
}

func isDuplicateExternalID(pgErr *pgconn.PgError) bool {
	if pgErr.Code != uniqueViolation {
		return false
	}
	return pgErr.ConstraintName == chargeExternalIDIndex || pgErr.ConstraintName == refundExternalIDIndex
}

// scanTransaction is a helper to scan a single row into a Transaction.
func (r *TransactionRepo) scanTransaction(row pgx.Row) (*domain.Transaction, error) {
	t := &domain.Transaction{}
	err := row.Scan(
		&t.ID, &t.MemberID, &t.Amount, &t.BalanceAfter,
		&t.Kind, &t.ExternalID, &t.Description, &t.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("scan transaction: %w", err)
	}
	return t, nil
}
