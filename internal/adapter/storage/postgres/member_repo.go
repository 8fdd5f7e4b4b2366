package postgres

import (
	"context"
	"errors"
	"fmt"

	"point-wallet/internal/core/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// MemberRepo implements ports.MemberRepository.
type MemberRepo struct {
	pool Pool
}

// NewMemberRepo creates a new MemberRepo.
func NewMemberRepo(pool Pool) *MemberRepo {
	return &MemberRepo{pool: pool}
}

// Create inserts a balance row. An existing row for the same id is kept as is.
func (r *MemberRepo) Create(ctx context.Context, m *domain.Member) error {
	query := `INSERT INTO members (id, balance, created_at, updated_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (id) DO NOTHING`

	_, err := r.pool.Exec(ctx, query, m.ID, m.Balance, m.CreatedAt, m.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert member: %w", err)
	}
	return nil
}

// GetByID fetches a member balance row (without locking).
func (r *MemberRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Member, error) {
	query := `SELECT id, balance, created_at, updated_at FROM members WHERE id = $1`

	m, err := scanMember(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		return nil, fmt.Errorf("get member by id: %w", err)
	}
	return m, nil
}

// GetByIDForUpdate fetches a member balance row with pessimistic locking.
// This MUST be called within a transaction.
func (r *MemberRepo) GetByIDForUpdate(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*domain.Member, error) {
	query := `SELECT id, balance, created_at, updated_at FROM members WHERE id = $1 FOR UPDATE`

	m, err := scanMember(tx.QueryRow(ctx, query, id))
	if err != nil {
		return nil, fmt.Errorf("get member for update: %w", err)
	}
	return m, nil
}

// UpdateBalance writes a new balance within a transaction.
func (r *MemberRepo) UpdateBalance(ctx context.Context, tx pgx.Tx, id uuid.UUID, balance int64) error {
	query := `UPDATE members SET balance = $1, updated_at = NOW() WHERE id = $2`

	tag, err := tx.Exec(ctx, query, balance, id)
	if err != nil {
		return fmt.Errorf("update member balance: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("member not found: %s", id)
	}
	return nil
}

func scanMember(row pgx.Row) (*domain.Member, error) {
	m := &domain.Member{}
	err := row.Scan(&m.ID, &m.Balance, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return m, nil
}
