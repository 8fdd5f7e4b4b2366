package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"point-wallet/internal/core/domain"
	"point-wallet/internal/core/ports"
	"point-wallet/internal/metrics"
	"point-wallet/pkg/apperror"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const (
	defaultHistoryPageSize = 20
	maxHistoryPageSize     = 100
)

// LedgerServiceImpl implements ports.LedgerService.
// Every balance change runs inside one database transaction holding the
// member row lock from the balance read until the ledger append commits.
type LedgerServiceImpl struct {
	memberRepo ports.MemberRepository
	txRepo     ports.TransactionRepository
	transactor ports.DBTransactor
	metrics    *metrics.Metrics
	log        zerolog.Logger
	now        func() time.Time
}

// NewLedgerService creates a new LedgerServiceImpl.
func NewLedgerService(
	memberRepo ports.MemberRepository,
	txRepo ports.TransactionRepository,
	transactor ports.DBTransactor,
	m *metrics.Metrics,
	log zerolog.Logger,
) *LedgerServiceImpl {
	return &LedgerServiceImpl{
		memberRepo: memberRepo,
		txRepo:     txRepo,
		transactor: transactor,
		metrics:    m,
		log:        log,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

// OpenAccount creates the member's balance row with a zero balance.
// Calling it for an existing member returns the current row.
func (s *LedgerServiceImpl) OpenAccount(ctx context.Context, memberID uuid.UUID) (*domain.Member, error) {
	now := s.now()
	if err := s.memberRepo.Create(ctx, &domain.Member{
		ID:        memberID,
		Balance:   0,
		CreatedAt: now,
		UpdatedAt: now,
	}); err != nil {
		return nil, apperror.ErrDatabaseError(fmt.Errorf("create member: %w", err))
	}

	member, err := s.memberRepo.GetByID(ctx, memberID)
	if err != nil {
		return nil, apperror.ErrDatabaseError(fmt.Errorf("get member: %w", err))
	}
	if member == nil {
		return nil, apperror.InternalError(fmt.Errorf("member %s missing after create", memberID))
	}
	return member, nil
}

// GetBalance returns the member's current balance.
func (s *LedgerServiceImpl) GetBalance(ctx context.Context, memberID uuid.UUID) (int64, error) {
	member, err := s.memberRepo.GetByID(ctx, memberID)
	if err != nil {
		return 0, apperror.ErrDatabaseError(fmt.Errorf("get member: %w", err))
	}
	if member == nil {
		return 0, apperror.ErrMemberNotFound()
	}
	return member.Balance, nil
}

// ApplyDelta applies a signed amount to the member's balance and appends the
// matching ledger entry, atomically.
func (s *LedgerServiceImpl) ApplyDelta(ctx context.Context, req ports.DeltaRequest) (*domain.Transaction, error) {
	if req.Amount == 0 {
		return nil, apperror.ErrInvalidAmount()
	}
	if !req.Kind.Valid() {
		return nil, apperror.Validation(fmt.Sprintf("invalid transaction kind %q", req.Kind))
	}

	txn, err := s.applyDelta(ctx, req)
	if err != nil {
		outcome := metrics.OutcomeError
		if errors.Is(err, apperror.ErrInsufficientBalance()) || errors.Is(err, apperror.ErrMemberNotFound()) {
			outcome = metrics.OutcomeRejected
		}
		s.metrics.LedgerMutation(string(req.Kind), outcome)
		return nil, err
	}
	s.metrics.LedgerMutation(string(req.Kind), metrics.OutcomeSuccess)

	ev := s.log.Info().
		Str("tx_id", txn.ID.String()).
		Str("member_id", txn.MemberID.String()).
		Int64("amount", txn.Amount).
		Str("kind", string(txn.Kind)).
		Int64("balance_after", txn.BalanceAfter)
	if txn.ExternalID != nil {
		ev = ev.Str("external_id", *txn.ExternalID)
	}
	ev.Msg("ledger entry applied")

	return txn, nil
}

func (s *LedgerServiceImpl) applyDelta(ctx context.Context, req ports.DeltaRequest) (*domain.Transaction, error) {
	dbTx, err := s.transactor.Begin(ctx)
	if err != nil {
		return nil, apperror.ErrDatabaseError(fmt.Errorf("begin tx: %w", err))
	}
	defer dbTx.Rollback(ctx) //nolint:errcheck

	// Lock the balance row for the rest of the transaction
	member, err := s.memberRepo.GetByIDForUpdate(ctx, dbTx, req.MemberID)
	if err != nil {
		return nil, apperror.ErrDatabaseError(fmt.Errorf("lock member: %w", err))
	}
	if member == nil {
		return nil, apperror.ErrMemberNotFound()
	}

	// Business rule: balance never goes negative
	if !member.CanApply(req.Amount) {
		return nil, apperror.ErrInsufficientBalance()
	}
	newBalance := member.Balance + req.Amount

	if err := s.memberRepo.UpdateBalance(ctx, dbTx, member.ID, newBalance); err != nil {
		return nil, apperror.ErrDatabaseError(fmt.Errorf("update balance: %w", err))
	}

	txn := &domain.Transaction{
		ID:           uuid.New(),
		MemberID:     member.ID,
		Amount:       req.Amount,
		BalanceAfter: newBalance,
		Kind:         req.Kind,
		ExternalID:   req.ExternalID,
		Description:  req.Description,
		CreatedAt:    s.now(),
	}
	if err := s.txRepo.Create(ctx, dbTx, txn); err != nil {
		if errors.Is(err, ports.ErrDuplicateExternalID) {
			return nil, apperror.ErrDuplicateExternalID()
		}
		return nil, apperror.ErrDatabaseError(fmt.Errorf("create transaction: %w", err))
	}

	if err := dbTx.Commit(ctx); err != nil {
		return nil, apperror.ErrDatabaseError(fmt.Errorf("commit tx: %w", err))
	}
	return txn, nil
}

// Spend debits amount points for an item purchase.
func (s *LedgerServiceImpl) Spend(ctx context.Context, memberID uuid.UUID, amount int64, description string) (*domain.Transaction, error) {
	if amount <= 0 {
		return nil, apperror.ErrInvalidAmount()
	}

	req := ports.DeltaRequest{
		MemberID: memberID,
		Amount:   -amount,
		Kind:     domain.TransactionKindPurchase,
	}
	if description != "" {
		req.Description = &description
	}
	return s.ApplyDelta(ctx, req)
}

// GetHistory returns one page of the member's ledger within the inclusive
// day range [StartDate, EndDate], newest first, and the total match count.
func (s *LedgerServiceImpl) GetHistory(ctx context.Context, q ports.HistoryQuery) ([]domain.Transaction, int64, error) {
	from := startOfDay(q.StartDate)
	to := startOfDay(q.EndDate).AddDate(0, 0, 1)
	if !from.Before(to) {
		return nil, 0, apperror.Validation("start_date must not be after end_date")
	}

	page := q.Page
	if page < 1 {
		page = 1
	}
	pageSize := q.PageSize
	if pageSize <= 0 {
		pageSize = defaultHistoryPageSize
	}
	if pageSize > maxHistoryPageSize {
		pageSize = maxHistoryPageSize
	}

	txns, total, err := s.txRepo.List(ctx, ports.TransactionListParams{
		MemberID: q.MemberID,
		From:     from,
		To:       to,
		Kind:     q.Kind,
		Page:     page,
		PageSize: pageSize,
	})
	if err != nil {
		return nil, 0, apperror.ErrDatabaseError(fmt.Errorf("list transactions: %w", err))
	}
	return txns, total, nil
}

// FindEntry returns the member's ledger entry txID.
func (s *LedgerServiceImpl) FindEntry(ctx context.Context, memberID, txID uuid.UUID) (*domain.Transaction, error) {
	txn, err := s.txRepo.GetByID(ctx, txID)
	if err != nil {
		return nil, apperror.ErrDatabaseError(fmt.Errorf("get transaction: %w", err))
	}
	// Entries of other members are reported as missing
	if txn == nil || txn.MemberID != memberID {
		return nil, apperror.ErrTransactionNotFound()
	}
	return txn, nil
}

// FindEntryByExternalID returns the member's CHARGE entry for a gateway tid.
func (s *LedgerServiceImpl) FindEntryByExternalID(ctx context.Context, memberID uuid.UUID, externalID string) (*domain.Transaction, error) {
	txn, err := s.txRepo.GetByExternalID(ctx, externalID, domain.TransactionKindCharge)
	if err != nil {
		return nil, apperror.ErrDatabaseError(fmt.Errorf("get transaction by external id: %w", err))
	}
	if txn == nil || txn.MemberID != memberID {
		return nil, apperror.ErrTransactionNotFound()
	}
	return txn, nil
}

// FindRefund returns the REFUND entry recorded for externalID, or nil.
func (s *LedgerServiceImpl) FindRefund(ctx context.Context, externalID string) (*domain.Transaction, error) {
	txn, err := s.txRepo.GetByExternalID(ctx, externalID, domain.TransactionKindRefund)
	if err != nil {
		return nil, apperror.ErrDatabaseError(fmt.Errorf("get refund by external id: %w", err))
	}
	return txn, nil
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
