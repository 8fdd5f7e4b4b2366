package integration

import (
	"context"
	"errors"
	"sort"
	"sync"

	"point-wallet/internal/core/domain"
	"point-wallet/internal/core/ports"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// The in-memory store stands in for PostgreSQL. A transaction holds one
// store-wide lock from Begin until Commit or Rollback, which serializes
// writers the way the member row lock does, and buffers its writes until
// Commit so a rolled back transaction leaves no trace.

type memStore struct {
	lock sync.Mutex // held by the open transaction

	mu      sync.RWMutex // guards the maps below
	members map[uuid.UUID]*domain.Member
	txns    []storedTxn
	audits  []*domain.AuditLog
}

type storedTxn struct {
	seq int
	txn domain.Transaction
}

func newMemStore() *memStore {
	return &memStore{members: make(map[uuid.UUID]*domain.Member)}
}

// --- In-Memory Transactor ---

type memTransactor struct{ store *memStore }

func (t *memTransactor) Begin(ctx context.Context) (pgx.Tx, error) {
	t.store.lock.Lock()
	return &memTx{store: t.store}, nil
}

// memTx implements pgx.Tx over memStore.
type memTx struct {
	store *memStore
	ops   []func()
	done  bool
}

func (t *memTx) finish(apply bool) {
	if t.done {
		return
	}
	t.done = true
	if apply {
		t.store.mu.Lock()
		for _, op := range t.ops {
			op()
		}
		t.store.mu.Unlock()
	}
	t.store.lock.Unlock()
}

func (t *memTx) Begin(ctx context.Context) (pgx.Tx, error) { return t, nil }
func (t *memTx) Commit(ctx context.Context) error          { t.finish(true); return nil }
func (t *memTx) Rollback(ctx context.Context) error        { t.finish(false); return nil }
func (t *memTx) CopyFrom(ctx context.Context, tableName pgx.Identifier, columnNames []string, rowSrc pgx.CopyFromSource) (int64, error) {
	return 0, nil
}
func (t *memTx) SendBatch(ctx context.Context, b *pgx.Batch) pgx.BatchResults { return nil }
func (t *memTx) LargeObjects() pgx.LargeObjects                               { return pgx.LargeObjects{} }
func (t *memTx) Prepare(ctx context.Context, name, sql string) (*pgconn.StatementDescription, error) {
	return nil, nil
}
func (t *memTx) Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error) {
	return pgconn.NewCommandTag(""), nil
}
func (t *memTx) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	return nil, errors.New("not supported")
}
func (t *memTx) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row { return nil }
func (t *memTx) Conn() *pgx.Conn                                               { return nil }

func asMemTx(tx pgx.Tx) *memTx {
	mt, ok := tx.(*memTx)
	if !ok {
		panic("in-memory repos require a memTx")
	}
	return mt
}

// --- In-Memory Member Repo ---

type memMemberRepo struct{ store *memStore }

func (r *memMemberRepo) Create(ctx context.Context, m *domain.Member) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, ok := r.store.members[m.ID]; ok {
		return nil
	}
	cp := *m
	r.store.members[m.ID] = &cp
	return nil
}

func (r *memMemberRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Member, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	m, ok := r.store.members[id]
	if !ok {
		return nil, nil
	}
	cp := *m
	return &cp, nil
}

func (r *memMemberRepo) GetByIDForUpdate(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*domain.Member, error) {
	asMemTx(tx)
	return r.GetByID(ctx, id)
}

func (r *memMemberRepo) UpdateBalance(ctx context.Context, tx pgx.Tx, id uuid.UUID, balance int64) error {
	mt := asMemTx(tx)
	mt.ops = append(mt.ops, func() {
		if m, ok := r.store.members[id]; ok {
			m.Balance = balance
		}
	})
	return nil
}

// --- In-Memory Transaction Repo ---

type memTransactionRepo struct{ store *memStore }

func (r *memTransactionRepo) Create(ctx context.Context, tx pgx.Tx, t *domain.Transaction) error {
	mt := asMemTx(tx)

	// Mirrors the partial unique indexes on external_id
	if t.ExternalID != nil && (t.Kind == domain.TransactionKindCharge || t.Kind == domain.TransactionKindRefund) {
		existing, err := r.GetByExternalID(ctx, *t.ExternalID, t.Kind)
		if err != nil {
			return err
		}
		if existing != nil {
			return ports.ErrDuplicateExternalID
		}
	}

	cp := *t
	mt.ops = append(mt.ops, func() {
		r.store.txns = append(r.store.txns, storedTxn{seq: len(r.store.txns), txn: cp})
	})
	return nil
}

func (r *memTransactionRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Transaction, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	for _, st := range r.store.txns {
		if st.txn.ID == id {
			cp := st.txn
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *memTransactionRepo) GetByExternalID(ctx context.Context, externalID string, kind domain.TransactionKind) (*domain.Transaction, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	for _, st := range r.store.txns {
		if st.txn.Kind == kind && st.txn.ExternalID != nil && *st.txn.ExternalID == externalID {
			cp := st.txn
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *memTransactionRepo) List(ctx context.Context, params ports.TransactionListParams) ([]domain.Transaction, int64, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	var matched []storedTxn
	for _, st := range r.store.txns {
		t := st.txn
		if t.MemberID != params.MemberID {
			continue
		}
		if t.CreatedAt.Before(params.From) || !t.CreatedAt.Before(params.To) {
			continue
		}
		if params.Kind != nil && t.Kind != *params.Kind {
			continue
		}
		matched = append(matched, st)
	}

	sort.Slice(matched, func(i, j int) bool {
		if !matched[i].txn.CreatedAt.Equal(matched[j].txn.CreatedAt) {
			return matched[i].txn.CreatedAt.After(matched[j].txn.CreatedAt)
		}
		return matched[i].seq > matched[j].seq
	})

	total := int64(len(matched))
	start := params.Offset()
	if start > len(matched) {
		start = len(matched)
	}
	end := start + params.PageSize
	if end > len(matched) {
		end = len(matched)
	}

	page := make([]domain.Transaction, 0, end-start)
	for _, st := range matched[start:end] {
		page = append(page, st.txn)
	}
	return page, total, nil
}

// --- In-Memory Audit Repo ---

type memAuditRepo struct{ store *memStore }

func (r *memAuditRepo) Create(ctx context.Context, log *domain.AuditLog) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.audits = append(r.store.audits, log)
	return nil
}

func (s *memStore) auditActions() []domain.AuditAction {
	s.mu.RLock()
	defer s.mu.RUnlock()
	actions := make([]domain.AuditAction, 0, len(s.audits))
	for _, a := range s.audits {
		actions = append(actions, a.Action)
	}
	return actions
}

func (s *memStore) transactions() []domain.Transaction {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Transaction, 0, len(s.txns))
	for _, st := range s.txns {
		out = append(out, st.txn)
	}
	return out
}
