package dto

import (
	"testing"
	"time"

	"point-wallet/internal/core/domain"

	"github.com/gin-gonic/gin/binding"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

// --- SanitizeStruct tests ---

func TestSanitizeStruct_TrimsAndEscapes(t *testing.T) {
	req := PurchaseRequest{
		Amount:      3000,
		Description: "  ebook <script>alert('x')</script>  ",
	}
	SanitizeStruct(&req)

	assert.Equal(t, int64(3000), req.Amount)
	assert.Contains(t, req.Description, "&lt;script&gt;")
	assert.NotContains(t, req.Description, "<script>")
	assert.False(t, req.Description[0] == ' ')
}

func TestSanitizeStruct_HandlesPointerString(t *testing.T) {
	s := "  hello  "
	v := struct{ Note *string }{Note: &s}
	SanitizeStruct(&v)
	assert.Equal(t, "hello", *v.Note)

	empty := struct{ Note *string }{}
	SanitizeStruct(&empty)
	assert.Nil(t, empty.Note)
}

func TestSanitizeStruct_NonPointerIsNoOp(t *testing.T) {
	SanitizeStruct("hello")
}

// --- Custom validator tests ---

func TestSafeID(t *testing.T) {
	valid := []string{"pg_token_abc", "REF-002", "a.b.c", "9999"}
	for _, tc := range valid {
		assert.True(t, safeStringRe.MatchString(tc), "expected valid: %s", tc)
	}

	invalid := []string{"tok en", "tok<en>", "tok;DROP", "", "tok\nen"}
	for _, tc := range invalid {
		assert.False(t, safeStringRe.MatchString(tc), "expected invalid: %s", tc)
	}
}

func TestHistoryQuery_Validation(t *testing.T) {
	tests := []struct {
		name  string
		query HistoryQuery
		ok    bool
	}{
		{"valid range", HistoryQuery{StartDate: "2026-03-01", EndDate: "2026-03-31"}, true},
		{"with kind and paging", HistoryQuery{StartDate: "2026-03-01", EndDate: "2026-03-01", Kind: "CHARGE", Page: 2, PageSize: 50}, true},
		{"missing end", HistoryQuery{StartDate: "2026-03-01"}, false},
		{"bad date format", HistoryQuery{StartDate: "2026/03/01", EndDate: "2026-03-31"}, false},
		{"impossible date", HistoryQuery{StartDate: "2026-02-30", EndDate: "2026-03-31"}, false},
		{"unknown kind", HistoryQuery{StartDate: "2026-03-01", EndDate: "2026-03-31", Kind: "BONUS"}, false},
		{"page size over max", HistoryQuery{StartDate: "2026-03-01", EndDate: "2026-03-31", PageSize: 101}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := binding.Validator.ValidateStruct(&tt.query)
			if tt.ok {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestChargeSuccessQuery_Validation(t *testing.T) {
	memberID := uuid.NewString()

	assert.NoError(t, binding.Validator.ValidateStruct(&ChargeSuccessQuery{MemberID: memberID, Amount: 10000, PgToken: "pg_token_abc"}))
	assert.Error(t, binding.Validator.ValidateStruct(&ChargeSuccessQuery{MemberID: "42", PgToken: "pg_token_abc"}))
	assert.Error(t, binding.Validator.ValidateStruct(&ChargeSuccessQuery{MemberID: memberID}))
	assert.Error(t, binding.Validator.ValidateStruct(&ChargeSuccessQuery{MemberID: memberID, PgToken: "a b"}))
}

func TestNewTransactionResponse(t *testing.T) {
	tid := "9999"
	tx := &domain.Transaction{
		ID:           uuid.New(),
		Amount:       10000,
		BalanceAfter: 15000,
		Kind:         domain.TransactionKindCharge,
		ExternalID:   &tid,
		CreatedAt:    time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC),
	}

	resp := NewTransactionResponse(tx)
	assert.Equal(t, tx.ID.String(), resp.ID)
	assert.Equal(t, int64(5000), resp.BalanceBefore)
	assert.Equal(t, int64(15000), resp.BalanceAfter)
	assert.Equal(t, "CHARGE", resp.Kind)
	assert.Equal(t, "9999", *resp.ExternalID)
	assert.Equal(t, "2026-03-01T09:30:00Z", resp.CreatedAt)
}
