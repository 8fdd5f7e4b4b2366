package domain

import (
	"time"

	"github.com/google/uuid"
)

// TransactionKind tags what caused a balance change.
type TransactionKind string

const (
	TransactionKindCharge   TransactionKind = "CHARGE" // wallet charge via payment gateway
	TransactionKindPurchase TransactionKind = "PURCHASE"
	TransactionKindRefund   TransactionKind = "REFUND"
	TransactionKindOther    TransactionKind = "OTHER"
)

// Valid reports whether k is one of the known kinds.
func (k TransactionKind) Valid() bool {
	switch k {
	case TransactionKindCharge, TransactionKindPurchase, TransactionKindRefund, TransactionKindOther:
		return true
	}
	return false
}

// Transaction is an immutable ledger entry. Amount is signed: positive for
// credits, negative for debits. BalanceAfter = balance before + Amount.
type Transaction struct {
	ID           uuid.UUID       `json:"id"`
	MemberID     uuid.UUID       `json:"member_id"`
	Amount       int64           `json:"amount"`
	BalanceAfter int64           `json:"balance_after"`
	Kind         TransactionKind `json:"kind"`
	ExternalID   *string         `json:"external_id,omitempty"` // gateway tid, gateway kinds only
	Description  *string         `json:"description,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`
}

// BalanceBefore returns the balance the entry was applied to.
func (t *Transaction) BalanceBefore() int64 {
	return t.BalanceAfter - t.Amount
}

// IsRefundable returns true if this entry is a gateway charge that can be
// cancelled at the gateway.
func (t *Transaction) IsRefundable() bool {
	return t.Kind == TransactionKindCharge &&
		t.ExternalID != nil && *t.ExternalID != "" &&
		t.Amount > 0
}
