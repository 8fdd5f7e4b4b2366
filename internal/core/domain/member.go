package domain

import (
	"time"

	"github.com/google/uuid"
)

// Member is a member's point balance row. Balance is mutated only through
// the ledger and never goes below zero.
type Member struct {
	ID        uuid.UUID `json:"id"`
	Balance   int64     `json:"balance"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CanApply reports whether applying amount keeps the balance non-negative.
func (m *Member) CanApply(amount int64) bool {
	return m.Balance+amount >= 0
}
