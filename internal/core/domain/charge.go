package domain

import (
	"time"

	"github.com/google/uuid"
)

// ChargeStatus is the state of a single charge attempt.
//
//	INITIATED -> PENDING -> APPROVED
//	                    \-> FAILED (gateway fail/cancel, or pending entry expired)
type ChargeStatus string

const (
	ChargeStatusInitiated ChargeStatus = "INITIATED"
	ChargeStatusPending   ChargeStatus = "PENDING"
	ChargeStatusApproved  ChargeStatus = "APPROVED"
	ChargeStatusFailed    ChargeStatus = "FAILED"
)

// IsTerminal returns true if no further transition is possible.
func (s ChargeStatus) IsTerminal() bool {
	return s == ChargeStatusApproved || s == ChargeStatusFailed
}

// PendingCharge associates a member with an in-flight gateway tid. It lives
// in the cache for a short TTL and is consumed exactly once.
type PendingCharge struct {
	MemberID  uuid.UUID `json:"member_id"`
	TID       string    `json:"tid"`
	OrderID   string    `json:"order_id"`
	Amount    int64     `json:"amount"`
	CreatedAt time.Time `json:"created_at"`
}

// PendingChargeKey is the cache key of a member's pending charge.
func PendingChargeKey(memberID uuid.UUID) string {
	return "pending_charge:" + memberID.String()
}

// BuildOrderID derives the partner order id sent to the gateway.
func BuildOrderID(memberID uuid.UUID, at time.Time) string {
	return "CHG-" + memberID.String()[:8] + "-" + at.UTC().Format("20060102150405")
}

// RedirectTarget is where the member is sent to approve a prepared charge.
type RedirectTarget struct {
	TID               string    `json:"tid"`
	RedirectURL       string    `json:"redirect_url"`
	MobileRedirectURL string    `json:"mobile_redirect_url,omitempty"`
	ExpiresAt         time.Time `json:"expires_at"`
}

// ApprovalResult is the gateway's confirmation of an approved charge.
type ApprovalResult struct {
	MemberID   uuid.UUID `json:"member_id"`
	TID        string    `json:"tid"`
	AID        string    `json:"aid"`
	OrderID    string    `json:"order_id"`
	Amount     int64     `json:"amount"`
	ApprovedAt time.Time `json:"approved_at"`
}
