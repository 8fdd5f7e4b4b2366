package domain

import (
	"time"

	"github.com/google/uuid"
)

// AuditAction represents the type of audited action.
type AuditAction string

const (
	AuditActionChargeReady   AuditAction = "CHARGE_READY"
	AuditActionChargeApprove AuditAction = "CHARGE_APPROVE"
	AuditActionChargeCancel  AuditAction = "CHARGE_CANCEL"
	AuditActionChargeFail    AuditAction = "CHARGE_FAIL"
	AuditActionRefund        AuditAction = "REFUND"
	AuditActionPurchase      AuditAction = "PURCHASE"
	AuditActionOpenAccount   AuditAction = "OPEN_ACCOUNT"
)

// AuditLog records a single audited action in the system.
type AuditLog struct {
	ID           uuid.UUID   `json:"id"`
	MemberID     *uuid.UUID  `json:"member_id,omitempty"`
	Action       AuditAction `json:"action"`
	ResourceType string      `json:"resource_type"`
	ResourceID   string      `json:"resource_id,omitempty"`
	Details      string      `json:"details,omitempty"` // JSON string
	IPAddress    string      `json:"ip_address"`
	CreatedAt    time.Time   `json:"created_at"`
}
