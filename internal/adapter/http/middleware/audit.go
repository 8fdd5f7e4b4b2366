package middleware

import (
	"encoding/json"
	"net/http"
	"time"

	"point-wallet/internal/core/domain"
	"point-wallet/internal/core/ports"
	"point-wallet/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// AuditLog creates an audit middleware that logs successful member write
// operations. Charge approval, abandonment and refunds are audited by the
// charge service itself.
func AuditLog(auditSvc ports.AuditService) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Writer.Status() < 200 || c.Writer.Status() >= 300 {
			return
		}
		if c.Request.Method != http.MethodPost {
			return
		}

		action, resourceType := mapPathToAction(c.FullPath())
		if action == "" {
			return
		}

		var memberID *uuid.UUID
		if id, ok := MemberID(c); ok {
			memberID = &id
		}

		details, _ := json.Marshal(map[string]any{
			"method":     c.Request.Method,
			"path":       c.Request.URL.Path,
			"status":     c.Writer.Status(),
			"request_id": c.GetString(response.RequestIDKey),
		})

		auditSvc.Log(c.Request.Context(), &domain.AuditLog{
			ID:           uuid.New(),
			MemberID:     memberID,
			Action:       action,
			ResourceType: resourceType,
			ResourceID:   c.GetString(CtxAuditResourceID),
			IPAddress:    c.ClientIP(),
			Details:      string(details),
			CreatedAt:    time.Now().UTC(),
		})
	}
}

// CtxAuditResourceID lets a handler name the resource it created.
const CtxAuditResourceID = "audit_resource_id"

func mapPathToAction(path string) (domain.AuditAction, string) {
	switch path {
	case "/api/v1/points/account":
		return domain.AuditActionOpenAccount, "member"
	case "/api/v1/points/charge/ready":
		return domain.AuditActionChargeReady, "charge"
	case "/api/v1/points/purchase":
		return domain.AuditActionPurchase, "transaction"
	}
	return "", ""
}
