package models

import "time"

// Audit event types.
const (
	AuditUserCreated = "USER_CREATED"
	AuditUserUpdated = "USER_UPDATED"
	AuditUserDeleted = "USER_DELETED"
	AuditLoginOK     = "LOGIN_OK"
	AuditLoginFailed = "LOGIN_FAILED"
)

// AuditEvent is a single entry in the account audit trail.
type AuditEvent struct {
	EventID     string    `json:"event_id"`
	OccurredAt  time.Time `json:"occurred_at"`
	Type        string    `json:"type"`        // USER_CREATED | USER_UPDATED | USER_DELETED | LOGIN_OK | LOGIN_FAILED
	Description string    `json:"description"` // human-readable
	Metadata    any       `json:"metadata,omitempty"`
}
