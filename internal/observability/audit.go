package observability

import (
	"context"
	"time"
)

// AuditAction represents an audit action type.
type AuditAction string

const (
	ActionCreate AuditAction = "create"
	ActionUpdate AuditAction = "update"
	ActionDelete AuditAction = "delete"
	ActionLogin  AuditAction = "login"
	ActionAccess AuditAction = "access"
)

// AuditEvent represents a security audit log entry.
type AuditEvent struct {
	Action    AuditAction    `json:"action"`
	Resource  string         `json:"resource"`
	ActorID   string         `json:"actor_id"`
	RequestID string         `json:"request_id,omitempty"`
	IPAddress string         `json:"ip_address,omitempty"`
	UserAgent string         `json:"user_agent,omitempty"`
	Metadata  map[string]any `json:"metadata,omitempty"`
	Status    string         `json:"status"`          // "success" or "failure"
	Error     string         `json:"error,omitempty"` // Error message if any
	Timestamp time.Time      `json:"timestamp"`
}

// auditRedactor scrubs PII from every audit event's metadata before it
// reaches the log sink — a dating platform's audit trail (who liked whom,
// phone numbers on profile edits) is itself PII if left unredacted.
var auditRedactor = NewPIIRedactor(EmailModeFull)

// NewAuditEvent creates a new audit event.
// The actorID should be extracted from context by the caller.
// RequestID should be set manually by the caller if needed using middleware.
func NewAuditEvent(ctx context.Context, action AuditAction, resource, actorID string, metadata map[string]any) AuditEvent {
	redacted, _ := auditRedactor.Redact(metadata).(map[string]any)
	return AuditEvent{
		Action:    action,
		Resource:  resource,
		ActorID:   actorID,
		Metadata:  redacted,
		Timestamp: time.Now(),
		Status:    "success", // Default to success
	}
}
