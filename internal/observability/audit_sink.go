package observability

import (
	"context"

	"go.uber.org/zap"

	"github.com/datingapp/request-fabric/internal/platform/ctxutil"
)

// AuditSink adapts LogAudit/AuditEvent to the middleware.AuditSink
// interface, recording one entry per authenticated mutating request.
type AuditSink struct {
	Logger *zap.Logger
}

func (s AuditSink) Record(ctx context.Context, principal ctxutil.Principal, method, path string, status int) {
	action := ActionUpdate
	switch method {
	case "POST":
		action = ActionCreate
	case "DELETE":
		action = ActionDelete
	}
	event := NewAuditEvent(ctx, action, path, principal.UserID, map[string]any{
		"method": method,
		"status": status,
	})
	event.RequestID = ctxutil.CorrelationIDFromContext(ctx)
	if status >= 400 {
		event.Status = "failure"
	}
	LogAudit(ctx, s.Logger, event)
}
