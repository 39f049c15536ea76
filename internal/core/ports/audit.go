package ports

import (
	"context"

	"github.com/reyvanevan/saas-admin-gateway/internal/core/domain"
)

// AuditSink persists session lifecycle events.
type AuditSink interface {
	Record(ctx context.Context, event domain.AuditEvent) error
}

// AuditTrail is the non-blocking front of the audit pipeline. Enqueue must
// never block or fail a session action; events may be dropped under
// backpressure.
type AuditTrail interface {
	Enqueue(event domain.AuditEvent)
}
