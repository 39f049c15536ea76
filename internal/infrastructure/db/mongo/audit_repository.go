package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/reyvanevan/saas-admin-gateway/internal/core/domain"
)

const auditCollection = "session_audit"

// AuditRepository persists session lifecycle events. Append-only.
type AuditRepository struct {
	coll *mongo.Collection
}

func NewAuditRepository(db *mongo.Database) *AuditRepository {
	return &AuditRepository{coll: db.Collection(auditCollection)}
}

type mongoAuditEvent struct {
	SessionID string `bson:"session_id"`
	UserID    string `bson:"user_id,omitempty"`
	Kind      string `bson:"kind"`
	Detail    string `bson:"detail,omitempty"`
	At        int64  `bson:"at"`
}

func (r *AuditRepository) Record(ctx context.Context, event domain.AuditEvent) error {
	doc := mongoAuditEvent{
		SessionID: event.SessionID,
		UserID:    event.UserID,
		Kind:      string(event.Kind),
		Detail:    event.Detail,
		At:        event.At.Unix(),
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert audit event: %w", err)
	}
	return nil
}
