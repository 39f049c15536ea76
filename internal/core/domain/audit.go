package domain

import "time"

// AuditKind classifies a session lifecycle event.
type AuditKind string

const (
	AuditLogin          AuditKind = "login"
	AuditLoginFailed    AuditKind = "login_failed"
	AuditLogout         AuditKind = "logout"
	AuditRefresh        AuditKind = "refresh"
	AuditForcedLogout   AuditKind = "forced_logout"
	AuditPasswordChange AuditKind = "password_change"
)

// AuditEvent records one session lifecycle transition for the audit trail.
// Events for the same session are persisted in the order they occurred.
type AuditEvent struct {
	SessionID string    `json:"session_id"`
	UserID    string    `json:"user_id,omitempty"`
	Kind      AuditKind `json:"kind"`
	Detail    string    `json:"detail,omitempty"`
	At        time.Time `json:"at"`
}
