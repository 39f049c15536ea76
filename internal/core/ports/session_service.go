package ports

import (
	"context"

	"github.com/reyvanevan/saas-admin-gateway/internal/core/domain"
)

// Session is one browser session's authentication state machine. Every
// identity-changing action funnels through SetUser, which is what keeps
// IsAuthenticated equivalent to "user present" after each completed action.
type Session interface {
	ID() string

	Login(ctx context.Context, email, password string) (*domain.User, error)
	Register(ctx context.Context, in RegisterInput) (*domain.User, error)
	Logout(ctx context.Context) error
	RefreshToken(ctx context.Context) error
	CurrentUser(ctx context.Context) (*domain.User, error)
	ChangePassword(ctx context.Context, currentPassword, newPassword string) error
	ClearError()
	SetUser(ctx context.Context, user *domain.User)

	State() domain.SessionState
	IsAuthenticated() bool
}

// SessionManager creates or rehydrates Session instances and disposes of
// them when a browser session ends.
type SessionManager interface {
	Session(ctx context.Context, sessionID string) Session
	Dispose(ctx context.Context, sessionID string)
}
