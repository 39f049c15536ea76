package ports

import (
	"context"

	"github.com/reyvanevan/saas-admin-gateway/internal/core/domain"
)

// RegisterInput carries a new-account request through the gateway.
type RegisterInput struct {
	Email    string
	Password string
	Name     string
	Role     domain.Role
	TenantID string
}

// AuthGateway is the credential-exchange collaborator the session layer
// delegates to. The session service owns only the state transitions around
// these calls; credential verification and token issuance happen behind this
// interface.
type AuthGateway interface {
	Login(ctx context.Context, email, password string) (*domain.User, domain.TokenPair, error)
	Register(ctx context.Context, in RegisterInput) (*domain.User, error)
	Refresh(ctx context.Context, refreshToken string) (domain.TokenPair, error)
	CurrentUser(ctx context.Context, accessToken string) (*domain.User, error)
	ChangePassword(ctx context.Context, accessToken, currentPassword, newPassword string) error
}
