package ports

import (
	"context"

	"github.com/reyvanevan/saas-admin-gateway/internal/core/domain"
)

// UserRepository is the platform user directory backing the identity
// provider.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	UpdatePassword(ctx context.Context, id, passwordHash string) error
}
