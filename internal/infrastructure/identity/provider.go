// Package identity implements the credential-exchange gateway backing the
// session layer: bcrypt password verification against the platform user
// directory and HS256 token issuance.
package identity

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/reyvanevan/saas-admin-gateway/internal/core/domain"
	"github.com/reyvanevan/saas-admin-gateway/internal/core/ports"
)

const (
	tokenTypeAccess  = "access"
	tokenTypeRefresh = "refresh"

	minPasswordLength = 8
)

// Provider implements ports.AuthGateway against a user repository.
type Provider struct {
	users      ports.UserRepository
	jwtSecret  []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
}

// NewProvider wires an identity Provider. Zero TTLs fall back to 15m access
// and 7d refresh.
func NewProvider(users ports.UserRepository, jwtSecret string, accessTTL, refreshTTL time.Duration) *Provider {
	if accessTTL <= 0 {
		accessTTL = 15 * time.Minute
	}
	if refreshTTL <= 0 {
		refreshTTL = 7 * 24 * time.Hour
	}
	return &Provider{
		users:      users,
		jwtSecret:  []byte(jwtSecret),
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
	}
}

// Login verifies credentials and issues a fresh token pair.
func (p *Provider) Login(ctx context.Context, email, password string) (*domain.User, domain.TokenPair, error) {
	if email == "" || password == "" {
		return nil, domain.TokenPair{}, domain.ErrInvalidCredentials
	}

	user, err := p.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, domain.TokenPair{}, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, domain.TokenPair{}, domain.ErrInvalidCredentials
	}

	pair, err := p.issueTokens(user)
	if err != nil {
		return nil, domain.TokenPair{}, err
	}
	return user, pair, nil
}

// Register creates a new account. The role must belong to the closed
// enumeration; there is no self-service role escalation path here, callers
// gate who may register which role.
func (p *Provider) Register(ctx context.Context, in ports.RegisterInput) (*domain.User, error) {
	if in.Email == "" || in.Password == "" {
		return nil, domain.ErrInvalidCredentials
	}
	if !in.Role.Valid() {
		return nil, fmt.Errorf("%w: unknown role %q", domain.ErrInvalidCredentials, in.Role)
	}
	if len(in.Password) < minPasswordLength {
		return nil, domain.ErrWeakPassword
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	now := time.Now().UTC()
	user := &domain.User{
		ID:           uuid.NewString(),
		Email:        in.Email,
		Name:         in.Name,
		Role:         in.Role,
		TenantID:     in.TenantID,
		PasswordHash: string(hash),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	return p.users.Create(ctx, user)
}

// Refresh validates a refresh token and reissues a full pair for its subject.
func (p *Provider) Refresh(ctx context.Context, refreshToken string) (domain.TokenPair, error) {
	userID, err := p.parseToken(refreshToken, tokenTypeRefresh)
	if err != nil {
		return domain.TokenPair{}, err
	}

	user, err := p.users.FindByID(ctx, userID)
	if err != nil {
		return domain.TokenPair{}, err
	}

	return p.issueTokens(user)
}

// CurrentUser resolves an access token to its user.
func (p *Provider) CurrentUser(ctx context.Context, accessToken string) (*domain.User, error) {
	userID, err := p.parseToken(accessToken, tokenTypeAccess)
	if err != nil {
		return nil, err
	}
	return p.users.FindByID(ctx, userID)
}

// ChangePassword verifies the current password for the token's subject and
// stores a new hash.
func (p *Provider) ChangePassword(ctx context.Context, accessToken, currentPassword, newPassword string) error {
	if len(newPassword) < minPasswordLength {
		return domain.ErrWeakPassword
	}

	userID, err := p.parseToken(accessToken, tokenTypeAccess)
	if err != nil {
		return err
	}

	user, err := p.users.FindByID(ctx, userID)
	if err != nil {
		return err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(currentPassword)) != nil {
		return domain.ErrInvalidCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	return p.users.UpdatePassword(ctx, user.ID, string(hash))
}

func (p *Provider) issueTokens(user *domain.User) (domain.TokenPair, error) {
	access, err := p.signToken(user, tokenTypeAccess, p.accessTTL)
	if err != nil {
		return domain.TokenPair{}, err
	}
	refresh, err := p.signToken(user, tokenTypeRefresh, p.refreshTTL)
	if err != nil {
		return domain.TokenPair{}, err
	}
	return domain.TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

func (p *Provider) signToken(user *domain.User, typ string, ttl time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"sub":       user.ID,
		"email":     user.Email,
		"role":      user.Role.String(),
		"tenant_id": user.TenantID,
		"typ":       typ,
		"exp":       time.Now().Add(ttl).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString(p.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("sign %s token: %w", typ, err)
	}
	return signed, nil
}

// parseToken validates signature, expiry, and token type, returning the
// subject user ID. Every failure collapses to ErrInvalidToken so callers
// never branch on parser internals.
func (p *Provider) parseToken(token, wantType string) (string, error) {
	claims := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return p.jwtSecret, nil
	})
	if err != nil || !parsed.Valid {
		return "", domain.ErrInvalidToken
	}

	if typ, _ := claims["typ"].(string); typ != wantType {
		return "", domain.ErrInvalidToken
	}

	sub, _ := claims["sub"].(string)
	if sub == "" {
		return "", domain.ErrInvalidToken
	}
	return sub, nil
}
