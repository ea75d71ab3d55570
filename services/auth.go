package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"ui-gallery-backend/metrics"
	"ui-gallery-backend/models"
	"ui-gallery-backend/repository"
)

// DefaultTokenTTL is used when Authenticate is called without a lifetime.
const DefaultTokenTTL = 30 * time.Minute

// Revoker tracks credentials that were logged out before they expired.
type Revoker interface {
	Revoke(ctx context.Context, tokenID string, ttl time.Duration) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

// Credential is an issued bearer token.
type Credential struct {
	Token     string
	ExpiresAt time.Time
}

// AuthService registers users, issues credentials and resolves callers.
type AuthService struct {
	users   repository.UserRepository
	hasher  PasswordHasher
	tokens  TokenService
	revoker Revoker
	log     *logrus.Logger
}

// NewAuthService creates an AuthService. A nil revoker disables logout.
func NewAuthService(users repository.UserRepository, hasher PasswordHasher, tokens TokenService, revoker Revoker, log *logrus.Logger) *AuthService {
	if revoker == nil {
		revoker = nopRevoker{}
	}
	return &AuthService{users: users, hasher: hasher, tokens: tokens, revoker: revoker, log: log}
}

// Register creates a USER account. Registration never grants ADMIN.
func (s *AuthService) Register(ctx context.Context, email, username, password string) (*models.User, error) {
	_, err := s.users.FindByEmail(ctx, email)
	if err == nil {
		return nil, ErrConflict
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Email:        email,
		Username:     username,
		PasswordHash: hash,
		Role:         models.RoleUser,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	s.log.WithFields(logrus.Fields{"user_id": user.ID, "email": user.Email}).Info("user registered")
	return user, nil
}

// Authenticate checks the email/password pair and issues a credential valid
// for ttl, or DefaultTokenTTL when ttl is not positive. Unknown emails and
// wrong passwords fail the same way.
func (s *AuthService) Authenticate(ctx context.Context, email, password string, ttl time.Duration) (*Credential, error) {
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			metrics.Login("failure")
			return nil, ErrUnauthorized
		}
		return nil, err
	}
	if !s.hasher.Verify(password, user.PasswordHash) {
		metrics.Login("failure")
		s.log.WithField("email", email).Warn("failed login attempt")
		return nil, ErrUnauthorized
	}

	token, claims, err := s.tokens.Sign(user.Email, ttl)
	if err != nil {
		return nil, fmt.Errorf("failed to sign token: %w", err)
	}

	metrics.Login("success")
	return &Credential{Token: token, ExpiresAt: claims.ExpiresAt.Time}, nil
}

// ResolveCaller maps a bearer token to its user. Bad signatures, expired or
// revoked tokens and tokens whose user no longer exists are all
// ErrUnauthorized.
func (s *AuthService) ResolveCaller(ctx context.Context, token string) (*models.User, error) {
	if token == "" {
		return nil, ErrUnauthorized
	}

	claims, err := s.tokens.Verify(token)
	if err != nil {
		return nil, ErrUnauthorized
	}

	if claims.ID != "" {
		revoked, err := s.revoker.IsRevoked(ctx, claims.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to check token revocation: %w", err)
		}
		if revoked {
			return nil, ErrUnauthorized
		}
	}

	user, err := s.users.FindByEmail(ctx, claims.Subject)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUnauthorized
		}
		return nil, err
	}
	return user, nil
}

// RequireAdmin fails with ErrForbidden unless user is an administrator.
func RequireAdmin(user *models.User) error {
	if user == nil || !user.IsAdmin() {
		return ErrForbidden
	}
	return nil
}

// Logout revokes token for the rest of its lifetime.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	claims, err := s.tokens.Verify(token)
	if err != nil {
		return ErrUnauthorized
	}
	if claims.ID == "" {
		return nil
	}

	remaining := time.Until(claims.ExpiresAt.Time)
	if remaining <= 0 {
		return nil
	}
	if err := s.revoker.Revoke(ctx, claims.ID, remaining); err != nil {
		return fmt.Errorf("failed to revoke token: %w", err)
	}

	s.log.WithField("subject", claims.Subject).Info("token revoked")
	return nil
}

type nopRevoker struct{}

func (nopRevoker) Revoke(context.Context, string, time.Duration) error { return nil }

func (nopRevoker) IsRevoked(context.Context, string) (bool, error) { return false, nil }
