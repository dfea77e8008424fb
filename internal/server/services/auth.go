package services

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/edora/internal/server/auth"
)

// TokenTypeBearer is reported to clients alongside the access token.
const TokenTypeBearer = "bearer"

// TokenPair is the login response: an access token and its type.
type TokenPair struct {
	AccessToken string
	TokenType   string
}

// AuthService exchanges the admin credential for a bearer token.
type AuthService struct {
	admin  *auth.Admin
	tokens *auth.TokenService
	ttl    time.Duration
}

func NewAuthService(admin *auth.Admin, tokens *auth.TokenService, ttl time.Duration) *AuthService {
	return &AuthService{admin: admin, tokens: tokens, ttl: ttl}
}

// Login returns common.ErrBadCredentials on any mismatch.
func (s *AuthService) Login(_ context.Context, username, password string) (*TokenPair, error) {
	if err := s.admin.Authenticate(username, password); err != nil {
		return nil, err
	}

	token, err := s.tokens.Issue(s.admin.Username(), s.ttl)
	if err != nil {
		return nil, fmt.Errorf("issuing token: %w", err)
	}

	return &TokenPair{AccessToken: token, TokenType: TokenTypeBearer}, nil
}
