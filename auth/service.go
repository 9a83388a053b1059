// Package auth is the Credential Service: password hashing, login by email,
// JWT issuance and the bearer-token middleware protecting the API.
package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/user/pagamentos-go/apperror"
	"github.com/user/pagamentos-go/models"
	"github.com/user/pagamentos-go/store"
)

// UserLookup is the part of the Account Store the credential service needs.
type UserLookup interface {
	GetUser(ctx context.Context, id int64) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
}

// AuthService authenticates users and hands out tokens.
type AuthService struct {
	users  UserLookup
	tokens *TokenService
	logger *slog.Logger
}

// NewAuthService creates a new AuthService.
func NewAuthService(users UserLookup, tokens *TokenService, logger *slog.Logger) *AuthService {
	return &AuthService{users: users, tokens: tokens, logger: logger}
}

// Login checks the email/password pair and returns a token pair.
// Unknown emails and wrong passwords produce the same error.
func (s *AuthService) Login(ctx context.Context, req LoginRequest) (*TokenResponse, error) {
	user, err := s.users.GetUserByEmail(ctx, strings.ToLower(strings.TrimSpace(req.Email)))
	if errors.Is(err, store.ErrUserNotFound) {
		return nil, apperror.NewAuthError("invalid credentials", nil)
	}
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to load user for login", "error", err)
		return nil, apperror.NewDatabaseError("failed to get user", err)
	}

	ok, err := CheckPassword(user.PasswordHash, req.Password)
	if err != nil {
		return nil, apperror.NewInternalError("failed to verify credentials", err)
	}
	if !ok {
		return nil, apperror.NewAuthError("invalid credentials", nil)
	}

	tokens, err := s.tokens.IssuePair(user.ID, user.Email)
	if err != nil {
		return nil, apperror.NewInternalError("failed to issue tokens", err)
	}
	s.logger.InfoContext(ctx, "user logged in", "user_id", user.ID)
	return tokens, nil
}

// RefreshToken exchanges a valid refresh token for a new access token.
// The refresh token itself is returned unchanged.
func (s *AuthService) RefreshToken(ctx context.Context, refreshToken string) (*TokenResponse, error) {
	claims, err := s.tokens.ValidateRefresh(refreshToken)
	if err != nil {
		return nil, apperror.NewAuthError(fmt.Sprintf("invalid refresh token: %s", err.Error()), err)
	}

	// The account may have been deleted since the refresh token was issued.
	user, err := s.users.GetUser(ctx, claims.UserID)
	if errors.Is(err, store.ErrUserNotFound) {
		return nil, apperror.NewAuthError("invalid refresh token: user no longer exists", nil)
	}
	if err != nil {
		return nil, apperror.NewDatabaseError("failed to get user", err)
	}

	access, _, err := s.tokens.IssueAccess(user.ID, user.Email)
	if err != nil {
		return nil, apperror.NewInternalError("failed to issue tokens", err)
	}
	return &TokenResponse{
		AccessToken:  access,
		RefreshToken: refreshToken,
		TokenType:    "Bearer",
		ExpiresIn:    int64(s.tokens.cfg.AccessTokenDuration.Seconds()),
	}, nil
}
