// Package service implements the application logic between the HTTP
// API and the store.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"time"

	"github.com/mangaportal/mangaportal-server/internal/auth"
	"github.com/mangaportal/mangaportal-server/internal/domain"
	domainerrors "github.com/mangaportal/mangaportal-server/internal/errors"
	"github.com/mangaportal/mangaportal-server/internal/id"
	"github.com/mangaportal/mangaportal-server/internal/store"
	"github.com/mangaportal/mangaportal-server/internal/validation"
)

// emailPattern accepts any local@domain.tld shape without whitespace.
// There is no account database: a well-formed email plus any password
// of sufficient length establishes a session.
var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// SessionService handles login, token refresh, and profile updates.
type SessionService struct {
	store     *store.Store
	tokens    *auth.TokenService
	validator *validation.Validator
	logger    *slog.Logger
}

// NewSessionService creates a new session service.
func NewSessionService(
	store *store.Store,
	tokens *auth.TokenService,
	validator *validation.Validator,
	logger *slog.Logger,
) *SessionService {
	return &SessionService{
		store:     store,
		tokens:    tokens,
		validator: validator,
		logger:    logger,
	}
}

// LoginRequest contains the credentials supplied at login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required,min=6"`
}

// AuthResponse contains the established session and its tokens.
type AuthResponse struct {
	Identity     domain.Identity `json:"identity"`
	SessionID    string          `json:"session_id"`
	AccessToken  string          `json:"access_token"`
	RefreshToken string          `json:"refresh_token"`
	ExpiresAt    time.Time       `json:"expires_at"`
}

// Login establishes a session for the given credentials.
//
// The display name is derived from the email's local part, with dots,
// underscores, and hyphens replaced by spaces.
func (s *SessionService) Login(ctx context.Context, req LoginRequest) (*AuthResponse, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}
	if !emailPattern.MatchString(req.Email) {
		return nil, domainerrors.Validation("email is not well-formed")
	}

	sessionID, err := id.Generate("ses")
	if err != nil {
		return nil, fmt.Errorf("generate session ID: %w", err)
	}

	refreshToken, err := s.tokens.GenerateRefreshToken()
	if err != nil {
		return nil, fmt.Errorf("generate refresh token: %w", err)
	}

	now := time.Now()
	session := &domain.Session{
		ID:               sessionID,
		Email:            req.Email,
		Name:             domain.DeriveDisplayName(req.Email),
		RefreshTokenHash: auth.HashRefreshToken(refreshToken),
		CreatedAt:        now,
		LastSeenAt:       now,
		ExpiresAt:        now.Add(s.tokens.RefreshTokenDuration()),
	}

	if err := s.store.CreateSession(ctx, session); err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}

	accessToken, err := s.tokens.GenerateAccessToken(session)
	if err != nil {
		return nil, fmt.Errorf("generate access token: %w", err)
	}

	s.logger.Info("user logged in", "email", session.Email, "session_id", session.ID)

	return &AuthResponse{
		Identity:     *session.Identity(),
		SessionID:    session.ID,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresAt:    now.Add(s.tokens.AccessTokenDuration()),
	}, nil
}

// Refresh exchanges a valid refresh token for new tokens.
// The refresh token rotates: the old one stops working immediately.
func (s *SessionService) Refresh(ctx context.Context, refreshToken string) (*AuthResponse, error) {
	session, err := s.store.GetSessionByRefreshToken(ctx, auth.HashRefreshToken(refreshToken))
	if err != nil {
		if errors.Is(err, store.ErrSessionNotFound) {
			return nil, domainerrors.Unauthorized("invalid refresh token")
		}
		return nil, fmt.Errorf("lookup session: %w", err)
	}

	if session.IsExpired() {
		_ = s.store.DeleteSession(ctx, session.ID)
		return nil, domainerrors.TokenExpired("session expired, please log in again")
	}

	newRefreshToken, err := s.tokens.GenerateRefreshToken()
	if err != nil {
		return nil, fmt.Errorf("generate refresh token: %w", err)
	}

	now := time.Now()
	session.RefreshTokenHash = auth.HashRefreshToken(newRefreshToken)
	session.Touch()
	session.ExpiresAt = now.Add(s.tokens.RefreshTokenDuration())

	if err := s.store.UpdateSession(ctx, session); err != nil {
		return nil, fmt.Errorf("update session: %w", err)
	}

	accessToken, err := s.tokens.GenerateAccessToken(session)
	if err != nil {
		return nil, fmt.Errorf("generate access token: %w", err)
	}

	return &AuthResponse{
		Identity:     *session.Identity(),
		SessionID:    session.ID,
		AccessToken:  accessToken,
		RefreshToken: newRefreshToken,
		ExpiresAt:    now.Add(s.tokens.AccessTokenDuration()),
	}, nil
}

// Logout ends the session. Unknown session IDs are not an error so a
// stale client can always log out cleanly.
func (s *SessionService) Logout(ctx context.Context, sessionID string) error {
	if err := s.store.DeleteSession(ctx, sessionID); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	s.logger.Info("user logged out", "session_id", sessionID)
	return nil
}

// UpdateNameRequest contains the editable profile fields.
// The email is immutable for the lifetime of the session.
type UpdateNameRequest struct {
	Name string `json:"name" validate:"required,min=1,max=120"`
}

// UpdateName changes the session's display name and issues a fresh
// access token carrying the new name.
func (s *SessionService) UpdateName(ctx context.Context, sessionID string, req UpdateNameRequest) (*AuthResponse, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	session, err := s.store.GetSession(ctx, sessionID)
	if err != nil {
		if errors.Is(err, store.ErrSessionNotFound) {
			return nil, domainerrors.Unauthorized("session not found")
		}
		return nil, fmt.Errorf("get session: %w", err)
	}

	session.Name = req.Name
	session.Touch()

	if err := s.store.UpdateSession(ctx, session); err != nil {
		return nil, fmt.Errorf("update session: %w", err)
	}

	accessToken, err := s.tokens.GenerateAccessToken(session)
	if err != nil {
		return nil, fmt.Errorf("generate access token: %w", err)
	}

	return &AuthResponse{
		Identity:    *session.Identity(),
		SessionID:   session.ID,
		AccessToken: accessToken,
		ExpiresAt:   time.Now().Add(s.tokens.AccessTokenDuration()),
	}, nil
}

// Current returns the identity behind an active session.
func (s *SessionService) Current(ctx context.Context, sessionID string) (*domain.Identity, error) {
	session, err := s.store.GetSession(ctx, sessionID)
	if err != nil {
		if errors.Is(err, store.ErrSessionNotFound) {
			return nil, domainerrors.Unauthorized("session not found")
		}
		return nil, fmt.Errorf("get session: %w", err)
	}

	return session.Identity(), nil
}

// VerifyAccessToken validates an access token and returns its identity.
func (s *SessionService) VerifyAccessToken(token string) (*domain.Identity, string, error) {
	claims, err := s.tokens.VerifyAccessToken(token)
	if err != nil {
		return nil, "", domainerrors.Unauthorized("invalid or expired token")
	}
	return &domain.Identity{Email: claims.Email, Name: claims.Name}, claims.SessionID, nil
}
