package api

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/mangaportal/mangaportal-server/internal/service"
)

func (s *Server) registerAuthRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "login",
		Method:      http.MethodPost,
		Path:        "/api/v1/auth/login",
		Summary:     "Log in",
		Description: "Establishes a session for any well-formed email and returns access and refresh tokens. There is no account database: credentials are not checked against stored users.",
		Tags:        []string{"Authentication"},
	}, s.handleLogin)

	huma.Register(s.api, huma.Operation{
		OperationID: "refresh",
		Method:      http.MethodPost,
		Path:        "/api/v1/auth/refresh",
		Summary:     "Refresh tokens",
		Description: "Exchanges a refresh token for new tokens. The old refresh token stops working immediately.",
		Tags:        []string{"Authentication"},
	}, s.handleRefresh)

	huma.Register(s.api, huma.Operation{
		OperationID: "logout",
		Method:      http.MethodPost,
		Path:        "/api/v1/auth/logout",
		Summary:     "Log out",
		Description: "Ends the specified session. Unknown sessions are ignored so stale clients can always log out.",
		Tags:        []string{"Authentication"},
	}, s.handleLogout)

	huma.Register(s.api, huma.Operation{
		OperationID: "me",
		Method:      http.MethodGet,
		Path:        "/api/v1/auth/me",
		Summary:     "Current identity",
		Description: "Returns the identity behind the presented access token",
		Tags:        []string{"Authentication"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleMe)
}

// === DTOs ===

// LoginRequest is the request body for login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,max=254" doc:"User email, any well-formed address"`
	Password string `json:"password" validate:"required,min=6,max=1024" doc:"Password, minimum 6 characters"`
}

// LoginInput wraps the login request with headers for Huma.
type LoginInput struct {
	Body          LoginRequest
	XForwardedFor string `header:"X-Forwarded-For"`
	XRealIP       string `header:"X-Real-IP"`
}

// RefreshRequest is the request body for token refresh.
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required" doc:"Refresh token"`
}

// RefreshInput wraps the refresh request for Huma.
type RefreshInput struct {
	Body RefreshRequest
}

// LogoutRequest is the request body for logout.
type LogoutRequest struct {
	SessionID string `json:"session_id" validate:"required,max=100" doc:"Session ID to end"`
}

// LogoutInput wraps the logout request for Huma.
type LogoutInput struct {
	Body LogoutRequest
}

// IdentityResponse contains the session's identity fields.
type IdentityResponse struct {
	Email string `json:"email" doc:"Email, immutable for the session lifetime"`
	Name  string `json:"name" doc:"Editable display name"`
}

// AuthResponse contains authentication tokens and the identity.
type AuthResponse struct {
	Identity     IdentityResponse `json:"identity" doc:"Session identity"`
	SessionID    string           `json:"session_id" doc:"Session identifier"`
	AccessToken  string           `json:"access_token" doc:"PASETO access token"`
	RefreshToken string           `json:"refresh_token,omitempty" doc:"Refresh token"`
	TokenType    string           `json:"token_type" doc:"Token type (Bearer)"`
	ExpiresAt    time.Time        `json:"expires_at" doc:"Access token expiry"`
}

// AuthOutput wraps the auth response for Huma.
type AuthOutput struct {
	Body AuthResponse
}

// IdentityOutput wraps the identity response for Huma.
type IdentityOutput struct {
	Body IdentityResponse
}

// MessageResponse contains a simple message.
type MessageResponse struct {
	Message string `json:"message" doc:"Success message"`
}

// MessageOutput wraps the message response for Huma.
type MessageOutput struct {
	Body MessageResponse
}

// === Handlers ===

func (s *Server) handleLogin(ctx context.Context, input *LoginInput) (*AuthOutput, error) {
	key := extractIP(input.XForwardedFor, input.XRealIP)
	if !s.authRateLimiter.Allow(key) {
		s.logger.Warn("login rate limit exceeded", "ip", key)
		return nil, huma.Error429TooManyRequests("Too many login attempts. Please try again later.")
	}

	resp, err := s.services.Session.Login(ctx, service.LoginRequest{
		Email:    input.Body.Email,
		Password: input.Body.Password,
	})
	if err != nil {
		return nil, err
	}

	return &AuthOutput{Body: mapAuthResponse(resp)}, nil
}

func (s *Server) handleRefresh(ctx context.Context, input *RefreshInput) (*AuthOutput, error) {
	resp, err := s.services.Session.Refresh(ctx, input.Body.RefreshToken)
	if err != nil {
		return nil, err
	}

	return &AuthOutput{Body: mapAuthResponse(resp)}, nil
}

func (s *Server) handleLogout(ctx context.Context, input *LogoutInput) (*MessageOutput, error) {
	if err := s.services.Session.Logout(ctx, input.Body.SessionID); err != nil {
		return nil, err
	}

	return &MessageOutput{Body: MessageResponse{Message: "Logged out successfully"}}, nil
}

func (s *Server) handleMe(ctx context.Context, _ *struct{}) (*IdentityOutput, error) {
	sessionID, err := RequireSession(ctx)
	if err != nil {
		return nil, err
	}

	identity, err := s.services.Session.Current(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	return &IdentityOutput{
		Body: IdentityResponse{
			Email: identity.Email,
			Name:  identity.Name,
		},
	}, nil
}

// === Helpers ===

func mapAuthResponse(resp *service.AuthResponse) AuthResponse {
	return AuthResponse{
		Identity: IdentityResponse{
			Email: resp.Identity.Email,
			Name:  resp.Identity.Name,
		},
		SessionID:    resp.SessionID,
		AccessToken:  resp.AccessToken,
		RefreshToken: resp.RefreshToken,
		TokenType:    "Bearer",
		ExpiresAt:    resp.ExpiresAt,
	}
}
