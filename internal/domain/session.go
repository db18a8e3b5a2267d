package domain

import "time"

// Session is a server-side login session record.
//
// Login is deliberately credential-free: any well-formed email plus a
// password of at least six characters creates a session. The session
// exists so tokens can be revoked on logout and so profile edits have
// a place to live.
type Session struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`

	// RefreshTokenHash is the hash of the opaque refresh token.
	// Raw tokens are never stored.
	RefreshTokenHash string `json:"refreshTokenHash"`

	CreatedAt  time.Time `json:"createdAt"`
	LastSeenAt time.Time `json:"lastSeenAt"`
	ExpiresAt  time.Time `json:"expiresAt"`
}

// Identity returns the session's identity.
func (s *Session) Identity() *Identity {
	return &Identity{Email: s.Email, Name: s.Name}
}

// IsExpired reports whether the session has passed its expiry.
func (s *Session) IsExpired() bool {
	return time.Now().After(s.ExpiresAt)
}

// Touch updates the last seen timestamp.
func (s *Session) Touch() {
	s.LastSeenAt = time.Now()
}
