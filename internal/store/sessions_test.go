package store

import (
	"context"
	"testing"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mangaportal/mangaportal-server/internal/domain"
)

func testSession(id, email string) *domain.Session {
	now := time.Now()
	return &domain.Session{
		ID:               id,
		Email:            email,
		Name:             domain.DeriveDisplayName(email),
		RefreshTokenHash: "hash-" + id,
		CreatedAt:        now,
		LastSeenAt:       now,
		ExpiresAt:        now.Add(time.Hour),
	}
}

func TestSession_CreateGetRoundTrip(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	session := testSession("ses-1", "reader@test.com")
	require.NoError(t, s.CreateSession(ctx, session))

	got, err := s.GetSession(ctx, "ses-1")
	require.NoError(t, err)
	assert.Equal(t, "reader@test.com", got.Email)
	assert.Equal(t, "reader", got.Name)
}

func TestGetSession_NotFound(t *testing.T) {
	s := newTestStore(t)

	_, err := s.GetSession(context.Background(), "ses-missing")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestGetSession_MalformedValueIsAbsent(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	err := s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(sessionPrefix+"ses-bad"), []byte("garbage"))
	})
	require.NoError(t, err)

	_, err = s.GetSession(ctx, "ses-bad")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestGetSessionByRefreshToken(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	session := testSession("ses-1", "reader@test.com")
	require.NoError(t, s.CreateSession(ctx, session))

	got, err := s.GetSessionByRefreshToken(ctx, "hash-ses-1")
	require.NoError(t, err)
	assert.Equal(t, "ses-1", got.ID)

	_, err = s.GetSessionByRefreshToken(ctx, "hash-unknown")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestUpdateSession_RotatesTokenIndex(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	session := testSession("ses-1", "reader@test.com")
	require.NoError(t, s.CreateSession(ctx, session))

	session.RefreshTokenHash = "hash-rotated"
	require.NoError(t, s.UpdateSession(ctx, session))

	got, err := s.GetSessionByRefreshToken(ctx, "hash-rotated")
	require.NoError(t, err)
	assert.Equal(t, "ses-1", got.ID)

	// Old token no longer resolves.
	_, err = s.GetSessionByRefreshToken(ctx, "hash-ses-1")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestDeleteSession(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	session := testSession("ses-1", "reader@test.com")
	require.NoError(t, s.CreateSession(ctx, session))
	require.NoError(t, s.DeleteSession(ctx, "ses-1"))

	_, err := s.GetSession(ctx, "ses-1")
	assert.ErrorIs(t, err, ErrSessionNotFound)
	_, err = s.GetSessionByRefreshToken(ctx, "hash-ses-1")
	assert.ErrorIs(t, err, ErrSessionNotFound)

	// Deleting again is a no-op.
	assert.NoError(t, s.DeleteSession(ctx, "ses-1"))
}

func TestDeleteExpiredSessions(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	live := testSession("ses-live", "a@x.io")
	require.NoError(t, s.CreateSession(ctx, live))

	expired := testSession("ses-expired", "b@x.io")
	expired.ExpiresAt = time.Now().Add(-time.Minute)
	require.NoError(t, s.CreateSession(ctx, expired))

	removed, err := s.DeleteExpiredSessions(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, removed)

	_, err = s.GetSession(ctx, "ses-live")
	assert.NoError(t, err)
	_, err = s.GetSession(ctx, "ses-expired")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}
