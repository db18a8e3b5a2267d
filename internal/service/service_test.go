package service

import (
	"context"
	"encoding/hex"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/mangaportal/mangaportal-server/internal/auth"
	"github.com/mangaportal/mangaportal-server/internal/catalog"
	"github.com/mangaportal/mangaportal-server/internal/search"
	"github.com/mangaportal/mangaportal-server/internal/store"
	"github.com/mangaportal/mangaportal-server/internal/validation"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

func newTestStore(t *testing.T) *store.Store {
	t.Helper()

	s, err := store.New(t.TempDir(), nil, store.NewNoopEmitter())
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func newTestTokens(t *testing.T) *auth.TokenService {
	t.Helper()

	key, err := auth.LoadOrGenerateKey(t.TempDir())
	require.NoError(t, err)

	tokens, err := auth.NewTokenService(hex.EncodeToString(key), 15*time.Minute, 720*time.Hour)
	require.NoError(t, err)
	return tokens
}

func newTestSessionService(t *testing.T) *SessionService {
	t.Helper()
	return NewSessionService(newTestStore(t), newTestTokens(t), validation.New(), testLogger())
}

// newSeededCatalogService builds a catalog service over a seeded store
// with a live search index.
func newSeededCatalogService(t *testing.T) (*CatalogService, *store.Store) {
	t.Helper()

	s := newTestStore(t)

	index, err := search.NewIndex(search.Options{DataPath: t.TempDir(), Logger: testLogger()})
	require.NoError(t, err)
	t.Cleanup(func() { _ = index.Close() })
	s.SetSearchIndexer(index)

	_, err = catalog.Seed(context.Background(), s)
	require.NoError(t, err)

	return NewCatalogService(s, index, testLogger()), s
}
