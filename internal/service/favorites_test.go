package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mangaportal/mangaportal-server/internal/catalog"
	"github.com/mangaportal/mangaportal-server/internal/domain"
)

func newSeededFavoritesService(t *testing.T) *FavoritesService {
	t.Helper()

	s := newTestStore(t)
	_, err := catalog.Seed(context.Background(), s)
	require.NoError(t, err)
	return NewFavoritesService(s, testLogger())
}

func TestToggle_AddsAndRemoves(t *testing.T) {
	svc := newSeededFavoritesService(t)
	ctx := context.Background()
	identity := &domain.Identity{Email: "reader@test.com", Name: "reader"}

	result, err := svc.Toggle(ctx, identity, "one-piece")
	require.NoError(t, err)
	assert.True(t, result.Added)
	assert.Equal(t, "added to favorites", result.Message)
	assert.Equal(t, []string{"one-piece"}, result.Favorites)

	result, err = svc.Toggle(ctx, identity, "one-piece")
	require.NoError(t, err)
	assert.False(t, result.Added)
	assert.Equal(t, "removed from favorites", result.Message)
	assert.Empty(t, result.Favorites)
}

func TestToggle_RejectsUnknownManga(t *testing.T) {
	svc := newSeededFavoritesService(t)

	_, err := svc.Toggle(context.Background(), nil, "not-in-catalog")
	assert.Error(t, err)
}

func TestToggle_ReAddMovesToEnd(t *testing.T) {
	svc := newSeededFavoritesService(t)
	ctx := context.Background()
	identity := &domain.Identity{Email: "reader@test.com"}

	for _, id := range []string{"one-piece", "naruto"} {
		_, err := svc.Toggle(ctx, identity, id)
		require.NoError(t, err)
	}

	// Remove and re-add one-piece: it ends up after naruto.
	_, err := svc.Toggle(ctx, identity, "one-piece")
	require.NoError(t, err)
	result, err := svc.Toggle(ctx, identity, "one-piece")
	require.NoError(t, err)
	assert.Equal(t, []string{"naruto", "one-piece"}, result.Favorites)
}

func TestList_ResolvesSummariesInOrder(t *testing.T) {
	svc := newSeededFavoritesService(t)
	ctx := context.Background()
	identity := &domain.Identity{Email: "reader@test.com"}

	for _, id := range []string{"naruto", "one-piece", "bleach"} {
		_, err := svc.Toggle(ctx, identity, id)
		require.NoError(t, err)
	}

	list, err := svc.List(ctx, identity)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "naruto", list[0].ID)
	assert.Equal(t, "one-piece", list[1].ID)
	assert.Equal(t, "bleach", list[2].ID)
	assert.Equal(t, "Naruto", list[0].TitleEn)
}

func TestFavorites_AnonymousAndSignedInArePartitioned(t *testing.T) {
	svc := newSeededFavoritesService(t)
	ctx := context.Background()

	reader := &domain.Identity{Email: "reader@test.com"}

	_, err := svc.Toggle(ctx, reader, "one-piece")
	require.NoError(t, err)
	_, err = svc.Toggle(ctx, nil, "naruto")
	require.NoError(t, err)

	assert.Equal(t, []string{"one-piece"}, svc.IDs(ctx, reader))
	assert.Equal(t, []string{"naruto"}, svc.IDs(ctx, nil))

	// An identity without an email shares the anonymous list.
	assert.Equal(t, []string{"naruto"}, svc.IDs(ctx, &domain.Identity{}))
}

func TestClear(t *testing.T) {
	svc := newSeededFavoritesService(t)
	ctx := context.Background()
	identity := &domain.Identity{Email: "reader@test.com"}

	_, err := svc.Toggle(ctx, identity, "one-piece")
	require.NoError(t, err)

	require.NoError(t, svc.Clear(ctx, identity))
	assert.Empty(t, svc.IDs(ctx, identity))
}

func TestSubscribe_SeesServiceWrites(t *testing.T) {
	svc := newSeededFavoritesService(t)
	ctx := context.Background()
	identity := &domain.Identity{Email: "reader@test.com"}

	var gotKey string
	var gotIDs []string
	unsubscribe := svc.Subscribe(func(key string, ids []string) {
		gotKey = key
		gotIDs = ids
	})
	defer unsubscribe()

	_, err := svc.Toggle(ctx, identity, "one-piece")
	require.NoError(t, err)

	assert.Equal(t, "favorites:reader@test.com", gotKey)
	assert.Equal(t, []string{"one-piece"}, gotIDs)
}
