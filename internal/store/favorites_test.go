package store

import (
	"context"
	"testing"

	"github.com/dgraph-io/badger/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mangaportal/mangaportal-server/internal/sse"
)

func TestReadFavorites_MissingKeyIsEmpty(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	ids := s.ReadFavorites(ctx, "favorites:nobody@test.com")
	assert.NotNil(t, ids)
	assert.Empty(t, ids)
}

func TestReadFavorites_MalformedValueIsEmpty(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	key := "favorites:reader@test.com"

	// Corrupt the stored value directly, bypassing WriteFavorites.
	err := s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), []byte("{not json"))
	})
	require.NoError(t, err)

	assert.Empty(t, s.ReadFavorites(ctx, key))

	// A write through the normal path repairs the key.
	require.NoError(t, s.WriteFavorites(ctx, key, []string{"one-piece"}))
	assert.Equal(t, []string{"one-piece"}, s.ReadFavorites(ctx, key))
}

func TestWriteFavorites_RoundTripPreservesOrder(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	key := "favorites:reader@test.com"

	want := []string{"one-piece", "naruto", "bleach"}
	require.NoError(t, s.WriteFavorites(ctx, key, want))
	assert.Equal(t, want, s.ReadFavorites(ctx, key))
}

func TestWriteFavorites_NilBecomesEmptyList(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	key := "favorites:reader@test.com"

	require.NoError(t, s.WriteFavorites(ctx, key, nil))
	ids := s.ReadFavorites(ctx, key)
	assert.NotNil(t, ids)
	assert.Empty(t, ids)
}

func TestToggleFavorite_AddRemoveRoundTrip(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	key := "favorites:reader@test.com"

	added, err := s.ToggleFavorite(ctx, key, "one-piece")
	require.NoError(t, err)
	assert.True(t, added)

	added, err = s.ToggleFavorite(ctx, key, "naruto")
	require.NoError(t, err)
	assert.True(t, added)

	assert.Equal(t, []string{"one-piece", "naruto"}, s.ReadFavorites(ctx, key))

	// Removing the first entry keeps the second in place.
	added, err = s.ToggleFavorite(ctx, key, "one-piece")
	require.NoError(t, err)
	assert.False(t, added)
	assert.Equal(t, []string{"naruto"}, s.ReadFavorites(ctx, key))

	// Re-adding appends at the end.
	added, err = s.ToggleFavorite(ctx, key, "one-piece")
	require.NoError(t, err)
	assert.True(t, added)
	assert.Equal(t, []string{"naruto", "one-piece"}, s.ReadFavorites(ctx, key))
}

func TestClearFavorites(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	key := "favorites:reader@test.com"

	require.NoError(t, s.WriteFavorites(ctx, key, []string{"one-piece", "naruto"}))
	require.NoError(t, s.ClearFavorites(ctx, key))

	ids := s.ReadFavorites(ctx, key)
	assert.NotNil(t, ids)
	assert.Empty(t, ids)
}

func TestFavorites_KeysArePartitioned(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.WriteFavorites(ctx, "favorites:a@x.io", []string{"one-piece"}))
	require.NoError(t, s.WriteFavorites(ctx, "favorites:global", []string{"naruto"}))

	assert.Equal(t, []string{"one-piece"}, s.ReadFavorites(ctx, "favorites:a@x.io"))
	assert.Equal(t, []string{"naruto"}, s.ReadFavorites(ctx, "favorites:global"))
	assert.Empty(t, s.ReadFavorites(ctx, "favorites:b@x.io"))
}

func TestSubscribeFavorites_RegistrationOrderFanOut(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	key := "favorites:reader@test.com"

	var order []string
	s.SubscribeFavorites(func(k string, ids []string) {
		order = append(order, "first")
		assert.Equal(t, key, k)
		assert.Equal(t, []string{"one-piece"}, ids)
	})
	s.SubscribeFavorites(func(_ string, _ []string) {
		order = append(order, "second")
	})
	s.SubscribeFavorites(func(_ string, _ []string) {
		order = append(order, "third")
	})

	require.NoError(t, s.WriteFavorites(ctx, key, []string{"one-piece"}))

	// All subscribers ran before WriteFavorites returned, in order.
	assert.Equal(t, []string{"first", "second", "third"}, order)
}

func TestSubscribeFavorites_DisposerStopsDelivery(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	key := "favorites:reader@test.com"

	calls := 0
	unsubscribe := s.SubscribeFavorites(func(_ string, _ []string) {
		calls++
	})

	require.NoError(t, s.WriteFavorites(ctx, key, []string{"one-piece"}))
	assert.Equal(t, 1, calls)

	unsubscribe()
	unsubscribe() // second call is a no-op

	require.NoError(t, s.WriteFavorites(ctx, key, []string{"naruto"}))
	assert.Equal(t, 1, calls)
}

func TestSubscribeFavorites_CallbackGetsOwnCopy(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	key := "favorites:reader@test.com"

	s.SubscribeFavorites(func(_ string, ids []string) {
		if len(ids) > 0 {
			ids[0] = "mutated"
		}
	})
	var seen []string
	s.SubscribeFavorites(func(_ string, ids []string) {
		seen = ids
	})

	require.NoError(t, s.WriteFavorites(ctx, key, []string{"one-piece"}))
	assert.Equal(t, []string{"one-piece"}, seen)
	assert.Equal(t, []string{"one-piece"}, s.ReadFavorites(ctx, key))
}

func TestSubscribeFavorites_PanickingSubscriberIsIsolated(t *testing.T) {
	s, emitter := newCaptureStore(t)
	ctx := context.Background()
	key := "favorites:reader@test.com"

	s.SubscribeFavorites(func(_ string, _ []string) {
		panic("subscriber blew up")
	})
	calls := 0
	s.SubscribeFavorites(func(_ string, _ []string) {
		calls++
	})

	require.NotPanics(t, func() {
		require.NoError(t, s.WriteFavorites(ctx, key, []string{"one-piece"}))
	})

	// Later subscribers and the SSE emit still ran for the write.
	assert.Equal(t, 1, calls)
	assert.Len(t, emitter.events, 1)
	assert.Equal(t, []string{"one-piece"}, s.ReadFavorites(ctx, key))
}

func TestWriteFavorites_EmitsExactlyOneEvent(t *testing.T) {
	s, emitter := newCaptureStore(t)
	ctx := context.Background()
	key := "favorites:reader@test.com"

	require.NoError(t, s.WriteFavorites(ctx, key, []string{"one-piece"}))

	require.Len(t, emitter.events, 1)
	evt, ok := emitter.events[0].(sse.Event)
	require.True(t, ok)
	assert.Equal(t, sse.EventFavoritesChanged, evt.Type)
	assert.Equal(t, key, evt.FavoritesKey)
}

func TestWriteFavorites_FailedWriteNotifiesNothing(t *testing.T) {
	s, emitter := newCaptureStore(t)
	ctx := context.Background()
	key := "favorites:reader@test.com"

	calls := 0
	s.SubscribeFavorites(func(_ string, _ []string) {
		calls++
	})

	require.NoError(t, s.Close())

	err := s.WriteFavorites(ctx, key, []string{"one-piece"})
	require.Error(t, err)
	assert.Zero(t, calls)
	assert.Empty(t, emitter.events)
}

func TestToggleFavorite_EmitsPerWrite(t *testing.T) {
	s, emitter := newCaptureStore(t)
	ctx := context.Background()
	key := "favorites:reader@test.com"

	_, err := s.ToggleFavorite(ctx, key, "one-piece")
	require.NoError(t, err)
	_, err = s.ToggleFavorite(ctx, key, "one-piece")
	require.NoError(t, err)

	assert.Len(t, emitter.events, 2)
}
