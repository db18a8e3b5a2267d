package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/dgraph-io/badger/v4"

	"github.com/mangaportal/mangaportal-server/internal/domain"
	"github.com/mangaportal/mangaportal-server/internal/sse"
)

// ReadFavorites returns the favorites list stored under key.
//
// Reads never fail from the caller's perspective: a missing key,
// a corrupted value, or a storage error all yield an empty list.
// The list always reflects persisted state, never in-flight writes.
func (s *Store) ReadFavorites(_ context.Context, key string) []string {
	var ids []string
	if err := s.get([]byte(key), &ids); err != nil {
		if !errors.Is(err, badger.ErrKeyNotFound) && s.logger != nil {
			s.logger.Warn("unreadable favorites value, treating as empty",
				"key", key, "error", err)
		}
		return []string{}
	}
	if ids == nil {
		return []string{}
	}
	return ids
}

// WriteFavorites persists ids under key, replacing any previous list.
// On success it notifies subscribers synchronously in registration
// order, then emits a favorites.changed SSE event. Exactly one
// notification cycle runs per successful write. On failure nothing is
// notified and the previously stored list is untouched.
func (s *Store) WriteFavorites(_ context.Context, key string, ids []string) error {
	if ids == nil {
		ids = []string{}
	}

	if err := s.set([]byte(key), ids); err != nil {
		return fmt.Errorf("write favorites: %w", err)
	}

	s.notifyFavorites(key, ids)
	s.eventEmitter.Emit(sse.NewFavoritesChangedEvent(key))

	if s.logger != nil {
		s.logger.Debug("favorites written", "key", key, "count", len(ids))
	}
	return nil
}

// ToggleFavorite flips membership of mangaID in the list stored under
// key and persists the result. It returns the new membership state:
// true when the id was added, false when it was removed.
//
// The read-modify-write cycle runs under a store-level mutex so
// concurrent toggles on the same id cannot interleave.
func (s *Store) ToggleFavorite(ctx context.Context, key, mangaID string) (bool, error) {
	s.favMu.Lock()
	defer s.favMu.Unlock()

	current := s.ReadFavorites(ctx, key)
	next, added := domain.ToggleFavoriteID(current, mangaID)

	if err := s.WriteFavorites(ctx, key, next); err != nil {
		return false, err
	}
	return added, nil
}

// ClearFavorites replaces the list under key with an empty one.
// Subscribers observe the clear like any other write.
func (s *Store) ClearFavorites(ctx context.Context, key string) error {
	return s.WriteFavorites(ctx, key, []string{})
}

// SubscribeFavorites registers fn to run after every successful
// favorites write. The returned function removes the subscription;
// calling it more than once is a no-op. Remaining subscribers keep
// their relative registration order.
func (s *Store) SubscribeFavorites(fn FavoritesSubscriber) func() {
	s.subMu.Lock()
	id := s.nextSubID
	s.nextSubID++
	s.subscribers = append(s.subscribers, favoritesSubscription{fn: fn, id: id})
	s.subMu.Unlock()

	var once bool
	return func() {
		s.subMu.Lock()
		defer s.subMu.Unlock()
		if once {
			return
		}
		once = true
		for i, sub := range s.subscribers {
			if sub.id == id {
				s.subscribers = append(s.subscribers[:i], s.subscribers[i+1:]...)
				return
			}
		}
	}
}

// notifyFavorites invokes subscribers synchronously in registration
// order. Each subscriber gets its own copy of the list so one callback
// cannot corrupt what the next one sees. A panicking subscriber is
// recovered and logged so the remaining subscribers and the SSE emit
// still run; the write has already persisted at this point.
func (s *Store) notifyFavorites(key string, ids []string) {
	s.subMu.Lock()
	subs := make([]favoritesSubscription, len(s.subscribers))
	copy(subs, s.subscribers)
	s.subMu.Unlock()

	for _, sub := range subs {
		snapshot := make([]string, len(ids))
		copy(snapshot, ids)
		s.notifyOne(sub, key, snapshot)
	}
}

func (s *Store) notifyOne(sub favoritesSubscription, key string, ids []string) {
	defer func() {
		if r := recover(); r != nil && s.logger != nil {
			s.logger.Warn("favorites subscriber panicked",
				"key", key, "panic", r)
		}
	}()
	sub.fn(key, ids)
}
