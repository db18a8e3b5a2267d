package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"

	"github.com/mangaportal/mangaportal-server/internal/domain"
)

// Key prefixes for session storage.
const (
	sessionPrefix      = "session:"
	sessionTokenPrefix = "idx:sessions:token:"
)

// CreateSession stores a new session and its refresh token index.
func (s *Store) CreateSession(_ context.Context, session *domain.Session) error {
	key := []byte(sessionPrefix + session.ID)

	err := s.db.Update(func(txn *badger.Txn) error {
		data, err := json.Marshal(session)
		if err != nil {
			return fmt.Errorf("marshal session: %w", err)
		}

		if err := txn.Set(key, data); err != nil {
			return err
		}

		// Token index: idx:sessions:token:{hash} -> session ID
		tokenKey := []byte(sessionTokenPrefix + session.RefreshTokenHash)
		return txn.Set(tokenKey, []byte(session.ID))
	})
	if err != nil {
		return fmt.Errorf("create session: %w", err)
	}

	if s.logger != nil {
		s.logger.Info("session created", "id", session.ID, "email", session.Email)
	}
	return nil
}

// GetSession retrieves a session by ID.
//
// A value that fails to parse is indistinguishable from an absent one:
// both return ErrSessionNotFound, so a corrupted record simply forces
// the client to authenticate again.
func (s *Store) GetSession(_ context.Context, id string) (*domain.Session, error) {
	key := []byte(sessionPrefix + id)

	var session domain.Session
	if err := s.get(key, &session); err != nil {
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil, ErrSessionNotFound
		}
		if s.logger != nil {
			s.logger.Warn("unreadable session value, treating as absent",
				"id", id, "error", err)
		}
		return nil, ErrSessionNotFound
	}
	if session.ID == "" {
		// Well-formed JSON but not a session record.
		return nil, ErrSessionNotFound
	}

	return &session, nil
}

// GetSessionByRefreshToken looks up a session through the refresh
// token hash index.
func (s *Store) GetSessionByRefreshToken(ctx context.Context, tokenHash string) (*domain.Session, error) {
	var sessionID string
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(sessionTokenPrefix + tokenHash))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			sessionID = string(val)
			return nil
		})
	})
	if err != nil {
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("get session by token: %w", err)
	}

	return s.GetSession(ctx, sessionID)
}

// UpdateSession persists session changes. When the refresh token hash
// changed, the old token index entry is replaced with the new one so
// rotated tokens stop resolving immediately.
func (s *Store) UpdateSession(ctx context.Context, session *domain.Session) error {
	old, err := s.GetSession(ctx, session.ID)
	if err != nil {
		return err
	}

	key := []byte(sessionPrefix + session.ID)

	err = s.db.Update(func(txn *badger.Txn) error {
		data, err := json.Marshal(session)
		if err != nil {
			return fmt.Errorf("marshal session: %w", err)
		}

		if err := txn.Set(key, data); err != nil {
			return err
		}

		if old.RefreshTokenHash != session.RefreshTokenHash {
			if old.RefreshTokenHash != "" {
				if err := txn.Delete([]byte(sessionTokenPrefix + old.RefreshTokenHash)); err != nil {
					return fmt.Errorf("delete old token index: %w", err)
				}
			}
			if err := txn.Set([]byte(sessionTokenPrefix+session.RefreshTokenHash), []byte(session.ID)); err != nil {
				return fmt.Errorf("set token index: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("update session: %w", err)
	}
	return nil
}

// DeleteSession removes a session and its token index entry.
// Deleting a missing session is not an error.
func (s *Store) DeleteSession(ctx context.Context, id string) error {
	session, err := s.GetSession(ctx, id)
	if err != nil {
		if errors.Is(err, ErrSessionNotFound) {
			// Covers malformed records too: drop the raw key so they
			// do not linger forever.
			return s.delete([]byte(sessionPrefix + id))
		}
		return err
	}

	err = s.db.Update(func(txn *badger.Txn) error {
		if err := txn.Delete([]byte(sessionPrefix + id)); err != nil {
			return err
		}
		if session.RefreshTokenHash != "" {
			return txn.Delete([]byte(sessionTokenPrefix + session.RefreshTokenHash))
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("delete session: %w", err)
	}

	if s.logger != nil {
		s.logger.Info("session deleted", "id", id)
	}
	return nil
}

// DeleteExpiredSessions removes every session whose expiry has passed.
// Returns the number of sessions removed.
func (s *Store) DeleteExpiredSessions(ctx context.Context) (int, error) {
	var expired []string

	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(sessionPrefix)
		it := txn.NewIterator(opts)
		defer it.Close()

		now := time.Now()
		for it.Rewind(); it.Valid(); it.Next() {
			item := it.Item()
			if err := item.Value(func(val []byte) error {
				var session domain.Session
				if err := json.Unmarshal(val, &session); err != nil {
					// Unparseable records are stale by definition.
					expired = append(expired, string(item.Key()[len(sessionPrefix):]))
					return nil
				}
				if !session.ExpiresAt.IsZero() && session.ExpiresAt.Before(now) {
					expired = append(expired, session.ID)
				}
				return nil
			}); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("scan sessions: %w", err)
	}

	for _, id := range expired {
		if err := s.DeleteSession(ctx, id); err != nil {
			return 0, err
		}
	}

	if len(expired) > 0 && s.logger != nil {
		s.logger.Info("expired sessions purged", "count", len(expired))
	}
	return len(expired), nil
}
