package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/dgraph-io/badger/v4"

	"github.com/mangaportal/mangaportal-server/internal/domain"
	"github.com/mangaportal/mangaportal-server/internal/sse"
)

// Key prefix for profile image storage. The suffix is the identity's
// favorites key so anonymous and signed-in avatars share one scheme.
const profileImagePrefix = "profile:image:"

// SaveProfileImage stores the avatar for the given favorites key and
// emits a profile.updated event scoped to it.
func (s *Store) SaveProfileImage(_ context.Context, key string, image *domain.ProfileImage) error {
	if err := s.set([]byte(profileImagePrefix+key), image); err != nil {
		return fmt.Errorf("save profile image: %w", err)
	}

	s.eventEmitter.Emit(sse.NewProfileUpdatedEvent(key))

	if s.logger != nil {
		s.logger.Debug("profile image saved", "key", key, "bytes", len(image.Data))
	}
	return nil
}

// GetProfileImage retrieves the avatar stored for the given favorites key.
func (s *Store) GetProfileImage(_ context.Context, key string) (*domain.ProfileImage, error) {
	var image domain.ProfileImage
	if err := s.get([]byte(profileImagePrefix+key), &image); err != nil {
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, fmt.Errorf("get profile image: %w", err)
	}
	return &image, nil
}

// DeleteProfileImage removes the stored avatar. Removing a missing
// avatar is not an error.
func (s *Store) DeleteProfileImage(_ context.Context, key string) error {
	if err := s.delete([]byte(profileImagePrefix + key)); err != nil {
		return fmt.Errorf("delete profile image: %w", err)
	}

	s.eventEmitter.Emit(sse.NewProfileUpdatedEvent(key))
	return nil
}
