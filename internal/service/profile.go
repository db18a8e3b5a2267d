package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/mangaportal/mangaportal-server/internal/color"
	"github.com/mangaportal/mangaportal-server/internal/domain"
	domainerrors "github.com/mangaportal/mangaportal-server/internal/errors"
	"github.com/mangaportal/mangaportal-server/internal/media/images"
	"github.com/mangaportal/mangaportal-server/internal/store"
)

// ProfileService manages avatars and the aggregate profile view.
type ProfileService struct {
	store     *store.Store
	processor *images.Processor
	logger    *slog.Logger
}

// NewProfileService creates a new profile service.
func NewProfileService(store *store.Store, processor *images.Processor, logger *slog.Logger) *ProfileService {
	return &ProfileService{
		store:     store,
		processor: processor,
		logger:    logger,
	}
}

// SetImage validates and stores an uploaded avatar for the identity.
func (s *ProfileService) SetImage(ctx context.Context, identity *domain.Identity, dataURI string) (*domain.ProfileImage, error) {
	processed, err := s.processor.Process(dataURI)
	if err != nil {
		return nil, err
	}

	email := ""
	if identity != nil {
		email = identity.Email
	}

	image := &domain.ProfileImage{
		Email:     email,
		Data:      processed.DataURI,
		BlurHash:  processed.BlurHash,
		UpdatedAt: time.Now(),
	}

	key := domain.FavoritesKey(identity)
	if err := s.store.SaveProfileImage(ctx, key, image); err != nil {
		return nil, err
	}

	s.logger.Info("profile image updated",
		"key", key,
		"format", processed.Format,
		"dimensions", fmt.Sprintf("%dx%d", processed.Width, processed.Height))
	return image, nil
}

// GetImage returns the stored avatar for the identity.
func (s *ProfileService) GetImage(ctx context.Context, identity *domain.Identity) (*domain.ProfileImage, error) {
	image, err := s.store.GetProfileImage(ctx, domain.FavoritesKey(identity))
	if err != nil {
		if errors.Is(err, store.ErrProfileNotFound) {
			return nil, domainerrors.NotFound("no profile image set")
		}
		return nil, fmt.Errorf("get profile image: %w", err)
	}
	return image, nil
}

// DeleteImage removes the identity's avatar.
func (s *ProfileService) DeleteImage(ctx context.Context, identity *domain.Identity) error {
	return s.store.DeleteProfileImage(ctx, domain.FavoritesKey(identity))
}

// View assembles the profile: identity fields, the deterministic
// avatar color derived from the email, and the stored image if any.
func (s *ProfileService) View(ctx context.Context, identity *domain.Identity) (*domain.Profile, error) {
	email := ""
	name := ""
	if identity != nil {
		email = identity.Email
		name = identity.Name
	}

	profile := &domain.Profile{
		Email:       email,
		Name:        name,
		AvatarColor: color.ForEmail(email),
	}

	image, err := s.store.GetProfileImage(ctx, domain.FavoritesKey(identity))
	if err == nil {
		profile.Image = image.Data
		profile.ImageBlur = image.BlurHash
	} else if !errors.Is(err, store.ErrProfileNotFound) {
		return nil, fmt.Errorf("get profile image: %w", err)
	}

	return profile, nil
}
