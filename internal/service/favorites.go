package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/mangaportal/mangaportal-server/internal/domain"
	domainerrors "github.com/mangaportal/mangaportal-server/internal/errors"
	"github.com/mangaportal/mangaportal-server/internal/store"
)

// FavoritesService manages per-identity favorites lists.
//
// Identity is always an explicit parameter: a nil identity (or one
// without an email) maps to the shared anonymous list, a signed-in
// identity to its own list. The mapping lives in domain.FavoritesKey.
type FavoritesService struct {
	store  *store.Store
	logger *slog.Logger
}

// NewFavoritesService creates a new favorites service.
func NewFavoritesService(store *store.Store, logger *slog.Logger) *FavoritesService {
	return &FavoritesService{
		store:  store,
		logger: logger,
	}
}

// ToggleResult describes the outcome of a toggle operation.
type ToggleResult struct {
	MangaID   string   `json:"manga_id"`
	Added     bool     `json:"added"`
	Message   string   `json:"message"`
	Favorites []string `json:"favorites"`
}

// List returns the identity's favorites resolved to catalog summaries,
// in the order the titles were added. IDs no longer in the catalog are
// skipped but stay stored, in case the title returns in an overlay.
func (s *FavoritesService) List(ctx context.Context, identity *domain.Identity) ([]*Summary, error) {
	key := domain.FavoritesKey(identity)
	ids := s.store.ReadFavorites(ctx, key)

	mangas, err := s.store.GetMangaByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("resolve favorites: %w", err)
	}

	summaries := make([]*Summary, 0, len(mangas))
	for _, manga := range mangas {
		summaries = append(summaries, NewSummary(manga))
	}
	return summaries, nil
}

// IDs returns the raw favorites list for the identity.
func (s *FavoritesService) IDs(ctx context.Context, identity *domain.Identity) []string {
	return s.store.ReadFavorites(ctx, domain.FavoritesKey(identity))
}

// Toggle flips membership of mangaID in the identity's favorites.
// Unknown catalog IDs are rejected.
func (s *FavoritesService) Toggle(ctx context.Context, identity *domain.Identity, mangaID string) (*ToggleResult, error) {
	if _, err := s.store.GetManga(ctx, mangaID); err != nil {
		if errors.Is(err, store.ErrMangaNotFound) {
			return nil, domainerrors.NotFound("manga not found")
		}
		return nil, fmt.Errorf("get manga: %w", err)
	}

	key := domain.FavoritesKey(identity)
	added, err := s.store.ToggleFavorite(ctx, key, mangaID)
	if err != nil {
		return nil, fmt.Errorf("toggle favorite: %w", err)
	}

	message := "removed from favorites"
	if added {
		message = "added to favorites"
	}

	return &ToggleResult{
		MangaID:   mangaID,
		Added:     added,
		Message:   message,
		Favorites: s.store.ReadFavorites(ctx, key),
	}, nil
}

// Clear empties the identity's favorites list.
func (s *FavoritesService) Clear(ctx context.Context, identity *domain.Identity) error {
	key := domain.FavoritesKey(identity)
	if err := s.store.ClearFavorites(ctx, key); err != nil {
		return fmt.Errorf("clear favorites: %w", err)
	}
	s.logger.Info("favorites cleared", "key", key)
	return nil
}

// Subscribe registers a callback for favorites changes. The returned
// function removes the subscription.
func (s *FavoritesService) Subscribe(fn store.FavoritesSubscriber) func() {
	return s.store.SubscribeFavorites(fn)
}
