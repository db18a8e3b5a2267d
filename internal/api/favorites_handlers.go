package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/mangaportal/mangaportal-server/internal/service"
)

func (s *Server) registerFavoritesRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "listFavorites",
		Method:      http.MethodGet,
		Path:        "/api/v1/favorites",
		Summary:     "List favorites",
		Description: "Returns the caller's favorites resolved to catalog entries, in the order they were added. Anonymous callers share one global list.",
		Tags:        []string{"Favorites"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleListFavorites)

	huma.Register(s.api, huma.Operation{
		OperationID: "toggleFavorite",
		Method:      http.MethodPost,
		Path:        "/api/v1/favorites/{mangaId}/toggle",
		Summary:     "Toggle a favorite",
		Description: "Flips membership of the title in the caller's favorites. Re-added titles go to the end of the list.",
		Tags:        []string{"Favorites"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleToggleFavorite)

	huma.Register(s.api, huma.Operation{
		OperationID: "clearFavorites",
		Method:      http.MethodDelete,
		Path:        "/api/v1/favorites",
		Summary:     "Clear favorites",
		Description: "Empties the caller's favorites list",
		Tags:        []string{"Favorites"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleClearFavorites)
}

// === DTOs ===

// FavoritesResponse contains the resolved favorites list.
type FavoritesResponse struct {
	Favorites []*service.Summary `json:"favorites" doc:"Favorites resolved to catalog entries, insertion order"`
	IDs       []string           `json:"ids" doc:"Raw favorite IDs, including titles not currently in the catalog"`
}

// FavoritesOutput wraps the favorites list for Huma.
type FavoritesOutput struct {
	Body FavoritesResponse
}

// ToggleFavoriteInput identifies the title to toggle.
type ToggleFavoriteInput struct {
	MangaID string `path:"mangaId" doc:"Catalog entry ID"`
}

// ToggleFavoriteOutput wraps the toggle result for Huma.
type ToggleFavoriteOutput struct {
	Body service.ToggleResult
}

// === Handlers ===

func (s *Server) handleListFavorites(ctx context.Context, _ *struct{}) (*FavoritesOutput, error) {
	identity := IdentityFromContext(ctx)

	favorites, err := s.services.Favorites.List(ctx, identity)
	if err != nil {
		return nil, err
	}

	return &FavoritesOutput{
		Body: FavoritesResponse{
			Favorites: favorites,
			IDs:       s.services.Favorites.IDs(ctx, identity),
		},
	}, nil
}

func (s *Server) handleToggleFavorite(ctx context.Context, input *ToggleFavoriteInput) (*ToggleFavoriteOutput, error) {
	result, err := s.services.Favorites.Toggle(ctx, IdentityFromContext(ctx), input.MangaID)
	if err != nil {
		return nil, err
	}

	return &ToggleFavoriteOutput{Body: *result}, nil
}

func (s *Server) handleClearFavorites(ctx context.Context, _ *struct{}) (*MessageOutput, error) {
	if err := s.services.Favorites.Clear(ctx, IdentityFromContext(ctx)); err != nil {
		return nil, err
	}

	return &MessageOutput{Body: MessageResponse{Message: "Favorites cleared"}}, nil
}
