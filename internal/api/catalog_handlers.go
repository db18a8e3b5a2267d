package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/mangaportal/mangaportal-server/internal/domain"
	"github.com/mangaportal/mangaportal-server/internal/search"
	"github.com/mangaportal/mangaportal-server/internal/service"
)

func (s *Server) registerCatalogRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "browseCatalog",
		Method:      http.MethodGet,
		Path:        "/api/v1/catalog",
		Summary:     "Browse the catalog",
		Description: "Lists catalog entries sorted by English title. Genre, status, and type filters combine conjunctively; empty values and the literal \"all\" are wildcards.",
		Tags:        []string{"Catalog"},
	}, s.handleBrowseCatalog)

	huma.Register(s.api, huma.Operation{
		OperationID: "listGenres",
		Method:      http.MethodGet,
		Path:        "/api/v1/catalog/genres",
		Summary:     "List genres",
		Description: "Returns every distinct genre in the catalog with its frequency",
		Tags:        []string{"Catalog"},
	}, s.handleListGenres)

	huma.Register(s.api, huma.Operation{
		OperationID: "latestCatalog",
		Method:      http.MethodGet,
		Path:        "/api/v1/catalog/latest",
		Summary:     "Latest updates",
		Description: "Lists catalog entries ordered by newest chapter number descending",
		Tags:        []string{"Catalog"},
	}, s.handleLatestCatalog)

	huma.Register(s.api, huma.Operation{
		OperationID: "popularCatalog",
		Method:      http.MethodGet,
		Path:        "/api/v1/catalog/popular",
		Summary:     "Popular titles",
		Description: "Lists catalog entries ordered by rating descending",
		Tags:        []string{"Catalog"},
	}, s.handlePopularCatalog)

	huma.Register(s.api, huma.Operation{
		OperationID: "searchCatalog",
		Method:      http.MethodGet,
		Path:        "/api/v1/catalog/search",
		Summary:     "Search the catalog",
		Description: "Full-text search across titles, authors, and descriptions with fuzzy matching",
		Tags:        []string{"Catalog"},
	}, s.handleSearchCatalog)

	huma.Register(s.api, huma.Operation{
		OperationID: "getManga",
		Method:      http.MethodGet,
		Path:        "/api/v1/catalog/{mangaId}",
		Summary:     "Get a catalog entry",
		Description: "Returns the full catalog entry including its chapter list",
		Tags:        []string{"Catalog"},
	}, s.handleGetManga)

	huma.Register(s.api, huma.Operation{
		OperationID: "getChapter",
		Method:      http.MethodGet,
		Path:        "/api/v1/catalog/{mangaId}/chapters/{number}",
		Summary:     "Read a chapter",
		Description: "Returns the reader view for one chapter: page URLs plus next and previous chapter numbers",
		Tags:        []string{"Catalog"},
	}, s.handleGetChapter)
}

// === DTOs ===

// BrowseInput carries the optional catalog filters.
type BrowseInput struct {
	Genre  string `query:"genre" doc:"Genre filter, empty or \"all\" for any"`
	Status string `query:"status" doc:"Publication status filter, empty or \"all\" for any"`
	Type   string `query:"type" doc:"Title type filter (manga, manhwa, manhua), empty or \"all\" for any"`
}

// CatalogListResponse contains a catalog listing.
type CatalogListResponse struct {
	Manga []*service.Summary `json:"manga" doc:"Catalog entries"`
	Total int                `json:"total" doc:"Number of entries returned"`
}

// CatalogListOutput wraps a catalog listing for Huma.
type CatalogListOutput struct {
	Body CatalogListResponse
}

// GenresResponse contains the distinct genre list.
type GenresResponse struct {
	Genres []service.Genre `json:"genres" doc:"Distinct genres with catalog frequency"`
}

// GenresOutput wraps the genre list for Huma.
type GenresOutput struct {
	Body GenresResponse
}

// SearchInput carries the search query and paging.
type SearchInput struct {
	Query  string `query:"q" doc:"Search query"`
	Limit  int    `query:"limit" doc:"Maximum hits to return (default 20)"`
	Offset int    `query:"offset" doc:"Hits to skip for paging"`
}

// SearchOutput wraps the search result for Huma.
type SearchOutput struct {
	Body search.Result
}

// MangaInput identifies one catalog entry.
type MangaInput struct {
	MangaID string `path:"mangaId" doc:"Catalog entry ID"`
}

// MangaOutput wraps a full catalog entry for Huma.
type MangaOutput struct {
	Body domain.Manga
}

// ChapterInput identifies one chapter of a catalog entry.
type ChapterInput struct {
	MangaID string `path:"mangaId" doc:"Catalog entry ID"`
	Number  int    `path:"number" doc:"Chapter number"`
}

// ChapterOutput wraps the reader view for Huma.
type ChapterOutput struct {
	Body service.ChapterView
}

// === Handlers ===

func (s *Server) handleBrowseCatalog(ctx context.Context, input *BrowseInput) (*CatalogListOutput, error) {
	summaries, err := s.services.Catalog.Browse(ctx, service.BrowseFilter{
		Genre:  input.Genre,
		Status: input.Status,
		Type:   input.Type,
	})
	if err != nil {
		return nil, err
	}

	return &CatalogListOutput{
		Body: CatalogListResponse{Manga: summaries, Total: len(summaries)},
	}, nil
}

func (s *Server) handleListGenres(ctx context.Context, _ *struct{}) (*GenresOutput, error) {
	genres, err := s.services.Catalog.Genres(ctx)
	if err != nil {
		return nil, err
	}

	return &GenresOutput{Body: GenresResponse{Genres: genres}}, nil
}

func (s *Server) handleLatestCatalog(ctx context.Context, _ *struct{}) (*CatalogListOutput, error) {
	summaries, err := s.services.Catalog.Latest(ctx)
	if err != nil {
		return nil, err
	}

	return &CatalogListOutput{
		Body: CatalogListResponse{Manga: summaries, Total: len(summaries)},
	}, nil
}

func (s *Server) handlePopularCatalog(ctx context.Context, _ *struct{}) (*CatalogListOutput, error) {
	summaries, err := s.services.Catalog.Popular(ctx)
	if err != nil {
		return nil, err
	}

	return &CatalogListOutput{
		Body: CatalogListResponse{Manga: summaries, Total: len(summaries)},
	}, nil
}

func (s *Server) handleSearchCatalog(ctx context.Context, input *SearchInput) (*SearchOutput, error) {
	result, err := s.services.Catalog.Search(ctx, input.Query, input.Limit, input.Offset)
	if err != nil {
		return nil, err
	}

	return &SearchOutput{Body: *result}, nil
}

func (s *Server) handleGetManga(ctx context.Context, input *MangaInput) (*MangaOutput, error) {
	manga, err := s.services.Catalog.Get(ctx, input.MangaID)
	if err != nil {
		return nil, err
	}

	return &MangaOutput{Body: *manga}, nil
}

func (s *Server) handleGetChapter(ctx context.Context, input *ChapterInput) (*ChapterOutput, error) {
	view, err := s.services.Catalog.Chapter(ctx, input.MangaID, input.Number)
	if err != nil {
		return nil, err
	}

	return &ChapterOutput{Body: *view}, nil
}
