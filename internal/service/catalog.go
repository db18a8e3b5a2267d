package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"sort"

	"github.com/mangaportal/mangaportal-server/internal/catalog"
	"github.com/mangaportal/mangaportal-server/internal/domain"
	domainerrors "github.com/mangaportal/mangaportal-server/internal/errors"
	"github.com/mangaportal/mangaportal-server/internal/search"
	"github.com/mangaportal/mangaportal-server/internal/store"
)

// Summary is the card view of a catalog entry used in listings.
type Summary struct {
	ID            string             `json:"id"`
	Title         string             `json:"title"`
	TitleEn       string             `json:"title_en"`
	Author        string             `json:"author"`
	Cover         string             `json:"cover"`
	Status        domain.MangaStatus `json:"status"`
	Type          domain.MangaType   `json:"type"`
	Genres        []string           `json:"genres"`
	Rating        float64            `json:"rating"`
	LatestChapter int                `json:"latest_chapter"`
	ChapterCount  int                `json:"chapter_count"`
}

// NewSummary builds a Summary from a catalog entry.
func NewSummary(manga *domain.Manga) *Summary {
	latest := 0
	if ch := manga.LatestChapter(); ch != nil {
		latest = ch.Number
	}
	return &Summary{
		ID:            manga.ID,
		Title:         manga.Title,
		TitleEn:       manga.TitleEn,
		Author:        manga.Author,
		Cover:         manga.Cover,
		Status:        manga.Status,
		Type:          manga.Type,
		Genres:        manga.Genres,
		Rating:        manga.Rating,
		LatestChapter: latest,
		ChapterCount:  len(manga.Chapters),
	}
}

// BrowseFilter narrows a catalog listing. Empty values and the literal
// "all" are wildcards; set filters combine conjunctively.
type BrowseFilter struct {
	Genre  string
	Status string
	Type   string
}

func (f BrowseFilter) matches(manga *domain.Manga) bool {
	if !wildcard(f.Genre) && !manga.HasGenre(f.Genre) {
		return false
	}
	if !wildcard(f.Status) && string(manga.Status) != f.Status {
		return false
	}
	if !wildcard(f.Type) && string(manga.Type) != f.Type {
		return false
	}
	return true
}

func wildcard(v string) bool {
	return v == "" || v == "all"
}

// Genre is a distinct genre label with its catalog frequency.
type Genre struct {
	Name  string `json:"name"`
	Slug  string `json:"slug"`
	Count int    `json:"count"`
}

// ChapterView is the reader payload for one chapter.
type ChapterView struct {
	Manga    *Summary       `json:"manga"`
	Chapter  domain.Chapter `json:"chapter"`
	Pages    []string       `json:"pages"`
	Next     *int           `json:"next,omitempty"`
	Previous *int           `json:"previous,omitempty"`
}

// CatalogService serves catalog listings, details, and search.
type CatalogService struct {
	store  *store.Store
	index  *search.Index
	logger *slog.Logger
}

// NewCatalogService creates a new catalog service.
func NewCatalogService(store *store.Store, index *search.Index, logger *slog.Logger) *CatalogService {
	return &CatalogService{
		store:  store,
		index:  index,
		logger: logger,
	}
}

// Browse lists catalog entries matching the filter, sorted by English
// title for a stable shelf order.
func (s *CatalogService) Browse(ctx context.Context, filter BrowseFilter) ([]*Summary, error) {
	mangas, err := s.store.ListManga(ctx)
	if err != nil {
		return nil, fmt.Errorf("list manga: %w", err)
	}

	summaries := make([]*Summary, 0, len(mangas))
	for _, manga := range mangas {
		if filter.matches(manga) {
			summaries = append(summaries, NewSummary(manga))
		}
	}

	sort.Slice(summaries, func(i, j int) bool {
		return summaries[i].TitleEn < summaries[j].TitleEn
	})
	return summaries, nil
}

// Genres returns every distinct genre in the catalog, sorted by label.
func (s *CatalogService) Genres(ctx context.Context) ([]Genre, error) {
	mangas, err := s.store.ListManga(ctx)
	if err != nil {
		return nil, fmt.Errorf("list manga: %w", err)
	}

	counts := make(map[string]int)
	for _, manga := range mangas {
		for _, genre := range manga.Genres {
			counts[genre]++
		}
	}

	genres := make([]Genre, 0, len(counts))
	for name, count := range counts {
		genres = append(genres, Genre{
			Name:  name,
			Slug:  catalog.Slugify(name),
			Count: count,
		})
	}

	sort.Slice(genres, func(i, j int) bool { return genres[i].Name < genres[j].Name })
	return genres, nil
}

// Latest lists entries ordered by newest chapter number descending.
func (s *CatalogService) Latest(ctx context.Context) ([]*Summary, error) {
	summaries, err := s.Browse(ctx, BrowseFilter{})
	if err != nil {
		return nil, err
	}

	sort.SliceStable(summaries, func(i, j int) bool {
		return summaries[i].LatestChapter > summaries[j].LatestChapter
	})
	return summaries, nil
}

// Popular lists entries ordered by rating descending.
func (s *CatalogService) Popular(ctx context.Context) ([]*Summary, error) {
	summaries, err := s.Browse(ctx, BrowseFilter{})
	if err != nil {
		return nil, err
	}

	sort.SliceStable(summaries, func(i, j int) bool {
		return summaries[i].Rating > summaries[j].Rating
	})
	return summaries, nil
}

// Get returns the full catalog entry.
func (s *CatalogService) Get(ctx context.Context, mangaID string) (*domain.Manga, error) {
	manga, err := s.store.GetManga(ctx, mangaID)
	if err != nil {
		if errors.Is(err, store.ErrMangaNotFound) {
			return nil, domainerrors.NotFound("manga not found")
		}
		return nil, fmt.Errorf("get manga: %w", err)
	}
	return manga, nil
}

// Chapter builds the reader view for one chapter: generated page URLs
// plus next and previous chapter numbers. Chapters are stored newest
// first, so "next" moves towards lower indexes.
func (s *CatalogService) Chapter(ctx context.Context, mangaID string, number int) (*ChapterView, error) {
	manga, err := s.Get(ctx, mangaID)
	if err != nil {
		return nil, err
	}

	chapter := manga.ChapterByNumber(number)
	if chapter == nil {
		return nil, domainerrors.NotFoundf("chapter %d not found", number)
	}

	next, previous := manga.ChapterNeighbors(number)

	pages := make([]string, chapter.Pages)
	for i := range pages {
		pages[i] = pageURL(manga.Title, i+1)
	}

	view := &ChapterView{
		Manga:   NewSummary(manga),
		Chapter: *chapter,
		Pages:   pages,
	}
	if next != nil {
		view.Next = &next.Number
	}
	if previous != nil {
		view.Previous = &previous.Number
	}
	return view, nil
}

// Search queries the full-text index.
func (s *CatalogService) Search(ctx context.Context, query string, limit, offset int) (*search.Result, error) {
	params := search.DefaultParams()
	params.Query = query
	if limit > 0 {
		params.Limit = limit
	}
	if offset > 0 {
		params.Offset = offset
	}
	return s.index.Search(ctx, params)
}

// DocumentCount reports how many entries the search index holds.
func (s *CatalogService) DocumentCount() (uint64, error) {
	return s.index.DocumentCount()
}

// ReindexAll rebuilds the search index from the stored catalog.
func (s *CatalogService) ReindexAll(ctx context.Context) (int, error) {
	mangas, err := s.store.ListManga(ctx)
	if err != nil {
		return 0, fmt.Errorf("list manga: %w", err)
	}

	docs := make([]*search.Document, 0, len(mangas))
	for _, manga := range mangas {
		docs = append(docs, search.NewDocument(manga))
	}
	if err := s.index.IndexDocuments(docs); err != nil {
		return 0, fmt.Errorf("index catalog: %w", err)
	}

	s.logger.Info("catalog reindexed", "entries", len(docs))
	return len(docs), nil
}

// pageURL generates the placeholder URL for one reader page.
func pageURL(title string, page int) string {
	return fmt.Sprintf(
		"https://via.placeholder.com/800x1200/1a1a1a/ffffff?text=%s+-+صفحة+%d",
		url.QueryEscape(title), page)
}
