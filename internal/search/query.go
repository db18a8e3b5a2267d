package search

import (
	"context"
	"fmt"
	"strings"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/search/query"
)

// Params configures a catalog search query.
type Params struct {
	Query string // User's search query

	// Filters (exact match, empty = no filter)
	Genre  string
	Type   string
	Status string

	// Rating range filter (0 = unbounded)
	MinRating float64
	MaxRating float64

	// Pagination
	Limit  int
	Offset int

	// Sorting: "relevance", "title", "rating", "recent"
	SortBy    string
	SortOrder string // "asc", "desc"

	Highlight bool // Include match highlighting
}

// DefaultParams returns sensible defaults.
func DefaultParams() Params {
	return Params{
		Limit:     20,
		Offset:    0,
		SortBy:    "relevance",
		SortOrder: "desc",
		Highlight: true,
	}
}

// Result represents the search results.
type Result struct {
	Query  string `json:"query"`
	Total  uint64 `json:"total"`
	TookMs int64  `json:"took_ms"`
	Hits   []Hit  `json:"hits"`
}

// Hit represents a single search result.
type Hit struct {
	ID         string            `json:"id"`
	Score      float64           `json:"score"`
	Title      string            `json:"title"`
	TitleEn    string            `json:"title_en"`
	Author     string            `json:"author,omitempty"`
	Type       string            `json:"type,omitempty"`
	Status     string            `json:"status,omitempty"`
	Rating     float64           `json:"rating,omitempty"`
	Highlights map[string]string `json:"highlights,omitempty"`
}

// Search executes a search query against the catalog index.
func (s *Index) Search(ctx context.Context, params Params) (*Result, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	searchQuery := buildSearchQuery(params)

	searchRequest := bleve.NewSearchRequestOptions(searchQuery, params.Limit, params.Offset, false)

	addSorting(searchRequest, params)

	if params.Highlight {
		searchRequest.Highlight = bleve.NewHighlight()
		searchRequest.Highlight.AddField("title")
		searchRequest.Highlight.AddField("title_en")
		searchRequest.Highlight.AddField("author")
	}

	searchRequest.Fields = []string{
		"id", "title", "title_en", "author", "type", "status", "rating",
	}

	searchResult, err := s.index.SearchInContext(ctx, searchRequest)
	if err != nil {
		return nil, fmt.Errorf("execute search: %w", err)
	}

	result := &Result{
		Query:  params.Query,
		Total:  searchResult.Total,
		TookMs: searchResult.Took.Milliseconds(),
		Hits:   make([]Hit, 0, len(searchResult.Hits)),
	}

	for _, hit := range searchResult.Hits {
		searchHit := Hit{
			ID:    hit.ID,
			Score: hit.Score,
		}

		if t, ok := hit.Fields["title"].(string); ok {
			searchHit.Title = t
		}
		if t, ok := hit.Fields["title_en"].(string); ok {
			searchHit.TitleEn = t
		}
		if a, ok := hit.Fields["author"].(string); ok {
			searchHit.Author = a
		}
		if t, ok := hit.Fields["type"].(string); ok {
			searchHit.Type = t
		}
		if st, ok := hit.Fields["status"].(string); ok {
			searchHit.Status = st
		}
		if r, ok := hit.Fields["rating"].(float64); ok {
			searchHit.Rating = r
		}

		if len(hit.Fragments) > 0 {
			searchHit.Highlights = make(map[string]string)
			for field, fragments := range hit.Fragments {
				if len(fragments) > 0 {
					searchHit.Highlights[field] = fragments[0]
				}
			}
		}

		result.Hits = append(result.Hits, searchHit)
	}

	return result, nil
}

// buildSearchQuery constructs the Bleve query from params.
func buildSearchQuery(params Params) query.Query {
	var queries []query.Query

	// Main text query across both title languages and the author.
	if params.Query != "" {
		textQueries := []query.Query{}

		titleEnMatch := bleve.NewMatchQuery(params.Query)
		titleEnMatch.SetField("title_en")
		titleEnMatch.SetBoost(3.0)
		textQueries = append(textQueries, titleEnMatch)

		titleMatch := bleve.NewMatchQuery(params.Query)
		titleMatch.SetField("title")
		titleMatch.SetBoost(3.0)
		textQueries = append(textQueries, titleMatch)

		authorMatch := bleve.NewMatchQuery(params.Query)
		authorMatch.SetField("author")
		authorMatch.SetBoost(1.5)
		textQueries = append(textQueries, authorMatch)

		descMatch := bleve.NewMatchQuery(params.Query)
		descMatch.SetField("description")
		descMatch.SetBoost(0.5)
		textQueries = append(textQueries, descMatch)

		// Fuzzy matching for typo tolerance on the English title.
		fuzzyQuery := bleve.NewFuzzyQuery(params.Query)
		fuzzyQuery.SetFuzziness(1)
		fuzzyQuery.SetField("title_en")
		fuzzyQuery.SetBoost(0.8)
		textQueries = append(textQueries, fuzzyQuery)

		// Prefix query for autocomplete (minimum 2 chars).
		if len(params.Query) >= 2 {
			prefixQuery := bleve.NewPrefixQuery(strings.ToLower(params.Query))
			prefixQuery.SetField("title_en")
			prefixQuery.SetBoost(0.5)
			textQueries = append(textQueries, prefixQuery)
		}

		queries = append(queries, bleve.NewDisjunctionQuery(textQueries...))
	}

	// Exact filters, ANDed together.
	if params.Genre != "" {
		gq := bleve.NewTermQuery(params.Genre)
		gq.SetField("genres")
		queries = append(queries, gq)
	}
	if params.Type != "" {
		tq := bleve.NewTermQuery(params.Type)
		tq.SetField("type")
		queries = append(queries, tq)
	}
	if params.Status != "" {
		sq := bleve.NewTermQuery(params.Status)
		sq.SetField("status")
		queries = append(queries, sq)
	}

	// Rating range filter.
	if params.MinRating > 0 || params.MaxRating > 0 {
		min := params.MinRating
		max := params.MaxRating
		if max == 0 {
			max = 10
		}
		rangeQuery := bleve.NewNumericRangeQuery(&min, &max)
		rangeQuery.SetField("rating")
		queries = append(queries, rangeQuery)
	}

	if len(queries) == 0 {
		return bleve.NewMatchAllQuery()
	}
	if len(queries) == 1 {
		return queries[0]
	}
	return bleve.NewConjunctionQuery(queries...)
}

// addSorting configures sort order.
func addSorting(req *bleve.SearchRequest, params Params) {
	switch params.SortBy {
	case "title":
		if params.SortOrder == "desc" {
			req.SortBy([]string{"-title_en"})
		} else {
			req.SortBy([]string{"title_en"})
		}
	case "rating":
		if params.SortOrder == "asc" {
			req.SortBy([]string{"rating"})
		} else {
			req.SortBy([]string{"-rating"})
		}
	case "recent":
		if params.SortOrder == "asc" {
			req.SortBy([]string{"updated_at"})
		} else {
			req.SortBy([]string{"-updated_at"})
		}
	default:
		// Relevance (score) is default.
		req.SortBy([]string{"-_score"})
	}
}
