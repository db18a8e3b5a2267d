package search

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mangaportal/mangaportal-server/internal/domain"
)

// setupTestIndex creates a temporary search index for testing.
func setupTestIndex(t *testing.T) (*Index, func()) {
	t.Helper()

	tmpDir, err := os.MkdirTemp("", "search-test-*")
	require.NoError(t, err)

	index, err := NewIndex(Options{
		DataPath: tmpDir,
		Logger:   nil,
	})
	require.NoError(t, err)

	cleanup := func() {
		_ = index.Close()
		_ = os.RemoveAll(tmpDir)
	}

	return index, cleanup
}

func seedDocs(t *testing.T, index *Index) {
	t.Helper()

	docs := []*Document{
		{
			ID: "one-piece", Title: "ون بيس", TitleEn: "One Piece",
			Author: "Eiichiro Oda", Genres: []string{"أكشن", "مغامرة"},
			Type: "manga", Status: "مستمر", Rating: 9.5,
		},
		{
			ID: "solo-leveling", Title: "سولو ليفلينغ", TitleEn: "Solo Leveling",
			Author: "Chugong", Genres: []string{"أكشن", "خيال"},
			Type: "manhwa", Status: "مكتمل", Rating: 9.3,
		},
		{
			ID: "naruto", Title: "ناروتو", TitleEn: "Naruto",
			Author: "Masashi Kishimoto", Genres: []string{"أكشن"},
			Type: "manga", Status: "مكتمل", Rating: 9.0,
		},
	}
	require.NoError(t, index.IndexDocuments(docs))
}

func TestNewIndex(t *testing.T) {
	index, cleanup := setupTestIndex(t)
	defer cleanup()

	count, err := index.DocumentCount()
	require.NoError(t, err)
	assert.Equal(t, uint64(0), count)
}

func TestIndexDocument(t *testing.T) {
	index, cleanup := setupTestIndex(t)
	defer cleanup()

	manga := &domain.Manga{
		ID:        "one-piece",
		Title:     "ون بيس",
		TitleEn:   "One Piece",
		Author:    "Eiichiro Oda",
		Type:      domain.TypeManga,
		Status:    domain.StatusOngoing,
		Rating:    9.5,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	require.NoError(t, index.IndexDocument(NewDocument(manga)))

	count, err := index.DocumentCount()
	require.NoError(t, err)
	assert.Equal(t, uint64(1), count)
}

func TestSearch_ByEnglishTitle(t *testing.T) {
	index, cleanup := setupTestIndex(t)
	defer cleanup()
	seedDocs(t, index)

	result, err := index.Search(context.Background(), Params{
		Query: "One Piece",
		Limit: 10,
	})
	require.NoError(t, err)
	require.NotEmpty(t, result.Hits)
	assert.Equal(t, "one-piece", result.Hits[0].ID)
	assert.Equal(t, "ون بيس", result.Hits[0].Title)
}

func TestSearch_ByAuthor(t *testing.T) {
	index, cleanup := setupTestIndex(t)
	defer cleanup()
	seedDocs(t, index)

	result, err := index.Search(context.Background(), Params{
		Query: "Kishimoto",
		Limit: 10,
	})
	require.NoError(t, err)
	require.NotEmpty(t, result.Hits)
	assert.Equal(t, "naruto", result.Hits[0].ID)
}

func TestSearch_FuzzyToleratesTypo(t *testing.T) {
	index, cleanup := setupTestIndex(t)
	defer cleanup()
	seedDocs(t, index)

	result, err := index.Search(context.Background(), Params{
		Query: "narutp",
		Limit: 10,
	})
	require.NoError(t, err)
	require.NotEmpty(t, result.Hits)
	assert.Equal(t, "naruto", result.Hits[0].ID)
}

func TestSearch_TypeFilter(t *testing.T) {
	index, cleanup := setupTestIndex(t)
	defer cleanup()
	seedDocs(t, index)

	result, err := index.Search(context.Background(), Params{
		Type:  "manhwa",
		Limit: 10,
	})
	require.NoError(t, err)
	require.Len(t, result.Hits, 1)
	assert.Equal(t, "solo-leveling", result.Hits[0].ID)
}

func TestSearch_GenreFilter(t *testing.T) {
	index, cleanup := setupTestIndex(t)
	defer cleanup()
	seedDocs(t, index)

	result, err := index.Search(context.Background(), Params{
		Genre: "مغامرة",
		Limit: 10,
	})
	require.NoError(t, err)
	require.Len(t, result.Hits, 1)
	assert.Equal(t, "one-piece", result.Hits[0].ID)
}

func TestSearch_EmptyQueryMatchesAllSortedByRating(t *testing.T) {
	index, cleanup := setupTestIndex(t)
	defer cleanup()
	seedDocs(t, index)

	result, err := index.Search(context.Background(), Params{
		SortBy: "rating",
		Limit:  10,
	})
	require.NoError(t, err)
	require.Len(t, result.Hits, 3)
	assert.Equal(t, "one-piece", result.Hits[0].ID)
	assert.Equal(t, "solo-leveling", result.Hits[1].ID)
	assert.Equal(t, "naruto", result.Hits[2].ID)
}

func TestDeleteDocument(t *testing.T) {
	index, cleanup := setupTestIndex(t)
	defer cleanup()
	seedDocs(t, index)

	require.NoError(t, index.DeleteDocument("naruto"))

	count, err := index.DocumentCount()
	require.NoError(t, err)
	assert.Equal(t, uint64(2), count)
}

func TestRebuild_ResetsIndex(t *testing.T) {
	index, cleanup := setupTestIndex(t)
	defer cleanup()
	seedDocs(t, index)

	require.NoError(t, index.Rebuild())

	count, err := index.DocumentCount()
	require.NoError(t, err)
	assert.Equal(t, uint64(0), count)
}
