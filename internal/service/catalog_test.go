package service

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBrowse_NoFilterReturnsAll(t *testing.T) {
	svc, _ := newSeededCatalogService(t)

	summaries, err := svc.Browse(context.Background(), BrowseFilter{})
	require.NoError(t, err)
	assert.Len(t, summaries, 11)

	// Sorted by English title.
	for i := 1; i < len(summaries); i++ {
		assert.LessOrEqual(t, summaries[i-1].TitleEn, summaries[i].TitleEn)
	}
}

func TestBrowse_AllLiteralIsWildcard(t *testing.T) {
	svc, _ := newSeededCatalogService(t)

	summaries, err := svc.Browse(context.Background(), BrowseFilter{
		Genre:  "all",
		Status: "all",
		Type:   "all",
	})
	require.NoError(t, err)
	assert.Len(t, summaries, 11)
}

func TestBrowse_FiltersCombineConjunctively(t *testing.T) {
	svc, _ := newSeededCatalogService(t)
	ctx := context.Background()

	// Type filter alone.
	manhwa, err := svc.Browse(ctx, BrowseFilter{Type: "manhwa"})
	require.NoError(t, err)
	require.Len(t, manhwa, 2)

	// Adding a status filter narrows further.
	completed, err := svc.Browse(ctx, BrowseFilter{Type: "manhwa", Status: "مكتمل"})
	require.NoError(t, err)
	require.Len(t, completed, 1)
	assert.Equal(t, "solo-leveling", completed[0].ID)

	// Genre filter.
	sports, err := svc.Browse(ctx, BrowseFilter{Genre: "رياضي"})
	require.NoError(t, err)
	require.Len(t, sports, 1)
	assert.Equal(t, "blue-lock", sports[0].ID)
}

func TestGenres_SortedDistinctWithCounts(t *testing.T) {
	svc, _ := newSeededCatalogService(t)

	genres, err := svc.Genres(context.Background())
	require.NoError(t, err)
	require.NotEmpty(t, genres)

	seen := make(map[string]bool)
	for i, genre := range genres {
		assert.False(t, seen[genre.Name], "duplicate genre %s", genre.Name)
		seen[genre.Name] = true
		assert.Positive(t, genre.Count)
		assert.NotEmpty(t, genre.Slug)
		if i > 0 {
			assert.Less(t, genres[i-1].Name, genre.Name)
		}
	}

	// Every entry has أكشن, so it counts all 11.
	for _, genre := range genres {
		if genre.Name == "أكشن" {
			assert.Equal(t, 11, genre.Count)
		}
	}
}

func TestLatest_OrdersByNewestChapter(t *testing.T) {
	svc, _ := newSeededCatalogService(t)

	summaries, err := svc.Latest(context.Background())
	require.NoError(t, err)
	require.Len(t, summaries, 11)

	// One Piece (ch. 1098) leads, and ranks above Naruto (ch. 700).
	assert.Equal(t, "one-piece", summaries[0].ID)
	onePieceIdx, narutoIdx := -1, -1
	for i, s := range summaries {
		switch s.ID {
		case "one-piece":
			onePieceIdx = i
		case "naruto":
			narutoIdx = i
		}
	}
	assert.Less(t, onePieceIdx, narutoIdx)

	for i := 1; i < len(summaries); i++ {
		assert.GreaterOrEqual(t, summaries[i-1].LatestChapter, summaries[i].LatestChapter)
	}
}

func TestPopular_OrdersByRating(t *testing.T) {
	svc, _ := newSeededCatalogService(t)

	summaries, err := svc.Popular(context.Background())
	require.NoError(t, err)
	require.Len(t, summaries, 11)

	assert.Equal(t, "one-piece", summaries[0].ID)
	for i := 1; i < len(summaries); i++ {
		assert.GreaterOrEqual(t, summaries[i-1].Rating, summaries[i].Rating)
	}
}

func TestGet(t *testing.T) {
	svc, _ := newSeededCatalogService(t)
	ctx := context.Background()

	manga, err := svc.Get(ctx, "one-piece")
	require.NoError(t, err)
	assert.Equal(t, "One Piece", manga.TitleEn)

	_, err = svc.Get(ctx, "missing")
	assert.Error(t, err)
}

func TestChapter_ReaderView(t *testing.T) {
	svc, _ := newSeededCatalogService(t)
	ctx := context.Background()

	// Middle chapter: has both neighbors. Chapters are newest first,
	// so next is the higher number and previous the lower.
	view, err := svc.Chapter(ctx, "one-piece", 1097)
	require.NoError(t, err)
	assert.Equal(t, 1097, view.Chapter.Number)
	assert.Len(t, view.Pages, 19)
	require.NotNil(t, view.Next)
	assert.Equal(t, 1098, *view.Next)
	require.NotNil(t, view.Previous)
	assert.Equal(t, 1096, *view.Previous)

	// Page URLs embed the title and a 1-based page number.
	assert.Contains(t, view.Pages[0], "via.placeholder.com")
	assert.True(t, strings.HasSuffix(view.Pages[18], "19"))

	// Newest chapter has no next.
	newest, err := svc.Chapter(ctx, "one-piece", 1098)
	require.NoError(t, err)
	assert.Nil(t, newest.Next)
	require.NotNil(t, newest.Previous)

	// Oldest chapter has no previous.
	oldest, err := svc.Chapter(ctx, "one-piece", 1095)
	require.NoError(t, err)
	assert.Nil(t, oldest.Previous)
	require.NotNil(t, oldest.Next)
}

func TestChapter_UnknownChapter(t *testing.T) {
	svc, _ := newSeededCatalogService(t)

	_, err := svc.Chapter(context.Background(), "one-piece", 9999)
	assert.Error(t, err)
}

func TestSearch_FindsSeededEntries(t *testing.T) {
	svc, _ := newSeededCatalogService(t)

	result, err := svc.Search(context.Background(), "Naruto", 10, 0)
	require.NoError(t, err)
	require.NotEmpty(t, result.Hits)
	assert.Equal(t, "naruto", result.Hits[0].ID)
}

func TestReindexAll(t *testing.T) {
	svc, _ := newSeededCatalogService(t)

	count, err := svc.ReindexAll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 11, count)
}
