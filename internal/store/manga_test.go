package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mangaportal/mangaportal-server/internal/domain"
)

func testManga(id, titleEn string, rating float64) *domain.Manga {
	return &domain.Manga{
		ID:      id,
		Title:   titleEn,
		TitleEn: titleEn,
		Author:  "author",
		Status:  domain.StatusOngoing,
		Genres:  []string{"أكشن"},
		Rating:  rating,
		Type:    domain.TypeManga,
		Chapters: []domain.Chapter{
			{Number: 2, Title: "الفصل 2", Pages: 20},
			{Number: 1, Title: "الفصل 1", Pages: 18},
		},
	}
}

func TestManga_SaveGetRoundTrip(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	manga := testManga("one-piece", "One Piece", 9.5)
	require.NoError(t, s.SaveManga(ctx, manga))
	assert.False(t, manga.CreatedAt.IsZero())
	assert.False(t, manga.UpdatedAt.IsZero())

	got, err := s.GetManga(ctx, "one-piece")
	require.NoError(t, err)
	assert.Equal(t, "One Piece", got.TitleEn)
	assert.Len(t, got.Chapters, 2)
	assert.Equal(t, 2, got.LatestChapter().Number)
}

func TestGetManga_NotFound(t *testing.T) {
	s := newTestStore(t)

	_, err := s.GetManga(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrMangaNotFound)
}

func TestListManga_SortedByID(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.SaveManga(ctx, testManga("naruto", "Naruto", 9.0)))
	require.NoError(t, s.SaveManga(ctx, testManga("bleach", "Bleach", 8.8)))
	require.NoError(t, s.SaveManga(ctx, testManga("one-piece", "One Piece", 9.5)))

	mangas, err := s.ListManga(ctx)
	require.NoError(t, err)
	require.Len(t, mangas, 3)
	assert.Equal(t, "bleach", mangas[0].ID)
	assert.Equal(t, "naruto", mangas[1].ID)
	assert.Equal(t, "one-piece", mangas[2].ID)
}

func TestGetMangaByIDs_PreservesOrderSkipsMissing(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.SaveManga(ctx, testManga("naruto", "Naruto", 9.0)))
	require.NoError(t, s.SaveManga(ctx, testManga("one-piece", "One Piece", 9.5)))

	mangas, err := s.GetMangaByIDs(ctx, []string{"one-piece", "gone", "naruto"})
	require.NoError(t, err)
	require.Len(t, mangas, 2)
	assert.Equal(t, "one-piece", mangas[0].ID)
	assert.Equal(t, "naruto", mangas[1].ID)
}

func TestDeleteManga(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.SaveManga(ctx, testManga("naruto", "Naruto", 9.0)))
	require.NoError(t, s.DeleteManga(ctx, "naruto"))

	_, err := s.GetManga(ctx, "naruto")
	assert.ErrorIs(t, err, ErrMangaNotFound)

	assert.ErrorIs(t, s.DeleteManga(ctx, "naruto"), ErrMangaNotFound)
}

func TestCountManga(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	count, err := s.CountManga(ctx)
	require.NoError(t, err)
	assert.Zero(t, count)

	require.NoError(t, s.SaveManga(ctx, testManga("naruto", "Naruto", 9.0)))
	require.NoError(t, s.SaveManga(ctx, testManga("bleach", "Bleach", 8.8)))

	count, err = s.CountManga(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}
