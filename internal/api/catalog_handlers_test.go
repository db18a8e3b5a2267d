package api

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBrowseCatalog_ReturnsSeededEntries(t *testing.T) {
	ts := setupTestServer(t)

	resp := ts.api.Get("/api/v1/catalog")
	data := successData(t, resp)

	assert.EqualValues(t, 11, data["total"])
	manga := data["manga"].([]any)
	require.Len(t, manga, 11)

	first := manga[0].(map[string]any)
	assert.NotEmpty(t, first["id"])
	assert.NotEmpty(t, first["title"])
	assert.NotEmpty(t, first["title_en"])
}

func TestBrowseCatalog_TypeFilter(t *testing.T) {
	ts := setupTestServer(t)

	resp := ts.api.Get("/api/v1/catalog?type=manhwa")
	data := successData(t, resp)
	assert.EqualValues(t, 2, data["total"])
}

func TestBrowseCatalog_ArabicGenreFilter(t *testing.T) {
	ts := setupTestServer(t)

	resp := ts.api.Get("/api/v1/catalog?genre=" + url.QueryEscape("رياضي"))
	data := successData(t, resp)

	manga := data["manga"].([]any)
	require.Len(t, manga, 1)
	assert.Equal(t, "blue-lock", manga[0].(map[string]any)["id"])
}

func TestListGenres(t *testing.T) {
	ts := setupTestServer(t)

	resp := ts.api.Get("/api/v1/catalog/genres")
	data := successData(t, resp)

	genres := data["genres"].([]any)
	require.NotEmpty(t, genres)
	first := genres[0].(map[string]any)
	assert.NotEmpty(t, first["name"])
	assert.NotEmpty(t, first["slug"])
	assert.Positive(t, first["count"])
}

func TestLatestCatalog_NewestChapterFirst(t *testing.T) {
	ts := setupTestServer(t)

	resp := ts.api.Get("/api/v1/catalog/latest")
	data := successData(t, resp)

	manga := data["manga"].([]any)
	require.NotEmpty(t, manga)
	assert.Equal(t, "one-piece", manga[0].(map[string]any)["id"])
}

func TestPopularCatalog_HighestRatedFirst(t *testing.T) {
	ts := setupTestServer(t)

	resp := ts.api.Get("/api/v1/catalog/popular")
	data := successData(t, resp)

	manga := data["manga"].([]any)
	require.NotEmpty(t, manga)
	assert.Equal(t, "one-piece", manga[0].(map[string]any)["id"])
}

func TestGetManga_FullEntry(t *testing.T) {
	ts := setupTestServer(t)

	resp := ts.api.Get("/api/v1/catalog/one-piece")
	data := successData(t, resp)

	assert.Equal(t, "One Piece", data["titleEn"])
	chapters := data["chapters"].([]any)
	require.NotEmpty(t, chapters)
	assert.EqualValues(t, 1098, chapters[0].(map[string]any)["number"])
}

func TestGetManga_NotFound(t *testing.T) {
	ts := setupTestServer(t)

	resp := ts.api.Get("/api/v1/catalog/berserk")
	assert.Equal(t, 404, resp.Code)
}

func TestGetChapter_ReaderView(t *testing.T) {
	ts := setupTestServer(t)

	resp := ts.api.Get("/api/v1/catalog/one-piece/chapters/1097")
	data := successData(t, resp)

	chapter := data["chapter"].(map[string]any)
	assert.EqualValues(t, 1097, chapter["number"])

	pages := data["pages"].([]any)
	require.NotEmpty(t, pages)
	assert.Contains(t, pages[0].(string), "via.placeholder.com")

	assert.EqualValues(t, 1098, data["next"])
	assert.EqualValues(t, 1096, data["previous"])
}

func TestGetChapter_UnknownNumber(t *testing.T) {
	ts := setupTestServer(t)

	resp := ts.api.Get("/api/v1/catalog/one-piece/chapters/9999")
	assert.Equal(t, 404, resp.Code)
}

func TestSearchCatalog(t *testing.T) {
	ts := setupTestServer(t)

	resp := ts.api.Get("/api/v1/catalog/search?q=Naruto")
	data := successData(t, resp)

	hits := data["hits"].([]any)
	require.NotEmpty(t, hits)
	assert.Equal(t, "naruto", hits[0].(map[string]any)["id"])
}
