package api

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToggleFavorite_Anonymous(t *testing.T) {
	ts := setupTestServer(t)

	resp := ts.api.Post("/api/v1/favorites/one-piece/toggle")
	data := successData(t, resp)

	assert.Equal(t, true, data["added"])
	assert.Equal(t, "added to favorites", data["message"])
	assert.Equal(t, []any{"one-piece"}, data["favorites"])

	// Toggling again removes it.
	resp = ts.api.Post("/api/v1/favorites/one-piece/toggle")
	data = successData(t, resp)
	assert.Equal(t, false, data["added"])
	assert.Equal(t, "removed from favorites", data["message"])
}

func TestToggleFavorite_UnknownManga(t *testing.T) {
	ts := setupTestServer(t)

	resp := ts.api.Post("/api/v1/favorites/berserk/toggle")
	assert.Equal(t, 404, resp.Code)
}

func TestListFavorites_ResolvedInInsertionOrder(t *testing.T) {
	ts := setupTestServer(t)

	for _, id := range []string{"naruto", "one-piece", "bleach"} {
		successData(t, ts.api.Post("/api/v1/favorites/"+id+"/toggle"))
	}

	resp := ts.api.Get("/api/v1/favorites")
	data := successData(t, resp)

	assert.Equal(t, []any{"naruto", "one-piece", "bleach"}, data["ids"])
	favorites := data["favorites"].([]any)
	require.Len(t, favorites, 3)
	assert.Equal(t, "naruto", favorites[0].(map[string]any)["id"])
	assert.Equal(t, "Naruto", favorites[0].(map[string]any)["title_en"])
}

func TestFavorites_SignedInAndAnonymousArePartitioned(t *testing.T) {
	ts := setupTestServer(t)

	login := ts.login(t, "reader@test.com")

	// Signed-in favorite.
	successData(t, ts.api.Post("/api/v1/favorites/one-piece/toggle", bearer(login)))
	// Anonymous favorite.
	successData(t, ts.api.Post("/api/v1/favorites/naruto/toggle"))

	resp := ts.api.Get("/api/v1/favorites", bearer(login))
	assert.Equal(t, []any{"one-piece"}, successData(t, resp)["ids"])

	resp = ts.api.Get("/api/v1/favorites")
	assert.Equal(t, []any{"naruto"}, successData(t, resp)["ids"])
}

func TestClearFavorites(t *testing.T) {
	ts := setupTestServer(t)

	successData(t, ts.api.Post("/api/v1/favorites/one-piece/toggle"))

	resp := ts.api.Delete("/api/v1/favorites")
	successData(t, resp)

	data := successData(t, ts.api.Get("/api/v1/favorites"))
	assert.Equal(t, []any{}, data["ids"])
}
