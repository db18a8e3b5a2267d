package api

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogin_ReturnsTokensAndDerivedName(t *testing.T) {
	ts := setupTestServer(t)

	data := ts.login(t, "reader@test.com")

	identity := data["identity"].(map[string]any)
	assert.Equal(t, "reader@test.com", identity["email"])
	assert.Equal(t, "reader", identity["name"])
	assert.NotEmpty(t, data["access_token"])
	assert.NotEmpty(t, data["refresh_token"])
	assert.NotEmpty(t, data["session_id"])
	assert.Equal(t, "Bearer", data["token_type"])
}

func TestLogin_RejectsMalformedEmail(t *testing.T) {
	ts := setupTestServer(t)

	resp := ts.api.Post("/api/v1/auth/login", map[string]any{
		"email":    "not-an-email",
		"password": "abcdef",
	})
	require.Equal(t, 400, resp.Code)

	env := decodeEnvelope(t, resp)
	assert.Equal(t, false, env["success"])
	assert.Equal(t, "VALIDATION", env["code"])
}

func TestLogin_RejectsShortPassword(t *testing.T) {
	ts := setupTestServer(t)

	resp := ts.api.Post("/api/v1/auth/login", map[string]any{
		"email":    "reader@test.com",
		"password": "abc",
	})
	require.Equal(t, 400, resp.Code)
}

func TestMe_RequiresAuth(t *testing.T) {
	ts := setupTestServer(t)

	resp := ts.api.Get("/api/v1/auth/me")
	assert.Equal(t, 401, resp.Code)
}

func TestMe_ReturnsIdentity(t *testing.T) {
	ts := setupTestServer(t)

	login := ts.login(t, "reader@test.com")

	resp := ts.api.Get("/api/v1/auth/me", bearer(login))
	data := successData(t, resp)
	assert.Equal(t, "reader@test.com", data["email"])
	assert.Equal(t, "reader", data["name"])
}

func TestRefresh_RotatesTokens(t *testing.T) {
	ts := setupTestServer(t)

	login := ts.login(t, "reader@test.com")
	oldRefresh := login["refresh_token"].(string)

	resp := ts.api.Post("/api/v1/auth/refresh", map[string]any{
		"refresh_token": oldRefresh,
	})
	data := successData(t, resp)
	assert.Equal(t, login["session_id"], data["session_id"])
	assert.NotEqual(t, oldRefresh, data["refresh_token"])

	// The rotated-out token is dead.
	resp = ts.api.Post("/api/v1/auth/refresh", map[string]any{
		"refresh_token": oldRefresh,
	})
	assert.Equal(t, 401, resp.Code)
}

func TestLogout_EndsSession(t *testing.T) {
	ts := setupTestServer(t)

	login := ts.login(t, "reader@test.com")

	resp := ts.api.Post("/api/v1/auth/logout", map[string]any{
		"session_id": login["session_id"],
	})
	successData(t, resp)

	// The access token still parses but the session behind it is gone.
	resp = ts.api.Get("/api/v1/auth/me", bearer(login))
	assert.Equal(t, 401, resp.Code)
}

func TestUpdateProfileName_IssuesFreshToken(t *testing.T) {
	ts := setupTestServer(t)

	login := ts.login(t, "reader@test.com")

	resp := ts.api.Patch("/api/v1/profile/name", bearer(login), map[string]any{
		"name": "The Reader",
	})
	data := successData(t, resp)

	identity := data["identity"].(map[string]any)
	assert.Equal(t, "The Reader", identity["name"])
	assert.Equal(t, "reader@test.com", identity["email"], "email is immutable")
	require.NotEmpty(t, data["access_token"])

	// The fresh token carries the new name.
	resp = ts.api.Get("/api/v1/auth/me", "Authorization: Bearer "+data["access_token"].(string))
	me := successData(t, resp)
	assert.Equal(t, "The Reader", me["name"])
}

func TestUpdateProfileName_RequiresAuth(t *testing.T) {
	ts := setupTestServer(t)

	resp := ts.api.Patch("/api/v1/profile/name", map[string]any{
		"name": "Nobody",
	})
	assert.Equal(t, 401, resp.Code)
}
