package server

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"fanvault/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func listPostsVia(t *testing.T, app *fiber.App, auth string) []map[string]any {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/api/posts/", nil)
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var posts []map[string]any
	require.NoError(t, json.Unmarshal(raw, &posts))
	return posts
}

func TestCreatePost_CreatorOnly(t *testing.T) {
	s, app, db := newTestServer(t, nil)
	createTestUser(t, db, "creator-1", asCreator)
	createTestUser(t, db, "member-1")

	body := map[string]any{
		"text":       "new drop",
		"media_url":  "https://cdn.example.com/drop.jpg",
		"media_type": "image",
		"is_public":  true,
	}

	resp, decoded := doJSON(t, app, http.MethodPost, "/api/posts/", bearerFor(t, s, "creator-1"), body)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, "new drop", decoded["text"])
	assert.Equal(t, true, decoded["is_public"])

	resp, _ = doJSON(t, app, http.MethodPost, "/api/posts/", bearerFor(t, s, "member-1"), body)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp, _ = doJSON(t, app, http.MethodPost, "/api/posts/", "", body)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestCreatePost_Validation(t *testing.T) {
	s, app, db := newTestServer(t, nil)
	createTestUser(t, db, "creator-1", asCreator)
	auth := bearerFor(t, s, "creator-1")

	resp, _ := doJSON(t, app, http.MethodPost, "/api/posts/", auth, map[string]any{
		"media_url": "https://cdn.example.com/x.jpg", "media_type": "image",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode, "text required")

	resp, _ = doJSON(t, app, http.MethodPost, "/api/posts/", auth, map[string]any{
		"text": "no media",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode, "media required")

	resp, _ = doJSON(t, app, http.MethodPost, "/api/posts/", auth, map[string]any{
		"text": "bad kind", "media_url": "https://cdn.example.com/x.gif", "media_type": "gif",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode, "media type must be image or video")
}

func TestGetPosts_MediaRedactionPerViewer(t *testing.T) {
	s, app, db := newTestServer(t, nil)
	creator := createTestUser(t, db, "creator-1", asCreator)
	createTestUser(t, db, "sub-1", asSubscriber)
	createTestUser(t, db, "free-1")
	createTestPost(t, db, creator.ID, false)

	find := func(posts []map[string]any) map[string]any {
		require.Len(t, posts, 1)
		return posts[0]
	}

	// anonymous and unsubscribed viewers get text but no media
	for _, auth := range []string{"", bearerFor(t, s, "free-1")} {
		post := find(listPostsVia(t, app, auth))
		assert.Equal(t, "", post["media_url"])
		assert.Equal(t, true, post["media_locked"])
		assert.NotEmpty(t, post["text"])
	}

	// subscribers and the creator see the media
	for _, auth := range []string{bearerFor(t, s, "sub-1"), bearerFor(t, s, "creator-1")} {
		post := find(listPostsVia(t, app, auth))
		assert.Equal(t, "https://cdn.example.com/pic.jpg", post["media_url"])
		assert.Equal(t, false, post["media_locked"])
	}
}

func TestGetPosts_PublicMediaVisibleToAll(t *testing.T) {
	_, app, db := newTestServer(t, nil)
	creator := createTestUser(t, db, "creator-1", asCreator)
	createTestPost(t, db, creator.ID, true)

	posts := listPostsVia(t, app, "")
	require.Len(t, posts, 1)
	assert.Equal(t, "https://cdn.example.com/pic.jpg", posts[0]["media_url"])
	assert.Equal(t, false, posts[0]["media_locked"])
}

func TestGetPost_NotFoundAndBadID(t *testing.T) {
	_, app, _ := newTestServer(t, nil)

	resp, _ := doJSON(t, app, http.MethodGet, "/api/posts/999", "", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, _ = doJSON(t, app, http.MethodGet, "/api/posts/abc", "", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestToggleLike_SubscriberTogglesCounter(t *testing.T) {
	s, app, db := newTestServer(t, nil)
	creator := createTestUser(t, db, "creator-1", asCreator)
	createTestUser(t, db, "sub-1", asSubscriber)
	post := createTestPost(t, db, creator.ID, false)
	auth := bearerFor(t, s, "sub-1")
	path := "/api/posts/1/like"

	resp, body := doJSON(t, app, http.MethodPost, path, auth, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, true, body["liked"])
	assert.Equal(t, float64(1), body["likes"])

	resp, body = doJSON(t, app, http.MethodPost, path, auth, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, false, body["liked"])
	assert.Equal(t, float64(0), body["likes"])

	var stored models.Post
	require.NoError(t, db.First(&stored, post.ID).Error)
	assert.Equal(t, 0, stored.Likes)
}

func TestToggleLike_UnsubscribedMemberIsSilentNoop(t *testing.T) {
	s, app, db := newTestServer(t, nil)
	creator := createTestUser(t, db, "creator-1", asCreator)
	createTestUser(t, db, "free-1")
	post := createTestPost(t, db, creator.ID, true)

	resp, body := doJSON(t, app, http.MethodPost, "/api/posts/1/like", bearerFor(t, s, "free-1"), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, false, body["liked"])
	assert.Equal(t, float64(0), body["likes"])

	var likeCount int64
	db.Model(&models.Like{}).Where("post_id = ?", post.ID).Count(&likeCount)
	assert.Equal(t, int64(0), likeCount)
}

func TestToggleLike_MissingPostStill404sForNoopViewers(t *testing.T) {
	s, app, db := newTestServer(t, nil)
	createTestUser(t, db, "free-1")

	resp, _ := doJSON(t, app, http.MethodPost, "/api/posts/77/like", bearerFor(t, s, "free-1"), nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestCreateComment_SubscriberAndSilentNoop(t *testing.T) {
	s, app, db := newTestServer(t, nil)
	creator := createTestUser(t, db, "creator-1", asCreator)
	createTestUser(t, db, "sub-1", asSubscriber)
	createTestUser(t, db, "free-1")
	post := createTestPost(t, db, creator.ID, true)

	path := "/api/posts/1/comments"

	resp, body := doJSON(t, app, http.MethodPost, path, bearerFor(t, s, "sub-1"), map[string]string{"text": "nice one"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, "nice one", body["text"])

	// unsubscribed member gets a success ack but nothing is stored
	resp, body = doJSON(t, app, http.MethodPost, path, bearerFor(t, s, "free-1"), map[string]string{"text": "let me in"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, true, body["success"])

	var count int64
	db.Model(&models.Comment{}).Where("post_id = ?", post.ID).Count(&count)
	assert.Equal(t, int64(1), count)

	// the stored comment is visible to everyone
	resp, _ = doJSON(t, app, http.MethodGet, path, "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestCreateComment_Validation(t *testing.T) {
	s, app, db := newTestServer(t, nil)
	creator := createTestUser(t, db, "creator-1", asCreator)
	createTestUser(t, db, "sub-1", asSubscriber)
	createTestPost(t, db, creator.ID, true)

	resp, _ := doJSON(t, app, http.MethodPost, "/api/posts/1/comments", bearerFor(t, s, "sub-1"), map[string]string{"text": "   "})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, _ = doJSON(t, app, http.MethodPost, "/api/posts/404/comments", bearerFor(t, s, "sub-1"), map[string]string{"text": "hi"})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestDeletePost_CreatorOwnsDeletion(t *testing.T) {
	s, app, db := newTestServer(t, nil)
	creator := createTestUser(t, db, "creator-1", asCreator)
	createTestUser(t, db, "sub-1", asSubscriber)
	createTestPost(t, db, creator.ID, true)

	resp, _ := doJSON(t, app, http.MethodDelete, "/api/posts/1", bearerFor(t, s, "sub-1"), nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp, body := doJSON(t, app, http.MethodDelete, "/api/posts/1", bearerFor(t, s, "creator-1"), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, true, body["success"])

	var count int64
	db.Model(&models.Post{}).Count(&count)
	assert.Equal(t, int64(0), count)
}
