package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bbarboza/portfolio-backend/config"
	"github.com/bbarboza/portfolio-backend/database"
)

const (
	testAdminEmail    = "owner@example.com"
	testAdminPassword = "hunter2-hunter2"
)

func newTestServer(t *testing.T) (*httptest.Server, *database.MemoryStore) {
	t.Helper()
	t.Setenv("SECRET_KEY", "test-secret")

	store, err := database.NewMemory(database.SeedConfig{
		AdminEmail:    testAdminEmail,
		AdminPassword: testAdminPassword,
		AdminName:     "Site Owner",
		SampleContent: true,
	})
	require.NoError(t, err)

	server := httptest.NewServer(newRouter(store, nil, withConfig(config.New())))
	t.Cleanup(server.Close)
	return server, store
}

func doJSON(t *testing.T, method, url, token string, body any) (*http.Response, map[string]any) {
	t.Helper()

	var reqBody *bytes.Buffer
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reqBody = bytes.NewBuffer(raw)
	} else {
		reqBody = &bytes.Buffer{}
	}

	req, err := http.NewRequest(method, url, reqBody)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })

	var decoded map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		decoded = nil
	}
	return resp, decoded
}

func login(t *testing.T, server *httptest.Server, email, password string) string {
	t.Helper()
	resp, body := doJSON(t, http.MethodPost, server.URL+"/api/auth/login", "", LoginRequest{
		Email:    email,
		Password: password,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	token, _ := body["token"].(string)
	require.NotEmpty(t, token)
	return token
}

func registerUser(t *testing.T, server *httptest.Server, email string) string {
	t.Helper()
	resp, body := doJSON(t, http.MethodPost, server.URL+"/api/auth/register", "", RegisterRequest{
		Email:    email,
		Password: "a-strong-password",
		Name:     "Visitor",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	token, _ := body["token"].(string)
	require.NotEmpty(t, token)
	return token
}

func firstProjectID(t *testing.T, store *database.MemoryStore) uuid.UUID {
	t.Helper()
	projects, err := store.Projects(context.Background(), database.ProjectFilter{})
	require.NoError(t, err)
	require.NotEmpty(t, projects)
	return projects[0].ID
}

func TestRegisterAndLogin(t *testing.T) {
	server, _ := newTestServer(t)

	resp, body := doJSON(t, http.MethodPost, server.URL+"/api/auth/register", "", RegisterRequest{
		Email:    "visitor@example.com",
		Password: "a-strong-password",
		Name:     "Visitor",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, body["token"])
	user, ok := body["user"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "visitor@example.com", user["email"])
	assert.Equal(t, false, user["isAdmin"])
	assert.NotContains(t, user, "password")

	// Duplicate registration conflicts.
	resp, _ = doJSON(t, http.MethodPost, server.URL+"/api/auth/register", "", RegisterRequest{
		Email:    "visitor@example.com",
		Password: "another-password",
		Name:     "Visitor Again",
	})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	// Wrong password and unknown email are the same undifferentiated 401.
	resp, _ = doJSON(t, http.MethodPost, server.URL+"/api/auth/login", "", LoginRequest{
		Email:    "visitor@example.com",
		Password: "wrong",
	})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp, _ = doJSON(t, http.MethodPost, server.URL+"/api/auth/login", "", LoginRequest{
		Email:    "nobody@example.com",
		Password: "wrong",
	})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	token := login(t, server, "visitor@example.com", "a-strong-password")
	assert.NotEmpty(t, token)
}

func TestRegisterValidation(t *testing.T) {
	server, _ := newTestServer(t)

	tests := []struct {
		name string
		req  RegisterRequest
	}{
		{"bad email", RegisterRequest{Email: "not-an-email", Password: "pw", Name: "X"}},
		{"missing password", RegisterRequest{Email: "x@example.com", Name: "X"}},
		{"missing name", RegisterRequest{Email: "x@example.com", Password: "pw"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, _ := doJSON(t, http.MethodPost, server.URL+"/api/auth/register", "", tt.req)
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		})
	}
}

func TestPublicRoutes(t *testing.T) {
	server, _ := newTestServer(t)

	resp, body := doJSON(t, http.MethodGet, server.URL+"/api/profile", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Site Owner", body["name"])
	assert.NotContains(t, body, "email", "public profile must not expose the email")

	for _, path := range []string{"/api/projects", "/api/achievements", "/api/tools", "/api/comments"} {
		req, err := http.NewRequest(http.MethodGet, server.URL+path, nil)
		require.NoError(t, err)
		resp, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		resp.Body.Close()
		assert.Equal(t, http.StatusOK, resp.StatusCode, path)
	}
}

func TestAdminGating(t *testing.T) {
	server, _ := newTestServer(t)
	userToken := registerUser(t, server, "visitor@example.com")
	adminToken := login(t, server, testAdminEmail, testAdminPassword)

	project := map[string]any{
		"title":       "New Project",
		"description": "Something new",
		"category":    "Web App",
	}

	// Anonymous.
	resp, _ := doJSON(t, http.MethodPost, server.URL+"/api/projects", "", project)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	// Authenticated but not admin.
	resp, _ = doJSON(t, http.MethodPost, server.URL+"/api/projects", userToken, project)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	// Admin.
	resp, body := doJSON(t, http.MethodPost, server.URL+"/api/projects", adminToken, project)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, "New Project", body["title"])
	assert.Equal(t, float64(0), body["likes"])

	// Every admin route rejects the non-admin token.
	adminRoutes := []struct{ method, path string }{
		{http.MethodPost, "/api/achievements"},
		{http.MethodPost, "/api/tools"},
		{http.MethodPatch, "/api/projects/" + uuid.NewString()},
		{http.MethodDelete, "/api/projects/" + uuid.NewString()},
		{http.MethodPatch, "/api/achievements/" + uuid.NewString()},
		{http.MethodDelete, "/api/achievements/" + uuid.NewString()},
		{http.MethodPatch, "/api/tools/" + uuid.NewString()},
		{http.MethodDelete, "/api/tools/" + uuid.NewString()},
		{http.MethodDelete, "/api/comments/" + uuid.NewString()},
		{http.MethodGet, "/api/admin/stats"},
	}
	for _, route := range adminRoutes {
		resp, _ := doJSON(t, route.method, server.URL+route.path, userToken, map[string]any{})
		assert.Equal(t, http.StatusForbidden, resp.StatusCode, "%s %s", route.method, route.path)
	}
}

func TestLikeToggleEndpoint(t *testing.T) {
	server, store := newTestServer(t)
	token := registerUser(t, server, "liker@example.com")
	projectID := firstProjectID(t, store)

	// Anonymous toggles are rejected.
	resp, _ := doJSON(t, http.MethodPost, server.URL+"/api/likes/toggle", "", map[string]any{
		"projectId": projectID.String(),
	})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp, body := doJSON(t, http.MethodPost, server.URL+"/api/likes/toggle", token, map[string]any{
		"projectId": projectID.String(),
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, true, body["liked"])
	assert.Equal(t, float64(1), body["count"])

	resp, body = doJSON(t, http.MethodPost, server.URL+"/api/likes/toggle", token, map[string]any{
		"projectId": projectID.String(),
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, false, body["liked"])
	assert.Equal(t, float64(0), body["count"])

	// Exactly one target is required.
	resp, _ = doJSON(t, http.MethodPost, server.URL+"/api/likes/toggle", token, map[string]any{})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, _ = doJSON(t, http.MethodPost, server.URL+"/api/likes/toggle", token, map[string]any{
		"projectId":     projectID.String(),
		"achievementId": uuid.NewString(),
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	// Unknown target is a 404, not a silent like.
	resp, _ = doJSON(t, http.MethodPost, server.URL+"/api/likes/toggle", token, map[string]any{
		"projectId": uuid.NewString(),
	})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, raw := doJSON(t, http.MethodGet, server.URL+"/api/likes/user", token, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	_ = raw // empty array decodes to nil map; status is what matters here
}

func TestCommentCreateAndBroadcast(t *testing.T) {
	server, store := newTestServer(t)
	token := registerUser(t, server, "commenter@example.com")
	projectID := firstProjectID(t, store)

	wsURL := "ws" + strings.TrimPrefix(server.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	defer conn.Close()

	resp, body := doJSON(t, http.MethodPost, server.URL+"/api/comments", token, map[string]any{
		"content":   "Great project!",
		"projectId": projectID.String(),
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, "Great project!", body["content"])
	author, ok := body["user"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "Visitor", author["name"])

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, raw, err := conn.ReadMessage()
	require.NoError(t, err)

	var event Event
	require.NoError(t, json.Unmarshal(raw, &event))
	assert.Equal(t, "new_comment", event.Type)
	data, ok := event.Data.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "Great project!", data["content"])
	assert.Equal(t, projectID.String(), data["projectId"])
}

func TestCommentValidation(t *testing.T) {
	server, store := newTestServer(t)
	token := registerUser(t, server, "commenter@example.com")
	projectID := firstProjectID(t, store)

	tests := []struct {
		name   string
		body   map[string]any
		status int
	}{
		{"missing content", map[string]any{"projectId": projectID.String()}, http.StatusBadRequest},
		{"blank content", map[string]any{"content": "   ", "projectId": projectID.String()}, http.StatusBadRequest},
		{"no target", map[string]any{"content": "hi"}, http.StatusBadRequest},
		{"both targets", map[string]any{"content": "hi", "projectId": projectID.String(), "achievementId": uuid.NewString()}, http.StatusBadRequest},
		{"missing target", map[string]any{"content": "hi", "projectId": uuid.NewString()}, http.StatusNotFound},
		{"malformed id", map[string]any{"content": "hi", "projectId": "nope"}, http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, _ := doJSON(t, http.MethodPost, server.URL+"/api/comments", token, tt.body)
			assert.Equal(t, tt.status, resp.StatusCode)
		})
	}
}

func TestCommentAdminDelete(t *testing.T) {
	server, store := newTestServer(t)
	token := registerUser(t, server, "commenter@example.com")
	adminToken := login(t, server, testAdminEmail, testAdminPassword)
	projectID := firstProjectID(t, store)

	resp, body := doJSON(t, http.MethodPost, server.URL+"/api/comments", token, map[string]any{
		"content":   "To be removed",
		"projectId": projectID.String(),
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	commentID, _ := body["id"].(string)
	require.NotEmpty(t, commentID)

	resp, _ = doJSON(t, http.MethodDelete, server.URL+"/api/comments/"+commentID, adminToken, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, _ = doJSON(t, http.MethodDelete, server.URL+"/api/comments/"+commentID, adminToken, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestAdminStats(t *testing.T) {
	server, store := newTestServer(t)
	adminToken := login(t, server, testAdminEmail, testAdminPassword)
	userToken := registerUser(t, server, "liker@example.com")
	projectID := firstProjectID(t, store)

	resp, _ := doJSON(t, http.MethodPost, server.URL+"/api/likes/toggle", userToken, map[string]any{
		"projectId": projectID.String(),
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, body := doJSON(t, http.MethodGet, server.URL+"/api/admin/stats", adminToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, float64(3), body["totalProjects"])
	assert.Equal(t, float64(2), body["publishedProjects"])
	assert.Equal(t, float64(1), body["draftProjects"])
	assert.Equal(t, float64(3), body["totalAchievements"])
	assert.Equal(t, float64(4), body["totalTools"])
	assert.Equal(t, float64(1), body["totalLikes"])

	popular, ok := body["popularProjects"].([]any)
	require.True(t, ok)
	require.NotEmpty(t, popular)
	top, ok := popular[0].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, projectID.String(), top["id"], "the liked project ranks first")
}

func TestUserProfileUpdate(t *testing.T) {
	server, _ := newTestServer(t)
	adminToken := login(t, server, testAdminEmail, testAdminPassword)

	resp, body := doJSON(t, http.MethodPatch, server.URL+"/api/user/about", adminToken, map[string]any{
		"aboutText": "Updated about text",
		"name":      "Should Be Ignored",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	user, ok := body["user"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "Updated about text", user["aboutText"])
	assert.Equal(t, "Site Owner", user["name"], "about form cannot rename the account")

	resp, body = doJSON(t, http.MethodPatch, server.URL+"/api/user/profile", adminToken, map[string]any{
		"name": "Renamed Owner",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	user, ok = body["user"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "Renamed Owner", user["name"])

	// The public profile reflects the change.
	resp, profile := doJSON(t, http.MethodGet, server.URL+"/api/profile", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Renamed Owner", profile["name"])
}

func TestExpiredTokenRejected(t *testing.T) {
	server, _ := newTestServer(t)

	resp, _ := doJSON(t, http.MethodGet, server.URL+"/api/likes/user", "garbage-token", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	req, err := http.NewRequest(http.MethodGet, server.URL+"/api/likes/user", nil)
	require.NoError(t, err)
	req.Header.Set("Authorization", "NotBearer something")
	raw, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	raw.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, raw.StatusCode)
}

func TestProjectCRUD(t *testing.T) {
	server, _ := newTestServer(t)
	adminToken := login(t, server, testAdminEmail, testAdminPassword)

	resp, created := doJSON(t, http.MethodPost, server.URL+"/api/projects", adminToken, map[string]any{
		"title":       "CRUD Project",
		"description": "Lifecycle test",
		"category":    "Web App",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	id, _ := created["id"].(string)
	require.NotEmpty(t, id)

	resp, fetched := doJSON(t, http.MethodGet, server.URL+"/api/projects/"+id, "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "CRUD Project", fetched["title"])

	resp, updated := doJSON(t, http.MethodPatch, server.URL+"/api/projects/"+id, adminToken, map[string]any{
		"title": "CRUD Project v2",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "CRUD Project v2", updated["title"])
	assert.Equal(t, "Lifecycle test", updated["description"])

	resp, _ = doJSON(t, http.MethodDelete, server.URL+"/api/projects/"+id, adminToken, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, _ = doJSON(t, http.MethodGet, server.URL+"/api/projects/"+id, "", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	// Creating without required fields fails.
	resp, _ = doJSON(t, http.MethodPost, server.URL+"/api/projects", adminToken, map[string]any{
		"title": "No description",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestAchievementDateFormats(t *testing.T) {
	server, _ := newTestServer(t)
	adminToken := login(t, server, testAdminEmail, testAdminPassword)

	for i, date := range []string{"2024-06-01", "2024-06-01T12:30:00Z"} {
		resp, body := doJSON(t, http.MethodPost, server.URL+"/api/achievements", adminToken, map[string]any{
			"title":       fmt.Sprintf("Cert %d", i),
			"description": "Accepts both date encodings",
			"icon":        "badge",
			"date":        date,
		})
		require.Equal(t, http.StatusCreated, resp.StatusCode, date)
		assert.NotEmpty(t, body["date"])
	}
}
