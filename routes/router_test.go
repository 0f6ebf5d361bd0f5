package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tamohar/foundationbackend/database"
	"github.com/tamohar/foundationbackend/middleware"
	"github.com/tamohar/foundationbackend/services"
	"github.com/tamohar/foundationbackend/utils"
)

const (
	adminEmail    = "admin@example.org"
	adminPassword = "router-test-password"
	testSecret    = "router-test-secret-0123456789"
)

type testServer struct {
	router  *gin.Engine
	stores  *database.Stores
	objects *utils.MemoryStore
}

func newTestServer(t *testing.T, opts ...func(*RouterDeps)) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	stores := database.NewMemoryStores()
	seeder := services.NewSeeder(stores.Content, stores.Users, "site_content", utils.AdminSeed{
		Email: adminEmail, Password: adminPassword, Name: "Admin",
	})
	tokens := utils.NewTokenService(testSecret, time.Hour, nil)
	objects := utils.NewMemoryStore("http://localhost:8080/uploads")

	deps := RouterDeps{
		ServiceName: "foundation-backend",
		Version:     "test",
		Ping:        stores.Ping,
		Auth:        services.NewAuthService(stores.Users, tokens, seeder),
		Content:     services.NewContentService(stores.Content, seeder),
		Submissions: services.NewSubmissionService(stores),
		Media:       services.NewMediaService(stores.Media, objects, utils.NewImageValidator(1)),
		Uploads:     objects,
	}
	for _, opt := range opts {
		opt(&deps)
	}
	router := BuildRouter(deps)
	return &testServer{router: router, stores: stores, objects: objects}
}

func (s *testServer) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *testServer) login(t *testing.T) string {
	t.Helper()
	w := s.do(t, http.MethodPost, "/auth/login", "", gin.H{"email": adminEmail, "password": adminPassword})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		Data struct {
			Token string `json:"token"`
			User  struct {
				Email string `json:"email"`
				Role  string `json:"role"`
			} `json:"user"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Data.Token)
	assert.Equal(t, adminEmail, resp.Data.User.Email)
	assert.Equal(t, "admin", resp.Data.User.Role)
	return resp.Data.Token
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

func TestHealth(t *testing.T) {
	s := newTestServer(t)
	w := s.do(t, http.MethodGet, "/health", "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	body := decode(t, w)
	assert.Equal(t, "ok", body["status"])
	assert.Equal(t, "up", body["db"])
	assert.Equal(t, "foundation-backend", body["service"])
	_, err := time.Parse(time.RFC3339, body["timestamp"].(string))
	assert.NoError(t, err)
}

func TestPublicContent(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodGet, "/content", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	data := decode(t, w)["data"].(map[string]any)
	assert.Equal(t, "site_content", data["type"])
	assert.Contains(t, data, "hero")
	assert.Contains(t, data, "programs")

	w = s.do(t, http.MethodGet, "/content/hero", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, `"hero-v0"`, w.Header().Get("ETag"))

	w = s.do(t, http.MethodGet, "/content/doesNotExist", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "section not found", decode(t, w)["error"])
}

func TestPutContentRequiresAuth(t *testing.T) {
	s := newTestServer(t)
	before := s.do(t, http.MethodGet, "/content/hero", "", nil).Body.String()

	valid := s.login(t)
	admin, err := s.stores.Users.FindByEmail(context.Background(), adminEmail)
	require.NoError(t, err)
	expired, _, err := utils.NewTokenService(testSecret, -time.Minute, nil).Issue(admin.ID.Hex(), admin.Email, string(admin.Role))
	require.NoError(t, err)

	users, ok := s.stores.Users.(*database.MemoryUserStore)
	require.True(t, ok)

	cases := []struct {
		name   string
		token  string
		before func()
	}{
		{name: "missing"},
		{name: "garbage", token: "garbage"},
		{name: "expired", token: expired},
		{name: "deleted user", token: valid, before: func() { users.Remove(admin.ID) }},
	}
	for _, tc := range cases {
		if tc.before != nil {
			tc.before()
		}
		w := s.do(t, http.MethodPut, "/content/hero", tc.token, gin.H{"data": gin.H{"title": "hacked"}})
		assert.Equal(t, http.StatusUnauthorized, w.Code, tc.name)
		assert.Equal(t, "unauthorized", decode(t, w)["error"], tc.name)
	}

	after := s.do(t, http.MethodGet, "/content/hero", "", nil).Body.String()
	assert.JSONEq(t, before, after)
}

func TestPutContentFlow(t *testing.T) {
	s := newTestServer(t)
	token := s.login(t)

	w := s.do(t, http.MethodPut, "/content/hero", token, gin.H{"data": gin.H{"title": "Updated"}, "version": 0})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	data := decode(t, w)["data"].(map[string]any)
	assert.Equal(t, "Content updated successfully", data["message"])
	assert.Equal(t, float64(1), data["version"])

	w = s.do(t, http.MethodGet, "/content/hero", "", nil)
	assert.JSONEq(t, `{"data":{"title":"Updated"}}`, w.Body.String())
	assert.Equal(t, `"hero-v1"`, w.Header().Get("ETag"))

	w = s.do(t, http.MethodPut, "/content/hero", token, gin.H{"data": gin.H{"title": "Stale"}, "version": 0})
	assert.Equal(t, http.StatusConflict, w.Code)

	w = s.do(t, http.MethodPut, "/content/hero", token, gin.H{"data": []any{}})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(t, http.MethodPut, "/content/versions", token, gin.H{"data": gin.H{}})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestContactSubmissionEndToEnd(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodPost, "/contact", "", gin.H{"name": "A", "email": "a@x.com", "phone": "123", "subject": "Hi", "message": "test"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.JSONEq(t, `{"data":{"message":"Thank you for contacting us!"}}`, w.Body.String())

	w = s.do(t, http.MethodGet, "/inquiries", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	token := s.login(t)
	w = s.do(t, http.MethodGet, "/inquiries", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	items := decode(t, w)["data"].([]any)
	require.Len(t, items, 1)
	inquiry := items[0].(map[string]any)
	assert.Equal(t, "new", inquiry["status"])
	assert.Equal(t, "test", inquiry["message"])
	id := inquiry["id"].(string)

	w = s.do(t, http.MethodPut, "/inquiries/"+id, token, gin.H{"status": "resolved"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.JSONEq(t, `{"data":{"message":"Inquiry updated"}}`, w.Body.String())

	w = s.do(t, http.MethodPut, "/inquiries/"+id, token, gin.H{"status": "new"})
	assert.Equal(t, http.StatusConflict, w.Code)
	w = s.do(t, http.MethodPut, "/inquiries/"+id, token, gin.H{"status": "whatever"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	w = s.do(t, http.MethodPut, "/inquiries/0123456789abcdef01234567", token, gin.H{"status": "resolved"})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = s.do(t, http.MethodDelete, "/inquiries/"+id, token, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	w = s.do(t, http.MethodDelete, "/inquiries/"+id, token, nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestSubmissionValidation(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodPost, "/contact", "", gin.H{"name": "A", "email": "not-an-email", "message": "x"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, decode(t, w), "error")

	w = s.do(t, http.MethodPost, "/volunteer", "", gin.H{"email": "v@x.com"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(t, http.MethodPost, "/volunteer", "", gin.H{"name": "V", "email": "v@x.com", "skills": "teaching"})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"data":{"message":"Thank you for your interest in volunteering!"}}`, w.Body.String())
}

func TestNewsletter(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodPost, "/newsletter", "", gin.H{"email": "Reader@Example.org"})
	assert.JSONEq(t, `{"data":{"message":"Thank you for subscribing!"}}`, w.Body.String())
	w = s.do(t, http.MethodPost, "/newsletter", "", gin.H{"email": "reader@example.org"})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"data":{"message":"You are already subscribed!"}}`, w.Body.String())

	token := s.login(t)
	w = s.do(t, http.MethodGet, "/newsletter", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode(t, w)["data"].([]any), 1)
}

func TestLoginAndVerify(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodPost, "/auth/login", "", gin.H{"email": adminEmail, "password": "wrong"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "invalid credentials", decode(t, w)["error"])

	token := s.login(t)
	w = s.do(t, http.MethodGet, "/auth/verify", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	user := decode(t, w)["data"].(map[string]any)
	assert.Equal(t, adminEmail, user["email"])
	assert.Equal(t, "admin", user["role"])
	assert.NotContains(t, user, "passwordHash")

	w = s.do(t, http.MethodPost, "/auth/logout", token, nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestCreateUserRequiresAdmin(t *testing.T) {
	s := newTestServer(t)
	token := s.login(t)

	w := s.do(t, http.MethodPost, "/users", token, gin.H{"email": "ed@example.org", "password": "editor-pass", "role": "editor"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = s.do(t, http.MethodPost, "/users", token, gin.H{"email": "ed@example.org", "password": "editor-pass"})
	assert.Equal(t, http.StatusConflict, w.Code)

	w = s.do(t, http.MethodPost, "/users", token, gin.H{"email": "long@example.org", "password": strings.Repeat("p", 80)})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	w = s.do(t, http.MethodPost, "/users/me/password", token, gin.H{"currentPassword": adminPassword, "newPassword": strings.Repeat("p", 80)})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(t, http.MethodPost, "/auth/login", "", gin.H{"email": "ed@example.org", "password": "editor-pass"})
	require.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		Data struct {
			Token string `json:"token"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	w = s.do(t, http.MethodPost, "/users", resp.Data.Token, gin.H{"email": "x@example.org", "password": "password-x"})
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = s.do(t, http.MethodPut, "/content/about", resp.Data.Token, gin.H{"data": gin.H{"title": "By editor"}})
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestMediaUpload(t *testing.T) {
	s := newTestServer(t)
	token := s.login(t)

	body := &bytes.Buffer{}
	mw := multipart.NewWriter(body)
	part, err := mw.CreateFormFile("file", "banner.png")
	require.NoError(t, err)
	_, err = part.Write([]byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR"))
	require.NoError(t, err)
	require.NoError(t, mw.WriteField("caption", "Banner"))
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/media", body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	asset := decode(t, w)["data"].(map[string]any)
	assert.Equal(t, "Banner", asset["caption"])
	assert.Equal(t, adminEmail, asset["uploadedBy"])

	w = s.do(t, http.MethodGet, "/uploads/"+asset["objectName"].(string), "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "image/png", w.Header().Get("Content-Type"))

	w = s.do(t, http.MethodDelete, "/media/"+asset["id"].(string), token, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	w = s.do(t, http.MethodDelete, "/media/"+asset["id"].(string), token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCORSPreflight(t *testing.T) {
	s := newTestServer(t)
	req := httptest.NewRequest(http.MethodOptions, "/content/hero", nil)
	req.Header.Set("Origin", "https://example.org")
	req.Header.Set("Access-Control-Request-Method", "PUT")
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}

func (s *testServer) subscribeFrom(t *testing.T, remoteAddr, forwardedFor string, n int) int {
	t.Helper()
	raw, err := json.Marshal(gin.H{"email": fmt.Sprintf("reader%d@example.org", n)})
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, "/newsletter", bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	req.RemoteAddr = remoteAddr
	if forwardedFor != "" {
		req.Header.Set("X-Forwarded-For", forwardedFor)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w.Code
}

func TestRateLimitIgnoresForwardedForFromUntrustedPeer(t *testing.T) {
	s := newTestServer(t, func(d *RouterDeps) {
		d.FormLimiter = middleware.NewIPRateLimiter(0.001, 2)
	})

	limited := 0
	for i := 0; i < 20; i++ {
		code := s.subscribeFrom(t, "203.0.113.7:40000", fmt.Sprintf("198.51.100.%d", i+1), i)
		if code == http.StatusTooManyRequests {
			limited++
		} else {
			assert.Equal(t, http.StatusOK, code)
		}
	}
	assert.Equal(t, 18, limited)
}

func TestRateLimitUsesForwardedForFromTrustedProxy(t *testing.T) {
	s := newTestServer(t, func(d *RouterDeps) {
		d.FormLimiter = middleware.NewIPRateLimiter(0.001, 1)
		d.TrustedProxies = []string{"10.0.0.1"}
	})

	assert.Equal(t, http.StatusOK, s.subscribeFrom(t, "10.0.0.1:40000", "198.51.100.1", 1))
	assert.Equal(t, http.StatusOK, s.subscribeFrom(t, "10.0.0.1:40000", "198.51.100.2", 2))
	assert.Equal(t, http.StatusTooManyRequests, s.subscribeFrom(t, "10.0.0.1:40000", "198.51.100.1", 3))
}
