package http

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/tair/crumbly/internal/user/domain"
	"github.com/tair/crumbly/internal/user/usecase/command"
	"github.com/tair/crumbly/internal/user/usecase/query"
	"github.com/tair/crumbly/kafka"
	"github.com/tair/crumbly/pkg/auth"
	"github.com/tair/crumbly/pkg/storage"
)

// memoryUsers is an in-memory user repository keyed by email
type memoryUsers struct {
	mu    sync.Mutex
	users map[string]*domain.User
}

func newMemoryUsers() *memoryUsers {
	return &memoryUsers{users: map[string]*domain.User{}}
}

func (m *memoryUsers) Create(_ context.Context, user *domain.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.users[user.Email]; ok {
		return domain.ErrEmailTaken
	}
	user.ID = uint(len(m.users) + 1)
	stored := *user
	m.users[user.Email] = &stored
	return nil
}

func (m *memoryUsers) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if user, ok := m.users[email]; ok {
		copied := *user
		return &copied, nil
	}
	return nil, domain.ErrUserNotFound
}

func (m *memoryUsers) Count(context.Context) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return int64(len(m.users)), nil
}

type testServer struct {
	router   *mux.Router
	handler  *UserHandler
	tokens   *auth.TokenManager
	photoDir string
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	repo := newMemoryUsers()
	photoDir := t.TempDir()
	photos, err := storage.NewLocalStorage(photoDir)
	require.NoError(t, err)

	tokens := auth.NewTokenManager("test-secret", 24*time.Hour)
	h := NewUserHandler(
		command.NewRegisterUserHandler(repo, photos, kafka.NoopPublisher{}, bcrypt.MinCost),
		command.NewLoginUserHandler(repo, tokens),
		query.NewGetSessionHandler(tokens),
		query.NewCountUsersHandler(repo),
		photos,
		SessionConfig{CookieName: "token", TokenTTL: tokens.TTL(), MaxUploadBytes: 1 << 20},
		prometheus.NewRegistry(),
	)

	router := mux.NewRouter()
	h.RegisterRoutes(router)
	return &testServer{router: router, handler: h, tokens: tokens, photoDir: photoDir}
}

func (s *testServer) do(req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func multipartRequest(t *testing.T, fields map[string]string, photoName string, photo []byte) *http.Request {
	t.Helper()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	for key, value := range fields {
		require.NoError(t, writer.WriteField(key, value))
	}
	if photoName != "" {
		part, err := writer.CreateFormFile("photo", photoName)
		require.NoError(t, err)
		_, err = part.Write(photo)
		require.NoError(t, err)
	}
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/registerUser", &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func register(t *testing.T, s *testServer, email string) *httptest.ResponseRecorder {
	t.Helper()
	return s.do(multipartRequest(t, map[string]string{
		"name": "Ann", "email": email, "password": "secret",
	}, "", nil))
}

func TestRegister(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(multipartRequest(t, map[string]string{
		"name": "Ann", "email": "ann@example.com", "password": "secret",
	}, "me.png", []byte("fake-png")))

	assert.Equal(t, http.StatusOK, rec.Code)
	body := decode(t, rec)
	assert.Equal(t, "Success", body["Status"])
	assert.Equal(t, "User successfully registered!", body["message"])

	entries, err := os.ReadDir(s.photoDir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.True(t, strings.HasPrefix(entries[0].Name(), "photo_"))
	assert.Equal(t, ".png", filepath.Ext(entries[0].Name()))

	assert.Equal(t, float64(1), testutil.ToFloat64(s.handler.registeredUsers))
}

func TestRegister_Duplicate(t *testing.T) {
	s := newTestServer(t)
	require.Equal(t, http.StatusOK, register(t, s, "ann@example.com").Code)

	rec := register(t, s, "ann@example.com")
	assert.Equal(t, http.StatusConflict, rec.Code)
	body := decode(t, rec)
	assert.Equal(t, "Exists", body["Status"])
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "User already exists. Please log in.", body["message"])
}

func TestRegister_Validation(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(multipartRequest(t, map[string]string{"name": "Ann"}, "", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Error", decode(t, rec)["Status"])

	rec = s.do(multipartRequest(t, map[string]string{
		"name": "Ann", "email": "ann@example.com", "password": "secret",
	}, "payload.exe", []byte("MZ")))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRegister_URLEncoded(t *testing.T) {
	s := newTestServer(t)

	req := httptest.NewRequest(http.MethodPost, "/registerUser",
		strings.NewReader("name=Bob&email=bob%40example.com&password=secret"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	rec := s.do(req)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func login(s *testServer, email, password string) *httptest.ResponseRecorder {
	body, _ := json.Marshal(LoginRequest{Email: email, Password: password})
	req := httptest.NewRequest(http.MethodPost, "/userLogin", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return s.do(req)
}

func TestLogin(t *testing.T) {
	s := newTestServer(t)
	require.Equal(t, http.StatusOK, register(t, s, "ann@example.com").Code)

	rec := login(s, "ann@example.com", "secret")
	require.Equal(t, http.StatusOK, rec.Code)

	body := decode(t, rec)
	assert.Equal(t, "Success", body["Status"])
	assert.Equal(t, "Login successful!", body["message"])

	user := body["user"].(map[string]interface{})
	assert.Equal(t, "ann@example.com", user["email"])
	assert.NotContains(t, user, "password")
	assert.NotContains(t, user, "PasswordHash")

	claims, err := s.tokens.Validate(body["token"].(string))
	require.NoError(t, err)
	assert.Equal(t, uint(user["id"].(float64)), claims.UserID)

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "token", cookies[0].Name)
	assert.Equal(t, body["token"], cookies[0].Value)
	assert.True(t, cookies[0].HttpOnly)
	assert.Equal(t, http.SameSiteLaxMode, cookies[0].SameSite)
	assert.Equal(t, int((24 * time.Hour).Seconds()), cookies[0].MaxAge)
}

func TestLogin_Failures(t *testing.T) {
	s := newTestServer(t)
	require.Equal(t, http.StatusOK, register(t, s, "ann@example.com").Code)

	rec := login(s, "nobody@example.com", "secret")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "User not found. Please register.", decode(t, rec)["message"])

	rec = login(s, "ann@example.com", "wrong")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Incorrect password.", decode(t, rec)["message"])
	assert.Empty(t, rec.Result().Cookies())
}

func TestLogout(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(httptest.NewRequest(http.MethodGet, "/logout", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Logged out successfully!", decode(t, rec)["message"])

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "token", cookies[0].Name)
	assert.Empty(t, cookies[0].Value)
	assert.Equal(t, -1, cookies[0].MaxAge)
}

func TestMe(t *testing.T) {
	s := newTestServer(t)
	token, err := s.tokens.Generate(auth.Identity{ID: 4, Name: "Ann", Email: "ann@example.com"})
	require.NoError(t, err)

	t.Run("cookie", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.AddCookie(&http.Cookie{Name: "token", Value: token})

		rec := s.do(req)
		require.Equal(t, http.StatusOK, rec.Code)
		user := decode(t, rec)["user"].(map[string]interface{})
		assert.Equal(t, float64(4), user["id"])
		assert.Equal(t, "Ann", user["name"])
	})

	t.Run("bearer", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		assert.Equal(t, http.StatusOK, s.do(req).Code)
	})

	t.Run("anonymous", func(t *testing.T) {
		rec := s.do(httptest.NewRequest(http.MethodGet, "/me", nil))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("garbage", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.Header.Set("Authorization", "Bearer not-a-token")
		assert.Equal(t, http.StatusUnauthorized, s.do(req).Code)
	})
}

func TestPhoto(t *testing.T) {
	s := newTestServer(t)
	require.NoError(t, os.WriteFile(filepath.Join(s.photoDir, "photo_abc.png"), []byte("png-bytes"), 0o644))

	rec := s.do(httptest.NewRequest(http.MethodGet, "/photos/photo_abc.png", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image/png", rec.Header().Get("Content-Type"))
	assert.Equal(t, "png-bytes", rec.Body.String())

	rec = s.do(httptest.NewRequest(http.MethodGet, "/photos/missing.png", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = s.do(httptest.NewRequest(http.MethodGet, "/photos/notes.txt", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestTokenFromRequest(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	assert.Empty(t, TokenFromRequest(req, "token"))

	req.Header.Set("Authorization", "bearer abc")
	assert.Equal(t, "abc", TokenFromRequest(req, "token"))

	req.AddCookie(&http.Cookie{Name: "token", Value: "from-cookie"})
	assert.Equal(t, "from-cookie", TokenFromRequest(req, "token"))
}
