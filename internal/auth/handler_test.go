package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"orientation-service/internal/logger"
	"orientation-service/internal/metrics"
	"orientation-service/internal/user"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memoryUsers is an in-memory user.Repository.
type memoryUsers struct {
	mu     sync.Mutex
	nextID int
	users  map[string]*user.User
}

func newMemoryUsers() *memoryUsers {
	return &memoryUsers{users: map[string]*user.User{}}
}

func (m *memoryUsers) Create(_ context.Context, u *user.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.users[u.Username]; ok {
		return user.ErrUsernameTaken
	}
	m.nextID++
	u.ID = m.nextID
	stored := *u
	m.users[u.Username] = &stored
	return nil
}

func (m *memoryUsers) GetByUsername(_ context.Context, username string) (*user.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[username]
	if !ok {
		return nil, user.ErrUserNotFound
	}
	found := *u
	return &found, nil
}

func (m *memoryUsers) UpdatePassword(_ context.Context, username, hash string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[username]
	if !ok {
		return user.ErrUserNotFound
	}
	u.Password = hash
	return nil
}

func (m *memoryUsers) ListWithCareerPaths(context.Context) ([]user.Summary, error) {
	return nil, nil
}

func (m *memoryUsers) UpdatePreferences(context.Context, *user.User) error {
	return nil
}

type authFixture struct {
	router      chi.Router
	users       *memoryUsers
	credentials *Credentials
}

func newAuthFixture() *authFixture {
	users := newMemoryUsers()
	credentials := NewCredentials("test-secret-key-for-testing", 30*time.Minute)
	log := logger.NewDiscard()

	router := chi.NewRouter()
	requireAuth := RequireAuth(credentials, users, log)
	NewHandler(NewService(users, credentials, metrics.NewMock()), log).RegisterRoutes(router, requireAuth)
	router.With(requireAuth).Get("/whoami", func(w http.ResponseWriter, r *http.Request) {
		u, _ := user.FromContext(r.Context())
		w.Write([]byte(u.Username))
	})

	return &authFixture{router: router, users: users, credentials: credentials}
}

func (f *authFixture) signup(t *testing.T, username, password string) *httptest.ResponseRecorder {
	t.Helper()
	body, _ := json.Marshal(map[string]interface{}{"username": username, "password": password})
	req := httptest.NewRequest(http.MethodPost, "/auth/signup", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	return w
}

func (f *authFixture) login(t *testing.T, username, password string) *httptest.ResponseRecorder {
	t.Helper()
	form := url.Values{"username": {username}, "password": {password}}
	req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	return w
}

func (f *authFixture) token(t *testing.T, username, password string) string {
	t.Helper()
	w := f.login(t, username, password)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var resp TokenResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	return resp.AccessToken
}

func TestAuthHandler(t *testing.T) {
	t.Run("Signup_Success", func(t *testing.T) {
		f := newAuthFixture()

		w := f.signup(t, "alice", "password123")

		assert.Equal(t, http.StatusCreated, w.Code)
		var profile user.Profile
		require.NoError(t, json.NewDecoder(w.Body).Decode(&profile))
		assert.Equal(t, "alice", profile.Username)
		assert.NotContains(t, w.Body.String(), "password")

		stored, err := f.users.GetByUsername(context.Background(), "alice")
		require.NoError(t, err)
		assert.NotEqual(t, "password123", stored.Password)
	})

	t.Run("Signup_DuplicateUsername", func(t *testing.T) {
		f := newAuthFixture()

		require.Equal(t, http.StatusCreated, f.signup(t, "alice", "password123").Code)
		w := f.signup(t, "alice", "other")

		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Contains(t, w.Body.String(), "Username already registered")
	})

	t.Run("Signup_ValidationError", func(t *testing.T) {
		f := newAuthFixture()

		w := f.signup(t, "", "password123")

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Signup_PasswordTooLong", func(t *testing.T) {
		f := newAuthFixture()

		w := f.signup(t, "alice", strings.Repeat("a", 80))

		assert.Equal(t, http.StatusBadRequest, w.Code)
		_, err := f.users.GetByUsername(context.Background(), "alice")
		assert.ErrorIs(t, err, user.ErrUserNotFound)
	})

	t.Run("Signup_MultibytePasswordTooLong", func(t *testing.T) {
		f := newAuthFixture()

		// 30 runes, 75 bytes.
		w := f.signup(t, "alice", strings.Repeat("é€", 15))

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "at most 72 bytes")
	})

	t.Run("Login_Success", func(t *testing.T) {
		f := newAuthFixture()
		f.signup(t, "alice", "password123")

		w := f.login(t, "alice", "password123")

		assert.Equal(t, http.StatusOK, w.Code)
		var resp TokenResponse
		require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
		assert.Equal(t, "bearer", resp.TokenType)
		assert.NotEmpty(t, resp.AccessToken)

		subject, err := f.credentials.ValidateToken(resp.AccessToken)
		require.NoError(t, err)
		assert.Equal(t, "alice", subject)
	})

	t.Run("Login_FailuresAreIndistinguishable", func(t *testing.T) {
		f := newAuthFixture()
		f.signup(t, "alice", "password123")

		wrongPassword := f.login(t, "alice", "nope")
		unknownUser := f.login(t, "bob", "password123")

		assert.Equal(t, http.StatusUnauthorized, wrongPassword.Code)
		assert.Equal(t, http.StatusUnauthorized, unknownUser.Code)
		assert.Equal(t, wrongPassword.Body.String(), unknownUser.Body.String())
		assert.Contains(t, wrongPassword.Body.String(), "Incorrect username or password")
		assert.Equal(t, "Bearer", wrongPassword.Header().Get("WWW-Authenticate"))
	})

	t.Run("Login_MissingFields", func(t *testing.T) {
		f := newAuthFixture()

		w := f.login(t, "alice", "")

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("ResetPassword_Owner", func(t *testing.T) {
		f := newAuthFixture()
		f.signup(t, "alice", "password123")
		token := f.token(t, "alice", "password123")

		req := httptest.NewRequest(http.MethodPut, "/auth/reset-password/alice", strings.NewReader(`{"new_password":"fresh-pass"}`))
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()
		f.router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, http.StatusUnauthorized, f.login(t, "alice", "password123").Code)
		assert.Equal(t, http.StatusOK, f.login(t, "alice", "fresh-pass").Code)
	})

	t.Run("ResetPassword_OtherUserRejected", func(t *testing.T) {
		f := newAuthFixture()
		f.signup(t, "alice", "password123")
		f.signup(t, "mallory", "password123")
		token := f.token(t, "mallory", "password123")

		req := httptest.NewRequest(http.MethodPut, "/auth/reset-password/alice", strings.NewReader(`{"new_password":"owned"}`))
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()
		f.router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, http.StatusOK, f.login(t, "alice", "password123").Code)
	})

	t.Run("ResetPassword_PasswordTooLong", func(t *testing.T) {
		f := newAuthFixture()
		f.signup(t, "alice", "password123")
		token := f.token(t, "alice", "password123")

		body, _ := json.Marshal(map[string]string{"new_password": strings.Repeat("a", 80)})
		req := httptest.NewRequest(http.MethodPut, "/auth/reset-password/alice", bytes.NewReader(body))
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()
		f.router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, http.StatusOK, f.login(t, "alice", "password123").Code)
	})

	t.Run("ResetPassword_RequiresToken", func(t *testing.T) {
		f := newAuthFixture()
		f.signup(t, "alice", "password123")

		req := httptest.NewRequest(http.MethodPut, "/auth/reset-password/alice", strings.NewReader(`{"new_password":"x"}`))
		w := httptest.NewRecorder()
		f.router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestRequireAuth(t *testing.T) {
	t.Run("ResolvesUser", func(t *testing.T) {
		f := newAuthFixture()
		f.signup(t, "alice", "password123")
		token := f.token(t, "alice", "password123")

		req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()
		f.router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "alice", w.Body.String())
	})

	t.Run("RejectsMissingHeader", func(t *testing.T) {
		f := newAuthFixture()

		w := httptest.NewRecorder()
		f.router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/whoami", nil))

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, "Bearer", w.Header().Get("WWW-Authenticate"))
	})

	t.Run("RejectsWrongScheme", func(t *testing.T) {
		f := newAuthFixture()

		req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
		req.Header.Set("Authorization", "Basic YWxpY2U6cGFzcw==")
		w := httptest.NewRecorder()
		f.router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("RejectsTokenOfDeletedUser", func(t *testing.T) {
		f := newAuthFixture()
		token, _, err := f.credentials.IssueToken("ghost")
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()
		f.router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}
