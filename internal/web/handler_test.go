package web

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"cargo-portal/config"
	"cargo-portal/internal/backend"
	"cargo-portal/internal/db"
	"cargo-portal/internal/model"
	"cargo-portal/internal/session"
	"cargo-portal/internal/store"
)

const sessionCookie = "cargo_session"

// testEnv wires the router to a fake backend and an in-memory database.
type testEnv struct {
	router  *gin.Engine
	store   store.Store
	cfg     *config.Config
	cache   *cache.Cache
	backend *http.ServeMux

	mu     sync.Mutex
	calls  map[string]int
	bodies map[string][]byte
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	env := &testEnv{
		backend: http.NewServeMux(),
		calls:   make(map[string]int),
		bodies:  make(map[string][]byte),
	}
	srv := httptest.NewServer(env.backend)
	t.Cleanup(srv.Close)

	cfg := &config.Config{
		Backend: config.BackendConfig{BaseURL: srv.URL + "/api"},
		Server:  config.ServerConfig{RateLimitBurst: 1000, RateLimitPerSec: 1000},
		Site:    config.SiteConfig{Name: "Cargo"},
	}
	cfg.ApplyDefaults()
	env.cfg = cfg

	gormDB, err := db.Open(&config.DatabaseConfig{Driver: "sqlite", DSN: "file::memory:", MaxOpenConns: 1})
	require.NoError(t, err)
	require.NoError(t, db.Migrate(gormDB))
	sqlDB, _ := gormDB.DB()
	t.Cleanup(func() { sqlDB.Close() })
	env.store = store.NewGormStore(gormDB)

	client, err := backend.New(cfg.Backend, zap.NewNop())
	require.NoError(t, err)

	sessions := session.NewManager(env.store, sessionCookie, cfg.Server.SessionTTL, false, zap.NewNop())
	env.cache = cache.New(time.Minute, time.Minute)
	handler := NewHandler(cfg, client, sessions, env.store, env.cache, zap.NewNop())

	env.router, err = NewRouter(handler)
	require.NoError(t, err)
	return env
}

// handle registers a JSON response for a backend route like "GET /api/shipments".
func (e *testEnv) handle(pattern string, status int, body any) {
	e.backend.HandleFunc(pattern, func(w http.ResponseWriter, r *http.Request) {
		e.mu.Lock()
		e.calls[pattern]++
		if b, err := io.ReadAll(r.Body); err == nil {
			e.bodies[pattern] = b
		}
		e.mu.Unlock()

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		if body != nil {
			_ = json.NewEncoder(w).Encode(body)
		}
	})
}

func (e *testEnv) called(pattern string) int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.calls[pattern]
}

func (e *testEnv) body(pattern string) []byte {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.bodies[pattern]
}

// login creates a session directly in the store and returns its cookie.
func (e *testEnv) login(t *testing.T, roles ...string) *http.Cookie {
	t.Helper()
	user, err := json.Marshal(model.User{ID: "u1", Name: "Ada Admin", Email: "ada@example.com", Roles: roles})
	require.NoError(t, err)

	sess := &model.Session{
		ID:        "sess-" + strings.Join(roles, "-"),
		Token:     "backend-token",
		UserJSON:  string(user),
		ExpiresAt: time.Now().Add(time.Hour),
	}
	require.NoError(t, e.store.CreateSession(context.Background(), sess))
	return &http.Cookie{Name: sessionCookie, Value: sess.ID}
}

func (e *testEnv) get(path string, cookie *http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if cookie != nil {
		req.AddCookie(cookie)
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func (e *testEnv) post(path string, form url.Values, cookie *http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if cookie != nil {
		req.AddCookie(cookie)
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func (e *testEnv) sendJSON(method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}
