package session

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"cargo-portal/config"
	"cargo-portal/internal/db"
	"cargo-portal/internal/model"
	"cargo-portal/internal/store"
)

func newTestManager(t *testing.T) (*Manager, store.Store) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	gormDB, err := db.Open(&config.DatabaseConfig{Driver: "sqlite", DSN: "file::memory:", MaxOpenConns: 1})
	require.NoError(t, err)
	require.NoError(t, db.Migrate(gormDB))
	sqlDB, _ := gormDB.DB()
	t.Cleanup(func() { sqlDB.Close() })

	s := store.NewGormStore(gormDB)
	return NewManager(s, "cargo_session", 24*time.Hour, false, zap.NewNop()), s
}

func newContext(req *http.Request) (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = req
	return c, w
}

func TestManager_StartAndLoad(t *testing.T) {
	m, _ := newTestManager(t)

	c, w := newContext(httptest.NewRequest(http.MethodPost, "/login", nil))
	profile, err := m.Start(c, &model.LoginResult{
		Token: "opaque",
		User:  model.User{ID: "u1", Name: "Ada", Role: "admin"},
	})
	require.NoError(t, err)
	assert.True(t, profile.IsAdmin())
	assert.Same(t, profile, Current(c))

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "cargo_session", cookies[0].Name)
	assert.True(t, cookies[0].HttpOnly)

	req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	req.AddCookie(&http.Cookie{Name: "cargo_session", Value: cookies[0].Value})
	c2, _ := newContext(req)

	loaded := m.Load(c2)
	assert.True(t, loaded.IsAuthenticated())
	assert.Equal(t, "Ada", loaded.User.Name)
	assert.Equal(t, "opaque", loaded.Token)
	assert.True(t, loaded.IsAdmin())
}

func TestManager_TokenExpiryBoundsSession(t *testing.T) {
	m, _ := newTestManager(t)
	now := time.Now()
	m.now = func() time.Time { return now }

	exp := now.Add(time.Hour).Truncate(time.Second)
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, tokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(exp)},
	}).SignedString([]byte("k"))
	require.NoError(t, err)

	c, _ := newContext(httptest.NewRequest(http.MethodPost, "/login", nil))
	profile, err := m.Start(c, &model.LoginResult{Token: token})
	require.NoError(t, err)
	assert.True(t, exp.Equal(profile.ExpiresAt))

	expired, err := jwt.NewWithClaims(jwt.SigningMethodHS256, tokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(now.Add(-time.Minute))},
	}).SignedString([]byte("k"))
	require.NoError(t, err)
	_, err = m.Start(c, &model.LoginResult{Token: expired})
	assert.Error(t, err)
}

func TestManager_LoadUnknownCookie(t *testing.T) {
	m, _ := newTestManager(t)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: "cargo_session", Value: "does-not-exist"})
	c, w := newContext(req)

	p := m.Load(c)
	assert.False(t, p.IsAuthenticated())
	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "", cookies[0].Value)
	assert.True(t, cookies[0].MaxAge < 0)
}

func TestManager_FlashAndDestroy(t *testing.T) {
	m, s := newTestManager(t)

	c, _ := newContext(httptest.NewRequest(http.MethodPost, "/login", nil))
	profile, err := m.Start(c, &model.LoginResult{Token: "tok", User: model.User{Email: "a@b.co"}})
	require.NoError(t, err)

	m.Flash(c, "success", "Facility saved")
	assert.Equal(t, store.Flash{Kind: "success", Message: "Facility saved"}, m.TakeFlash(c))
	assert.Equal(t, store.Flash{}, m.TakeFlash(c))

	m.Destroy(c)
	assert.False(t, Current(c).IsAuthenticated())
	_, err = s.GetSession(c.Request.Context(), profile.SessionID, time.Now())
	assert.ErrorIs(t, err, store.ErrSessionNotFound)

	// Anonymous flashes are dropped silently.
	m.Flash(c, "error", "ignored")
	assert.Equal(t, store.Flash{}, m.TakeFlash(c))
}
