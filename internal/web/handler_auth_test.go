package web

import (
	"net/http"
	"net/url"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cargo-portal/internal/model"
)

func TestLogin(t *testing.T) {
	env := newTestEnv(t)
	env.handle("POST /api/auth/login", http.StatusOK, map[string]any{"data": model.LoginResult{
		Token: "tok-1",
		User:  model.User{ID: "u1", Name: "Ada", Email: "ada@example.com", Role: "admin"},
	}})

	w := env.post("/login", url.Values{"email": {"ada@example.com"}, "password": {"secret"}, "next": {"/dashboard/statuses"}}, nil)
	require.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/dashboard/statuses", w.Header().Get("Location"))
	assert.JSONEq(t, `{"email":"ada@example.com","password":"secret"}`, string(env.body("POST /api/auth/login")))

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, sessionCookie, cookies[0].Name)

	// Already signed in: the login page forwards to the dashboard.
	w = env.get("/login", cookies[0])
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/dashboard", w.Header().Get("Location"))

	w = env.post("/logout", nil, cookies[0])
	assert.Equal(t, http.StatusSeeOther, w.Code)
	w = env.get("/dashboard", cookies[0])
	assert.Equal(t, http.StatusSeeOther, w.Code, "session is gone after logout")
}

func TestLogin_FetchesProfileWhenMissing(t *testing.T) {
	env := newTestEnv(t)
	claims := jwt.MapClaims{"sub": "u2", "roles": []string{"staff"}, "exp": time.Now().Add(time.Hour).Unix()}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("backend-secret"))
	require.NoError(t, err)

	env.handle("POST /api/auth/login", http.StatusOK, map[string]string{"token": token})
	env.handle("GET /api/auth/me", http.StatusOK, model.User{ID: "u2", Name: "Kofi"})
	env.handle("GET /api/shipments", http.StatusOK, []model.Shipment{})
	withOptions(env)

	w := env.post("/login", url.Values{"email": {"kofi@example.com"}, "password": {"pw"}}, nil)
	require.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/dashboard", w.Header().Get("Location"))
	assert.Equal(t, 1, env.called("GET /api/auth/me"))

	page := env.get("/dashboard", w.Result().Cookies()[0])
	assert.Equal(t, http.StatusOK, page.Code, "roles come from the token claims")
	assert.Contains(t, page.Body.String(), "Welcome back, Kofi.")
}

func TestLogin_Failures(t *testing.T) {
	env := newTestEnv(t)
	env.handle("POST /api/auth/login", http.StatusUnauthorized, map[string]string{"message": "Invalid credentials"})

	w := env.post("/login", url.Values{"email": {"ada@example.com"}}, nil)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, w.Body.String(), "password is required")
	assert.Equal(t, 0, env.called("POST /api/auth/login"))

	w = env.post("/login", url.Values{"email": {"ada@example.com"}, "password": {"wrong"}}, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid credentials")
	assert.Empty(t, w.Result().Cookies())
}

func TestSafeNext(t *testing.T) {
	testCases := map[string]string{
		"":                       "/dashboard",
		"/dashboard/slides/hero": "/dashboard/slides/hero",
		"//evil.example":         "/dashboard",
		"/\\evil.example":        "/dashboard",
		"https://evil.example":   "/dashboard",
	}
	for in, want := range testCases {
		assert.Equal(t, want, safeNext(in), in)
	}
}
