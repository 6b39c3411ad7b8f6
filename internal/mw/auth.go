package mw

import (
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"cargo-portal/internal/session"
)

// Session resolves the session cookie and attaches the profile.
func Session(m *session.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		session.Attach(c, m.Load(c))
		c.Next()
	}
}

// RequireAuth redirects anonymous visitors to the login page.
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !session.Current(c).IsAuthenticated() {
			c.Redirect(http.StatusSeeOther, "/login?next="+url.QueryEscape(c.Request.URL.RequestURI()))
			c.Abort()
			return
		}
		c.Next()
	}
}

// RequireRole hands the request to denied when allowed rejects the current
// profile. denied must write a 403 response; a nil denied sends a bare 403.
func RequireRole(allowed func(*session.Profile) bool, denied gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		if allowed(session.Current(c)) {
			c.Next()
			return
		}
		if denied != nil {
			denied(c)
		}
		if !c.Writer.Written() {
			c.Status(http.StatusForbidden)
		}
		c.Abort()
	}
}
