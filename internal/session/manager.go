package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"cargo-portal/internal/model"
	"cargo-portal/internal/store"
)

const profileKey = "cargo.profile"

// Manager issues and resolves browser sessions.
type Manager struct {
	store  store.Store
	cookie string
	ttl    time.Duration
	secure bool
	logger *zap.Logger
	now    func() time.Time
}

// NewManager creates a session manager.
func NewManager(s store.Store, cookie string, ttl time.Duration, secure bool, logger *zap.Logger) *Manager {
	return &Manager{
		store:  s,
		cookie: cookie,
		ttl:    ttl,
		secure: secure,
		logger: logger.Named("session"),
		now:    time.Now,
	}
}

// Start persists a new session for a successful login and sets the cookie.
func (m *Manager) Start(c *gin.Context, login *model.LoginResult) (*Profile, error) {
	now := m.now()
	roles, tokenExp := rolesFor(login.User, login.Token)

	expiresAt := now.Add(m.ttl)
	if !tokenExp.IsZero() && tokenExp.Before(expiresAt) {
		expiresAt = tokenExp
	}
	if !expiresAt.After(now) {
		return nil, fmt.Errorf("token already expired at %s", expiresAt.Format(time.RFC3339))
	}

	userJSON, err := json.Marshal(login.User)
	if err != nil {
		return nil, fmt.Errorf("failed to encode user: %w", err)
	}

	sess := &model.Session{
		ID:        uuid.NewString(),
		Token:     login.Token,
		UserJSON:  string(userJSON),
		ExpiresAt: expiresAt,
	}
	if err := m.store.CreateSession(c.Request.Context(), sess); err != nil {
		return nil, err
	}

	maxAge := int(expiresAt.Sub(now).Seconds())
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(m.cookie, sess.ID, maxAge, "/", "", m.secure, true)

	profile := &Profile{
		SessionID: sess.ID,
		Token:     login.Token,
		User:      login.User,
		Roles:     roles,
		ExpiresAt: expiresAt,
	}
	c.Set(profileKey, profile)
	return profile, nil
}

// Load resolves the request's cookie to a profile. Unknown or expired
// sessions yield an anonymous profile.
func (m *Manager) Load(c *gin.Context) *Profile {
	id, err := c.Cookie(m.cookie)
	if err != nil || id == "" {
		return &Profile{}
	}

	sess, err := m.store.GetSession(c.Request.Context(), id, m.now())
	if err != nil {
		if !errors.Is(err, store.ErrSessionNotFound) {
			m.logger.Error("failed to load session", zap.Error(err))
		}
		m.clearCookie(c)
		return &Profile{}
	}

	var user model.User
	if err := json.Unmarshal([]byte(sess.UserJSON), &user); err != nil {
		m.logger.Warn("session has unreadable user", zap.String("session", sess.ID), zap.Error(err))
	}
	roles, _ := rolesFor(user, sess.Token)

	return &Profile{
		SessionID: sess.ID,
		Token:     sess.Token,
		User:      user,
		Roles:     roles,
		ExpiresAt: sess.ExpiresAt,
	}
}

// Destroy removes the session row and the cookie.
func (m *Manager) Destroy(c *gin.Context) {
	if p := Current(c); p.SessionID != "" {
		if err := m.store.DeleteSession(c.Request.Context(), p.SessionID); err != nil {
			m.logger.Error("failed to delete session", zap.Error(err))
		}
	}
	m.clearCookie(c)
	c.Set(profileKey, &Profile{})
}

// Flash queues a banner for the next page the user sees.
func (m *Manager) Flash(c *gin.Context, kind, message string) {
	p := Current(c)
	if p.SessionID == "" {
		return
	}
	if err := m.store.SetFlash(c.Request.Context(), p.SessionID, store.Flash{Kind: kind, Message: message}); err != nil {
		m.logger.Warn("failed to set flash", zap.Error(err))
	}
}

// TakeFlash pops the queued banner, if any.
func (m *Manager) TakeFlash(c *gin.Context) store.Flash {
	p := Current(c)
	if p.SessionID == "" {
		return store.Flash{}
	}
	flash, err := m.store.TakeFlash(c.Request.Context(), p.SessionID)
	if err != nil && !errors.Is(err, store.ErrSessionNotFound) {
		m.logger.Warn("failed to take flash", zap.Error(err))
	}
	return flash
}

// Purge deletes expired sessions.
func (m *Manager) Purge(ctx context.Context) {
	n, err := m.store.PurgeExpiredSessions(ctx, m.now())
	if err != nil {
		m.logger.Error("failed to purge sessions", zap.Error(err))
		return
	}
	if n > 0 {
		m.logger.Info("purged expired sessions", zap.Int64("count", n))
	}
}

// RunJanitor purges expired sessions every interval until ctx is done.
func (m *Manager) RunJanitor(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.Purge(ctx)
		}
	}
}

func (m *Manager) clearCookie(c *gin.Context) {
	c.SetCookie(m.cookie, "", -1, "/", "", m.secure, true)
}

// Attach stores p on the gin context.
func Attach(c *gin.Context, p *Profile) {
	c.Set(profileKey, p)
}

// Current returns the profile attached to c, or an anonymous one.
func Current(c *gin.Context) *Profile {
	if v, ok := c.Get(profileKey); ok {
		if p, ok := v.(*Profile); ok && p != nil {
			return p
		}
	}
	return &Profile{}
}
