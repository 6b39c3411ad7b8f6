package session

import (
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"cargo-portal/internal/model"
)

// Role names as issued by the backend.
const (
	RoleSuperAdmin = "superadmin"
	RoleAdmin      = "admin"
	RoleStaff      = "staff"
)

// Profile is the signed-in user as seen by handlers and templates. The zero
// value is an anonymous visitor.
type Profile struct {
	SessionID string
	Token     string
	User      model.User
	Roles     []string
	ExpiresAt time.Time
}

// IsAuthenticated reports whether a backend token is present.
func (p *Profile) IsAuthenticated() bool {
	return p != nil && p.Token != ""
}

// HasRole is a case-insensitive role check.
func (p *Profile) HasRole(role string) bool {
	if p == nil {
		return false
	}
	for _, r := range p.Roles {
		if normalizeRole(r) == role {
			return true
		}
	}
	return false
}

func (p *Profile) IsSuperAdmin() bool { return p.HasRole(RoleSuperAdmin) }
func (p *Profile) IsAdmin() bool      { return p.IsSuperAdmin() || p.HasRole(RoleAdmin) }
func (p *Profile) IsStaff() bool      { return p.IsAdmin() || p.HasRole(RoleStaff) }

// CanManageShipments gates the dashboard overview and shipment screens.
func (p *Profile) CanManageShipments() bool { return p.IsAuthenticated() && p.IsStaff() }

// CanManageContent gates facilities, statuses, slides, newsletters and donations.
func (p *Profile) CanManageContent() bool { return p.IsAuthenticated() && p.IsAdmin() }

// DisplayName is what the header shows.
func (p *Profile) DisplayName() string {
	if p == nil {
		return ""
	}
	if p.User.Name != "" {
		return p.User.Name
	}
	return p.User.Email
}

func normalizeRole(r string) string {
	r = strings.ToLower(strings.TrimSpace(r))
	return strings.NewReplacer("_", "", "-", "", " ", "").Replace(r)
}

// tokenClaims is what the backend puts in its access tokens.
type tokenClaims struct {
	jwt.RegisteredClaims
	Role  string   `json:"role"`
	Roles []string `json:"roles"`
}

// readToken extracts roles and expiry from a JWT without verifying it; the
// backend is the authority on the signature. Opaque tokens yield nothing.
func readToken(token string) (roles []string, expiresAt time.Time, ok bool) {
	var claims tokenClaims
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		return nil, time.Time{}, false
	}
	roles = append(roles, claims.Roles...)
	if claims.Role != "" {
		roles = append(roles, claims.Role)
	}
	if claims.ExpiresAt != nil {
		expiresAt = claims.ExpiresAt.Time
	}
	return roles, expiresAt, true
}

// rolesFor merges the user object's roles with the token's.
func rolesFor(user model.User, token string) ([]string, time.Time) {
	var roles []string
	roles = append(roles, user.Roles...)
	if user.Role != "" {
		roles = append(roles, user.Role)
	}
	tokenRoles, exp, _ := readToken(token)
	if len(roles) == 0 {
		roles = tokenRoles
	}
	return roles, exp
}
