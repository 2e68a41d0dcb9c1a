// Package jwtclaims reads the payload segment of a bearer token.
//
// No signature verification is performed. The token's authenticity is the
// issuing server's concern and is protected by transport security; the
// decoded claims are only used to label the local session.
package jwtclaims

import (
	"bytes"
	"encoding/json"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/tenderhub/portal-client/internal/core/domain"
)

// Claims is the subset of the token payload the client understands.
// Other claims are ignored.
type Claims struct {
	Subject   string
	Role      string
	Email     string
	Username  string
	ExpiresAt time.Time // zero when the token has no usable exp claim
}

var (
	parser      = jwt.NewParser(jwt.WithPaddingAllowed())
	stdToURLAlp = strings.NewReplacer("+", "-", "/", "_")
)

// Decode parses the payload of a three-segment token. It returns false for a
// wrong segment count, undecodable base64 or a payload that is not a JSON
// object.
func Decode(token string) (*Claims, bool) {
	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		return nil, false
	}

	payload, err := parser.DecodeSegment(stdToURLAlp.Replace(parts[1]))
	if err != nil {
		return nil, false
	}
	payload = bytes.TrimSpace(payload)
	if len(payload) == 0 || payload[0] != '{' {
		return nil, false
	}

	mc := jwt.MapClaims{}
	if err := json.Unmarshal(payload, &mc); err != nil {
		return nil, false
	}

	c := &Claims{
		Role:     stringClaim(mc, "role"),
		Email:    stringClaim(mc, "email"),
		Username: stringClaim(mc, "username"),
	}
	if sub, err := mc.GetSubject(); err == nil {
		c.Subject = sub
	}
	if exp, err := mc.GetExpirationTime(); err == nil && exp != nil {
		c.ExpiresAt = exp.Time
	}
	return c, true
}

// Identity returns the claim that names the user: sub, then email, then username.
func (c *Claims) Identity() string {
	switch {
	case c.Subject != "":
		return c.Subject
	case c.Email != "":
		return c.Email
	default:
		return c.Username
	}
}

// User builds a session identity from the claims. It returns nil when the
// token carries no role.
func (c *Claims) User() *domain.User {
	if c == nil || c.Role == "" {
		return nil
	}
	return &domain.User{Email: c.Identity(), Role: domain.Role(c.Role)}
}

// UserFromToken decodes token and builds its identity.
func UserFromToken(token string) (*domain.User, bool) {
	c, ok := Decode(token)
	if !ok {
		return nil, false
	}
	u := c.User()
	return u, u != nil
}

// ExpiresAt reports the token's exp claim.
func ExpiresAt(token string) (time.Time, bool) {
	c, ok := Decode(token)
	if !ok || c.ExpiresAt.IsZero() {
		return time.Time{}, false
	}
	return c.ExpiresAt, true
}

// IsExpired treats empty, undecodable and exp-less tokens as expired.
func IsExpired(token string, now time.Time) bool {
	if token == "" {
		return true
	}
	exp, ok := ExpiresAt(token)
	if !ok {
		return true
	}
	return exp.Before(now)
}

func stringClaim(mc jwt.MapClaims, key string) string {
	s, _ := mc[key].(string)
	return s
}
