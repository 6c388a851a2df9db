package auth

import (
	"bytes"
	"encoding/json"
	"strings"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"

	"github.com/spec-kit/movie-ticket-web/internal/domain"
)

// Claims is the identity read out of a bearer token payload. Decoding does
// not verify the signature; the result feeds display and fallback identity
// only and must never be used to authorize anything.
type Claims struct {
	Subject   string
	Name      string
	Email     string
	Role      domain.Role
	ExpiresAt *jwt.NumericDate
}

// rawClaims mirrors the payload shapes issued by the backend.
type rawClaims struct {
	Sub         json.RawMessage   `json:"sub"`
	UserID      json.RawMessage   `json:"userId"`
	Name        string            `json:"name"`
	Username    string            `json:"username"`
	Email       string            `json:"email"`
	Role        string            `json:"role"`
	Authorities []json.RawMessage `json:"authorities"`
	Exp         json.RawMessage   `json:"exp"`
}

var segmentParser = jwt.NewParser(jwt.WithPaddingAllowed())

// Decode reads the payload segment of token. It returns nil for anything
// malformed.
func Decode(token string) *Claims {
	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		return nil
	}
	segment := strings.NewReplacer("+", "-", "/", "_").Replace(parts[1])
	payload, err := segmentParser.DecodeSegment(segment)
	if err != nil {
		return nil
	}

	// null and other non-object payloads would otherwise decode to empty claims
	if trimmed := bytes.TrimSpace(payload); len(trimmed) == 0 || trimmed[0] != '{' {
		return nil
	}
	var raw rawClaims
	if err := json.Unmarshal(payload, &raw); err != nil {
		return nil
	}

	claims := &Claims{
		Subject: firstNonEmpty(idString(raw.Sub), idString(raw.UserID)),
		Name:    firstNonEmpty(raw.Name, raw.Username),
		Email:   raw.Email,
		Role:    domain.ParseRole(firstNonEmpty(raw.Role, firstAuthority(raw.Authorities))),
	}
	if len(raw.Exp) > 0 {
		var exp jwt.NumericDate
		if err := exp.UnmarshalJSON(raw.Exp); err == nil {
			claims.ExpiresAt = &exp
		}
	}
	return claims
}

// Expired reports whether exp lies before now. Tokens without exp never expire.
func (c *Claims) Expired(now time.Time) bool {
	return c.ExpiresAt != nil && c.ExpiresAt.Before(now)
}

// User projects the claims onto a user identity.
func (c *Claims) User() *domain.User {
	return &domain.User{
		ID:    domain.UserID(c.Subject),
		Name:  c.Name,
		Email: c.Email,
		Role:  c.Role,
	}
}

func idString(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var id domain.UserID
	if err := json.Unmarshal(raw, &id); err != nil {
		return ""
	}
	return string(id)
}

// firstAuthority accepts "ROLE_X" and {"authority": "ROLE_X"} entries.
func firstAuthority(authorities []json.RawMessage) string {
	if len(authorities) == 0 {
		return ""
	}
	var name string
	if err := json.Unmarshal(authorities[0], &name); err == nil {
		return name
	}
	var granted struct {
		Authority string `json:"authority"`
	}
	if err := json.Unmarshal(authorities[0], &granted); err == nil {
		return granted.Authority
	}
	return ""
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
