package domain

import (
	"bytes"
	"encoding/json"
	"strings"
)

// Role is the authorization role of a user.
type Role string

const (
	RoleCustomer Role = "CUSTOMER"
	RoleAdmin    Role = "ADMIN"
	// RoleUnknown is any value the backend sends that is not one of the above.
	RoleUnknown Role = "UNKNOWN"
)

// ParseRole normalises backend role strings. "ROLE_ADMIN", "admin" and
// "ADMIN" all map to RoleAdmin; empty and unrecognised values map to
// RoleUnknown.
func ParseRole(raw string) Role {
	value := strings.ToUpper(strings.TrimSpace(raw))
	value = strings.TrimPrefix(value, "ROLE_")
	switch Role(value) {
	case RoleCustomer:
		return RoleCustomer
	case RoleAdmin:
		return RoleAdmin
	default:
		return RoleUnknown
	}
}

// IsAdmin is an exact match; unknown roles never pass.
func (r Role) IsAdmin() bool {
	return r == RoleAdmin
}

// UnmarshalJSON normalises the role while decoding.
func (r *Role) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*r = ParseRole(raw)
	return nil
}

// UserID accepts both numeric and string identifiers from the backend.
type UserID string

// UnmarshalJSON decodes a JSON string or number.
func (id *UserID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = UserID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*id = UserID(n.String())
	return nil
}

// User is the identity of the visitor, derived per request and never stored.
type User struct {
	ID    UserID `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  Role   `json:"role"`
}

// IsAdmin reports whether the user holds the admin role.
func (u *User) IsAdmin() bool {
	return u != nil && u.Role.IsAdmin()
}
