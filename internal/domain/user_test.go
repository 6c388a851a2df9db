package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRole(t *testing.T) {
	tests := map[string]Role{
		"ROLE_ADMIN":    RoleAdmin,
		"admin":         RoleAdmin,
		" CUSTOMER ":    RoleCustomer,
		"role_customer": RoleCustomer,
		"ROLE_AUDITOR":  RoleUnknown,
		"":              RoleUnknown,
		"ROLE_":         RoleUnknown,
	}
	for raw, want := range tests {
		assert.Equal(t, want, ParseRole(raw), raw)
	}
}

func TestUserUnmarshalNormalises(t *testing.T) {
	var user User
	require.NoError(t, json.Unmarshal([]byte(`{"id":7,"role":"ROLE_ADMIN"}`), &user))
	assert.Equal(t, UserID("7"), user.ID)
	assert.True(t, user.IsAdmin())

	require.NoError(t, json.Unmarshal([]byte(`{"id":"8","role":""}`), &user))
	assert.Equal(t, RoleUnknown, user.Role)
	assert.False(t, user.IsAdmin())
}
