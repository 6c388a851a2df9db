package auth

import (
	"testing"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/movie-ticket-web/internal/domain"
)

func signed(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return token
}

func TestDecode_PrimaryFields(t *testing.T) {
	token := signed(t, jwt.MapClaims{
		"sub":   "42",
		"name":  "Ada",
		"email": "ada@example.com",
		"role":  "ROLE_ADMIN",
		"exp":   time.Now().Add(time.Hour).Unix(),
	})

	claims := Decode(token)
	require.NotNil(t, claims)
	assert.Equal(t, "42", claims.Subject)
	assert.Equal(t, "Ada", claims.Name)
	assert.Equal(t, "ada@example.com", claims.Email)
	assert.Equal(t, domain.RoleAdmin, claims.Role)
	assert.False(t, claims.Expired(time.Now()))
}

func TestDecode_FallbackFields(t *testing.T) {
	token := signed(t, jwt.MapClaims{
		"userId":      7,
		"username":    "grace",
		"authorities": []any{map[string]any{"authority": "ROLE_CUSTOMER"}},
	})

	claims := Decode(token)
	require.NotNil(t, claims)
	assert.Equal(t, "7", claims.Subject)
	assert.Equal(t, "grace", claims.Name)
	assert.Equal(t, domain.RoleCustomer, claims.Role)
	assert.Nil(t, claims.ExpiresAt)
	assert.False(t, claims.Expired(time.Now()))
}

func TestDecode_StringAuthority(t *testing.T) {
	token := signed(t, jwt.MapClaims{"sub": "1", "authorities": []any{"ROLE_ADMIN", "ROLE_CUSTOMER"}})

	claims := Decode(token)
	require.NotNil(t, claims)
	assert.Equal(t, domain.RoleAdmin, claims.Role)
}

func TestDecode_PrimaryWinsOverFallback(t *testing.T) {
	token := signed(t, jwt.MapClaims{
		"sub":         "1",
		"userId":      2,
		"name":        "primary",
		"username":    "secondary",
		"role":        "CUSTOMER",
		"authorities": []any{"ROLE_ADMIN"},
	})

	claims := Decode(token)
	require.NotNil(t, claims)
	assert.Equal(t, "1", claims.Subject)
	assert.Equal(t, "primary", claims.Name)
	assert.Equal(t, domain.RoleCustomer, claims.Role)
}

func TestDecode_Malformed(t *testing.T) {
	cases := map[string]string{
		"empty":           "",
		"one segment":     "abc",
		"two segments":    "abc.def",
		"four segments":   "a.b.c.d",
		"bad base64":      "header.!!!.sig",
		"not json":        "header.bm90IGpzb24.sig",
		"json not object": "header.WzEsMl0.sig",
		"json null":       "h.bnVsbA.s",
		"json string":     "h.ImFkbWluIg.s",
	}
	for name, token := range cases {
		t.Run(name, func(t *testing.T) {
			assert.Nil(t, Decode(token))
		})
	}
}

func TestClaims_Expired(t *testing.T) {
	now := time.Now()
	token := signed(t, jwt.MapClaims{"sub": "1", "exp": now.Add(-time.Minute).Unix()})

	claims := Decode(token)
	require.NotNil(t, claims)
	assert.True(t, claims.Expired(now))
}

func TestClaims_User(t *testing.T) {
	claims := &Claims{Subject: "9", Name: "n", Email: "e", Role: domain.RoleCustomer}
	user := claims.User()

	assert.Equal(t, domain.UserID("9"), user.ID)
	assert.Equal(t, domain.RoleCustomer, user.Role)
	assert.False(t, user.IsAdmin())
}

func TestHomePath(t *testing.T) {
	assert.Equal(t, "/admin", HomePath(domain.RoleAdmin))
	assert.Equal(t, "/browse", HomePath(domain.RoleCustomer))
	assert.Equal(t, "/browse", HomePath(domain.RoleUnknown))
	assert.Equal(t, "/browse", HomePath(""))
}

func TestHasRole(t *testing.T) {
	admin := &domain.User{Role: domain.RoleAdmin}
	unknown := &domain.User{Role: domain.ParseRole("ROLE_SUPERUSER")}

	assert.True(t, HasRole(admin))
	assert.True(t, HasRole(admin, domain.RoleAdmin))
	assert.False(t, HasRole(admin, domain.RoleCustomer))
	assert.False(t, HasRole(unknown, domain.RoleAdmin))
	assert.True(t, HasRole(unknown, domain.RoleCustomer))
	assert.True(t, HasRole(&domain.User{Role: domain.RoleCustomer}, domain.RoleCustomer))
	assert.False(t, HasRole(nil))
}
