package users_test

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/jrsteele09/go-storefront-api/users"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestParseRole(t *testing.T) {
	r, err := users.ParseRole("seller")
	require.NoError(t, err)
	require.Equal(t, users.RoleSeller, r)

	r, err = users.ParseRole(" Buyer ")
	require.NoError(t, err)
	require.Equal(t, users.RoleBuyer, r)

	_, err = users.ParseRole("admin")
	require.ErrorIs(t, err, users.InvalidRoleErr)

	_, err = users.ParseRole("")
	require.ErrorIs(t, err, users.InvalidRoleErr)
}

func TestRoleValid(t *testing.T) {
	require.True(t, users.RoleSeller.Valid())
	require.True(t, users.RoleBuyer.Valid())
	require.False(t, users.Role("admin").Valid())
	require.False(t, users.Role("SELLER").Valid())
}

func TestEmailRules(t *testing.T) {
	require.Equal(t, "ana@x.com", users.NormaliseEmail("  ANA@X.com "))
	require.True(t, users.ValidEmail("ana@x.com"))
	require.False(t, users.ValidEmail("ana@x"))
	require.False(t, users.ValidEmail("ana x@y.com"))
	require.False(t, users.ValidEmail(""))
}

func TestValidPassword(t *testing.T) {
	require.False(t, users.ValidPassword("short"))
	require.True(t, users.ValidPassword("longenough1"))
	require.True(t, users.ValidPassword(strings.Repeat("a", users.MaxPasswordBytes)))
	require.False(t, users.ValidPassword(strings.Repeat("a", users.MaxPasswordBytes+1)))
}

func TestHasher(t *testing.T) {
	h := users.NewBcryptHasher(bcrypt.MinCost)

	first, err := h.Hash("longenough1")
	require.NoError(t, err)
	second, err := h.Hash("longenough1")
	require.NoError(t, err)

	require.NotEqual(t, first, second, "each hash carries its own salt")
	require.True(t, h.Verify("longenough1", first))
	require.True(t, h.Verify("longenough1", second))
	require.False(t, h.Verify("wrongpassword", first))
	require.False(t, h.Verify("longenough1", "not-a-bcrypt-hash"))
}

func TestHasherDefaultCost(t *testing.T) {
	h := users.NewBcryptHasher(0)

	hash, err := h.Hash("longenough1")
	require.NoError(t, err)
	cost, err := bcrypt.Cost([]byte(hash))
	require.NoError(t, err)
	require.Equal(t, users.DefaultHashCost, cost)
}

func TestSafeUserOmitsHash(t *testing.T) {
	u := &users.User{ID: "1", Username: "ana", Email: "ana@x.com", PasswordHash: "secret-hash", Role: users.RoleBuyer}

	raw, err := json.Marshal(u)
	require.NoError(t, err)
	require.NotContains(t, string(raw), "secret-hash")

	safe := u.Safe()
	require.Equal(t, u.ID, safe.ID)
	require.Equal(t, u.Role, safe.Role)
}
