package token_test

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/jrsteele09/go-storefront-api/token"
	"github.com/jrsteele09/go-storefront-api/users"
	"github.com/stretchr/testify/require"
)

const (
	secretStr = "1234"
	issuer    = "com.testissuer"
)

type clock struct {
	now time.Time
}

func (c *clock) Now() time.Time { return c.now }

func newManager(t *testing.T, c *clock, options ...token.ManagerOption) *token.Manager {
	t.Helper()
	m, err := token.New(secretStr, append([]token.ManagerOption{token.WithNowFunc(c.Now)}, options...)...)
	require.NoError(t, err)
	return m
}

func testClaims() token.Claims {
	return token.Claims{SubjectID: "user-1", Email: "ana@x.com", Role: users.RoleBuyer}
}

func TestNewRequiresSecret(t *testing.T) {
	_, err := token.New("")
	require.Error(t, err)

	_, err = token.New("   ")
	require.Error(t, err)
}

func TestIssueVerifyRoundTrip(t *testing.T) {
	c := &clock{now: time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)}
	m := newManager(t, c, token.WithIssuer(issuer))

	raw, err := m.Issue(testClaims(), 30*time.Minute)
	require.NoError(t, err)

	claims, err := m.Verify(raw)
	require.NoError(t, err)
	require.Equal(t, "user-1", claims.SubjectID)
	require.Equal(t, "ana@x.com", claims.Email)
	require.Equal(t, users.RoleBuyer, claims.Role)
	require.Equal(t, c.now, claims.IssuedAt.UTC())
	require.Equal(t, c.now.Add(30*time.Minute), claims.ExpiresAt.UTC())
}

func TestVerifyExpiry(t *testing.T) {
	c := &clock{now: time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)}
	m := newManager(t, c)

	raw, err := m.Issue(testClaims(), 30*time.Minute)
	require.NoError(t, err)

	c.now = c.now.Add(29 * time.Minute)
	_, err = m.Verify(raw)
	require.NoError(t, err)

	c.now = c.now.Add(2 * time.Minute)
	_, err = m.Verify(raw)
	require.ErrorIs(t, err, token.ErrInvalidToken)
}

func TestVerifyRejectsTampering(t *testing.T) {
	c := &clock{now: time.Now()}
	m := newManager(t, c)

	raw, err := m.Issue(testClaims(), time.Hour)
	require.NoError(t, err)

	// flip one byte inside the payload segment
	tampered := []byte(raw)
	i := strings.Index(raw, ".") + 5
	if tampered[i] == 'A' {
		tampered[i] = 'B'
	} else {
		tampered[i] = 'A'
	}
	_, err = m.Verify(string(tampered))
	require.ErrorIs(t, err, token.ErrInvalidToken)
}

func TestVerifyRejectsOtherSecret(t *testing.T) {
	c := &clock{now: time.Now()}
	raw, err := newManager(t, c).Issue(testClaims(), time.Hour)
	require.NoError(t, err)

	other, err := token.New("another-secret", token.WithNowFunc(c.Now))
	require.NoError(t, err)
	_, err = other.Verify(raw)
	require.ErrorIs(t, err, token.ErrInvalidToken)
}

func TestVerifyRejectsGarbage(t *testing.T) {
	m := newManager(t, &clock{now: time.Now()})

	for _, raw := range []string{"", "abc", "a.b.c"} {
		_, err := m.Verify(raw)
		require.ErrorIs(t, err, token.ErrInvalidToken, raw)
	}
}

func TestVerifyRejectsUnknownRole(t *testing.T) {
	c := &clock{now: time.Now()}
	m := newManager(t, c)

	forged := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":   "user-1",
		"email": "ana@x.com",
		"role":  "admin",
		"iat":   c.now.Unix(),
		"exp":   c.now.Add(time.Hour).Unix(),
	})
	raw, err := forged.SignedString([]byte(secretStr))
	require.NoError(t, err)

	_, err = m.Verify(raw)
	require.ErrorIs(t, err, token.ErrInvalidToken)
}

func TestVerifyRejectsMissingExpiry(t *testing.T) {
	m := newManager(t, &clock{now: time.Now()})

	forged := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  "user-1",
		"role": "buyer",
	})
	raw, err := forged.SignedString([]byte(secretStr))
	require.NoError(t, err)

	_, err = m.Verify(raw)
	require.ErrorIs(t, err, token.ErrInvalidToken)
}

func TestVerifyRejectsNoneAlgorithm(t *testing.T) {
	c := &clock{now: time.Now()}
	m := newManager(t, c)

	unsigned := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{
		"sub":  "user-1",
		"role": "seller",
		"exp":  c.now.Add(time.Hour).Unix(),
	})
	raw, err := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = m.Verify(raw)
	require.ErrorIs(t, err, token.ErrInvalidToken)
}

func TestVerifyChecksIssuer(t *testing.T) {
	c := &clock{now: time.Now()}
	raw, err := newManager(t, c, token.WithIssuer("someone-else")).Issue(testClaims(), time.Hour)
	require.NoError(t, err)

	_, err = newManager(t, c, token.WithIssuer(issuer)).Verify(raw)
	require.ErrorIs(t, err, token.ErrInvalidToken)
}

func TestIssueRejectsBadInput(t *testing.T) {
	m := newManager(t, &clock{now: time.Now()})

	_, err := m.Issue(testClaims(), 0)
	require.Error(t, err)

	bad := testClaims()
	bad.Role = "admin"
	_, err = m.Issue(bad, time.Hour)
	require.Error(t, err)
}
