package token

import (
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	pkgerrors "github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"github.com/jrsteele09/go-storefront-api/users"
)

// ErrInvalidToken is returned for every verification failure. The cause is only logged.
var ErrInvalidToken = errors.New("invalid or expired token")

// Claims is the identity carried by a session token
type Claims struct {
	SubjectID string
	Email     string
	Role      users.Role
	IssuedAt  time.Time
	ExpiresAt time.Time
}

type sessionClaims struct {
	Email string `json:"email"`
	Role  string `json:"role"`
	jwt.RegisteredClaims
}

// Manager issues and verifies signed session tokens. It holds no mutable state.
type Manager struct {
	signer  Signer
	issuer  string
	nowFunc func() time.Time
}

type ManagerOption func(*Manager)

func WithNowFunc(now func() time.Time) ManagerOption {
	return func(m *Manager) {
		m.nowFunc = now
	}
}

func WithIssuer(issuer string) ManagerOption {
	return func(m *Manager) {
		m.issuer = issuer
	}
}

// WithSigner replaces the default HMAC signer built from the secret
func WithSigner(signer Signer) ManagerOption {
	return func(m *Manager) {
		m.signer = signer
	}
}

// New builds a Manager signing with HS256 over secret. An empty secret is a startup error.
func New(secret string, options ...ManagerOption) (*Manager, error) {
	if strings.TrimSpace(secret) == "" {
		return nil, pkgerrors.New("[token.New] signing secret is required")
	}

	m := &Manager{
		signer:  NewHMACSigner(secret),
		nowFunc: time.Now,
	}
	for _, opt := range options {
		opt(m)
	}
	return m, nil
}

// Issue signs claims valid from now for ttl
func (m *Manager) Issue(claims Claims, ttl time.Duration) (string, error) {
	if ttl <= 0 {
		return "", pkgerrors.Errorf("[Manager Issue] ttl must be positive, got %s", ttl)
	}
	if !claims.Role.Valid() {
		return "", pkgerrors.Errorf("[Manager Issue] invalid role %q", claims.Role)
	}

	now := m.nowFunc()
	sc := sessionClaims{
		Email: claims.Email,
		Role:  string(claims.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    m.issuer,
			Subject:   claims.SubjectID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	signed, err := m.signer.Sign(sc)
	if err != nil {
		return "", pkgerrors.Wrap(err, "[Manager Issue]")
	}
	return signed, nil
}

// Verify checks signature, algorithm, expiry and role of raw and returns its claims
func (m *Manager) Verify(raw string) (Claims, error) {
	if strings.TrimSpace(raw) == "" {
		return Claims{}, ErrInvalidToken
	}

	parserOptions := []jwt.ParserOption{
		jwt.WithValidMethods([]string{m.signer.GetSigningMethod().Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(m.nowFunc),
	}
	if m.issuer != "" {
		parserOptions = append(parserOptions, jwt.WithIssuer(m.issuer))
	}

	var sc sessionClaims
	parsed, err := jwt.ParseWithClaims(raw, &sc, m.signer.GetVerificationKey, parserOptions...)
	if err != nil || !parsed.Valid {
		log.Debug().Err(err).Msg("token rejected")
		return Claims{}, ErrInvalidToken
	}

	role := users.Role(sc.Role)
	if !role.Valid() || sc.Subject == "" {
		log.Debug().Str("role", sc.Role).Msg("token rejected: malformed claims")
		return Claims{}, ErrInvalidToken
	}

	claims := Claims{
		SubjectID: sc.Subject,
		Email:     sc.Email,
		Role:      role,
	}
	if sc.IssuedAt != nil {
		claims.IssuedAt = sc.IssuedAt.Time
	}
	if sc.ExpiresAt != nil {
		claims.ExpiresAt = sc.ExpiresAt.Time
	}
	return claims, nil
}
