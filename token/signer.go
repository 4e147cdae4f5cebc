package token

import (
	"github.com/golang-jwt/jwt/v5"
	"github.com/pkg/errors"
)

// Signer produces and checks the signature of session tokens
type Signer interface {
	Sign(claims jwt.Claims) (string, error)
	// GetVerificationKey is the jwt.Keyfunc used when parsing
	GetVerificationKey(token *jwt.Token) (any, error)
	GetSigningMethod() jwt.SigningMethod
}

// HMACSigner signs with a shared secret using HS256 only
type HMACSigner struct {
	method *jwt.SigningMethodHMAC
	secret []byte
}

var _ Signer = (*HMACSigner)(nil)

func NewHMACSigner(secret string) *HMACSigner {
	return &HMACSigner{method: jwt.SigningMethodHS256, secret: []byte(secret)}
}

func (h *HMACSigner) Sign(claims jwt.Claims) (string, error) {
	signed, err := jwt.NewWithClaims(h.method, claims).SignedString(h.secret)
	if err != nil {
		return "", errors.Wrap(err, "[HMACSigner Sign]")
	}
	return signed, nil
}

// GetVerificationKey refuses any algorithm other than the one tokens are signed with,
// so a token cannot pick its own verification scheme.
func (h *HMACSigner) GetVerificationKey(token *jwt.Token) (any, error) {
	if token.Method == nil || token.Method.Alg() != h.method.Alg() {
		return nil, errors.Errorf("[HMACSigner GetVerificationKey] unexpected signing method: %v", token.Header["alg"])
	}
	return h.secret, nil
}

func (h *HMACSigner) GetSigningMethod() jwt.SigningMethod {
	return h.method
}
