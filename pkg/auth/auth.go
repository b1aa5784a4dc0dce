package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

var jwtAlgorithm = jwt.SigningMethodHS256

// Claims represents the JWT claims issued by the identity provider for a
// TeamSync session
type Claims struct {
	UID      string `json:"uid"`
	Username string `json:"username,omitempty"`
	jwt.RegisteredClaims
}

// Verifier validates session tokens against the shared secret
type Verifier struct {
	secret []byte
}

// NewVerifier creates a token verifier. The secret comes from the
// environment, never from source.
func NewVerifier(secret string) (*Verifier, error) {
	if secret == "" {
		return nil, errors.New("jwt secret is empty")
	}
	return &Verifier{secret: []byte(secret)}, nil
}

// Verify parses and validates a token string, returning its claims
func (v *Verifier) Verify(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwtAlgorithm {
			return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
		}
		return v.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("invalid token: %w", err)
	}
	if !token.Valid {
		return nil, errors.New("invalid token")
	}
	if claims.UID == "" {
		return nil, errors.New("token missing uid claim")
	}

	return claims, nil
}

// CreateToken issues a signed session token. Used by tests and the local
// development login shim; production tokens come from the identity provider.
func (v *Verifier) CreateToken(uid, username string, ttl time.Duration) (string, error) {
	claims := &Claims{
		UID:      uid,
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
		},
	}

	token := jwt.NewWithClaims(jwtAlgorithm, claims)
	return token.SignedString(v.secret)
}
