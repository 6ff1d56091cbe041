package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Verification rejection reasons. Handlers usually collapse these into a
// single unauthenticated outcome, but they stay distinguishable here.
var (
	ErrTokenExpired   = errors.New("token expired")
	ErrTokenMalformed = errors.New("token malformed")
	ErrTokenInvalid   = errors.New("token invalid")
)

// Identity is the authenticated principal carried by a session token.
type Identity struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
}

type sessionClaims struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// TokenCodec issues and verifies signed session tokens. Verification is a
// pure function of the token, the secret, and the clock; tokens are not
// revocable before expiry (logout only clears the client cookie).
type TokenCodec struct {
	secret []byte
	ttl    time.Duration
}

// NewTokenCodec creates a codec signing with secret and issuing tokens that
// expire after ttl.
func NewTokenCodec(secret string, ttl time.Duration) *TokenCodec {
	return &TokenCodec{secret: []byte(secret), ttl: ttl}
}

// TTL returns the lifetime of issued tokens.
func (tc *TokenCodec) TTL() time.Duration {
	return tc.ttl
}

// Issue signs a token carrying the identity claims with expiry now+ttl.
func (tc *TokenCodec) Issue(id uint, username string) (string, error) {
	now := time.Now()
	claims := sessionClaims{
		ID:       id,
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(tc.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(tc.secret)
}

// Verify parses and validates a token, returning the embedded identity.
// Failures map to ErrTokenExpired, ErrTokenMalformed, or ErrTokenInvalid.
func (tc *TokenCodec) Verify(tokenString string) (Identity, error) {
	var claims sessionClaims
	token, err := jwt.ParseWithClaims(tokenString, &claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrTokenInvalid
		}
		return tc.secret, nil
	})

	switch {
	case err == nil && token.Valid:
		return Identity{ID: claims.ID, Username: claims.Username}, nil
	case errors.Is(err, jwt.ErrTokenExpired):
		return Identity{}, ErrTokenExpired
	case errors.Is(err, jwt.ErrTokenMalformed):
		return Identity{}, ErrTokenMalformed
	default:
		return Identity{}, ErrTokenInvalid
	}
}
