// Package token issues and verifies signed identity tokens.
//
// Tokens are HS256 JWTs carrying the identity's email. By default they never
// expire; expiry is opt-in through the service TTL.
package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Verification failures.
var (
	// ErrMalformed indicates the token could not be parsed at all.
	ErrMalformed = errors.New("malformed token")
	// ErrInvalidSignature indicates the signature does not match the secret.
	ErrInvalidSignature = errors.New("invalid token signature")
	// ErrExpired indicates the token carried an expiry that has passed.
	ErrExpired = errors.New("token expired")
)

// Claims is the JWT payload for an identity token.
type Claims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// Service mints and verifies identity tokens under a shared secret.
type Service struct {
	secret []byte
	ttl    time.Duration
}

// NewService creates a token Service. A zero ttl disables expiry.
func NewService(secret string, ttl time.Duration) *Service {
	return &Service{
		secret: []byte(secret),
		ttl:    ttl,
	}
}

// Issue signs a token for the given email. The signature is deterministic in
// the email and secret apart from the issued-at timestamp.
func (s *Service) Issue(email string) (string, error) {
	now := time.Now().UTC()
	claims := Claims{
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:  email,
			IssuedAt: jwt.NewNumericDate(now),
		},
	}
	if s.ttl > 0 {
		claims.ExpiresAt = jwt.NewNumericDate(now.Add(s.ttl))
	}

	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := tok.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// Verify checks a token's signature and returns the email it encodes.
// The signing method is pinned to HMAC to rule out algorithm confusion.
func (s *Service) Verify(tokenString string) (string, error) {
	tok, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %q", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return "", ErrInvalidSignature
		case errors.Is(err, jwt.ErrTokenExpired):
			return "", ErrExpired
		default:
			return "", ErrMalformed
		}
	}

	claims, ok := tok.Claims.(*Claims)
	if !ok || !tok.Valid {
		return "", ErrMalformed
	}
	if claims.Email == "" {
		return "", ErrMalformed
	}
	return claims.Email, nil
}
