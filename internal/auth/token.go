package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// RoleAdmin is the only role the storefront issues.
const RoleAdmin = "admin"

// ErrInvalidToken is returned for tokens that fail signature, expiry or shape checks.
var ErrInvalidToken = errors.New("invalid token")

// Claims are the JWT claims carried by an admin session token.
type Claims struct {
	User string `json:"user"`
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// Credential issues and verifies signed session tokens.
type Credential interface {
	Issue(user, role string) (string, error)
	Verify(raw string) (*Claims, error)
}

type hmacTokenManager struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewTokenManager creates an HS256 token manager.
func NewTokenManager(secret string, ttl time.Duration) Credential {
	return newTokenManager(secret, ttl, time.Now)
}

func newTokenManager(secret string, ttl time.Duration, now func() time.Time) *hmacTokenManager {
	return &hmacTokenManager{
		secret: []byte(secret),
		ttl:    ttl,
		now:    now,
	}
}

// Issue signs a token for user with the given role.
func (m *hmacTokenManager) Issue(user, role string) (string, error) {
	now := m.now()
	claims := Claims{
		User: user,
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// Verify parses raw and checks its signature and expiry.
func (m *hmacTokenManager) Verify(raw string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		return m.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(m.now),
		jwt.WithExpirationRequired(),
	)
	if err != nil || !token.Valid {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	return claims, nil
}
