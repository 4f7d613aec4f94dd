// Package auth issues and verifies operator credentials.
package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/heartmarshall/learning-oracle/internal/domain"
)

// TokenManager signs and verifies HS256 operator tokens.
type TokenManager struct {
	secret []byte
	issuer string
	ttl    time.Duration
}

// NewTokenManager creates a token manager.
// secret must be at least 32 characters for HS256 security.
func NewTokenManager(secret, issuer string, ttl time.Duration) *TokenManager {
	return &TokenManager{
		secret: []byte(secret),
		issuer: issuer,
		ttl:    ttl,
	}
}

// Claims identifies the caller of an authenticated request.
type Claims struct {
	OperatorID uuid.UUID
	Role       domain.UserRole
}

type operatorClaims struct {
	jwt.RegisteredClaims
	Role string `json:"role,omitempty"`
}

// Issue creates a signed token with operatorID as subject.
func (m *TokenManager) Issue(operatorID uuid.UUID, role domain.UserRole) (string, error) {
	now := time.Now()
	claims := operatorClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   operatorID.String(),
			Issuer:    m.issuer,
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
		Role: string(role),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Verify parses a token. Every failure wraps domain.ErrUnauthorized.
func (m *TokenManager) Verify(token string) (Claims, error) {
	if token == "" {
		return Claims{}, fmt.Errorf("token is empty: %w", domain.ErrUnauthorized)
	}

	parsed, err := jwt.ParseWithClaims(token, &operatorClaims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return m.secret, nil
	}, jwt.WithIssuer(m.issuer))
	if err != nil {
		return Claims{}, fmt.Errorf("parse token: %v: %w", err, domain.ErrUnauthorized)
	}

	claims, ok := parsed.Claims.(*operatorClaims)
	if !ok || !parsed.Valid {
		return Claims{}, fmt.Errorf("invalid token claims: %w", domain.ErrUnauthorized)
	}

	id, err := uuid.Parse(claims.Subject)
	if err != nil {
		return Claims{}, fmt.Errorf("invalid subject: %w", domain.ErrUnauthorized)
	}

	return Claims{OperatorID: id, Role: domain.UserRole(claims.Role)}, nil
}
