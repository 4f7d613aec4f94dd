package auth

import (
	"fmt"

	"github.com/heartmarshall/learning-oracle/internal/domain"
	"golang.org/x/crypto/bcrypt"
)

// APIKeyChecker compares X-Api-Key values against a bcrypt hash.
type APIKeyChecker struct {
	hash []byte
}

// NewAPIKeyChecker creates a checker. An empty hash disables key auth.
func NewAPIKeyChecker(hash string) *APIKeyChecker {
	return &APIKeyChecker{hash: []byte(hash)}
}

// Enabled reports whether a hash is configured.
func (c *APIKeyChecker) Enabled() bool {
	return len(c.hash) > 0
}

// Check returns nil when key matches the configured hash.
func (c *APIKeyChecker) Check(key string) error {
	if !c.Enabled() || key == "" {
		return domain.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword(c.hash, []byte(key)); err != nil {
		return domain.ErrUnauthorized
	}
	return nil
}

// HashAPIKey produces the value stored in AUTH_API_KEY_HASH.
func HashAPIKey(key string) (string, error) {
	if len(key) < 16 {
		return "", fmt.Errorf("api key must be at least 16 characters")
	}
	h, err := bcrypt.GenerateFromPassword([]byte(key), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash api key: %w", err)
	}
	return string(h), nil
}
