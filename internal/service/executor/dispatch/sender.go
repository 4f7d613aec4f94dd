package dispatch

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// ErrNoSender is returned when no DM sender identity is configured.
var ErrNoSender = errors.New("dm sender identity not configured")

// SenderIdentityProvider resolves the account direct messages are sent from.
type SenderIdentityProvider interface {
	SenderID(ctx context.Context) (uuid.UUID, error)
}

// StaticSender always returns the same account.
type StaticSender uuid.UUID

// NewStaticSender parses a configured user id. An empty id yields a sender
// that fails every DM with ErrNoSender.
func NewStaticSender(id string) (StaticSender, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return StaticSender(uuid.Nil), nil
	}
	parsed, err := uuid.Parse(id)
	if err != nil {
		return StaticSender(uuid.Nil), fmt.Errorf("parse dm sender id: %w", err)
	}
	return StaticSender(parsed), nil
}

func (s StaticSender) SenderID(ctx context.Context) (uuid.UUID, error) {
	if uuid.UUID(s) == uuid.Nil {
		return uuid.Nil, ErrNoSender
	}
	return uuid.UUID(s), nil
}
