package ingest

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/heartmarshall/learning-oracle/internal/domain"
)

const (
	MaxEventTypeLength = 100
	MaxWindowDays      = 365
)

type eventRepo interface {
	Create(ctx context.Context, e domain.Event) (*domain.Event, error)
	ListSince(ctx context.Context, userID uuid.UUID, since time.Time, types []string) ([]domain.Event, error)
	CountsByType(ctx context.Context, userID uuid.UUID, since time.Time) (map[string]int, error)
	LastOfType(ctx context.Context, userID uuid.UUID, eventType string) (*domain.Event, error)
}

type timeSource interface {
	Now() time.Time
}

// Service records behavioral events and answers the read queries the other
// passes are built on.
type Service struct {
	events eventRepo
	clock  timeSource
	log    *slog.Logger
}

// NewService creates a new ingest service.
func NewService(log *slog.Logger, events eventRepo, clock timeSource) *Service {
	return &Service{
		events: events,
		clock:  clock,
		log:    log.With("service", "ingest"),
	}
}
