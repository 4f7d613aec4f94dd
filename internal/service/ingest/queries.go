package ingest

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/heartmarshall/learning-oracle/internal/domain"
)

// EventsSince returns the user's events at or after since in chronological
// order, optionally restricted to the given types.
func (s *Service) EventsSince(ctx context.Context, userID uuid.UUID, since time.Time, types ...string) ([]domain.Event, error) {
	if userID == uuid.Nil {
		return nil, domain.NewValidationError("user_id", "required")
	}

	events, err := s.events.ListSince(ctx, userID, since, types)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	return events, nil
}

// EventCounts returns per-type event counts over the last windowDays days.
func (s *Service) EventCounts(ctx context.Context, userID uuid.UUID, windowDays int) (map[string]int, error) {
	if windowDays < 1 || windowDays > MaxWindowDays {
		return nil, domain.NewValidationError("window_days", "must be between 1 and 365")
	}

	since := s.clock.Now().Add(-time.Duration(windowDays) * 24 * time.Hour)
	counts, err := s.events.CountsByType(ctx, userID, since)
	if err != nil {
		return nil, fmt.Errorf("count events: %w", err)
	}
	return counts, nil
}

// LastEventOfType returns the most recent event of eventType, or nil when
// the user never produced one.
func (s *Service) LastEventOfType(ctx context.Context, userID uuid.UUID, eventType string) (*domain.Event, error) {
	e, err := s.events.LastOfType(ctx, userID, eventType)
	if err != nil {
		return nil, fmt.Errorf("last %s event: %w", eventType, err)
	}
	return e, nil
}
