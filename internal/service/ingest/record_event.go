package ingest

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/heartmarshall/learning-oracle/internal/domain"
)

// RecordEvent appends an event to the store. Unknown users yield ErrNotFound.
func (s *Service) RecordEvent(ctx context.Context, input RecordEventInput) (*domain.Event, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	source := input.Source
	if source == "" {
		source = domain.EventSourceAPI
	}
	metadata := input.Metadata
	if metadata == nil {
		metadata = map[string]any{}
	}

	event, err := s.events.Create(ctx, domain.Event{
		ID:         uuid.New(),
		UserID:     input.UserID,
		Type:       strings.TrimSpace(input.Type),
		Metadata:   metadata,
		Source:     source,
		SessionID:  input.SessionID,
		OccurredAt: s.clock.Now(),
	})
	if err != nil {
		return nil, fmt.Errorf("create event: %w", err)
	}

	s.log.DebugContext(ctx, "event recorded",
		slog.String("user_id", event.UserID.String()),
		slog.String("type", event.Type),
		slog.String("source", event.Source.String()),
	)

	return event, nil
}
