package rest

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/heartmarshall/learning-oracle/internal/domain"
	"github.com/heartmarshall/learning-oracle/internal/service/ingest"
)

type eventService interface {
	RecordEvent(ctx context.Context, input ingest.RecordEventInput) (*domain.Event, error)
	EventsSince(ctx context.Context, userID uuid.UUID, since time.Time, types ...string) ([]domain.Event, error)
}

// EventHandler serves event ingest endpoints.
type EventHandler struct {
	events eventService
	log    *slog.Logger
}

// NewEventHandler creates an EventHandler.
func NewEventHandler(events eventService, logger *slog.Logger) *EventHandler {
	return &EventHandler{events: events, log: logger.With("handler", "events")}
}

type recordEventRequest struct {
	UserID    uuid.UUID      `json:"userId"`
	Type      string         `json:"type"`
	Metadata  map[string]any `json:"metadata"`
	Source    string         `json:"source"`
	SessionID *string        `json:"sessionId"`
}

// Record appends one event.
// POST /api/events
func (h *EventHandler) Record(w http.ResponseWriter, r *http.Request) {
	var req recordEventRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeDomainError(w, r, h.log, err)
		return
	}

	e, err := h.events.RecordEvent(r.Context(), ingest.RecordEventInput{
		UserID:    req.UserID,
		Type:      req.Type,
		Metadata:  req.Metadata,
		Source:    domain.EventSource(req.Source),
		SessionID: req.SessionID,
	})
	if err != nil {
		writeDomainError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusCreated, toEventResponse(*e))
}

// Since lists a user's events after the given instant.
// GET /api/users/{userID}/events?since=RFC3339&types=login,purchase
func (h *EventHandler) Since(w http.ResponseWriter, r *http.Request) {
	userID, err := pathUUID(r, "userID")
	if err != nil {
		writeDomainError(w, r, h.log, err)
		return
	}

	since := time.Time{}
	if v := r.URL.Query().Get("since"); v != "" {
		since, err = time.Parse(time.RFC3339, v)
		if err != nil {
			writeDomainError(w, r, h.log, domain.NewValidationError("since", "must be RFC3339"))
			return
		}
	}

	var types []string
	for _, t := range strings.Split(r.URL.Query().Get("types"), ",") {
		if t = strings.TrimSpace(t); t != "" {
			types = append(types, t)
		}
	}

	events, err := h.events.EventsSince(r.Context(), userID, since, types...)
	if err != nil {
		writeDomainError(w, r, h.log, err)
		return
	}

	out := make([]EventResponse, len(events))
	for i, e := range events {
		out[i] = toEventResponse(e)
	}
	writeJSON(w, http.StatusOK, out)
}
