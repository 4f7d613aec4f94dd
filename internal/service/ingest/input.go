package ingest

import (
	"strings"

	"github.com/google/uuid"
	"github.com/heartmarshall/learning-oracle/internal/domain"
)

// RecordEventInput holds the parameters for recording an event.
// An empty Source is recorded as api.
type RecordEventInput struct {
	UserID    uuid.UUID
	Type      string
	Metadata  map[string]any
	Source    domain.EventSource
	SessionID *string
}

// Validate checks all fields and collects all errors.
func (i RecordEventInput) Validate() error {
	var errs []domain.FieldError

	if i.UserID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "user_id", Message: "required"})
	}

	typ := strings.TrimSpace(i.Type)
	if typ == "" {
		errs = append(errs, domain.FieldError{Field: "type", Message: "required"})
	}
	if len(typ) > MaxEventTypeLength {
		errs = append(errs, domain.FieldError{Field: "type", Message: "max 100 characters"})
	}

	if i.Source != "" && !i.Source.IsValid() {
		errs = append(errs, domain.FieldError{Field: "source", Message: "must be one of web, email, dm, api"})
	}

	if i.SessionID != nil && len(*i.SessionID) > 200 {
		errs = append(errs, domain.FieldError{Field: "session_id", Message: "max 200 characters"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}
