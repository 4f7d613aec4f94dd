package executor

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/heartmarshall/learning-oracle/internal/domain"
)

const (
	DefaultLimit     = 50
	MaxLimit         = 200
	MaxContentLength = 10000
	MaxSubjectLength = 300
	MaxReasonLength  = 500
)

// CreateManualActionInput holds the parameters for an operator-inserted action.
// Priority defaults to 5; a nil Status creates the action approved.
type CreateManualActionInput struct {
	UserID      uuid.UUID            `json:"userId"`
	ActionType  domain.ActionType    `json:"actionType"`
	Content     string               `json:"content"`
	Subject     *string              `json:"subject"`
	Priority    *int                 `json:"priority"`
	Status      *domain.ActionStatus `json:"status"`
	ScheduledAt *time.Time           `json:"scheduledAt"`
}

// Validate checks all fields and collects all errors.
func (i CreateManualActionInput) Validate() error {
	var errs []domain.FieldError

	if i.UserID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "user_id", Message: "required"})
	}
	if !i.ActionType.IsValid() {
		errs = append(errs, domain.FieldError{Field: "action_type", Message: "must be one of email, dm, push, tag"})
	}

	content := strings.TrimSpace(i.Content)
	if content == "" {
		errs = append(errs, domain.FieldError{Field: "content", Message: "required"})
	}
	if len(content) > MaxContentLength {
		errs = append(errs, domain.FieldError{Field: "content", Message: "max 10000 characters"})
	}
	if i.Subject != nil && len(*i.Subject) > MaxSubjectLength {
		errs = append(errs, domain.FieldError{Field: "subject", Message: "max 300 characters"})
	}

	if i.Priority != nil && (*i.Priority < 1 || *i.Priority > 10) {
		errs = append(errs, domain.FieldError{Field: "priority", Message: "must be between 1 and 10"})
	}
	if i.Status != nil && *i.Status != domain.ActionStatusPending && *i.Status != domain.ActionStatusApproved {
		errs = append(errs, domain.FieldError{Field: "status", Message: "must be pending or approved"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// ListActionsInput holds the parameters for listing actions.
type ListActionsInput struct {
	Status *domain.ActionStatus
	UserID *uuid.UUID
	RuleID *uuid.UUID
	Limit  int
	Offset int
}

// Validate checks all fields and collects all errors.
func (i ListActionsInput) Validate() error {
	var errs []domain.FieldError

	if i.Status != nil && !i.Status.IsValid() {
		errs = append(errs, domain.FieldError{Field: "status", Message: "unknown action status"})
	}
	if i.Limit < 0 {
		errs = append(errs, domain.FieldError{Field: "limit", Message: "must be non-negative"})
	}
	if i.Limit > MaxLimit {
		errs = append(errs, domain.FieldError{Field: "limit", Message: "max 200"})
	}
	if i.Offset < 0 {
		errs = append(errs, domain.FieldError{Field: "offset", Message: "must be non-negative"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}
