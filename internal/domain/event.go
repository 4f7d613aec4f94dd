package domain

import (
	"time"

	"github.com/google/uuid"
)

// Well-known event types. The set is open: collaborators may record any type.
const (
	EventTypeLogin           = "login"
	EventTypeLessonCompleted = "lesson_completed"
	EventTypeQuizCompleted   = "quiz_completed"
	EventTypeCourseEnrolled  = "course_enrolled"
	EventTypeMessageSent     = "message_sent"
	EventTypePurchase        = "purchase"
)

// Event is an immutable record of user behavior.
type Event struct {
	ID         uuid.UUID
	UserID     uuid.UUID
	Type       string
	Metadata   map[string]any
	Source     EventSource
	SessionID  *string
	OccurredAt time.Time
}
