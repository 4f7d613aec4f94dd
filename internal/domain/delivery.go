package domain

import (
	"time"

	"github.com/google/uuid"
)

// EmailSend is a queued email record. Transmission belongs to the mail provider.
type EmailSend struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	ToAddress string
	Subject   string
	Body      string
	Template  *string
	ActionID  *uuid.UUID
	Status    string
	CreatedAt time.Time
}

// DirectMessage is an in-app message from a sender account to a learner.
type DirectMessage struct {
	ID          uuid.UUID
	SenderID    uuid.UUID
	RecipientID uuid.UUID
	Body        string
	ActionID    *uuid.UUID
	CreatedAt   time.Time
}

// Notification is a push/in-app notification record.
type Notification struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	Title     string
	Body      string
	ActionID  *uuid.UUID
	CreatedAt time.Time
}

// UserTag associates a label with a learner. (UserID, Tag) is unique.
type UserTag struct {
	UserID    uuid.UUID
	Tag       string
	ActionID  *uuid.UUID
	CreatedAt time.Time
}
