package dispatch

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/heartmarshall/learning-oracle/internal/domain"
)

const emailStatusQueued = "queued"

// ProfileReader loads the learner an action is addressed to.
type ProfileReader interface {
	GetProfile(ctx context.Context, id uuid.UUID) (*domain.UserProfile, error)
}

type emailStore interface {
	CreateEmailSend(ctx context.Context, e domain.EmailSend) error
}

// EmailHandler queues an email send addressed to the user.
type EmailHandler struct {
	store emailStore
	users ProfileReader
	clock timeSource
}

func (h *EmailHandler) Dispatch(ctx context.Context, a domain.Action) (domain.Outcome, error) {
	user, err := h.users.GetProfile(ctx, a.UserID)
	if err != nil {
		return nil, fmt.Errorf("get recipient: %w", err)
	}
	if strings.TrimSpace(user.Email) == "" {
		return nil, errors.New("recipient has no email address")
	}

	var subject string
	if a.Subject != nil {
		subject = *a.Subject
	}

	id := uuid.New()
	actionID := a.ID
	err = h.store.CreateEmailSend(ctx, domain.EmailSend{
		ID:        id,
		UserID:    a.UserID,
		ToAddress: user.Email,
		Subject:   subject,
		Body:      a.RenderedContent,
		Template:  a.Template,
		ActionID:  &actionID,
		Status:    emailStatusQueued,
		CreatedAt: h.clock.Now(),
	})
	if err != nil {
		return nil, fmt.Errorf("create email send: %w", err)
	}

	return domain.Outcome{"email_send_id": id.String(), "to": user.Email}, nil
}

type messageStore interface {
	CreateDirectMessage(ctx context.Context, m domain.DirectMessage) error
}

// DMHandler appends a direct message from the configured sender account.
type DMHandler struct {
	store  messageStore
	sender SenderIdentityProvider
	clock  timeSource
}

func (h *DMHandler) Dispatch(ctx context.Context, a domain.Action) (domain.Outcome, error) {
	senderID, err := h.sender.SenderID(ctx)
	if err != nil {
		return nil, fmt.Errorf("resolve sender: %w", err)
	}

	id := uuid.New()
	actionID := a.ID
	err = h.store.CreateDirectMessage(ctx, domain.DirectMessage{
		ID:          id,
		SenderID:    senderID,
		RecipientID: a.UserID,
		Body:        a.RenderedContent,
		ActionID:    &actionID,
		CreatedAt:   h.clock.Now(),
	})
	if err != nil {
		return nil, fmt.Errorf("create direct message: %w", err)
	}

	return domain.Outcome{"message_id": id.String(), "sender_id": senderID.String()}, nil
}

type notificationStore interface {
	CreateNotification(ctx context.Context, n domain.Notification) error
}

// PushHandler records a notification. The subject becomes the title.
type PushHandler struct {
	store notificationStore
	clock timeSource
}

func (h *PushHandler) Dispatch(ctx context.Context, a domain.Action) (domain.Outcome, error) {
	var title string
	if a.Subject != nil {
		title = *a.Subject
	}

	id := uuid.New()
	actionID := a.ID
	err := h.store.CreateNotification(ctx, domain.Notification{
		ID:        id,
		UserID:    a.UserID,
		Title:     title,
		Body:      a.RenderedContent,
		ActionID:  &actionID,
		CreatedAt: h.clock.Now(),
	})
	if err != nil {
		return nil, fmt.Errorf("create notification: %w", err)
	}

	return domain.Outcome{"notification_id": id.String()}, nil
}

type tagStore interface {
	UpsertUserTag(ctx context.Context, t domain.UserTag) error
}

// TagHandler labels the user with the action's rendered content.
type TagHandler struct {
	store tagStore
	clock timeSource
}

func (h *TagHandler) Dispatch(ctx context.Context, a domain.Action) (domain.Outcome, error) {
	tag := strings.TrimSpace(a.RenderedContent)
	if tag == "" {
		return nil, errors.New("empty tag")
	}

	actionID := a.ID
	err := h.store.UpsertUserTag(ctx, domain.UserTag{
		UserID:    a.UserID,
		Tag:       tag,
		ActionID:  &actionID,
		CreatedAt: h.clock.Now(),
	})
	if err != nil {
		return nil, fmt.Errorf("upsert user tag: %w", err)
	}

	return domain.Outcome{"tag": tag}, nil
}
