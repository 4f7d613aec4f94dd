// Package dispatch holds the side-effect handlers of the action executor.
// Each handler only creates a delivery record; transport belongs to the
// collaborator that owns the record store.
package dispatch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/heartmarshall/learning-oracle/internal/domain"
)

// ErrNoHandler is returned for an action type without a registered handler.
var ErrNoHandler = errors.New("no handler for action type")

// Handler performs the side effect of one action type.
type Handler interface {
	Dispatch(ctx context.Context, a domain.Action) (domain.Outcome, error)
}

// HandlerFunc adapts a function to Handler.
type HandlerFunc func(ctx context.Context, a domain.Action) (domain.Outcome, error)

// Dispatch calls f.
func (f HandlerFunc) Dispatch(ctx context.Context, a domain.Action) (domain.Outcome, error) {
	return f(ctx, a)
}

type timeSource interface {
	Now() time.Time
}

// Registry maps action types to handlers.
type Registry struct {
	handlers map[domain.ActionType]Handler
	log      *slog.Logger
}

// NewRegistry creates an empty registry.
func NewRegistry(log *slog.Logger) *Registry {
	return &Registry{
		handlers: make(map[domain.ActionType]Handler),
		log:      log.With("component", "dispatch"),
	}
}

// Register binds h to t, replacing any previous handler.
func (r *Registry) Register(t domain.ActionType, h Handler) {
	r.handlers[t] = h
}

// Has reports whether t has a handler.
func (r *Registry) Has(t domain.ActionType) bool {
	_, ok := r.handlers[t]
	return ok
}

// Dispatch routes a to the handler of its type.
func (r *Registry) Dispatch(ctx context.Context, a domain.Action) (domain.Outcome, error) {
	h, ok := r.handlers[a.ActionType]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNoHandler, a.ActionType)
	}

	start := time.Now()
	outcome, err := h.Dispatch(ctx, a)
	r.log.DebugContext(ctx, "action dispatched",
		slog.String("action_id", a.ID.String()),
		slog.String("type", a.ActionType.String()),
		slog.Duration("took", time.Since(start)),
		slog.Bool("ok", err == nil),
	)
	return outcome, err
}

// Deliveries is the record store every built-in handler writes to.
type Deliveries interface {
	CreateEmailSend(ctx context.Context, e domain.EmailSend) error
	CreateDirectMessage(ctx context.Context, m domain.DirectMessage) error
	CreateNotification(ctx context.Context, n domain.Notification) error
	UpsertUserTag(ctx context.Context, t domain.UserTag) error
}

// NewDefaultRegistry registers the email, dm, push and tag handlers.
func NewDefaultRegistry(
	log *slog.Logger,
	deliveries Deliveries,
	users ProfileReader,
	sender SenderIdentityProvider,
	clock timeSource,
) *Registry {
	r := NewRegistry(log)
	r.Register(domain.ActionTypeEmail, &EmailHandler{store: deliveries, users: users, clock: clock})
	r.Register(domain.ActionTypeDM, &DMHandler{store: deliveries, sender: sender, clock: clock})
	r.Register(domain.ActionTypePush, &PushHandler{store: deliveries, clock: clock})
	r.Register(domain.ActionTypeTag, &TagHandler{store: deliveries, clock: clock})
	return r
}
