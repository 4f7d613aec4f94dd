// Package delivery writes outbound delivery records (email queue, direct
// messages, notifications, user tags) consumed by transport workers.
package delivery

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/heartmarshall/learning-oracle/internal/adapter/postgres"
	"github.com/heartmarshall/learning-oracle/internal/domain"
)

// Repo provides delivery record persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new delivery repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// CreateEmailSend queues an email.
func (r *Repo) CreateEmailSend(ctx context.Context, e domain.EmailSend) error {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	_, err := q.Exec(ctx,
		`INSERT INTO email_sends (id, user_id, to_address, subject, body, template, action_id, status, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		e.ID, e.UserID, e.ToAddress, e.Subject, e.Body, e.Template, e.ActionID, e.Status, e.CreatedAt,
	)
	return postgres.MapError(err, "email_send", e.ID)
}

// CreateDirectMessage stores an in-app message.
func (r *Repo) CreateDirectMessage(ctx context.Context, m domain.DirectMessage) error {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	_, err := q.Exec(ctx,
		`INSERT INTO direct_messages (id, sender_id, recipient_id, body, action_id, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		m.ID, m.SenderID, m.RecipientID, m.Body, m.ActionID, m.CreatedAt,
	)
	return postgres.MapError(err, "direct_message", m.ID)
}

// CreateNotification stores a push notification.
func (r *Repo) CreateNotification(ctx context.Context, n domain.Notification) error {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	_, err := q.Exec(ctx,
		`INSERT INTO notifications (id, user_id, title, body, action_id, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		n.ID, n.UserID, n.Title, n.Body, n.ActionID, n.CreatedAt,
	)
	return postgres.MapError(err, "notification", n.ID)
}

// UpsertUserTag attaches a tag to the user. Re-tagging refreshes the action
// reference and timestamp.
func (r *Repo) UpsertUserTag(ctx context.Context, t domain.UserTag) error {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	_, err := q.Exec(ctx,
		`INSERT INTO user_tags (user_id, tag, action_id, created_at)
		 VALUES ($1, $2, $3, $4)
		 ON CONFLICT (user_id, tag) DO UPDATE SET
		     action_id = EXCLUDED.action_id,
		     created_at = EXCLUDED.created_at`,
		t.UserID, t.Tag, t.ActionID, t.CreatedAt,
	)
	return postgres.MapError(err, "user_tag", t.UserID)
}
