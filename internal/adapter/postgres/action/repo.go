// Package action implements the action queue using PostgreSQL.
package action

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/heartmarshall/learning-oracle/internal/adapter/postgres"
	"github.com/heartmarshall/learning-oracle/internal/domain"
)

const actionColumns = `id, user_id, rule_id, action_type, rendered_content, subject, template, priority,
	status, scheduled_at, executed_at, outcome, created_at, updated_at`

const (
	defaultLimit = 50
	maxLimit     = 200
)

// Repo provides action persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new action repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// ---------------------------------------------------------------------------
// Write operations
// ---------------------------------------------------------------------------

// Create inserts a new action.
func (r *Repo) Create(ctx context.Context, a domain.Action) (*domain.Action, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	outcome, err := marshalOutcome(a.Outcome)
	if err != nil {
		return nil, fmt.Errorf("action marshal outcome: %w", err)
	}

	row := q.QueryRow(ctx,
		`INSERT INTO actions (id, user_id, rule_id, action_type, rendered_content, subject, template,
		                      priority, status, scheduled_at, outcome, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		 RETURNING `+actionColumns,
		a.ID, a.UserID, a.RuleID, string(a.ActionType), a.RenderedContent, a.Subject, a.Template,
		a.Priority, string(a.Status), a.ScheduledAt, outcome, a.CreatedAt, a.UpdatedAt,
	)

	created, err := scanAction(row)
	if err != nil {
		return nil, postgres.MapError(err, "action", a.ID)
	}
	return created, nil
}

// Transition moves the action to t.To only if its current status is one of
// t.From. It returns domain.ErrNotFound for an unknown id and
// domain.ErrConflict when the status no longer matches.
func (r *Repo) Transition(ctx context.Context, id uuid.UUID, t domain.ActionTransition) (*domain.Action, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	outcome, err := marshalOutcome(t.Outcome)
	if err != nil {
		return nil, fmt.Errorf("action marshal outcome: %w", err)
	}

	from := make([]string, len(t.From))
	for i, s := range t.From {
		from[i] = string(s)
	}

	row := q.QueryRow(ctx,
		`UPDATE actions
		 SET status = $3,
		     outcome = COALESCE($4, outcome),
		     executed_at = COALESCE($5, executed_at),
		     updated_at = $6
		 WHERE id = $1 AND status = ANY($2)
		 RETURNING `+actionColumns,
		id, from, string(t.To), outcome, t.ExecutedAt, t.Now,
	)

	updated, err := scanAction(row)
	if errors.Is(err, pgx.ErrNoRows) {
		if _, getErr := r.GetByID(ctx, id); getErr != nil {
			return nil, getErr
		}
		return nil, fmt.Errorf("action %s: %w", id, domain.ErrConflict)
	}
	if err != nil {
		return nil, postgres.MapError(err, "action", id)
	}
	return updated, nil
}

// MarkReapproved records on a failed action the id of its reapproved copy.
// It succeeds once per action: a second call, or a call on an action that is
// not failed, returns domain.ErrConflict.
func (r *Repo) MarkReapproved(ctx context.Context, id, copyID uuid.UUID, now time.Time) error {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := q.Exec(ctx,
		`UPDATE actions
		 SET outcome = COALESCE(outcome, '{}'::jsonb) || jsonb_build_object($2::text, $3::text),
		     updated_at = $4
		 WHERE id = $1 AND status = 'failed' AND (outcome->>$2::text) IS NULL`,
		id, domain.OutcomeReapprovedAs, copyID.String(), now,
	)
	if err != nil {
		return postgres.MapError(err, "action", id)
	}
	if tag.RowsAffected() == 0 {
		if _, err := r.GetByID(ctx, id); err != nil {
			return err
		}
		return fmt.Errorf("action %s: %w", id, domain.ErrConflict)
	}
	return nil
}

// ExpirePending rejects pending actions created before olderThan and returns
// how many were changed.
func (r *Repo) ExpirePending(ctx context.Context, olderThan time.Time, outcome domain.Outcome, now time.Time) (int, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	data, err := marshalOutcome(outcome)
	if err != nil {
		return 0, fmt.Errorf("action marshal outcome: %w", err)
	}

	tag, err := q.Exec(ctx,
		`UPDATE actions SET status = 'rejected', outcome = $2, updated_at = $3
		 WHERE status = 'pending' AND created_at < $1`,
		olderThan, data, now,
	)
	if err != nil {
		return 0, fmt.Errorf("expire pending actions: %w", err)
	}
	return int(tag.RowsAffected()), nil
}

// ---------------------------------------------------------------------------
// Read operations
// ---------------------------------------------------------------------------

// GetByID returns an action or domain.ErrNotFound.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Action, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	a, err := scanAction(q.QueryRow(ctx, `SELECT `+actionColumns+` FROM actions WHERE id = $1`, id))
	if err != nil {
		return nil, postgres.MapError(err, "action", id)
	}
	return a, nil
}

// ThrottleStats reports how many actions the rule created for the user since
// the given time, and in total.
func (r *Repo) ThrottleStats(ctx context.Context, ruleID, userID uuid.UUID, since time.Time) (recent, total int, err error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	var rec, tot int64
	err = q.QueryRow(ctx,
		`SELECT count(*) FILTER (WHERE created_at >= $3), count(*)
		 FROM actions
		 WHERE rule_id = $1 AND user_id = $2`,
		ruleID, userID, since,
	).Scan(&rec, &tot)
	if err != nil {
		return 0, 0, postgres.MapError(err, "action_throttle", ruleID)
	}
	return int(rec), int(tot), nil
}

// ListDue returns approved actions whose schedule has arrived,
// highest priority first, then oldest first.
func (r *Repo) ListDue(ctx context.Context, now time.Time, limit int) ([]domain.Action, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := q.Query(ctx,
		`SELECT `+actionColumns+` FROM actions
		 WHERE status = 'approved' AND (scheduled_at IS NULL OR scheduled_at <= $1)
		 ORDER BY priority DESC, created_at ASC, id
		 LIMIT $2`,
		now, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("list due actions: %w", err)
	}
	return collectActions(rows)
}

// List returns actions matching the filter, newest first.
func (r *Repo) List(ctx context.Context, f domain.ActionFilter) ([]domain.Action, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	limit := f.Limit
	if limit <= 0 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	offset := max(f.Offset, 0)

	query := postgres.Builder().
		Select(actionColumns).
		From("actions").
		OrderBy("created_at DESC", "id").
		Limit(uint64(limit)).
		Offset(uint64(offset))
	if f.Status != nil {
		query = query.Where(sq.Eq{"status": string(*f.Status)})
	}
	if f.UserID != nil {
		query = query.Where(sq.Eq{"user_id": *f.UserID})
	}
	if f.RuleID != nil {
		query = query.Where(sq.Eq{"rule_id": *f.RuleID})
	}

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build actions query: %w", err)
	}

	rows, err := q.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("list actions: %w", err)
	}
	return collectActions(rows)
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

func marshalOutcome(o domain.Outcome) ([]byte, error) {
	if o == nil {
		return nil, nil
	}
	return json.Marshal(o)
}

func collectActions(rows pgx.Rows) ([]domain.Action, error) {
	defer rows.Close()

	var actions []domain.Action
	for rows.Next() {
		a, err := scanAction(rows)
		if err != nil {
			return nil, fmt.Errorf("scan action: %w", err)
		}
		actions = append(actions, *a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("action rows: %w", err)
	}
	return actions, nil
}

func scanAction(row pgx.Row) (*domain.Action, error) {
	var (
		a                  domain.Action
		actionType, status string
		outcome            []byte
	)
	err := row.Scan(&a.ID, &a.UserID, &a.RuleID, &actionType, &a.RenderedContent, &a.Subject, &a.Template,
		&a.Priority, &status, &a.ScheduledAt, &a.ExecutedAt, &outcome, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return nil, err
	}
	a.ActionType = domain.ActionType(actionType)
	a.Status = domain.ActionStatus(status)
	if len(outcome) > 0 {
		if err := json.Unmarshal(outcome, &a.Outcome); err != nil {
			return nil, fmt.Errorf("unmarshal action outcome: %w", err)
		}
	}
	return &a, nil
}
