// Package event implements the append-only behavioral event store using PostgreSQL.
package event

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

const eventColumns = "id, user_id, type, metadata, source, session_id, occurred_at"

// Repo provides event persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new event repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// ---------------------------------------------------------------------------
// Write operations
// ---------------------------------------------------------------------------

// Create appends an event. A zero OccurredAt is replaced by the database clock.
func (r *Repo) Create(ctx context.Context, e domain.Event) (*domain.Event, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	metadata, err := marshalMetadata(e.Metadata)
	if err != nil {
		return nil, fmt.Errorf("event marshal metadata: %w", err)
	}

	var occurredAt *time.Time
	if !e.OccurredAt.IsZero() {
		occurredAt = &e.OccurredAt
	}

	row := q.QueryRow(ctx,
		`INSERT INTO events (id, user_id, type, metadata, source, session_id, occurred_at)
		 VALUES ($1, $2, $3, $4, $5, $6, COALESCE($7, now()))
		 RETURNING `+eventColumns,
		e.ID, e.UserID, e.Type, metadata, string(e.Source), e.SessionID, occurredAt,
	)

	created, err := scanEvent(row)
	if err != nil {
		return nil, postgres.MapError(err, "event", e.ID)
	}
	return created, nil
}

// ---------------------------------------------------------------------------
// Read operations
// ---------------------------------------------------------------------------

// ListSince returns the user's events at or after since in chronological
// order. An empty types slice matches every type.
func (r *Repo) ListSince(ctx context.Context, userID uuid.UUID, since time.Time, types []string) ([]domain.Event, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	query := postgres.Builder().
		Select(eventColumns).
		From("events").
		Where(sq.Eq{"user_id": userID}).
		Where(sq.GtOrEq{"occurred_at": since}).
		OrderBy("occurred_at ASC", "seq ASC")
	if len(types) > 0 {
		query = query.Where(sq.Eq{"type": types})
	}

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build events query: %w", err)
	}

	rows, err := q.Query(ctx, sql, args...)
	if err != nil {
		return nil, postgres.MapError(err, "events", userID)
	}
	defer rows.Close()

	var events []domain.Event
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, postgres.MapError(err, "events", userID)
		}
		events = append(events, *e)
	}
	if err := rows.Err(); err != nil {
		return nil, postgres.MapError(err, "events", userID)
	}

	return events, nil
}

// CountsByType returns per-type event counts for the user at or after since.
func (r *Repo) CountsByType(ctx context.Context, userID uuid.UUID, since time.Time) (map[string]int, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := q.Query(ctx,
		`SELECT type, count(*) FROM events
		 WHERE user_id = $1 AND occurred_at >= $2
		 GROUP BY type`,
		userID, since,
	)
	if err != nil {
		return nil, postgres.MapError(err, "event_counts", userID)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var (
			eventType string
			n         int64
		)
		if err := rows.Scan(&eventType, &n); err != nil {
			return nil, postgres.MapError(err, "event_counts", userID)
		}
		counts[eventType] = int(n)
	}
	if err := rows.Err(); err != nil {
		return nil, postgres.MapError(err, "event_counts", userID)
	}

	return counts, nil
}

// LastOfType returns the user's most recent event of the given type,
// or nil when there is none.
func (r *Repo) LastOfType(ctx context.Context, userID uuid.UUID, eventType string) (*domain.Event, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	row := q.QueryRow(ctx,
		`SELECT `+eventColumns+` FROM events
		 WHERE user_id = $1 AND type = $2
		 ORDER BY occurred_at DESC, seq DESC
		 LIMIT 1`,
		userID, eventType,
	)

	e, err := scanEvent(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, postgres.MapError(err, "event", userID)
	}
	return e, nil
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

func marshalMetadata(m map[string]any) ([]byte, error) {
	if m == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(m)
}

func scanEvent(row pgx.Row) (*domain.Event, error) {
	var (
		e        domain.Event
		metadata []byte
		source   string
	)
	if err := row.Scan(&e.ID, &e.UserID, &e.Type, &metadata, &source, &e.SessionID, &e.OccurredAt); err != nil {
		return nil, err
	}
	e.Source = domain.EventSource(source)
	e.Metadata = map[string]any{}
	if len(metadata) > 0 {
		if err := json.Unmarshal(metadata, &e.Metadata); err != nil {
			return nil, fmt.Errorf("unmarshal event metadata: %w", err)
		}
	}
	return &e, nil
}
