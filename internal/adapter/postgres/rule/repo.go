// Package rule implements the automation rule store using PostgreSQL.
package rule

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/heartmarshall/learning-oracle/internal/adapter/postgres"
	"github.com/heartmarshall/learning-oracle/internal/domain"
)

const ruleColumns = `id, name, trigger, conditions, action_type, action_template, action_subject,
	action_content, priority, cooldown_hours, max_per_user, is_active, times_triggered,
	last_triggered, created_at, updated_at`

// Repo provides rule persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new rule repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// ---------------------------------------------------------------------------
// Write operations
// ---------------------------------------------------------------------------

// Create inserts a new rule. A duplicate name maps to domain.ErrAlreadyExists.
func (r *Repo) Create(ctx context.Context, rule domain.Rule) (*domain.Rule, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	conditions, err := json.Marshal(rule.Conditions)
	if err != nil {
		return nil, fmt.Errorf("rule marshal conditions: %w", err)
	}

	row := q.QueryRow(ctx,
		`INSERT INTO rules (id, name, trigger, conditions, action_type, action_template, action_subject,
		                    action_content, priority, cooldown_hours, max_per_user, is_active, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		 RETURNING `+ruleColumns,
		rule.ID, rule.Name, string(rule.Trigger), conditions, string(rule.ActionType), rule.ActionTemplate,
		rule.ActionSubject, rule.ActionContent, rule.Priority, rule.CooldownHours, rule.MaxPerUser,
		rule.IsActive, rule.CreatedAt, rule.UpdatedAt,
	)

	created, err := scanRule(row)
	if err != nil {
		return nil, postgres.MapError(err, "rule", rule.ID)
	}
	return created, nil
}

// Toggle flips is_active and returns the updated rule.
func (r *Repo) Toggle(ctx context.Context, id uuid.UUID, now time.Time) (*domain.Rule, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	row := q.QueryRow(ctx,
		`UPDATE rules SET is_active = NOT is_active, updated_at = $2
		 WHERE id = $1
		 RETURNING `+ruleColumns,
		id, now,
	)

	rule, err := scanRule(row)
	if err != nil {
		return nil, postgres.MapError(err, "rule", id)
	}
	return rule, nil
}

// RecordTriggered atomically adds n to times_triggered and stamps last_triggered.
func (r *Repo) RecordTriggered(ctx context.Context, id uuid.UUID, n int, at time.Time) error {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := q.Exec(ctx,
		`UPDATE rules SET times_triggered = times_triggered + $2, last_triggered = $3
		 WHERE id = $1`,
		id, n, at,
	)
	if err != nil {
		return postgres.MapError(err, "rule", id)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("rule %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

// ---------------------------------------------------------------------------
// Read operations
// ---------------------------------------------------------------------------

// GetByID returns a rule or domain.ErrNotFound.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Rule, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	rule, err := scanRule(q.QueryRow(ctx, `SELECT `+ruleColumns+` FROM rules WHERE id = $1`, id))
	if err != nil {
		return nil, postgres.MapError(err, "rule", id)
	}
	return rule, nil
}

// List returns rules by priority (highest first), optionally only active ones.
func (r *Repo) List(ctx context.Context, activeOnly bool) ([]domain.Rule, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	query := postgres.Builder().
		Select(ruleColumns).
		From("rules").
		OrderBy("priority DESC", "created_at ASC", "id")
	if activeOnly {
		query = query.Where(sq.Eq{"is_active": true})
	}

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build rules query: %w", err)
	}

	rows, err := q.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("list rules: %w", err)
	}
	defer rows.Close()

	var rules []domain.Rule
	for rows.Next() {
		rule, err := scanRule(rows)
		if err != nil {
			return nil, fmt.Errorf("scan rule: %w", err)
		}
		rules = append(rules, *rule)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rule rows: %w", err)
	}
	return rules, nil
}

func scanRule(row pgx.Row) (*domain.Rule, error) {
	var (
		rule                domain.Rule
		trigger, actionType string
		conditions          []byte
		timesTriggered      int32
	)
	err := row.Scan(&rule.ID, &rule.Name, &trigger, &conditions, &actionType, &rule.ActionTemplate,
		&rule.ActionSubject, &rule.ActionContent, &rule.Priority, &rule.CooldownHours, &rule.MaxPerUser,
		&rule.IsActive, &timesTriggered, &rule.LastTriggered, &rule.CreatedAt, &rule.UpdatedAt)
	if err != nil {
		return nil, err
	}
	rule.Trigger = domain.TriggerType(trigger)
	rule.ActionType = domain.ActionType(actionType)
	rule.TimesTriggered = int(timesTriggered)
	if len(conditions) > 0 {
		if err := json.Unmarshal(conditions, &rule.Conditions); err != nil {
			return nil, fmt.Errorf("unmarshal rule conditions: %w", err)
		}
	}
	return &rule, nil
}
