// Package user implements read access to the learner store using PostgreSQL.
// The engine never writes users; profiles are assembled from the user,
// enrollment and certificate tables owned by other subsystems.
package user

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/heartmarshall/learning-oracle/internal/adapter/postgres"
	"github.com/heartmarshall/learning-oracle/internal/domain"
)

// Repo provides learner profile reads backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new user repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// GetProfile returns the learner profile with enrollment aggregates.
func (r *Repo) GetProfile(ctx context.Context, id uuid.UUID) (*domain.UserProfile, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	var p domain.UserProfile
	var enrollments int64
	err := q.QueryRow(ctx,
		`SELECT u.id, u.email, u.name, u.is_test, u.last_login_at, u.onboarding_completed, u.created_at,
		        (SELECT count(*) FROM enrollments e WHERE e.user_id = u.id),
		        (SELECT COALESCE(avg(e.progress), 0)::float8 FROM enrollments e WHERE e.user_id = u.id),
		        (SELECT e.progress::float8 FROM enrollments e WHERE e.user_id = u.id
		          ORDER BY e.updated_at DESC, e.id LIMIT 1),
		        EXISTS (SELECT 1 FROM certificates c WHERE c.user_id = u.id)
		 FROM users u
		 WHERE u.id = $1`,
		id,
	).Scan(&p.ID, &p.Email, &p.Name, &p.IsTest, &p.LastLoginAt, &p.OnboardingCompleted, &p.CreatedAt,
		&enrollments, &p.AvgProgress, &p.LatestProgress, &p.HasCertificate)
	if err != nil {
		return nil, postgres.MapError(err, "user", id)
	}
	p.EnrollmentCount = int(enrollments)

	return &p, nil
}

// ListForClassification returns up to limit non-test users, never-analyzed
// and least-recently-analyzed first.
func (r *Repo) ListForClassification(ctx context.Context, limit int) ([]uuid.UUID, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := q.Query(ctx,
		`SELECT u.id FROM users u
		 LEFT JOIN segments s ON s.user_id = u.id
		 WHERE NOT u.is_test
		 ORDER BY s.last_analyzed ASC NULLS FIRST, u.created_at, u.id
		 LIMIT $1`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("list users for classification: %w", err)
	}
	defer rows.Close()

	return collectIDs(rows)
}

// ListCandidateIDs returns non-test users matching the filter.
func (r *Repo) ListCandidateIDs(ctx context.Context, f domain.CandidateFilter) ([]uuid.UUID, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	query := postgres.Builder().
		Select("u.id").
		From("users u").
		LeftJoin("LATERAL (SELECT max(a.created_at) AS last_action FROM actions a WHERE a.rule_id = ? AND a.user_id = u.id) la ON TRUE", f.RuleID).
		Where("NOT u.is_test").
		OrderBy("la.last_action ASC NULLS FIRST", "u.id")

	if f.Segment != nil {
		query = query.
			Join("segments s ON s.user_id = u.id").
			Where(sq.Eq{"s.engagement_level": string(*f.Segment)})
	}
	if f.Limit > 0 {
		query = query.Limit(uint64(f.Limit))
	}

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build candidates query: %w", err)
	}

	rows, err := q.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("list rule candidates: %w", err)
	}
	defer rows.Close()

	return collectIDs(rows)
}

type idRows interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
}

func collectIDs(rows idRows) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan user id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("user id rows: %w", err)
	}
	return ids, nil
}
