// Package segment implements the per-user classification store using PostgreSQL.
package segment

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/heartmarshall/learning-oracle/internal/adapter/postgres"
	"github.com/heartmarshall/learning-oracle/internal/domain"
)

const segmentColumns = `s.user_id, s.engagement_level, s.engagement_score, s.churn_risk, s.churn_reason,
	s.lifecycle, s.completion_prob, s.last_analyzed`

// Repo provides segment persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new segment repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// Upsert writes the user's classification, replacing any previous one.
func (r *Repo) Upsert(ctx context.Context, s domain.Segment) error {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	_, err := q.Exec(ctx,
		`INSERT INTO segments (user_id, engagement_level, engagement_score, churn_risk, churn_reason,
		                       lifecycle, completion_prob, last_analyzed)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 ON CONFLICT (user_id) DO UPDATE SET
		     engagement_level = EXCLUDED.engagement_level,
		     engagement_score = EXCLUDED.engagement_score,
		     churn_risk       = EXCLUDED.churn_risk,
		     churn_reason     = EXCLUDED.churn_reason,
		     lifecycle        = EXCLUDED.lifecycle,
		     completion_prob  = EXCLUDED.completion_prob,
		     last_analyzed    = EXCLUDED.last_analyzed`,
		s.UserID, string(s.EngagementLevel), s.EngagementScore, s.ChurnRisk, s.ChurnReason,
		string(s.Lifecycle), s.CompletionProb, s.LastAnalyzed,
	)
	if err != nil {
		return postgres.MapError(err, "segment", s.UserID)
	}
	return nil
}

// GetByUserID returns the user's segment or domain.ErrNotFound.
func (r *Repo) GetByUserID(ctx context.Context, userID uuid.UUID) (*domain.Segment, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	row := q.QueryRow(ctx, `SELECT `+segmentColumns+` FROM segments s WHERE s.user_id = $1`, userID)
	s, err := scanSegment(row)
	if err != nil {
		return nil, postgres.MapError(err, "segment", userID)
	}
	return s, nil
}

// ListByLevel returns segments of the given engagement level, most recently
// analyzed first.
func (r *Repo) ListByLevel(ctx context.Context, level domain.EngagementLevel, limit, offset int) ([]domain.Segment, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := q.Query(ctx,
		`SELECT `+segmentColumns+` FROM segments s
		 JOIN users u ON u.id = s.user_id AND NOT u.is_test
		 WHERE s.engagement_level = $1
		 ORDER BY s.last_analyzed DESC, s.user_id
		 LIMIT $2 OFFSET $3`,
		string(level), limit, offset,
	)
	if err != nil {
		return nil, fmt.Errorf("list segments by level: %w", err)
	}
	return collectSegments(rows)
}

// ListAtRisk returns segments with churn risk at or above minRisk, riskiest first.
func (r *Repo) ListAtRisk(ctx context.Context, minRisk, limit int) ([]domain.Segment, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := q.Query(ctx,
		`SELECT `+segmentColumns+` FROM segments s
		 JOIN users u ON u.id = s.user_id AND NOT u.is_test
		 WHERE s.churn_risk >= $1
		 ORDER BY s.churn_risk DESC, s.user_id
		 LIMIT $2`,
		minRisk, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("list at-risk segments: %w", err)
	}
	return collectSegments(rows)
}

// Stats returns the level distribution and the number of users with churn
// risk at or above atRiskThreshold.
func (r *Repo) Stats(ctx context.Context, atRiskThreshold int) (domain.SegmentStats, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	stats := domain.SegmentStats{Distribution: make(map[domain.EngagementLevel]int, len(domain.EngagementLevels))}
	for _, l := range domain.EngagementLevels {
		stats.Distribution[l] = 0
	}

	rows, err := q.Query(ctx,
		`SELECT s.engagement_level, count(*), count(*) FILTER (WHERE s.churn_risk >= $1)
		 FROM segments s
		 JOIN users u ON u.id = s.user_id AND NOT u.is_test
		 GROUP BY s.engagement_level`,
		atRiskThreshold,
	)
	if err != nil {
		return stats, fmt.Errorf("segment stats: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			level         string
			total, atRisk int64
		)
		if err := rows.Scan(&level, &total, &atRisk); err != nil {
			return stats, fmt.Errorf("scan segment stats: %w", err)
		}
		stats.Distribution[domain.EngagementLevel(level)] = int(total)
		stats.Total += int(total)
		stats.AtRiskCount += int(atRisk)
	}
	if err := rows.Err(); err != nil {
		return stats, fmt.Errorf("segment stats rows: %w", err)
	}

	return stats, nil
}

func collectSegments(rows pgx.Rows) ([]domain.Segment, error) {
	defer rows.Close()

	var segments []domain.Segment
	for rows.Next() {
		s, err := scanSegment(rows)
		if err != nil {
			return nil, fmt.Errorf("scan segment: %w", err)
		}
		segments = append(segments, *s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("segment rows: %w", err)
	}
	return segments, nil
}

func scanSegment(row pgx.Row) (*domain.Segment, error) {
	var (
		s                domain.Segment
		level, lifecycle string
	)
	err := row.Scan(&s.UserID, &level, &s.EngagementScore, &s.ChurnRisk, &s.ChurnReason,
		&lifecycle, &s.CompletionProb, &s.LastAnalyzed)
	if err != nil {
		return nil, err
	}
	s.EngagementLevel = domain.EngagementLevel(level)
	s.Lifecycle = domain.Lifecycle(lifecycle)
	return &s, nil
}
