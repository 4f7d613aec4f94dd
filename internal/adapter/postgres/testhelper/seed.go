package testhelper

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/heartmarshall/learning-oracle/internal/domain"
)

// uniqueSuffix returns a short unique string for generating non-conflicting test data.
func uniqueSuffix() string {
	return uuid.New().String()[:8]
}

// UserSeed holds optional attributes for SeedUserWith.
type UserSeed struct {
	IsTest              bool
	LastLoginAt         *time.Time
	OnboardingCompleted bool
	CreatedAt           time.Time
}

// SeedUser creates a regular learner with default values.
func SeedUser(t *testing.T, pool *pgxpool.Pool) domain.UserProfile {
	t.Helper()
	return SeedUserWith(t, pool, UserSeed{})
}

// SeedUserWith creates a learner with the given attributes.
func SeedUserWith(t *testing.T, pool *pgxpool.Pool, s UserSeed) domain.UserProfile {
	t.Helper()

	suffix := uniqueSuffix()
	createdAt := s.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC().Truncate(time.Microsecond)
	}
	user := domain.UserProfile{
		ID:                  uuid.New(),
		Email:               "learner-" + suffix + "@example.com",
		Name:                "Learner " + suffix,
		IsTest:              s.IsTest,
		LastLoginAt:         s.LastLoginAt,
		OnboardingCompleted: s.OnboardingCompleted,
		CreatedAt:           createdAt,
	}

	_, err := pool.Exec(context.Background(),
		`INSERT INTO users (id, email, name, is_test, last_login_at, onboarding_completed, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		user.ID, user.Email, user.Name, user.IsTest, user.LastLoginAt, user.OnboardingCompleted, user.CreatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedUser insert user: %v", err)
	}

	return user
}

// SeedEnrollment enrolls the user into a fresh course with the given progress.
func SeedEnrollment(t *testing.T, pool *pgxpool.Pool, userID uuid.UUID, progress float64, updatedAt time.Time) uuid.UUID {
	t.Helper()

	id := uuid.New()
	_, err := pool.Exec(context.Background(),
		`INSERT INTO enrollments (id, user_id, course_id, progress, enrolled_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $5)`,
		id, userID, uuid.New(), progress, updatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedEnrollment: %v", err)
	}
	return id
}

// SeedCertificate issues a certificate to the user.
func SeedCertificate(t *testing.T, pool *pgxpool.Pool, userID uuid.UUID) {
	t.Helper()

	_, err := pool.Exec(context.Background(),
		`INSERT INTO certificates (id, user_id, course_id) VALUES ($1, $2, $3)`,
		uuid.New(), userID, uuid.New(),
	)
	if err != nil {
		t.Fatalf("testhelper: SeedCertificate: %v", err)
	}
}

// SeedEvent appends an event of the given type at occurredAt.
func SeedEvent(t *testing.T, pool *pgxpool.Pool, userID uuid.UUID, eventType string, occurredAt time.Time) uuid.UUID {
	t.Helper()

	id := uuid.New()
	_, err := pool.Exec(context.Background(),
		`INSERT INTO events (id, user_id, type, metadata, source, occurred_at)
		 VALUES ($1, $2, $3, '{}'::jsonb, 'web', $4)`,
		id, userID, eventType, occurredAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedEvent: %v", err)
	}
	return id
}

// SeedSegment writes a classification row for the user.
func SeedSegment(t *testing.T, pool *pgxpool.Pool, s domain.Segment) {
	t.Helper()

	if s.LastAnalyzed.IsZero() {
		s.LastAnalyzed = time.Now().UTC()
	}
	_, err := pool.Exec(context.Background(),
		`INSERT INTO segments (user_id, engagement_level, engagement_score, churn_risk, churn_reason,
		                       lifecycle, completion_prob, last_analyzed)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 ON CONFLICT (user_id) DO UPDATE SET
		     engagement_level = EXCLUDED.engagement_level,
		     engagement_score = EXCLUDED.engagement_score,
		     churn_risk = EXCLUDED.churn_risk,
		     churn_reason = EXCLUDED.churn_reason,
		     lifecycle = EXCLUDED.lifecycle,
		     completion_prob = EXCLUDED.completion_prob,
		     last_analyzed = EXCLUDED.last_analyzed`,
		s.UserID, string(s.EngagementLevel), s.EngagementScore, s.ChurnRisk, s.ChurnReason,
		string(s.Lifecycle), s.CompletionProb, s.LastAnalyzed,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedSegment: %v", err)
	}
}

// SeedRule inserts a rule. Zero values are replaced by defaults.
func SeedRule(t *testing.T, pool *pgxpool.Pool, r domain.Rule) domain.Rule {
	t.Helper()

	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	if r.Name == "" {
		r.Name = "rule-" + uniqueSuffix()
	}
	if r.Trigger == "" {
		r.Trigger = domain.TriggerSegmentBased
	}
	if r.ActionType == "" {
		r.ActionType = domain.ActionTypeEmail
	}
	if r.ActionContent == "" {
		r.ActionContent = "Hello {{ user.name }}"
	}
	if r.Priority == 0 {
		r.Priority = domain.DefaultRulePriority
	}
	now := time.Now().UTC().Truncate(time.Microsecond)
	r.CreatedAt, r.UpdatedAt = now, now

	conditions, err := json.Marshal(r.Conditions)
	if err != nil {
		t.Fatalf("testhelper: SeedRule marshal conditions: %v", err)
	}

	_, err = pool.Exec(context.Background(),
		`INSERT INTO rules (id, name, trigger, conditions, action_type, action_template, action_subject,
		                    action_content, priority, cooldown_hours, max_per_user, is_active, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $13)`,
		r.ID, r.Name, string(r.Trigger), conditions, string(r.ActionType), r.ActionTemplate, r.ActionSubject,
		r.ActionContent, r.Priority, r.CooldownHours, r.MaxPerUser, r.IsActive, now,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedRule: %v", err)
	}
	return r
}

// SeedAction inserts an action. Zero values are replaced by defaults.
func SeedAction(t *testing.T, pool *pgxpool.Pool, a domain.Action) domain.Action {
	t.Helper()

	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	if a.ActionType == "" {
		a.ActionType = domain.ActionTypeEmail
	}
	if a.RenderedContent == "" {
		a.RenderedContent = "content " + uniqueSuffix()
	}
	if a.Priority == 0 {
		a.Priority = domain.DefaultRulePriority
	}
	if a.Status == "" {
		a.Status = domain.ActionStatusApproved
	}
	if a.CreatedAt.IsZero() {
		a.CreatedAt = time.Now().UTC().Truncate(time.Microsecond)
	}
	a.UpdatedAt = a.CreatedAt

	_, err := pool.Exec(context.Background(),
		`INSERT INTO actions (id, user_id, rule_id, action_type, rendered_content, subject, template,
		                      priority, status, scheduled_at, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $11)`,
		a.ID, a.UserID, a.RuleID, string(a.ActionType), a.RenderedContent, a.Subject, a.Template,
		a.Priority, string(a.Status), a.ScheduledAt, a.CreatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedAction: %v", err)
	}
	return a
}
