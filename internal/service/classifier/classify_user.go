package classifier

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/heartmarshall/learning-oracle/internal/domain"
)

const weekDays = 7

// ClassifyUser recomputes and stores the user's segment. It returns nil for
// excluded users and ErrNotFound for unknown ones.
func (s *Service) ClassifyUser(ctx context.Context, userID uuid.UUID) (*domain.Segment, error) {
	if userID == uuid.Nil {
		return nil, domain.NewValidationError("user_id", "required")
	}

	unlock, err := s.locks.Lock(ctx, lockKey(userID))
	if err != nil {
		return nil, fmt.Errorf("lock user: %w", err)
	}
	defer unlock()

	profile, err := s.users.GetProfile(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get user profile: %w", err)
	}
	if profile.IsExcluded() {
		s.log.DebugContext(ctx, "excluded user skipped", slog.String("user_id", userID.String()))
		return nil, nil
	}

	now := s.clock.Now()
	in, err := s.gatherInputs(ctx, profile, now)
	if err != nil {
		return nil, err
	}
	res := Score(in)

	seg := domain.Segment{
		UserID:          userID,
		EngagementLevel: res.Level,
		EngagementScore: res.Score,
		ChurnRisk:       res.ChurnRisk,
		ChurnReason:     res.ChurnReason,
		Lifecycle:       res.Lifecycle,
		CompletionProb:  res.CompletionProb,
		LastAnalyzed:    now,
	}
	if err := s.segments.Upsert(ctx, seg); err != nil {
		return nil, fmt.Errorf("upsert segment: %w", err)
	}

	s.log.DebugContext(ctx, "user classified",
		slog.String("user_id", userID.String()),
		slog.String("level", seg.EngagementLevel.String()),
		slog.Int("churn_risk", seg.ChurnRisk),
		slog.Int("days_since_login", in.DaysSinceLogin),
	)

	return &seg, nil
}

func (s *Service) gatherInputs(ctx context.Context, profile *domain.UserProfile, now time.Time) (Inputs, error) {
	lastLogin, err := s.events.LastEventOfType(ctx, profile.ID, domain.EventTypeLogin)
	if err != nil {
		return Inputs{}, fmt.Errorf("last login: %w", err)
	}

	counts, err := s.events.EventCounts(ctx, profile.ID, weekDays)
	if err != nil {
		return Inputs{}, fmt.Errorf("weekly event counts: %w", err)
	}
	total := 0
	for _, n := range counts {
		total += n
	}

	var loginAt *time.Time
	switch {
	case lastLogin != nil:
		loginAt = &lastLogin.OccurredAt
	case profile.LastLoginAt != nil:
		loginAt = profile.LastLoginAt
	}

	return Inputs{
		DaysSinceLogin:      daysSince(loginAt, now),
		LessonsThisWeek:     counts[domain.EventTypeLessonCompleted],
		TotalEventsThisWeek: total,
		AvgProgress:         profile.AvgProgress,
		EnrollmentCount:     profile.EnrollmentCount,
		OnboardingCompleted: profile.OnboardingCompleted,
		HasCertificate:      profile.HasCertificate,
	}, nil
}

// daysSince returns whole elapsed days, or NoLoginDays for a nil time.
func daysSince(t *time.Time, now time.Time) int {
	if t == nil {
		return NoLoginDays
	}
	d := now.Sub(*t)
	if d < 0 {
		return 0
	}
	return int(d / (24 * time.Hour))
}
