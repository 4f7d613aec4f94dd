package rules

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/heartmarshall/learning-oracle/internal/domain"
)

// predicate reports whether a candidate satisfies one condition field.
type predicate func(ctx context.Context, c *candidate) (bool, error)

// candidate lazily loads the facts predicates look at. It is used by a
// single goroutine.
type candidate struct {
	userID uuid.UUID
	now    time.Time
	svc    *Service

	seg        *domain.Segment
	segLoaded  bool
	user       *domain.UserProfile
	userLoaded bool
}

func (c *candidate) segment(ctx context.Context) (*domain.Segment, error) {
	if c.segLoaded {
		return c.seg, nil
	}
	seg, err := c.svc.segments.GetByUserID(ctx, c.userID)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("get segment: %w", err)
	}
	c.seg, c.segLoaded = seg, true
	return c.seg, nil
}

func (c *candidate) profile(ctx context.Context) (*domain.UserProfile, error) {
	if c.userLoaded {
		return c.user, nil
	}
	p, err := c.svc.users.GetProfile(ctx, c.userID)
	if err != nil {
		return nil, fmt.Errorf("get user profile: %w", err)
	}
	c.user, c.userLoaded = p, true
	return c.user, nil
}

// lastOccurrence returns when the user last produced eventType. Logins fall
// back to the cached last-login attribute.
func (c *candidate) lastOccurrence(ctx context.Context, eventType string) (*time.Time, error) {
	e, err := c.svc.events.LastEventOfType(ctx, c.userID, eventType)
	if err != nil {
		return nil, fmt.Errorf("last %s event: %w", eventType, err)
	}
	if e != nil {
		return &e.OccurredAt, nil
	}
	if eventType == domain.EventTypeLogin {
		p, err := c.profile(ctx)
		if err != nil {
			return nil, err
		}
		return p.LastLoginAt, nil
	}
	return nil, nil
}

// compileConditions turns a spec into predicates that are ANDed. A user
// without a segment never matches.
func compileConditions(spec domain.ConditionSpec) []predicate {
	preds := []predicate{hasSegment}

	if spec.Segment != nil {
		want := *spec.Segment
		preds = append(preds, func(ctx context.Context, c *candidate) (bool, error) {
			seg, err := c.segment(ctx)
			return err == nil && seg.EngagementLevel == want, err
		})
	}
	if spec.ChurnRisk != nil {
		r := *spec.ChurnRisk
		preds = append(preds, func(ctx context.Context, c *candidate) (bool, error) {
			seg, err := c.segment(ctx)
			return err == nil && r.Contains(float64(seg.ChurnRisk)), err
		})
	}
	if spec.Lifecycle != nil {
		want := *spec.Lifecycle
		preds = append(preds, func(ctx context.Context, c *candidate) (bool, error) {
			seg, err := c.segment(ctx)
			return err == nil && seg.Lifecycle == want, err
		})
	}
	if spec.Progress != nil {
		r := *spec.Progress
		preds = append(preds, func(ctx context.Context, c *candidate) (bool, error) {
			p, err := c.profile(ctx)
			if err != nil {
				return false, err
			}
			return p.LatestProgress != nil && r.Contains(*p.LatestProgress), nil
		})
	}

	switch {
	case spec.Event != nil && spec.DaysSince != nil:
		preds = append(preds, quietFor(*spec.Event, *spec.DaysSince))
	case spec.Event != nil:
		eventType := *spec.Event
		preds = append(preds, func(ctx context.Context, c *candidate) (bool, error) {
			at, err := c.lastOccurrence(ctx, eventType)
			return err == nil && at != nil, err
		})
	case spec.DaysSince != nil:
		preds = append(preds, quietFor(domain.EventTypeLogin, *spec.DaysSince))
	}

	return preds
}

func hasSegment(ctx context.Context, c *candidate) (bool, error) {
	seg, err := c.segment(ctx)
	return err == nil && seg != nil, err
}

// quietFor matches users whose last eventType is at least days old, or who
// never produced one.
func quietFor(eventType string, days int) predicate {
	return func(ctx context.Context, c *candidate) (bool, error) {
		at, err := c.lastOccurrence(ctx, eventType)
		if err != nil {
			return false, err
		}
		if at == nil {
			return true, nil
		}
		return int(c.now.Sub(*at)/(24*time.Hour)) >= days, nil
	}
}

// matches evaluates predicates in order and stops at the first miss.
func matches(ctx context.Context, preds []predicate, c *candidate) (bool, error) {
	for _, p := range preds {
		ok, err := p(ctx, c)
		if err != nil || !ok {
			return false, err
		}
	}
	return true, nil
}
