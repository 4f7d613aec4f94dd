package rules

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/heartmarshall/learning-oracle/internal/domain"
	"golang.org/x/sync/errgroup"
)

type candidateOutcome int

const (
	outcomeNoMatch candidateOutcome = iota
	outcomeThrottled
	outcomeCreated
)

// EvaluateRule runs one rule against its candidates and creates actions for
// matching users that pass the throttle. Missing or inactive rules, and
// rules already being evaluated elsewhere, trigger nothing.
func (s *Service) EvaluateRule(ctx context.Context, ruleID uuid.UUID) (domain.EvaluationResult, error) {
	res := domain.EvaluationResult{RuleID: ruleID}

	rule, err := s.rules.GetByID(ctx, ruleID)
	if errors.Is(err, domain.ErrNotFound) {
		s.log.WarnContext(ctx, "rule not found", slog.String("rule_id", ruleID.String()))
		return res, nil
	}
	if err != nil {
		return res, fmt.Errorf("get rule: %w", err)
	}
	if !rule.IsActive {
		s.log.DebugContext(ctx, "inactive rule skipped", slog.String("rule_id", ruleID.String()))
		return res, nil
	}

	release, ok, err := s.ruleLocks.TryLock(ctx, "rule:"+ruleID.String())
	if err != nil {
		return res, fmt.Errorf("lock rule: %w", err)
	}
	if !ok {
		s.log.InfoContext(ctx, "rule evaluation already running", slog.String("rule_id", ruleID.String()))
		return res, nil
	}
	defer release()

	ids, err := s.users.ListCandidateIDs(ctx, s.candidateFilter(rule))
	if err != nil {
		return res, fmt.Errorf("list candidates: %w", err)
	}
	res.Candidates = len(ids)

	preds := compileConditions(rule.Conditions)
	now := s.clock.Now()

	var matched, throttled, failed, created atomic.Int64
	g := new(errgroup.Group)
	g.SetLimit(max(1, s.cfg.Workers))
	for _, userID := range ids {
		if ctx.Err() != nil {
			break
		}
		g.Go(func() error {
			outcome, err := s.evaluateCandidate(ctx, rule, preds, userID, now)
			if err != nil {
				failed.Add(1)
				s.log.WarnContext(ctx, "evaluate candidate failed",
					slog.String("rule_id", ruleID.String()),
					slog.String("user_id", userID.String()),
					slog.String("error", err.Error()),
				)
				return nil
			}
			switch outcome {
			case outcomeThrottled:
				matched.Add(1)
				throttled.Add(1)
			case outcomeCreated:
				matched.Add(1)
				created.Add(1)
			}
			return nil
		})
	}
	_ = g.Wait()

	res.Matched = int(matched.Load())
	res.Throttled = int(throttled.Load())
	res.Failed = int(failed.Load())
	res.Triggered = int(created.Load())

	if res.Triggered > 0 {
		if err := s.rules.RecordTriggered(ctx, rule.ID, res.Triggered, now); err != nil {
			return res, fmt.Errorf("record rule triggered: %w", err)
		}
	}

	s.log.InfoContext(ctx, "rule evaluated",
		slog.String("rule_id", ruleID.String()),
		slog.String("name", rule.Name),
		slog.Int("candidates", res.Candidates),
		slog.Int("matched", res.Matched),
		slog.Int("throttled", res.Throttled),
		slog.Int("failed", res.Failed),
		slog.Int("triggered", res.Triggered),
	)

	return res, nil
}

// EvaluateAllActiveRules evaluates active rules by descending priority.
// A failing rule is logged and counted; the pass continues.
func (s *Service) EvaluateAllActiveRules(ctx context.Context) (domain.EvaluationSummary, error) {
	rules, err := s.rules.List(ctx, true)
	if err != nil {
		return domain.EvaluationSummary{}, fmt.Errorf("list active rules: %w", err)
	}

	var sum domain.EvaluationSummary
	for _, rule := range rules {
		if ctx.Err() != nil {
			s.log.WarnContext(ctx, "evaluation pass interrupted",
				slog.Int("remaining", len(rules)-sum.RulesEvaluated-sum.RulesFailed),
			)
			break
		}

		res, err := s.EvaluateRule(ctx, rule.ID)
		if err != nil {
			sum.RulesFailed++
			s.log.ErrorContext(ctx, "evaluate rule failed",
				slog.String("rule_id", rule.ID.String()),
				slog.String("error", err.Error()),
			)
			continue
		}
		sum.RulesEvaluated++
		sum.TotalTriggered += res.Triggered
	}

	s.log.InfoContext(ctx, "evaluation pass finished",
		slog.Int("rules_evaluated", sum.RulesEvaluated),
		slog.Int("rules_failed", sum.RulesFailed),
		slog.Int("total_triggered", sum.TotalTriggered),
	)

	return sum, nil
}

func (s *Service) candidateFilter(rule *domain.Rule) domain.CandidateFilter {
	f := domain.CandidateFilter{RuleID: rule.ID}
	if rule.Trigger == domain.TriggerSegmentBased && rule.Conditions.Segment != nil {
		f.Segment = rule.Conditions.Segment
		return f
	}
	f.Limit = s.cfg.CandidateCap
	return f
}

func (s *Service) evaluateCandidate(
	ctx context.Context,
	rule *domain.Rule,
	preds []predicate,
	userID uuid.UUID,
	now time.Time,
) (candidateOutcome, error) {
	c := &candidate{userID: userID, now: now, svc: s}

	ok, err := matches(ctx, preds, c)
	if err != nil {
		return outcomeNoMatch, err
	}
	if !ok {
		return outcomeNoMatch, nil
	}

	action, err := s.buildAction(ctx, rule, c, now)
	if err != nil {
		return outcomeNoMatch, err
	}

	outcome := outcomeCreated
	err = s.tx.RunInTx(ctx, func(ctx context.Context) error {
		if err := s.pairLocks.XactLock(ctx, throttleKey(rule.ID, userID)); err != nil {
			return err
		}

		recent, total, err := s.actions.ThrottleStats(ctx, rule.ID, userID, now.Add(-rule.Cooldown()))
		if err != nil {
			return fmt.Errorf("throttle stats: %w", err)
		}
		if isThrottled(rule, recent, total) {
			outcome = outcomeThrottled
			return nil
		}

		if _, err := s.actions.Create(ctx, action); err != nil {
			return fmt.Errorf("create action: %w", err)
		}
		return nil
	})
	if err != nil {
		return outcomeNoMatch, err
	}

	if outcome == outcomeThrottled {
		s.log.DebugContext(ctx, "candidate throttled",
			slog.String("rule_id", rule.ID.String()),
			slog.String("user_id", userID.String()),
		)
	}
	return outcome, nil
}

// isThrottled reports whether another action for the pair would violate the
// cooldown or the per-user cap.
func isThrottled(rule *domain.Rule, recent, total int) bool {
	if rule.CooldownHours > 0 && recent > 0 {
		return true
	}
	return rule.MaxPerUser != nil && total >= *rule.MaxPerUser
}

func throttleKey(ruleID, userID uuid.UUID) string {
	return "throttle:" + ruleID.String() + ":" + userID.String()
}

func (s *Service) buildAction(ctx context.Context, rule *domain.Rule, c *candidate, now time.Time) (domain.Action, error) {
	seg, err := c.segment(ctx)
	if err != nil {
		return domain.Action{}, err
	}
	user, err := c.profile(ctx)
	if err != nil {
		return domain.Action{}, err
	}
	bindings := Bindings(rule, user, seg)

	content, err := s.templates.Render(rule.ActionContent, bindings)
	if err != nil {
		return domain.Action{}, fmt.Errorf("render content: %w", err)
	}

	var subject *string
	if rule.ActionSubject != nil {
		rendered, err := s.templates.Render(*rule.ActionSubject, bindings)
		if err != nil {
			return domain.Action{}, fmt.Errorf("render subject: %w", err)
		}
		subject = &rendered
	}

	ruleID := rule.ID
	return domain.Action{
		ID:              uuid.New(),
		UserID:          c.userID,
		RuleID:          &ruleID,
		ActionType:      rule.ActionType,
		RenderedContent: strings.TrimSpace(content),
		Subject:         subject,
		Template:        rule.ActionTemplate,
		Priority:        rule.Priority,
		Status:          domain.InitialStatus(rule.Priority, s.approvalThreshold()),
		Outcome:         domain.Outcome{},
		CreatedAt:       now,
		UpdatedAt:       now,
	}, nil
}

func (s *Service) approvalThreshold() int {
	if s.cfg.ApprovalThreshold > 0 {
		return s.cfg.ApprovalThreshold
	}
	return domain.DefaultApprovalThreshold
}
