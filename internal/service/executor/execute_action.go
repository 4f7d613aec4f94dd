package executor

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/heartmarshall/learning-oracle/internal/domain"
	"github.com/heartmarshall/learning-oracle/internal/service/ingest"
)

// ExecuteAction dispatches one approved, due action. Other statuses yield
// ErrPreconditionFailed without any change. A failed dispatch marks the
// action failed and returns a *domain.DispatchError.
func (s *Service) ExecuteAction(ctx context.Context, actionID uuid.UUID) (domain.ExecutionResult, error) {
	a, err := s.actions.GetByID(ctx, actionID)
	if err != nil {
		return domain.ExecutionResult{ActionID: actionID}, fmt.Errorf("get action: %w", err)
	}
	if err := s.checkExecutable(a); err != nil {
		return domain.ExecutionResult{ActionID: actionID}, err
	}

	unlock, err := s.lockUser(ctx, a.UserID)
	if err != nil {
		return domain.ExecutionResult{ActionID: actionID}, fmt.Errorf("lock user: %w", err)
	}
	defer unlock()

	return s.executeLocked(ctx, actionID)
}

func (s *Service) checkExecutable(a *domain.Action) error {
	if a.Status != domain.ActionStatusApproved {
		return fmt.Errorf("action %s is %s: %w", a.ID, a.Status, domain.ErrPreconditionFailed)
	}
	if !a.IsDue(s.clock.Now()) {
		return fmt.Errorf("action %s is scheduled for %s: %w", a.ID, a.ScheduledAt.Format(time.RFC3339), domain.ErrPreconditionFailed)
	}
	return nil
}

// executeLocked runs with the user's lock held. The status is re-read so a
// concurrent executor that finished first is never repeated.
//
// Delivery records and the status change commit in one transaction, so an
// action is either approved with no delivery or finalized with it. Handler
// writes run in a savepoint: a failed dispatch leaves no partial delivery and
// the failure is still recorded.
func (s *Service) executeLocked(ctx context.Context, actionID uuid.UUID) (domain.ExecutionResult, error) {
	res := domain.ExecutionResult{ActionID: actionID}

	a, err := s.actions.GetByID(ctx, actionID)
	if err != nil {
		return res, fmt.Errorf("get action: %w", err)
	}
	if err := s.checkExecutable(a); err != nil {
		return res, err
	}

	if err := s.limiter.Wait(ctx); err != nil {
		return res, fmt.Errorf("wait for dispatch slot: %w", err)
	}

	var (
		outcome     domain.Outcome
		dispatchErr error
	)
	now := s.clock.Now()

	err = s.tx.RunInTx(ctx, func(ctx context.Context) error {
		dispatchErr = s.tx.RunInTx(ctx, func(ctx context.Context) error {
			var err error
			outcome, err = s.dispatcher.Dispatch(ctx, *a)
			return err
		})

		if dispatchErr != nil {
			res.Outcome = domain.Outcome{"error": dispatchErr.Error()}
			return s.finalize(ctx, a.ID, domain.ActionTransition{
				From:    []domain.ActionStatus{domain.ActionStatusApproved},
				To:      domain.ActionStatusFailed,
				Outcome: res.Outcome,
				Now:     now,
			})
		}

		if outcome == nil {
			outcome = domain.Outcome{}
		}
		return s.finalize(ctx, a.ID, domain.ActionTransition{
			From:       []domain.ActionStatus{domain.ActionStatusApproved},
			To:         domain.ActionStatusExecuted,
			Outcome:    outcome,
			ExecutedAt: &now,
			Now:        now,
		})
	})
	if err != nil {
		return domain.ExecutionResult{ActionID: actionID}, err
	}

	if dispatchErr != nil {
		res.Error = dispatchErr.Error()
		s.log.WarnContext(ctx, "action dispatch failed",
			slog.String("action_id", a.ID.String()),
			slog.String("user_id", a.UserID.String()),
			slog.String("type", a.ActionType.String()),
			slog.String("error", dispatchErr.Error()),
		)
		return res, &domain.DispatchError{ActionID: a.ID, ActionType: a.ActionType, Err: dispatchErr}
	}

	res.Success = true
	res.Outcome = outcome

	s.recordSent(ctx, a)

	s.log.InfoContext(ctx, "action executed",
		slog.String("action_id", a.ID.String()),
		slog.String("user_id", a.UserID.String()),
		slog.String("type", a.ActionType.String()),
	)

	return res, nil
}

// finalize moves an approved action to its terminal status. Losing the
// conditional update to another executor is ErrPreconditionFailed.
func (s *Service) finalize(ctx context.Context, id uuid.UUID, t domain.ActionTransition) error {
	_, err := s.actions.Transition(ctx, id, t)
	if errors.Is(err, domain.ErrConflict) {
		return fmt.Errorf("action %s no longer approved: %w", id, domain.ErrPreconditionFailed)
	}
	if err != nil {
		return fmt.Errorf("mark action %s: %w", t.To, err)
	}
	return nil
}

// recordSent feeds the completion back into ingest. The action is already
// executed, so a failure here is only logged.
func (s *Service) recordSent(ctx context.Context, a *domain.Action) {
	metadata := map[string]any{"action_id": a.ID.String()}
	if a.RuleID != nil {
		metadata["rule_id"] = a.RuleID.String()
	}

	if _, err := s.events.RecordEvent(ctx, ingest.RecordEventInput{
		UserID:   a.UserID,
		Type:     a.ActionType.SentEventType(),
		Metadata: metadata,
		Source:   sentEventSource(a.ActionType),
	}); err != nil {
		s.log.ErrorContext(ctx, "record sent event failed",
			slog.String("action_id", a.ID.String()),
			slog.String("error", err.Error()),
		)
	}
}
