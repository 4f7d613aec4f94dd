package executor

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/heartmarshall/learning-oracle/internal/domain"
)

const manualPriority = 5

// ApproveAction moves a pending action to approved.
func (s *Service) ApproveAction(ctx context.Context, id uuid.UUID) (*domain.Action, error) {
	a, err := s.transition(ctx, id, domain.ActionTransition{
		From: []domain.ActionStatus{domain.ActionStatusPending},
		To:   domain.ActionStatusApproved,
	})
	if err != nil {
		return nil, fmt.Errorf("approve action: %w", err)
	}

	s.log.InfoContext(ctx, "action approved", slog.String("action_id", id.String()))
	return a, nil
}

// RejectAction moves a pending or approved action to rejected. A non-empty
// reason is stored in the outcome.
func (s *Service) RejectAction(ctx context.Context, id uuid.UUID, reason string) (*domain.Action, error) {
	reason = strings.TrimSpace(reason)
	if len(reason) > MaxReasonLength {
		return nil, domain.NewValidationError("reason", "max 500 characters")
	}

	t := domain.ActionTransition{
		From: []domain.ActionStatus{domain.ActionStatusPending, domain.ActionStatusApproved},
		To:   domain.ActionStatusRejected,
	}
	if reason != "" {
		t.Outcome = domain.Outcome{"reason": reason}
	}

	a, err := s.transition(ctx, id, t)
	if err != nil {
		return nil, fmt.Errorf("reject action: %w", err)
	}

	s.log.InfoContext(ctx, "action rejected", slog.String("action_id", id.String()))
	return a, nil
}

// ReapproveFailedAction queues a fresh approved copy of a failed action. The
// failed action itself stays terminal and records the copy's id, so it can be
// reapproved only once; later calls return ErrPreconditionFailed.
func (s *Service) ReapproveFailedAction(ctx context.Context, id uuid.UUID) (*domain.Action, error) {
	if id == uuid.Nil {
		return nil, domain.NewValidationError("id", "required")
	}

	failed, err := s.actions.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get action: %w", err)
	}
	if failed.Status != domain.ActionStatusFailed {
		return nil, fmt.Errorf("action %s is %s: %w", id, failed.Status, domain.ErrPreconditionFailed)
	}
	if prev, ok := failed.Outcome[domain.OutcomeReapprovedAs]; ok {
		return nil, fmt.Errorf("action %s already reapproved as %v: %w", id, prev, domain.ErrPreconditionFailed)
	}

	now := s.clock.Now()
	copyAction := domain.Action{
		ID:              uuid.New(),
		UserID:          failed.UserID,
		RuleID:          failed.RuleID,
		ActionType:      failed.ActionType,
		RenderedContent: failed.RenderedContent,
		Subject:         failed.Subject,
		Template:        failed.Template,
		Priority:        failed.Priority,
		Status:          domain.ActionStatusApproved,
		Outcome:         domain.Outcome{domain.OutcomeReapprovedFrom: failed.ID.String()},
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	var copied *domain.Action
	err = s.tx.RunInTx(ctx, func(ctx context.Context) error {
		// The conditional mark takes the row lock, so a concurrent call waits
		// here and then finds the action already reapproved.
		if err := s.actions.MarkReapproved(ctx, failed.ID, copyAction.ID, now); err != nil {
			if errors.Is(err, domain.ErrConflict) {
				return fmt.Errorf("action %s already reapproved: %w", id, domain.ErrPreconditionFailed)
			}
			return fmt.Errorf("mark reapproved: %w", err)
		}

		var err error
		copied, err = s.actions.Create(ctx, copyAction)
		if err != nil {
			return fmt.Errorf("create action: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "failed action reapproved",
		slog.String("action_id", id.String()),
		slog.String("new_action_id", copied.ID.String()),
	)
	return copied, nil
}

// CreateManualAction inserts an operator action without a rule.
func (s *Service) CreateManualAction(ctx context.Context, input CreateManualActionInput) (*domain.Action, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	priority := manualPriority
	if input.Priority != nil {
		priority = *input.Priority
	}
	status := domain.ActionStatusApproved
	if input.Status != nil {
		status = *input.Status
	}

	var subject *string
	if input.Subject != nil {
		trimmed := strings.TrimSpace(*input.Subject)
		if trimmed != "" {
			subject = &trimmed
		}
	}

	now := s.clock.Now()
	created, err := s.actions.Create(ctx, domain.Action{
		ID:              uuid.New(),
		UserID:          input.UserID,
		ActionType:      input.ActionType,
		RenderedContent: strings.TrimSpace(input.Content),
		Subject:         subject,
		Priority:        priority,
		Status:          status,
		ScheduledAt:     input.ScheduledAt,
		CreatedAt:       now,
		UpdatedAt:       now,
	})
	if err != nil {
		return nil, fmt.Errorf("create action: %w", err)
	}

	s.log.InfoContext(ctx, "manual action created",
		slog.String("action_id", created.ID.String()),
		slog.String("user_id", created.UserID.String()),
		slog.String("type", created.ActionType.String()),
	)
	return created, nil
}

// ListActions returns actions matching the input, newest first.
func (s *Service) ListActions(ctx context.Context, input ListActionsInput) ([]domain.Action, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	limit := input.Limit
	if limit == 0 {
		limit = DefaultLimit
	}

	actions, err := s.actions.List(ctx, domain.ActionFilter{
		Status: input.Status,
		UserID: input.UserID,
		RuleID: input.RuleID,
		Limit:  limit,
		Offset: input.Offset,
	})
	if err != nil {
		return nil, fmt.Errorf("list actions: %w", err)
	}
	return actions, nil
}

// GetAction returns one action.
func (s *Service) GetAction(ctx context.Context, id uuid.UUID) (*domain.Action, error) {
	a, err := s.actions.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get action: %w", err)
	}
	return a, nil
}

// ExpirePending rejects pending actions older than olderThan with outcome
// {reason: expired}. A non-positive olderThan uses the configured expiry.
func (s *Service) ExpirePending(ctx context.Context, olderThan time.Duration) (int, error) {
	if olderThan <= 0 {
		olderThan = s.cfg.PendingExpiry
	}

	now := s.clock.Now()
	n, err := s.actions.ExpirePending(ctx, now.Add(-olderThan), domain.Outcome{"reason": "expired"}, now)
	if err != nil {
		return 0, fmt.Errorf("expire pending actions: %w", err)
	}

	if n > 0 {
		s.log.InfoContext(ctx, "pending actions expired",
			slog.Int("count", n),
			slog.Duration("older_than", olderThan),
		)
	}
	return n, nil
}

// transition applies t and reports a status mismatch as ErrPreconditionFailed.
func (s *Service) transition(ctx context.Context, id uuid.UUID, t domain.ActionTransition) (*domain.Action, error) {
	if id == uuid.Nil {
		return nil, domain.NewValidationError("id", "required")
	}

	t.Now = s.clock.Now()
	a, err := s.actions.Transition(ctx, id, t)
	if errors.Is(err, domain.ErrConflict) {
		return nil, fmt.Errorf("action %s: %w", id, domain.ErrPreconditionFailed)
	}
	if err != nil {
		return nil, err
	}
	return a, nil
}
