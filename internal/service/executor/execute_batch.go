package executor

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"

	"github.com/google/uuid"
	"github.com/heartmarshall/learning-oracle/internal/domain"
	"golang.org/x/sync/errgroup"
)

// ExecuteApprovedActions drains up to limit approved, due actions. Actions of
// one user run sequentially in listing order; different users run in
// parallel. A failing action never aborts the rest of the pass.
func (s *Service) ExecuteApprovedActions(ctx context.Context, limit int) (domain.BatchResult, error) {
	if limit <= 0 {
		limit = s.cfg.ExecuteBatchLimit
	}

	due, err := s.actions.ListDue(ctx, s.clock.Now(), limit)
	if err != nil {
		return domain.BatchResult{}, fmt.Errorf("list due actions: %w", err)
	}

	groups := groupByUser(due)

	var success, failed, skipped atomic.Int64

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(1, s.cfg.Workers))

	for _, group := range groups {
		g.Go(func() error {
			for _, a := range group {
				if gctx.Err() != nil {
					skipped.Add(1)
					continue
				}
				switch err := s.executeGrouped(gctx, a); {
				case err == nil:
					success.Add(1)
				case errors.Is(err, domain.ErrPreconditionFailed):
					skipped.Add(1)
				default:
					failed.Add(1)
					s.log.ErrorContext(gctx, "execute action failed",
						slog.String("action_id", a.ID.String()),
						slog.String("user_id", a.UserID.String()),
						slog.String("error", err.Error()),
					)
				}
			}
			return nil
		})
	}
	_ = g.Wait()

	res := domain.BatchResult{
		Total:   len(due),
		Success: int(success.Load()),
		Failed:  int(failed.Load()),
		Skipped: int(skipped.Load()),
	}

	s.log.InfoContext(ctx, "execute pass finished",
		slog.Int("total", res.Total),
		slog.Int("success", res.Success),
		slog.Int("failed", res.Failed),
		slog.Int("skipped", res.Skipped),
	)

	return res, nil
}

// executeGrouped runs one listed action under its user's lock. Actions that
// changed status since listing come back as ErrPreconditionFailed.
func (s *Service) executeGrouped(ctx context.Context, a domain.Action) error {
	unlock, err := s.lockUser(ctx, a.UserID)
	if err != nil {
		return fmt.Errorf("lock user: %w", err)
	}
	defer unlock()

	_, err = s.executeLocked(ctx, a.ID)
	return err
}

// groupByUser splits actions per user, keeping the first-seen order of users
// and the listing order within each group.
func groupByUser(actions []domain.Action) [][]domain.Action {
	index := make(map[uuid.UUID]int)
	var groups [][]domain.Action

	for _, a := range actions {
		i, ok := index[a.UserID]
		if !ok {
			i = len(groups)
			index[a.UserID] = i
			groups = append(groups, nil)
		}
		groups[i] = append(groups[i], a)
	}
	return groups
}
