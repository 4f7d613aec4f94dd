package classifier

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"

	"github.com/heartmarshall/learning-oracle/internal/domain"
	"golang.org/x/sync/errgroup"
)

// ClassifyBatch classifies up to limit users, least recently analyzed first.
// Per-user failures are counted and logged; they never abort the batch.
// Users not started before ctx is done are reported as skipped.
func (s *Service) ClassifyBatch(ctx context.Context, limit int) (domain.BatchResult, error) {
	if limit <= 0 {
		limit = s.cfg.ClassifyBatchLimit
	}

	ids, err := s.users.ListForClassification(ctx, limit)
	if err != nil {
		return domain.BatchResult{}, fmt.Errorf("list users for classification: %w", err)
	}

	var success, failed, skipped atomic.Int64

	g := new(errgroup.Group)
	g.SetLimit(max(1, s.cfg.Workers))
	for _, id := range ids {
		if ctx.Err() != nil {
			skipped.Add(1)
			continue
		}
		g.Go(func() error {
			if ctx.Err() != nil {
				skipped.Add(1)
				return nil
			}
			if _, err := s.ClassifyUser(ctx, id); err != nil {
				failed.Add(1)
				s.log.WarnContext(ctx, "classify user failed",
					slog.String("user_id", id.String()),
					slog.String("error", err.Error()),
				)
				return nil
			}
			success.Add(1)
			return nil
		})
	}
	_ = g.Wait()

	res := domain.BatchResult{
		Total:   len(ids),
		Success: int(success.Load()),
		Failed:  int(failed.Load()),
		Skipped: int(skipped.Load()),
	}

	s.log.InfoContext(ctx, "classify batch finished",
		slog.Int("total", res.Total),
		slog.Int("success", res.Success),
		slog.Int("failed", res.Failed),
		slog.Int("skipped", res.Skipped),
	)

	return res, nil
}
