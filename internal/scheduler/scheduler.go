// Package scheduler triggers the engine passes on cron schedules.
package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/heartmarshall/learning-oracle/internal/config"
	"github.com/heartmarshall/learning-oracle/internal/domain"
	"github.com/robfig/cron/v3"
)

// Job is one pass run by the scheduler. Run receives a context bounded by
// the pass timeout.
type Job struct {
	Name string
	Spec string
	Run  func(ctx context.Context) error
}

// Scheduler wraps a cron instance. A run still in progress when its next
// tick fires is skipped rather than stacked.
type Scheduler struct {
	cron    *cron.Cron
	timeout time.Duration
	log     *slog.Logger
}

// New creates a scheduler whose passes are cancelled after timeout.
func New(log *slog.Logger, timeout time.Duration) *Scheduler {
	log = log.With("component", "scheduler")
	cl := cronLogger{log: log}

	return &Scheduler{
		cron: cron.New(cron.WithChain(
			cron.Recover(cl),
			cron.SkipIfStillRunning(cl),
		)),
		timeout: timeout,
		log:     log,
	}
}

// Add registers job. An empty spec leaves the job disabled.
func (s *Scheduler) Add(job Job) error {
	if job.Spec == "" {
		s.log.Info("job disabled", slog.String("job", job.Name))
		return nil
	}

	if _, err := s.cron.AddFunc(job.Spec, func() { s.run(job) }); err != nil {
		return fmt.Errorf("schedule %s %q: %w", job.Name, job.Spec, err)
	}

	s.log.Info("job scheduled", slog.String("job", job.Name), slog.String("spec", job.Spec))
	return nil
}

// Start begins firing registered jobs in the background.
func (s *Scheduler) Start() {
	s.cron.Start()
	s.log.Info("scheduler started", slog.Int("jobs", len(s.cron.Entries())))
}

// Stop prevents new runs and waits for running ones until ctx is done.
func (s *Scheduler) Stop(ctx context.Context) error {
	done := s.cron.Stop()
	select {
	case <-done.Done():
		s.log.Info("scheduler stopped")
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *Scheduler) run(job Job) {
	ctx := context.Background()
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	start := time.Now()
	if err := job.Run(ctx); err != nil {
		s.log.Error("job failed",
			slog.String("job", job.Name),
			slog.Duration("duration", time.Since(start)),
			slog.String("error", err.Error()),
		)
		return
	}
	s.log.Info("job finished", slog.String("job", job.Name), slog.Duration("duration", time.Since(start)))
}

// ---------------------------------------------------------------------------
// Engine passes
// ---------------------------------------------------------------------------

type classifier interface {
	ClassifyBatch(ctx context.Context, limit int) (domain.BatchResult, error)
}

type evaluator interface {
	EvaluateAllActiveRules(ctx context.Context) (domain.EvaluationSummary, error)
}

type executor interface {
	ExecuteApprovedActions(ctx context.Context, limit int) (domain.BatchResult, error)
	ExpirePending(ctx context.Context, olderThan time.Duration) (int, error)
}

// EngineJobs builds the classify, evaluate, execute and expire passes from
// their cron specs. Batch limits come from the engine configuration.
func EngineJobs(cfg config.SchedulerConfig, c classifier, e evaluator, x executor) []Job {
	return []Job{
		{
			Name: "classify",
			Spec: cfg.ClassifyCron,
			Run: func(ctx context.Context) error {
				_, err := c.ClassifyBatch(ctx, 0)
				return err
			},
		},
		{
			Name: "evaluate",
			Spec: cfg.EvaluateCron,
			Run: func(ctx context.Context) error {
				_, err := e.EvaluateAllActiveRules(ctx)
				return err
			},
		},
		{
			Name: "execute",
			Spec: cfg.ExecuteCron,
			Run: func(ctx context.Context) error {
				_, err := x.ExecuteApprovedActions(ctx, 0)
				return err
			},
		},
		{
			Name: "expire_pending",
			Spec: cfg.ExpireCron,
			Run: func(ctx context.Context) error {
				_, err := x.ExpirePending(ctx, 0)
				return err
			},
		},
	}
}

// cronLogger adapts slog to cron.Logger.
type cronLogger struct {
	log *slog.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...any) {
	l.log.Debug(msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...any) {
	l.log.Error(msg, append(keysAndValues, "error", err)...)
}
