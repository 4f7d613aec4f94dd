package app

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/heartmarshall/learning-oracle/internal/config"
	"github.com/heartmarshall/learning-oracle/internal/domain"
)

// PassFunc runs one pass over engine and returns attributes for the
// completion log line.
type PassFunc func(ctx context.Context, engine *Engine) ([]slog.Attr, error)

// RunPass loads configuration, builds the engine and runs one pass bounded
// by timeout, or engine.pass_timeout when timeout is zero. It is the body of
// the one-shot commands invoked by an external cron.
func RunPass(ctx context.Context, name string, timeout time.Duration, pass PassFunc) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := NewLogger(cfg.Log).With("pass", name)

	if timeout <= 0 {
		timeout = cfg.Engine.PassTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	engine, err := NewEngine(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer engine.Close()

	start := time.Now()
	attrs, err := pass(ctx, engine)
	attrs = append(attrs, slog.Duration("duration", time.Since(start)))
	if err != nil {
		logger.LogAttrs(ctx, slog.LevelError, "pass failed", append(attrs, slog.String("error", err.Error()))...)
		return fmt.Errorf("%s pass: %w", name, err)
	}

	logger.LogAttrs(ctx, slog.LevelInfo, "pass completed", attrs...)
	return nil
}

// BatchAttrs renders a batch result for logging.
func BatchAttrs(r domain.BatchResult) []slog.Attr {
	return []slog.Attr{
		slog.Int("total", r.Total),
		slog.Int("success", r.Success),
		slog.Int("failed", r.Failed),
		slog.Int("skipped", r.Skipped),
	}
}

// SummaryAttrs renders an evaluation summary for logging.
func SummaryAttrs(s domain.EvaluationSummary) []slog.Attr {
	return []slog.Attr{
		slog.Int("rules_evaluated", s.RulesEvaluated),
		slog.Int("rules_failed", s.RulesFailed),
		slog.Int("total_triggered", s.TotalTriggered),
	}
}
