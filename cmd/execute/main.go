// Command execute dispatches approved actions that are due. It is intended
// to be invoked by an external cron job.
//
// Flags:
//
//	--limit  max actions per run (default: engine.execute_batch_limit)
//	--timeout  pass deadline (default: engine.pass_timeout)
//
// Exit codes: 0 = success, 1 = error. Individual dispatch failures are
// recorded on the actions and do not change the exit code.
package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/heartmarshall/learning-oracle/internal/app"
)

func main() {
	limit := flag.Int("limit", 0, "max actions to execute")
	timeout := flag.Duration("timeout", 0, "pass deadline (default: engine.pass_timeout)")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := app.RunPass(ctx, "execute", *timeout, func(ctx context.Context, e *app.Engine) ([]slog.Attr, error) {
		res, err := e.Executor.ExecuteApprovedActions(ctx, *limit)
		return app.BatchAttrs(res), err
	})
	if err != nil {
		log.Fatalf("execute: %v", err)
	}
}
