// Command evaluate runs every active rule once. It is intended to be
// invoked by an external cron job.
//
// Flags:
//
//	--timeout  pass deadline (default: engine.pass_timeout)
//
// Exit codes: 0 = success, 1 = error.
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
	timeout := flag.Duration("timeout", 0, "pass deadline (default: engine.pass_timeout)")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := app.RunPass(ctx, "evaluate", *timeout, func(ctx context.Context, e *app.Engine) ([]slog.Attr, error) {
		res, err := e.Rules.EvaluateAllActiveRules(ctx)
		return app.SummaryAttrs(res), err
	})
	if err != nil {
		log.Fatalf("evaluate: %v", err)
	}
}
