// Command classify runs one classification batch over the users analyzed
// longest ago. It is intended to be invoked by an external cron job.
//
// Flags:
//
//	--limit  batch size (default: engine.classify_batch_limit)
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
	limit := flag.Int("limit", 0, "max users to classify")
	timeout := flag.Duration("timeout", 0, "pass deadline (default: engine.pass_timeout)")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := app.RunPass(ctx, "classify", *timeout, func(ctx context.Context, e *app.Engine) ([]slog.Attr, error) {
		res, err := e.Classifier.ClassifyBatch(ctx, *limit)
		return app.BatchAttrs(res), err
	})
	if err != nil {
		log.Fatalf("classify: %v", err)
	}
}
