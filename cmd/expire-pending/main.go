// Command expire-pending rejects pending actions that waited for approval
// longer than the configured expiry. It is intended to be invoked by an
// external cron job when the scheduler is not running.
//
// Flags:
//
//	--older-than  override engine.pending_expiry (e.g. 72h)
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
	olderThan := flag.Duration("older-than", 0, "expire pending actions older than this (default: engine.pending_expiry)")
	timeout := flag.Duration("timeout", 0, "pass deadline (default: engine.pass_timeout)")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := app.RunPass(ctx, "expire_pending", *timeout, func(ctx context.Context, e *app.Engine) ([]slog.Attr, error) {
		n, err := e.Executor.ExpirePending(ctx, *olderThan)
		return []slog.Attr{slog.Int("expired", n)}, err
	})
	if err != nil {
		log.Fatalf("expire-pending: %v", err)
	}
}
