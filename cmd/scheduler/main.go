// Command scheduler runs the classify, evaluate, execute and expiry passes
// on their cron specs until interrupted.
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/heartmarshall/learning-oracle/internal/app"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := app.RunScheduler(ctx); err != nil {
		log.Fatalf("scheduler: %v", err)
	}
}
