package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/heartmarshall/learning-oracle/internal/auth"
	"github.com/heartmarshall/learning-oracle/internal/config"
	"github.com/heartmarshall/learning-oracle/internal/scheduler"
	"github.com/heartmarshall/learning-oracle/internal/transport/middleware"
	"github.com/heartmarshall/learning-oracle/internal/transport/rest"
)

// Run is the API server entry point. It loads configuration, wires the
// engine, serves HTTP until ctx is cancelled and then shuts down gracefully.
// With scheduler.embedded set the cron passes run in the same process.
func Run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := NewLogger(cfg.Log)

	logger.Info("starting application",
		buildAttr(),
		slog.String("log_level", cfg.Log.Level),
	)

	engine, err := NewEngine(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer engine.Close()

	srv := &http.Server{
		Addr:              net.JoinHostPort(cfg.Server.Host, strconv.Itoa(cfg.Server.Port)),
		Handler:           NewHandler(engine, cfg, logger),
		ReadTimeout:       cfg.Server.ReadTimeout,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      cfg.Server.WriteTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
		MaxHeaderBytes:    1 << 20,
	}

	var sched *scheduler.Scheduler
	if cfg.Scheduler.Embedded {
		sched, err = newScheduler(engine, cfg, logger)
		if err != nil {
			return err
		}
		sched.Start()
	}

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("http server listening", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
	case <-ctx.Done():
	}

	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	var errs []error
	if err := srv.Shutdown(shutdownCtx); err != nil {
		errs = append(errs, fmt.Errorf("http shutdown: %w", err))
	}
	if sched != nil {
		if err := sched.Stop(shutdownCtx); err != nil {
			errs = append(errs, fmt.Errorf("scheduler shutdown: %w", err))
		}
	}

	logger.Info("stopped")
	return errors.Join(errs...)
}

// RunScheduler runs only the cron passes until ctx is cancelled. Running
// several replicas is safe: rule evaluation skips rules locked elsewhere and
// execution serializes per user.
func RunScheduler(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := NewLogger(cfg.Log)
	logger.Info("starting scheduler", buildAttr())

	engine, err := NewEngine(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer engine.Close()

	sched, err := newScheduler(engine, cfg, logger)
	if err != nil {
		return err
	}
	sched.Start()

	<-ctx.Done()
	logger.Info("shutting down scheduler")

	stopCtx, cancel := context.WithTimeout(context.Background(), cfg.Engine.PassTimeout)
	defer cancel()
	return sched.Stop(stopCtx)
}

// NewHandler builds the authenticated HTTP surface over engine.
func NewHandler(engine *Engine, cfg *config.Config, logger *slog.Logger) http.Handler {
	tokens := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer, cfg.Auth.AccessTokenTTL)
	keys := auth.NewAPIKeyChecker(cfg.Auth.APIKeyHash)

	handlers := rest.Handlers{
		Health:   rest.NewHealthHandler(Version, engine.Pingers()),
		Events:   rest.NewEventHandler(engine.Ingest, logger),
		Segments: rest.NewSegmentHandler(engine.Classifier, logger),
		Rules:    rest.NewRuleHandler(engine.Rules, logger),
		Actions:  rest.NewActionHandler(engine.Executor, logger),
		Passes:   rest.NewPassHandler(engine.Classifier, engine.Rules, engine.Executor, cfg.Engine.PassTimeout, logger),
	}

	return rest.NewRouter(handlers, middleware.OperatorAuth(tokens, keys, logger), *cfg, logger)
}

func newScheduler(engine *Engine, cfg *config.Config, logger *slog.Logger) (*scheduler.Scheduler, error) {
	sched := scheduler.New(logger, cfg.Engine.PassTimeout)
	for _, job := range scheduler.EngineJobs(cfg.Scheduler, engine.Classifier, engine.Rules, engine.Executor) {
		if err := sched.Add(job); err != nil {
			return nil, fmt.Errorf("schedule %s: %w", job.Name, err)
		}
	}
	return sched, nil
}
