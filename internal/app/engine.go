package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"
	goredis "github.com/redis/go-redis/v9"

	"github.com/heartmarshall/learning-oracle/internal/adapter/postgres"
	"github.com/heartmarshall/learning-oracle/internal/adapter/postgres/action"
	"github.com/heartmarshall/learning-oracle/internal/adapter/postgres/delivery"
	"github.com/heartmarshall/learning-oracle/internal/adapter/postgres/event"
	"github.com/heartmarshall/learning-oracle/internal/adapter/postgres/rule"
	"github.com/heartmarshall/learning-oracle/internal/adapter/postgres/segment"
	"github.com/heartmarshall/learning-oracle/internal/adapter/postgres/user"
	"github.com/heartmarshall/learning-oracle/internal/adapter/redis"
	"github.com/heartmarshall/learning-oracle/internal/adapter/redis/lock"
	"github.com/heartmarshall/learning-oracle/internal/config"
	"github.com/heartmarshall/learning-oracle/internal/service/classifier"
	"github.com/heartmarshall/learning-oracle/internal/service/executor"
	"github.com/heartmarshall/learning-oracle/internal/service/executor/dispatch"
	"github.com/heartmarshall/learning-oracle/internal/service/ingest"
	"github.com/heartmarshall/learning-oracle/internal/service/rules"
	"github.com/heartmarshall/learning-oracle/internal/transport/rest"
	"github.com/heartmarshall/learning-oracle/pkg/clock"
	"github.com/heartmarshall/learning-oracle/pkg/keylock"
)

// distLocker is implemented by both the Redis locker and the PostgreSQL
// advisory locker.
type distLocker interface {
	Lock(ctx context.Context, key string) (func(), error)
	TryLock(ctx context.Context, key string) (release func(), ok bool, err error)
}

// Engine holds the wired automation services. It is shared by the API
// server, the scheduler and the one-shot pass commands.
type Engine struct {
	Ingest     *ingest.Service
	Classifier *classifier.Service
	Rules      *rules.Service
	Executor   *executor.Service

	pool  *pgxpool.Pool
	redis *goredis.Client
	log   *slog.Logger
}

// NewEngine connects to the stores and builds the services. Cross-process
// locks use Redis when configured and PostgreSQL advisory locks otherwise.
func NewEngine(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Engine, error) {
	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	var client *goredis.Client
	if cfg.Redis.Enabled() {
		client, err = redis.NewClient(ctx, cfg.Redis)
		if err != nil {
			pool.Close()
			return nil, fmt.Errorf("connect to redis: %w", err)
		}
	}

	e, err := newEngine(pool, client, cfg, logger)
	if err != nil {
		if client != nil {
			_ = client.Close()
		}
		pool.Close()
		return nil, err
	}
	return e, nil
}

// newEngine wires the services over open connections. A nil client selects
// advisory locks. The engine takes ownership of both connections.
func newEngine(pool *pgxpool.Pool, client *goredis.Client, cfg *config.Config, logger *slog.Logger) (*Engine, error) {
	sender, err := dispatch.NewStaticSender(cfg.Dispatch.DMSenderUserID)
	if err != nil {
		return nil, err
	}

	e := &Engine{pool: pool, redis: client, log: logger}

	advisory := postgres.NewAdvisoryLocker(pool)
	var locks distLocker = advisory
	if client != nil {
		locks = lock.New(client, cfg.Redis.LockTTL, 0, logger)
		logger.Info("distributed locks on redis", slog.String("addr", client.Options().Addr))
	} else {
		logger.Info("distributed locks on postgres advisory locks")
	}

	clk := clock.System{}

	// Repositories
	eventRepo := event.New(pool)
	segmentRepo := segment.New(pool)
	userRepo := user.New(pool)
	ruleRepo := rule.New(pool)
	actionRepo := action.New(pool)
	deliveryRepo := delivery.New(pool)

	// Services
	e.Ingest = ingest.NewService(logger, eventRepo, clk)
	e.Classifier = classifier.NewService(logger, userRepo, segmentRepo, e.Ingest, locks, clk, cfg.Engine)
	txm := postgres.NewTxManager(pool)
	e.Rules = rules.NewService(logger, ruleRepo, actionRepo, segmentRepo, userRepo, e.Ingest,
		txm, advisory, locks, clk, cfg.Engine)

	registry := dispatch.NewDefaultRegistry(logger, deliveryRepo, userRepo, sender, clk)
	e.Executor = executor.NewService(logger, actionRepo, txm, registry, e.Ingest,
		keylock.New(), locks, executor.NewLimiter(cfg.Dispatch), clk, cfg.Engine)

	return e, nil
}

// Pingers returns the stores pinged by the readiness endpoint.
func (e *Engine) Pingers() map[string]rest.Pinger {
	p := map[string]rest.Pinger{"postgres": e.pool}
	if e.redis != nil {
		client := e.redis
		p["redis"] = rest.PingFunc(func(ctx context.Context) error {
			return client.Ping(ctx).Err()
		})
	}
	return p
}

// Close releases the store connections.
func (e *Engine) Close() {
	if e.redis != nil {
		if err := e.redis.Close(); err != nil {
			e.log.Warn("close redis", slog.String("error", err.Error()))
		}
	}
	e.pool.Close()
}
