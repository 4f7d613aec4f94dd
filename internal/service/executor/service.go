package executor

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/heartmarshall/learning-oracle/internal/config"
	"github.com/heartmarshall/learning-oracle/internal/domain"
	"github.com/heartmarshall/learning-oracle/internal/service/ingest"
	"golang.org/x/time/rate"
)

// ---------------------------------------------------------------------------
// Consumer-defined interfaces (private)
// ---------------------------------------------------------------------------

type actionRepo interface {
	Create(ctx context.Context, a domain.Action) (*domain.Action, error)
	Transition(ctx context.Context, id uuid.UUID, t domain.ActionTransition) (*domain.Action, error)
	ExpirePending(ctx context.Context, olderThan time.Time, outcome domain.Outcome, now time.Time) (int, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Action, error)
	ListDue(ctx context.Context, now time.Time, limit int) ([]domain.Action, error)
	List(ctx context.Context, f domain.ActionFilter) ([]domain.Action, error)
	MarkReapproved(ctx context.Context, id, copyID uuid.UUID, now time.Time) error
}

// txManager is satisfied by postgres.TxManager. A nested RunInTx runs in a
// savepoint.
type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// dispatcher is satisfied by dispatch.Registry.
type dispatcher interface {
	Dispatch(ctx context.Context, a domain.Action) (domain.Outcome, error)
}

// eventRecorder is satisfied by the ingest service.
type eventRecorder interface {
	RecordEvent(ctx context.Context, input ingest.RecordEventInput) (*domain.Event, error)
}

type userLocker interface {
	Lock(ctx context.Context, key string) (func(), error)
}

type timeSource interface {
	Now() time.Time
}

// ---------------------------------------------------------------------------
// Service
// ---------------------------------------------------------------------------

// Service executes approved actions and applies operator transitions.
type Service struct {
	actions    actionRepo
	tx         txManager
	dispatcher dispatcher
	events     eventRecorder
	localLocks userLocker
	distLocks  userLocker
	limiter    *rate.Limiter
	clock      timeSource
	cfg        config.EngineConfig
	log        *slog.Logger
}

// NewService creates a new executor service. Actions of one user are
// serialized by localLocks within the process and by distLocks across
// processes. limiter bounds the dispatch rate towards the providers.
func NewService(
	log *slog.Logger,
	actions actionRepo,
	tx txManager,
	dispatcher dispatcher,
	events eventRecorder,
	localLocks userLocker,
	distLocks userLocker,
	limiter *rate.Limiter,
	clock timeSource,
	cfg config.EngineConfig,
) *Service {
	return &Service{
		actions:    actions,
		tx:         tx,
		dispatcher: dispatcher,
		events:     events,
		localLocks: localLocks,
		distLocks:  distLocks,
		limiter:    limiter,
		clock:      clock,
		cfg:        cfg,
		log:        log.With("service", "executor"),
	}
}

// NewLimiter builds the provider limiter from dispatch settings.
func NewLimiter(cfg config.DispatchConfig) *rate.Limiter {
	if cfg.RatePerSecond <= 0 {
		return rate.NewLimiter(rate.Inf, 0)
	}
	return rate.NewLimiter(rate.Limit(cfg.RatePerSecond), max(1, cfg.Burst))
}

// lockUser serializes execution for one user. The returned func releases
// both locks.
func (s *Service) lockUser(ctx context.Context, userID uuid.UUID) (func(), error) {
	key := "execute:user:" + userID.String()

	unlockLocal, err := s.localLocks.Lock(ctx, key)
	if err != nil {
		return nil, err
	}
	unlockDist, err := s.distLocks.Lock(ctx, key)
	if err != nil {
		unlockLocal()
		return nil, err
	}

	return func() {
		unlockDist()
		unlockLocal()
	}, nil
}

// sentEventSource maps an action type to the channel of its completion event.
func sentEventSource(t domain.ActionType) domain.EventSource {
	switch t {
	case domain.ActionTypeEmail:
		return domain.EventSourceEmail
	case domain.ActionTypeDM:
		return domain.EventSourceDM
	default:
		return domain.EventSourceAPI
	}
}
