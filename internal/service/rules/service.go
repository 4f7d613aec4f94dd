package rules

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/heartmarshall/learning-oracle/internal/config"
	"github.com/heartmarshall/learning-oracle/internal/domain"
)

// ---------------------------------------------------------------------------
// Consumer-defined interfaces (private)
// ---------------------------------------------------------------------------

type ruleRepo interface {
	Create(ctx context.Context, rule domain.Rule) (*domain.Rule, error)
	Toggle(ctx context.Context, id uuid.UUID, now time.Time) (*domain.Rule, error)
	RecordTriggered(ctx context.Context, id uuid.UUID, n int, at time.Time) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Rule, error)
	List(ctx context.Context, activeOnly bool) ([]domain.Rule, error)
}

type actionRepo interface {
	Create(ctx context.Context, a domain.Action) (*domain.Action, error)
	ThrottleStats(ctx context.Context, ruleID, userID uuid.UUID, since time.Time) (recent, total int, err error)
}

type segmentRepo interface {
	GetByUserID(ctx context.Context, userID uuid.UUID) (*domain.Segment, error)
}

type userRepo interface {
	GetProfile(ctx context.Context, id uuid.UUID) (*domain.UserProfile, error)
	ListCandidateIDs(ctx context.Context, f domain.CandidateFilter) ([]uuid.UUID, error)
}

// eventReader is satisfied by the ingest service.
type eventReader interface {
	LastEventOfType(ctx context.Context, userID uuid.UUID, eventType string) (*domain.Event, error)
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// pairLocker takes a lock scoped to the transaction carried by ctx.
type pairLocker interface {
	XactLock(ctx context.Context, key string) error
}

// ruleLocker keeps a rule from being evaluated by two processes at once.
type ruleLocker interface {
	TryLock(ctx context.Context, key string) (release func(), ok bool, err error)
}

type timeSource interface {
	Now() time.Time
}

// ---------------------------------------------------------------------------
// Service
// ---------------------------------------------------------------------------

// Service stores automation rules and evaluates them into actions.
type Service struct {
	rules     ruleRepo
	actions   actionRepo
	segments  segmentRepo
	users     userRepo
	events    eventReader
	tx        txManager
	pairLocks pairLocker
	ruleLocks ruleLocker
	clock     timeSource
	templates *Renderer
	cfg       config.EngineConfig
	log       *slog.Logger
}

// NewService creates a new rules service.
func NewService(
	log *slog.Logger,
	rules ruleRepo,
	actions actionRepo,
	segments segmentRepo,
	users userRepo,
	events eventReader,
	tx txManager,
	pairLocks pairLocker,
	ruleLocks ruleLocker,
	clock timeSource,
	cfg config.EngineConfig,
) *Service {
	return &Service{
		rules:     rules,
		actions:   actions,
		segments:  segments,
		users:     users,
		events:    events,
		tx:        tx,
		pairLocks: pairLocks,
		ruleLocks: ruleLocks,
		clock:     clock,
		templates: NewRenderer(),
		cfg:       cfg,
		log:       log.With("service", "rules"),
	}
}
