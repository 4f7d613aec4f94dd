package classifier

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

type userRepo interface {
	GetProfile(ctx context.Context, id uuid.UUID) (*domain.UserProfile, error)
	ListForClassification(ctx context.Context, limit int) ([]uuid.UUID, error)
}

type segmentRepo interface {
	Upsert(ctx context.Context, s domain.Segment) error
	GetByUserID(ctx context.Context, userID uuid.UUID) (*domain.Segment, error)
	ListByLevel(ctx context.Context, level domain.EngagementLevel, limit, offset int) ([]domain.Segment, error)
	ListAtRisk(ctx context.Context, minRisk, limit int) ([]domain.Segment, error)
	Stats(ctx context.Context, atRiskThreshold int) (domain.SegmentStats, error)
}

// eventReader is satisfied by the ingest service.
type eventReader interface {
	EventCounts(ctx context.Context, userID uuid.UUID, windowDays int) (map[string]int, error)
	LastEventOfType(ctx context.Context, userID uuid.UUID, eventType string) (*domain.Event, error)
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

// Service computes per-user segments and serves segment queries.
type Service struct {
	users    userRepo
	segments segmentRepo
	events   eventReader
	locks    userLocker
	clock    timeSource
	cfg      config.EngineConfig
	log      *slog.Logger
}

// NewService creates a new classifier service.
func NewService(
	log *slog.Logger,
	users userRepo,
	segments segmentRepo,
	events eventReader,
	locks userLocker,
	clock timeSource,
	cfg config.EngineConfig,
) *Service {
	return &Service{
		users:    users,
		segments: segments,
		events:   events,
		locks:    locks,
		clock:    clock,
		cfg:      cfg,
		log:      log.With("service", "classifier"),
	}
}

func lockKey(userID uuid.UUID) string {
	return "classify:" + userID.String()
}
