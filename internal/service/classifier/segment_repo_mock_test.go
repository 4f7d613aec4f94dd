package classifier

import (
	"context"
	"github.com/google/uuid"
	"github.com/heartmarshall/learning-oracle/internal/domain"
	"sync"
)

var _ segmentRepo = &segmentRepoMock{}

type segmentRepoMock struct {
	UpsertFunc      func(ctx context.Context, s domain.Segment) error
	GetByUserIDFunc func(ctx context.Context, userID uuid.UUID) (*domain.Segment, error)
	ListByLevelFunc func(ctx context.Context, level domain.EngagementLevel, limit int, offset int) ([]domain.Segment, error)
	ListAtRiskFunc  func(ctx context.Context, minRisk int, limit int) ([]domain.Segment, error)
	StatsFunc       func(ctx context.Context, atRiskThreshold int) (domain.SegmentStats, error)

	calls struct {
		Upsert []struct {
			Ctx context.Context
			S   domain.Segment
		}
		GetByUserID []struct {
			Ctx    context.Context
			UserID uuid.UUID
		}
		ListByLevel []struct {
			Ctx    context.Context
			Level  domain.EngagementLevel
			Limit  int
			Offset int
		}
		ListAtRisk []struct {
			Ctx     context.Context
			MinRisk int
			Limit   int
		}
		Stats []struct {
			Ctx             context.Context
			AtRiskThreshold int
		}
	}
	lockUpsert      sync.RWMutex
	lockGetByUserID sync.RWMutex
	lockListByLevel sync.RWMutex
	lockListAtRisk  sync.RWMutex
	lockStats       sync.RWMutex
}

func (mock *segmentRepoMock) Upsert(ctx context.Context, s domain.Segment) error {
	if mock.UpsertFunc == nil {
		panic("segmentRepoMock.UpsertFunc: method is nil but segmentRepo.Upsert was just called")
	}
	callInfo := struct {
		Ctx context.Context
		S   domain.Segment
	}{
		Ctx: ctx,
		S:   s,
	}
	mock.lockUpsert.Lock()
	mock.calls.Upsert = append(mock.calls.Upsert, callInfo)
	mock.lockUpsert.Unlock()
	return mock.UpsertFunc(ctx, s)
}

func (mock *segmentRepoMock) UpsertCalls() []struct {
	Ctx context.Context
	S   domain.Segment
} {
	var calls []struct {
		Ctx context.Context
		S   domain.Segment
	}
	mock.lockUpsert.RLock()
	calls = mock.calls.Upsert
	mock.lockUpsert.RUnlock()
	return calls
}

func (mock *segmentRepoMock) GetByUserID(ctx context.Context, userID uuid.UUID) (*domain.Segment, error) {
	if mock.GetByUserIDFunc == nil {
		panic("segmentRepoMock.GetByUserIDFunc: method is nil but segmentRepo.GetByUserID was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		UserID uuid.UUID
	}{
		Ctx:    ctx,
		UserID: userID,
	}
	mock.lockGetByUserID.Lock()
	mock.calls.GetByUserID = append(mock.calls.GetByUserID, callInfo)
	mock.lockGetByUserID.Unlock()
	return mock.GetByUserIDFunc(ctx, userID)
}

func (mock *segmentRepoMock) GetByUserIDCalls() []struct {
	Ctx    context.Context
	UserID uuid.UUID
} {
	var calls []struct {
		Ctx    context.Context
		UserID uuid.UUID
	}
	mock.lockGetByUserID.RLock()
	calls = mock.calls.GetByUserID
	mock.lockGetByUserID.RUnlock()
	return calls
}

func (mock *segmentRepoMock) ListByLevel(ctx context.Context, level domain.EngagementLevel, limit int, offset int) ([]domain.Segment, error) {
	if mock.ListByLevelFunc == nil {
		panic("segmentRepoMock.ListByLevelFunc: method is nil but segmentRepo.ListByLevel was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		Level  domain.EngagementLevel
		Limit  int
		Offset int
	}{
		Ctx:    ctx,
		Level:  level,
		Limit:  limit,
		Offset: offset,
	}
	mock.lockListByLevel.Lock()
	mock.calls.ListByLevel = append(mock.calls.ListByLevel, callInfo)
	mock.lockListByLevel.Unlock()
	return mock.ListByLevelFunc(ctx, level, limit, offset)
}

func (mock *segmentRepoMock) ListByLevelCalls() []struct {
	Ctx    context.Context
	Level  domain.EngagementLevel
	Limit  int
	Offset int
} {
	var calls []struct {
		Ctx    context.Context
		Level  domain.EngagementLevel
		Limit  int
		Offset int
	}
	mock.lockListByLevel.RLock()
	calls = mock.calls.ListByLevel
	mock.lockListByLevel.RUnlock()
	return calls
}

func (mock *segmentRepoMock) ListAtRisk(ctx context.Context, minRisk int, limit int) ([]domain.Segment, error) {
	if mock.ListAtRiskFunc == nil {
		panic("segmentRepoMock.ListAtRiskFunc: method is nil but segmentRepo.ListAtRisk was just called")
	}
	callInfo := struct {
		Ctx     context.Context
		MinRisk int
		Limit   int
	}{
		Ctx:     ctx,
		MinRisk: minRisk,
		Limit:   limit,
	}
	mock.lockListAtRisk.Lock()
	mock.calls.ListAtRisk = append(mock.calls.ListAtRisk, callInfo)
	mock.lockListAtRisk.Unlock()
	return mock.ListAtRiskFunc(ctx, minRisk, limit)
}

func (mock *segmentRepoMock) ListAtRiskCalls() []struct {
	Ctx     context.Context
	MinRisk int
	Limit   int
} {
	var calls []struct {
		Ctx     context.Context
		MinRisk int
		Limit   int
	}
	mock.lockListAtRisk.RLock()
	calls = mock.calls.ListAtRisk
	mock.lockListAtRisk.RUnlock()
	return calls
}

func (mock *segmentRepoMock) Stats(ctx context.Context, atRiskThreshold int) (domain.SegmentStats, error) {
	if mock.StatsFunc == nil {
		panic("segmentRepoMock.StatsFunc: method is nil but segmentRepo.Stats was just called")
	}
	callInfo := struct {
		Ctx             context.Context
		AtRiskThreshold int
	}{
		Ctx:             ctx,
		AtRiskThreshold: atRiskThreshold,
	}
	mock.lockStats.Lock()
	mock.calls.Stats = append(mock.calls.Stats, callInfo)
	mock.lockStats.Unlock()
	return mock.StatsFunc(ctx, atRiskThreshold)
}

func (mock *segmentRepoMock) StatsCalls() []struct {
	Ctx             context.Context
	AtRiskThreshold int
} {
	var calls []struct {
		Ctx             context.Context
		AtRiskThreshold int
	}
	mock.lockStats.RLock()
	calls = mock.calls.Stats
	mock.lockStats.RUnlock()
	return calls
}
