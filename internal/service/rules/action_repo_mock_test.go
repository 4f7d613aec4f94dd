package rules

import (
	"context"
	"github.com/google/uuid"
	"github.com/heartmarshall/learning-oracle/internal/domain"
	"sync"
	"time"
)

var _ actionRepo = &actionRepoMock{}

type actionRepoMock struct {
	CreateFunc        func(ctx context.Context, a domain.Action) (*domain.Action, error)
	ThrottleStatsFunc func(ctx context.Context, ruleID uuid.UUID, userID uuid.UUID, since time.Time) (int, int, error)

	calls struct {
		Create []struct {
			Ctx context.Context
			A   domain.Action
		}
		ThrottleStats []struct {
			Ctx    context.Context
			RuleID uuid.UUID
			UserID uuid.UUID
			Since  time.Time
		}
	}
	lockCreate        sync.RWMutex
	lockThrottleStats sync.RWMutex
}

func (mock *actionRepoMock) Create(ctx context.Context, a domain.Action) (*domain.Action, error) {
	if mock.CreateFunc == nil {
		panic("actionRepoMock.CreateFunc: method is nil but actionRepo.Create was just called")
	}
	callInfo := struct {
		Ctx context.Context
		A   domain.Action
	}{
		Ctx: ctx,
		A:   a,
	}
	mock.lockCreate.Lock()
	mock.calls.Create = append(mock.calls.Create, callInfo)
	mock.lockCreate.Unlock()
	return mock.CreateFunc(ctx, a)
}

func (mock *actionRepoMock) CreateCalls() []struct {
	Ctx context.Context
	A   domain.Action
} {
	var calls []struct {
		Ctx context.Context
		A   domain.Action
	}
	mock.lockCreate.RLock()
	calls = mock.calls.Create
	mock.lockCreate.RUnlock()
	return calls
}

func (mock *actionRepoMock) ThrottleStats(ctx context.Context, ruleID uuid.UUID, userID uuid.UUID, since time.Time) (int, int, error) {
	if mock.ThrottleStatsFunc == nil {
		panic("actionRepoMock.ThrottleStatsFunc: method is nil but actionRepo.ThrottleStats was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		RuleID uuid.UUID
		UserID uuid.UUID
		Since  time.Time
	}{
		Ctx:    ctx,
		RuleID: ruleID,
		UserID: userID,
		Since:  since,
	}
	mock.lockThrottleStats.Lock()
	mock.calls.ThrottleStats = append(mock.calls.ThrottleStats, callInfo)
	mock.lockThrottleStats.Unlock()
	return mock.ThrottleStatsFunc(ctx, ruleID, userID, since)
}

func (mock *actionRepoMock) ThrottleStatsCalls() []struct {
	Ctx    context.Context
	RuleID uuid.UUID
	UserID uuid.UUID
	Since  time.Time
} {
	var calls []struct {
		Ctx    context.Context
		RuleID uuid.UUID
		UserID uuid.UUID
		Since  time.Time
	}
	mock.lockThrottleStats.RLock()
	calls = mock.calls.ThrottleStats
	mock.lockThrottleStats.RUnlock()
	return calls
}
