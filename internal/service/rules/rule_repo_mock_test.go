package rules

import (
	"context"
	"github.com/google/uuid"
	"github.com/heartmarshall/learning-oracle/internal/domain"
	"sync"
	"time"
)

var _ ruleRepo = &ruleRepoMock{}

type ruleRepoMock struct {
	CreateFunc          func(ctx context.Context, rule domain.Rule) (*domain.Rule, error)
	ToggleFunc          func(ctx context.Context, id uuid.UUID, now time.Time) (*domain.Rule, error)
	RecordTriggeredFunc func(ctx context.Context, id uuid.UUID, n int, at time.Time) error
	GetByIDFunc         func(ctx context.Context, id uuid.UUID) (*domain.Rule, error)
	ListFunc            func(ctx context.Context, activeOnly bool) ([]domain.Rule, error)

	calls struct {
		Create []struct {
			Ctx  context.Context
			Rule domain.Rule
		}
		Toggle []struct {
			Ctx context.Context
			Id  uuid.UUID
			Now time.Time
		}
		RecordTriggered []struct {
			Ctx context.Context
			Id  uuid.UUID
			N   int
			At  time.Time
		}
		GetByID []struct {
			Ctx context.Context
			Id  uuid.UUID
		}
		List []struct {
			Ctx        context.Context
			ActiveOnly bool
		}
	}
	lockCreate          sync.RWMutex
	lockToggle          sync.RWMutex
	lockRecordTriggered sync.RWMutex
	lockGetByID         sync.RWMutex
	lockList            sync.RWMutex
}

func (mock *ruleRepoMock) Create(ctx context.Context, rule domain.Rule) (*domain.Rule, error) {
	if mock.CreateFunc == nil {
		panic("ruleRepoMock.CreateFunc: method is nil but ruleRepo.Create was just called")
	}
	callInfo := struct {
		Ctx  context.Context
		Rule domain.Rule
	}{
		Ctx:  ctx,
		Rule: rule,
	}
	mock.lockCreate.Lock()
	mock.calls.Create = append(mock.calls.Create, callInfo)
	mock.lockCreate.Unlock()
	return mock.CreateFunc(ctx, rule)
}

func (mock *ruleRepoMock) CreateCalls() []struct {
	Ctx  context.Context
	Rule domain.Rule
} {
	var calls []struct {
		Ctx  context.Context
		Rule domain.Rule
	}
	mock.lockCreate.RLock()
	calls = mock.calls.Create
	mock.lockCreate.RUnlock()
	return calls
}

func (mock *ruleRepoMock) Toggle(ctx context.Context, id uuid.UUID, now time.Time) (*domain.Rule, error) {
	if mock.ToggleFunc == nil {
		panic("ruleRepoMock.ToggleFunc: method is nil but ruleRepo.Toggle was just called")
	}
	callInfo := struct {
		Ctx context.Context
		Id  uuid.UUID
		Now time.Time
	}{
		Ctx: ctx,
		Id:  id,
		Now: now,
	}
	mock.lockToggle.Lock()
	mock.calls.Toggle = append(mock.calls.Toggle, callInfo)
	mock.lockToggle.Unlock()
	return mock.ToggleFunc(ctx, id, now)
}

func (mock *ruleRepoMock) ToggleCalls() []struct {
	Ctx context.Context
	Id  uuid.UUID
	Now time.Time
} {
	var calls []struct {
		Ctx context.Context
		Id  uuid.UUID
		Now time.Time
	}
	mock.lockToggle.RLock()
	calls = mock.calls.Toggle
	mock.lockToggle.RUnlock()
	return calls
}

func (mock *ruleRepoMock) RecordTriggered(ctx context.Context, id uuid.UUID, n int, at time.Time) error {
	if mock.RecordTriggeredFunc == nil {
		panic("ruleRepoMock.RecordTriggeredFunc: method is nil but ruleRepo.RecordTriggered was just called")
	}
	callInfo := struct {
		Ctx context.Context
		Id  uuid.UUID
		N   int
		At  time.Time
	}{
		Ctx: ctx,
		Id:  id,
		N:   n,
		At:  at,
	}
	mock.lockRecordTriggered.Lock()
	mock.calls.RecordTriggered = append(mock.calls.RecordTriggered, callInfo)
	mock.lockRecordTriggered.Unlock()
	return mock.RecordTriggeredFunc(ctx, id, n, at)
}

func (mock *ruleRepoMock) RecordTriggeredCalls() []struct {
	Ctx context.Context
	Id  uuid.UUID
	N   int
	At  time.Time
} {
	var calls []struct {
		Ctx context.Context
		Id  uuid.UUID
		N   int
		At  time.Time
	}
	mock.lockRecordTriggered.RLock()
	calls = mock.calls.RecordTriggered
	mock.lockRecordTriggered.RUnlock()
	return calls
}

func (mock *ruleRepoMock) GetByID(ctx context.Context, id uuid.UUID) (*domain.Rule, error) {
	if mock.GetByIDFunc == nil {
		panic("ruleRepoMock.GetByIDFunc: method is nil but ruleRepo.GetByID was just called")
	}
	callInfo := struct {
		Ctx context.Context
		Id  uuid.UUID
	}{
		Ctx: ctx,
		Id:  id,
	}
	mock.lockGetByID.Lock()
	mock.calls.GetByID = append(mock.calls.GetByID, callInfo)
	mock.lockGetByID.Unlock()
	return mock.GetByIDFunc(ctx, id)
}

func (mock *ruleRepoMock) GetByIDCalls() []struct {
	Ctx context.Context
	Id  uuid.UUID
} {
	var calls []struct {
		Ctx context.Context
		Id  uuid.UUID
	}
	mock.lockGetByID.RLock()
	calls = mock.calls.GetByID
	mock.lockGetByID.RUnlock()
	return calls
}

func (mock *ruleRepoMock) List(ctx context.Context, activeOnly bool) ([]domain.Rule, error) {
	if mock.ListFunc == nil {
		panic("ruleRepoMock.ListFunc: method is nil but ruleRepo.List was just called")
	}
	callInfo := struct {
		Ctx        context.Context
		ActiveOnly bool
	}{
		Ctx:        ctx,
		ActiveOnly: activeOnly,
	}
	mock.lockList.Lock()
	mock.calls.List = append(mock.calls.List, callInfo)
	mock.lockList.Unlock()
	return mock.ListFunc(ctx, activeOnly)
}

func (mock *ruleRepoMock) ListCalls() []struct {
	Ctx        context.Context
	ActiveOnly bool
} {
	var calls []struct {
		Ctx        context.Context
		ActiveOnly bool
	}
	mock.lockList.RLock()
	calls = mock.calls.List
	mock.lockList.RUnlock()
	return calls
}
