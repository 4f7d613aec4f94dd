package executor

import (
	"context"
	"github.com/google/uuid"
	"github.com/heartmarshall/learning-oracle/internal/domain"
	"sync"
	"time"
)

var _ actionRepo = &actionRepoMock{}

type actionRepoMock struct {
	CreateFunc         func(ctx context.Context, a domain.Action) (*domain.Action, error)
	TransitionFunc     func(ctx context.Context, id uuid.UUID, t domain.ActionTransition) (*domain.Action, error)
	ExpirePendingFunc  func(ctx context.Context, olderThan time.Time, outcome domain.Outcome, now time.Time) (int, error)
	GetByIDFunc        func(ctx context.Context, id uuid.UUID) (*domain.Action, error)
	ListDueFunc        func(ctx context.Context, now time.Time, limit int) ([]domain.Action, error)
	ListFunc           func(ctx context.Context, f domain.ActionFilter) ([]domain.Action, error)
	MarkReapprovedFunc func(ctx context.Context, id uuid.UUID, copyID uuid.UUID, now time.Time) error

	calls struct {
		Create []struct {
			Ctx context.Context
			A   domain.Action
		}
		Transition []struct {
			Ctx context.Context
			Id  uuid.UUID
			T   domain.ActionTransition
		}
		ExpirePending []struct {
			Ctx       context.Context
			OlderThan time.Time
			Outcome   domain.Outcome
			Now       time.Time
		}
		GetByID []struct {
			Ctx context.Context
			Id  uuid.UUID
		}
		ListDue []struct {
			Ctx   context.Context
			Now   time.Time
			Limit int
		}
		List []struct {
			Ctx context.Context
			F   domain.ActionFilter
		}
		MarkReapproved []struct {
			Ctx    context.Context
			Id     uuid.UUID
			CopyID uuid.UUID
			Now    time.Time
		}
	}
	lockCreate         sync.RWMutex
	lockTransition     sync.RWMutex
	lockExpirePending  sync.RWMutex
	lockGetByID        sync.RWMutex
	lockListDue        sync.RWMutex
	lockList           sync.RWMutex
	lockMarkReapproved sync.RWMutex
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

func (mock *actionRepoMock) Transition(ctx context.Context, id uuid.UUID, t domain.ActionTransition) (*domain.Action, error) {
	if mock.TransitionFunc == nil {
		panic("actionRepoMock.TransitionFunc: method is nil but actionRepo.Transition was just called")
	}
	callInfo := struct {
		Ctx context.Context
		Id  uuid.UUID
		T   domain.ActionTransition
	}{
		Ctx: ctx,
		Id:  id,
		T:   t,
	}
	mock.lockTransition.Lock()
	mock.calls.Transition = append(mock.calls.Transition, callInfo)
	mock.lockTransition.Unlock()
	return mock.TransitionFunc(ctx, id, t)
}

func (mock *actionRepoMock) TransitionCalls() []struct {
	Ctx context.Context
	Id  uuid.UUID
	T   domain.ActionTransition
} {
	var calls []struct {
		Ctx context.Context
		Id  uuid.UUID
		T   domain.ActionTransition
	}
	mock.lockTransition.RLock()
	calls = mock.calls.Transition
	mock.lockTransition.RUnlock()
	return calls
}

func (mock *actionRepoMock) ExpirePending(ctx context.Context, olderThan time.Time, outcome domain.Outcome, now time.Time) (int, error) {
	if mock.ExpirePendingFunc == nil {
		panic("actionRepoMock.ExpirePendingFunc: method is nil but actionRepo.ExpirePending was just called")
	}
	callInfo := struct {
		Ctx       context.Context
		OlderThan time.Time
		Outcome   domain.Outcome
		Now       time.Time
	}{
		Ctx:       ctx,
		OlderThan: olderThan,
		Outcome:   outcome,
		Now:       now,
	}
	mock.lockExpirePending.Lock()
	mock.calls.ExpirePending = append(mock.calls.ExpirePending, callInfo)
	mock.lockExpirePending.Unlock()
	return mock.ExpirePendingFunc(ctx, olderThan, outcome, now)
}

func (mock *actionRepoMock) ExpirePendingCalls() []struct {
	Ctx       context.Context
	OlderThan time.Time
	Outcome   domain.Outcome
	Now       time.Time
} {
	var calls []struct {
		Ctx       context.Context
		OlderThan time.Time
		Outcome   domain.Outcome
		Now       time.Time
	}
	mock.lockExpirePending.RLock()
	calls = mock.calls.ExpirePending
	mock.lockExpirePending.RUnlock()
	return calls
}

func (mock *actionRepoMock) GetByID(ctx context.Context, id uuid.UUID) (*domain.Action, error) {
	if mock.GetByIDFunc == nil {
		panic("actionRepoMock.GetByIDFunc: method is nil but actionRepo.GetByID was just called")
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

func (mock *actionRepoMock) GetByIDCalls() []struct {
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

func (mock *actionRepoMock) ListDue(ctx context.Context, now time.Time, limit int) ([]domain.Action, error) {
	if mock.ListDueFunc == nil {
		panic("actionRepoMock.ListDueFunc: method is nil but actionRepo.ListDue was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		Now   time.Time
		Limit int
	}{
		Ctx:   ctx,
		Now:   now,
		Limit: limit,
	}
	mock.lockListDue.Lock()
	mock.calls.ListDue = append(mock.calls.ListDue, callInfo)
	mock.lockListDue.Unlock()
	return mock.ListDueFunc(ctx, now, limit)
}

func (mock *actionRepoMock) ListDueCalls() []struct {
	Ctx   context.Context
	Now   time.Time
	Limit int
} {
	var calls []struct {
		Ctx   context.Context
		Now   time.Time
		Limit int
	}
	mock.lockListDue.RLock()
	calls = mock.calls.ListDue
	mock.lockListDue.RUnlock()
	return calls
}

func (mock *actionRepoMock) List(ctx context.Context, f domain.ActionFilter) ([]domain.Action, error) {
	if mock.ListFunc == nil {
		panic("actionRepoMock.ListFunc: method is nil but actionRepo.List was just called")
	}
	callInfo := struct {
		Ctx context.Context
		F   domain.ActionFilter
	}{
		Ctx: ctx,
		F:   f,
	}
	mock.lockList.Lock()
	mock.calls.List = append(mock.calls.List, callInfo)
	mock.lockList.Unlock()
	return mock.ListFunc(ctx, f)
}

func (mock *actionRepoMock) ListCalls() []struct {
	Ctx context.Context
	F   domain.ActionFilter
} {
	var calls []struct {
		Ctx context.Context
		F   domain.ActionFilter
	}
	mock.lockList.RLock()
	calls = mock.calls.List
	mock.lockList.RUnlock()
	return calls
}

func (mock *actionRepoMock) MarkReapproved(ctx context.Context, id uuid.UUID, copyID uuid.UUID, now time.Time) error {
	if mock.MarkReapprovedFunc == nil {
		panic("actionRepoMock.MarkReapprovedFunc: method is nil but actionRepo.MarkReapproved was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		Id     uuid.UUID
		CopyID uuid.UUID
		Now    time.Time
	}{
		Ctx:    ctx,
		Id:     id,
		CopyID: copyID,
		Now:    now,
	}
	mock.lockMarkReapproved.Lock()
	mock.calls.MarkReapproved = append(mock.calls.MarkReapproved, callInfo)
	mock.lockMarkReapproved.Unlock()
	return mock.MarkReapprovedFunc(ctx, id, copyID, now)
}

func (mock *actionRepoMock) MarkReapprovedCalls() []struct {
	Ctx    context.Context
	Id     uuid.UUID
	CopyID uuid.UUID
	Now    time.Time
} {
	var calls []struct {
		Ctx    context.Context
		Id     uuid.UUID
		CopyID uuid.UUID
		Now    time.Time
	}
	mock.lockMarkReapproved.RLock()
	calls = mock.calls.MarkReapproved
	mock.lockMarkReapproved.RUnlock()
	return calls
}
