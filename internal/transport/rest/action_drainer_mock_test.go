package rest

import (
	"context"
	"github.com/heartmarshall/learning-oracle/internal/domain"
	"sync"
	"time"
)

var _ actionDrainer = &actionDrainerMock{}

type actionDrainerMock struct {
	ExecuteApprovedActionsFunc func(ctx context.Context, limit int) (domain.BatchResult, error)
	ExpirePendingFunc          func(ctx context.Context, olderThan time.Duration) (int, error)

	calls struct {
		ExecuteApprovedActions []struct {
			Ctx   context.Context
			Limit int
		}
		ExpirePending []struct {
			Ctx       context.Context
			OlderThan time.Duration
		}
	}
	lockExecuteApprovedActions sync.RWMutex
	lockExpirePending          sync.RWMutex
}

func (mock *actionDrainerMock) ExecuteApprovedActions(ctx context.Context, limit int) (domain.BatchResult, error) {
	if mock.ExecuteApprovedActionsFunc == nil {
		panic("actionDrainerMock.ExecuteApprovedActionsFunc: method is nil but actionDrainer.ExecuteApprovedActions was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		Limit int
	}{
		Ctx:   ctx,
		Limit: limit,
	}
	mock.lockExecuteApprovedActions.Lock()
	mock.calls.ExecuteApprovedActions = append(mock.calls.ExecuteApprovedActions, callInfo)
	mock.lockExecuteApprovedActions.Unlock()
	return mock.ExecuteApprovedActionsFunc(ctx, limit)
}

func (mock *actionDrainerMock) ExecuteApprovedActionsCalls() []struct {
	Ctx   context.Context
	Limit int
} {
	var calls []struct {
		Ctx   context.Context
		Limit int
	}
	mock.lockExecuteApprovedActions.RLock()
	calls = mock.calls.ExecuteApprovedActions
	mock.lockExecuteApprovedActions.RUnlock()
	return calls
}

func (mock *actionDrainerMock) ExpirePending(ctx context.Context, olderThan time.Duration) (int, error) {
	if mock.ExpirePendingFunc == nil {
		panic("actionDrainerMock.ExpirePendingFunc: method is nil but actionDrainer.ExpirePending was just called")
	}
	callInfo := struct {
		Ctx       context.Context
		OlderThan time.Duration
	}{
		Ctx:       ctx,
		OlderThan: olderThan,
	}
	mock.lockExpirePending.Lock()
	mock.calls.ExpirePending = append(mock.calls.ExpirePending, callInfo)
	mock.lockExpirePending.Unlock()
	return mock.ExpirePendingFunc(ctx, olderThan)
}

func (mock *actionDrainerMock) ExpirePendingCalls() []struct {
	Ctx       context.Context
	OlderThan time.Duration
} {
	var calls []struct {
		Ctx       context.Context
		OlderThan time.Duration
	}
	mock.lockExpirePending.RLock()
	calls = mock.calls.ExpirePending
	mock.lockExpirePending.RUnlock()
	return calls
}
