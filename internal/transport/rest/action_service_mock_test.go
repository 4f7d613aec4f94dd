package rest

import (
	"context"
	"github.com/google/uuid"
	"github.com/heartmarshall/learning-oracle/internal/domain"
	"github.com/heartmarshall/learning-oracle/internal/service/executor"
	"sync"
)

var _ actionService = &actionServiceMock{}

type actionServiceMock struct {
	ListActionsFunc           func(ctx context.Context, input executor.ListActionsInput) ([]domain.Action, error)
	GetActionFunc             func(ctx context.Context, id uuid.UUID) (*domain.Action, error)
	CreateManualActionFunc    func(ctx context.Context, input executor.CreateManualActionInput) (*domain.Action, error)
	ApproveActionFunc         func(ctx context.Context, id uuid.UUID) (*domain.Action, error)
	RejectActionFunc          func(ctx context.Context, id uuid.UUID, reason string) (*domain.Action, error)
	ReapproveFailedActionFunc func(ctx context.Context, id uuid.UUID) (*domain.Action, error)
	ExecuteActionFunc         func(ctx context.Context, actionID uuid.UUID) (domain.ExecutionResult, error)

	calls struct {
		ListActions []struct {
			Ctx   context.Context
			Input executor.ListActionsInput
		}
		GetAction []struct {
			Ctx context.Context
			Id  uuid.UUID
		}
		CreateManualAction []struct {
			Ctx   context.Context
			Input executor.CreateManualActionInput
		}
		ApproveAction []struct {
			Ctx context.Context
			Id  uuid.UUID
		}
		RejectAction []struct {
			Ctx    context.Context
			Id     uuid.UUID
			Reason string
		}
		ReapproveFailedAction []struct {
			Ctx context.Context
			Id  uuid.UUID
		}
		ExecuteAction []struct {
			Ctx      context.Context
			ActionID uuid.UUID
		}
	}
	lockListActions           sync.RWMutex
	lockGetAction             sync.RWMutex
	lockCreateManualAction    sync.RWMutex
	lockApproveAction         sync.RWMutex
	lockRejectAction          sync.RWMutex
	lockReapproveFailedAction sync.RWMutex
	lockExecuteAction         sync.RWMutex
}

func (mock *actionServiceMock) ListActions(ctx context.Context, input executor.ListActionsInput) ([]domain.Action, error) {
	if mock.ListActionsFunc == nil {
		panic("actionServiceMock.ListActionsFunc: method is nil but actionService.ListActions was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		Input executor.ListActionsInput
	}{
		Ctx:   ctx,
		Input: input,
	}
	mock.lockListActions.Lock()
	mock.calls.ListActions = append(mock.calls.ListActions, callInfo)
	mock.lockListActions.Unlock()
	return mock.ListActionsFunc(ctx, input)
}

func (mock *actionServiceMock) ListActionsCalls() []struct {
	Ctx   context.Context
	Input executor.ListActionsInput
} {
	var calls []struct {
		Ctx   context.Context
		Input executor.ListActionsInput
	}
	mock.lockListActions.RLock()
	calls = mock.calls.ListActions
	mock.lockListActions.RUnlock()
	return calls
}

func (mock *actionServiceMock) GetAction(ctx context.Context, id uuid.UUID) (*domain.Action, error) {
	if mock.GetActionFunc == nil {
		panic("actionServiceMock.GetActionFunc: method is nil but actionService.GetAction was just called")
	}
	callInfo := struct {
		Ctx context.Context
		Id  uuid.UUID
	}{
		Ctx: ctx,
		Id:  id,
	}
	mock.lockGetAction.Lock()
	mock.calls.GetAction = append(mock.calls.GetAction, callInfo)
	mock.lockGetAction.Unlock()
	return mock.GetActionFunc(ctx, id)
}

func (mock *actionServiceMock) GetActionCalls() []struct {
	Ctx context.Context
	Id  uuid.UUID
} {
	var calls []struct {
		Ctx context.Context
		Id  uuid.UUID
	}
	mock.lockGetAction.RLock()
	calls = mock.calls.GetAction
	mock.lockGetAction.RUnlock()
	return calls
}

func (mock *actionServiceMock) CreateManualAction(ctx context.Context, input executor.CreateManualActionInput) (*domain.Action, error) {
	if mock.CreateManualActionFunc == nil {
		panic("actionServiceMock.CreateManualActionFunc: method is nil but actionService.CreateManualAction was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		Input executor.CreateManualActionInput
	}{
		Ctx:   ctx,
		Input: input,
	}
	mock.lockCreateManualAction.Lock()
	mock.calls.CreateManualAction = append(mock.calls.CreateManualAction, callInfo)
	mock.lockCreateManualAction.Unlock()
	return mock.CreateManualActionFunc(ctx, input)
}

func (mock *actionServiceMock) CreateManualActionCalls() []struct {
	Ctx   context.Context
	Input executor.CreateManualActionInput
} {
	var calls []struct {
		Ctx   context.Context
		Input executor.CreateManualActionInput
	}
	mock.lockCreateManualAction.RLock()
	calls = mock.calls.CreateManualAction
	mock.lockCreateManualAction.RUnlock()
	return calls
}

func (mock *actionServiceMock) ApproveAction(ctx context.Context, id uuid.UUID) (*domain.Action, error) {
	if mock.ApproveActionFunc == nil {
		panic("actionServiceMock.ApproveActionFunc: method is nil but actionService.ApproveAction was just called")
	}
	callInfo := struct {
		Ctx context.Context
		Id  uuid.UUID
	}{
		Ctx: ctx,
		Id:  id,
	}
	mock.lockApproveAction.Lock()
	mock.calls.ApproveAction = append(mock.calls.ApproveAction, callInfo)
	mock.lockApproveAction.Unlock()
	return mock.ApproveActionFunc(ctx, id)
}

func (mock *actionServiceMock) ApproveActionCalls() []struct {
	Ctx context.Context
	Id  uuid.UUID
} {
	var calls []struct {
		Ctx context.Context
		Id  uuid.UUID
	}
	mock.lockApproveAction.RLock()
	calls = mock.calls.ApproveAction
	mock.lockApproveAction.RUnlock()
	return calls
}

func (mock *actionServiceMock) RejectAction(ctx context.Context, id uuid.UUID, reason string) (*domain.Action, error) {
	if mock.RejectActionFunc == nil {
		panic("actionServiceMock.RejectActionFunc: method is nil but actionService.RejectAction was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		Id     uuid.UUID
		Reason string
	}{
		Ctx:    ctx,
		Id:     id,
		Reason: reason,
	}
	mock.lockRejectAction.Lock()
	mock.calls.RejectAction = append(mock.calls.RejectAction, callInfo)
	mock.lockRejectAction.Unlock()
	return mock.RejectActionFunc(ctx, id, reason)
}

func (mock *actionServiceMock) RejectActionCalls() []struct {
	Ctx    context.Context
	Id     uuid.UUID
	Reason string
} {
	var calls []struct {
		Ctx    context.Context
		Id     uuid.UUID
		Reason string
	}
	mock.lockRejectAction.RLock()
	calls = mock.calls.RejectAction
	mock.lockRejectAction.RUnlock()
	return calls
}

func (mock *actionServiceMock) ReapproveFailedAction(ctx context.Context, id uuid.UUID) (*domain.Action, error) {
	if mock.ReapproveFailedActionFunc == nil {
		panic("actionServiceMock.ReapproveFailedActionFunc: method is nil but actionService.ReapproveFailedAction was just called")
	}
	callInfo := struct {
		Ctx context.Context
		Id  uuid.UUID
	}{
		Ctx: ctx,
		Id:  id,
	}
	mock.lockReapproveFailedAction.Lock()
	mock.calls.ReapproveFailedAction = append(mock.calls.ReapproveFailedAction, callInfo)
	mock.lockReapproveFailedAction.Unlock()
	return mock.ReapproveFailedActionFunc(ctx, id)
}

func (mock *actionServiceMock) ReapproveFailedActionCalls() []struct {
	Ctx context.Context
	Id  uuid.UUID
} {
	var calls []struct {
		Ctx context.Context
		Id  uuid.UUID
	}
	mock.lockReapproveFailedAction.RLock()
	calls = mock.calls.ReapproveFailedAction
	mock.lockReapproveFailedAction.RUnlock()
	return calls
}

func (mock *actionServiceMock) ExecuteAction(ctx context.Context, actionID uuid.UUID) (domain.ExecutionResult, error) {
	if mock.ExecuteActionFunc == nil {
		panic("actionServiceMock.ExecuteActionFunc: method is nil but actionService.ExecuteAction was just called")
	}
	callInfo := struct {
		Ctx      context.Context
		ActionID uuid.UUID
	}{
		Ctx:      ctx,
		ActionID: actionID,
	}
	mock.lockExecuteAction.Lock()
	mock.calls.ExecuteAction = append(mock.calls.ExecuteAction, callInfo)
	mock.lockExecuteAction.Unlock()
	return mock.ExecuteActionFunc(ctx, actionID)
}

func (mock *actionServiceMock) ExecuteActionCalls() []struct {
	Ctx      context.Context
	ActionID uuid.UUID
} {
	var calls []struct {
		Ctx      context.Context
		ActionID uuid.UUID
	}
	mock.lockExecuteAction.RLock()
	calls = mock.calls.ExecuteAction
	mock.lockExecuteAction.RUnlock()
	return calls
}
