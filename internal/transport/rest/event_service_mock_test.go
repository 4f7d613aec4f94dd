package rest

import (
	"context"
	"github.com/google/uuid"
	"github.com/heartmarshall/learning-oracle/internal/domain"
	"github.com/heartmarshall/learning-oracle/internal/service/ingest"
	"sync"
	"time"
)

var _ eventService = &eventServiceMock{}

type eventServiceMock struct {
	RecordEventFunc func(ctx context.Context, input ingest.RecordEventInput) (*domain.Event, error)
	EventsSinceFunc func(ctx context.Context, userID uuid.UUID, since time.Time, types ...string) ([]domain.Event, error)

	calls struct {
		RecordEvent []struct {
			Ctx   context.Context
			Input ingest.RecordEventInput
		}
		EventsSince []struct {
			Ctx    context.Context
			UserID uuid.UUID
			Since  time.Time
			Types  []string
		}
	}
	lockRecordEvent sync.RWMutex
	lockEventsSince sync.RWMutex
}

func (mock *eventServiceMock) RecordEvent(ctx context.Context, input ingest.RecordEventInput) (*domain.Event, error) {
	if mock.RecordEventFunc == nil {
		panic("eventServiceMock.RecordEventFunc: method is nil but eventService.RecordEvent was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		Input ingest.RecordEventInput
	}{
		Ctx:   ctx,
		Input: input,
	}
	mock.lockRecordEvent.Lock()
	mock.calls.RecordEvent = append(mock.calls.RecordEvent, callInfo)
	mock.lockRecordEvent.Unlock()
	return mock.RecordEventFunc(ctx, input)
}

func (mock *eventServiceMock) RecordEventCalls() []struct {
	Ctx   context.Context
	Input ingest.RecordEventInput
} {
	var calls []struct {
		Ctx   context.Context
		Input ingest.RecordEventInput
	}
	mock.lockRecordEvent.RLock()
	calls = mock.calls.RecordEvent
	mock.lockRecordEvent.RUnlock()
	return calls
}

func (mock *eventServiceMock) EventsSince(ctx context.Context, userID uuid.UUID, since time.Time, types ...string) ([]domain.Event, error) {
	if mock.EventsSinceFunc == nil {
		panic("eventServiceMock.EventsSinceFunc: method is nil but eventService.EventsSince was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		UserID uuid.UUID
		Since  time.Time
		Types  []string
	}{
		Ctx:    ctx,
		UserID: userID,
		Since:  since,
		Types:  types,
	}
	mock.lockEventsSince.Lock()
	mock.calls.EventsSince = append(mock.calls.EventsSince, callInfo)
	mock.lockEventsSince.Unlock()
	return mock.EventsSinceFunc(ctx, userID, since, types...)
}

func (mock *eventServiceMock) EventsSinceCalls() []struct {
	Ctx    context.Context
	UserID uuid.UUID
	Since  time.Time
	Types  []string
} {
	var calls []struct {
		Ctx    context.Context
		UserID uuid.UUID
		Since  time.Time
		Types  []string
	}
	mock.lockEventsSince.RLock()
	calls = mock.calls.EventsSince
	mock.lockEventsSince.RUnlock()
	return calls
}
