package classifier

import (
	"context"
	"github.com/google/uuid"
	"github.com/heartmarshall/learning-oracle/internal/domain"
	"sync"
)

var _ eventReader = &eventReaderMock{}

type eventReaderMock struct {
	EventCountsFunc     func(ctx context.Context, userID uuid.UUID, windowDays int) (map[string]int, error)
	LastEventOfTypeFunc func(ctx context.Context, userID uuid.UUID, eventType string) (*domain.Event, error)

	calls struct {
		EventCounts []struct {
			Ctx        context.Context
			UserID     uuid.UUID
			WindowDays int
		}
		LastEventOfType []struct {
			Ctx       context.Context
			UserID    uuid.UUID
			EventType string
		}
	}
	lockEventCounts     sync.RWMutex
	lockLastEventOfType sync.RWMutex
}

func (mock *eventReaderMock) EventCounts(ctx context.Context, userID uuid.UUID, windowDays int) (map[string]int, error) {
	if mock.EventCountsFunc == nil {
		panic("eventReaderMock.EventCountsFunc: method is nil but eventReader.EventCounts was just called")
	}
	callInfo := struct {
		Ctx        context.Context
		UserID     uuid.UUID
		WindowDays int
	}{
		Ctx:        ctx,
		UserID:     userID,
		WindowDays: windowDays,
	}
	mock.lockEventCounts.Lock()
	mock.calls.EventCounts = append(mock.calls.EventCounts, callInfo)
	mock.lockEventCounts.Unlock()
	return mock.EventCountsFunc(ctx, userID, windowDays)
}

func (mock *eventReaderMock) EventCountsCalls() []struct {
	Ctx        context.Context
	UserID     uuid.UUID
	WindowDays int
} {
	var calls []struct {
		Ctx        context.Context
		UserID     uuid.UUID
		WindowDays int
	}
	mock.lockEventCounts.RLock()
	calls = mock.calls.EventCounts
	mock.lockEventCounts.RUnlock()
	return calls
}

func (mock *eventReaderMock) LastEventOfType(ctx context.Context, userID uuid.UUID, eventType string) (*domain.Event, error) {
	if mock.LastEventOfTypeFunc == nil {
		panic("eventReaderMock.LastEventOfTypeFunc: method is nil but eventReader.LastEventOfType was just called")
	}
	callInfo := struct {
		Ctx       context.Context
		UserID    uuid.UUID
		EventType string
	}{
		Ctx:       ctx,
		UserID:    userID,
		EventType: eventType,
	}
	mock.lockLastEventOfType.Lock()
	mock.calls.LastEventOfType = append(mock.calls.LastEventOfType, callInfo)
	mock.lockLastEventOfType.Unlock()
	return mock.LastEventOfTypeFunc(ctx, userID, eventType)
}

func (mock *eventReaderMock) LastEventOfTypeCalls() []struct {
	Ctx       context.Context
	UserID    uuid.UUID
	EventType string
} {
	var calls []struct {
		Ctx       context.Context
		UserID    uuid.UUID
		EventType string
	}
	mock.lockLastEventOfType.RLock()
	calls = mock.calls.LastEventOfType
	mock.lockLastEventOfType.RUnlock()
	return calls
}
