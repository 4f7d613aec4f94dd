package rules

import (
	"context"
	"github.com/google/uuid"
	"github.com/heartmarshall/learning-oracle/internal/domain"
	"sync"
)

var _ eventReader = &eventReaderMock{}

type eventReaderMock struct {
	LastEventOfTypeFunc func(ctx context.Context, userID uuid.UUID, eventType string) (*domain.Event, error)

	calls struct {
		LastEventOfType []struct {
			Ctx       context.Context
			UserID    uuid.UUID
			EventType string
		}
	}
	lockLastEventOfType sync.RWMutex
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
