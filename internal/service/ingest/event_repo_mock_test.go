package ingest

import (
	"context"
	"github.com/google/uuid"
	"github.com/heartmarshall/learning-oracle/internal/domain"
	"sync"
	"time"
)

var _ eventRepo = &eventRepoMock{}

type eventRepoMock struct {
	CreateFunc       func(ctx context.Context, e domain.Event) (*domain.Event, error)
	ListSinceFunc    func(ctx context.Context, userID uuid.UUID, since time.Time, types []string) ([]domain.Event, error)
	CountsByTypeFunc func(ctx context.Context, userID uuid.UUID, since time.Time) (map[string]int, error)
	LastOfTypeFunc   func(ctx context.Context, userID uuid.UUID, eventType string) (*domain.Event, error)

	calls struct {
		Create []struct {
			Ctx context.Context
			E   domain.Event
		}
		ListSince []struct {
			Ctx    context.Context
			UserID uuid.UUID
			Since  time.Time
			Types  []string
		}
		CountsByType []struct {
			Ctx    context.Context
			UserID uuid.UUID
			Since  time.Time
		}
		LastOfType []struct {
			Ctx       context.Context
			UserID    uuid.UUID
			EventType string
		}
	}
	lockCreate       sync.RWMutex
	lockListSince    sync.RWMutex
	lockCountsByType sync.RWMutex
	lockLastOfType   sync.RWMutex
}

func (mock *eventRepoMock) Create(ctx context.Context, e domain.Event) (*domain.Event, error) {
	if mock.CreateFunc == nil {
		panic("eventRepoMock.CreateFunc: method is nil but eventRepo.Create was just called")
	}
	callInfo := struct {
		Ctx context.Context
		E   domain.Event
	}{
		Ctx: ctx,
		E:   e,
	}
	mock.lockCreate.Lock()
	mock.calls.Create = append(mock.calls.Create, callInfo)
	mock.lockCreate.Unlock()
	return mock.CreateFunc(ctx, e)
}

func (mock *eventRepoMock) CreateCalls() []struct {
	Ctx context.Context
	E   domain.Event
} {
	var calls []struct {
		Ctx context.Context
		E   domain.Event
	}
	mock.lockCreate.RLock()
	calls = mock.calls.Create
	mock.lockCreate.RUnlock()
	return calls
}

func (mock *eventRepoMock) ListSince(ctx context.Context, userID uuid.UUID, since time.Time, types []string) ([]domain.Event, error) {
	if mock.ListSinceFunc == nil {
		panic("eventRepoMock.ListSinceFunc: method is nil but eventRepo.ListSince was just called")
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
	mock.lockListSince.Lock()
	mock.calls.ListSince = append(mock.calls.ListSince, callInfo)
	mock.lockListSince.Unlock()
	return mock.ListSinceFunc(ctx, userID, since, types)
}

func (mock *eventRepoMock) ListSinceCalls() []struct {
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
	mock.lockListSince.RLock()
	calls = mock.calls.ListSince
	mock.lockListSince.RUnlock()
	return calls
}

func (mock *eventRepoMock) CountsByType(ctx context.Context, userID uuid.UUID, since time.Time) (map[string]int, error) {
	if mock.CountsByTypeFunc == nil {
		panic("eventRepoMock.CountsByTypeFunc: method is nil but eventRepo.CountsByType was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		UserID uuid.UUID
		Since  time.Time
	}{
		Ctx:    ctx,
		UserID: userID,
		Since:  since,
	}
	mock.lockCountsByType.Lock()
	mock.calls.CountsByType = append(mock.calls.CountsByType, callInfo)
	mock.lockCountsByType.Unlock()
	return mock.CountsByTypeFunc(ctx, userID, since)
}

func (mock *eventRepoMock) CountsByTypeCalls() []struct {
	Ctx    context.Context
	UserID uuid.UUID
	Since  time.Time
} {
	var calls []struct {
		Ctx    context.Context
		UserID uuid.UUID
		Since  time.Time
	}
	mock.lockCountsByType.RLock()
	calls = mock.calls.CountsByType
	mock.lockCountsByType.RUnlock()
	return calls
}

func (mock *eventRepoMock) LastOfType(ctx context.Context, userID uuid.UUID, eventType string) (*domain.Event, error) {
	if mock.LastOfTypeFunc == nil {
		panic("eventRepoMock.LastOfTypeFunc: method is nil but eventRepo.LastOfType was just called")
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
	mock.lockLastOfType.Lock()
	mock.calls.LastOfType = append(mock.calls.LastOfType, callInfo)
	mock.lockLastOfType.Unlock()
	return mock.LastOfTypeFunc(ctx, userID, eventType)
}

func (mock *eventRepoMock) LastOfTypeCalls() []struct {
	Ctx       context.Context
	UserID    uuid.UUID
	EventType string
} {
	var calls []struct {
		Ctx       context.Context
		UserID    uuid.UUID
		EventType string
	}
	mock.lockLastOfType.RLock()
	calls = mock.calls.LastOfType
	mock.lockLastOfType.RUnlock()
	return calls
}
