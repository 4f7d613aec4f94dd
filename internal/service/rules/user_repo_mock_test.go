package rules

import (
	"context"
	"github.com/google/uuid"
	"github.com/heartmarshall/learning-oracle/internal/domain"
	"sync"
)

var _ userRepo = &userRepoMock{}

type userRepoMock struct {
	GetProfileFunc       func(ctx context.Context, id uuid.UUID) (*domain.UserProfile, error)
	ListCandidateIDsFunc func(ctx context.Context, f domain.CandidateFilter) ([]uuid.UUID, error)

	calls struct {
		GetProfile []struct {
			Ctx context.Context
			Id  uuid.UUID
		}
		ListCandidateIDs []struct {
			Ctx context.Context
			F   domain.CandidateFilter
		}
	}
	lockGetProfile       sync.RWMutex
	lockListCandidateIDs sync.RWMutex
}

func (mock *userRepoMock) GetProfile(ctx context.Context, id uuid.UUID) (*domain.UserProfile, error) {
	if mock.GetProfileFunc == nil {
		panic("userRepoMock.GetProfileFunc: method is nil but userRepo.GetProfile was just called")
	}
	callInfo := struct {
		Ctx context.Context
		Id  uuid.UUID
	}{
		Ctx: ctx,
		Id:  id,
	}
	mock.lockGetProfile.Lock()
	mock.calls.GetProfile = append(mock.calls.GetProfile, callInfo)
	mock.lockGetProfile.Unlock()
	return mock.GetProfileFunc(ctx, id)
}

func (mock *userRepoMock) GetProfileCalls() []struct {
	Ctx context.Context
	Id  uuid.UUID
} {
	var calls []struct {
		Ctx context.Context
		Id  uuid.UUID
	}
	mock.lockGetProfile.RLock()
	calls = mock.calls.GetProfile
	mock.lockGetProfile.RUnlock()
	return calls
}

func (mock *userRepoMock) ListCandidateIDs(ctx context.Context, f domain.CandidateFilter) ([]uuid.UUID, error) {
	if mock.ListCandidateIDsFunc == nil {
		panic("userRepoMock.ListCandidateIDsFunc: method is nil but userRepo.ListCandidateIDs was just called")
	}
	callInfo := struct {
		Ctx context.Context
		F   domain.CandidateFilter
	}{
		Ctx: ctx,
		F:   f,
	}
	mock.lockListCandidateIDs.Lock()
	mock.calls.ListCandidateIDs = append(mock.calls.ListCandidateIDs, callInfo)
	mock.lockListCandidateIDs.Unlock()
	return mock.ListCandidateIDsFunc(ctx, f)
}

func (mock *userRepoMock) ListCandidateIDsCalls() []struct {
	Ctx context.Context
	F   domain.CandidateFilter
} {
	var calls []struct {
		Ctx context.Context
		F   domain.CandidateFilter
	}
	mock.lockListCandidateIDs.RLock()
	calls = mock.calls.ListCandidateIDs
	mock.lockListCandidateIDs.RUnlock()
	return calls
}
