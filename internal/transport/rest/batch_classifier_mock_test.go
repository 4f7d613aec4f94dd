package rest

import (
	"context"
	"github.com/heartmarshall/learning-oracle/internal/domain"
	"sync"
)

var _ batchClassifier = &batchClassifierMock{}

type batchClassifierMock struct {
	ClassifyBatchFunc func(ctx context.Context, limit int) (domain.BatchResult, error)

	calls struct {
		ClassifyBatch []struct {
			Ctx   context.Context
			Limit int
		}
	}
	lockClassifyBatch sync.RWMutex
}

func (mock *batchClassifierMock) ClassifyBatch(ctx context.Context, limit int) (domain.BatchResult, error) {
	if mock.ClassifyBatchFunc == nil {
		panic("batchClassifierMock.ClassifyBatchFunc: method is nil but batchClassifier.ClassifyBatch was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		Limit int
	}{
		Ctx:   ctx,
		Limit: limit,
	}
	mock.lockClassifyBatch.Lock()
	mock.calls.ClassifyBatch = append(mock.calls.ClassifyBatch, callInfo)
	mock.lockClassifyBatch.Unlock()
	return mock.ClassifyBatchFunc(ctx, limit)
}

func (mock *batchClassifierMock) ClassifyBatchCalls() []struct {
	Ctx   context.Context
	Limit int
} {
	var calls []struct {
		Ctx   context.Context
		Limit int
	}
	mock.lockClassifyBatch.RLock()
	calls = mock.calls.ClassifyBatch
	mock.lockClassifyBatch.RUnlock()
	return calls
}
