package rest

import (
	"context"
	"github.com/heartmarshall/learning-oracle/internal/domain"
	"sync"
)

var _ ruleEvaluator = &ruleEvaluatorMock{}

type ruleEvaluatorMock struct {
	EvaluateAllActiveRulesFunc func(ctx context.Context) (domain.EvaluationSummary, error)

	calls struct {
		EvaluateAllActiveRules []struct {
			Ctx context.Context
		}
	}
	lockEvaluateAllActiveRules sync.RWMutex
}

func (mock *ruleEvaluatorMock) EvaluateAllActiveRules(ctx context.Context) (domain.EvaluationSummary, error) {
	if mock.EvaluateAllActiveRulesFunc == nil {
		panic("ruleEvaluatorMock.EvaluateAllActiveRulesFunc: method is nil but ruleEvaluator.EvaluateAllActiveRules was just called")
	}
	callInfo := struct {
		Ctx context.Context
	}{
		Ctx: ctx,
	}
	mock.lockEvaluateAllActiveRules.Lock()
	mock.calls.EvaluateAllActiveRules = append(mock.calls.EvaluateAllActiveRules, callInfo)
	mock.lockEvaluateAllActiveRules.Unlock()
	return mock.EvaluateAllActiveRulesFunc(ctx)
}

func (mock *ruleEvaluatorMock) EvaluateAllActiveRulesCalls() []struct {
	Ctx context.Context
} {
	var calls []struct {
		Ctx context.Context
	}
	mock.lockEvaluateAllActiveRules.RLock()
	calls = mock.calls.EvaluateAllActiveRules
	mock.lockEvaluateAllActiveRules.RUnlock()
	return calls
}
