package rest

import (
	"context"
	"github.com/google/uuid"
	"github.com/heartmarshall/learning-oracle/internal/domain"
	"github.com/heartmarshall/learning-oracle/internal/service/rules"
	"sync"
)

var _ ruleService = &ruleServiceMock{}

type ruleServiceMock struct {
	CreateRuleFunc   func(ctx context.Context, input rules.CreateRuleInput) (*domain.Rule, error)
	ToggleRuleFunc   func(ctx context.Context, id uuid.UUID) (*domain.Rule, error)
	GetRulesFunc     func(ctx context.Context, activeOnly bool) ([]domain.Rule, error)
	GetRuleFunc      func(ctx context.Context, id uuid.UUID) (*domain.Rule, error)
	EvaluateRuleFunc func(ctx context.Context, ruleID uuid.UUID) (domain.EvaluationResult, error)

	calls struct {
		CreateRule []struct {
			Ctx   context.Context
			Input rules.CreateRuleInput
		}
		ToggleRule []struct {
			Ctx context.Context
			Id  uuid.UUID
		}
		GetRules []struct {
			Ctx        context.Context
			ActiveOnly bool
		}
		GetRule []struct {
			Ctx context.Context
			Id  uuid.UUID
		}
		EvaluateRule []struct {
			Ctx    context.Context
			RuleID uuid.UUID
		}
	}
	lockCreateRule   sync.RWMutex
	lockToggleRule   sync.RWMutex
	lockGetRules     sync.RWMutex
	lockGetRule      sync.RWMutex
	lockEvaluateRule sync.RWMutex
}

func (mock *ruleServiceMock) CreateRule(ctx context.Context, input rules.CreateRuleInput) (*domain.Rule, error) {
	if mock.CreateRuleFunc == nil {
		panic("ruleServiceMock.CreateRuleFunc: method is nil but ruleService.CreateRule was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		Input rules.CreateRuleInput
	}{
		Ctx:   ctx,
		Input: input,
	}
	mock.lockCreateRule.Lock()
	mock.calls.CreateRule = append(mock.calls.CreateRule, callInfo)
	mock.lockCreateRule.Unlock()
	return mock.CreateRuleFunc(ctx, input)
}

func (mock *ruleServiceMock) CreateRuleCalls() []struct {
	Ctx   context.Context
	Input rules.CreateRuleInput
} {
	var calls []struct {
		Ctx   context.Context
		Input rules.CreateRuleInput
	}
	mock.lockCreateRule.RLock()
	calls = mock.calls.CreateRule
	mock.lockCreateRule.RUnlock()
	return calls
}

func (mock *ruleServiceMock) ToggleRule(ctx context.Context, id uuid.UUID) (*domain.Rule, error) {
	if mock.ToggleRuleFunc == nil {
		panic("ruleServiceMock.ToggleRuleFunc: method is nil but ruleService.ToggleRule was just called")
	}
	callInfo := struct {
		Ctx context.Context
		Id  uuid.UUID
	}{
		Ctx: ctx,
		Id:  id,
	}
	mock.lockToggleRule.Lock()
	mock.calls.ToggleRule = append(mock.calls.ToggleRule, callInfo)
	mock.lockToggleRule.Unlock()
	return mock.ToggleRuleFunc(ctx, id)
}

func (mock *ruleServiceMock) ToggleRuleCalls() []struct {
	Ctx context.Context
	Id  uuid.UUID
} {
	var calls []struct {
		Ctx context.Context
		Id  uuid.UUID
	}
	mock.lockToggleRule.RLock()
	calls = mock.calls.ToggleRule
	mock.lockToggleRule.RUnlock()
	return calls
}

func (mock *ruleServiceMock) GetRules(ctx context.Context, activeOnly bool) ([]domain.Rule, error) {
	if mock.GetRulesFunc == nil {
		panic("ruleServiceMock.GetRulesFunc: method is nil but ruleService.GetRules was just called")
	}
	callInfo := struct {
		Ctx        context.Context
		ActiveOnly bool
	}{
		Ctx:        ctx,
		ActiveOnly: activeOnly,
	}
	mock.lockGetRules.Lock()
	mock.calls.GetRules = append(mock.calls.GetRules, callInfo)
	mock.lockGetRules.Unlock()
	return mock.GetRulesFunc(ctx, activeOnly)
}

func (mock *ruleServiceMock) GetRulesCalls() []struct {
	Ctx        context.Context
	ActiveOnly bool
} {
	var calls []struct {
		Ctx        context.Context
		ActiveOnly bool
	}
	mock.lockGetRules.RLock()
	calls = mock.calls.GetRules
	mock.lockGetRules.RUnlock()
	return calls
}

func (mock *ruleServiceMock) GetRule(ctx context.Context, id uuid.UUID) (*domain.Rule, error) {
	if mock.GetRuleFunc == nil {
		panic("ruleServiceMock.GetRuleFunc: method is nil but ruleService.GetRule was just called")
	}
	callInfo := struct {
		Ctx context.Context
		Id  uuid.UUID
	}{
		Ctx: ctx,
		Id:  id,
	}
	mock.lockGetRule.Lock()
	mock.calls.GetRule = append(mock.calls.GetRule, callInfo)
	mock.lockGetRule.Unlock()
	return mock.GetRuleFunc(ctx, id)
}

func (mock *ruleServiceMock) GetRuleCalls() []struct {
	Ctx context.Context
	Id  uuid.UUID
} {
	var calls []struct {
		Ctx context.Context
		Id  uuid.UUID
	}
	mock.lockGetRule.RLock()
	calls = mock.calls.GetRule
	mock.lockGetRule.RUnlock()
	return calls
}

func (mock *ruleServiceMock) EvaluateRule(ctx context.Context, ruleID uuid.UUID) (domain.EvaluationResult, error) {
	if mock.EvaluateRuleFunc == nil {
		panic("ruleServiceMock.EvaluateRuleFunc: method is nil but ruleService.EvaluateRule was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		RuleID uuid.UUID
	}{
		Ctx:    ctx,
		RuleID: ruleID,
	}
	mock.lockEvaluateRule.Lock()
	mock.calls.EvaluateRule = append(mock.calls.EvaluateRule, callInfo)
	mock.lockEvaluateRule.Unlock()
	return mock.EvaluateRuleFunc(ctx, ruleID)
}

func (mock *ruleServiceMock) EvaluateRuleCalls() []struct {
	Ctx    context.Context
	RuleID uuid.UUID
} {
	var calls []struct {
		Ctx    context.Context
		RuleID uuid.UUID
	}
	mock.lockEvaluateRule.RLock()
	calls = mock.calls.EvaluateRule
	mock.lockEvaluateRule.RUnlock()
	return calls
}
