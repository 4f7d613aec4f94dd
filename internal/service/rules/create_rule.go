package rules

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/heartmarshall/learning-oracle/internal/domain"
)

// CreateRule validates and stores a new rule.
func (s *Service) CreateRule(ctx context.Context, input CreateRuleInput) (*domain.Rule, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	var errs []domain.FieldError
	if err := s.templates.Parse(input.ActionContent); err != nil {
		errs = append(errs, domain.FieldError{Field: "action_content", Message: "invalid template: " + err.Error()})
	}
	if input.ActionSubject != nil {
		if err := s.templates.Parse(*input.ActionSubject); err != nil {
			errs = append(errs, domain.FieldError{Field: "action_subject", Message: "invalid template: " + err.Error()})
		}
	}
	if len(errs) > 0 {
		return nil, domain.NewValidationErrors(errs)
	}

	priority := domain.DefaultRulePriority
	if input.Priority != nil {
		priority = *input.Priority
	}
	cooldown := domain.DefaultRuleCooldownHours
	if input.CooldownHours != nil {
		cooldown = *input.CooldownHours
	}
	active := true
	if input.IsActive != nil {
		active = *input.IsActive
	}

	now := s.clock.Now()
	rule, err := s.rules.Create(ctx, domain.Rule{
		ID:             uuid.New(),
		Name:           strings.TrimSpace(input.Name),
		Trigger:        input.Trigger,
		Conditions:     input.Conditions,
		ActionType:     input.ActionType,
		ActionTemplate: input.ActionTemplate,
		ActionSubject:  input.ActionSubject,
		ActionContent:  strings.TrimSpace(input.ActionContent),
		Priority:       priority,
		CooldownHours:  cooldown,
		MaxPerUser:     input.MaxPerUser,
		IsActive:       active,
		CreatedAt:      now,
		UpdatedAt:      now,
	})
	if err != nil {
		return nil, fmt.Errorf("create rule: %w", err)
	}

	s.log.InfoContext(ctx, "rule created",
		slog.String("rule_id", rule.ID.String()),
		slog.String("name", rule.Name),
		slog.String("trigger", rule.Trigger.String()),
		slog.Int("priority", rule.Priority),
	)

	return rule, nil
}

// ToggleRule flips the active flag of a rule.
func (s *Service) ToggleRule(ctx context.Context, id uuid.UUID) (*domain.Rule, error) {
	rule, err := s.rules.Toggle(ctx, id, s.clock.Now())
	if err != nil {
		return nil, fmt.Errorf("toggle rule: %w", err)
	}

	s.log.InfoContext(ctx, "rule toggled",
		slog.String("rule_id", id.String()),
		slog.Bool("is_active", rule.IsActive),
	)

	return rule, nil
}

// GetRules lists rules by priority, optionally only active ones.
func (s *Service) GetRules(ctx context.Context, activeOnly bool) ([]domain.Rule, error) {
	rules, err := s.rules.List(ctx, activeOnly)
	if err != nil {
		return nil, fmt.Errorf("list rules: %w", err)
	}
	return rules, nil
}

// GetRule returns one rule.
func (s *Service) GetRule(ctx context.Context, id uuid.UUID) (*domain.Rule, error) {
	rule, err := s.rules.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get rule: %w", err)
	}
	return rule, nil
}
