// Package seeder loads rule definitions from YAML into the rule store.
package seeder

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/heartmarshall/learning-oracle/internal/domain"
	"github.com/heartmarshall/learning-oracle/internal/service/rules"
)

// RuleCreator is satisfied by the rules service.
type RuleCreator interface {
	CreateRule(ctx context.Context, input rules.CreateRuleInput) (*domain.Rule, error)
}

// Result counts the outcome of one seeding run.
type Result struct {
	Created  int
	Existing int
	Invalid  int
}

// Seeder creates rules by name. Rules that already exist are left untouched.
type Seeder struct {
	log    *slog.Logger
	rules  RuleCreator
	dryRun bool
}

// New creates a Seeder. With dryRun set definitions are only validated.
func New(log *slog.Logger, creator RuleCreator, dryRun bool) *Seeder {
	return &Seeder{log: log.With("component", "seeder"), rules: creator, dryRun: dryRun}
}

// Run seeds defs in order. Invalid definitions are logged and counted; an
// error is returned only for store failures or when ctx is done.
func (s *Seeder) Run(ctx context.Context, defs []rules.CreateRuleInput) (Result, error) {
	var res Result

	if dup := duplicateNames(defs); len(dup) > 0 {
		return res, fmt.Errorf("duplicate rule names in file: %s", strings.Join(dup, ", "))
	}

	for _, def := range defs {
		if err := ctx.Err(); err != nil {
			return res, err
		}

		if s.dryRun {
			if err := def.Validate(); err != nil {
				res.Invalid++
				s.log.Warn("invalid rule", slog.String("name", def.Name), slog.String("error", err.Error()))
				continue
			}
			res.Created++
			continue
		}

		rule, err := s.rules.CreateRule(ctx, def)
		switch {
		case err == nil:
			res.Created++
			s.log.Info("rule created", slog.String("name", rule.Name), slog.String("rule_id", rule.ID.String()))
		case errors.Is(err, domain.ErrAlreadyExists):
			res.Existing++
			s.log.Debug("rule exists", slog.String("name", def.Name))
		case errors.Is(err, domain.ErrValidation):
			res.Invalid++
			s.log.Warn("invalid rule", slog.String("name", def.Name), slog.String("error", err.Error()))
		default:
			return res, fmt.Errorf("create rule %q: %w", def.Name, err)
		}
	}

	return res, nil
}

func duplicateNames(defs []rules.CreateRuleInput) []string {
	seen := make(map[string]bool, len(defs))
	var dup []string
	for _, d := range defs {
		name := strings.TrimSpace(d.Name)
		if name == "" {
			continue
		}
		if seen[name] {
			dup = append(dup, name)
		}
		seen[name] = true
	}
	return dup
}
