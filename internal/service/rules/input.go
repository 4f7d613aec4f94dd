package rules

import (
	"strings"

	"github.com/heartmarshall/learning-oracle/internal/domain"
)

const (
	MaxNameLength    = 200
	MaxContentLength = 10000
	MaxSubjectLength = 300
)

// CreateRuleInput holds the parameters for creating a rule. Nil Priority,
// CooldownHours and IsActive take the defaults (5, 24, true).
type CreateRuleInput struct {
	Name           string               `json:"name"           yaml:"name"`
	Trigger        domain.TriggerType   `json:"trigger"        yaml:"trigger"`
	Conditions     domain.ConditionSpec `json:"conditions"     yaml:"conditions"`
	ActionType     domain.ActionType    `json:"actionType"     yaml:"actionType"`
	ActionTemplate *string              `json:"actionTemplate" yaml:"actionTemplate"`
	ActionSubject  *string              `json:"actionSubject"  yaml:"actionSubject"`
	ActionContent  string               `json:"actionContent"  yaml:"actionContent"`
	Priority       *int                 `json:"priority"       yaml:"priority"`
	CooldownHours  *int                 `json:"cooldownHours"  yaml:"cooldownHours"`
	MaxPerUser     *int                 `json:"maxPerUser"     yaml:"maxPerUser"`
	IsActive       *bool                `json:"isActive"       yaml:"isActive"`
}

// Validate checks all fields and collects all errors.
func (i CreateRuleInput) Validate() error {
	var errs []domain.FieldError

	name := strings.TrimSpace(i.Name)
	if name == "" {
		errs = append(errs, domain.FieldError{Field: "name", Message: "required"})
	}
	if len(name) > MaxNameLength {
		errs = append(errs, domain.FieldError{Field: "name", Message: "max 200 characters"})
	}

	if !i.Trigger.IsValid() {
		errs = append(errs, domain.FieldError{Field: "trigger", Message: "must be one of event_based, segment_based, scheduled"})
	}
	if !i.ActionType.IsValid() {
		errs = append(errs, domain.FieldError{Field: "action_type", Message: "must be one of email, dm, push, tag"})
	}

	content := strings.TrimSpace(i.ActionContent)
	if content == "" {
		errs = append(errs, domain.FieldError{Field: "action_content", Message: "required"})
	}
	if len(content) > MaxContentLength {
		errs = append(errs, domain.FieldError{Field: "action_content", Message: "max 10000 characters"})
	}
	if i.ActionSubject != nil && len(*i.ActionSubject) > MaxSubjectLength {
		errs = append(errs, domain.FieldError{Field: "action_subject", Message: "max 300 characters"})
	}

	if i.Priority != nil && (*i.Priority < 1 || *i.Priority > 10) {
		errs = append(errs, domain.FieldError{Field: "priority", Message: "must be between 1 and 10"})
	}
	if i.CooldownHours != nil && *i.CooldownHours < 0 {
		errs = append(errs, domain.FieldError{Field: "cooldown_hours", Message: "must be non-negative"})
	}
	if i.MaxPerUser != nil && *i.MaxPerUser < 1 {
		errs = append(errs, domain.FieldError{Field: "max_per_user", Message: "must be at least 1"})
	}

	errs = append(errs, validateConditions(i.Conditions)...)

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

func validateConditions(c domain.ConditionSpec) []domain.FieldError {
	var errs []domain.FieldError

	if c.Event != nil {
		e := strings.TrimSpace(*c.Event)
		if e == "" || len(e) > 100 {
			errs = append(errs, domain.FieldError{Field: "conditions.event", Message: "must be 1-100 characters"})
		}
	}
	if c.DaysSince != nil && *c.DaysSince < 0 {
		errs = append(errs, domain.FieldError{Field: "conditions.daysSince", Message: "must be non-negative"})
	}
	if c.Segment != nil && !c.Segment.IsValid() {
		errs = append(errs, domain.FieldError{Field: "conditions.segment", Message: "unknown engagement level"})
	}
	if c.Lifecycle != nil && !c.Lifecycle.IsValid() {
		errs = append(errs, domain.FieldError{Field: "conditions.lifecycle", Message: "unknown lifecycle stage"})
	}
	errs = append(errs, validateRange("conditions.churnRisk", c.ChurnRisk)...)
	errs = append(errs, validateRange("conditions.progress", c.Progress)...)

	return errs
}

func validateRange(field string, r *domain.Range) []domain.FieldError {
	if r == nil {
		return nil
	}
	var errs []domain.FieldError
	if r.Min != nil && (*r.Min < 0 || *r.Min > 100) {
		errs = append(errs, domain.FieldError{Field: field + ".min", Message: "must be between 0 and 100"})
	}
	if r.Max != nil && (*r.Max < 0 || *r.Max > 100) {
		errs = append(errs, domain.FieldError{Field: field + ".max", Message: "must be between 0 and 100"})
	}
	if r.Min != nil && r.Max != nil && *r.Min > *r.Max {
		errs = append(errs, domain.FieldError{Field: field, Message: "min must not exceed max"})
	}
	return errs
}
