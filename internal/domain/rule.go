package domain

import (
	"time"

	"github.com/google/uuid"
)

// Rule defaults applied by CreateRule when the operator leaves them unset.
const (
	DefaultRulePriority      = 5
	DefaultRuleCooldownHours = 24
)

// Range is an inclusive numeric bound. A nil side is unbounded.
type Range struct {
	Min *int `json:"min,omitempty" yaml:"min,omitempty"`
	Max *int `json:"max,omitempty" yaml:"max,omitempty"`
}

// Contains reports whether v lies within the range.
func (r Range) Contains(v float64) bool {
	if r.Min != nil && v < float64(*r.Min) {
		return false
	}
	if r.Max != nil && v > float64(*r.Max) {
		return false
	}
	return true
}

// ConditionSpec is a set of optional predicates ANDed together.
// An absent field matches every user.
type ConditionSpec struct {
	Event     *string          `json:"event,omitempty"     yaml:"event,omitempty"`
	DaysSince *int             `json:"daysSince,omitempty" yaml:"daysSince,omitempty"`
	Segment   *EngagementLevel `json:"segment,omitempty"   yaml:"segment,omitempty"`
	ChurnRisk *Range           `json:"churnRisk,omitempty" yaml:"churnRisk,omitempty"`
	Lifecycle *Lifecycle       `json:"lifecycle,omitempty" yaml:"lifecycle,omitempty"`
	Progress  *Range           `json:"progress,omitempty"  yaml:"progress,omitempty"`
}

// IsEmpty reports whether the spec matches everyone.
func (c ConditionSpec) IsEmpty() bool {
	return c.Event == nil && c.DaysSince == nil && c.Segment == nil &&
		c.ChurnRisk == nil && c.Lifecycle == nil && c.Progress == nil
}

// Rule is a declarative automation: trigger + conditions + action template + throttling.
type Rule struct {
	ID             uuid.UUID
	Name           string
	Trigger        TriggerType
	Conditions     ConditionSpec
	ActionType     ActionType
	ActionTemplate *string
	ActionSubject  *string
	ActionContent  string
	Priority       int
	CooldownHours  int
	MaxPerUser     *int
	IsActive       bool
	TimesTriggered int
	LastTriggered  *time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Cooldown returns the throttle window as a duration.
func (r *Rule) Cooldown() time.Duration {
	return time.Duration(r.CooldownHours) * time.Hour
}

// EvaluationResult is the outcome of evaluating a single rule.
type EvaluationResult struct {
	RuleID     uuid.UUID
	Candidates int
	Matched    int
	Throttled  int
	Failed     int
	Triggered  int
}

// EvaluationSummary aggregates a pass over all active rules.
type EvaluationSummary struct {
	RulesEvaluated int
	RulesFailed    int
	TotalTriggered int
}

// CandidateFilter selects users a rule is evaluated against.
type CandidateFilter struct {
	// RuleID orders users the rule has not acted on recently first, so
	// capped scans rotate through the population across passes.
	RuleID uuid.UUID
	// Segment restricts candidates to one engagement bucket.
	Segment *EngagementLevel
	// Limit caps the result. Zero means no cap.
	Limit int
}
