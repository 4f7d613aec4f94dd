package domain

import (
	"time"

	"github.com/google/uuid"
)

// DefaultApprovalThreshold is the rule priority at and above which created
// actions wait for a human approval.
const DefaultApprovalThreshold = 8

// Outcome is the structured result stored on a finalized action.
type Outcome map[string]any

// Outcome keys linking a failed action and its reapproved copy.
const (
	OutcomeReapprovedAs   = "reapproved_as"
	OutcomeReapprovedFrom = "reapproved_from"
)

// Action is a scheduled or executed side effect attributed to a rule or an operator.
type Action struct {
	ID              uuid.UUID
	UserID          uuid.UUID
	RuleID          *uuid.UUID
	ActionType      ActionType
	RenderedContent string
	Subject         *string
	Template        *string
	Priority        int
	Status          ActionStatus
	ScheduledAt     *time.Time
	ExecutedAt      *time.Time
	Outcome         Outcome
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// IsManual reports whether the action was inserted by an operator.
func (a *Action) IsManual() bool {
	return a.RuleID == nil
}

// IsDue reports whether the action may be executed at now.
func (a *Action) IsDue(now time.Time) bool {
	return a.ScheduledAt == nil || !a.ScheduledAt.After(now)
}

// InitialStatus returns the status an automatically created action starts in.
func InitialStatus(priority, approvalThreshold int) ActionStatus {
	if priority >= approvalThreshold {
		return ActionStatusPending
	}
	return ActionStatusApproved
}

// ActionFilter selects actions for operator listings.
type ActionFilter struct {
	Status *ActionStatus
	UserID *uuid.UUID
	RuleID *uuid.UUID
	Limit  int
	Offset int
}

// ActionTransition describes a conditional status change.
type ActionTransition struct {
	// From lists the statuses the action must currently be in.
	From       []ActionStatus
	To         ActionStatus
	Outcome    Outcome
	ExecutedAt *time.Time
	Now        time.Time
}

// ExecutionResult is returned by the executor for one action.
type ExecutionResult struct {
	ActionID uuid.UUID
	Success  bool
	Outcome  Outcome
	Error    string
}

// BatchResult summarises a bounded batch pass (classify or execute).
// Skipped counts units not started because the pass deadline expired.
type BatchResult struct {
	Total   int
	Success int
	Failed  int
	Skipped int
}
