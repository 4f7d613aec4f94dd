package domain

// EventSource identifies the channel that produced a behavioral event.
type EventSource string

const (
	EventSourceWeb   EventSource = "web"
	EventSourceEmail EventSource = "email"
	EventSourceDM    EventSource = "dm"
	EventSourceAPI   EventSource = "api"
)

func (s EventSource) String() string { return string(s) }

func (s EventSource) IsValid() bool {
	switch s {
	case EventSourceWeb, EventSourceEmail, EventSourceDM, EventSourceAPI:
		return true
	}
	return false
}

// EngagementLevel is the coarse bucket of recent activity intensity.
type EngagementLevel string

const (
	EngagementNew      EngagementLevel = "new"
	EngagementActive   EngagementLevel = "active"
	EngagementModerate EngagementLevel = "moderate"
	EngagementDormant  EngagementLevel = "dormant"
	EngagementLost     EngagementLevel = "lost"
)

// EngagementLevels lists every level in display order.
var EngagementLevels = []EngagementLevel{
	EngagementNew, EngagementActive, EngagementModerate, EngagementDormant, EngagementLost,
}

func (l EngagementLevel) String() string { return string(l) }

func (l EngagementLevel) IsValid() bool {
	switch l {
	case EngagementNew, EngagementActive, EngagementModerate, EngagementDormant, EngagementLost:
		return true
	}
	return false
}

// Lifecycle is the coarse funnel position of a user.
type Lifecycle string

const (
	LifecycleLead     Lifecycle = "lead"
	LifecycleNew      Lifecycle = "new"
	LifecycleActive   Lifecycle = "active"
	LifecycleEngaged  Lifecycle = "engaged"
	LifecycleGraduate Lifecycle = "graduate"
	LifecycleAlumni   Lifecycle = "alumni"
)

func (l Lifecycle) String() string { return string(l) }

func (l Lifecycle) IsValid() bool {
	switch l {
	case LifecycleLead, LifecycleNew, LifecycleActive, LifecycleEngaged, LifecycleGraduate, LifecycleAlumni:
		return true
	}
	return false
}

// TriggerType describes how a rule selects its candidates.
type TriggerType string

const (
	TriggerEventBased   TriggerType = "event_based"
	TriggerSegmentBased TriggerType = "segment_based"
	TriggerScheduled    TriggerType = "scheduled"
)

func (t TriggerType) String() string { return string(t) }

func (t TriggerType) IsValid() bool {
	switch t {
	case TriggerEventBased, TriggerSegmentBased, TriggerScheduled:
		return true
	}
	return false
}

// ActionType is the closed set of side effects the executor can dispatch.
type ActionType string

const (
	ActionTypeEmail ActionType = "email"
	ActionTypeDM    ActionType = "dm"
	ActionTypePush  ActionType = "push"
	ActionTypeTag   ActionType = "tag"
)

// ActionTypes lists every dispatchable action type.
var ActionTypes = []ActionType{ActionTypeEmail, ActionTypeDM, ActionTypePush, ActionTypeTag}

func (t ActionType) String() string { return string(t) }

func (t ActionType) IsValid() bool {
	switch t {
	case ActionTypeEmail, ActionTypeDM, ActionTypePush, ActionTypeTag:
		return true
	}
	return false
}

// SentEventType returns the event type recorded after a successful dispatch.
func (t ActionType) SentEventType() string {
	return "oracle_" + string(t) + "_sent"
}

// ActionStatus is the lifecycle state of an Action.
type ActionStatus string

const (
	ActionStatusPending  ActionStatus = "pending"
	ActionStatusApproved ActionStatus = "approved"
	ActionStatusExecuted ActionStatus = "executed"
	ActionStatusRejected ActionStatus = "rejected"
	ActionStatusFailed   ActionStatus = "failed"
)

func (s ActionStatus) String() string { return string(s) }

func (s ActionStatus) IsValid() bool {
	switch s {
	case ActionStatusPending, ActionStatusApproved, ActionStatusExecuted, ActionStatusRejected, ActionStatusFailed:
		return true
	}
	return false
}

// IsTerminal reports whether no further transition is allowed.
func (s ActionStatus) IsTerminal() bool {
	switch s {
	case ActionStatusExecuted, ActionStatusRejected, ActionStatusFailed:
		return true
	}
	return false
}

// CanTransitionTo reports whether moving from s to next is allowed.
// Open states may only move forward; terminal states never change.
func (s ActionStatus) CanTransitionTo(next ActionStatus) bool {
	switch s {
	case ActionStatusPending:
		return next == ActionStatusApproved || next.IsTerminal()
	case ActionStatusApproved:
		return next.IsTerminal()
	}
	return false
}

// UserRole represents the authorization level of an operator.
type UserRole string

const (
	UserRoleUser  UserRole = "user"
	UserRoleAdmin UserRole = "admin"
)

func (r UserRole) String() string { return string(r) }

func (r UserRole) IsValid() bool {
	switch r {
	case UserRoleUser, UserRoleAdmin:
		return true
	}
	return false
}

func (r UserRole) IsAdmin() bool {
	return r == UserRoleAdmin
}
