package rest

import (
	"time"

	"github.com/google/uuid"
	"github.com/heartmarshall/learning-oracle/internal/domain"
)

// EventResponse is the JSON form of domain.Event.
type EventResponse struct {
	ID         uuid.UUID      `json:"id"`
	UserID     uuid.UUID      `json:"userId"`
	Type       string         `json:"type"`
	Metadata   map[string]any `json:"metadata"`
	Source     string         `json:"source"`
	SessionID  *string        `json:"sessionId,omitempty"`
	OccurredAt time.Time      `json:"occurredAt"`
}

func toEventResponse(e domain.Event) EventResponse {
	return EventResponse{
		ID:         e.ID,
		UserID:     e.UserID,
		Type:       e.Type,
		Metadata:   e.Metadata,
		Source:     e.Source.String(),
		SessionID:  e.SessionID,
		OccurredAt: e.OccurredAt,
	}
}

// SegmentResponse is the JSON form of domain.Segment.
type SegmentResponse struct {
	UserID          uuid.UUID `json:"userId"`
	EngagementLevel string    `json:"engagementLevel"`
	EngagementScore int       `json:"engagementScore"`
	ChurnRisk       int       `json:"churnRisk"`
	ChurnReason     *string   `json:"churnReason,omitempty"`
	Lifecycle       string    `json:"lifecycle"`
	CompletionProb  int       `json:"completionProb"`
	LastAnalyzed    time.Time `json:"lastAnalyzed"`
}

func toSegmentResponse(s domain.Segment) SegmentResponse {
	return SegmentResponse{
		UserID:          s.UserID,
		EngagementLevel: string(s.EngagementLevel),
		EngagementScore: s.EngagementScore,
		ChurnRisk:       s.ChurnRisk,
		ChurnReason:     s.ChurnReason,
		Lifecycle:       string(s.Lifecycle),
		CompletionProb:  s.CompletionProb,
		LastAnalyzed:    s.LastAnalyzed,
	}
}

func toSegmentResponses(segments []domain.Segment) []SegmentResponse {
	out := make([]SegmentResponse, len(segments))
	for i, s := range segments {
		out[i] = toSegmentResponse(s)
	}
	return out
}

// SegmentStatsResponse is the JSON form of domain.SegmentStats.
type SegmentStatsResponse struct {
	Distribution map[string]int `json:"distribution"`
	AtRiskCount  int            `json:"atRiskCount"`
	Total        int            `json:"total"`
}

func toSegmentStatsResponse(s domain.SegmentStats) SegmentStatsResponse {
	dist := make(map[string]int, len(domain.EngagementLevels))
	for _, l := range domain.EngagementLevels {
		dist[string(l)] = s.Distribution[l]
	}
	return SegmentStatsResponse{Distribution: dist, AtRiskCount: s.AtRiskCount, Total: s.Total}
}

// RuleResponse is the JSON form of domain.Rule.
type RuleResponse struct {
	ID             uuid.UUID            `json:"id"`
	Name           string               `json:"name"`
	Trigger        string               `json:"trigger"`
	Conditions     domain.ConditionSpec `json:"conditions"`
	ActionType     string               `json:"actionType"`
	ActionTemplate *string              `json:"actionTemplate,omitempty"`
	ActionSubject  *string              `json:"actionSubject,omitempty"`
	ActionContent  string               `json:"actionContent"`
	Priority       int                  `json:"priority"`
	CooldownHours  int                  `json:"cooldownHours"`
	MaxPerUser     *int                 `json:"maxPerUser,omitempty"`
	IsActive       bool                 `json:"isActive"`
	TimesTriggered int                  `json:"timesTriggered"`
	LastTriggered  *time.Time           `json:"lastTriggered,omitempty"`
	CreatedAt      time.Time            `json:"createdAt"`
	UpdatedAt      time.Time            `json:"updatedAt"`
}

func toRuleResponse(r domain.Rule) RuleResponse {
	return RuleResponse{
		ID:             r.ID,
		Name:           r.Name,
		Trigger:        string(r.Trigger),
		Conditions:     r.Conditions,
		ActionType:     r.ActionType.String(),
		ActionTemplate: r.ActionTemplate,
		ActionSubject:  r.ActionSubject,
		ActionContent:  r.ActionContent,
		Priority:       r.Priority,
		CooldownHours:  r.CooldownHours,
		MaxPerUser:     r.MaxPerUser,
		IsActive:       r.IsActive,
		TimesTriggered: r.TimesTriggered,
		LastTriggered:  r.LastTriggered,
		CreatedAt:      r.CreatedAt,
		UpdatedAt:      r.UpdatedAt,
	}
}

// ActionResponse is the JSON form of domain.Action.
type ActionResponse struct {
	ID              uuid.UUID      `json:"id"`
	UserID          uuid.UUID      `json:"userId"`
	RuleID          *uuid.UUID     `json:"ruleId"`
	ActionType      string         `json:"actionType"`
	RenderedContent string         `json:"renderedContent"`
	Subject         *string        `json:"subject,omitempty"`
	Template        *string        `json:"template,omitempty"`
	Priority        int            `json:"priority"`
	Status          string         `json:"status"`
	ScheduledAt     *time.Time     `json:"scheduledAt,omitempty"`
	ExecutedAt      *time.Time     `json:"executedAt,omitempty"`
	Outcome         domain.Outcome `json:"outcome,omitempty"`
	CreatedAt       time.Time      `json:"createdAt"`
	UpdatedAt       time.Time      `json:"updatedAt"`
}

func toActionResponse(a domain.Action) ActionResponse {
	return ActionResponse{
		ID:              a.ID,
		UserID:          a.UserID,
		RuleID:          a.RuleID,
		ActionType:      a.ActionType.String(),
		RenderedContent: a.RenderedContent,
		Subject:         a.Subject,
		Template:        a.Template,
		Priority:        a.Priority,
		Status:          a.Status.String(),
		ScheduledAt:     a.ScheduledAt,
		ExecutedAt:      a.ExecutedAt,
		Outcome:         a.Outcome,
		CreatedAt:       a.CreatedAt,
		UpdatedAt:       a.UpdatedAt,
	}
}

// BatchResponse is the JSON form of domain.BatchResult.
type BatchResponse struct {
	Total   int `json:"total"`
	Success int `json:"success"`
	Failed  int `json:"failed"`
	Skipped int `json:"skipped"`
}

func toBatchResponse(b domain.BatchResult) BatchResponse {
	return BatchResponse{Total: b.Total, Success: b.Success, Failed: b.Failed, Skipped: b.Skipped}
}

// EvaluationResponse is the JSON form of domain.EvaluationResult.
type EvaluationResponse struct {
	RuleID     uuid.UUID `json:"ruleId"`
	Candidates int       `json:"candidates"`
	Matched    int       `json:"matched"`
	Throttled  int       `json:"throttled"`
	Failed     int       `json:"failed"`
	Triggered  int       `json:"triggered"`
}

// SummaryResponse is the JSON form of domain.EvaluationSummary.
type SummaryResponse struct {
	RulesEvaluated int `json:"rulesEvaluated"`
	RulesFailed    int `json:"rulesFailed"`
	TotalTriggered int `json:"totalTriggered"`
}

// ExecutionResponse is the JSON form of domain.ExecutionResult.
type ExecutionResponse struct {
	ActionID uuid.UUID      `json:"actionId"`
	Success  bool           `json:"success"`
	Outcome  domain.Outcome `json:"outcome,omitempty"`
	Error    string         `json:"error,omitempty"`
}
