package domain

import (
	"time"

	"github.com/google/uuid"
)

// Churn reason codes.
const (
	ChurnReasonInactive30 = "inactive_30_days"
	ChurnReasonInactive14 = "inactive_14_days"
	ChurnReasonInactive7  = "inactive_7_days"
	ChurnReasonInactivity = "inactivity"
	ChurnReasonNoProgress = "no_progress"
	ChurnReasonStuck      = "stuck"
)

// Segment is the per-user classification result. One row per user.
type Segment struct {
	UserID          uuid.UUID
	EngagementLevel EngagementLevel
	EngagementScore int
	ChurnRisk       int
	ChurnReason     *string
	Lifecycle       Lifecycle
	CompletionProb  int
	LastAnalyzed    time.Time
}

// SameClassification reports whether two segments carry identical scores,
// ignoring LastAnalyzed.
func (s Segment) SameClassification(o Segment) bool {
	if s.UserID != o.UserID ||
		s.EngagementLevel != o.EngagementLevel ||
		s.EngagementScore != o.EngagementScore ||
		s.ChurnRisk != o.ChurnRisk ||
		s.Lifecycle != o.Lifecycle ||
		s.CompletionProb != o.CompletionProb {
		return false
	}
	if (s.ChurnReason == nil) != (o.ChurnReason == nil) {
		return false
	}
	return s.ChurnReason == nil || *s.ChurnReason == *o.ChurnReason
}

// SegmentStats summarises the segment table.
type SegmentStats struct {
	Distribution map[EngagementLevel]int
	AtRiskCount  int
	Total        int
}
