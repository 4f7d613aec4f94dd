package classifier

import "github.com/heartmarshall/learning-oracle/internal/domain"

// NoLoginDays stands in for daysSinceLogin when a user never logged in.
const NoLoginDays = 999

// Inputs are the behavioral facts a classification is computed from.
type Inputs struct {
	DaysSinceLogin      int
	LessonsThisWeek     int
	TotalEventsThisWeek int
	AvgProgress         float64
	EnrollmentCount     int
	OnboardingCompleted bool
	HasCertificate      bool
}

// Result is the outcome of Score.
type Result struct {
	Level          domain.EngagementLevel
	Score          int
	ChurnRisk      int
	ChurnReason    *string
	Lifecycle      domain.Lifecycle
	CompletionProb int
}

// Score classifies a user. It is a pure function of in.
func Score(in Inputs) Result {
	level, score := engagement(in)
	risk, reason := churnRisk(in)
	return Result{
		Level:          level,
		Score:          score,
		ChurnRisk:      risk,
		ChurnReason:    reason,
		Lifecycle:      lifecycle(in),
		CompletionProb: 100 - risk,
	}
}

// engagement returns the first matching bucket; the order of checks matters.
func engagement(in Inputs) (domain.EngagementLevel, int) {
	d := in.DaysSinceLogin
	switch {
	case d > 30:
		return domain.EngagementLost, 0
	case d > 14:
		return domain.EngagementDormant, 15
	case in.LessonsThisWeek >= 3 && d <= 2:
		return domain.EngagementActive, 90
	case in.LessonsThisWeek >= 1 && in.TotalEventsThisWeek >= 10:
		return domain.EngagementActive, 75
	case d <= 7 && in.TotalEventsThisWeek >= 3:
		return domain.EngagementModerate, 55
	case d <= 14:
		return domain.EngagementDormant, 30
	default:
		return domain.EngagementNew, 50
	}
}

// churnRisk applies the base risk and its adjustments in a fixed order.
// The lesson reduction runs last and clears any reason set before it.
func churnRisk(in Inputs) (int, *string) {
	d := in.DaysSinceLogin

	var risk int
	var reason *string
	switch {
	case d > 30:
		risk, reason = 95, ptr(domain.ChurnReasonInactive30)
	case d > 14:
		risk, reason = 75, ptr(domain.ChurnReasonInactive14)
	case d > 7:
		risk, reason = 50, ptr(domain.ChurnReasonInactive7)
	case d > 3:
		risk, reason = 30, ptr(domain.ChurnReasonInactivity)
	default:
		risk = 10
	}

	if in.AvgProgress == 0 && d > 3 {
		risk = min(100, risk+20)
		reason = ptr(domain.ChurnReasonNoProgress)
	}

	if d <= 3 && in.LessonsThisWeek == 0 && in.TotalEventsThisWeek < 5 {
		risk = min(100, risk+15)
		reason = ptr(domain.ChurnReasonStuck)
	}

	if in.LessonsThisWeek >= 2 {
		risk = max(0, risk-30)
		reason = nil
	}

	return max(0, min(100, risk)), reason
}

func lifecycle(in Inputs) domain.Lifecycle {
	switch {
	case in.HasCertificate:
		return domain.LifecycleAlumni
	case in.AvgProgress >= 90:
		return domain.LifecycleGraduate
	case in.AvgProgress >= 25:
		return domain.LifecycleEngaged
	case in.OnboardingCompleted || in.AvgProgress > 0:
		return domain.LifecycleActive
	case in.EnrollmentCount >= 1:
		return domain.LifecycleNew
	default:
		return domain.LifecycleLead
	}
}

func ptr[T any](v T) *T { return &v }
