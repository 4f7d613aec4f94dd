package classifier

import "github.com/heartmarshall/learning-oracle/internal/domain"

const (
	DefaultLimit = 50
	MaxLimit     = 200
)

// UsersBySegmentInput holds the parameters for listing one engagement bucket.
type UsersBySegmentInput struct {
	Level  domain.EngagementLevel
	Limit  int
	Offset int
}

// Validate checks all fields and collects all errors.
func (i UsersBySegmentInput) Validate() error {
	var errs []domain.FieldError
	if !i.Level.IsValid() {
		errs = append(errs, domain.FieldError{Field: "level", Message: "unknown engagement level"})
	}
	errs = append(errs, validatePage(i.Limit, i.Offset)...)
	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// AtRiskInput holds the parameters for listing at-risk users.
// A nil MinRisk uses the configured threshold.
type AtRiskInput struct {
	MinRisk *int
	Limit   int
}

// Validate checks all fields and collects all errors.
func (i AtRiskInput) Validate() error {
	var errs []domain.FieldError
	if i.MinRisk != nil && (*i.MinRisk < 0 || *i.MinRisk > 100) {
		errs = append(errs, domain.FieldError{Field: "min_risk", Message: "must be between 0 and 100"})
	}
	errs = append(errs, validatePage(i.Limit, 0)...)
	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

func validatePage(limit, offset int) []domain.FieldError {
	var errs []domain.FieldError
	if limit < 0 {
		errs = append(errs, domain.FieldError{Field: "limit", Message: "must be non-negative"})
	}
	if limit > MaxLimit {
		errs = append(errs, domain.FieldError{Field: "limit", Message: "max 200"})
	}
	if offset < 0 {
		errs = append(errs, domain.FieldError{Field: "offset", Message: "must be non-negative"})
	}
	return errs
}
