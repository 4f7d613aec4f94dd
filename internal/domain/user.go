package domain

import (
	"time"

	"github.com/google/uuid"
)

// UserProfile is the engine's read-only view of a learner, assembled from the
// user store and the progress bookkeeping owned by other subsystems.
type UserProfile struct {
	ID                  uuid.UUID
	Email               string
	Name                string
	IsTest              bool
	LastLoginAt         *time.Time
	OnboardingCompleted bool
	EnrollmentCount     int
	AvgProgress         float64
	LatestProgress      *float64
	HasCertificate      bool
	CreatedAt           time.Time
}

// IsExcluded reports whether the user must be skipped by every automation pass.
func (u *UserProfile) IsExcluded() bool {
	return u.IsTest
}
