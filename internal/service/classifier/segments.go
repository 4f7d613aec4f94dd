package classifier

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/heartmarshall/learning-oracle/internal/domain"
)

// GetSegmentStats returns the engagement distribution and the number of
// users at or above the configured at-risk threshold.
func (s *Service) GetSegmentStats(ctx context.Context) (domain.SegmentStats, error) {
	stats, err := s.segments.Stats(ctx, s.cfg.AtRiskThreshold)
	if err != nil {
		return domain.SegmentStats{}, fmt.Errorf("segment stats: %w", err)
	}
	return stats, nil
}

// GetUsersBySegment lists the segments of one engagement bucket.
func (s *Service) GetUsersBySegment(ctx context.Context, input UsersBySegmentInput) ([]domain.Segment, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	limit := input.Limit
	if limit == 0 {
		limit = DefaultLimit
	}

	segs, err := s.segments.ListByLevel(ctx, input.Level, limit, input.Offset)
	if err != nil {
		return nil, fmt.Errorf("list segments by level: %w", err)
	}
	return segs, nil
}

// GetAtRiskUsers lists segments with churn risk of at least minRisk, highest first.
func (s *Service) GetAtRiskUsers(ctx context.Context, input AtRiskInput) ([]domain.Segment, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	minRisk := s.cfg.AtRiskThreshold
	if input.MinRisk != nil {
		minRisk = *input.MinRisk
	}
	limit := input.Limit
	if limit == 0 {
		limit = DefaultLimit
	}

	segs, err := s.segments.ListAtRisk(ctx, minRisk, limit)
	if err != nil {
		return nil, fmt.Errorf("list at-risk segments: %w", err)
	}
	return segs, nil
}

// GetSegment returns the stored segment of a user.
func (s *Service) GetSegment(ctx context.Context, userID uuid.UUID) (*domain.Segment, error) {
	seg, err := s.segments.GetByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get segment: %w", err)
	}
	return seg, nil
}
