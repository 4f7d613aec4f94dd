package rest

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/heartmarshall/learning-oracle/internal/domain"
	"github.com/heartmarshall/learning-oracle/internal/service/classifier"
)

type segmentService interface {
	ClassifyUser(ctx context.Context, userID uuid.UUID) (*domain.Segment, error)
	GetSegment(ctx context.Context, userID uuid.UUID) (*domain.Segment, error)
	GetSegmentStats(ctx context.Context) (domain.SegmentStats, error)
	GetUsersBySegment(ctx context.Context, input classifier.UsersBySegmentInput) ([]domain.Segment, error)
	GetAtRiskUsers(ctx context.Context, input classifier.AtRiskInput) ([]domain.Segment, error)
}

// SegmentHandler serves classification endpoints.
type SegmentHandler struct {
	segments segmentService
	log      *slog.Logger
}

// NewSegmentHandler creates a SegmentHandler.
func NewSegmentHandler(segments segmentService, logger *slog.Logger) *SegmentHandler {
	return &SegmentHandler{segments: segments, log: logger.With("handler", "segments")}
}

// Classify scores one user now. Excluded users yield 204.
// POST /api/users/{userID}/classify
func (h *SegmentHandler) Classify(w http.ResponseWriter, r *http.Request) {
	userID, err := pathUUID(r, "userID")
	if err != nil {
		writeDomainError(w, r, h.log, err)
		return
	}

	seg, err := h.segments.ClassifyUser(r.Context(), userID)
	if err != nil {
		writeDomainError(w, r, h.log, err)
		return
	}
	if seg == nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	writeJSON(w, http.StatusOK, toSegmentResponse(*seg))
}

// Get returns the stored segment of a user.
// GET /api/users/{userID}/segment
func (h *SegmentHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, err := pathUUID(r, "userID")
	if err != nil {
		writeDomainError(w, r, h.log, err)
		return
	}

	seg, err := h.segments.GetSegment(r.Context(), userID)
	if err != nil {
		writeDomainError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, toSegmentResponse(*seg))
}

// Stats returns the engagement distribution.
// GET /api/segments/stats
func (h *SegmentHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.segments.GetSegmentStats(r.Context())
	if err != nil {
		writeDomainError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, toSegmentStatsResponse(stats))
}

// AtRisk lists users at or above a churn risk.
// GET /api/segments/at-risk?minRisk=70&limit=50
func (h *SegmentHandler) AtRisk(w http.ResponseWriter, r *http.Request) {
	limit, err := queryInt(r, "limit", 0)
	if err != nil {
		writeDomainError(w, r, h.log, err)
		return
	}

	input := classifier.AtRiskInput{Limit: limit}
	if r.URL.Query().Has("minRisk") {
		minRisk, err := queryInt(r, "minRisk", 0)
		if err != nil {
			writeDomainError(w, r, h.log, err)
			return
		}
		input.MinRisk = &minRisk
	}

	segs, err := h.segments.GetAtRiskUsers(r.Context(), input)
	if err != nil {
		writeDomainError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, toSegmentResponses(segs))
}

// ByLevel lists users of one engagement bucket.
// GET /api/segments/{level}/users?limit=50&offset=0
func (h *SegmentHandler) ByLevel(w http.ResponseWriter, r *http.Request) {
	limit, err := queryInt(r, "limit", 0)
	if err != nil {
		writeDomainError(w, r, h.log, err)
		return
	}
	offset, err := queryInt(r, "offset", 0)
	if err != nil {
		writeDomainError(w, r, h.log, err)
		return
	}

	segs, err := h.segments.GetUsersBySegment(r.Context(), classifier.UsersBySegmentInput{
		Level:  domain.EngagementLevel(chi.URLParam(r, "level")),
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		writeDomainError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, toSegmentResponses(segs))
}
