package rest

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/heartmarshall/learning-oracle/internal/domain"
)

type batchClassifier interface {
	ClassifyBatch(ctx context.Context, limit int) (domain.BatchResult, error)
}

type ruleEvaluator interface {
	EvaluateAllActiveRules(ctx context.Context) (domain.EvaluationSummary, error)
}

type actionDrainer interface {
	ExecuteApprovedActions(ctx context.Context, limit int) (domain.BatchResult, error)
	ExpirePending(ctx context.Context, olderThan time.Duration) (int, error)
}

// PassHandler triggers batch passes on demand. Each pass is bounded by
// timeout in addition to the request context.
type PassHandler struct {
	classifier batchClassifier
	evaluator  ruleEvaluator
	executor   actionDrainer
	timeout    time.Duration
	log        *slog.Logger
}

// NewPassHandler creates a PassHandler.
func NewPassHandler(
	classifier batchClassifier,
	evaluator ruleEvaluator,
	executor actionDrainer,
	timeout time.Duration,
	logger *slog.Logger,
) *PassHandler {
	return &PassHandler{
		classifier: classifier,
		evaluator:  evaluator,
		executor:   executor,
		timeout:    timeout,
		log:        logger.With("handler", "passes"),
	}
}

func (h *PassHandler) passContext(r *http.Request) (context.Context, context.CancelFunc) {
	if h.timeout <= 0 {
		return context.WithCancel(r.Context())
	}
	return context.WithTimeout(r.Context(), h.timeout)
}

// Classify runs a classification batch.
// POST /api/passes/classify?limit=
func (h *PassHandler) Classify(w http.ResponseWriter, r *http.Request) {
	limit, err := queryInt(r, "limit", 0)
	if err != nil {
		writeDomainError(w, r, h.log, err)
		return
	}

	ctx, cancel := h.passContext(r)
	defer cancel()

	res, err := h.classifier.ClassifyBatch(ctx, limit)
	if err != nil {
		writeDomainError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, toBatchResponse(res))
}

// Evaluate runs every active rule.
// POST /api/passes/evaluate
func (h *PassHandler) Evaluate(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := h.passContext(r)
	defer cancel()

	res, err := h.evaluator.EvaluateAllActiveRules(ctx)
	if err != nil {
		writeDomainError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, SummaryResponse{
		RulesEvaluated: res.RulesEvaluated,
		RulesFailed:    res.RulesFailed,
		TotalTriggered: res.TotalTriggered,
	})
}

// Execute drains approved, due actions.
// POST /api/passes/execute?limit=
func (h *PassHandler) Execute(w http.ResponseWriter, r *http.Request) {
	limit, err := queryInt(r, "limit", 0)
	if err != nil {
		writeDomainError(w, r, h.log, err)
		return
	}

	ctx, cancel := h.passContext(r)
	defer cancel()

	res, err := h.executor.ExecuteApprovedActions(ctx, limit)
	if err != nil {
		writeDomainError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, toBatchResponse(res))
}

// Expire rejects stale pending actions.
// POST /api/passes/expire?olderThan=168h
func (h *PassHandler) Expire(w http.ResponseWriter, r *http.Request) {
	var olderThan time.Duration
	if v := r.URL.Query().Get("olderThan"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil || d <= 0 {
			writeDomainError(w, r, h.log, domain.NewValidationError("olderThan", "must be a positive duration"))
			return
		}
		olderThan = d
	}

	n, err := h.executor.ExpirePending(r.Context(), olderThan)
	if err != nil {
		writeDomainError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"expired": n})
}
