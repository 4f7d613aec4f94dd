package rest

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/heartmarshall/learning-oracle/internal/domain"
	"github.com/heartmarshall/learning-oracle/internal/service/rules"
)

type ruleService interface {
	CreateRule(ctx context.Context, input rules.CreateRuleInput) (*domain.Rule, error)
	ToggleRule(ctx context.Context, id uuid.UUID) (*domain.Rule, error)
	GetRules(ctx context.Context, activeOnly bool) ([]domain.Rule, error)
	GetRule(ctx context.Context, id uuid.UUID) (*domain.Rule, error)
	EvaluateRule(ctx context.Context, ruleID uuid.UUID) (domain.EvaluationResult, error)
}

// RuleHandler serves rule management endpoints.
type RuleHandler struct {
	rules ruleService
	log   *slog.Logger
}

// NewRuleHandler creates a RuleHandler.
func NewRuleHandler(rules ruleService, logger *slog.Logger) *RuleHandler {
	return &RuleHandler{rules: rules, log: logger.With("handler", "rules")}
}

// List returns rules, optionally only active ones.
// GET /api/rules?active=true
func (h *RuleHandler) List(w http.ResponseWriter, r *http.Request) {
	activeOnly := r.URL.Query().Get("active") == "true"

	list, err := h.rules.GetRules(r.Context(), activeOnly)
	if err != nil {
		writeDomainError(w, r, h.log, err)
		return
	}

	out := make([]RuleResponse, len(list))
	for i, rule := range list {
		out[i] = toRuleResponse(rule)
	}
	writeJSON(w, http.StatusOK, out)
}

// Create stores a new rule.
// POST /api/rules
func (h *RuleHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input rules.CreateRuleInput
	if err := decodeJSON(w, r, &input); err != nil {
		writeDomainError(w, r, h.log, err)
		return
	}

	rule, err := h.rules.CreateRule(r.Context(), input)
	if err != nil {
		writeDomainError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusCreated, toRuleResponse(*rule))
}

// Get returns one rule.
// GET /api/rules/{ruleID}
func (h *RuleHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "ruleID")
	if err != nil {
		writeDomainError(w, r, h.log, err)
		return
	}

	rule, err := h.rules.GetRule(r.Context(), id)
	if err != nil {
		writeDomainError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, toRuleResponse(*rule))
}

// Toggle flips a rule's active flag.
// POST /api/rules/{ruleID}/toggle
func (h *RuleHandler) Toggle(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "ruleID")
	if err != nil {
		writeDomainError(w, r, h.log, err)
		return
	}

	rule, err := h.rules.ToggleRule(r.Context(), id)
	if err != nil {
		writeDomainError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, toRuleResponse(*rule))
}

// Evaluate runs one rule against its candidates.
// POST /api/rules/{ruleID}/evaluate
func (h *RuleHandler) Evaluate(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "ruleID")
	if err != nil {
		writeDomainError(w, r, h.log, err)
		return
	}

	res, err := h.rules.EvaluateRule(r.Context(), id)
	if err != nil {
		writeDomainError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, EvaluationResponse{
		RuleID:     res.RuleID,
		Candidates: res.Candidates,
		Matched:    res.Matched,
		Throttled:  res.Throttled,
		Failed:     res.Failed,
		Triggered:  res.Triggered,
	})
}
