package rest

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/heartmarshall/learning-oracle/internal/domain"
	"github.com/heartmarshall/learning-oracle/internal/service/executor"
)

type actionService interface {
	ListActions(ctx context.Context, input executor.ListActionsInput) ([]domain.Action, error)
	GetAction(ctx context.Context, id uuid.UUID) (*domain.Action, error)
	CreateManualAction(ctx context.Context, input executor.CreateManualActionInput) (*domain.Action, error)
	ApproveAction(ctx context.Context, id uuid.UUID) (*domain.Action, error)
	RejectAction(ctx context.Context, id uuid.UUID, reason string) (*domain.Action, error)
	ReapproveFailedAction(ctx context.Context, id uuid.UUID) (*domain.Action, error)
	ExecuteAction(ctx context.Context, actionID uuid.UUID) (domain.ExecutionResult, error)
}

// ActionHandler serves operator endpoints over actions.
type ActionHandler struct {
	actions actionService
	log     *slog.Logger
}

// NewActionHandler creates an ActionHandler.
func NewActionHandler(actions actionService, logger *slog.Logger) *ActionHandler {
	return &ActionHandler{actions: actions, log: logger.With("handler", "actions")}
}

// List returns actions, newest first.
// GET /api/actions?status=pending&userId=&ruleId=&limit=50&offset=0
func (h *ActionHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	var input executor.ListActionsInput

	if v := q.Get("status"); v != "" {
		status := domain.ActionStatus(v)
		input.Status = &status
	}
	for name, dst := range map[string]**uuid.UUID{"userId": &input.UserID, "ruleId": &input.RuleID} {
		v := q.Get(name)
		if v == "" {
			continue
		}
		id, err := uuid.Parse(v)
		if err != nil {
			writeDomainError(w, r, h.log, domain.NewValidationError(name, "must be a UUID"))
			return
		}
		*dst = &id
	}

	var err error
	if input.Limit, err = queryInt(r, "limit", 0); err != nil {
		writeDomainError(w, r, h.log, err)
		return
	}
	if input.Offset, err = queryInt(r, "offset", 0); err != nil {
		writeDomainError(w, r, h.log, err)
		return
	}

	list, err := h.actions.ListActions(r.Context(), input)
	if err != nil {
		writeDomainError(w, r, h.log, err)
		return
	}

	out := make([]ActionResponse, len(list))
	for i, a := range list {
		out[i] = toActionResponse(a)
	}
	writeJSON(w, http.StatusOK, out)
}

type createActionRequest struct {
	UserID      uuid.UUID  `json:"userId"`
	ActionType  string     `json:"actionType"`
	Content     string     `json:"content"`
	Subject     *string    `json:"subject"`
	Priority    *int       `json:"priority"`
	Status      *string    `json:"status"`
	ScheduledAt *time.Time `json:"scheduledAt"`
}

// Create inserts a manual action.
// POST /api/actions
func (h *ActionHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createActionRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeDomainError(w, r, h.log, err)
		return
	}

	input := executor.CreateManualActionInput{
		UserID:      req.UserID,
		ActionType:  domain.ActionType(req.ActionType),
		Content:     req.Content,
		Subject:     req.Subject,
		Priority:    req.Priority,
		ScheduledAt: req.ScheduledAt,
	}
	if req.Status != nil {
		status := domain.ActionStatus(*req.Status)
		input.Status = &status
	}

	a, err := h.actions.CreateManualAction(r.Context(), input)
	if err != nil {
		writeDomainError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusCreated, toActionResponse(*a))
}

// Get returns one action.
// GET /api/actions/{actionID}
func (h *ActionHandler) Get(w http.ResponseWriter, r *http.Request) {
	h.withAction(w, r, h.actions.GetAction)
}

// Approve moves a pending action to approved.
// POST /api/actions/{actionID}/approve
func (h *ActionHandler) Approve(w http.ResponseWriter, r *http.Request) {
	h.withAction(w, r, h.actions.ApproveAction)
}

// Reapprove queues a fresh copy of a failed action.
// POST /api/actions/{actionID}/reapprove
func (h *ActionHandler) Reapprove(w http.ResponseWriter, r *http.Request) {
	h.withAction(w, r, h.actions.ReapproveFailedAction)
}

type rejectRequest struct {
	Reason string `json:"reason"`
}

// Reject cancels a pending or approved action. The body is optional.
// POST /api/actions/{actionID}/reject
func (h *ActionHandler) Reject(w http.ResponseWriter, r *http.Request) {
	var req rejectRequest
	if r.ContentLength != 0 {
		if err := decodeJSON(w, r, &req); err != nil {
			writeDomainError(w, r, h.log, err)
			return
		}
	}

	h.withAction(w, r, func(ctx context.Context, id uuid.UUID) (*domain.Action, error) {
		return h.actions.RejectAction(ctx, id, req.Reason)
	})
}

// Execute dispatches one approved action now. A failed dispatch is reported
// as 502 with the stored outcome.
// POST /api/actions/{actionID}/execute
func (h *ActionHandler) Execute(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "actionID")
	if err != nil {
		writeDomainError(w, r, h.log, err)
		return
	}

	res, err := h.actions.ExecuteAction(r.Context(), id)
	resp := ExecutionResponse{ActionID: res.ActionID, Success: res.Success, Outcome: res.Outcome, Error: res.Error}

	var de *domain.DispatchError
	switch {
	case errors.As(err, &de):
		writeJSON(w, http.StatusBadGateway, resp)
	case err != nil:
		writeDomainError(w, r, h.log, err)
	default:
		writeJSON(w, http.StatusOK, resp)
	}
}

func (h *ActionHandler) withAction(w http.ResponseWriter, r *http.Request, op func(context.Context, uuid.UUID) (*domain.Action, error)) {
	id, err := pathUUID(r, "actionID")
	if err != nil {
		writeDomainError(w, r, h.log, err)
		return
	}

	a, err := op(r.Context(), id)
	if err != nil {
		writeDomainError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, toActionResponse(*a))
}
