// Package ctxutil carries request-scoped values between middleware and
// handlers.
package ctxutil

import (
	"context"

	"github.com/google/uuid"

	"github.com/heartmarshall/learning-oracle/internal/domain"
)

type ctxKey string

const (
	operatorKey  ctxKey = "operator"
	requestIDKey ctxKey = "request_id"
)

// AuthMethod names how an operator authenticated.
type AuthMethod string

const (
	AuthMethodJWT    AuthMethod = "jwt"
	AuthMethodAPIKey AuthMethod = "api_key"
)

// Operator is the authenticated caller of the admin API. ID is uuid.Nil for
// API key callers.
type Operator struct {
	ID     uuid.UUID
	Role   domain.UserRole
	Method AuthMethod
}

// WithOperator stores the operator in the context.
func WithOperator(ctx context.Context, op Operator) context.Context {
	return context.WithValue(ctx, operatorKey, op)
}

// OperatorFromCtx extracts the operator. ok is false if absent.
func OperatorFromCtx(ctx context.Context) (Operator, bool) {
	op, ok := ctx.Value(operatorKey).(Operator)
	return op, ok
}

// IsAdminCtx reports whether the caller authenticated with the admin role.
func IsAdminCtx(ctx context.Context) bool {
	op, ok := OperatorFromCtx(ctx)
	return ok && op.Role.IsAdmin()
}

// WithRequestID stores the request ID in the context.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey, id)
}

// RequestIDFromCtx extracts the request ID from the context.
// Returns an empty string if absent.
func RequestIDFromCtx(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}
