package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/heartmarshall/learning-oracle/internal/auth"
	"github.com/heartmarshall/learning-oracle/internal/domain"
	"github.com/heartmarshall/learning-oracle/pkg/ctxutil"
)

// APIKeyHeader carries a static operator key.
const APIKeyHeader = "X-Api-Key"

type tokenVerifier interface {
	Verify(token string) (auth.Claims, error)
}

type apiKeyChecker interface {
	Enabled() bool
	Check(key string) error
}

// OperatorAuth admits admin bearer tokens and valid API keys. A valid token
// without the admin role is rejected with 403; anything else with 401.
func OperatorAuth(tokens tokenVerifier, keys apiKeyChecker, log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if token := bearerToken(r); token != "" {
				claims, err := tokens.Verify(token)
				if err != nil {
					log.DebugContext(r.Context(), "bearer rejected", slog.String("error", err.Error()))
					writeError(w, http.StatusUnauthorized, "unauthorized")
					return
				}
				if !claims.Role.IsAdmin() {
					writeError(w, http.StatusForbidden, "admin access required")
					return
				}
				ctx := ctxutil.WithOperator(r.Context(), ctxutil.Operator{
					ID:     claims.OperatorID,
					Role:   claims.Role,
					Method: ctxutil.AuthMethodJWT,
				})
				next.ServeHTTP(w, r.WithContext(ctx))
				return
			}

			if key := r.Header.Get(APIKeyHeader); key != "" && keys.Enabled() {
				if err := keys.Check(key); err != nil {
					writeError(w, http.StatusUnauthorized, "unauthorized")
					return
				}
				ctx := ctxutil.WithOperator(r.Context(), ctxutil.Operator{
					Role:   domain.UserRoleAdmin,
					Method: ctxutil.AuthMethodAPIKey,
				})
				next.ServeHTTP(w, r.WithContext(ctx))
				return
			}

			writeError(w, http.StatusUnauthorized, "unauthorized")
		})
	}
}

func bearerToken(r *http.Request) string {
	h := r.Header.Get("Authorization")
	if len(h) < 7 || !strings.EqualFold(h[:7], "bearer ") {
		return ""
	}
	return strings.TrimSpace(h[7:])
}
