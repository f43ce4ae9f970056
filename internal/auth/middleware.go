package auth

import (
	"context"
	"net/http"
	apperrors "rhr/pkg/errors"
	httputil "rhr/pkg/http"
	"rhr/pkg/logger"
	"strings"

	"github.com/julienschmidt/httprouter"
)

const TokenCookieName = "token"

type contextKey string

// IdentityKey carries the verified caller identity through the request context.
const IdentityKey contextKey = "identity"

// RequireAuth wraps a route with session verification. The credential is read
// from the session cookie, falling back to an Authorization bearer header for
// non-browser clients.
func RequireAuth(sessions *Sessions, log *logger.Logger) func(httprouter.Handle) httprouter.Handle {
	return func(next httprouter.Handle) httprouter.Handle {
		return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
			claims, err := sessions.Verify(extractToken(r))
			if err != nil {
				log.Warn("Rejected unauthenticated request",
					"method", r.Method,
					"path", r.URL.Path,
				)
				if writeErr := httputil.WriteError(w, apperrors.Unauthorized("Unauthorized Access")); writeErr != nil {
					log.Error("failed to write error response", "middleware", "RequireAuth", "error", writeErr)
				}
				return
			}

			ctx := context.WithValue(r.Context(), IdentityKey, claims.Email)
			next(w, r.WithContext(ctx), ps)
		}
	}
}

func extractToken(r *http.Request) string {
	if cookie, err := r.Cookie(TokenCookieName); err == nil && cookie.Value != "" {
		return cookie.Value
	}

	authHeader := r.Header.Get("Authorization")
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) == 2 && parts[0] == "Bearer" {
		return parts[1]
	}
	return ""
}

// Identity returns the verified caller identity, if any.
func Identity(ctx context.Context) (string, bool) {
	email, ok := ctx.Value(IdentityKey).(string)
	return email, ok
}
