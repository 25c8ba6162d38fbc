package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/julienschmidt/httprouter"

	apperrors "astrodesk/pkg/errors"
	httputil "astrodesk/pkg/http"
	"astrodesk/pkg/logger"
	"astrodesk/pkg/token"
)

const IdentityKey contextKey = "identity"

// RequireAuth wraps an admin-only route. It expects a standard
// "Authorization: Bearer <token>" header and puts the verified identity on
// the request context.
func RequireAuth(tokens *token.Service, log *logger.Logger) func(httprouter.Handle) httprouter.Handle {
	return func(next httprouter.Handle) httprouter.Handle {
		return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
			raw := extractBearerToken(r)
			if raw == "" {
				writeAuthError(w, log, r, apperrors.Unauthorized("Not authenticated"))
				return
			}

			identity, err := tokens.Verify(raw)
			if err != nil {
				if errors.Is(err, token.ErrExpired) {
					writeAuthError(w, log, r, apperrors.Unauthorized("Token expired"))
					return
				}
				writeAuthError(w, log, r, apperrors.Unauthorized("Invalid token"))
				return
			}

			ctx := context.WithValue(r.Context(), IdentityKey, identity)
			next(w, r.WithContext(ctx), ps)
		}
	}
}

// Identity returns the username established by RequireAuth.
func Identity(ctx context.Context) string {
	if v := ctx.Value(IdentityKey); v != nil {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

func extractBearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if header == "" {
		return ""
	}

	raw, found := strings.CutPrefix(header, "Bearer ")
	if !found {
		return ""
	}
	return strings.TrimSpace(raw)
}

func writeAuthError(w http.ResponseWriter, log *logger.Logger, r *http.Request, err *apperrors.AppError) {
	log.Warn("Request authentication failed",
		"request_id", RequestID(r.Context()),
		"path", r.URL.Path,
		"reason", err.Message,
	)
	if writeErr := httputil.WriteError(w, err); writeErr != nil {
		log.Error("failed to write auth error response", "error", writeErr)
	}
}
