package http

import (
	"context"
	"net/http"

	identitydomain "github.com/dmehra2102/smart-inventory/internal/identity/domain"
)

type ctxKey string

const sessionKey ctxKey = "session"

// requireRole resolves the Authorization token and rejects callers whose
// role does not match. The resolved session lands in the request context.
func (h *Handler) requireRole(role identitydomain.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sess, err := h.identity.Resolve(r.Context(), r.Header.Get("Authorization"))
			if err != nil || sess.Role != role {
				writeError(w, http.StatusUnauthorized, "Unauthorized")
				return
			}
			next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), sessionKey, sess)))
		})
	}
}

func sessionFrom(ctx context.Context) identitydomain.Session {
	sess, _ := ctx.Value(sessionKey).(identitydomain.Session)
	return sess
}
