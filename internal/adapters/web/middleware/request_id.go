package middleware

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"github.com/lcalzada-xor/duskboard/internal/core/domain"
)

const RequestIDHeader = "X-Request-ID"

// RequestID tags every request with an id, echoes it in the response and
// stores it, together with the client IP, in the context for auditing.
// A well-formed incoming id is kept.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(RequestIDHeader)
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.NewString()
		}
		w.Header().Set(RequestIDHeader, id)

		ctx := context.WithValue(r.Context(), domain.AuditRequestIDKey, id)
		ctx = context.WithValue(ctx, domain.AuditIPKey, ClientIP(r))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
