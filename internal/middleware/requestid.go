package middleware

import (
	"context"
	"net/http"

	"github.com/google/uuid"
)

// RequestId tags each request with a unique id, echoed in the
// X-Request-Id response header. An id supplied by an upstream proxy
// is kept so log lines correlate across services.
func RequestId(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get("X-Request-Id")
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set("X-Request-Id", id)
		ctx := context.WithValue(r.Context(), CtxRequestId, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequestIdFrom extracts the id RequestId stored, if any.
func RequestIdFrom(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(CtxRequestId).(string)
	return id, ok
}
