package middleware

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/datingapp/request-fabric/internal/platform/ctxutil"
)

const HeaderCorrelationID = "X-Correlation-ID"

// Correlation honors an inbound X-Correlation-ID (set by an upstream
// caller or the gateway) or mints one, and echoes it back so a client can
// thread one correlation id end to end across retries, grounded on the
// teacher's requestid.go.
func Correlation() Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := r.Header.Get(HeaderCorrelationID)
			if id == "" {
				id = uuid.NewString()
			}
			w.Header().Set(HeaderCorrelationID, id)
			ctx := ctxutil.WithCorrelationID(r.Context(), id)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
