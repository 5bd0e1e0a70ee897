package middleware

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/datingapp/request-fabric/internal/domainerr"
	"github.com/datingapp/request-fabric/internal/platform/response"
)

// ErrorHandler is the outermost layer: it recovers panics from every
// downstream layer and handler, logging the cause and returning the
// uniform envelope instead of letting net/http's default recovery tear
// down the connection — the same shape as the teacher's recovery.go,
// generalized to also emit the fabric's envelope on recovery.
func ErrorHandler(logger *zap.Logger) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					if logger != nil {
						logger.Error("panic recovered", zap.Any("panic", rec), zap.String("path", r.URL.Path))
					}
					response.Error(w, r, domainerr.Internal("unhandled panic", nil))
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}
